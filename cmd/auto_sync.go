package cmd

import (
	"myhp/internal/autosyncrun"
	"myhp/logger"

	"github.com/spf13/cobra"
)

// NewAutoSyncCmd 启动常驻schema同步器（auto-sync）
func NewAutoSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-sync",
		Short: "常驻：启动按Cron的schema自动同步器",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigAndInitLogging(cmd)
			if err != nil {
				return err
			}
			defer logger.CloseLogFile()

			logger.Info("启动常驻schema同步器 (auto-sync)...")
			return autosyncrun.Run(cfg)
		},
	}
}
