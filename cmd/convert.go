package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"myhp/internal/convertrun"
	"myhp/logger"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewConvertCmd 一次性转换：读取源库表结构，生成Hive DDL与PyArrow schema文件
func NewConvertCmd() *cobra.Command {
	var sourceName string
	var tableArgs []string
	var hiveOutput string
	var parquetOutput string
	var strict bool
	var verbose bool
	var askPass bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "一次性：按数据源与表清单生成Hive DDL和PyArrow schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigAndInitLogging(cmd)
			if err != nil {
				return err
			}
			defer logger.CloseLogFile()

			// --ask-pass 交互式读取密码，覆盖配置文件中的明文密码
			if askPass {
				password, err := promptPassword()
				if err != nil {
					return err
				}
				for i := range cfg.Sources {
					cfg.Sources[i].MySQL.Password = password
				}
			}

			var tables []string
			for _, arg := range tableArgs {
				for _, t := range strings.Split(arg, ",") {
					t = strings.TrimSpace(t)
					if t == "" {
						return errors.New("--table 参数包含空表名")
					}
					tables = append(tables, t)
				}
			}

			if len(tables) > 0 && sourceName == "" && len(cfg.Sources) > 1 {
				return errors.New("配置了多个数据源时，--table 必须与 --source 一起使用")
			}

			return convertrun.Run(cfg, convertrun.Options{
				SourceName:    sourceName,
				Tables:        tables,
				HiveOutput:    hiveOutput,
				ParquetOutput: parquetOutput,
				Strict:        strict,
				Verbose:       verbose,
			})
		},
	}

	cmd.Flags().StringVar(&sourceName, "source", "", "数据源名称（默认转换配置中的全部数据源）")
	cmd.Flags().StringSliceVar(&tableArgs, "table", nil, "表名，可逗号分隔或多次指定（默认全库表）")
	cmd.Flags().StringVar(&hiveOutput, "hive", "", "Hive DDL输出文件路径（覆盖配置）")
	cmd.Flags().StringVar(&parquetOutput, "parquet", "", "PyArrow schema输出文件路径（覆盖配置）")
	cmd.Flags().BoolVar(&strict, "strict", false, "严格模式：遇到未知MySQL类型即中止")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "输出每列的类型转换说明")
	cmd.Flags().BoolVar(&askPass, "ask-pass", false, "交互式输入MySQL密码，覆盖配置文件")

	return cmd
}

// promptPassword 从终端读取密码，不回显
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "MySQL密码: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	return string(password), nil
}
