/*
 * @File : run
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 常驻自动同步模式，按cron周期重新生成所有输出文件，通过锁保证单实例执行
 */

package autosyncrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myhp/config"
	"myhp/fileops"
	"myhp/internal/common"
	"myhp/internal/convertrun"
	"myhp/lock"
	"myhp/logger"

	"github.com/robfig/cron/v3"
)

// SchemaSyncer 常驻同步器
type SchemaSyncer struct {
	cfg     *config.Config
	lockMgr lock.LockManager
	cron    *cron.Cron
}

// NewSchemaSyncer 创建常驻同步器
func NewSchemaSyncer(cfg *config.Config) (*SchemaSyncer, error) {
	identity := common.BuildIdentity(cfg, "sync")
	duration := time.Duration(cfg.Lock.LockDurationSeconds) * time.Second

	lockMgr, err := lock.CreateLockManager(
		cfg.Lock.DebugMode,
		cfg.Lock.K8sNamespace,
		cfg.Lock.LeaseName,
		identity,
		duration,
	)
	if err != nil {
		return nil, fmt.Errorf("创建锁管理器失败: %w", err)
	}

	return &SchemaSyncer{
		cfg:     cfg,
		lockMgr: lockMgr,
		cron:    cron.New(),
	}, nil
}

// syncOnce 执行一轮同步: 获取锁 -> 清空输出文件 -> 全量重新生成
func (s *SchemaSyncer) syncOnce(ctx context.Context) {
	release, err := s.lockMgr.AcquireLock(ctx)
	if err != nil {
		logger.Warn("获取锁失败，跳过本轮同步: %v", err)
		return
	}
	defer release()

	start := time.Now()
	logger.Info("开始自动同步")

	// 常驻模式每轮全量重建，先清空上一轮的输出，避免追加模式下内容堆积
	fm := fileops.NewFileManager(s.cfg.TempDir)
	for _, src := range s.cfg.Sources {
		if err := fm.TruncateOutput(src.HiveOutput); err != nil {
			logger.Error("清空输出文件失败: %v", err)
			return
		}
		if err := fm.TruncateOutput(src.ParquetOutput); err != nil {
			logger.Error("清空输出文件失败: %v", err)
			return
		}
	}

	if err := convertrun.Run(s.cfg, convertrun.Options{}); err != nil {
		logger.Error("自动同步失败: %v", err)
		return
	}

	logger.Success("自动同步完成，耗时 %v", time.Since(start).Round(time.Millisecond))
}

// Start 启动cron调度并阻塞等待退出信号
func (s *SchemaSyncer) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expr := s.cfg.AutoSync.CronExpression
	if expr == "" {
		expr = "0 2 * * *"
	}

	if _, err := s.cron.AddFunc(expr, func() {
		s.syncOnce(ctx)
	}); err != nil {
		return fmt.Errorf("注册cron任务失败（表达式: %s）: %w", expr, err)
	}

	logger.Info("自动同步已启动，cron表达式: %s", expr)

	// 启动时先跑一轮，不用等到第一个cron触发点
	s.syncOnce(ctx)

	s.cron.Start()
	defer s.cron.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("收到退出信号 %v，停止自动同步", sig)

	return nil
}

// Run 常驻自动同步入口
func Run(cfg *config.Config) error {
	if !cfg.AutoSync.Enabled {
		return fmt.Errorf("配置中未启用自动同步（auto_sync.enabled）")
	}

	syncer, err := NewSchemaSyncer(cfg)
	if err != nil {
		return err
	}

	return syncer.Start()
}
