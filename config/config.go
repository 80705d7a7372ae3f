/*
 * @File : config
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 转换工具配置结构定义
 */

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// SourceConfig 单个MySQL来源及其两类产物的输出位置
type SourceConfig struct {
	Name          string         `json:"name"`           // 来源的名称标识
	MySQL         DatabaseConfig `json:"mysql"`          // 源MySQL库
	Tables        []string       `json:"tables"`         // 需要转换的表；为空表示该库所有表
	HiveOutput    string         `json:"hive_output"`    // Hive DDL输出文件（追加写入）
	ParquetOutput string         `json:"parquet_output"` // PyArrow schema输出文件（追加写入）
}

// LogConfig 日志配置
type LogConfig struct {
	LogLevel      string `json:"log_level"`
	EnableFileLog bool   `json:"enable_file_log"`
	LogFilePath   string `json:"log_file_path"`
}

// RetryConfig 数据库查询重试配置
type RetryConfig struct {
	MaxRetries int `json:"max_retries"`
	DelayMs    int `json:"delay_ms"`
}

// AutoSyncConfig 常驻自动同步配置
type AutoSyncConfig struct {
	Enabled        bool   `json:"enabled"`
	CronExpression string `json:"cron_expression"`
}

// LockConfig 互斥锁配置（常驻模式下保证单实例运行）
type LockConfig struct {
	DebugMode           bool   `json:"debug_mode"`
	K8sNamespace        string `json:"k8s_namespace"`
	LeaseName           string `json:"lease_name"`
	Identity            string `json:"identity"`
	LockDurationSeconds int    `json:"lock_duration_seconds"`
}

// ParserConfig 解析相关配置
type ParserConfig struct {
	DDLParseTimeoutSeconds int `json:"ddl_parse_timeout_seconds"`
}

// Config 应用配置
type Config struct {
	Sources []SourceConfig `json:"sources"`

	Strict      bool   `json:"strict"`      // 严格模式：遇到未知类型即中止
	Verbose     bool   `json:"verbose"`     // 输出类型转换说明
	Parallelism int    `json:"parallelism"` // 单个来源内并行处理的表数
	TempDir     string `json:"temp_dir"`

	Log      LogConfig      `json:"log"`
	Retry    RetryConfig    `json:"retry"`
	AutoSync AutoSyncConfig `json:"auto_sync"`
	Lock     LockConfig     `json:"lock"`
	Parser   ParserConfig   `json:"parser"`
}

// LoadConfig 从配置文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值
	if config.TempDir == "" {
		config.TempDir = "./temp"
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 4
	}
	if config.Retry.MaxRetries <= 0 {
		config.Retry.MaxRetries = 3
	}
	if config.Retry.DelayMs <= 0 {
		config.Retry.DelayMs = 100
	}
	if config.Parser.DDLParseTimeoutSeconds <= 0 {
		config.Parser.DDLParseTimeoutSeconds = 60
	}
	if config.Lock.LockDurationSeconds <= 0 {
		config.Lock.LockDurationSeconds = 60
	}

	// 验证配置
	if len(config.Sources) == 0 {
		return nil, fmt.Errorf("至少需要配置一个MySQL来源")
	}

	return &config, nil
}

// GetMySQLDSNByIndex 根据索引获取MySQL连接字符串
func (c *Config) GetMySQLDSNByIndex(index int) string {
	if index >= len(c.Sources) {
		return ""
	}
	db := c.Sources[index].MySQL
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.Username, db.Password, db.Host, db.Port, db.Database)
}

// GetSourceByName 根据名称获取来源配置及其索引
func (c *Config) GetSourceByName(name string) (*SourceConfig, int, bool) {
	for i, src := range c.Sources {
		if src.Name == name {
			return &c.Sources[i], i, true
		}
	}
	return nil, -1, false
}
