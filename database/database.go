/*
 * @File : database
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: MySQL来源连接管理与DDL获取
 */

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"myhp/config"
	"myhp/logger"
	"myhp/retry"

	_ "github.com/go-sql-driver/mysql"
)

// ErrTableNotFound 请求的表在源库中不存在，调用方应跳过该表继续处理
var ErrTableNotFound = errors.New("源库中不存在该表")

// SourceManager MySQL来源管理器
type SourceManager struct {
	config   *config.Config
	srcIndex int
	retryCfg retry.Config
}

// NewSourceManager 创建来源管理器（通过索引）
func NewSourceManager(cfg *config.Config, srcIndex int) *SourceManager {
	return &SourceManager{
		config:   cfg,
		srcIndex: srcIndex,
		retryCfg: retry.ConfigFromAppConfig(cfg),
	}
}

// NewSourceManagerByName 创建来源管理器（通过名称）
func NewSourceManagerByName(cfg *config.Config, name string) *SourceManager {
	for i, src := range cfg.Sources {
		if src.Name == name {
			return NewSourceManager(cfg, i)
		}
	}
	return nil
}

// GetConnection 获取MySQL连接
func (m *SourceManager) GetConnection() (*sql.DB, error) {
	dsn := m.config.GetMySQLDSNByIndex(m.srcIndex)
	if dsn == "" {
		return nil, fmt.Errorf("无效的来源索引: %d", m.srcIndex)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("MySQL连接测试失败: %w", err)
	}

	return db, nil
}

// GetTableNames 获取源库的全部表名
func (m *SourceManager) GetTableNames() ([]string, error) {
	db, err := m.GetConnection()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := retry.QueryWithRetry(db, m.retryCfg, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("获取表列表失败: %w", err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			continue
		}
		tableNames = append(tableNames, tableName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历表列表失败: %w", err)
	}

	logger.Debug("来源 %s 共有 %d 张表", m.GetSourceName(), len(tableNames))
	return tableNames, nil
}

// GetTableDDL 获取单张表的SHOW CREATE TABLE输出
// 表不存在时返回ErrTableNotFound，便于调用方区分"跳过"与"失败"
func (m *SourceManager) GetTableDDL(tableName string) (string, error) {
	db, err := m.GetConnection()
	if err != nil {
		return "", fmt.Errorf("获取MySQL连接失败: %w", err)
	}
	defer db.Close()

	createQuery := fmt.Sprintf("SHOW CREATE TABLE `%s`", tableName)

	// SHOW CREATE TABLE 返回 (Table, Create Table) 两列
	var name, ddl string
	err = retry.QueryRowAndScanWithRetry(db, m.retryCfg, createQuery, []interface{}{&name, &ddl})
	if err != nil {
		if err == sql.ErrNoRows || isTableMissing(err) {
			return "", fmt.Errorf("表 %s: %w", tableName, ErrTableNotFound)
		}
		return "", fmt.Errorf("获取表 %s 的DDL失败: %w", tableName, err)
	}

	return ddl, nil
}

// GetSourceName 获取来源名称
func (m *SourceManager) GetSourceName() string {
	if m.srcIndex >= len(m.config.Sources) {
		return ""
	}
	return m.config.Sources[m.srcIndex].Name
}

// GetSourceIndex 获取来源索引
func (m *SourceManager) GetSourceIndex() int {
	return m.srcIndex
}

// isTableMissing 判断是否为MySQL表不存在错误（错误码 1146）
func isTableMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "error 1146") {
		return true
	}
	if strings.Contains(msg, "doesn't exist") {
		return true
	}
	return false
}
