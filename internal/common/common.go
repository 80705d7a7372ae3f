/*
 * @File : common
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 内部共享工具，DDL解析超时保护与锁身份构造
 */

package common

import (
	"fmt"
	"os"
	"time"

	"myhp/config"
	"myhp/parser"
	"myhp/typemap"
)

type parseResult struct {
	table parser.Table
	err   error
}

// ParseDDLWithTimeout 解析DDL文本并生成列的目标类型，带超时保护。
// 极端脏数据（超长DDL、异常行）不会卡死整个同步周期。
func ParseDDLWithTimeout(ddl string, res *typemap.Resolver, cfg *config.Config) (parser.Table, error) {
	timeout := 60 * time.Second
	if cfg != nil && cfg.Parser.DDLParseTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Parser.DDLParseTimeoutSeconds) * time.Second
	}

	done := make(chan parseResult, 1)
	go func() {
		table, err := parser.Extract(ddl, res)
		done <- parseResult{table: table, err: err}
	}()

	select {
	case r := <-done:
		return r.table, r.err
	case <-time.After(timeout):
		return parser.Table{}, fmt.Errorf("DDL解析超时（%v）", timeout)
	}
}

// BuildIdentity 构造锁持有者身份，优先使用配置值，其次HOSTNAME
func BuildIdentity(cfg *config.Config, role string) string {
	base := cfg.Lock.Identity
	if base == "" {
		if hostname, err := os.Hostname(); err == nil && hostname != "" {
			base = hostname
		} else {
			base = "myhp-instance"
		}
	}
	if role == "" {
		return base
	}
	return fmt.Sprintf("%s-%s", base, role)
}
