package builder

import (
	"fmt"
	"strings"

	"myhp/parser"
)

// HiveDDLBuilder Hive建表语句构建器，纯函数式，无任何IO
type HiveDDLBuilder struct {
	table parser.Table
}

// NewHiveDDLBuilder 创建Hive DDL构建器
func NewHiveDDLBuilder(table parser.Table) HiveDDLBuilder {
	return HiveDDLBuilder{table: table}
}

// Build 生成CREATE TABLE语句
// 每个字段一行，主键字段追加 -- PRIMARY KEY 标记，字段顺序与源表一致，
// 末尾以 STORED AS PARQUET 收尾；零字段的表同样生成合法的空框架
func (b HiveDDLBuilder) Build() string {
	var lines []string
	for _, col := range b.table.Columns {
		if b.table.HasPrimaryKey(col.Name) {
			lines = append(lines, fmt.Sprintf("  `%s` %s -- PRIMARY KEY", col.Name, col.HiveType))
		} else {
			lines = append(lines, fmt.Sprintf("  `%s` %s", col.Name, col.HiveType))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", b.table.Name))
	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString("\n)\nSTORED AS PARQUET;\n")
	return sb.String()
}
