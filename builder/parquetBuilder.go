package builder

import (
	"fmt"
	"strings"

	"myhp/parser"
)

// ParquetSchemaBuilder PyArrow schema文本构建器，纯函数式，无任何IO
type ParquetSchemaBuilder struct {
	table parser.Table
}

// NewParquetSchemaBuilder 创建PyArrow schema构建器
func NewParquetSchemaBuilder(table parser.Table) ParquetSchemaBuilder {
	return ParquetSchemaBuilder{table: table}
}

// Build 生成 {表名}_schema = pa.schema([...]) 文本块
// 字段顺序与源表一致；输出为可直接加载的PyArrow构造表达式
func (b ParquetSchemaBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s_schema = pa.schema([\n", b.table.Name))
	for _, col := range b.table.Columns {
		sb.WriteString(fmt.Sprintf("    (%q, %s),\n", col.Name, col.ArrowType))
	}
	sb.WriteString("])\n")
	return sb.String()
}
