package builder

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"myhp/parser"

	"github.com/xitongsys/parquet-go/schema"
)

// parquet-go的JSON schema结构（writer.NewJSONWriter同款格式）
type parquetJSONSchema struct {
	Tag    string             `json:"Tag"`
	Fields []parquetJSONField `json:"Fields"`
}

type parquetJSONField struct {
	Tag string `json:"Tag"`
}

var decimalArrowRe = regexp.MustCompile(`^pa\.decimal128\((\d+),\s*(\d+)\)$`)

// BuildParquetGoJSON 将解析结果翻译为parquet-go的JSON schema
// 用于在写出schema文本之前验证其能否真正构成parquet文件结构
func BuildParquetGoJSON(table parser.Table) (string, error) {
	js := parquetJSONSchema{Tag: fmt.Sprintf("name=%s", table.Name)}
	for _, col := range table.Columns {
		tag, err := parquetTag(col)
		if err != nil {
			return "", err
		}
		js.Fields = append(js.Fields, parquetJSONField{Tag: tag})
	}
	data, err := json.Marshal(js)
	if err != nil {
		return "", fmt.Errorf("序列化parquet schema失败: %w", err)
	}
	return string(data), nil
}

// CheckParquetSchema 用parquet-go编译一次schema，编译失败则该表的输出视为不合法
func CheckParquetSchema(table parser.Table) error {
	js, err := BuildParquetGoJSON(table)
	if err != nil {
		return err
	}
	if _, err := schema.NewSchemaHandlerFromJSON(js); err != nil {
		return fmt.Errorf("表 %s 的parquet schema校验失败: %w", table.Name, err)
	}
	return nil
}

// parquetTag 把PyArrow构造表达式映射为parquet-go字段Tag
func parquetTag(col parser.Column) (string, error) {
	name := fmt.Sprintf("name=%s", col.Name)

	if m := decimalArrowRe.FindStringSubmatch(col.ArrowType); m != nil {
		return fmt.Sprintf("%s, type=BYTE_ARRAY, convertedtype=DECIMAL, precision=%s, scale=%s", name, m[1], m[2]), nil
	}

	switch strings.TrimSpace(col.ArrowType) {
	case "pa.bool_()":
		return name + ", type=BOOLEAN", nil
	case "pa.int8()":
		return name + ", type=INT32, convertedtype=INT_8", nil
	case "pa.int16()":
		return name + ", type=INT32, convertedtype=INT_16", nil
	case "pa.int32()":
		return name + ", type=INT32", nil
	case "pa.int64()":
		return name + ", type=INT64", nil
	case "pa.float32()":
		return name + ", type=FLOAT", nil
	case "pa.float64()":
		return name + ", type=DOUBLE", nil
	case "pa.string()":
		return name + ", type=BYTE_ARRAY, convertedtype=UTF8", nil
	case "pa.binary()":
		return name + ", type=BYTE_ARRAY", nil
	case "pa.date32()":
		return name + ", type=INT32, convertedtype=DATE", nil
	case `pa.timestamp("s")`:
		return name + ", type=INT64, convertedtype=TIMESTAMP_MILLIS", nil
	}
	return "", fmt.Errorf("字段 %s 的类型 %s 无法映射为parquet物理类型", col.Name, col.ArrowType)
}
