package typemap

import (
	"fmt"
	"regexp"
)

// RuleKind 规则种类：固定映射 或 带数值参数的参数化映射
type RuleKind int

const (
	KindFixed RuleKind = iota
	KindParameterized
)

// TypeRule 单条类型映射规则
// 匹配在归一化（去空格、小写）后的类型串上进行，且只锚定类型名前缀，
// 长度/精度等参数由参数化规则单独提取，不参与整串校验
type TypeRule struct {
	Kind    RuleKind
	Pattern string // 固定规则：类型名前缀
	re      *regexp.Regexp
	Hive    string // 固定规则的Hive目标类型
	Arrow   string // 固定规则的PyArrow目标类型
	HiveFn  func(p, s string) string // 参数化规则的两个目标类型构造器
	ArrowFn func(p, s string) string
	Note    string // 人类可读的转换说明，仅verbose时输出
}

// 规则表按声明顺序匹配，首个命中即生效
// 顺序敏感：tinyint(1)必须先于tinyint，mediumint必须先于int，
// datetime/timestamp必须先于date与time，否则会被更泛的前缀遮蔽
var typeRules = []TypeRule{
	{Kind: KindFixed, Pattern: "tinyint(1)", Hive: "BOOLEAN", Arrow: "pa.bool_()", Note: "Mapped MySQL tinyint(1) to BOOLEAN"},
	{Kind: KindFixed, Pattern: "tinyint", Hive: "TINYINT", Arrow: "pa.int8()"},
	{Kind: KindFixed, Pattern: "smallint", Hive: "SMALLINT", Arrow: "pa.int16()"},
	{Kind: KindFixed, Pattern: "mediumint", Hive: "INT", Arrow: "pa.int32()", Note: "MySQL MEDIUMINT mapped to Hive INT"},
	{Kind: KindFixed, Pattern: "int", Hive: "INT", Arrow: "pa.int32()"},
	{Kind: KindFixed, Pattern: "bigint", Hive: "BIGINT", Arrow: "pa.int64()"},
	{Kind: KindFixed, Pattern: "float", Hive: "FLOAT", Arrow: "pa.float32()"},
	{Kind: KindFixed, Pattern: "double", Hive: "DOUBLE", Arrow: "pa.float64()"},
	{
		Kind: KindParameterized,
		re:   regexp.MustCompile(`^decimal\((\d+),\s*(\d+)\)`),
		HiveFn: func(p, s string) string {
			return fmt.Sprintf("DECIMAL(%s,%s)", p, s)
		},
		ArrowFn: func(p, s string) string {
			return fmt.Sprintf("pa.decimal128(%s, %s)", p, s)
		},
	},
	{Kind: KindFixed, Pattern: "varchar", Hive: "STRING", Arrow: "pa.string()"},
	{Kind: KindFixed, Pattern: "char", Hive: "STRING", Arrow: "pa.string()"},
	{Kind: KindFixed, Pattern: "text", Hive: "STRING", Arrow: "pa.string()"},
	{Kind: KindFixed, Pattern: "blob", Hive: "BINARY", Arrow: "pa.binary()"},
	{Kind: KindFixed, Pattern: "datetime", Hive: "TIMESTAMP", Arrow: `pa.timestamp("s")`},
	{Kind: KindFixed, Pattern: "timestamp", Hive: "TIMESTAMP", Arrow: `pa.timestamp("s")`},
	{Kind: KindFixed, Pattern: "date", Hive: "DATE", Arrow: "pa.date32()"},
	{Kind: KindFixed, Pattern: "enum", Hive: "STRING", Arrow: "pa.string()", Note: "ENUM is not supported in Hive; converted to STRING"},
	{Kind: KindFixed, Pattern: "set", Hive: "STRING", Arrow: "pa.string()", Note: "SET is not supported in Hive; converted to STRING"},
	{Kind: KindFixed, Pattern: "json", Hive: "STRING", Arrow: "pa.string()", Note: "JSON stored as STRING"},
	{Kind: KindFixed, Pattern: "time", Hive: "STRING", Arrow: "pa.string()", Note: "TIME is unsupported; stored as STRING"},
	{Kind: KindFixed, Pattern: "year", Hive: "INT", Arrow: "pa.int32()", Note: "YEAR mapped to INT"},
	{Kind: KindFixed, Pattern: "geometry", Hive: "STRING", Arrow: "pa.string()", Note: "GEOMETRY mapped to STRING (WKT representation expected)"},
}

// Rules 返回只读规则表（启动后不可变，可安全并发读取）
func Rules() []TypeRule {
	return typeRules
}
