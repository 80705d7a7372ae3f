package typemap

import (
	"fmt"
	"strings"

	"myhp/diag"
)

const (
	// FallbackHive 未命中任何规则时的Hive兜底类型
	FallbackHive = "STRING"
	// FallbackArrow 未命中任何规则时的PyArrow兜底类型
	FallbackArrow = "pa.string()"
)

// Resolution 单个字段的类型解析结果
// Fallback为true表示未命中任何规则、使用了兜底类型，与真实命中可区分
type Resolution struct {
	Hive     string
	Arrow    string
	Fallback bool
}

// UnmappedTypeError 严格模式下未命中任何规则的错误，携带字段与原始类型
type UnmappedTypeError struct {
	Column       string
	DeclaredType string
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("unknown MySQL type '%s' for column '%s'", e.DeclaredType, e.Column)
}

// Resolver 类型解析器
// 严格模式下未知类型返回UnmappedTypeError；非严格模式下发出一条警告并返回兜底类型对
type Resolver struct {
	Strict  bool
	Verbose bool
	Sink    diag.Sink
}

// NewResolver 创建类型解析器
func NewResolver(strict, verbose bool, sink diag.Sink) *Resolver {
	return &Resolver{Strict: strict, Verbose: verbose, Sink: sink}
}

// Resolve 解析单个字段的声明类型，按规则表顺序首个命中生效
func (r *Resolver) Resolve(columnName, declaredType string) (Resolution, error) {
	t := strings.ToLower(strings.TrimSpace(declaredType))

	for i := range typeRules {
		rule := &typeRules[i]
		res, ok := rule.apply(t)
		if !ok {
			continue
		}
		if rule.Note != "" && r.Verbose {
			diag.Emitf(r.Sink, diag.Info, columnName, "%s", rule.Note)
		}
		return res, nil
	}

	// 未命中任何规则
	if r.Strict {
		return Resolution{}, &UnmappedTypeError{Column: columnName, DeclaredType: declaredType}
	}
	diag.Emitf(r.Sink, diag.Warning, columnName,
		"Unknown MySQL type '%s'. Using STRING fallback.", declaredType)
	return Resolution{Hive: FallbackHive, Arrow: FallbackArrow, Fallback: true}, nil
}

// apply 在归一化后的类型串上尝试本条规则
func (rule *TypeRule) apply(normalized string) (Resolution, bool) {
	switch rule.Kind {
	case KindParameterized:
		m := rule.re.FindStringSubmatch(normalized)
		if m == nil {
			return Resolution{}, false
		}
		p, s := m[1], m[2]
		return Resolution{Hive: rule.HiveFn(p, s), Arrow: rule.ArrowFn(p, s)}, true
	default:
		if !strings.HasPrefix(normalized, rule.Pattern) {
			return Resolution{}, false
		}
		return Resolution{Hive: rule.Hive, Arrow: rule.Arrow}, true
	}
}
