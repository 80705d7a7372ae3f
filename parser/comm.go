/*
 * @File : comm
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: DDL解析结果的数据结构
 */

package parser

// Column 已完成类型解析的单个字段，解析后不再修改
type Column struct {
	Name      string
	HiveType  string // Hive目标类型
	ArrowType string // PyArrow目标类型
}

// Table 单张表的解析结果，字段顺序与源DDL声明顺序一致
// 每次解析产生一个独立实例，单表流水线内使用后即丢弃
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKeys []string // 去重后的主键字段名，保留声明顺序
}

// HasPrimaryKey 判断字段是否为主键成员
func (t Table) HasPrimaryKey(name string) bool {
	for _, k := range t.PrimaryKeys {
		if k == name {
			return true
		}
	}
	return false
}

// addPrimaryKeys 合并主键字段名并去重
func (t *Table) addPrimaryKeys(names []string) {
	for _, n := range names {
		if !t.HasPrimaryKey(n) {
			t.PrimaryKeys = append(t.PrimaryKeys, n)
		}
	}
}
