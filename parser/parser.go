/*
 * @File : parser
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 逐行解析SHOW CREATE TABLE输出，提取字段与主键
 */

package parser

import (
	"regexp"
	"strings"

	"myhp/logger"
	"myhp/typemap"
)

// 主键行上所有反引号包裹的标识符
var quotedIdentRe = regexp.MustCompile("`([^`]+)`")

// Extract 从一张表的DDL文本中提取字段列表与主键集合
// 行分类规则：以反引号开头的是字段声明行；去空格后大写以PRIMARY KEY开头的是主键行；
// 其余行（表选项、引擎、索引、外键等）一律忽略
// 每个字段声明行恰好调用一次类型解析；严格模式下首个未知类型即中断并返回错误
func Extract(ddl string, res *typemap.Resolver) (Table, error) {
	var t Table
	lines := strings.Split(ddl, "\n")
	logger.Debug("DDL分割为 %d 行", len(lines))

	for _, raw := range lines {
		line := strings.TrimSuffix(strings.TrimSpace(raw), ",")

		if t.parseTableName(line) {
			logger.Debug("解析到表名: %s", t.Name)
			continue
		}
		if strings.HasPrefix(line, "`") {
			if err := t.parseColumn(line, res); err != nil {
				return Table{}, err
			}
			continue
		}
		if strings.HasPrefix(strings.ToUpper(line), "PRIMARY KEY") {
			t.addPrimaryKeys(quotedIdents(line))
			continue
		}
	}

	logger.Debug("解析完成，共 %d 个字段，%d 个主键", len(t.Columns), len(t.PrimaryKeys))
	return t, nil
}

// parseTableName 解析CREATE TABLE行中的表名，兼容反引号与db.table形式
func (t *Table) parseTableName(line string) bool {
	const prefix = "CREATE TABLE"
	if !strings.HasPrefix(line, prefix) {
		return false
	}

	remaining := strings.TrimSpace(line[len(prefix):])
	var tableName string
	if strings.HasPrefix(remaining, "`") {
		// 兼容 `db`.`table` 形式，取括号前最后一个反引号标识符
		head := remaining
		if p := strings.Index(head, "("); p != -1 {
			head = head[:p]
		}
		if ids := quotedIdents(head); len(ids) > 0 {
			tableName = ids[len(ids)-1]
		}
	} else {
		parts := strings.Fields(remaining)
		if len(parts) > 0 {
			tableName = strings.Split(parts[0], "(")[0]
		}
	}
	if tableName == "" {
		return false
	}

	// 处理数据库名.表名的格式，只保留表名
	if strings.Contains(tableName, ".") {
		names := strings.Split(tableName, ".")
		tableName = strings.Trim(names[len(names)-1], "`")
	}
	t.Name = tableName
	return true
}

// parseColumn 解析单个字段声明行
// 字段名为首对反引号之间的标识符，类型为其后第一个空白分隔的token，
// 同行后续的约束/默认值/注释全部忽略；跨行的字段定义不支持
func (t *Table) parseColumn(line string, res *typemap.Resolver) error {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		logger.Warn("字段声明行缺少类型，已忽略: %s", line)
		return nil
	}
	name := strings.Trim(parts[0], "`")
	declaredType := parts[1]

	r, err := res.Resolve(name, declaredType)
	if err != nil {
		return err
	}
	t.Columns = append(t.Columns, Column{
		Name:      name,
		HiveType:  r.Hive,
		ArrowType: r.Arrow,
	})
	return nil
}

// quotedIdents 提取一行中所有反引号包裹的标识符
func quotedIdents(line string) []string {
	ms := quotedIdentRe.FindAllStringSubmatch(line, -1)
	idents := make([]string, 0, len(ms))
	for _, m := range ms {
		idents = append(idents, m[1])
	}
	return idents
}
