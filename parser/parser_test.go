package parser

import (
	"strings"
	"testing"

	"myhp/diag"
	"myhp/typemap"
)

const sampleDDL = "CREATE TABLE `orders` (\n" +
	"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
	"  `user_id` bigint(20) NOT NULL,\n" +
	"  `name` varchar(255) DEFAULT NULL,\n" +
	"  `amount` decimal(10,2) NOT NULL DEFAULT '0.00',\n" +
	"  `created_at` datetime DEFAULT CURRENT_TIMESTAMP,\n" +
	"  PRIMARY KEY (`id`,`user_id`),\n" +
	"  KEY `idx_name` (`name`),\n" +
	"  CONSTRAINT `fk_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`)\n" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

func TestExtract(t *testing.T) {
	res := typemap.NewResolver(false, false, nil)

	table, err := Extract(sampleDDL, res)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if table.Name != "orders" {
		t.Errorf("table name = %s, want orders", table.Name)
	}

	// 索引、外键、表选项行不产生字段
	if len(table.Columns) != 5 {
		t.Fatalf("column count = %d, want 5", len(table.Columns))
	}

	// 字段顺序与声明顺序一致
	wantOrder := []string{"id", "user_id", "name", "amount", "created_at"}
	for i, want := range wantOrder {
		if table.Columns[i].Name != want {
			t.Errorf("column[%d] = %s, want %s", i, table.Columns[i].Name, want)
		}
	}

	if table.Columns[3].HiveType != "DECIMAL(10,2)" {
		t.Errorf("amount hive type = %s", table.Columns[3].HiveType)
	}
	if table.Columns[4].ArrowType != `pa.timestamp("s")` {
		t.Errorf("created_at arrow type = %s", table.Columns[4].ArrowType)
	}

	// 复合主键按声明顺序提取
	if len(table.PrimaryKeys) != 2 || table.PrimaryKeys[0] != "id" || table.PrimaryKeys[1] != "user_id" {
		t.Errorf("primary keys = %v, want [id user_id]", table.PrimaryKeys)
	}
	if !table.HasPrimaryKey("id") || table.HasPrimaryKey("name") {
		t.Error("HasPrimaryKey misclassified columns")
	}
}

func TestExtractTableNameVariants(t *testing.T) {
	res := typemap.NewResolver(false, false, nil)

	t.Run("db qualified name", func(t *testing.T) {
		table, err := Extract("CREATE TABLE `mydb`.`events` (\n  `id` int NOT NULL\n)", res)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if table.Name != "events" {
			t.Errorf("table name = %s, want events", table.Name)
		}
	})

	t.Run("bare name", func(t *testing.T) {
		table, err := Extract("CREATE TABLE events (\n  `id` int NOT NULL\n)", res)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if table.Name != "events" {
			t.Errorf("table name = %s, want events", table.Name)
		}
	})
}

func TestExtractEmptyTable(t *testing.T) {
	res := typemap.NewResolver(false, false, nil)

	table, err := Extract("CREATE TABLE `empty` (\n) ENGINE=InnoDB", res)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(table.Columns) != 0 || len(table.PrimaryKeys) != 0 {
		t.Errorf("empty table produced columns=%d keys=%d", len(table.Columns), len(table.PrimaryKeys))
	}
}

func TestExtractDuplicatePrimaryKeys(t *testing.T) {
	res := typemap.NewResolver(false, false, nil)

	ddl := "CREATE TABLE `t` (\n" +
		"  `a` int NOT NULL,\n" +
		"  PRIMARY KEY (`a`),\n" +
		"  PRIMARY KEY (`a`)\n" +
		")"
	table, err := Extract(ddl, res)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(table.PrimaryKeys) != 1 {
		t.Errorf("primary keys = %v, want single entry", table.PrimaryKeys)
	}
}

func TestExtractStrictAbort(t *testing.T) {
	rec := &diag.Recorder{}
	res := typemap.NewResolver(true, false, rec)

	ddl := "CREATE TABLE `t` (\n" +
		"  `a` int NOT NULL,\n" +
		"  `b` hyperloglog NOT NULL,\n" +
		"  `c` varchar(10)\n" +
		")"
	_, err := Extract(ddl, res)
	if err == nil {
		t.Fatal("strict mode should abort on unknown type")
	}
	if !strings.Contains(err.Error(), "hyperloglog") {
		t.Errorf("error should name the offending type: %v", err)
	}
}

func TestExtractMalformedColumnLine(t *testing.T) {
	rec := &diag.Recorder{}
	res := typemap.NewResolver(false, false, rec)

	// 只有字段名没有类型的行被忽略，不中断解析
	ddl := "CREATE TABLE `t` (\n" +
		"  `orphan`\n" +
		"  `a` int NOT NULL\n" +
		")"
	table, err := Extract(ddl, res)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(table.Columns) != 1 || table.Columns[0].Name != "a" {
		t.Errorf("columns = %+v, want only a", table.Columns)
	}
}
