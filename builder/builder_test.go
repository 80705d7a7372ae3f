package builder

import (
	"strings"
	"testing"

	"myhp/parser"
)

func sampleTable() parser.Table {
	return parser.Table{
		Name: "orders",
		Columns: []parser.Column{
			{Name: "id", HiveType: "INT", ArrowType: "pa.int32()"},
			{Name: "name", HiveType: "STRING", ArrowType: "pa.string()"},
			{Name: "amount", HiveType: "DECIMAL(10,2)", ArrowType: "pa.decimal128(10, 2)"},
		},
		PrimaryKeys: []string{"id"},
	}
}

func TestHiveDDLBuilder(t *testing.T) {
	got := NewHiveDDLBuilder(sampleTable()).Build()

	want := "CREATE TABLE orders (\n" +
		"  `id` INT -- PRIMARY KEY,\n" +
		"  `name` STRING,\n" +
		"  `amount` DECIMAL(10,2)\n" +
		")\n" +
		"STORED AS PARQUET;\n"
	if got != want {
		t.Errorf("hive ddl mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestHiveDDLBuilderEmptyTable(t *testing.T) {
	got := NewHiveDDLBuilder(parser.Table{Name: "empty"}).Build()

	if !strings.HasPrefix(got, "CREATE TABLE empty (") {
		t.Errorf("missing create table header: %s", got)
	}
	if !strings.HasSuffix(got, "STORED AS PARQUET;\n") {
		t.Errorf("missing parquet suffix: %s", got)
	}
}

func TestParquetSchemaBuilder(t *testing.T) {
	got := NewParquetSchemaBuilder(sampleTable()).Build()

	want := "orders_schema = pa.schema([\n" +
		"    (\"id\", pa.int32()),\n" +
		"    (\"name\", pa.string()),\n" +
		"    (\"amount\", pa.decimal128(10, 2)),\n" +
		"])\n"
	if got != want {
		t.Errorf("parquet schema mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestParquetSchemaBuilderEmptyTable(t *testing.T) {
	got := NewParquetSchemaBuilder(parser.Table{Name: "empty"}).Build()

	want := "empty_schema = pa.schema([\n])\n"
	if got != want {
		t.Errorf("empty schema = %q, want %q", got, want)
	}
}

func TestCheckParquetSchema(t *testing.T) {
	if err := CheckParquetSchema(sampleTable()); err != nil {
		t.Errorf("valid schema rejected: %v", err)
	}
}

func TestCheckParquetSchemaAllTargets(t *testing.T) {
	// 每种可能的目标类型都要能通过parquet schema编译
	arrows := []string{
		"pa.bool_()", "pa.int8()", "pa.int16()", "pa.int32()", "pa.int64()",
		"pa.float32()", "pa.float64()", "pa.string()", "pa.binary()",
		"pa.date32()", `pa.timestamp("s")`, "pa.decimal128(20, 6)",
	}

	table := parser.Table{Name: "alltypes"}
	for i, a := range arrows {
		table.Columns = append(table.Columns, parser.Column{
			Name:      "c" + string(rune('a'+i)),
			ArrowType: a,
		})
	}

	if err := CheckParquetSchema(table); err != nil {
		t.Errorf("schema with all targets rejected: %v", err)
	}
}

func TestBuildParquetGoJSONUnknownType(t *testing.T) {
	table := parser.Table{
		Name:    "t",
		Columns: []parser.Column{{Name: "x", ArrowType: "pa.mystery()"}},
	}
	if _, err := BuildParquetGoJSON(table); err == nil {
		t.Error("unknown arrow type should fail translation")
	}
}
