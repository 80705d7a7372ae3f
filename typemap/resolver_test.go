package typemap

import (
	"errors"
	"testing"

	"myhp/diag"
)

func TestResolveRulePrecedence(t *testing.T) {
	res := NewResolver(false, false, nil)

	cases := []struct {
		declared string
		hive     string
		arrow    string
	}{
		{"tinyint(1)", "BOOLEAN", "pa.bool_()"},
		{"tinyint(4)", "TINYINT", "pa.int8()"},
		{"tinyint", "TINYINT", "pa.int8()"},
		{"smallint(6)", "SMALLINT", "pa.int16()"},
		{"mediumint(9)", "INT", "pa.int32()"},
		{"int(11)", "INT", "pa.int32()"},
		{"bigint(20) unsigned", "BIGINT", "pa.int64()"},
		{"float", "FLOAT", "pa.float32()"},
		{"double", "DOUBLE", "pa.float64()"},
		{"varchar(255)", "STRING", "pa.string()"},
		{"char(36)", "STRING", "pa.string()"},
		{"text", "STRING", "pa.string()"},
		{"blob", "BINARY", "pa.binary()"},
		{"datetime", "TIMESTAMP", `pa.timestamp("s")`},
		{"datetime(6)", "TIMESTAMP", `pa.timestamp("s")`},
		{"timestamp", "TIMESTAMP", `pa.timestamp("s")`},
		{"date", "DATE", "pa.date32()"},
		{"time", "STRING", "pa.string()"},
		{"year(4)", "INT", "pa.int32()"},
		{"enum('a','b')", "STRING", "pa.string()"},
		{"set('x','y')", "STRING", "pa.string()"},
		{"json", "STRING", "pa.string()"},
		{"geometry", "STRING", "pa.string()"},
	}

	for _, c := range cases {
		r, err := res.Resolve("col", c.declared)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", c.declared, err)
		}
		if r.Hive != c.hive || r.Arrow != c.arrow {
			t.Errorf("Resolve(%q) = (%s, %s), want (%s, %s)", c.declared, r.Hive, r.Arrow, c.hive, c.arrow)
		}
	}
}

func TestResolveDecimal(t *testing.T) {
	res := NewResolver(false, false, nil)

	r, err := res.Resolve("amount", "decimal(10,2)")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Hive != "DECIMAL(10,2)" {
		t.Errorf("Hive type = %s, want DECIMAL(10,2)", r.Hive)
	}
	if r.Arrow != "pa.decimal128(10, 2)" {
		t.Errorf("Arrow type = %s, want pa.decimal128(10, 2)", r.Arrow)
	}

	// 逗号后带空格的写法同样要能提取参数
	r, err = res.Resolve("amount", "DECIMAL(20, 6)")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Hive != "DECIMAL(20,6)" || r.Arrow != "pa.decimal128(20, 6)" {
		t.Errorf("got (%s, %s)", r.Hive, r.Arrow)
	}
}

func TestResolveNormalization(t *testing.T) {
	res := NewResolver(false, false, nil)

	r1, err := res.Resolve("name", "  VARCHAR(255)  ")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r2, err := res.Resolve("name", "varchar(255)")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r1 != r2 {
		t.Errorf("normalization mismatch: %+v vs %+v", r1, r2)
	}
}

func TestResolveIdempotent(t *testing.T) {
	res := NewResolver(false, false, nil)

	first, err := res.Resolve("c", "bigint(20)")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := res.Resolve("c", "bigint(20)")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first != second {
		t.Errorf("repeated resolution differs: %+v vs %+v", first, second)
	}
}

func TestResolveFallback(t *testing.T) {
	rec := &diag.Recorder{}
	res := NewResolver(false, false, rec)

	r, err := res.Resolve("weird", "hyperloglog")
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if !r.Fallback {
		t.Error("Fallback flag not set")
	}
	if r.Hive != "STRING" || r.Arrow != "pa.string()" {
		t.Errorf("fallback types = (%s, %s)", r.Hive, r.Arrow)
	}
	// 每个未知类型仅产生一条警告
	if n := rec.CountLevel(diag.Warning); n != 1 {
		t.Errorf("warning count = %d, want 1", n)
	}
}

func TestResolveStrict(t *testing.T) {
	rec := &diag.Recorder{}
	res := NewResolver(true, false, rec)

	_, err := res.Resolve("weird", "hyperloglog")
	if err == nil {
		t.Fatal("strict mode should return an error for unknown types")
	}

	var unmapped *UnmappedTypeError
	if !errors.As(err, &unmapped) {
		t.Fatalf("error type = %T, want *UnmappedTypeError", err)
	}
	if unmapped.Column != "weird" || unmapped.DeclaredType != "hyperloglog" {
		t.Errorf("error fields = %+v", unmapped)
	}
}

func TestResolveVerboseNote(t *testing.T) {
	t.Run("verbose emits note", func(t *testing.T) {
		rec := &diag.Recorder{}
		res := NewResolver(false, true, rec)
		if _, err := res.Resolve("flag", "tinyint(1)"); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if n := rec.CountLevel(diag.Info); n != 1 {
			t.Errorf("info count = %d, want 1", n)
		}
	})

	t.Run("silent without verbose", func(t *testing.T) {
		rec := &diag.Recorder{}
		res := NewResolver(false, false, rec)
		if _, err := res.Resolve("flag", "tinyint(1)"); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if n := len(rec.Messages()); n != 0 {
			t.Errorf("message count = %d, want 0", n)
		}
	})
}
