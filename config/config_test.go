package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"sources": [
			{
				"name": "main",
				"mysql": {"host": "127.0.0.1", "port": 3306, "username": "root", "password": "secret", "database": "shop"},
				"hive_output": "out/hive.sql"
			}
		]
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.TempDir != "./temp" {
		t.Errorf("TempDir default = %s", cfg.TempDir)
	}
	if cfg.Parallelism != 4 {
		t.Errorf("Parallelism default = %d", cfg.Parallelism)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.DelayMs != 100 {
		t.Errorf("retry defaults = %+v", cfg.Retry)
	}
	if cfg.Parser.DDLParseTimeoutSeconds != 60 {
		t.Errorf("parse timeout default = %d", cfg.Parser.DDLParseTimeoutSeconds)
	}
	if cfg.Lock.LockDurationSeconds != 60 {
		t.Errorf("lock duration default = %d", cfg.Lock.LockDurationSeconds)
	}
}

func TestLoadConfigNoSources(t *testing.T) {
	path := writeConfig(t, `{"sources": []}`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("config without sources should fail validation")
	}
}

func TestGetMySQLDSNByIndex(t *testing.T) {
	cfg := &Config{
		Sources: []SourceConfig{
			{
				Name: "main",
				MySQL: DatabaseConfig{
					Host: "db.local", Port: 3307,
					Username: "app", Password: "pw", Database: "shop",
				},
			},
		},
	}

	want := "app:pw@tcp(db.local:3307)/shop"
	if dsn := cfg.GetMySQLDSNByIndex(0); dsn != want {
		t.Errorf("dsn = %s, want %s", dsn, want)
	}
	if dsn := cfg.GetMySQLDSNByIndex(5); dsn != "" {
		t.Errorf("out of range dsn = %s, want empty", dsn)
	}
}

func TestGetSourceByName(t *testing.T) {
	cfg := &Config{Sources: []SourceConfig{{Name: "a"}, {Name: "b"}}}

	src, idx, ok := cfg.GetSourceByName("b")
	if !ok || idx != 1 || src.Name != "b" {
		t.Errorf("got (%+v, %d, %v)", src, idx, ok)
	}
	if _, _, ok := cfg.GetSourceByName("missing"); ok {
		t.Error("missing source should not be found")
	}
}
