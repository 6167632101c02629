package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults unchanged, got %+v", cfg)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("dir: /data\nport: 7000\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := LoadFile(path, Defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/data" || cfg.Port != 7000 {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.DBFilename != Defaults().DBFilename {
		t.Fatalf("expected unset fields to keep their base value, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Defaults(), false},
		{"bad port", Config{Dir: ".", DBFilename: "x", Port: 0}, true},
		{"empty dir", Config{Dir: "", DBFilename: "x", Port: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("got err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestGet(t *testing.T) {
	cfg := Config{Dir: "/tmp/data", DBFilename: "dump.rdb"}
	if v, ok := cfg.Get("dir"); !ok || v != "/tmp/data" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if v, ok := cfg.Get("dbfilename"); !ok || v != "dump.rdb" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if _, ok := cfg.Get("maxmemory"); ok {
		t.Fatalf("expected unsupported parameter to report ok=false")
	}
}
