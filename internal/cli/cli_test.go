package cli

import (
	"os"
	"path/filepath"
	"testing"

	"redislite/internal/config"
	"redislite/internal/rdb"
	"redislite/internal/store"
)

func TestLoadSnapshotMissingFileIsNotAnError(t *testing.T) {
	cfg := mustConfig(t, t.TempDir(), "dump.rdb")
	ks := store.New()
	if err := loadSnapshot(ks, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ks.Keys()) != 0 {
		t.Fatalf("expected empty keyspace")
	}
}

func TestLoadSnapshotPopulatesKeyspace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.rdb")
	writeMinimalRDB(t, path)

	cfg := mustConfig(t, dir, "dump.rdb")
	ks := store.New()
	if err := loadSnapshot(ks, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := ks.Get(store.NewKey([]byte("foo")))
	if !ok || string(v) != "bar" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func mustConfig(t *testing.T, dir, dbFilename string) config.Config {
	t.Helper()
	return config.Config{Dir: dir, DBFilename: dbFilename, Port: 6379}
}

func writeMinimalRDB(t *testing.T, path string) {
	t.Helper()
	var buf []byte
	buf = append(buf, []byte("REDIS0011")...)
	buf = append(buf, 0x00)       // string type
	buf = append(buf, 3, 'f', 'o', 'o')
	buf = append(buf, 3, 'b', 'a', 'r')
	buf = append(buf, 0xFF)
	buf = append(buf, make([]byte, 8)...)
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	// Sanity check the fixture parses on its own before exercising loadSnapshot.
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()
	if _, err := rdb.Read(f); err != nil {
		t.Fatalf("fixture does not parse: %v", err)
	}
}
