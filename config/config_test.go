package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/cartera/date"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		DataDir:   "public/data",
		Addr:      ":3000",
		LogLevel:  "info",
		LogPretty: true,
		IndexFrom: date.New(2010, time.January, 1),
		CacheSize: 64,
	}
	if *c != want {
		t.Errorf("Load() = %+v, want %+v", *c, want)
	}
}

func TestLoad_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cartera.yaml")
	content := "data_dir: /srv/cartera\ncache_size: 8\nindex_schedule: \"@daily\"\nindex_from: \"2020-01-01\"\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CARTERA_ADDR", ":8080")
	t.Setenv("CARTERA_CACHE_SIZE", "16")

	c, err := Load(file)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.DataDir != "/srv/cartera" || c.IndexSchedule != "@daily" {
		t.Errorf("Load() = %q, %q, want the file values", c.DataDir, c.IndexSchedule)
	}
	if c.IndexFrom != date.New(2020, time.January, 1) {
		t.Errorf("Load().IndexFrom = %v, want 2020-01-01", c.IndexFrom)
	}
	// the environment wins over the file
	if c.Addr != ":8080" || c.CacheSize != 16 {
		t.Errorf("Load() = %q, %d, want the environment values", c.Addr, c.CacheSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CARTERA_INDEX_FROM", "yesterday")
	if _, err := Load(""); err == nil {
		t.Errorf("Load() with an invalid index_from should fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load() of a missing file should fail")
	}
}
