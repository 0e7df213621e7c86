package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeExtension writes a cartera-<name> shell script in a directory added to the PATH.
func writeExtension(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "cartera-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}

func TestRunExtension(t *testing.T) {
	dir := writeExtension(t, "hello", `{
  echo "$CARTERA_DATA_DIR"
  echo "$CARTERA_VERBOSE"
  echo "$1"
} > "$2"
`)
	cfg.DataDir = "/tmp/data"
	out := filepath.Join(dir, "out.txt")

	found, code := RunExtension("hello", []string{"world", out})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}
	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "/tmp/data\nfalse\nworld\n"
	if string(content) != want {
		t.Errorf("extension output = %q, want %q", content, want)
	}
}

func TestRunExtension_ExitCode(t *testing.T) {
	writeExtension(t, "fail", "exit 3\n")

	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension() = %v, %d, want true, 3", found, code)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	if found, code := RunExtension("does-not-exist", nil); found || code != 0 {
		t.Errorf("RunExtension() = %v, %d, want false, 0", found, code)
	}
}

func TestExtensionEnv(t *testing.T) {
	cfg.DataDir = "somewhere"
	var got string
	for _, kv := range extensionEnv() {
		if v, ok := strings.CutPrefix(kv, EnvDataDir+"="); ok {
			got = v
		}
	}
	if got != "somewhere" {
		t.Errorf("extensionEnv() %s = %q, want %q", EnvDataDir, got, "somewhere")
	}
}
