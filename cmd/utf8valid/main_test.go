package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runCmd(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	t.Logf("stderr: %s", stderr.String())
	return code, stdout.String()
}

func TestRunDirectory(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.txt":     "héllo\n",
		"bad.txt":      "hello\xC0\xAF",
		"sub/trunc.md": "ab\xE2\x82",
		"skip.bin":     "\xFF",
	})

	tests := []struct {
		name string
		args []string
		code int
		want []string
	}{
		{
			name: "exclude",
			args: []string{"-exclude", "*.bin", dir},
			code: exitInvalid,
			want: []string{
				filepath.Join(dir, "bad.txt") + `:5: ill-formed UTF-8 ("\xC0")`,
				filepath.Join(dir, "sub", "trunc.md") + `:2: truncated UTF-8 sequence at end of input ("\xE2\x82")`,
			},
		},
		{
			name: "include",
			args: []string{"-include", "*.txt", "-chunk-size", "3", dir},
			code: exitInvalid,
			want: []string{filepath.Join(dir, "bad.txt") + `:5: ill-formed UTF-8 ("\xC0")`},
		},
		{
			name: "single good file",
			args: []string{filepath.Join(dir, "good.txt")},
			code: exitOK,
		},
		{
			name: "explicit file ignores filters",
			args: []string{"-exclude", "*.bin", filepath.Join(dir, "skip.bin")},
			code: exitInvalid,
			want: []string{filepath.Join(dir, "skip.bin") + `:0: ill-formed UTF-8 ("\xFF")`},
		},
		{
			name: "missing file",
			args: []string{filepath.Join(dir, "nope.txt")},
			code: exitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := runCmd(t, "", tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			var lines []string
			if out != "" {
				lines = strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			}
			if strings.Join(lines, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("output:\n%s\nwant:\n%s", out, strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestRunStdin(t *testing.T) {
	code, out := runCmd(t, "plain ascii é")
	if code != exitOK || out != "" {
		t.Errorf("valid stdin: code %d, output %q", code, out)
	}

	code, out = runCmd(t, "ok\xED\xA0\x80", "-")
	if code != exitInvalid {
		t.Errorf("invalid stdin: code %d", code)
	}
	if want := `<stdin>:2: ill-formed UTF-8 ("\xED")` + "\n"; out != want {
		t.Errorf("output %q, want %q", out, want)
	}
}

func TestRunReplace(t *testing.T) {
	code, out := runCmd(t, "a\xC0\xAFb\xE2\x82", "-replace")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if want := "a��b�"; out != want {
		t.Errorf("output %q, want %q", out, want)
	}
}

func TestRunConformance(t *testing.T) {
	code, out := runCmd(t, "", "-conformance", filepath.Join("..", "..", "conformance", "testdata", "utf8tests.txt"))
	if code != exitOK {
		t.Errorf("exit code = %d, output %q", code, out)
	}
	if out != "Passed 35 tests.\n" {
		t.Errorf("output %q", out)
	}

	fixture := filepath.Join(t.TempDir(), "fixture.txt")
	if err := os.WriteFile(fixture, []byte("1:valid hex:FF\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out = runCmd(t, "", "-conformance", fixture)
	if code != exitInvalid || !strings.HasSuffix(out, "Failed 1 tests of 1.\n") {
		t.Errorf("failing fixture: code %d, output %q", code, out)
	}
}

func TestRunBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-chunk-size", "0"},
		{"-chunk-size", "lots"},
		{"-chunk-size", "2GiB"},
		{"-block-size", "12"},
		{"-log-level", "loud"},
		{"-include", "[x"},
		{"-no-such-flag"},
	} {
		if code, _ := runCmd(t, "", args...); code != exitError {
			t.Errorf("%v: exit code = %d, want %d", args, code, exitError)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChunkSize != "64KiB" || cfg.BlockSize != 16 || !cfg.ASCIIFastPath || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}

	t.Setenv("UTF8VALID_CHUNK_SIZE", "7")
	t.Setenv("UTF8VALID_BLOCK_SIZE", "64")
	t.Setenv("UTF8VALID_ASCII_FAST_PATH", "false")
	t.Setenv("UTF8VALID_INCLUDE", "*.txt")
	t.Setenv("UTF8VALID_EXCLUDE", "*.bin,*.png")
	t.Setenv("UTF8VALID_LOG_LEVEL", "debug")
	cfg, err = loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if n, err := cfg.chunkBytes(); err != nil || n != 7 {
		t.Errorf("chunkBytes() = %d, %v, want 7", n, err)
	}
	if cfg.BlockSize != 64 || cfg.ASCIIFastPath {
		t.Errorf("validator config = %+v, want BlockSize 64 without fast path", cfg.validatorConfig())
	}
	if got := splitPatterns(cfg.Include); len(got) != 1 || got[0] != "*.txt" {
		t.Errorf("Include patterns = %q", got)
	}
	if got := splitPatterns(cfg.Exclude); len(got) != 2 {
		t.Errorf("Exclude patterns = %q", got)
	}
	if level, err := cfg.level(); err != nil || level != slog.LevelDebug {
		t.Errorf("level() = %v, %v, want DEBUG", level, err)
	}
}

func TestRunUsesEnvironment(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt": "ok\xC0",
		"b.bin": "\xFF",
	})
	t.Setenv("UTF8VALID_EXCLUDE", "*.bin")
	t.Setenv("UTF8VALID_CHUNK_SIZE", "1")

	code, out := runCmd(t, "", dir)
	if code != exitInvalid {
		t.Errorf("exit code = %d, want %d", code, exitInvalid)
	}
	if want := filepath.Join(dir, "a.txt") + `:2: ill-formed UTF-8 ("\xC0")` + "\n"; out != want {
		t.Errorf("output %q, want %q", out, want)
	}

	t.Setenv("UTF8VALID_BLOCK_SIZE", "12")
	if code, _ := runCmd(t, "", dir); code != exitError {
		t.Errorf("invalid UTF8VALID_BLOCK_SIZE: exit code = %d, want %d", code, exitError)
	}
}
