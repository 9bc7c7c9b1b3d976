package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const sampleFile = `id utt-443
start 0
end 3
numNodes 4
numEdges 4
node 0 0.00
node 1 0.28
node 2 0.28
node 3 1.50
edge 0 1 hello -64 -12
edge 0 2 -silence- -50 -3
edge 1 3 world -55 -9
edge 2 3 world -58 -9
`

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	// Keep command runs hermetic: caches and config under a temp home.
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return New(io.Discard, log.ErrorLevel)
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "utt-443.lat")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func runCommand(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestCacheDirDefault(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	c := New(io.Discard, log.ErrorLevel)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join(cacheHome, appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	c := New(io.Discard, log.ErrorLevel)
	c.Config.CacheDir = "/tmp/elsewhere"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/elsewhere" {
		t.Errorf("cacheDir() = %q, want configured path", dir)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "text" {
		t.Errorf("parseFormats(\"\") = %v, want [text]", got)
	}
	if got := parseFormats("json,dot"); len(got) != 2 || got[0] != "json" || got[1] != "dot" {
		t.Errorf("parseFormats(\"json,dot\") = %v", got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.ErrorLevel)
	root := c.RootCommand()

	want := []string{"decode", "count", "info", "query", "export", "save", "batch", "serve", "archive", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestDecodeCommand(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)

	if err := runCommand(t, c, "decode", path); err != nil {
		t.Fatalf("decode error = %v", err)
	}
}

func TestDecodeCommandMissingFile(t *testing.T) {
	c := newTestCLI(t)

	err := runCommand(t, c, "decode", filepath.Join(t.TempDir(), "nope.lat"))
	if err == nil {
		t.Fatal("decode on missing file should fail")
	}
}

func TestDecodeCommandOutput(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)
	out := filepath.Join(t.TempDir(), "result.json")

	if err := runCommand(t, c, "decode", path, "-o", out, "-f", "json"); err != nil {
		t.Fatalf("decode error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`"hello"`)) {
		t.Errorf("json output missing hypothesis words: %s", data)
	}
}

func TestCountCommand(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)

	if err := runCommand(t, c, "count", path); err != nil {
		t.Fatalf("count error = %v", err)
	}
}

func TestInfoCommand(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)

	if err := runCommand(t, c, "info", path); err != nil {
		t.Fatalf("info error = %v", err)
	}
}

func TestQueryHitsCommand(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)

	if err := runCommand(t, c, "query", "hits", path, "world"); err != nil {
		t.Fatalf("query hits error = %v", err)
	}
}

func TestQueryWordsAtRequiresTime(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)

	if err := runCommand(t, c, "query", "words-at", path); err == nil {
		t.Fatal("words-at without --time should fail")
	}
}

func TestExportCommandDOT(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)
	out := filepath.Join(t.TempDir(), "out.dot")

	if err := runCommand(t, c, "export", path, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("export error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("dot output missing digraph header: %s", data)
	}
}

func TestSaveCommandRoundTrip(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)
	out := filepath.Join(t.TempDir(), "canonical.lat")

	if err := runCommand(t, c, "save", path, "-o", out); err != nil {
		t.Fatalf("save error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != sampleFile {
		t.Errorf("canonical rewrite differs from sample")
	}
}

func TestBatchCommand(t *testing.T) {
	c := newTestCLI(t)
	path := writeSample(t)

	if err := runCommand(t, c, "batch", path, path); err != nil {
		t.Fatalf("batch error = %v", err)
	}
}

func TestArchiveUnconfigured(t *testing.T) {
	c := newTestCLI(t)

	if err := runCommand(t, c, "archive", "list"); err == nil {
		t.Fatal("archive without mongo config should fail")
	}
}
