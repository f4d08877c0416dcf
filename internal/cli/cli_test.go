package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/source"
)

// captureOutput redirects status output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// clearEnv unsets the variables the config layer reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MIRO_API_TOKEN", "BOARD_NAME", "GITHUB_URL", "GITHUB_OUTPUT",
		"ARCHBOARD_REDIS_ADDR", "ARCHBOARD_SOURCE_DIR", "ARCHBOARD_CONCURRENCY",
	} {
		t.Setenv(k, "")
	}
}

func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"server.ts": "import { register } from './routes'\nexport function start() {}\n",
		"routes.ts": "export const register = () => {}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"diagram", "graph", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "env-file"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestDiagramHelpListsScannedSuffixes(t *testing.T) {
	long := New(io.Discard, LogInfo).diagramCommand().Long
	for _, suffix := range source.Suffixes {
		if !strings.Contains(long, suffix) {
			t.Errorf("help does not mention %s", suffix)
		}
	}
	for _, unsupported := range []string{".tsx", ".jsx"} {
		if strings.Contains(long, unsupported) {
			t.Errorf("help mentions unscanned suffix %s", unsupported)
		}
	}
}

func TestAppendOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(path, []byte("existing=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := appendOutput(path, "board_url", "https://miro.com/app/board/abc="); err != nil {
		t.Fatalf("appendOutput: %v", err)
	}
	if err := appendOutput(path, "notes", "a\nb"); err != nil {
		t.Fatalf("appendOutput: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "existing=1\nboard_url=https://miro.com/app/board/abc=\nnotes<<ARCHBOARD_EOF\na\nb\nARCHBOARD_EOF\n"
	if string(data) != want {
		t.Errorf("output file:\n%q\nwant:\n%q", data, want)
	}
}

func TestAppendOutputBadPath(t *testing.T) {
	err := appendOutput(filepath.Join(t.TempDir(), "missing", "out"), "k", "v")
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("err = %v, want INTERNAL_ERROR", err)
	}
}

func TestDiagramDryRun(t *testing.T) {
	clearEnv(t)
	buf := captureOutput(t)
	dir := writeSources(t)
	ghOut := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_OUTPUT", ghOut)

	if err := execute(t, "diagram", "--adapter", "dry-run", "--dir", dir, "--quiet"); err != nil {
		t.Fatalf("diagram: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"2 modules", "1 edges", "2 nodes, 2 notes, 1 connectors", "board_url=memory://boards/"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	data, err := os.ReadFile(ghOut)
	if err != nil {
		t.Fatalf("read step output: %v", err)
	}
	if !strings.HasPrefix(string(data), "board_url=memory://boards/") {
		t.Errorf("step output = %q", data)
	}
}

func TestDiagramDOTFile(t *testing.T) {
	clearEnv(t)
	captureOutput(t)
	dir := writeSources(t)
	path := filepath.Join(t.TempDir(), "board.dot")

	if err := execute(t, "diagram", "-a", "dot", "-o", path, "-d", dir, "-q", "--title", "Web"); err != nil {
		t.Fatalf("diagram: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("not a DOT file:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Web"`) {
		t.Errorf("title missing:\n%s", dot)
	}
}

func TestDiagramErrors(t *testing.T) {
	clearEnv(t)
	captureOutput(t)
	dir := writeSources(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing directory", []string{"diagram", "-a", "dry-run", "-q", "-d", filepath.Join(dir, "nope")}, errors.ErrCodeDirectoryNotFound},
		{"missing directory before redis", []string{"diagram", "-a", "redis", "--redis-addr", "127.0.0.1:1", "-q", "-d", filepath.Join(dir, "nope")}, errors.ErrCodeDirectoryNotFound},
		{"unknown adapter", []string{"diagram", "-a", "paper", "-q", "-d", dir}, errors.ErrCodeInvalidInput},
		{"miro without token", []string{"diagram", "-q", "-d", dir}, errors.ErrCodeInvalidConfig},
		{"bad layout", []string{"diagram", "-a", "dry-run", "-q", "-d", dir, "--layout", "spiral"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGraphSummary(t *testing.T) {
	clearEnv(t)
	buf := captureOutput(t)
	dir := writeSources(t)

	if err := execute(t, "graph", "--dir", dir); err != nil {
		t.Fatalf("graph: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"2 modules", "server", "routes", "diagram --dir"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestGraphJSON(t *testing.T) {
	clearEnv(t)
	captureOutput(t)
	dir := writeSources(t)
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := execute(t, "graph", "-d", dir, "-o", path); err != nil {
		t.Fatalf("graph: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(doc.Nodes))
	}
	if len(doc.Edges) != 1 || doc.Edges[0] != (graph.Edge{From: "server", To: "routes"}) {
		t.Errorf("edges = %v, want [server→routes]", doc.Edges)
	}
}
