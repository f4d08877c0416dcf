package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/observability"
	"github.com/matzehuels/archboard/pkg/whiteboard"
)

func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func serverRoutesDir(t *testing.T) string {
	return writeSource(t, map[string]string{
		"server.ts": "import { registerRoutes } from './routes';\nconst app = start();\n",
		"routes.ts": "export function registerRoutes(app) {}\n",
		"README.md": "not a module",
	})
}

func TestExecuteServerRoutes(t *testing.T) {
	rec := whiteboard.NewRecorder()
	runner := NewRunner(rec, log.New(os.Stderr))

	res, err := runner.Execute(context.Background(), Options{SourceDir: serverRoutesDir(t)})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Stats.ModuleCount != 2 || res.Stats.EdgeCount != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if rec.Count(diagram.CreateBoard) != 1 ||
		rec.Count(diagram.CreateModuleNode) != 2 ||
		rec.Count(diagram.CreateAnnotationNode) != 1 ||
		rec.Count(diagram.CreateConnector) != 1 {
		t.Errorf("unexpected call counts in %+v", rec.Calls())
	}
	if calls := rec.Calls(); calls[0].Kind != diagram.CreateBoard {
		t.Errorf("first call = %s, want create_board", calls[0].Kind)
	}
	if calls := rec.Calls(); calls[0].Name != DefaultTitle {
		t.Errorf("board name = %q", calls[0].Name)
	}
	if res.Emit.Board.ViewURL == "" {
		t.Error("missing board URL")
	}
}

func TestExecutePassesTitleAndLinkThrough(t *testing.T) {
	title := strings.Repeat("Checkout ", 10)
	rec := whiteboard.NewRecorder()

	_, err := NewRunner(rec, nil).Execute(context.Background(), Options{
		SourceDir: serverRoutesDir(t),
		Title:     title,
		Link:      "octo/repo#12",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	calls := rec.Calls()
	if calls[0].Name != title {
		t.Errorf("board name = %q, want %q", calls[0].Name, title)
	}
	if rec.Count(diagram.CreateLinkNode) != 1 {
		t.Fatalf("link nodes = %d, want 1", rec.Count(diagram.CreateLinkNode))
	}
	for _, c := range calls {
		if c.Kind == diagram.CreateLinkNode && !strings.Contains(c.Node.Content, `href="octo/repo#12"`) {
			t.Errorf("link content = %q", c.Node.Content)
		}
	}
}

func TestExecuteMissingDirectoryMakesNoCalls(t *testing.T) {
	rec := whiteboard.NewRecorder()
	runner := NewRunner(rec, nil)

	_, err := runner.Execute(context.Background(), Options{SourceDir: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, errors.ErrCodeDirectoryNotFound) {
		t.Fatalf("err = %v, want DIRECTORY_NOT_FOUND", err)
	}
	if n := len(rec.Calls()); n != 0 {
		t.Errorf("adapter called %d times before scan failure", n)
	}
}

func TestAnalyzeLayered(t *testing.T) {
	dir := writeSource(t, map[string]string{
		"app.ts":  "import a from './lib';\n",
		"lib.ts":  "import b from './util';\nexport const lib = 1;\n",
		"util.js": "export function util() {}\n",
	})
	runner := NewRunner(nil, nil)

	a, err := runner.Analyze(context.Background(), Options{SourceDir: dir, Layout: "layered"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Graph.NodeCount() != 3 {
		t.Fatalf("nodes = %d, want 3", a.Graph.NodeCount())
	}
	if a.Positions["app"].Y >= a.Positions["lib"].Y || a.Positions["lib"].Y >= a.Positions["util"].Y {
		t.Errorf("layered positions not ordered by depth: %+v", a.Positions)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	analyzed, emitted int
	lastErr           error
}

func (h *countingHooks) OnAnalyzeComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	h.analyzed++
	h.lastErr = err
}

func (h *countingHooks) OnEmitComplete(_ context.Context, _ string, _ time.Duration, err error) {
	h.emitted++
	h.lastErr = err
}

func TestExecuteReportsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	runner := NewRunner(whiteboard.NewRecorder(), nil)
	if _, err := runner.Execute(context.Background(), Options{SourceDir: serverRoutesDir(t)}); err != nil {
		t.Fatal(err)
	}
	if hooks.analyzed != 1 || hooks.emitted != 1 || hooks.lastErr != nil {
		t.Errorf("hooks = %+v", hooks)
	}
}

type flushRecorder struct {
	*whiteboard.Recorder
	flushed bool
}

func (f *flushRecorder) Flush(context.Context) error {
	f.flushed = true
	return nil
}

func TestExecuteFlushesBufferedAdapters(t *testing.T) {
	f := &flushRecorder{Recorder: whiteboard.NewRecorder()}
	if _, err := NewRunner(f, nil).Execute(context.Background(), Options{SourceDir: serverRoutesDir(t)}); err != nil {
		t.Fatal(err)
	}
	if !f.flushed {
		t.Error("Flush was not called")
	}
}
