package dotfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/layout"
	"github.com/matzehuels/archboard/pkg/source"
)

func TestNewFormat(t *testing.T) {
	tests := []struct {
		path, format string
		want         string
		wantErr      bool
	}{
		{"out/board.dot", "", FormatDOT, false},
		{"board.gv", "", FormatDOT, false},
		{"board.svg", "", FormatSVG, false},
		{"board.txt", "svg", FormatSVG, false},
		{"board.png", "", "", true},
		{"", "dot", "", true},
	}
	for _, tt := range tests {
		a, err := New(tt.path, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q, %q) err = %v, wantErr %v", tt.path, tt.format, err, tt.wantErr)
			continue
		}
		if err == nil && a.format != tt.want {
			t.Errorf("New(%q, %q) format = %q, want %q", tt.path, tt.format, a.format, tt.want)
		}
	}
}

func TestEmitToDOTFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.dot")
	a, err := New(path, "")
	if err != nil {
		t.Fatal(err)
	}

	g := graph.Assemble([]source.ModuleRecord{
		{FileName: "server.ts", Name: "server", Imports: []string{"routes"}},
		{FileName: "routes.ts", Name: "routes", Exports: []string{"registerRoutes"}},
	})
	plan := diagram.Plan(g, layout.Row{}.Place(g.Names()), diagram.Options{Title: "Demo"})

	ctx := context.Background()
	res, err := (&diagram.Emitter{Adapter: a}).Emit(ctx, plan)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Board.ViewURL, "file://") || !strings.HasSuffix(res.Board.ViewURL, "board.dot") {
		t.Errorf("ViewURL = %q", res.Board.ViewURL)
	}
	if err := a.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	for _, want := range []string{
		"digraph G {",
		`label="Demo"`,
		`label="server.ts"`,
		`label="Exports:\n• registerRoutes"`,
		`pos="-2.08,0.00!"`,
		`fillcolor="#a6ccf5"`,
		`label="imports"`,
		"arrowhead=vee",
		"-> " + `"` + res.NodeIDs["routes"] + `"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %s\n%s", want, dot)
		}
	}
}

func TestAdapterRejectsUnknownIDs(t *testing.T) {
	a, err := New(filepath.Join(t.TempDir(), "b.dot"), "")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := a.CreateNode(ctx, "nope", diagram.Node{}); !errors.Is(err, errors.ErrCodeRemoteRejected) {
		t.Errorf("node on unknown board: err = %v", err)
	}

	b, err := a.CreateBoard(ctx, "x", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.CreateBoard(ctx, "y", ""); !errors.Is(err, errors.ErrCodeRemoteRejected) {
		t.Errorf("second board: err = %v", err)
	}
	id, err := a.CreateNode(ctx, b.ID, diagram.Node{Kind: diagram.CreateModuleNode})
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.CreateConnector(ctx, b.ID, diagram.Connector{StartID: id, EndID: "ghost"})
	if !errors.Is(err, errors.ErrCodeRemoteRejected) {
		t.Errorf("connector to unknown node: err = %v", err)
	}
}

func TestPlainText(t *testing.T) {
	tests := map[string]string{
		"<strong>a.ts</strong>":               "a.ts",
		`<a href="https://x.test">Open</a>`:   "Open",
		"<strong>A &amp; B</strong>":          "A & B",
		"<strong>Exports:</strong>\n• f\n• g": "Exports:\n• f\n• g",
	}
	for in, want := range tests {
		if got := PlainText(in); got != want {
			t.Errorf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}
