package diagram

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/layout"
	"github.com/matzehuels/archboard/pkg/source"
)

func TestPlanServerRoutes(t *testing.T) {
	g := serverRoutes()
	pos := layout.Row{Spacing: 300}.Place(g.Names())
	cmds := Plan(g, pos, Options{})

	var kinds []Kind
	for _, c := range cmds {
		kinds = append(kinds, c.Kind)
	}
	want := []Kind{CreateBoard, CreateTitleNode, CreateModuleNode, CreateModuleNode, CreateAnnotationNode, CreateConnector}
	if !slices.Equal(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}

	board := cmds[0]
	if board.Name != DefaultTitle {
		t.Errorf("board name = %q, want %q", board.Name, DefaultTitle)
	}
	if board.Description != "Auto-generated architecture diagram" {
		t.Errorf("description = %q", board.Description)
	}

	server, routes := cmds[2], cmds[3]
	if server.Content != "<strong>server.ts</strong>" {
		t.Errorf("server content = %q", server.Content)
	}
	if server.Position != (Point{X: -150, Y: 0}) || routes.Position != (Point{X: 150, Y: 0}) {
		t.Errorf("positions = %v, %v", server.Position, routes.Position)
	}
	if server.Style.FillColor != "#a6ccf5" || routes.Style.FillColor != "#93d275" {
		t.Errorf("fills = %s, %s", server.Style.FillColor, routes.Style.FillColor)
	}

	ann := cmds[4]
	if ann.Module != "routes" {
		t.Errorf("annotation module = %q, want routes", ann.Module)
	}
	if ann.Position != (Point{X: 150, Y: 90}) {
		t.Errorf("annotation position = %v", ann.Position)
	}
	if ann.Size != (Size{Width: 220, Height: 52}) {
		t.Errorf("annotation size = %v", ann.Size)
	}
	if ann.Style.BorderColor != routes.Style.FillColor {
		t.Errorf("annotation border = %s, want module fill", ann.Style.BorderColor)
	}
	if ann.Content != "<strong>Exports:</strong>\n• registerRoutes" {
		t.Errorf("annotation content = %q", ann.Content)
	}

	conn := cmds[5]
	if conn.From != "server" || conn.To != "routes" || conn.Caption != "imports" || conn.Shape != "curved" {
		t.Errorf("connector = %+v", conn)
	}
	if conn.Line.EndStrokeCap != "stealth" || conn.Line.StartStrokeCap != "none" {
		t.Errorf("connector caps = %+v", conn.Line)
	}
}

func TestPlanLink(t *testing.T) {
	g := graph.Assemble(nil)
	link := "https://github.com/acme/app/pull/7"
	cmds := Plan(g, nil, Options{Title: "PR 7", Link: link})

	if len(cmds) != 3 {
		t.Fatalf("len = %d, want 3", len(cmds))
	}
	if got := cmds[0].Description; got != "Auto-generated architecture diagram for "+link {
		t.Errorf("description = %q", got)
	}
	if cmds[1].Content != "<strong>PR 7</strong>" {
		t.Errorf("title content = %q", cmds[1].Content)
	}
	if cmds[2].Kind != CreateLinkNode {
		t.Fatalf("third command = %s, want link", cmds[2].Kind)
	}
	wantLink := `<a href="` + link + `">View Pull Request on GitHub</a>`
	if cmds[2].Content != wantLink {
		t.Errorf("link content = %q, want %q", cmds[2].Content, wantLink)
	}
	if cmds[2].Position != (Point{X: 0, Y: -180}) {
		t.Errorf("link position = %v", cmds[2].Position)
	}
}

func TestPlanCustomClassifier(t *testing.T) {
	g := graph.Assemble([]source.ModuleRecord{{FileName: "db.js", Name: "db"}})
	cmds := Plan(g, nil, Options{Classify: func(string) string { return "#000000" }})
	if got := cmds[2].Style.FillColor; got != "#000000" {
		t.Errorf("fill = %s, want classifier color", got)
	}
	if cmds[2].Position != (Point{}) {
		t.Errorf("missing position should default to origin, got %v", cmds[2].Position)
	}
}

func TestPlanEscapesContent(t *testing.T) {
	cmds := Plan(graph.Assemble(nil), nil, Options{Title: "A & B"})
	if !strings.Contains(cmds[1].Content, "A &amp; B") {
		t.Errorf("title content = %q", cmds[1].Content)
	}
}

func TestAnnotationHeight(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 52},
		{2, 74},
		{5, 140},
	}
	for _, tt := range tests {
		if got := AnnotationHeight(tt.n); got != tt.want {
			t.Errorf("AnnotationHeight(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	tests := map[string]string{
		"server":  "#a6ccf5",
		"auth":    "#f16c7f",
		"routes":  "#93d275",
		"helpers": "#fff9b1",
	}
	for name, want := range tests {
		if got := p.Classify(name); got != want {
			t.Errorf("Classify(%q) = %s, want %s", name, got, want)
		}
	}

	custom := p.With(map[string]string{"db": "#123456"})
	if custom.Classify("db") != "#123456" || custom.Classify("server") != "#a6ccf5" {
		t.Error("With should layer overrides over the base palette")
	}
	if _, ok := p.Colors["db"]; ok {
		t.Error("With must not mutate the receiver")
	}
	if (Palette{}).Classify("x") != DefaultColor {
		t.Error("zero palette should fall back to DefaultColor")
	}
}

func TestKindString(t *testing.T) {
	if CreateConnector.String() != "create_connector" {
		t.Errorf("String() = %q", CreateConnector.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("out of range kind = %q", Kind(99).String())
	}
	if !CreateAnnotationNode.IsNode() || CreateBoard.IsNode() || CreateConnector.IsNode() {
		t.Error("IsNode classification wrong")
	}
}
