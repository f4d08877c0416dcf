// Package dotfile implements an offline diagram adapter that writes the board
// as a Graphviz graph instead of calling a whiteboard service.
//
// Nodes keep the coordinates the layout engine assigned them (pinned with
// pos="x,y!"), so rendering with the neato engine reproduces the board
// arrangement. Board units map to points: 72 units are one inch.
//
//	a, _ := dotfile.New("board.svg", dotfile.FormatSVG)
//	res, err := emitter.Emit(ctx, plan) // emitter.Adapter = a
//	err = a.Flush(ctx)
package dotfile

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/goccy/go-graphviz"
	"github.com/google/uuid"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

const pointsPerInch = 72.0

type node struct {
	id string
	n  diagram.Node
}

type edge struct {
	id string
	c  diagram.Connector
}

// Adapter collects drawing commands in memory and writes them on [Adapter.Flush].
type Adapter struct {
	path   string
	format string

	mu          sync.Mutex
	boardID     string
	name        string
	description string
	nodes       []node
	known       map[string]bool
	edges       []edge
}

// New returns an adapter writing to path in the given format. An empty
// format is inferred from the path extension.
func New(path, format string) (*Adapter, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "dotfile: output path is required")
	}
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case FormatDOT, "gv":
		format = FormatDOT
	case FormatSVG:
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "dotfile: unsupported format %q (must be one of: dot, svg)", format)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "dotfile: resolve %s", path)
	}
	return &Adapter{path: abs, format: format, known: make(map[string]bool)}, nil
}

// Path returns the absolute output path.
func (a *Adapter) Path() string { return a.path }

// CreateBoard implements diagram.Adapter. One adapter holds one board.
func (a *Adapter) CreateBoard(_ context.Context, name, description string) (diagram.Board, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.boardID != "" {
		return diagram.Board{}, errors.New(errors.ErrCodeRemoteRejected, "dotfile: board %s already created", a.boardID)
	}
	a.boardID = uuid.NewString()
	a.name = name
	a.description = description
	return diagram.Board{ID: a.boardID, ViewURL: "file://" + filepath.ToSlash(a.path)}, nil
}

// CreateNode implements diagram.Adapter.
func (a *Adapter) CreateNode(_ context.Context, boardID string, n diagram.Node) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.checkBoard(boardID); err != nil {
		return "", err
	}
	id := uuid.NewString()
	a.nodes = append(a.nodes, node{id: id, n: n})
	a.known[id] = true
	return id, nil
}

// CreateConnector implements diagram.Adapter. Both endpoints must be nodes
// created earlier on the same board.
func (a *Adapter) CreateConnector(_ context.Context, boardID string, c diagram.Connector) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.checkBoard(boardID); err != nil {
		return "", err
	}
	if !a.known[c.StartID] || !a.known[c.EndID] {
		return "", errors.New(errors.ErrCodeRemoteRejected, "dotfile: connector %s -> %s references an unknown node", c.From, c.To)
	}
	id := uuid.NewString()
	a.edges = append(a.edges, edge{id: id, c: c})
	return id, nil
}

func (a *Adapter) checkBoard(boardID string) error {
	if a.boardID == "" || boardID != a.boardID {
		return errors.New(errors.ErrCodeRemoteRejected, "dotfile: unknown board %q", boardID)
	}
	return nil
}

// DOT returns the collected board as Graphviz source.
func (a *Adapter) DOT() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", a.name)
	if a.description != "" {
		fmt.Fprintf(&buf, "  comment=%q;\n", a.description)
	}
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  node [fixedsize=true, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, n := range a.nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(nodeAttrs(n.n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range a.edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.c.StartID, e.c.EndID, strings.Join(edgeAttrs(e.c), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n diagram.Node) []string {
	s := n.Style
	attrs := []string{
		fmt.Sprintf("label=%q", PlainText(n.Content)),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Position.X/pointsPerInch, flipY(n.Position.Y)/pointsPerInch),
		fmt.Sprintf("width=%.2f", n.Size.Width/pointsPerInch),
		fmt.Sprintf("height=%.2f", n.Size.Height/pointsPerInch),
		"shape=box",
		`style="rounded,filled"`,
	}
	if s.FillColor != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", s.FillColor))
	}
	if s.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", s.Color))
	}
	if s.FontSize > 0 {
		attrs = append(attrs, fmt.Sprintf("fontsize=%d", s.FontSize))
	}
	switch {
	case s.BorderOpacity == 0 || s.BorderWidth == 0:
		attrs = append(attrs, "penwidth=0")
	default:
		attrs = append(attrs, fmt.Sprintf("penwidth=%g", s.BorderWidth))
		if s.BorderColor != "" {
			attrs = append(attrs, fmt.Sprintf("color=%q", s.BorderColor))
		}
	}
	if s.TextAlign == "left" {
		attrs = append(attrs, `labeljust=l`)
	}
	return attrs
}

// flipY converts board y (growing downward) to Graphviz y (growing upward).
func flipY(y float64) float64 {
	if y == 0 {
		return 0
	}
	return -y
}

func edgeAttrs(c diagram.Connector) []string {
	attrs := []string{}
	if c.Caption != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", c.Caption))
	}
	if c.Line.StrokeColor != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c.Line.StrokeColor))
	}
	if c.Line.StrokeWidth > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%g", c.Line.StrokeWidth))
	}
	if c.Line.FontSize > 0 {
		attrs = append(attrs, fmt.Sprintf("fontsize=%d", c.Line.FontSize))
	}
	attrs = append(attrs, "arrowhead="+arrowFor(c.Line.EndStrokeCap), "arrowtail="+arrowFor(c.Line.StartStrokeCap))
	return attrs
}

func arrowFor(stroke string) string {
	switch stroke {
	case "", "none":
		return "none"
	case "stealth":
		return "vee"
	case "arrow":
		return "open"
	default:
		return "normal"
	}
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// PlainText strips markup from shape content and decodes entities.
func PlainText(content string) string {
	return html.UnescapeString(tagRe.ReplaceAllString(content, ""))
}

// Flush writes the board to the output path.
func (a *Adapter) Flush(ctx context.Context) error {
	dot := a.DOT()
	data := []byte(dot)
	if a.format == FormatSVG {
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "dotfile: render svg")
		}
		data = svg
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeRemoteUnavailable, err, "dotfile: create %s", filepath.Dir(a.path))
	}
	if err := os.WriteFile(a.path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRemoteUnavailable, err, "dotfile: write %s", a.path)
	}
	return nil
}

// RenderSVG lays out a DOT graph with neato, honoring pinned positions, and
// returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
