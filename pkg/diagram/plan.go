package diagram

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/layout"
)

// Board furniture.
const (
	DefaultTitle     = "Architecture Diagram"
	DefaultLinkLabel = "View Pull Request on GitHub"
	descriptionBase  = "Auto-generated architecture diagram"
)

// Shape geometry and styling constants.
const (
	colorInk     = "#1a1a1a"
	colorWhite   = "#ffffff"
	colorPanel   = "#f5f6f8"
	shapeRounded = "round_rectangle"
	curveShape   = "curved"
	importsLabel = "imports"

	titleY, linkY           = -250.0, -180.0
	titleWidth, titleHeight = 500.0, 70.0
	linkHeight              = 40.0

	moduleWidth, moduleHeight = 220.0, 60.0

	annotationOffset    = 90.0
	annotationBase      = 30.0
	annotationPerSymbol = 22.0
)

// Options configures [Plan].
type Options struct {
	// Title is the board name and title node label.
	Title string

	// Link is an optional URL rendered as a link node and mentioned in
	// the board description.
	Link string

	// LinkLabel is the anchor text of the link node.
	LinkLabel string

	// Classify picks module fill colors. Nil uses [DefaultPalette].
	Classify Classifier
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Title) == "" {
		o.Title = DefaultTitle
	}
	if o.LinkLabel == "" {
		o.LinkLabel = DefaultLinkLabel
	}
	if o.Classify == nil {
		o.Classify = DefaultPalette().Classify
	}
	return o
}

// Plan builds the ordered command list for g. Nodes are emitted in the
// graph's discovery order at their entry in positions; a node missing from
// positions is placed at the origin.
func Plan(g *graph.Graph, positions layout.Positions, opts Options) []Command {
	opts = opts.withDefaults()

	cmds := make([]Command, 0, 2+2*g.NodeCount()+g.EdgeCount()+1)
	cmds = append(cmds, boardCommand(opts), titleCommand(opts.Title))
	if opts.Link != "" {
		cmds = append(cmds, linkCommand(opts.Link, opts.LinkLabel))
	}

	for _, rec := range g.Nodes() {
		p := positions[rec.Name]
		at := Point{X: p.X, Y: p.Y}
		fill := opts.Classify(rec.Name)

		cmds = append(cmds, moduleCommand(rec.Name, rec.FileName, at, fill))
		if len(rec.Exports) > 0 {
			cmds = append(cmds, annotationCommand(rec.Name, rec.Exports, at, fill))
		}
	}

	for _, e := range g.Edges() {
		cmds = append(cmds, connectorCommand(e))
	}
	return cmds
}

func boardCommand(opts Options) Command {
	desc := descriptionBase
	if opts.Link != "" {
		desc += " for " + opts.Link
	}
	return Command{Kind: CreateBoard, Name: opts.Title, Description: desc}
}

func titleCommand(title string) Command {
	return Command{
		Kind:    CreateTitleNode,
		Content: "<strong>" + html.EscapeString(title) + "</strong>",
		Shape:   shapeRounded,
		Style: Style{
			FillColor:         colorInk,
			Color:             colorWhite,
			FontSize:          24,
			TextAlign:         "center",
			TextAlignVertical: "middle",
			BorderOpacity:     0,
		},
		Position: Point{X: 0, Y: titleY},
		Size:     Size{Width: titleWidth, Height: titleHeight},
	}
}

func linkCommand(link, label string) Command {
	return Command{
		Kind:    CreateLinkNode,
		Content: fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(link), html.EscapeString(label)),
		Shape:   shapeRounded,
		Style: Style{
			FillColor:         colorPanel,
			FontSize:          14,
			TextAlign:         "center",
			TextAlignVertical: "middle",
			BorderOpacity:     0,
		},
		Position: Point{X: 0, Y: linkY},
		Size:     Size{Width: titleWidth, Height: linkHeight},
	}
}

func moduleCommand(name, fileName string, at Point, fill string) Command {
	return Command{
		Kind:    CreateModuleNode,
		Module:  name,
		Content: "<strong>" + html.EscapeString(fileName) + "</strong>",
		Shape:   shapeRounded,
		Style: Style{
			FillColor:         fill,
			FontSize:          18,
			TextAlign:         "center",
			TextAlignVertical: "middle",
			BorderColor:       colorInk,
			BorderWidth:       2,
			BorderOpacity:     1,
		},
		Position: at,
		Size:     Size{Width: moduleWidth, Height: moduleHeight},
	}
}

// AnnotationHeight is the height of an exports box listing n symbols.
func AnnotationHeight(n int) float64 {
	return annotationBase + annotationPerSymbol*float64(n)
}

// ExportsContent renders the bulleted export list shown below a module.
func ExportsContent(exports []string) string {
	var b strings.Builder
	b.WriteString("<strong>Exports:</strong>")
	for _, e := range exports {
		b.WriteString("\n• ")
		b.WriteString(html.EscapeString(e))
	}
	return b.String()
}

func annotationCommand(name string, exports []string, at Point, border string) Command {
	return Command{
		Kind:    CreateAnnotationNode,
		Module:  name,
		Content: ExportsContent(exports),
		Shape:   shapeRounded,
		Style: Style{
			FillColor:         colorPanel,
			FontSize:          12,
			TextAlign:         "left",
			TextAlignVertical: "top",
			BorderColor:       border,
			BorderWidth:       1,
			BorderOpacity:     1,
		},
		Position: Point{X: at.X, Y: at.Y + annotationOffset},
		Size:     Size{Width: moduleWidth, Height: AnnotationHeight(len(exports))},
	}
}

func connectorCommand(e graph.Edge) Command {
	return Command{
		Kind:    CreateConnector,
		From:    e.From,
		To:      e.To,
		Shape:   curveShape,
		Caption: importsLabel,
		Line: LineStyle{
			StrokeColor:    colorInk,
			StrokeWidth:    2,
			StartStrokeCap: "none",
			EndStrokeCap:   "stealth",
			FontSize:       12,
		},
	}
}
