package diagram

// Kind identifies the type of a [Command].
type Kind int

// Command kinds, in the order they appear in a plan.
const (
	CreateBoard Kind = iota
	CreateTitleNode
	CreateLinkNode
	CreateModuleNode
	CreateAnnotationNode
	CreateConnector
)

var kindNames = [...]string{
	CreateBoard:          "create_board",
	CreateTitleNode:      "create_title_node",
	CreateLinkNode:       "create_link_node",
	CreateModuleNode:     "create_module_node",
	CreateAnnotationNode: "create_annotation_node",
	CreateConnector:      "create_connector",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsNode reports whether k creates a shape on the board.
func (k Kind) IsNode() bool {
	return k >= CreateTitleNode && k <= CreateAnnotationNode
}

// Point is a board coordinate (shape center).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a shape's width and height in board units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Style describes how a shape is painted. Zero values mean "adapter default".
type Style struct {
	FillColor         string  `json:"fillColor,omitempty"`
	Color             string  `json:"color,omitempty"`
	FontSize          int     `json:"fontSize,omitempty"`
	TextAlign         string  `json:"textAlign,omitempty"`
	TextAlignVertical string  `json:"textAlignVertical,omitempty"`
	BorderColor       string  `json:"borderColor,omitempty"`
	BorderWidth       float64 `json:"borderWidth,omitempty"`
	BorderOpacity     float64 `json:"borderOpacity"`
}

// LineStyle describes how a connector is drawn.
type LineStyle struct {
	StrokeColor    string  `json:"strokeColor,omitempty"`
	StrokeWidth    float64 `json:"strokeWidth,omitempty"`
	StartStrokeCap string  `json:"startStrokeCap,omitempty"`
	EndStrokeCap   string  `json:"endStrokeCap,omitempty"`
	FontSize       int     `json:"fontSize,omitempty"`
}

// Command is one atomic creation request. Which fields are meaningful
// depends on Kind:
//   - CreateBoard: Name, Description
//   - node kinds: Module (module and annotation nodes), Content, Shape,
//     Style, Position, Size
//   - CreateConnector: From, To (module names), Shape, Caption, Line
type Command struct {
	Kind Kind `json:"kind"`

	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Module   string `json:"module,omitempty"`
	Content  string `json:"content,omitempty"`
	Shape    string `json:"shape,omitempty"`
	Style    Style  `json:"style"`
	Position Point  `json:"position"`
	Size     Size   `json:"size"`

	From    string    `json:"from,omitempty"`
	To      string    `json:"to,omitempty"`
	Caption string    `json:"caption,omitempty"`
	Line    LineStyle `json:"line"`
}

// Node converts a node command into the adapter payload.
func (c Command) Node() Node {
	return Node{
		Kind:     c.Kind,
		Module:   c.Module,
		Content:  c.Content,
		Shape:    c.Shape,
		Style:    c.Style,
		Position: c.Position,
		Size:     c.Size,
	}
}

// Connector converts a connector command into the adapter payload using the
// resolved endpoint identifiers.
func (c Command) Connector(startID, endID string) Connector {
	return Connector{
		StartID: startID,
		EndID:   endID,
		From:    c.From,
		To:      c.To,
		Shape:   c.Shape,
		Caption: c.Caption,
		Line:    c.Line,
	}
}
