package miro

import (
	"strconv"

	"github.com/matzehuels/archboard/pkg/diagram"
)

type boardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type boardResponse struct {
	ID       string `json:"id"`
	ViewLink string `json:"viewLink"`
}

type itemResponse struct {
	ID string `json:"id"`
}

type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type shapeData struct {
	Content string `json:"content"`
	Shape   string `json:"shape"`
}

// shapeStyle mirrors Miro's style object, which takes numbers as strings.
type shapeStyle struct {
	FillColor         string `json:"fillColor,omitempty"`
	Color             string `json:"color,omitempty"`
	FontSize          string `json:"fontSize,omitempty"`
	TextAlign         string `json:"textAlign,omitempty"`
	TextAlignVertical string `json:"textAlignVertical,omitempty"`
	BorderColor       string `json:"borderColor,omitempty"`
	BorderWidth       string `json:"borderWidth,omitempty"`
	BorderOpacity     string `json:"borderOpacity"`
}

type shapeRequest struct {
	Data     shapeData  `json:"data"`
	Style    shapeStyle `json:"style"`
	Position position   `json:"position"`
	Geometry geometry   `json:"geometry"`
}

type itemRef struct {
	ID     string `json:"id"`
	SnapTo string `json:"snapTo"`
}

type caption struct {
	Content string `json:"content"`
}

type connectorStyle struct {
	StrokeColor    string `json:"strokeColor,omitempty"`
	StrokeWidth    string `json:"strokeWidth,omitempty"`
	StartStrokeCap string `json:"startStrokeCap,omitempty"`
	EndStrokeCap   string `json:"endStrokeCap,omitempty"`
	FontSize       string `json:"fontSize,omitempty"`
}

type connectorRequest struct {
	StartItem itemRef        `json:"startItem"`
	EndItem   itemRef        `json:"endItem"`
	Shape     string         `json:"shape,omitempty"`
	Captions  []caption      `json:"captions,omitempty"`
	Style     connectorStyle `json:"style"`
}

func newShapeRequest(n diagram.Node) shapeRequest {
	s := n.Style
	return shapeRequest{
		Data: shapeData{Content: n.Content, Shape: n.Shape},
		Style: shapeStyle{
			FillColor:         s.FillColor,
			Color:             s.Color,
			FontSize:          intString(s.FontSize),
			TextAlign:         s.TextAlign,
			TextAlignVertical: s.TextAlignVertical,
			BorderColor:       s.BorderColor,
			BorderWidth:       floatString(s.BorderWidth),
			BorderOpacity:     strconv.FormatFloat(s.BorderOpacity, 'f', -1, 64),
		},
		Position: position{X: n.Position.X, Y: n.Position.Y},
		Geometry: geometry{Width: n.Size.Width, Height: n.Size.Height},
	}
}

func newConnectorRequest(c diagram.Connector) connectorRequest {
	req := connectorRequest{
		StartItem: itemRef{ID: c.StartID, SnapTo: "auto"},
		EndItem:   itemRef{ID: c.EndID, SnapTo: "auto"},
		Shape:     c.Shape,
		Style: connectorStyle{
			StrokeColor:    c.Line.StrokeColor,
			StrokeWidth:    floatString(c.Line.StrokeWidth),
			StartStrokeCap: c.Line.StartStrokeCap,
			EndStrokeCap:   c.Line.EndStrokeCap,
			FontSize:       intString(c.Line.FontSize),
		},
	}
	if c.Caption != "" {
		req.Captions = []caption{{Content: c.Caption}}
	}
	return req
}

// intString and floatString leave zero values empty so omitempty drops them.
func intString(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatString(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
