package diagram

import "context"

// Board is a board created by an [Adapter].
type Board struct {
	ID      string `json:"id"`
	ViewURL string `json:"view_url"`
}

// Node is the payload of a shape creation call.
type Node struct {
	Kind     Kind
	Module   string // owning module, empty for title and link nodes
	Content  string
	Shape    string
	Style    Style
	Position Point
	Size     Size
}

// Connector is the payload of a connector creation call. StartID and EndID
// are identifiers previously returned by CreateNode on the same board.
type Connector struct {
	StartID string
	EndID   string
	From    string // module name behind StartID
	To      string // module name behind EndID
	Shape   string
	Caption string
	Line    LineStyle
}

// Adapter is the whiteboard backend a plan is replayed against.
//
// Implementations report failures with pkg/errors codes REMOTE_UNAVAILABLE
// (the backend could not be reached) or REMOTE_REJECTED (it refused the
// payload). CreateNode may be called concurrently for the same board.
type Adapter interface {
	CreateBoard(ctx context.Context, name, description string) (Board, error)
	CreateNode(ctx context.Context, boardID string, n Node) (string, error)
	CreateConnector(ctx context.Context, boardID string, c Connector) (string, error)
}
