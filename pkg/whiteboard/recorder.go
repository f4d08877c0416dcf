package whiteboard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/archboard/pkg/diagram"
)

// Call is one adapter invocation captured by a [Recorder].
type Call struct {
	Kind      diagram.Kind
	BoardID   string
	ID        string
	Name      string // board name for CreateBoard
	Node      diagram.Node
	Connector diagram.Connector
}

// Recorder is an in-memory [diagram.Adapter]. It hands out random
// identifiers and remembers every call in arrival order.
type Recorder struct {
	// BaseURL prefixes board view URLs. Defaults to "memory://boards/".
	BaseURL string

	mu    sync.Mutex
	calls []Call
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// CreateBoard implements diagram.Adapter.
func (r *Recorder) CreateBoard(_ context.Context, name, _ string) (diagram.Board, error) {
	id := uuid.NewString()
	base := r.BaseURL
	if base == "" {
		base = "memory://boards/"
	}
	r.record(Call{Kind: diagram.CreateBoard, BoardID: id, ID: id, Name: name})
	return diagram.Board{ID: id, ViewURL: base + id}, nil
}

// CreateNode implements diagram.Adapter.
func (r *Recorder) CreateNode(_ context.Context, boardID string, n diagram.Node) (string, error) {
	id := uuid.NewString()
	r.record(Call{Kind: n.Kind, BoardID: boardID, ID: id, Node: n})
	return id, nil
}

// CreateConnector implements diagram.Adapter.
func (r *Recorder) CreateConnector(_ context.Context, boardID string, c diagram.Connector) (string, error) {
	id := uuid.NewString()
	r.record(Call{Kind: diagram.CreateConnector, BoardID: boardID, ID: id, Connector: c})
	return id, nil
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns a copy of all recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many calls of kind k were recorded.
func (r *Recorder) Count(k diagram.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Kind == k {
			n++
		}
	}
	return n
}
