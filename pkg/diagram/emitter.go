package diagram

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/observability"
)

// Result summarizes one emission.
type Result struct {
	Board       Board             `json:"board"`
	NodeIDs     map[string]string `json:"node_ids"`
	Nodes       int               `json:"nodes"`
	Annotations int               `json:"annotations"`
	Connectors  int               `json:"connectors"`
	Skipped     []graph.Edge      `json:"skipped,omitempty"`
}

// Emitter replays plans against an adapter.
type Emitter struct {
	Adapter Adapter
	Logger  *log.Logger

	// Concurrency bounds how many module nodes are created at once.
	// Values <= 1 dispatch strictly in plan order.
	Concurrency int
}

// moduleTask is a module node and its optional exports annotation, which
// always travel together.
type moduleTask struct {
	node       Command
	annotation *Command
}

// idMap is the name→identifier map of a single Emit call. Keys are written
// once; later writes for the same module are ignored.
type idMap struct {
	mu  sync.Mutex
	ids map[string]string
}

func (m *idMap) put(name, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ids[name]; !ok {
		m.ids[name] = id
	}
}

func (m *idMap) get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.ids[name]
	return id, ok
}

// Emit dispatches plan in four phases: board, title furniture, module nodes
// with their annotations, connectors. The first command of plan must be a
// CreateBoard. Emit stops at the first adapter error and returns it together
// with the partial result.
func (e *Emitter) Emit(ctx context.Context, plan []Command) (*Result, error) {
	if e.Adapter == nil {
		return nil, errors.New(errors.ErrCodeInternal, "emitter has no adapter")
	}
	if len(plan) == 0 || plan[0].Kind != CreateBoard {
		return nil, errors.New(errors.ErrCodeInvalidInput, "plan must start with %s", CreateBoard)
	}
	logger := e.logger()

	var furniture, connectors []Command
	var tasks []*moduleTask
	byModule := make(map[string]*moduleTask)
	for i, c := range plan[1:] {
		switch c.Kind {
		case CreateBoard:
			return nil, errors.New(errors.ErrCodeInvalidInput, "plan has a second %s at %d", CreateBoard, i+1)
		case CreateTitleNode, CreateLinkNode:
			furniture = append(furniture, c)
		case CreateModuleNode:
			t := &moduleTask{node: c}
			tasks = append(tasks, t)
			if _, ok := byModule[c.Module]; !ok {
				byModule[c.Module] = t
			}
		case CreateAnnotationNode:
			t, ok := byModule[c.Module]
			if !ok || t.annotation != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "annotation for %q has no module node", c.Module)
			}
			t.annotation = &c
		case CreateConnector:
			connectors = append(connectors, c)
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown command kind %d", c.Kind)
		}
	}

	// Phase 1: board
	boardCmd := plan[0]
	var board Board
	err := e.dispatch(ctx, CreateBoard, func() (err error) {
		board, err = e.Adapter.CreateBoard(ctx, boardCmd.Name, boardCmd.Description)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	logger.Info("board created", "id", board.ID, "url", board.ViewURL)

	result := &Result{Board: board, NodeIDs: make(map[string]string)}

	// Phase 2: title and link
	for _, c := range furniture {
		if _, err := e.createNode(ctx, board.ID, c); err != nil {
			return result, err
		}
	}

	// Phase 3: module nodes; Wait is the barrier before any connector.
	ids := &idMap{ids: result.NodeIDs}
	var counted sync.Mutex
	run := func(ctx context.Context, t *moduleTask) error {
		id, err := e.createNode(ctx, board.ID, t.node)
		if err != nil {
			return err
		}
		ids.put(t.node.Module, id)
		logger.Debug("module node created", "module", t.node.Module, "id", id)

		annotated := 0
		if t.annotation != nil {
			if _, err := e.createNode(ctx, board.ID, *t.annotation); err != nil {
				return err
			}
			annotated = 1
		}
		counted.Lock()
		result.Nodes++
		result.Annotations += annotated
		counted.Unlock()
		return nil
	}

	if e.Concurrency <= 1 {
		for _, t := range tasks {
			if err := run(ctx, t); err != nil {
				return result, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.Concurrency)
		for _, t := range tasks {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error { return run(gctx, t) })
		}
		if err := g.Wait(); err != nil {
			return result, err
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	// Phase 4: connectors
	for _, c := range connectors {
		from, okFrom := ids.get(c.From)
		to, okTo := ids.get(c.To)
		if !okFrom || !okTo {
			logger.Warn("skipping connector with unresolved endpoint", "from", c.From, "to", c.To)
			result.Skipped = append(result.Skipped, graph.Edge{From: c.From, To: c.To})
			continue
		}
		payload := c.Connector(from, to)
		err := e.dispatch(ctx, CreateConnector, func() error {
			_, err := e.Adapter.CreateConnector(ctx, board.ID, payload)
			return err
		})
		if err != nil {
			return result, fmt.Errorf("connect %s -> %s: %w", c.From, c.To, err)
		}
		result.Connectors++
	}

	return result, nil
}

func (e *Emitter) createNode(ctx context.Context, boardID string, c Command) (string, error) {
	var id string
	err := e.dispatch(ctx, c.Kind, func() (err error) {
		id, err = e.Adapter.CreateNode(ctx, boardID, c.Node())
		return err
	})
	if err != nil {
		if c.Module != "" {
			return "", fmt.Errorf("%s %s: %w", c.Kind, c.Module, err)
		}
		return "", fmt.Errorf("%s: %w", c.Kind, err)
	}
	return id, nil
}

// dispatch times one adapter call and reports it to the dispatch hooks.
func (e *Emitter) dispatch(ctx context.Context, kind Kind, call func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := call()
	observability.Dispatch().OnDispatch(ctx, kind.String(), time.Since(start), err)
	return err
}

func (e *Emitter) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.New(io.Discard)
}
