package whiteboard

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/httputil"
)

// DefaultRetryDelay is the first backoff interval of [Retrying].
const DefaultRetryDelay = 500 * time.Millisecond

// Retrying wraps an adapter and retries calls that fail with
// REMOTE_UNAVAILABLE. Other failures are returned on the first attempt.
type Retrying struct {
	Next     diagram.Adapter
	Attempts int
	Delay    time.Duration
	Logger   *log.Logger
}

// WithRetries wraps next when retries > 0 and returns next unchanged otherwise.
func WithRetries(next diagram.Adapter, retries int, logger *log.Logger) diagram.Adapter {
	if retries <= 0 {
		return next
	}
	return &Retrying{Next: next, Attempts: retries + 1, Delay: DefaultRetryDelay, Logger: logger}
}

// CreateBoard implements diagram.Adapter.
func (r *Retrying) CreateBoard(ctx context.Context, name, description string) (diagram.Board, error) {
	var b diagram.Board
	err := r.do(ctx, "create board", func() (err error) {
		b, err = r.Next.CreateBoard(ctx, name, description)
		return err
	})
	return b, err
}

// CreateNode implements diagram.Adapter.
func (r *Retrying) CreateNode(ctx context.Context, boardID string, n diagram.Node) (string, error) {
	var id string
	err := r.do(ctx, n.Kind.String(), func() (err error) {
		id, err = r.Next.CreateNode(ctx, boardID, n)
		return err
	})
	return id, err
}

// CreateConnector implements diagram.Adapter.
func (r *Retrying) CreateConnector(ctx context.Context, boardID string, c diagram.Connector) (string, error) {
	var id string
	err := r.do(ctx, "create connector", func() (err error) {
		id, err = r.Next.CreateConnector(ctx, boardID, c)
		return err
	})
	return id, err
}

func (r *Retrying) do(ctx context.Context, op string, fn func() error) error {
	delay := r.Delay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	attempt := 0
	err := httputil.Retry(ctx, r.Attempts, delay, func() error {
		attempt++
		err := fn()
		if err == nil || !errors.Is(err, errors.ErrCodeRemoteUnavailable) {
			return err
		}
		if r.Logger != nil && attempt < r.Attempts {
			r.Logger.Warn("transient whiteboard failure, retrying", "op", op, "attempt", attempt, "error", err)
		}
		return httputil.Retryable(err)
	})
	// Hand back the adapter's own error, not the retry wrapper.
	var re *httputil.RetryableError
	if stderrors.As(err, &re) {
		return re.Err
	}
	return err
}

// Flush forwards to the wrapped adapter when it buffers output, so file
// sinks still get written when retries are enabled.
func (r *Retrying) Flush(ctx context.Context) error {
	if f, ok := r.Next.(interface{ Flush(context.Context) error }); ok {
		return f.Flush(ctx)
	}
	return nil
}
