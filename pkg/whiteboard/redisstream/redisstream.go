package redisstream

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/httputil"
)

// DefaultStreamPrefix prefixes stream keys derived from the board name.
const DefaultStreamPrefix = "archboard:"

// Config configures a [Publisher].
type Config struct {
	Addr     string
	Password string
	DB       int

	// Stream is the stream key. Empty derives "archboard:<board-slug>"
	// from the board name at CreateBoard time.
	Stream string

	// MaxLen caps the stream length (approximate trimming). Zero keeps
	// every entry.
	MaxLen int64

	DialTimeout time.Duration
}

// Publisher is a [diagram.Adapter] backed by a Redis stream.
type Publisher struct {
	client *redis.Client
	cfg    Config
}

// New configures a Publisher. No connection is made until the first
// command; [Publisher.CreateBoard] checks the server with PING.
func New(cfg Config) (*Publisher, error) {
	if cfg.Addr == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "redis address is required")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	return &Publisher{client: client, cfg: cfg}, nil
}

// Ping verifies the server is reachable.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return classify(err, "ping %s", p.cfg.Addr)
	}
	return nil
}

// Close releases the Redis connection pool.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// CreateBoard implements diagram.Adapter. The returned board ID is the
// stream key; its view URL is redis://<addr>/<stream>.
func (p *Publisher) CreateBoard(ctx context.Context, name, description string) (diagram.Board, error) {
	if err := p.Ping(ctx); err != nil {
		return diagram.Board{}, err
	}
	stream := p.cfg.Stream
	if stream == "" {
		stream = StreamKey(name)
	}
	if _, err := p.add(ctx, stream, BoardValues(stream, name, description)); err != nil {
		return diagram.Board{}, err
	}
	return diagram.Board{ID: stream, ViewURL: "redis://" + p.cfg.Addr + "/" + stream}, nil
}

// CreateNode implements diagram.Adapter.
func (p *Publisher) CreateNode(ctx context.Context, boardID string, n diagram.Node) (string, error) {
	values, err := NodeValues(boardID, n)
	if err != nil {
		return "", err
	}
	return p.add(ctx, boardID, values)
}

// CreateConnector implements diagram.Adapter.
func (p *Publisher) CreateConnector(ctx context.Context, boardID string, c diagram.Connector) (string, error) {
	values, err := ConnectorValues(boardID, c)
	if err != nil {
		return "", err
	}
	return p.add(ctx, boardID, values)
}

func (p *Publisher) add(ctx context.Context, stream string, values map[string]any) (string, error) {
	args := &redis.XAddArgs{Stream: stream, Values: values}
	if p.cfg.MaxLen > 0 {
		args.MaxLen = p.cfg.MaxLen
		args.Approx = true
	}
	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", classify(err, "XADD %s", stream)
	}
	return id, nil
}

// classify maps server error replies to REMOTE_REJECTED and everything
// else (dial failures, timeouts, closed pools) to REMOTE_UNAVAILABLE.
func classify(err error, format string, args ...any) error {
	var reply redis.Error
	if stderrors.As(err, &reply) {
		return errors.Wrap(errors.ErrCodeRemoteRejected, err, format, args...)
	}
	return httputil.Retryable(errors.Wrap(errors.ErrCodeRemoteUnavailable, err, format, args...))
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// StreamKey derives the default stream key for a board name.
func StreamKey(name string) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = "board"
	}
	return DefaultStreamPrefix + slug
}

// BoardValues builds the stream entry announcing a new board.
func BoardValues(stream, name, description string) map[string]any {
	return map[string]any{
		"kind":        diagram.CreateBoard.String(),
		"board":       stream,
		"name":        name,
		"description": description,
	}
}

// NodeValues builds the stream entry for a node.
func NodeValues(board string, n diagram.Node) (map[string]any, error) {
	style, err := json.Marshal(n.Style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode style")
	}
	return map[string]any{
		"kind":    n.Kind.String(),
		"board":   board,
		"module":  n.Module,
		"content": n.Content,
		"shape":   n.Shape,
		"x":       formatFloat(n.Position.X),
		"y":       formatFloat(n.Position.Y),
		"width":   formatFloat(n.Size.Width),
		"height":  formatFloat(n.Size.Height),
		"style":   string(style),
	}, nil
}

// ConnectorValues builds the stream entry for a connector.
func ConnectorValues(board string, c diagram.Connector) (map[string]any, error) {
	line, err := json.Marshal(c.Line)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode line style")
	}
	return map[string]any{
		"kind":    diagram.CreateConnector.String(),
		"board":   board,
		"start":   c.StartID,
		"end":     c.EndID,
		"from":    c.From,
		"to":      c.To,
		"shape":   c.Shape,
		"caption": c.Caption,
		"line":    string(line),
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
