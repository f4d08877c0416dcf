package cli

import (
	"strings"

	"github.com/matzehuels/archboard/internal/config"
	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/whiteboard"
	"github.com/matzehuels/archboard/pkg/whiteboard/dotfile"
	"github.com/matzehuels/archboard/pkg/whiteboard/miro"
	"github.com/matzehuels/archboard/pkg/whiteboard/redisstream"
)

// Adapter names accepted by --adapter.
const (
	adapterMiro   = "miro"
	adapterDOT    = "dot"
	adapterSVG    = "svg"
	adapterRedis  = "redis"
	adapterDryRun = "dry-run"
)

var adapterNames = []string{adapterMiro, adapterDOT, adapterSVG, adapterRedis, adapterDryRun}

// newAdapter builds the whiteboard adapter named kind. The returned close
// function releases connections and is never nil.
func (c *CLI) newAdapter(kind string, cfg *config.Config) (diagram.Adapter, func() error, error) {
	noop := func() error { return nil }

	var (
		adapter diagram.Adapter
		closer  = noop
	)
	switch kind {
	case adapterMiro:
		client, err := miro.NewClient(cfg.Miro.Token, miro.WithBaseURL(cfg.Miro.APIURL), miro.WithLogger(c.Logger))
		if err != nil {
			return nil, noop, err
		}
		adapter = client

	case adapterDOT, adapterSVG:
		path := cfg.Output.Path
		if path == "" {
			path = appName + "." + kind
		}
		a, err := dotfile.New(path, kind)
		if err != nil {
			return nil, noop, err
		}
		adapter = a

	case adapterRedis:
		pub, err := redisstream.New(redisstream.Config{
			Addr:   cfg.Redis.Addr,
			Stream: cfg.Redis.Stream,
			MaxLen: cfg.Redis.MaxLen,
		})
		if err != nil {
			return nil, noop, err
		}
		adapter, closer = pub, pub.Close

	case adapterDryRun:
		adapter = whiteboard.NewRecorder()

	default:
		return nil, noop, errors.New(errors.ErrCodeInvalidInput, "unknown adapter %q (must be one of: %s)", kind, strings.Join(adapterNames, ", "))
	}

	return whiteboard.WithRetries(adapter, cfg.Emit.Retries, c.Logger), closer, nil
}
