// Package whiteboard holds the adapters that realize diagram commands.
//
// Backends live in subpackages:
//
//   - [github.com/matzehuels/archboard/pkg/whiteboard/miro]: the Miro REST API
//   - [github.com/matzehuels/archboard/pkg/whiteboard/dotfile]: Graphviz DOT or SVG files
//   - [github.com/matzehuels/archboard/pkg/whiteboard/redisstream]: entries on a Redis stream
//
// This package itself provides [Recorder], an in-memory adapter used for dry
// runs and tests, and [Retrying], a decorator that retries transient failures
// of any adapter.
package whiteboard
