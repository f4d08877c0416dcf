// Package redisstream implements a diagram adapter that publishes every
// drawing command as an entry on a Redis stream.
//
// A downstream consumer (a renderer, a bot posting to chat, another
// whiteboard bridge) reads the stream with XREAD and replays it. Entry IDs
// returned by XADD serve as node and connector identifiers, so connector
// entries reference the entry IDs of their endpoint nodes.
//
// # Usage
//
//	pub, err := redisstream.New(redisstream.Config{
//	    Addr: "localhost:6379",
//	})
//	if err != nil {
//	    return err
//	}
//	defer pub.Close()
//
// Each entry has a "kind" field (create_board, create_module_node, ...) and a
// "board" field naming the stream; node entries carry content, shape, module,
// geometry and a JSON "style"; connector entries carry "start"/"end" entry IDs,
// the module names and a JSON "line" style.
package redisstream
