// Package diagram turns a dependency graph into whiteboard drawing commands
// and replays them against an [Adapter].
//
// # Planning
//
// [Plan] is pure: given a graph, node positions and [Options] it returns the
// full ordered command list for one board.
//
//  1. one CreateBoard
//  2. the title node, plus a link node when Options.Link is set
//  3. one module node per graph node in layout order, each followed by an
//     exports annotation when the module exports anything
//  4. one connector per edge
//
// # Emission
//
// [Emitter.Emit] dispatches a plan. Board creation happens first and scopes
// everything after it. Module nodes may be created in parallel
// (Emitter.Concurrency), but every node identifier is captured before the
// first connector is sent, so a connector never references a node the
// adapter has not confirmed. Connectors whose endpoints never got an
// identifier are skipped and reported in [Result].Skipped.
//
// Any adapter error aborts the run. Nothing already created is rolled back;
// a partially drawn board stays on the remote side.
package diagram
