// Package miro implements a diagram adapter for the Miro REST API (v2).
//
// Boards, shapes and connectors are created with three endpoints:
//
//	POST /v2/boards
//	POST /v2/boards/{board_id}/shapes
//	POST /v2/boards/{board_id}/connectors
//
// Requests authenticate with a bearer access token. Each request carries a
// fresh X-Request-Id so individual calls can be traced in Miro support logs.
//
// Failures map onto archboard error codes: transport errors, 429 and 5xx
// responses become REMOTE_UNAVAILABLE (and are marked retryable for
// [github.com/matzehuels/archboard/pkg/whiteboard.Retrying]), any other non-2xx
// response becomes REMOTE_REJECTED with the response body in the message.
package miro
