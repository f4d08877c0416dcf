// Package httputil provides HTTP helpers shared by the whiteboard adapters.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only when the
// returned error is marked transient with [RetryableError] (or [Retryable]).
// Everything else fails fast:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    _, err := client.CreateNode(ctx, boardID, node)
//	    return err
//	})
//
// # Response classification
//
// [CheckResponse] turns a non-2xx [net/http.Response] into a [StatusError].
// Rate limiting (429) and server errors (5xx) come back wrapped in
// [RetryableError]; other statuses are returned bare so callers treat them as
// permanent rejections.
package httputil
