// Package audit publishes one-line audit events for mutating auth requests
// to a message queue. Publishing is best effort: a missing or disconnected
// publisher must never fail the request that produced the event.
package audit

import "context"

// Publisher emits a single event line per mutating request.
type Publisher interface {
	Publish(ctx context.Context, line string) error
	Close()
}
