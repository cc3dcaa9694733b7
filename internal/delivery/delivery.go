// Package delivery defines the contract every transport entry point
// implements so main can start them as a group.
package delivery

import "context"

// Delivery is a running transport surface (HTTP server, stream server).
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
