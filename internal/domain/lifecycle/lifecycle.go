// Package lifecycle holds shared constants for application shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of deliveries and subscriptions.
const DefaultTimeout = 10 * time.Second
