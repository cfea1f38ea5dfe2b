// Package delivery holds the outer surfaces that drive the account use cases.
package delivery

import "context"

// Delivery is a long-running surface started by the entry point.
type Delivery interface {
	Serve(ctx context.Context) error
}
