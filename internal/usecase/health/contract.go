package health

import "context"

// CachePinger checks filter cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
