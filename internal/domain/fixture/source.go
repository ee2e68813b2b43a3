package fixture

import (
	"context"
	"time"
)

// Batch is the outcome of the all-upcoming feed. Synthetic marks the
// demonstration catalog served when the feed could not be used.
type Batch struct {
	Events         []SportEvent
	Synthetic      bool
	FallbackReason string
}

// Source reads fixtures from the remote fixtures feed.
type Source interface {
	FetchByDay(ctx context.Context, day time.Time) ([]SportEvent, error)
	FetchRange(ctx context.Context, start time.Time, days int) ([]SportEvent, error)
	FetchAllUpcoming(ctx context.Context) Batch
}
