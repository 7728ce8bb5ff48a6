package scheduler

import "time"

// DefaultInterval is the pause between two instructions.
const DefaultInterval = 420 * time.Millisecond

// Clock creates tickers.
type Clock interface {
	// NewTicker returns a ticker that fires every d until stopped.
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on a channel.
//
// Stop must be safe to call more than once. After Stop returns no further
// ticks are delivered, and the channel is not closed.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}
