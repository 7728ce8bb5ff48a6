package scheduler

import (
	"sync"
	"time"
)

// ManualClock is a Clock whose tickers only fire when Tick is called. It
// lets tests step a run one instruction at a time.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock returns a clock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// NewTicker implements Clock.
func (m *ManualClock) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTicker{
		interval: d,
		c:        make(chan time.Time),
		stopped:  make(chan struct{}),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Tickers returns how many tickers have been created.
func (m *ManualClock) Tickers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

// Tick advances the clock by the newest ticker's interval and hands one tick
// to its consumer. It blocks until the tick is received and reports true, or
// returns false if that ticker is stopped (or none exists) first.
func (m *ManualClock) Tick() bool {
	m.mu.Lock()
	if len(m.tickers) == 0 {
		m.mu.Unlock()
		return false
	}
	t := m.tickers[len(m.tickers)-1]
	m.now = m.now.Add(t.interval)
	now := m.now
	m.mu.Unlock()

	select {
	case t.c <- now:
		return true
	case <-t.stopped:
		return false
	}
}

// Stopped reports whether the newest ticker has been stopped.
func (m *ManualClock) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tickers) == 0 {
		return true
	}
	select {
	case <-m.tickers[len(m.tickers)-1].stopped:
		return true
	default:
		return false
	}
}

type manualTicker struct {
	interval time.Duration
	c        chan time.Time
	stopped  chan struct{}
	once     sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.once.Do(func() { close(t.stopped) })
}
