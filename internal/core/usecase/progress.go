package usecase

import (
	"sync"
	"time"
)

// progressTicker periodically reports elapsed time while a long model call is
// in flight. Stop is idempotent and callers defer it immediately after
// construction, so the recurring timer cannot leak on any exit path.
type progressTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func newProgressTicker(interval time.Duration, report func(elapsed time.Duration)) *progressTicker {
	t := &progressTicker{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	start := time.Now()
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				report(time.Since(start))
			}
		}
	}()
	return t
}

func (t *progressTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
