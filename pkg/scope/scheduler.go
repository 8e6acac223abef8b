package scope

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// DefaultFrameInterval limits repaints to about 60 per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Invalidator is the dirty flag shared by the surfaces of a chart group.
type Invalidator interface {
	TakeDirty() bool
}

// FrameScheduler coalesces invalidations into at most one repaint per
// interval. Repaints run on the Fyne thread.
type FrameScheduler struct {
	source   Invalidator
	interval time.Duration
	refresh  []func()
	do       func(func())
	logger   zerolog.Logger
}

// NewFrameScheduler creates a scheduler repainting with refresh whenever
// src was invalidated since the last frame.
func NewFrameScheduler(src Invalidator, interval time.Duration, refresh ...func()) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{
		source:   src,
		interval: interval,
		refresh:  refresh,
		do:       fyne.Do,
		logger:   zerolog.Nop(),
	}
}

// SetLogger configures the logger.
func (f *FrameScheduler) SetLogger(l zerolog.Logger) {
	f.logger = l
}

// Run paints frames until ctx is done.
func (f *FrameScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.logger.Debug().Dur("interval", f.interval).Msg("frame scheduler started")
	defer f.logger.Debug().Msg("frame scheduler stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Tick()
		}
	}
}

// Tick paints one frame if anything changed. It reports whether a frame
// was scheduled.
func (f *FrameScheduler) Tick() bool {
	if !f.source.TakeDirty() {
		return false
	}
	f.do(func() {
		for _, fn := range f.refresh {
			fn()
		}
	})
	return true
}
