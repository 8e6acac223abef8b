package recorder

import (
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/sample"
	"github.com/rs/zerolog"
)

var (
	_ Recorder        = (*Buffer)(nil)
	_ chart.Source    = (*Buffer)(nil)
	_ chart.WidthSink = (*Buffer)(nil)
)

// drainBatch bounds how many queued frames are appended before callbacks run.
const drainBatch = 4096

// Update describes the buffer after a batch of frames was appended.
type Update struct {
	Appended int
	Count    int
	Extent   chart.Window
}

// Stats summarizes the current between two timestamps.
type Stats struct {
	Duration float64 // µs
	Average  float64 // µA, over valid samples
	Max      float64 // µA
	Charge   float64 // µC
	Samples  int
	Valid    int
}

// Recorder stores converted frames and serves windowed views of them.
type Recorder interface {
	ProcessSamples(input <-chan sample.Frame)
	OnUpdate(func(Update))
	OnTrigger(func(index int))
	Stats(begin, end float64) Stats
	Reset()
}

// Buffer implements Recorder over an append-only slice of frames.
//
// Frames are addressed by absolute index: the index a frame got when it was
// appended. When the buffer exceeds its capacity the oldest frames are
// trimmed and base advances, so absolute indices stay valid for the frames
// that remain.
type Buffer struct {
	capacity int
	interval float64 // µs between frames

	mu        sync.RWMutex
	frames    []sample.Frame
	base      int
	origin    int
	hasOrigin bool
	maxPoints int
	shutdown  bool // Set when the input channel closes, prevents further callbacks

	recorded atomic.Uint64

	cbMu      sync.RWMutex
	callbacks []func(Update)
	triggers  []func(int)

	logger zerolog.Logger
}

// New creates a Buffer sized from the sampling configuration.
func New(cfg *config.Config) *Buffer {
	interval := cfg.Sampling.IntervalUs
	if n := cfg.Sampling.AverageSamples; n > 1 {
		interval *= float64(n)
	}
	return &Buffer{
		capacity:  max(cfg.Sampling.BufferSamples, 1),
		interval:  interval,
		maxPoints: cfg.Chart.MaxPlotSamples,
		logger:    zerolog.Nop(),
	}
}

// SetLogger configures the logger.
func (b *Buffer) SetLogger(l zerolog.Logger) {
	b.logger = l
}

// ProcessSamples appends frames from the input channel until it closes.
// When it closes the shutdown flag is set and no further callbacks run.
func (b *Buffer) ProcessSamples(input <-chan sample.Frame) {
	for f := range input {
		batch := []sample.Frame{f}
	drain:
		for len(batch) < drainBatch {
			select {
			case f, ok := <-input:
				if !ok {
					break drain
				}
				batch = append(batch, f)
			default:
				break drain
			}
		}
		b.append(batch)
	}

	b.mu.Lock()
	b.shutdown = true
	b.mu.Unlock()
	b.logger.Debug().Uint64("recorded", b.recorded.Load()).Msg("input closed")
}

// append stores frames and notifies callbacks outside the lock.
func (b *Buffer) append(frames []sample.Frame) {
	b.mu.Lock()

	var fired []int
	for _, f := range frames {
		b.frames = append(b.frames, f)
		if f.Trigger {
			b.origin = b.base + len(b.frames) - 1
			b.hasOrigin = true
			fired = append(fired, b.origin)
		}
	}
	b.trim()

	u := Update{Appended: len(frames), Count: len(b.frames), Extent: b.extent()}
	shouldNotify := !b.shutdown
	b.mu.Unlock()

	b.recorded.Add(uint64(len(frames)))
	if !shouldNotify {
		return
	}

	b.cbMu.RLock()
	callbacks := slices.Clone(b.callbacks)
	triggers := slices.Clone(b.triggers)
	b.cbMu.RUnlock()

	for _, idx := range fired {
		b.logger.Debug().Int("index", idx).Msg("trigger")
		for _, cb := range triggers {
			cb(idx)
		}
	}
	for _, cb := range callbacks {
		cb(u)
	}
}

// trim drops the oldest frames once the buffer is an eighth over capacity.
// Must be called with mu held.
func (b *Buffer) trim() {
	limit := b.capacity + b.capacity/8
	if len(b.frames) <= limit {
		return
	}
	drop := len(b.frames) - b.capacity
	n := copy(b.frames, b.frames[drop:])
	clear(b.frames[n:])
	b.frames = b.frames[:n]
	b.base += drop
}

// OnUpdate registers a callback run after every appended batch. Callbacks
// run on the recording goroutine and must return quickly.
func (b *Buffer) OnUpdate(cb func(Update)) {
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.callbacks = append(b.callbacks, cb)
}

// OnTrigger registers a callback run with the absolute index of every frame
// that fired the trigger.
func (b *Buffer) OnTrigger(cb func(index int)) {
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.triggers = append(b.triggers, cb)
}

// Reset discards all frames and the trigger origin, and allows callbacks
// again. Call it before starting a new measurement chain.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.frames)
	b.frames = b.frames[:0]
	b.base = 0
	b.hasOrigin = false
	b.shutdown = false
}

// Count returns the number of stored frames.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.frames)
}

// Recorded returns the number of frames appended since creation.
func (b *Buffer) Recorded() uint64 {
	return b.recorded.Load()
}

// TriggerOrigin returns the absolute index of the last trigger.
func (b *Buffer) TriggerOrigin() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.origin, b.hasOrigin
}

// Extent returns the time range of the stored frames.
func (b *Buffer) Extent() (chart.Window, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.extent(), len(b.frames) > 0
}

func (b *Buffer) extent() chart.Window {
	if len(b.frames) == 0 {
		return chart.Window{}
	}
	return chart.NewWindow(b.frames[0].Analog.Timestamp, b.frames[len(b.frames)-1].Analog.Timestamp)
}

// TimestampOf returns the timestamp of the frame with absolute index.
func (b *Buffer) TimestampOf(index int) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := index - b.base
	if i < 0 || i >= len(b.frames) {
		return 0, false
	}
	return b.frames[i].Analog.Timestamp, true
}

// SampleInterval returns the time between frames in µs.
func (b *Buffer) SampleInterval() float64 {
	return b.interval
}

// ReportPlotWidth bounds the number of points views materialize.
func (b *Buffer) ReportPlotWidth(width, maxPoints int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maxPoints = maxPoints
	b.logger.Debug().Int("width", width).Int("points", maxPoints).Msg("plot width")
}

// Analog returns at most n decimated samples covering w, including the
// frames just outside it so the trace reaches the plot edges.
func (b *Buffer) Analog(w chart.Window, n int) []sample.Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lo, hi := b.span(w, 1)
	return sample.Decimate(nil, b.frames[lo:hi], b.points(n))
}

// Digital returns at most n step values of channel ch covering w.
func (b *Buffer) Digital(w chart.Window, ch int, n int) []sample.DigitalSample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lo, hi := b.span(w, 1)
	return sample.DigitalLines(nil, b.frames[lo:hi], ch, b.points(n))
}

// Stats summarizes the frames with timestamps in [begin, end].
func (b *Buffer) Stats(begin, end float64) Stats {
	w := chart.NewWindow(begin, end)

	b.mu.RLock()
	defer b.mu.RUnlock()
	lo, hi := b.span(w, 0)

	st := Stats{Duration: w.Span(), Samples: hi - lo}
	var sum float64
	for _, f := range b.frames[lo:hi] {
		if !f.Analog.Valid {
			continue
		}
		v := f.Analog.Value
		if st.Valid == 0 || v > st.Max {
			st.Max = v
		}
		sum += v
		st.Valid++
	}
	if st.Valid > 0 {
		st.Average = sum / float64(st.Valid)
	}
	// µA x µs = pC
	st.Charge = sum * b.interval / 1e6
	return st
}

// points caps n by the reported plot width.
func (b *Buffer) points(n int) int {
	if b.maxPoints > 0 && n > b.maxPoints {
		return b.maxPoints
	}
	return n
}

// span returns the slice bounds of frames inside w, widened by pad frames on
// each side. Must be called with mu held.
func (b *Buffer) span(w chart.Window, pad int) (int, int) {
	lo := sort.Search(len(b.frames), func(i int) bool {
		return b.frames[i].Analog.Timestamp >= w.Begin
	})
	hi := sort.Search(len(b.frames), func(i int) bool {
		return b.frames[i].Analog.Timestamp > w.End
	})
	return max(lo-pad, 0), min(hi+pad, len(b.frames))
}
