package chart

import (
	"sort"

	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/sample"
)

// fakeSource serves frames 10µs apart.
type fakeSource struct {
	frames   []sample.Frame
	interval float64 // Reported sample interval, 10 when zero
}

func newFakeSource(n int, value func(i int) float64) *fakeSource {
	s := &fakeSource{frames: make([]sample.Frame, n)}
	for i := range s.frames {
		s.frames[i] = sample.Frame{Analog: sample.At(float64(i*10), value(i))}
		if (i/50)%2 == 1 {
			s.frames[i].Bits = 0b11
		}
	}
	return s
}

func (s *fakeSource) Extent() (Window, bool) {
	if len(s.frames) == 0 {
		return Window{}, false
	}
	return NewWindow(s.frames[0].Analog.Timestamp, s.frames[len(s.frames)-1].Analog.Timestamp), true
}

func (s *fakeSource) TimestampOf(index int) (float64, bool) {
	if index < 0 || index >= len(s.frames) {
		return 0, false
	}
	return s.frames[index].Analog.Timestamp, true
}

func (s *fakeSource) span(w Window) []sample.Frame {
	lo := sort.Search(len(s.frames), func(i int) bool { return s.frames[i].Analog.Timestamp >= w.Begin })
	hi := sort.Search(len(s.frames), func(i int) bool { return s.frames[i].Analog.Timestamp > w.End })
	return s.frames[max(lo-1, 0):min(hi+1, len(s.frames))]
}

func (s *fakeSource) Analog(w Window, n int) []sample.Sample {
	return sample.Decimate(nil, s.span(w), n)
}

func (s *fakeSource) Digital(w Window, ch int, n int) []sample.DigitalSample {
	return sample.DigitalLines(nil, s.span(w), ch, n)
}

func (s *fakeSource) SampleInterval() float64 {
	if s.interval > 0 {
		return s.interval
	}
	return 10
}

type widthRecorder struct {
	widths []int
	points []int
}

func (w *widthRecorder) ReportPlotWidth(width, maxPoints int) {
	w.widths = append(w.widths, width)
	w.points = append(w.points, maxPoints)
}

// intentLog records applied intents by kind.
type intentLog struct {
	kinds []string
}

func (l *intentLog) count(kind string) int {
	n := 0
	for _, k := range l.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

// newTestGroup returns a group over 1001 frames (0..10000µs) whose analog
// plot area is 1000px wide starting at x=64.
func newTestGroup(value func(i int) float64) (*Group, *fakeSource, *intentLog) {
	cfg := config.Default()
	src := newFakeSource(1001, value)
	g := NewGroup(cfg, src)

	log := &intentLog{}
	g.OnIntent(func(in Intent) { log.kinds = append(log.kinds, in.Kind()) })

	g.Analog().Layout(1096, 400)
	for ch := range config.DigitalChannelCount {
		g.Digital(ch).Layout(1096, 40)
	}
	return g, src, log
}

func constant(v float64) func(int) float64 {
	return func(int) float64 { return v }
}

// plotX converts a time inside window (0, 1000) to the analog pixel.
func plotX(t float64) float64 {
	return 64 + t
}
