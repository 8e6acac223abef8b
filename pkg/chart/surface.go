package chart

import (
	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/sample"
)

// Source is the read-only view over the recorded samples.
type Source interface {
	Extent() (Window, bool)
	TimestampOf(index int) (float64, bool)
	Analog(w Window, n int) []sample.Sample
	Digital(w Window, ch int, n int) []sample.DigitalSample
	SampleInterval() float64
}

// SurfaceKind distinguishes analog and digital surfaces.
type SurfaceKind int

const (
	SurfaceAnalog SurfaceKind = iota
	SurfaceDigital
)

// SurfaceContext is everything an overlay needs to draw on or interpret
// events of one surface. It is rebuilt from the group state for every frame
// and every event.
type SurfaceContext struct {
	ID        int
	Kind      SurfaceKind
	Channel   int
	Geometry  Geometry
	Mapper    Mapper
	State     State
	Window    Window // Resolved, never the live sentinel
	Extent    Window
	HasData   bool
	Step      float64 // Samples per pixel column
	Interval  float64 // µs between two samples, 0 when unknown
	Origin    float64 // Timestamp of the trigger origin
	HasOrigin bool
	Config    config.ChartConfig
	Scene     *Scene
}

// Plot returns the plot area.
func (c *SurfaceContext) Plot() Rect {
	return c.Geometry.Plot()
}

// MinSpan returns the narrowest window zoom may reach: never less than
// one sample.
func (c *SurfaceContext) MinSpan() float64 {
	return max(c.Config.MinWindowUs, c.Interval)
}

// InPlot reports whether a pixel lies inside the plot area.
func (c *SurfaceContext) InPlot(x, y float64) bool {
	return c.Plot().Contains(x, y)
}

// ClampX limits x to the horizontal extent of the plot area.
func (c *SurfaceContext) ClampX(x float64) float64 {
	p := c.Plot()
	return min(max(x, p.X), p.X+p.W)
}

// Result is what an overlay returns from a pointer event.
type Result struct {
	Intents []Intent
	Capture bool // Deliver the rest of the gesture to this overlay only
	Redraw  bool
}

// Overlay draws on top of a surface and interprets its pointer events.
type Overlay interface {
	Draw(ctx *SurfaceContext)
	HandlePointer(ctx *SurfaceContext, ev PointerEvent) Result
}

// observer is implemented by overlays that see every event, even while
// another overlay holds the gesture.
type observer interface {
	observes() bool
}

// surface holds what analog and digital surfaces share: identity, layout,
// the ordered overlay list and gesture capture.
type surface struct {
	id       int
	kind     SurfaceKind
	channel  int
	group    *Group
	geometry Geometry
	pointer  []Overlay // Pointer dispatch order
	draw     []Overlay // Painting order
	captured Overlay
	scene    Scene
}

// Geometry returns the current layout.
func (s *surface) Geometry() Geometry {
	return s.geometry
}

// handle delivers ev to the overlays and dispatches the resulting intents.
func (s *surface) handle(ctx *SurfaceContext, ev PointerEvent) {
	var (
		intents []Intent
		redraw  bool
	)
	collect := func(r Result) {
		intents = append(intents, r.Intents...)
		redraw = redraw || r.Redraw
	}

	if s.captured != nil {
		owner := s.captured
		r := owner.HandlePointer(ctx, ev)
		collect(r)
		if ev.ends() || !r.Capture {
			s.captured = nil
		}
		for _, o := range s.pointer {
			if ob, ok := o.(observer); ok && ob.observes() && o != owner {
				collect(o.HandlePointer(ctx, ev))
			}
		}
	} else {
		for _, o := range s.pointer {
			r := o.HandlePointer(ctx, ev)
			collect(r)
			if r.Capture && !ev.ends() {
				s.captured = o
				break
			}
		}
	}

	s.group.Dispatch(intents...)
	if redraw {
		s.group.Invalidate()
	}
}

// drawOverlays paints the overlays in painting order.
func (s *surface) drawOverlays(ctx *SurfaceContext) {
	for _, o := range s.draw {
		o.Draw(ctx)
	}
}
