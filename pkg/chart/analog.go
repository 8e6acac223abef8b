package chart

import (
	"math"

	"github.com/itohio/goppk/pkg/sample"
)

const (
	labelSize    = 11
	labelLineGap = 13
	timeAxisPx   = 34 // Two label lines below the plot
	topMarginPx  = 8
)

// Analog is the current surface: the trace, both axes and the interactive
// overlays.
type Analog struct {
	surface

	triggerLevel *TriggerLevel
	dragSelect   *DragSelect
	zoomPan      *ZoomPan
	origin       *TriggerOrigin

	// Value domain of the last rendered frame; pointer events are
	// interpreted against what is on screen.
	vmin, vmax float64
	reported   int
}

func newAnalog(g *Group) *Analog {
	a := &Analog{
		triggerLevel: &TriggerLevel{},
		dragSelect:   &DragSelect{},
		zoomPan:      &ZoomPan{},
		origin:       &TriggerOrigin{},
		vmin:         0,
		vmax:         1,
		reported:     -1,
	}
	a.surface = surface{
		id:    g.newID(),
		kind:  SurfaceAnalog,
		group: g,
		pointer: []Overlay{
			a.triggerLevel,
			a.origin,
			a.dragSelect,
			a.zoomPan,
			g.crosshair,
		},
		draw: []Overlay{
			a.dragSelect,
			a.origin,
			a.triggerLevel,
			g.crosshair,
		},
	}
	return a
}

// Layout sets the surface size and reports the plot width when it changed.
func (a *Analog) Layout(width, height float64) {
	cfg := a.group.cfg
	bottom := 4.0
	if a.group.State().TimestampsVisible {
		bottom = timeAxisPx
	}
	a.geometry = Geometry{
		Width:        width,
		Height:       height,
		AxisWidth:    cfg.YAxisWidthPx,
		RightMargin:  cfg.RightMarginPx,
		BottomMargin: bottom,
		TopMargin:    topMarginPx,
	}

	w := a.geometry.PlotWidth()
	if w == a.reported {
		return
	}
	a.reported = w
	a.group.Dispatch(ReportPlotWidth{Width: w, MaxPoints: min(w, cfg.MaxPlotSamples)})
}

// HandlePointer delivers a pointer event to the overlays.
func (a *Analog) HandlePointer(ev PointerEvent) {
	a.handle(a.context(), ev)
}

// context maps against the value domain of the last rendered frame.
func (a *Analog) context() *SurfaceContext {
	return a.group.context(&a.surface, a.vmin, a.vmax)
}

// Render paints the surface into its scene and returns it. The scene is
// reused by the next call.
func (a *Analog) Render() *Scene {
	g := a.group
	a.scene.Reset(a.geometry.Width, a.geometry.Height)

	// Fetch the samples first so the value axis can fit them
	ctx := a.context()
	n := min(a.geometry.PlotWidth(), g.cfg.MaxPlotSamples)
	var samples []sample.Sample
	if ctx.HasData && n > 0 {
		samples = g.source.Analog(ctx.Window, n)
	}

	a.vmin, a.vmax = valueDomain(ctx.State.ValueRange, samples, ctx.Window, g.cfg.MaxTicks)
	ctx.Mapper = NewMapper(a.geometry, ctx.Window, a.vmin, a.vmax)

	drawGrid(ctx, g.cfg.MaxTicks)
	drawTrace(ctx, samples)
	a.drawOverlays(ctx)
	drawFrame(ctx)

	return &a.scene
}

// Live reports whether the chart follows the newest sample.
func (a *Analog) Live() bool {
	return a.group.State().Live()
}

// Snapping reports whether the trace is dense enough for point markers.
func Snapping(step float64, live bool, snapStep float64) bool {
	return step <= snapStep && !live
}

// PointRadius returns the marker radius for step.
func PointRadius(step, largeStep float64) float64 {
	if step <= largeStep {
		return 4
	}
	return 2
}

// LineWidth returns the trace width for step.
func LineWidth(step, thinStep float64) float64 {
	if step > thinStep {
		return 1
	}
	return 1.5
}

// valueDomain returns the value axis bounds. Without a fixed maximum the
// axis fits the visible samples and ends on a round tick.
func valueDomain(vr ValueRange, samples []sample.Sample, w Window, maxTicks int) (float64, float64) {
	if vr.Max != nil {
		return vr.Min, *vr.Max
	}
	top := math.Inf(-1)
	for _, s := range samples {
		if s.Valid && w.Contains(s.Timestamp) && s.Value > top {
			top = s.Value
		}
	}
	return vr.Min, NiceMax(vr.Min, top, maxTicks)
}

func drawGrid(ctx *SurfaceContext, maxTicks int) {
	p := ctx.Plot()
	sc := ctx.Scene
	m := ctx.Mapper

	ticks := LinearTicks(ctx.Window.Begin, ctx.Window.End, maxTicks)
	for i, t := range ticks {
		x := m.TimeToPixel(t)
		sc.Add(Line{X1: x, Y1: p.Y, X2: x, Y2: p.Y + p.H + 4, Width: 1, Color: ColorGrid})

		if !ctx.State.TimestampsVisible || !ctx.HasData {
			continue
		}
		origin := 0.0
		if ctx.HasOrigin {
			origin = ctx.Origin
		}
		align := AlignCenter
		switch i {
		case 0:
			align = AlignLeft
		case len(ticks) - 1:
			align = AlignRight
		}
		for j, line := range FormatTimeLabel(t, i, ticks, origin) {
			sc.Add(Text{
				X:     x,
				Y:     p.Y + p.H + 6 + float64(j)*labelLineGap,
				Text:  line,
				Size:  labelSize,
				Align: align,
				Color: ColorLabel,
			})
		}
	}

	for _, v := range LinearTicks(m.Value.DomainMin, m.Value.DomainMax, maxTicks) {
		y := m.ValueToPixel(v)
		sc.Add(Line{X1: p.X - 4, Y1: y, X2: p.X + p.W, Y2: y, Width: 1, Color: ColorGrid})
		if label := FormatValueTick(v); label != "" {
			sc.Add(Text{
				X:     p.X - 6,
				Y:     y - labelSize/2 - 1,
				Text:  label,
				Size:  labelSize,
				Align: AlignRight,
				Color: ColorLabel,
			})
		}
	}
}

// drawTrace draws the samples as polylines broken at gaps.
func drawTrace(ctx *SurfaceContext, samples []sample.Sample) {
	cfg := ctx.Config
	live := ctx.State.Live()
	snapping := Snapping(ctx.Step, live, cfg.SnapStep)
	width := LineWidth(ctx.Step, cfg.ThinLineStep)
	tension := 0.0
	if snapping {
		tension = 0.2
	}

	p := ctx.Plot()
	m := ctx.Mapper
	sc := ctx.Scene

	var run []Point
	flush := func() {
		pts := clipRun(run, p)
		switch {
		case len(pts) >= 2:
			sc.Add(Polyline{Points: pts, Width: width, Tension: tension, Color: ColorTrace})
		case len(pts) == 1 && !snapping:
			// Isolated sample between gaps
			sc.Add(Marker{X: pts[0].X, Y: pts[0].Y, Radius: width, Fill: ColorTrace})
		}
		run = nil
	}

	for _, s := range samples {
		if !s.Valid {
			flush()
			continue
		}
		run = append(run, Point{X: m.TimeToPixel(s.Timestamp), Y: m.ValueToPixel(s.Value)})
	}
	flush()

	if !snapping {
		return
	}
	r := PointRadius(ctx.Step, cfg.LargePointStep)
	for _, s := range samples {
		if !s.Valid || !ctx.Window.Contains(s.Timestamp) {
			continue
		}
		y := m.ValueToPixel(s.Value)
		if y < p.Y || y > p.Y+p.H {
			continue
		}
		sc.Add(Marker{
			X:           m.TimeToPixel(s.Timestamp),
			Y:           y,
			Radius:      r,
			Fill:        ColorBackground,
			Stroke:      ColorTrace,
			StrokeWidth: 1.5,
		})
	}
}

// clipRun clips an x-sorted run to the horizontal extent of the plot and
// clamps it vertically.
func clipRun(run []Point, p Rect) []Point {
	if len(run) == 0 {
		return nil
	}
	left, right := p.X, p.X+p.W

	out := make([]Point, 0, len(run))
	for i, pt := range run {
		if pt.X < left {
			if i+1 < len(run) && run[i+1].X > left {
				out = append(out, lerpX(pt, run[i+1], left))
			}
			continue
		}
		if pt.X > right {
			if i > 0 && run[i-1].X < right {
				out = append(out, lerpX(run[i-1], pt, right))
			}
			break
		}
		out = append(out, pt)
	}

	for i := range out {
		out[i].Y = min(max(out[i].Y, p.Y), p.Y+p.H)
	}
	return out
}

func lerpX(a, b Point, x float64) Point {
	if b.X == a.X {
		return Point{X: x, Y: a.Y}
	}
	f := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + f*(b.Y-a.Y)}
}

// drawFrame draws the plot border.
func drawFrame(ctx *SurfaceContext) {
	p := ctx.Plot()
	ctx.Scene.Add(
		Line{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y + p.H, Width: 1, Color: ColorAxis},
		Line{X1: p.X, Y1: p.Y + p.H, X2: p.X + p.W, Y2: p.Y + p.H, Width: 1, Color: ColorAxis},
	)
}
