package chart

import (
	"strconv"

	"github.com/itohio/goppk/pkg/sample"
)

// Digital domain bounds.
const (
	DigitalMin = -0.5
	DigitalMax = 0.5
)

// Digital is the surface of one digital channel: a step trace of the bit
// with a band where the bit toggled between two drawn samples.
type Digital struct {
	surface

	origin  *TriggerOrigin
	zoomPan *ZoomPan
}

func newDigital(g *Group, ch int) *Digital {
	d := &Digital{
		origin:  &TriggerOrigin{},
		zoomPan: &ZoomPan{},
	}
	d.surface = surface{
		id:      g.newID(),
		kind:    SurfaceDigital,
		channel: ch,
		group:   g,
		pointer: []Overlay{d.origin, d.zoomPan, g.crosshair},
		draw:    []Overlay{d.origin, g.crosshair},
	}
	return d
}

// Channel returns the channel index.
func (d *Digital) Channel() int {
	return d.channel
}

// Layout sets the surface size. The plot area lines up with the analog one.
func (d *Digital) Layout(width, height float64) {
	cfg := d.group.cfg
	d.geometry = Geometry{
		Width:        width,
		Height:       height,
		AxisWidth:    cfg.YAxisWidthPx,
		RightMargin:  cfg.RightMarginPx,
		TopMargin:    2,
		BottomMargin: 2,
	}
}

// HandlePointer delivers a pointer event to the overlays.
func (d *Digital) HandlePointer(ev PointerEvent) {
	d.handle(d.group.context(&d.surface, DigitalMin, DigitalMax), ev)
}

// Render paints the surface into its scene and returns it. Nothing is drawn
// while the group hides the digital traces.
func (d *Digital) Render() *Scene {
	g := d.group
	d.scene.Reset(d.geometry.Width, d.geometry.Height)
	if g.DigitalHidden() {
		return &d.scene
	}

	ctx := g.context(&d.surface, DigitalMin, DigitalMax)
	p := ctx.Plot()

	ctx.Scene.Add(Text{
		X:     p.X - 6,
		Y:     p.Y + p.H/2 - labelSize/2 - 1,
		Text:  strconv.Itoa(d.channel),
		Size:  labelSize,
		Align: AlignRight,
		Color: ColorLabel,
	})

	n := min(d.geometry.PlotWidth(), g.cfg.MaxPlotSamples)
	if ctx.HasData && n > 0 {
		drawSteps(ctx, g.source.Digital(ctx.Window, d.channel, n))
	}
	d.drawOverlays(ctx)

	return &d.scene
}

// drawSteps draws the bit as a step function holding each value until the
// next sample, with uncertainty bands filled between main and uncertainty
// levels.
func drawSteps(ctx *SurfaceContext, steps []sample.DigitalSample) {
	if len(steps) == 0 {
		return
	}
	m := ctx.Mapper
	p := ctx.Plot()
	left, right := p.X, p.X+p.W
	clampX := func(x float64) float64 { return min(max(x, left), right) }

	line := make([]Point, 0, 2*len(steps))
	for i, s := range steps {
		x0 := clampX(m.TimeToPixel(s.Timestamp))
		x1 := x0
		if i+1 < len(steps) {
			x1 = clampX(m.TimeToPixel(steps[i+1].Timestamp))
		}
		y := m.ValueToPixel(s.Main.Value)
		line = append(line, Point{X: x0, Y: y}, Point{X: x1, Y: y})

		if s.Uncertainty.Value != s.Main.Value && x1 > x0 {
			yu := m.ValueToPixel(s.Uncertainty.Value)
			ctx.Scene.Add(Area{
				Points: []Point{{X: x0, Y: y}, {X: x1, Y: y}, {X: x1, Y: yu}, {X: x0, Y: yu}},
				Fill:   ColorBand,
			})
		}
	}
	ctx.Scene.Add(Polyline{Points: line, Width: 1.5, Color: ColorTrace})
}
