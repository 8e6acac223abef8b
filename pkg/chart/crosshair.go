package chart

// Crosshair is shared by all surfaces of a group. The surface under the
// pointer sets the time; every surface draws a vertical line at it, and
// the originating surface adds a horizontal line at the pointer. It also
// paints the cursor selection band.
type Crosshair struct {
	active bool
	time   float64
	owner  int // Surface ID under the pointer
	y      float64
}

var _ Overlay = (*Crosshair)(nil)

// Time returns the time under the pointer.
func (c *Crosshair) Time() (float64, bool) {
	return c.time, c.active
}

func (c *Crosshair) observes() bool { return true }

// Draw implements Overlay.
func (c *Crosshair) Draw(ctx *SurfaceContext) {
	p := ctx.Plot()
	m := ctx.Mapper
	sc := ctx.Scene

	if b, e, ok := ctx.State.Cursor.Bounds(); ok {
		x0 := ctx.ClampX(m.TimeToPixel(b))
		x1 := ctx.ClampX(m.TimeToPixel(e))
		if x1 > x0 {
			sc.Add(Box{Rect: Rect{X: x0, Y: p.Y, W: x1 - x0, H: p.H}, Fill: ColorSelection})
		}
	}

	if !c.active {
		return
	}
	x := m.TimeToPixel(c.time)
	if x < p.X || x > p.X+p.W {
		return
	}
	sc.Add(Line{X1: x, Y1: p.Y, X2: x, Y2: p.Y + p.H, Width: 1, Color: ColorCrosshair})

	if ctx.ID != c.owner {
		return
	}
	sc.Add(Line{X1: p.X, Y1: c.y, X2: p.X + p.W, Y2: c.y, Width: 1, Color: ColorCrosshair})
	if ctx.Kind != SurfaceAnalog {
		return
	}

	origin := 0.0
	if ctx.HasOrigin {
		origin = ctx.Origin
	}
	sc.Add(
		Text{X: x + 4, Y: p.Y, Text: FormatTimeLabel(c.time, 0, nil, origin)[0], Size: labelSize, Color: ColorLabel},
		Text{X: p.X + 4, Y: c.y - labelSize - 4, Text: FormatCurrent(m.PixelToValue(c.y)), Size: labelSize, Color: ColorLabel},
	)
}

// HandlePointer implements Overlay. It never captures.
func (c *Crosshair) HandlePointer(ctx *SurfaceContext, ev PointerEvent) Result {
	switch ev.Kind {
	case PointerMove, PointerDown, PointerUp, PointerWheel:
		if !ctx.InPlot(ev.X, ev.Y) {
			return c.clear(ctx.ID)
		}
		c.active = true
		c.owner = ctx.ID
		c.time = ctx.Mapper.PixelToTime(ev.X)
		c.y = ev.Y
		return Result{Redraw: true}

	case PointerLeave, PointerCancel:
		return c.clear(ctx.ID)
	}
	return Result{}
}

// clear hides the lines if they belong to surface id.
func (c *Crosshair) clear(id int) Result {
	if !c.active || c.owner != id {
		return Result{}
	}
	c.active = false
	return Result{Redraw: true}
}
