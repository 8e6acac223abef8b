package chart

// DragSelect turns a primary button drag into a window. While dragging it
// previews the range as the cursor; releasing after more than MinDragPx
// replaces the window. Shorter drags count as clicks and only clear the
// cursor.
type DragSelect struct {
	dragging bool
	startX   float64
	curX     float64
}

var _ Overlay = (*DragSelect)(nil)

// Dragging reports whether a selection is in progress.
func (d *DragSelect) Dragging() bool {
	return d.dragging
}

// Draw implements Overlay.
func (d *DragSelect) Draw(ctx *SurfaceContext) {
	if !d.dragging {
		return
	}
	p := ctx.Plot()
	x0, x1 := min(d.startX, d.curX), max(d.startX, d.curX)
	ctx.Scene.Add(Box{
		Rect:        Rect{X: x0, Y: p.Y, W: x1 - x0, H: p.H},
		Fill:        ColorSelection,
		Stroke:      ColorDragBorder,
		StrokeWidth: 1,
	})
}

// HandlePointer implements Overlay.
func (d *DragSelect) HandlePointer(ctx *SurfaceContext, ev PointerEvent) Result {
	if !d.dragging {
		if ev.Kind == PointerDown && ev.Button == ButtonPrimary && !ev.Shift && ctx.InPlot(ev.X, ev.Y) {
			d.dragging = true
			d.startX = ev.X
			d.curX = ev.X
			return Result{Capture: true}
		}
		return Result{}
	}

	if ev.aborts() {
		d.dragging = false
		return Result{Intents: []Intent{ClearCursor()}, Redraw: true}
	}

	d.curX = ctx.ClampX(ev.X)
	m := ctx.Mapper
	t0, t1 := m.PixelToTime(d.startX), m.PixelToTime(d.curX)

	switch ev.Kind {
	case PointerMove:
		return Result{
			Intents: []Intent{SetCursor{Cursor: NewCursor(t0, t1)}},
			Capture: true,
			Redraw:  true,
		}

	case PointerUp:
		d.dragging = false
		dx := d.curX - d.startX
		if dx < 0 {
			dx = -dx
		}
		if dx <= ctx.Config.MinDragPx {
			return Result{Intents: []Intent{ClearCursor()}, Redraw: true}
		}
		return Result{
			Intents: []Intent{SetWindow{Window: NewWindow(t0, t1)}, ClearCursor()},
			Redraw:  true,
		}
	}

	return Result{Capture: true}
}
