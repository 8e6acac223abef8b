package chart

// TriggerLevel is the draggable trigger threshold. Moves preview the level
// locally; only the release commits it to the device. An interrupted drag
// restores the level it started from.
type TriggerLevel struct {
	dragging bool
	preDrag  float64
}

var _ Overlay = (*TriggerLevel)(nil)

// Dragging reports whether the level is being dragged.
func (t *TriggerLevel) Dragging() bool {
	return t.dragging
}

// visible reports whether the line is shown on the surface.
func (t *TriggerLevel) visible(ctx *SurfaceContext) bool {
	st := ctx.State
	if !st.RealTimePane || st.Trigger.External {
		return false
	}
	lvl := st.Trigger.Level
	v := ctx.Mapper.Value
	return lvl >= v.DomainMin && lvl <= v.DomainMax
}

// Draw implements Overlay.
func (t *TriggerLevel) Draw(ctx *SurfaceContext) {
	if !t.visible(ctx) {
		return
	}
	p := ctx.Plot()
	level := ctx.State.Trigger.Level
	y := ctx.Mapper.ValueToPixel(level)

	c := ColorTrigger
	if ctx.State.Trigger.Active() || t.dragging {
		c = ColorTriggerHot
	}
	ctx.Scene.Add(
		Line{X1: p.X, Y1: y, X2: p.X + p.W, Y2: y, Width: 2, Color: c},
		Text{X: p.X + p.W - 4, Y: y - labelSize - 4, Text: FormatCurrent(level), Size: labelSize, Align: AlignRight, Color: c},
	)
}

// HandlePointer implements Overlay.
func (t *TriggerLevel) HandlePointer(ctx *SurfaceContext, ev PointerEvent) Result {
	if !t.dragging {
		if ev.Kind != PointerDown || ev.Button != ButtonPrimary || !t.visible(ctx) || !ctx.InPlot(ev.X, ev.Y) {
			return Result{}
		}
		dy := ev.Y - ctx.Mapper.ValueToPixel(ctx.State.Trigger.Level)
		if dy < 0 {
			dy = -dy
		}
		if dy > ctx.Config.TriggerGrabPx {
			return Result{}
		}
		t.dragging = true
		t.preDrag = ctx.State.Trigger.Level
		return Result{Capture: true, Redraw: true}
	}

	v := ctx.Mapper.Value
	switch ev.Kind {
	case PointerMove:
		level := v.Clamp(v.FromPixel(ev.Y))
		return Result{Intents: []Intent{PreviewTriggerLevel{Level: level}}, Capture: true}

	case PointerUp:
		// The release position wins even without a preceding move
		t.dragging = false
		level := v.Clamp(v.FromPixel(ev.Y))
		return Result{Intents: []Intent{CommitTriggerLevel{Level: level}}, Redraw: true}

	case PointerLeave, PointerCancel:
		t.dragging = false
		return Result{Intents: []Intent{PreviewTriggerLevel{Level: t.preDrag}}, Redraw: true}
	}

	return Result{Capture: true}
}
