package chart

import "math"

// ZoomWindow scales w around focus by s (s < 1 zooms in). The resulting
// span is kept between minSpan and the extent span and the window is moved
// back inside the extent. An empty extent only enforces minSpan.
func ZoomWindow(w Window, focus, s float64, extent Window, minSpan float64) Window {
	b := focus + (w.Begin-focus)*s
	e := focus + (w.End-focus)*s
	span := e - b

	if span < minSpan {
		ratio := 0.5
		if span > 0 {
			ratio = (focus - b) / span
		}
		span = minSpan
		b = focus - ratio*span
		e = b + span
	}
	if es := extent.Span(); es > 0 && span >= es {
		return extent
	}
	return clampInside(b, e, extent)
}

// PanWindow translates w by delta and keeps it inside the extent.
func PanWindow(w Window, delta float64, extent Window) Window {
	return clampInside(w.Begin+delta, w.End+delta, extent)
}

// clampInside shifts [b, e] so it lies inside extent without changing its
// span. Windows wider than the extent are pinned to its beginning.
func clampInside(b, e float64, extent Window) Window {
	if extent.Span() <= 0 {
		return NewWindow(b, e)
	}
	if e > extent.End {
		b -= e - extent.End
		e = extent.End
	}
	if b < extent.Begin {
		e += extent.Begin - b
		b = extent.Begin
	}
	return NewWindow(b, e)
}

// ZoomScale converts a wheel delta to a zoom factor. Scrolling away from the
// user (positive dy) zooms in.
func ZoomScale(dy, sensitivity float64) float64 {
	return math.Exp2(-dy * sensitivity)
}

// ZoomPan zooms with the wheel around the pointer and pans with a secondary
// button drag, a shift+primary drag, shift+wheel or a horizontal wheel.
type ZoomPan struct {
	panning bool
	lastX   float64
}

var _ Overlay = (*ZoomPan)(nil)

// Draw implements Overlay. Zoom and pan have no visuals of their own.
func (z *ZoomPan) Draw(*SurfaceContext) {}

// HandlePointer implements Overlay.
func (z *ZoomPan) HandlePointer(ctx *SurfaceContext, ev PointerEvent) Result {
	if !ctx.HasData {
		z.panning = false
		return Result{}
	}

	switch ev.Kind {
	case PointerWheel:
		if !ctx.InPlot(ev.X, ev.Y) {
			return Result{}
		}
		if ev.Shift || math.Abs(ev.DX) > math.Abs(ev.DY) {
			d := ev.DX
			if ev.Shift && d == 0 {
				d = ev.DY
			}
			return z.pan(ctx, d)
		}
		s := ZoomScale(ev.DY, ctx.Config.ZoomSensitivity)
		focus := ctx.Mapper.PixelToTime(ev.X)
		w := ZoomWindow(ctx.Window, focus, s, ctx.Extent, ctx.MinSpan())
		return Result{Intents: []Intent{SetWindow{Window: w}}}

	case PointerDown:
		pan := ev.Button == ButtonSecondary || (ev.Button == ButtonPrimary && ev.Shift)
		if pan && ctx.InPlot(ev.X, ev.Y) {
			z.panning = true
			z.lastX = ev.X
			return Result{Capture: true}
		}

	case PointerMove:
		if z.panning {
			r := z.pan(ctx, ev.X-z.lastX)
			z.lastX = ev.X
			r.Capture = true
			return r
		}

	case PointerUp, PointerLeave, PointerCancel:
		z.panning = false
	}

	return Result{}
}

// pan moves the window so the content follows dx pixels of pointer motion.
func (z *ZoomPan) pan(ctx *SurfaceContext, dx float64) Result {
	pw := ctx.Plot().W
	if pw <= 0 || dx == 0 {
		return Result{}
	}
	delta := -dx * ctx.Window.Span() / pw
	return Result{Intents: []Intent{SetWindow{Window: PanWindow(ctx.Window, delta, ctx.Extent)}}}
}
