package chart

// TriggerOrigin marks the sample that fired the trigger. Time labels are
// rebased to the same timestamp through SurfaceContext.Origin.
type TriggerOrigin struct{}

var _ Overlay = (*TriggerOrigin)(nil)

// Draw implements Overlay.
func (TriggerOrigin) Draw(ctx *SurfaceContext) {
	if !ctx.HasOrigin || !ctx.Window.Contains(ctx.Origin) {
		return
	}
	p := ctx.Plot()
	x := ctx.Mapper.TimeToPixel(ctx.Origin)
	ctx.Scene.Add(Line{X1: x, Y1: p.Y, X2: x, Y2: p.Y + p.H, Width: 1.5, Color: ColorOrigin})
}

// HandlePointer implements Overlay. The marker is not interactive.
func (TriggerOrigin) HandlePointer(*SurfaceContext, PointerEvent) Result {
	return Result{}
}
