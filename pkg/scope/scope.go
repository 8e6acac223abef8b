// Package scope hosts chart surfaces in Fyne widgets: it translates Fyne
// pointer input to chart pointer events and paints chart scenes with canvas
// primitives.
package scope

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/chart"
)

// Renderable is a chart surface: chart.Analog or chart.Digital.
type Renderable interface {
	Layout(width, height float64)
	HandlePointer(ev chart.PointerEvent)
	Render() *chart.Scene
}

var (
	_ fyne.Widget       = (*Surface)(nil)
	_ desktop.Hoverable = (*Surface)(nil)
	_ desktop.Mouseable = (*Surface)(nil)
	_ fyne.Scrollable   = (*Surface)(nil)
	_ fyne.Draggable    = (*Surface)(nil)
	_ Renderable        = (*chart.Analog)(nil)
	_ Renderable        = (*chart.Digital)(nil)
)

// Surface is a Fyne widget showing one chart surface.
type Surface struct {
	widget.BaseWidget

	surface Renderable
	name    string
	minSize fyne.Size

	// Last pointer position, used for events that carry none
	last    fyne.Position
	onPaint func(name string)
}

// NewSurface creates a widget for s. name identifies the surface in paint
// notifications.
func NewSurface(s Renderable, name string, minSize fyne.Size) *Surface {
	w := &Surface{
		surface: s,
		name:    name,
		minSize: minSize,
	}
	w.ExtendBaseWidget(w)
	return w
}

// NewAmpereChart creates the widget of the analog surface of g.
func NewAmpereChart(g *chart.Group) *Surface {
	return NewSurface(g.Analog(), "analog", fyne.NewSize(400, 300))
}

// OnPaint registers fn to be called after each painted frame.
func (s *Surface) OnPaint(fn func(name string)) {
	s.onPaint = fn
}

// CreateRenderer implements fyne.Widget.
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return newSurfaceRenderer(s)
}

// MouseIn implements desktop.Hoverable.
func (s *Surface) MouseIn(ev *desktop.MouseEvent) {
	s.send(chart.PointerMove, ev.Position, chart.ButtonNone, ev.Modifier)
}

// MouseMoved implements desktop.Hoverable.
func (s *Surface) MouseMoved(ev *desktop.MouseEvent) {
	s.send(chart.PointerMove, ev.Position, chart.ButtonNone, ev.Modifier)
}

// MouseOut implements desktop.Hoverable.
func (s *Surface) MouseOut() {
	s.send(chart.PointerLeave, s.last, chart.ButtonNone, 0)
}

// MouseDown implements desktop.Mouseable.
func (s *Surface) MouseDown(ev *desktop.MouseEvent) {
	s.send(chart.PointerDown, ev.Position, button(ev.Button), ev.Modifier)
}

// MouseUp implements desktop.Mouseable.
func (s *Surface) MouseUp(ev *desktop.MouseEvent) {
	s.send(chart.PointerUp, ev.Position, button(ev.Button), ev.Modifier)
}

// Dragged implements fyne.Draggable. Fyne reports drags instead of moves
// while a button is held.
func (s *Surface) Dragged(ev *fyne.DragEvent) {
	s.send(chart.PointerMove, ev.Position, chart.ButtonNone, currentModifiers())
}

// DragEnd implements fyne.Draggable.
func (s *Surface) DragEnd() {
	s.send(chart.PointerUp, s.last, chart.ButtonNone, 0)
}

// Scrolled implements fyne.Scrollable.
func (s *Surface) Scrolled(ev *fyne.ScrollEvent) {
	s.last = ev.Position
	s.surface.HandlePointer(chart.PointerEvent{
		Kind:  chart.PointerWheel,
		X:     float64(ev.Position.X),
		Y:     float64(ev.Position.Y),
		Shift: currentModifiers()&fyne.KeyModifierShift != 0,
		DX:    float64(ev.Scrolled.DX),
		DY:    float64(ev.Scrolled.DY),
	})
}

func (s *Surface) send(kind chart.PointerKind, pos fyne.Position, b chart.Button, mod fyne.KeyModifier) {
	s.last = pos
	s.surface.HandlePointer(chart.PointerEvent{
		Kind:   kind,
		X:      float64(pos.X),
		Y:      float64(pos.Y),
		Button: b,
		Shift:  mod&fyne.KeyModifierShift != 0,
	})
}

func button(b desktop.MouseButton) chart.Button {
	switch {
	case b&desktop.MouseButtonPrimary != 0:
		return chart.ButtonPrimary
	case b&desktop.MouseButtonSecondary != 0:
		return chart.ButtonSecondary
	}
	return chart.ButtonNone
}

// currentModifiers returns the keyboard modifiers held right now. Scroll
// and drag events do not carry them.
func currentModifiers() fyne.KeyModifier {
	app := fyne.CurrentApp()
	if app == nil {
		return 0
	}
	if drv, ok := app.Driver().(desktop.Driver); ok {
		return drv.CurrentKeyModifiers()
	}
	return 0
}
