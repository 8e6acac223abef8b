package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragSelect_ZoomsToSelection(t *testing.T) {
	g, _, log := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}})
	a := g.Analog()

	a.HandlePointer(PointerEvent{Kind: PointerDown, X: plotX(600), Y: 100, Button: ButtonPrimary})
	assert.True(t, a.dragSelect.Dragging())

	a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(400), Y: 100})
	b, e, ok := g.State().Cursor.Bounds()
	require.True(t, ok, "Moves preview the selection as the cursor")
	assert.InDelta(t, 400, b, 1e-9)
	assert.InDelta(t, 600, e, 1e-9)

	a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(200), Y: 100})
	a.HandlePointer(PointerEvent{Kind: PointerUp, X: plotX(200), Y: 100, Button: ButtonPrimary})

	st := g.State()
	assert.InDelta(t, 200, st.Window.Begin, 1e-9)
	assert.InDelta(t, 600, st.Window.End, 1e-9)
	assert.False(t, st.Cursor.IsSet())
	assert.False(t, a.dragSelect.Dragging())
	assert.Equal(t, 2, log.count("set_window"))
}

func TestDragSelect_ClickClearsCursorOnly(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}}, SetCursor{Cursor: NewCursor(100, 200)})
	a := g.Analog()

	a.HandlePointer(PointerEvent{Kind: PointerDown, X: plotX(500), Y: 100, Button: ButtonPrimary})
	a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(502), Y: 100})
	a.HandlePointer(PointerEvent{Kind: PointerUp, X: plotX(502), Y: 100, Button: ButtonPrimary})

	st := g.State()
	assert.Equal(t, Window{Begin: 0, End: 1000}, st.Window)
	assert.False(t, st.Cursor.IsSet())
}

func TestDragSelect_CancelLeavesWindow(t *testing.T) {
	for _, kind := range []PointerKind{PointerCancel, PointerLeave} {
		t.Run(kind.String(), func(t *testing.T) {
			g, _, log := newTestGroup(constant(10))
			g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}})
			a := g.Analog()

			a.HandlePointer(PointerEvent{Kind: PointerDown, X: plotX(100), Y: 100, Button: ButtonPrimary})
			a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(900), Y: 100})
			a.HandlePointer(PointerEvent{Kind: kind, X: plotX(900), Y: 100})

			st := g.State()
			assert.Equal(t, Window{Begin: 0, End: 1000}, st.Window)
			assert.False(t, st.Cursor.IsSet())
			assert.False(t, a.dragSelect.Dragging())
			assert.Equal(t, 1, log.count("set_window"))

			// The gesture is over; a later up changes nothing
			a.HandlePointer(PointerEvent{Kind: PointerUp, X: plotX(900), Y: 100, Button: ButtonPrimary})
			assert.Equal(t, Window{Begin: 0, End: 1000}, g.State().Window)
		})
	}
}

func TestDragSelect_IgnoresOutsidePlot(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	a := g.Analog()

	// Value axis label area
	a.HandlePointer(PointerEvent{Kind: PointerDown, X: 10, Y: 100, Button: ButtonPrimary})
	assert.False(t, a.dragSelect.Dragging())
}

func TestDragSelect_DrawsWhileDragging(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}})
	a := g.Analog()

	a.HandlePointer(PointerEvent{Kind: PointerDown, X: plotX(100), Y: 100, Button: ButtonPrimary})
	a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(300), Y: 100})

	var outlined []Box
	for _, it := range a.Render().Items {
		if b, ok := it.(Box); ok && b.Stroke != nil {
			outlined = append(outlined, b)
		}
	}
	require.Len(t, outlined, 1)
	assert.InDelta(t, plotX(100), outlined[0].Rect.X, 1e-9)
	assert.InDelta(t, 200, outlined[0].Rect.W, 1e-9)
}
