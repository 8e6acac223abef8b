package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crosshairLines(sc *Scene) (vertical, horizontal []Line) {
	for _, it := range sc.Items {
		l, ok := it.(Line)
		if !ok || l.Color != ColorCrosshair {
			continue
		}
		if l.X1 == l.X2 {
			vertical = append(vertical, l)
		} else {
			horizontal = append(horizontal, l)
		}
	}
	return vertical, horizontal
}

func TestCrosshair_SynchronizedAcrossSurfaces(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}})

	g.Digital(3).HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(250), Y: 20})

	ts, ok := g.Crosshair().Time()
	require.True(t, ok)
	assert.InDelta(t, 250, ts, 1e-9)

	v, h := crosshairLines(g.Analog().Render())
	require.Len(t, v, 1)
	assert.InDelta(t, plotX(250), v[0].X1, 1e-9)
	assert.Empty(t, h, "Only the surface under the pointer draws the horizontal line")

	v, h = crosshairLines(g.Digital(3).Render())
	require.Len(t, v, 1)
	require.Len(t, h, 1)
	assert.Equal(t, float64(20), h[0].Y1)

	v, _ = crosshairLines(g.Digital(5).Render())
	assert.Len(t, v, 1)
}

func TestCrosshair_LeaveClears(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}})
	a := g.Analog()

	a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(100), Y: 50})
	g.TakeDirty()

	// Leaving another surface keeps the lines of this one
	g.Digital(0).HandlePointer(PointerEvent{Kind: PointerLeave})
	_, ok := g.Crosshair().Time()
	assert.True(t, ok)

	a.HandlePointer(PointerEvent{Kind: PointerLeave})
	_, ok = g.Crosshair().Time()
	assert.False(t, ok)
	assert.True(t, g.TakeDirty())

	v, h := crosshairLines(a.Render())
	assert.Empty(t, v)
	assert.Empty(t, h)
}

func TestCrosshair_FollowsDuringDrag(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}})
	a := g.Analog()

	a.HandlePointer(PointerEvent{Kind: PointerDown, X: plotX(100), Y: 50, Button: ButtonPrimary})
	a.HandlePointer(PointerEvent{Kind: PointerMove, X: plotX(700), Y: 50})

	ts, ok := g.Crosshair().Time()
	require.True(t, ok)
	assert.InDelta(t, 700, ts, 1e-9)
}

func TestCrosshair_DrawsCursorBand(t *testing.T) {
	g, _, _ := newTestGroup(constant(10))
	g.Dispatch(SetWindow{Window: Window{Begin: 0, End: 1000}}, SetCursor{Cursor: NewCursor(200, 300)})

	for _, sc := range []*Scene{g.Analog().Render(), g.Digital(1).Render()} {
		var bands []Box
		for _, it := range sc.Items {
			if b, ok := it.(Box); ok && b.Fill == ColorSelection {
				bands = append(bands, b)
			}
		}
		require.Len(t, bands, 1)
		assert.InDelta(t, plotX(200), bands[0].Rect.X, 1e-9)
		assert.InDelta(t, 100, bands[0].Rect.W, 1e-9)
	}
}
