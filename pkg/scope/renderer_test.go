package scope

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneObjects(t *testing.T) {
	test.NewTempApp(t)

	var sc chart.Scene
	sc.Add(
		chart.Line{X1: 1, Y1: 2, X2: 3, Y2: 4, Width: 2, Color: chart.ColorGrid},
		chart.Polyline{Points: []chart.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}}, Width: 1.5, Color: chart.ColorTrace},
		chart.Area{Points: []chart.Point{{X: 5, Y: 10}, {X: 15, Y: 10}, {X: 15, Y: 30}, {X: 5, Y: 30}}, Fill: chart.ColorBand},
		chart.Box{Rect: chart.Rect{X: 1, Y: 1, W: 8, H: 6}, Fill: chart.ColorSelection},
		chart.Marker{X: 50, Y: 60, Radius: 4, Fill: chart.ColorBackground, Stroke: chart.ColorTrace, StrokeWidth: 1.5},
	)

	objs := sceneObjects(&sc)
	require.Len(t, objs, 6)

	line := objs[0].(*canvas.Line)
	assert.Equal(t, fyne.NewPos(1, 2), line.Position1)
	assert.Equal(t, fyne.NewPos(3, 4), line.Position2)
	assert.Equal(t, float32(2), line.StrokeWidth)

	seg := objs[2].(*canvas.Line)
	assert.Equal(t, fyne.NewPos(10, 5), seg.Position1)
	assert.Equal(t, fyne.NewPos(20, 0), seg.Position2)

	band := objs[3].(*canvas.Rectangle)
	assert.Equal(t, fyne.NewPos(5, 10), band.Position())
	assert.Equal(t, fyne.NewSize(10, 20), band.Size())

	box := objs[4].(*canvas.Rectangle)
	assert.Equal(t, chart.ColorSelection, box.FillColor)
	assert.Equal(t, fyne.NewSize(8, 6), box.Size())

	marker := objs[5].(*canvas.Circle)
	assert.Equal(t, fyne.NewPos(46, 56), marker.Position())
	assert.Equal(t, fyne.NewSquareSize(8), marker.Size())
}

func TestSceneObjects_Spline(t *testing.T) {
	var sc chart.Scene
	sc.Add(chart.Polyline{
		Points:  []chart.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}},
		Tension: 0.2,
	})

	assert.Len(t, sceneObjects(&sc), 2*splineSegments)
}

func TestSceneObjects_DegenerateArea(t *testing.T) {
	var sc chart.Scene
	sc.Add(
		chart.Area{Points: []chart.Point{{X: 5, Y: 10}, {X: 5, Y: 30}}},
		chart.Area{},
	)
	assert.Empty(t, sceneObjects(&sc))
}

func TestSceneObjects_TextAlignment(t *testing.T) {
	test.NewTempApp(t)

	var sc chart.Scene
	sc.Add(
		chart.Text{X: 100, Y: 10, Text: "10 µA", Size: 11, Align: chart.AlignLeft},
		chart.Text{X: 100, Y: 10, Text: "10 µA", Size: 11, Align: chart.AlignCenter},
		chart.Text{X: 100, Y: 10, Text: "10 µA", Size: 11, Align: chart.AlignRight},
	)

	objs := sceneObjects(&sc)
	require.Len(t, objs, 3)

	w := fyne.MeasureText("10 µA", 11, fyne.TextStyle{}).Width
	assert.InDelta(t, 100, objs[0].Position().X, 1e-3)
	assert.InDelta(t, 100-w/2, objs[1].Position().X, 1e-3)
	assert.InDelta(t, 100-w, objs[2].Position().X, 1e-3)
	for _, o := range objs {
		assert.Equal(t, float32(10), o.Position().Y)
		assert.Equal(t, float32(11), o.(*canvas.Text).TextSize)
	}
}
