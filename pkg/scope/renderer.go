package scope

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"
	"github.com/itohio/goppk/pkg/chart"
)

// splineSegments is the number of straight pieces per span of a
// tensioned polyline.
const splineSegments = 6

// surfaceRenderer paints the scene of a Surface.
type surfaceRenderer struct {
	surface *Surface

	background *canvas.Rectangle
	objects    []fyne.CanvasObject

	lastSize fyne.Size
}

func newSurfaceRenderer(s *Surface) *surfaceRenderer {
	bg := canvas.NewRectangle(chart.ColorBackground)
	return &surfaceRenderer{
		surface:    s,
		background: bg,
		objects:    []fyne.CanvasObject{bg},
	}
}

// MinSize returns the minimum size of the widget.
func (r *surfaceRenderer) MinSize() fyne.Size {
	return r.surface.minSize
}

// Layout resizes the chart surface; the plot area follows the widget size.
func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	if size == r.lastSize {
		return
	}
	r.lastSize = size
	r.surface.surface.Layout(float64(size.Width), float64(size.Height))
	r.Refresh()
}

// Refresh repaints the surface.
func (r *surfaceRenderer) Refresh() {
	size := r.surface.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	sc := r.surface.surface.Render()
	r.objects = append(r.objects[:1], sceneObjects(sc)...)
	canvas.Refresh(r.surface)

	if r.surface.onPaint != nil {
		r.surface.onPaint(r.surface.name)
	}
}

// Objects returns all canvas objects for rendering.
func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *surfaceRenderer) Destroy() {}

// sceneObjects converts scene items to canvas objects in painting order.
func sceneObjects(sc *chart.Scene) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(sc.Items))
	for _, it := range sc.Items {
		switch v := it.(type) {
		case chart.Line:
			objs = append(objs, newLine(pos(v.X1, v.Y1), pos(v.X2, v.Y2), v.Color, v.Width))

		case chart.Polyline:
			pts := v.Flatten(splineSegments)
			for i := 1; i < len(pts); i++ {
				objs = append(objs, newLine(pos(pts[i-1].X, pts[i-1].Y), pos(pts[i].X, pts[i].Y), v.Color, v.Width))
			}

		case chart.Area:
			// Bands are axis aligned; fill the bounding box
			if rect, ok := areaRect(v); ok {
				objs = append(objs, rect)
			}

		case chart.Box:
			rect := canvas.NewRectangle(transparent(v.Fill))
			rect.StrokeColor = transparent(v.Stroke)
			rect.StrokeWidth = float32(v.StrokeWidth)
			rect.Move(pos(v.Rect.X, v.Rect.Y))
			rect.Resize(fyne.NewSize(float32(v.Rect.W), float32(v.Rect.H)))
			objs = append(objs, rect)

		case chart.Marker:
			c := canvas.NewCircle(transparent(v.Fill))
			c.StrokeColor = transparent(v.Stroke)
			c.StrokeWidth = float32(v.StrokeWidth)
			r := float32(v.Radius)
			c.Move(fyne.NewPos(float32(v.X)-r, float32(v.Y)-r))
			c.Resize(fyne.NewSquareSize(2 * r))
			objs = append(objs, c)

		case chart.Text:
			objs = append(objs, newText(v))
		}
	}
	return objs
}

func newLine(p1, p2 fyne.Position, c color.Color, width float64) *canvas.Line {
	l := canvas.NewLine(c)
	l.Position1 = p1
	l.Position2 = p2
	l.StrokeWidth = float32(width)
	return l
}

func newText(t chart.Text) *canvas.Text {
	txt := canvas.NewText(t.Text, t.Color)
	txt.TextSize = float32(t.Size)

	size := fyne.MeasureText(t.Text, txt.TextSize, txt.TextStyle)
	x := float32(t.X)
	switch t.Align {
	case chart.AlignCenter:
		x -= size.Width / 2
	case chart.AlignRight:
		x -= size.Width
	}
	txt.Move(fyne.NewPos(x, float32(t.Y)))
	txt.Resize(size)
	return txt
}

func areaRect(a chart.Area) (*canvas.Rectangle, bool) {
	if len(a.Points) == 0 {
		return nil, false
	}
	x0, y0 := float32(a.Points[0].X), float32(a.Points[0].Y)
	x1, y1 := x0, y0
	for _, p := range a.Points[1:] {
		x0 = math32.Min(x0, float32(p.X))
		x1 = math32.Max(x1, float32(p.X))
		y0 = math32.Min(y0, float32(p.Y))
		y1 = math32.Max(y1, float32(p.Y))
	}
	if math32.Abs(x1-x0) < 0.5 {
		return nil, false
	}
	rect := canvas.NewRectangle(a.Fill)
	rect.Move(fyne.NewPos(x0, y0))
	rect.Resize(fyne.NewSize(x1-x0, y1-y0))
	return rect, true
}

func pos(x, y float64) fyne.Position {
	return fyne.NewPos(float32(x), float32(y))
}

// transparent maps a missing color to a transparent one.
func transparent(c color.Color) color.Color {
	if c == nil {
		return color.Transparent
	}
	return c
}
