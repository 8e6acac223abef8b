package chart

import "image/color"

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// Align is the horizontal anchor of a text item.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Item is a drawable primitive of a Scene.
type Item interface {
	item()
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          color.Color
}

// Polyline is a connected run of points. A positive Tension requests a
// cardinal spline through the points instead of straight segments.
type Polyline struct {
	Points  []Point
	Width   float64
	Tension float64
	Color   color.Color
}

// Area is a closed polygon filled with Fill.
type Area struct {
	Points []Point
	Fill   color.Color
}

// Box is a rectangle, filled, outlined or both.
type Box struct {
	Rect        Rect
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// Marker is a point marker drawn as a circle.
type Marker struct {
	X, Y        float64
	Radius      float64
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// Text is a single line of text anchored at its top edge.
type Text struct {
	X, Y  float64
	Text  string
	Size  float64
	Align Align
	Color color.Color
}

func (Line) item()     {}
func (Polyline) item() {}
func (Area) item()     {}
func (Box) item()      {}
func (Marker) item()   {}
func (Text) item()     {}

// Scene is the flat list of primitives a surface draws in one frame, in
// painting order.
type Scene struct {
	Width, Height float64
	Items         []Item
}

// Add appends items to the scene.
func (s *Scene) Add(items ...Item) {
	s.Items = append(s.Items, items...)
}

// Reset empties the scene keeping its capacity.
func (s *Scene) Reset(width, height float64) {
	s.Width, s.Height = width, height
	clear(s.Items)
	s.Items = s.Items[:0]
}

// Palette colors.
var (
	ColorBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorTrace      = color.NRGBA{R: 0x00, G: 0xa9, B: 0xce, A: 0xff}
	ColorGrid       = color.NRGBA{R: 0xe0, G: 0xe4, B: 0xe8, A: 0xff}
	ColorAxis       = color.NRGBA{R: 0x8b, G: 0x95, B: 0x9e, A: 0xff}
	ColorLabel      = color.NRGBA{R: 0x33, G: 0x3f, B: 0x48, A: 0xff}
	ColorCrosshair  = color.NRGBA{R: 0x33, G: 0x3f, B: 0x48, A: 0x80}
	ColorSelection  = color.NRGBA{R: 0x00, G: 0xa9, B: 0xce, A: 0x30}
	ColorDragBorder = color.NRGBA{R: 0x00, G: 0xa9, B: 0xce, A: 0xa0}
	ColorTrigger    = color.NRGBA{R: 0xee, G: 0x2f, B: 0x4e, A: 0x80}
	ColorTriggerHot = color.NRGBA{R: 0xee, G: 0x2f, B: 0x4e, A: 0xff}
	ColorOrigin     = color.NRGBA{R: 0xf5, G: 0x82, B: 0x20, A: 0xff}
	ColorBand       = color.NRGBA{R: 0x00, G: 0xa9, B: 0xce, A: 0x60}
)

// Flatten returns the points to stroke for p. Straight polylines are
// returned as is; tensioned ones are sampled along a cardinal spline with
// segments points per span.
func (p Polyline) Flatten(segments int) []Point {
	if p.Tension <= 0 || len(p.Points) < 3 || segments < 2 {
		return p.Points
	}

	pts := p.Points
	out := make([]Point, 0, (len(pts)-1)*segments+1)
	out = append(out, pts[0])
	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, len(pts)-1)]

		// Tangents of the cardinal spline
		m1 := Point{X: p.Tension * (p2.X - p0.X), Y: p.Tension * (p2.Y - p0.Y)}
		m2 := Point{X: p.Tension * (p3.X - p1.X), Y: p.Tension * (p3.Y - p1.Y)}

		for s := 1; s <= segments; s++ {
			t := float64(s) / float64(segments)
			t2 := t * t
			t3 := t2 * t
			h00 := 2*t3 - 3*t2 + 1
			h10 := t3 - 2*t2 + t
			h01 := -2*t3 + 3*t2
			h11 := t3 - t2
			out = append(out, Point{
				X: h00*p1.X + h10*m1.X + h01*p2.X + h11*m2.X,
				Y: h00*p1.Y + h10*m1.Y + h01*p2.Y + h11*m2.Y,
			})
		}
	}
	return out
}
