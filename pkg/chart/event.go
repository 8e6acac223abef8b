package chart

// PointerKind enumerates pointer events delivered to a surface.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerLeave
	PointerCancel
	PointerWheel
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	case PointerCancel:
		return "cancel"
	case PointerWheel:
		return "wheel"
	}
	return "unknown"
}

// Button identifies the pointer button of a down or drag event.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

// PointerEvent is a pointer or wheel event in surface pixel coordinates.
// For wheel events DX and DY carry the scroll amount; positive DY scrolls
// away from the user.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	Button Button
	Shift  bool
	DX, DY float64
}

// ends reports whether the event terminates a gesture.
func (e PointerEvent) ends() bool {
	return e.Kind == PointerUp || e.Kind == PointerLeave || e.Kind == PointerCancel
}

// aborts reports whether the event interrupts a gesture.
func (e PointerEvent) aborts() bool {
	return e.Kind == PointerLeave || e.Kind == PointerCancel
}
