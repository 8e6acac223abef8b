package chart

// Intent is a requested state change. Overlays return intents and the Group
// applies them in dispatch order.
type Intent interface {
	Kind() string
}

// SetWindow replaces the visible window.
type SetWindow struct {
	Window Window
}

// SetCursor replaces the selection. The zero Cursor clears it.
type SetCursor struct {
	Cursor Cursor
}

// PreviewTriggerLevel moves the displayed trigger level without telling the
// device.
type PreviewTriggerLevel struct {
	Level float64
}

// CommitTriggerLevel sets the trigger level and sends it to the device.
type CommitTriggerLevel struct {
	Level float64
}

// ReportPlotWidth tells the windowing collaborator how wide the plot area is
// and how many points it can usefully show.
type ReportPlotWidth struct {
	Width     int
	MaxPoints int
}

func (SetWindow) Kind() string           { return "set_window" }
func (SetCursor) Kind() string           { return "set_cursor" }
func (PreviewTriggerLevel) Kind() string { return "preview_trigger_level" }
func (CommitTriggerLevel) Kind() string  { return "commit_trigger_level" }
func (ReportPlotWidth) Kind() string     { return "report_plot_width" }

// ClearCursor returns the intent removing the selection.
func ClearCursor() Intent {
	return SetCursor{}
}
