package main

import (
	"fmt"
	"math"
	"strings"

	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/recorder"
)

// statusLine shows statistics of the cursor selection.
type statusLine struct {
	state *appState
	label *widget.Label
	last  string
}

func newStatusLine(state *appState) *statusLine {
	return &statusLine{
		state: state,
		label: widget.NewLabel(""),
	}
}

// update recomputes the line. It runs on the Fyne thread with each frame.
func (s *statusLine) update() {
	text := ""
	if b, e, ok := s.state.group.State().Cursor.Bounds(); ok {
		text = formatStats(s.state.recorder.Stats(b, e))
	}
	if text == s.last {
		return
	}
	s.last = text
	s.label.SetText(text)
}

// formatStats formats the statistics of a selection.
func formatStats(st recorder.Stats) string {
	if st.Valid == 0 {
		return fmt.Sprintf("Selection %s, no samples", chart.FormatDuration(st.Duration))
	}
	parts := []string{
		"Selection " + chart.FormatDuration(st.Duration),
		"avg " + chart.FormatCurrent(st.Average),
		"max " + chart.FormatCurrent(st.Max),
		"charge " + formatCharge(st.Charge),
	}
	return strings.Join(parts, "   ")
}

// formatCharge formats a charge given in µC.
func formatCharge(uC float64) string {
	if math.Abs(uC) >= 1e3 {
		return fmt.Sprintf("%g mC", roundTo(uC/1e3, 3))
	}
	return fmt.Sprintf("%g µC", roundTo(uC, 3))
}

// roundTo rounds v to n decimals.
func roundTo(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.Round(v*p) / p
}
