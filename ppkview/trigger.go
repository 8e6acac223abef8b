package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/chart"
)

// Trigger window limits (ms): 450 to 4000 samples of 13 µs.
const (
	triggerWindowMinMs = 450 * 13 / 1e3
	triggerWindowMaxMs = 4000 * 13 / 1e3
)

// Trigger level entry limits, in the selected unit.
const (
	triggerLevelMin = 1
	triggerLevelMax = 1000
)

const (
	unitMicro = "µA"
	unitMilli = "mA"
)

// triggerPanel holds the trigger controls.
type triggerPanel struct {
	state *appState

	window      *widget.Slider
	windowLabel *widget.Label
	level       *widget.Entry
	unit        *widget.RadioGroup
	single      *widget.Button
	start       *widget.Button
	stop        *widget.Button
	external    *widget.Check

	content fyne.CanvasObject
}

func newTriggerPanel(state *appState) *triggerPanel {
	p := &triggerPanel{state: state}

	p.windowLabel = widget.NewLabel("")
	p.window = widget.NewSlider(triggerWindowMinMs, triggerWindowMaxMs)
	p.window.Step = 0.13
	p.window.SetValue(clampWindow(state.cfg.Trigger.WindowMs))
	p.showWindow(p.window.Value)
	p.window.OnChanged = p.showWindow
	p.window.OnChangeEnded = p.setWindow

	p.level = widget.NewEntry()
	p.level.Validator = func(s string) error {
		_, err := parseLevel(s, unitMicro)
		return err
	}
	p.level.OnSubmitted = func(string) { p.commitLevel() }
	p.unit = widget.NewRadioGroup([]string{unitMicro, unitMilli}, func(string) { p.commitLevel() })
	p.unit.Horizontal = true
	p.showLevel(state.group.State().Trigger.Level)

	p.single = widget.NewButton("Single", func() { p.arm(true) })
	p.start = widget.NewButton("Start", func() { p.arm(false) })
	p.stop = widget.NewButton("Stop", p.disarm)

	p.external = widget.NewCheck("External trigger", nil)
	p.external.SetChecked(state.group.State().Trigger.External)
	p.external.OnChanged = p.setExternal

	p.content = container.NewVBox(
		widget.NewLabelWithStyle("Trigger", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.windowLabel,
		p.window,
		widget.NewLabel("Level"),
		container.NewBorder(nil, nil, nil, p.unit, p.level),
		container.NewGridWithColumns(3, p.single, p.start, p.stop),
		p.external,
	)

	state.group.Subscribe(func(st chart.State) {
		fyne.Do(func() { p.sync(st.Trigger) })
	})
	return p
}

// setConnected implements connectable.
func (p *triggerPanel) setConnected(connected bool) {
	for _, w := range []fyne.Disableable{p.single, p.start, p.stop, p.external} {
		if connected {
			w.Enable()
		} else {
			w.Disable()
		}
	}
	if connected {
		p.sync(p.state.group.State().Trigger)
	}
}

// sync reflects the chart trigger state, e.g. a level dragged on the chart.
func (p *triggerPanel) sync(t chart.TriggerState) {
	if cur, err := parseLevel(p.level.Text, p.unit.Selected); err != nil || cur != t.Level {
		p.showLevel(t.Level)
	}
	if p.state.device() == nil {
		return
	}
	if t.Active() {
		p.single.Disable()
		p.start.Disable()
		p.stop.Enable()
	} else {
		p.single.Enable()
		p.start.Enable()
		p.stop.Disable()
	}
}

func (p *triggerPanel) showWindow(ms float64) {
	p.windowLabel.SetText(fmt.Sprintf("Window %.2f ms", ms))
}

func (p *triggerPanel) setWindow(ms float64) {
	p.state.cfg.Trigger.WindowMs = ms
	dev := p.state.device()
	if dev == nil {
		return
	}
	if err := dev.SetTriggerWindow(ms); err != nil {
		dialog.ShowError(fmt.Errorf("failed to set trigger window: %w", err), p.state.window)
	}
}

// showLevel displays uA in the unit that keeps the value within the
// entry limits.
func (p *triggerPanel) showLevel(uA float64) {
	v, unit := displayLevel(uA)
	p.level.SetText(strconv.FormatFloat(v, 'f', -1, 64))
	if p.unit.Selected != unit {
		// Avoid committing again from the radio callback
		cb := p.unit.OnChanged
		p.unit.OnChanged = nil
		p.unit.SetSelected(unit)
		p.unit.OnChanged = cb
	}
}

func (p *triggerPanel) commitLevel() {
	uA, err := parseLevel(p.level.Text, p.unit.Selected)
	if err != nil {
		dialog.ShowError(err, p.state.window)
		return
	}
	p.state.group.Dispatch(chart.CommitTriggerLevel{Level: uA})
}

// arm starts the trigger, once or continuously.
func (p *triggerPanel) arm(single bool) {
	dev := p.state.device()
	if dev == nil {
		return
	}
	if err := dev.StartTrigger(single); err != nil {
		dialog.ShowError(fmt.Errorf("failed to start trigger: %w", err), p.state.window)
		return
	}
	p.state.group.Update(func(st *chart.State) {
		st.Trigger.Running = !single
		st.Trigger.SingleWaiting = single
	})
}

func (p *triggerPanel) disarm() {
	dev := p.state.device()
	if dev == nil {
		return
	}
	if err := dev.StopTrigger(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to stop trigger: %w", err), p.state.window)
		return
	}
	p.state.group.Update(func(st *chart.State) {
		st.Trigger.Running = false
		st.Trigger.SingleWaiting = false
	})
}

func (p *triggerPanel) setExternal(on bool) {
	if dev := p.state.device(); dev != nil {
		if err := dev.SetExternalTrigger(on); err != nil {
			// Revert the check box on error
			p.external.OnChanged = nil
			p.external.SetChecked(!on)
			p.external.OnChanged = p.setExternal
			dialog.ShowError(fmt.Errorf("failed to set external trigger: %w", err), p.state.window)
			return
		}
	}
	p.state.cfg.Trigger.External = on
	p.state.group.Update(func(st *chart.State) { st.Trigger.External = on })
}

// parseLevel converts an entry value in unit to µA.
func parseLevel(text, unit string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid trigger level %q", text)
	}
	if v < triggerLevelMin || v > triggerLevelMax {
		return 0, fmt.Errorf("trigger level must be between %d and %d", triggerLevelMin, triggerLevelMax)
	}
	if unit == unitMilli {
		v *= 1e3
	}
	return v, nil
}

// displayLevel returns uA as an entry value and its unit.
func displayLevel(uA float64) (float64, string) {
	if uA > triggerLevelMax {
		return roundTo(uA/1e3, 3), unitMilli
	}
	return roundTo(uA, 3), unitMicro
}

func clampWindow(ms float64) float64 {
	return min(max(ms, triggerWindowMinMs), triggerWindowMaxMs)
}
