package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/config"
)

// resistorRange is the calibration range of one shunt (Ω).
type resistorRange struct {
	name     string
	min, max float64
	step     float64
}

var (
	highRange = resistorRange{name: "High", min: 1, max: 3, step: 0.01}
	midRange  = resistorRange{name: "Mid", min: 25, max: 35, step: 0.1}
	lowRange  = resistorRange{name: "Low", min: 450, max: 550, step: 1}
)

func (r resistorRange) label(v float64) string {
	return fmt.Sprintf("%s %.2f Ω", r.name, v)
}

func (r resistorRange) clamp(v float64) float64 {
	return min(max(v, r.min), r.max)
}

// clampResistors limits every shunt value to its calibration range.
func clampResistors(c config.ResistorConfig) config.ResistorConfig {
	return config.ResistorConfig{
		High: highRange.clamp(c.High),
		Mid:  midRange.clamp(c.Mid),
		Low:  lowRange.clamp(c.Low),
	}
}

// resistorPanel holds the shunt calibration sliders.
type resistorPanel struct {
	state *appState

	high, mid, low *widget.Slider
	update         *widget.Button

	content fyne.CanvasObject
}

func newResistorPanel(state *appState) *resistorPanel {
	p := &resistorPanel{state: state}

	var rows []fyne.CanvasObject
	newRow := func(r resistorRange) *widget.Slider {
		label := widget.NewLabel(r.label(r.min))
		s := widget.NewSlider(r.min, r.max)
		s.Step = r.step
		s.OnChanged = func(v float64) { label.SetText(r.label(v)) }
		rows = append(rows, label, s)
		return s
	}
	p.high = newRow(highRange)
	p.mid = newRow(midRange)
	p.low = newRow(lowRange)
	p.show(clampResistors(state.cfg.Resistors))

	p.update = widget.NewButton("Update", p.apply)
	reset := widget.NewButton("Reset", p.reset)

	p.content = container.NewVBox(append(
		[]fyne.CanvasObject{widget.NewLabelWithStyle("Resistor calibration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})},
		append(rows, container.NewGridWithColumns(2, p.update, reset))...,
	)...)
	return p
}

// setConnected implements connectable.
func (p *resistorPanel) setConnected(connected bool) {
	if connected {
		p.update.Enable()
	} else {
		p.update.Disable()
	}
}

func (p *resistorPanel) show(c config.ResistorConfig) {
	p.high.SetValue(c.High)
	p.mid.SetValue(c.Mid)
	p.low.SetValue(c.Low)
}

func (p *resistorPanel) values() config.ResistorConfig {
	return clampResistors(config.ResistorConfig{
		High: p.high.Value,
		Mid:  p.mid.Value,
		Low:  p.low.Value,
	})
}

// apply sends the slider values to the device and stores them.
func (p *resistorPanel) apply() {
	c := p.values()
	if dev := p.state.device(); dev != nil {
		if err := dev.UpdateResistors(c.High, c.Mid, c.Low); err != nil {
			dialog.ShowError(fmt.Errorf("failed to update resistors: %w", err), p.state.window)
			return
		}
	}
	p.state.cfg.Resistors = c
	p.state.saveConfig()
}

// reset restores the default calibration.
func (p *resistorPanel) reset() {
	p.show(config.Default().Resistors)
	p.apply()
}
