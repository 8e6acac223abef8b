package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/ppk"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createSamplingTab(state),
		createChartTab(state),
		createMockTab(state),
	)

	d := dialog.NewCustom("Settings", "Close", tabs, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := ppk.Ports()
	if err != nil {
		state.logger.Warn().Err(err).Msg("failed to list serial ports")
	}

	portOptions := []string{}
	for _, port := range ports {
		portOptions = append(portOptions, port.Name)
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected == "" {
				return
			}
			portChanged := state.cfg.Serial.Port != portSelect.Selected
			wasConnected := state.device() != nil && !state.useMock

			state.cfg.Serial.Port = portSelect.Selected
			state.saveConfig()

			// Reconnect to the new port
			if portChanged && wasConnected {
				state.disconnect()
				if err := state.connect(); err != nil {
					dialog.ShowError(err, state.window)
				}
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createSamplingTab creates the Sampling configuration tab. Changes apply on
// the next connect.
func createSamplingTab(state *appState) *container.TabItem {
	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(strconv.FormatFloat(state.cfg.Sampling.IntervalUs, 'f', -1, 64))

	averageEntry := widget.NewEntry()
	averageEntry.SetText(strconv.Itoa(state.cfg.Sampling.AverageSamples))

	bufferEntry := widget.NewEntry()
	bufferEntry.SetText(strconv.Itoa(state.cfg.Sampling.BufferSamples))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Sample interval (µs)", Widget: intervalEntry},
			{Text: "Average samples (0=disabled)", Widget: averageEntry},
			{Text: "Buffer (samples)", Widget: bufferEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(intervalEntry.Text, 64); err == nil && v > 0 {
				state.cfg.Sampling.IntervalUs = v
			}
			if v, err := strconv.Atoi(averageEntry.Text); err == nil && v >= 0 {
				state.cfg.Sampling.AverageSamples = v
			}
			if v, err := strconv.Atoi(bufferEntry.Text); err == nil && v > 0 {
				state.cfg.Sampling.BufferSamples = v
			}
			state.saveConfig()
		},
	}

	return container.NewTabItem("Sampling", form)
}

// createChartTab creates the Chart configuration tab. Changes apply
// immediately.
func createChartTab(state *appState) *container.TabItem {
	liveEntry := widget.NewEntry()
	liveEntry.SetText(msText(state.cfg.Chart.LiveDurationUs))

	digitalEntry := widget.NewEntry()
	digitalEntry.SetText(msText(state.cfg.Digital.MaxWindowUs))

	maxEntry := widget.NewEntry()
	maxEntry.SetPlaceHolder("auto")

	timestamps := widget.NewCheck("", nil)
	timestamps.SetChecked(state.group.State().TimestampsVisible)

	channels := make([]*widget.Check, config.DigitalChannelCount)
	row := container.NewGridWithColumns(config.DigitalChannelCount)
	for ch := range channels {
		channels[ch] = widget.NewCheck(strconv.Itoa(ch), nil)
		channels[ch].SetChecked(state.cfg.Digital.Channels[ch])
		row.Add(channels[ch])
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Live window (ms)", Widget: liveEntry},
			{Text: "Digital traces up to (ms, 0=always)", Widget: digitalEntry},
			{Text: "Value axis max (µA)", Widget: maxEntry},
			{Text: "Timestamps", Widget: timestamps},
			{Text: "Digital channels", Widget: row},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(liveEntry.Text, 64); err == nil && v > 0 {
				state.cfg.Chart.LiveDurationUs = v * 1e3
			}
			if v, err := strconv.ParseFloat(digitalEntry.Text, 64); err == nil && v >= 0 {
				state.cfg.Digital.MaxWindowUs = v * 1e3
			}
			for ch, c := range channels {
				state.cfg.Digital.Channels[ch] = c.Checked
			}

			var vmax *float64
			if v, err := strconv.ParseFloat(maxEntry.Text, 64); err == nil && v > 0 {
				vmax = &v
			}

			state.group.SetDigitalLimit(state.cfg.Digital.MaxWindowUs)
			state.group.Update(func(st *chart.State) {
				st.LiveDuration = state.cfg.Chart.LiveDurationUs
				st.DigitalChannels = append(st.DigitalChannels[:0], state.cfg.Digital.Channels...)
				st.TimestampsVisible = timestamps.Checked
				st.ValueRange.Max = vmax
			})
			state.saveConfig()
		},
	}

	return container.NewTabItem("Chart", form)
}

// createMockTab creates the Mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	baseEntry := widget.NewEntry()
	baseEntry.SetText(fmt.Sprintf("%.3f", state.cfg.Mock.BaseCurrent))

	burstEntry := widget.NewEntry()
	burstEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.BurstCurrent))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.3f", state.cfg.Mock.NoiseLevel))

	burstDurationEntry := widget.NewEntry()
	burstDurationEntry.SetText(state.cfg.Mock.BurstDuration.String())

	burstPeriodEntry := widget.NewEntry()
	burstPeriodEntry.SetText(state.cfg.Mock.BurstPeriod.String())

	gapEntry := widget.NewEntry()
	gapEntry.SetText(strconv.Itoa(state.cfg.Mock.GapEvery))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Base current (µA)", Widget: baseEntry},
			{Text: "Burst current (µA)", Widget: burstEntry},
			{Text: "Noise level (µA)", Widget: noiseEntry},
			{Text: "Burst duration", Widget: burstDurationEntry},
			{Text: "Burst period", Widget: burstPeriodEntry},
			{Text: "Gap every N samples", Widget: gapEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(baseEntry.Text, 64); err == nil {
				state.cfg.Mock.BaseCurrent = v
			}
			if v, err := strconv.ParseFloat(burstEntry.Text, 64); err == nil {
				state.cfg.Mock.BurstCurrent = v
			}
			if v, err := strconv.ParseFloat(noiseEntry.Text, 64); err == nil {
				state.cfg.Mock.NoiseLevel = v
			}
			if d, err := time.ParseDuration(burstDurationEntry.Text); err == nil {
				state.cfg.Mock.BurstDuration = d
			}
			if d, err := time.ParseDuration(burstPeriodEntry.Text); err == nil {
				state.cfg.Mock.BurstPeriod = d
			}
			if v, err := strconv.Atoi(gapEntry.Text); err == nil && v >= 0 {
				state.cfg.Mock.GapEvery = v
			}
			state.saveConfig()
		},
	}

	return container.NewTabItem("Mock", form)
}

// msText formats a duration given in µs as milliseconds.
func msText(us float64) string {
	return strconv.FormatFloat(us/1e3, 'f', -1, 64)
}
