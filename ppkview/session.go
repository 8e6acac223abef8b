package main

import (
	"fmt"

	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/ppk"
	"github.com/itohio/goppk/pkg/sample"
)

// pipelineBuffer is the channel size between pipeline stages.
const pipelineBuffer = 4096

// session tracks the components of the measurement chain for graceful
// shutdown.
type session struct {
	device       ppk.Device
	recorderDone chan struct{} // Closed when the recorder goroutine exits
}

// close stops the device and waits until the recorder drained the pipeline.
func (s *session) close() {
	if s == nil {
		return
	}
	// Closing the device closes its samples channel, which closes every stage
	if s.device != nil {
		s.device.Close()
	}
	if s.recorderDone != nil {
		<-s.recorderDone
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device() != nil {
		state.disconnect()
		return
	}
	if err := state.connect(); err != nil {
		dialog.ShowError(err, state.window)
	}
}

// connect opens the device, starts the pipeline and pushes the current
// trigger and calibration settings to it.
func (s *appState) connect() error {
	var device ppk.Device
	if s.useMock {
		device = ppk.NewMock(&s.cfg.Mock, s.cfg.Sampling.IntervalUs)
	} else {
		serial := ppk.New(s.cfg.Serial.Port, ppk.DefaultBaudRate, ppk.DefaultBufferSize)
		serial.SetLogger(s.logger.With().Str("component", "serial").Logger())
		device = serial
	}

	if err := device.Connect(); err != nil {
		if s.useMock {
			return fmt.Errorf("failed to connect to mocked device: %w", err)
		}
		return fmt.Errorf("failed to connect to %s: %w", s.cfg.Serial.Port, err)
	}

	// Timestamps restart with every connection
	s.recorder.Reset()

	frames := sample.NewConverter(pipelineBuffer, s.logger)(device.Samples())
	if n := s.cfg.Sampling.AverageSamples; n > 1 {
		frames = sample.NewAveragingStage(n, pipelineBuffer)(frames)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.recorder.ProcessSamples(frames)
	}()

	s.mu.Lock()
	s.session = &session{device: device, recorderDone: done}
	s.mu.Unlock()
	s.configureDevice(device)

	s.group.Update(func(st *chart.State) {
		st.SamplingRunning = true
		st.Trigger.Origin = nil
		st.Trigger.Running = false
		st.Trigger.SingleWaiting = false
	})
	s.group.GoLive()
	s.setConnected(true)

	if s.useMock {
		s.logger.Info().Msg("connected to mocked device")
	} else {
		s.logger.Info().Str("port", s.cfg.Serial.Port).Msg("connected to serial port")
	}
	return nil
}

// configureDevice sends the settings the device does not remember.
func (s *appState) configureDevice(device ppk.Device) {
	st := s.group.State()
	r := s.cfg.Resistors
	for _, err := range []error{
		device.SetTriggerLevel(st.Trigger.Level),
		device.SetTriggerWindow(s.cfg.Trigger.WindowMs),
		device.SetExternalTrigger(st.Trigger.External),
		device.UpdateResistors(r.High, r.Mid, r.Low),
	} {
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to configure device")
		}
	}
}

// disconnect gracefully closes the measurement chain.
func (s *appState) disconnect() {
	s.mu.Lock()
	sess := s.session
	s.session = nil
	s.mu.Unlock()
	if sess == nil {
		return
	}
	sess.close()

	s.group.Update(func(st *chart.State) {
		st.SamplingRunning = false
		st.Trigger.Running = false
		st.Trigger.SingleWaiting = false
	})
	s.setConnected(false)
	s.logger.Info().Msg("disconnected")
}

// setConnected updates every control that depends on the connection.
func (s *appState) setConnected(connected bool) {
	if s.connectBtn != nil {
		if connected {
			s.connectBtn.SetText("Disconnect")
			s.connectBtn.SetIcon(theme.LogoutIcon())
		} else {
			s.connectBtn.SetText("Connect")
			s.connectBtn.SetIcon(theme.LoginIcon())
		}
	}
	for _, p := range s.panels {
		p.setConnected(connected)
	}
}

// device returns the connected device or nil.
func (s *appState) device() ppk.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.device
}

// SetTriggerLevel forwards a committed trigger level to the device. Without
// a device the level is kept and sent on the next connect.
func (s *appState) SetTriggerLevel(levelUA float64) error {
	s.cfg.Trigger.LevelUA = levelUA
	dev := s.device()
	if dev == nil {
		return nil
	}
	return dev.SetTriggerLevel(levelUA)
}

// onTrigger marks the sample that fired the trigger as the time origin. It
// runs on the recorder goroutine.
func (s *appState) onTrigger(index int) {
	s.group.Update(func(st *chart.State) {
		st.Trigger.Origin = &index
		st.Trigger.SingleWaiting = false
	})
}

// dropped returns the number of samples the device had to drop.
func (s *appState) dropped() uint64 {
	type dropper interface {
		Dropped() uint64
	}
	if d, ok := s.device().(dropper); ok {
		return d.Dropped()
	}
	return 0
}
