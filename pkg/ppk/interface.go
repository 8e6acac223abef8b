//go:generate mockgen -source=interface.go -destination=mocks/mock_device.go -package=mocks

package ppk

// Device defines the interface for power profiler devices (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Samples() <-chan RawSample
	SetTriggerLevel(levelUA float64) error
	SetTriggerWindow(windowMs float64) error
	StartTrigger(single bool) error
	StopTrigger() error
	SetExternalTrigger(enabled bool) error
	UpdateResistors(high, mid, low float64) error
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
