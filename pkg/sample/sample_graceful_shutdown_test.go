package sample

import (
	"testing"
	"time"

	"github.com/itohio/goppk/pkg/ppk"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestConverter_GracefulShutdown tests that converter closes output channel
// when input channel is closed.
func TestConverter_GracefulShutdown(t *testing.T) {
	converter := NewConverter(10, zerolog.Nop())
	input := make(chan ppk.RawSample, 10)
	output := converter(input)

	// Read frames in background
	received := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		count := 0
		for range output {
			count++
		}
		received <- count
	}()

	numSamples := 3
	for i := range numSamples {
		input <- ppk.RawSample{Timestamp: float64(i) * 10, Current: 100, Valid: true}
	}

	// Close input channel - this should cause converter to close output
	close(input)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Output channel did not close within timeout")
	}

	select {
	case count := <-received:
		assert.Equal(t, numSamples, count, "Should receive all frames before channel closes")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Did not receive frame count")
	}
}

// TestAveragingStage_GracefulShutdown tests that the averaging stage flushes
// its partial block and closes output channel when input channel is closed.
func TestAveragingStage_GracefulShutdown(t *testing.T) {
	stage := NewAveragingStage(3, 10)
	input := make(chan Frame, 10)
	output := stage(input)

	received := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		count := 0
		for range output {
			count++
		}
		received <- count
	}()

	for i := range 5 {
		input <- Frame{Analog: At(float64(i)*100, float64(i)*0.1)}
	}
	close(input)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Output channel did not close within timeout")
	}

	select {
	case count := <-received:
		assert.Equal(t, 2, count, "One full block plus the flushed remainder")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Did not receive frame count")
	}
}
