package recorder

import (
	"testing"

	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(capacity int) *config.Config {
	cfg := config.Default()
	cfg.Sampling.BufferSamples = capacity
	return cfg
}

// frames returns n frames 10µs apart with value i and bit 0 toggling every
// 5 frames.
func frames(from, n int) []sample.Frame {
	res := make([]sample.Frame, n)
	for i := range res {
		idx := from + i
		res[i] = sample.Frame{Analog: sample.At(float64(idx*10), float64(idx))}
		if (idx/5)%2 == 1 {
			res[i].Bits = 1
		}
	}
	return res
}

func TestNew(t *testing.T) {
	b := New(config.Default())

	require.NotNil(t, b)
	assert.Equal(t, 0, b.Count())
	assert.Equal(t, float64(10), b.SampleInterval())

	_, ok := b.Extent()
	assert.False(t, ok)
	_, ok = b.TriggerOrigin()
	assert.False(t, ok)
}

func TestNew_AveragingScalesInterval(t *testing.T) {
	cfg := config.Default()
	cfg.Sampling.AverageSamples = 4

	assert.Equal(t, float64(40), New(cfg).SampleInterval())
}

func TestAppend_Extent(t *testing.T) {
	b := New(testConfig(100))
	b.append(frames(0, 10))

	ext, ok := b.Extent()
	require.True(t, ok)
	assert.Equal(t, chart.Window{Begin: 0, End: 90}, ext)
	assert.Equal(t, 10, b.Count())
	assert.Equal(t, uint64(10), b.Recorded())

	ts, ok := b.TimestampOf(3)
	assert.True(t, ok)
	assert.Equal(t, float64(30), ts)

	_, ok = b.TimestampOf(10)
	assert.False(t, ok)
}

func TestTrim_KeepsAbsoluteIndices(t *testing.T) {
	b := New(testConfig(16))

	// 16 + 16/8 = 18 frames fit before trimming
	b.append(frames(0, 18))
	assert.Equal(t, 18, b.Count())

	b.append(frames(18, 1))
	assert.Equal(t, 16, b.Count())

	_, ok := b.TimestampOf(2)
	assert.False(t, ok, "Trimmed frames are gone")

	ts, ok := b.TimestampOf(3)
	require.True(t, ok)
	assert.Equal(t, float64(30), ts)

	ts, ok = b.TimestampOf(18)
	require.True(t, ok)
	assert.Equal(t, float64(180), ts)

	ext, _ := b.Extent()
	assert.Equal(t, chart.Window{Begin: 30, End: 180}, ext)
}

func TestTrigger_SetsOrigin(t *testing.T) {
	b := New(testConfig(100))

	var fired []int
	b.OnTrigger(func(index int) { fired = append(fired, index) })

	batch := frames(0, 10)
	batch[4].Trigger = true
	batch[7].Trigger = true
	b.append(batch)

	origin, ok := b.TriggerOrigin()
	require.True(t, ok)
	assert.Equal(t, 7, origin)
	assert.Equal(t, []int{4, 7}, fired)
}

func TestAnalog_WindowWithPadding(t *testing.T) {
	b := New(testConfig(1000))
	b.append(frames(0, 100))

	got := b.Analog(chart.NewWindow(200, 300), 1000)

	// Frames 20..30 plus one on each side
	require.Len(t, got, 13)
	assert.Equal(t, float64(190), got[0].Timestamp)
	assert.Equal(t, float64(310), got[len(got)-1].Timestamp)
}

func TestAnalog_BoundedByPlotWidth(t *testing.T) {
	b := New(testConfig(1000))
	b.append(frames(0, 500))

	assert.Len(t, b.Analog(chart.NewWindow(0, 5000), 2000), 500)

	b.ReportPlotWidth(100, 100)
	assert.Len(t, b.Analog(chart.NewWindow(0, 5000), 2000), 100)
	assert.Len(t, b.Analog(chart.NewWindow(0, 5000), 50), 50)
}

func TestAnalog_OutsideData(t *testing.T) {
	b := New(testConfig(1000))
	b.append(frames(0, 10))

	got := b.Analog(chart.NewWindow(1000, 2000), 100)
	require.Len(t, got, 1, "Only the padding frame before the window")
	assert.Equal(t, float64(90), got[0].Timestamp)
}

func TestDigital(t *testing.T) {
	b := New(testConfig(1000))
	b.append(frames(0, 20))

	got := b.Digital(chart.NewWindow(0, 190), 0, 100)
	require.Len(t, got, 20)
	assert.Equal(t, sample.DigitalLow, got[0].Main.Value)
	assert.Equal(t, sample.DigitalHigh, got[5].Main.Value)
}

func TestStats(t *testing.T) {
	b := New(testConfig(1000))
	batch := frames(0, 10)
	batch[2].Analog = sample.Gap(20)
	b.append(batch)

	st := b.Stats(40, 10)

	assert.Equal(t, float64(30), st.Duration)
	assert.Equal(t, 4, st.Samples)
	assert.Equal(t, 3, st.Valid)
	assert.InDelta(t, 8.0/3, st.Average, 1e-9)
	assert.Equal(t, float64(4), st.Max)
	// (1+3+4) µA x 10 µs = 80 pC
	assert.InDelta(t, 80e-6, st.Charge, 1e-12)
}

func TestStats_Empty(t *testing.T) {
	b := New(testConfig(1000))

	st := b.Stats(0, 100)
	assert.Equal(t, 0, st.Samples)
	assert.Equal(t, float64(0), st.Average)
}

func TestReset(t *testing.T) {
	b := New(testConfig(1000))
	batch := frames(0, 10)
	batch[3].Trigger = true
	b.append(batch)

	b.Reset()

	assert.Equal(t, 0, b.Count())
	_, ok := b.TriggerOrigin()
	assert.False(t, ok)
	_, ok = b.TimestampOf(3)
	assert.False(t, ok)
}

func TestOnUpdate(t *testing.T) {
	b := New(testConfig(1000))

	var updates []Update
	b.OnUpdate(func(u Update) { updates = append(updates, u) })

	b.append(frames(0, 5))
	b.append(frames(5, 3))

	require.Len(t, updates, 2)
	assert.Equal(t, Update{Appended: 3, Count: 8, Extent: chart.Window{Begin: 0, End: 70}}, updates[1])
}
