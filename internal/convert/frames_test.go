package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meredith/spikekit/internal/neuro"
)

func spikeTrainFixture(t *testing.T) *neuro.SpikeTrain {
	t.Helper()
	seg := neuro.NewSegment("trial-0")
	require.NoError(t, seg.SetAttr("subject", "rat-17", true))

	st := neuro.NewSpikeTrain("u1",
		neuro.NewQuantity([]float64{100, 500, 900}, "ms"), 0, 1000)
	require.NoError(t, st.SetAttr("channel", 3, true))
	seg.AddSpikeTrain(st)
	return st
}

func TestSpikeTrainFrame(t *testing.T) {
	st := spikeTrainFixture(t)

	df, err := SpikeTrainFrame(st, DefaultFrameOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, df.Nrow())
	assert.Contains(t, df.Names(), "time")
	assert.Contains(t, df.Names(), "channel")
	assert.Contains(t, df.Names(), "subject")
	assert.Contains(t, df.Names(), "name")

	// Times come out in seconds.
	times := df.Col("time").Float()
	assert.InDelta(t, 0.1, times[0], 1e-9)
	assert.InDelta(t, 0.9, times[2], 1e-9)

	// Metadata repeats per row.
	subjects := df.Col("subject").Records()
	assert.Equal(t, []string{"rat-17", "rat-17", "rat-17"}, subjects)
}

func TestSpikeTrainFrameNoParents(t *testing.T) {
	st := spikeTrainFixture(t)

	df, err := SpikeTrainFrame(st, FrameOptions{Parents: false})
	require.NoError(t, err)
	assert.NotContains(t, df.Names(), "subject")
	assert.Contains(t, df.Names(), "channel")
}

func TestEventFrame(t *testing.T) {
	evt := neuro.NewEvent("stim",
		neuro.NewQuantity([]float64{250, 750}, "ms"), []string{"on", "off"})

	df, err := EventFrame(evt, DefaultFrameOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"on", "off"}, df.Col("label").Records())
	assert.InDelta(t, 0.25, df.Col("time").Float()[0], 1e-9)
}

func TestEpochFrame(t *testing.T) {
	epc := neuro.NewEpoch("trials",
		neuro.NewQuantity([]float64{0, 2}, "s"),
		neuro.NewQuantity([]float64{1.5, 1.5}, "s"),
		[]string{"a", "b"})

	df, err := EpochFrame(epc, DefaultFrameOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.InDelta(t, 1.5, df.Col("duration").Float()[1], 1e-9)
	assert.Equal(t, []string{"a", "b"}, df.Col("label").Records())
}

func TestEpochFrameLengthMismatch(t *testing.T) {
	epc := neuro.NewEpoch("bad",
		neuro.NewQuantity([]float64{0, 2}, "s"),
		neuro.NewQuantity([]float64{1.5}, "s"),
		nil)
	_, err := EpochFrame(epc, DefaultFrameOptions())
	require.Error(t, err)
}

func TestAnalogSignalFrame1D(t *testing.T) {
	sig := neuro.NewAnalogSignal("lfp",
		neuro.NewQuantity([]float64{1, 2, 3, 4}, "mV"),
		neuro.NewScalar(2, "Hz"), 0)

	df, err := AnalogSignalFrame(sig, DefaultFrameOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, df.Nrow())
	// 2 Hz sampling gives 0.5 s steps.
	times := df.Col("time").Float()
	assert.InDelta(t, 0.5, times[1], 1e-9)
	// Millivolts convert to base volts.
	assert.InDelta(t, 0.003, df.Col("ch_0").Float()[2], 1e-9)
}

func TestAnalogSignalFrame2D(t *testing.T) {
	signal := &neuro.Quantity{
		Values: []float64{1, 10, 2, 20, 3, 30},
		Shape:  []int{3, 2},
		Units:  "V",
	}
	sig := neuro.NewAnalogSignal("probe", signal, neuro.NewScalar(1, "Hz"), 0)

	df, err := AnalogSignalFrame(sig, DefaultFrameOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, df.Nrow())
	assert.Equal(t, []float64{1, 2, 3}, df.Col("ch_0").Float())
	assert.Equal(t, []float64{10, 20, 30}, df.Col("ch_1").Float())
}

func TestAnalogSignalFrameTooManyDims(t *testing.T) {
	signal := &neuro.Quantity{
		Values: make([]float64, 8),
		Shape:  []int{2, 2, 2},
		Units:  "V",
	}
	sig := neuro.NewAnalogSignal("cube", signal, neuro.NewScalar(1, "Hz"), 0)

	_, err := AnalogSignalFrame(sig, DefaultFrameOptions())
	require.ErrorIs(t, err, ErrTooManyDims)
	require.True(t, errors.Is(err, ErrTooManyDims))
}

func TestArgRegistry(t *testing.T) {
	reg := DefaultArgRegistry()
	assert.Equal(t, []string{"sampling_rate", "t_start", "t_stop"}, reg.ArgsFor("binarize"))
	assert.Nil(t, reg.ArgsFor("unknown"))

	reg.Register("my_analysis", "t_start")
	assert.Equal(t, []string{"t_start"}, reg.ArgsFor("my_analysis"))
}

func TestArgRegistryFillArgs(t *testing.T) {
	st := neuro.NewSpikeTrain("u1", neuro.NewQuantity([]float64{0.5}, "s"), 0, 1)
	st.SamplingRate = neuro.NewScalar(100, "Hz")

	args := DefaultArgRegistry().FillArgs("binarize", st)
	assert.Contains(t, args, "sampling_rate")
	assert.Contains(t, args, "t_start")
	assert.Contains(t, args, "t_stop")

	// Attributes the object lacks stay out.
	st2 := neuro.NewSpikeTrain("u2", neuro.NewQuantity([]float64{0.5}, "s"), 0, 1)
	args2 := DefaultArgRegistry().FillArgs("binarize", st2)
	assert.NotContains(t, args2, "sampling_rate")
}
