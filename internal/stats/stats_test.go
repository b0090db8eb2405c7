package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meredith/spikekit/internal/neuro"
)

func TestISI(t *testing.T) {
	st := neuro.NewSpikeTrain("u1",
		neuro.NewQuantity([]float64{0.1, 0.3, 0.7, 0.8}, "s"), 0, 1)

	intervals, err := ISI(st)
	require.NoError(t, err)
	assert.Equal(t, "s", intervals.Units)
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.1}, intervals.Values, 1e-9)
}

func TestISIPlainSlice(t *testing.T) {
	intervals, err := ISI([]float64{1, 4, 9})
	require.NoError(t, err)
	assert.Equal(t, "", intervals.Units)
	assert.Equal(t, []float64{3, 5}, intervals.Values)
}

func TestISIEmptyAndSingle(t *testing.T) {
	intervals, err := ISI([]float64{})
	require.NoError(t, err)
	assert.Empty(t, intervals.Values)

	intervals, err = ISI([]float64{0.5})
	require.NoError(t, err)
	assert.Empty(t, intervals.Values)
}

func TestFiringRate(t *testing.T) {
	st := neuro.NewSpikeTrain("u1",
		neuro.NewQuantity([]float64{0.1, 0.4, 0.9, 1.6}, "s"), 0, 2)

	rate, err := FiringRate(st, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hz", rate.Units)
	v, err := rate.Scalar()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestFiringRateWindow(t *testing.T) {
	st := neuro.NewSpikeTrain("u1",
		neuro.NewQuantity([]float64{0.1, 0.4, 0.9, 1.6}, "s"), 0, 2)

	// Only 0.4 and 0.9 fall in [0.25, 1.25]; both edges inclusive.
	rate, err := FiringRate(st, 0.25, 1.25)
	require.NoError(t, err)
	v, err := rate.Scalar()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestFiringRateMillisecondTrain(t *testing.T) {
	st := neuro.NewSpikeTrain("u1",
		neuro.NewQuantity([]float64{100, 400, 900}, "ms"), 0, 1000)

	rate, err := FiringRate(st, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hz", rate.Units)
	v, err := rate.Scalar()
	require.NoError(t, err)
	// 3 spikes in a 1000 ms window is 3 Hz.
	assert.InDelta(t, 3.0, v, 1e-9)
}

func TestFiringRateUnitless(t *testing.T) {
	rate, err := FiringRate([]float64{1, 2, 3}, 0.0, 10.0)
	require.NoError(t, err)
	assert.Equal(t, "", rate.Units)
	v, err := rate.Scalar()
	require.NoError(t, err)
	assert.InDelta(t, 0.3, v, 1e-9)
}

func TestFiringRateQuantityBoundOnUnitlessTrain(t *testing.T) {
	_, err := FiringRate([]float64{1, 2}, neuro.NewScalar(0, "s"), nil)
	require.Error(t, err)
}

func TestFiringRateEmptyWindow(t *testing.T) {
	_, err := FiringRate([]float64{1, 2}, 5.0, 5.0)
	require.Error(t, err)
}

func TestCV(t *testing.T) {
	// Constant sample has zero variation.
	cv, err := CV([]float64{2, 2, 2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0, cv, 1e-12)

	cv, err = CV([]float64{1, 3})
	require.NoError(t, err)
	// Population stddev 1, mean 2.
	assert.InDelta(t, 0.5, cv, 1e-9)
}

func TestCVErrors(t *testing.T) {
	_, err := CV(nil)
	require.Error(t, err)

	_, err = CV([]float64{-1, 1})
	require.Error(t, err)
}

func TestCVISI(t *testing.T) {
	// Perfectly regular train: intervals all equal, CV 0.
	st := neuro.NewSpikeTrain("u1",
		neuro.NewQuantity([]float64{0.1, 0.2, 0.3, 0.4}, "s"), 0, 1)

	cv, err := CVISI(st)
	require.NoError(t, err)
	assert.InDelta(t, 0, cv, 1e-9)
}

func TestCVISIIrregular(t *testing.T) {
	cv, err := CVISI([]float64{0, 1, 5})
	require.NoError(t, err)
	// Intervals 1 and 4: stddev 1.5, mean 2.5.
	assert.False(t, math.IsNaN(cv))
	assert.InDelta(t, 0.6, cv, 1e-9)
}
