// Package stats computes elementary spike-train statistics:
// inter-spike intervals, firing rates over a window, and the
// coefficient of variation.
package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/meredith/spikekit/internal/neuro"
)

// ISI returns the inter-spike intervals of a spike train: the
// difference between consecutive spike times, in the train's units.
// Accepts a *neuro.SpikeTrain, a *neuro.Quantity, or a []float64.
func ISI(spiketrain any) (*neuro.Quantity, error) {
	values, units, err := spikeValues(spiketrain)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return neuro.NewQuantity(nil, units), nil
	}
	intervals := make([]float64, len(values)-1)
	for i := range intervals {
		intervals[i] = values[i+1] - values[i]
	}
	return neuro.NewQuantity(intervals, units), nil
}

// FiringRate returns the number of spikes in [tStart, tStop] divided
// by the window length. For a train with time units the result is in
// Hz; a unitless train gives a unitless rate.
//
// Nil bounds fall back to the train's own window, then to 0 and the
// last spike time. Bounds with units on a unitless train are an error.
func FiringRate(spiketrain any, tStart, tStop any) (*neuro.Quantity, error) {
	values, units, err := spikeValues(spiketrain)
	if err != nil {
		return nil, err
	}

	st, _ := spiketrain.(*neuro.SpikeTrain)
	if tStart == nil && st != nil && st.TStart != nil {
		tStart = st.TStart
	}
	if tStop == nil && st != nil && st.TStop != nil {
		tStop = st.TStop
	}

	start, err := boundIn(tStart, units, 0, "t_start")
	if err != nil {
		return nil, err
	}
	stop, err := boundIn(tStop, units, maxOf(values), "t_stop")
	if err != nil {
		return nil, err
	}
	if stop <= start {
		return nil, fmt.Errorf("empty window [%v, %v]", start, stop)
	}

	count := 0
	for _, v := range values {
		if v >= start && v <= stop {
			count++
		}
	}

	rate := float64(count) / (stop - start)
	if units == "" {
		return neuro.NewScalar(rate, ""), nil
	}

	// Express the window in seconds so the rate comes out in Hz.
	window, err := neuro.NewScalar(stop-start, units).Rescale("s")
	if err != nil {
		return nil, err
	}
	seconds, err := window.Scalar()
	if err != nil {
		return nil, err
	}
	return neuro.NewScalar(float64(count)/seconds, "Hz"), nil
}

// CV returns the coefficient of variation of a sample: the population
// standard deviation divided by the mean.
func CV(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.New("empty sample")
	}
	mean := stat.Mean(xs, nil)
	if mean == 0 {
		return 0, errors.New("zero mean")
	}
	std := stat.PopStdDev(xs, nil)
	return std / mean, nil
}

// CVISI is the coefficient of variation of a train's inter-spike
// intervals, a common regularity measure.
func CVISI(spiketrain any) (float64, error) {
	intervals, err := ISI(spiketrain)
	if err != nil {
		return 0, err
	}
	return CV(intervals.Values)
}

func spikeValues(spiketrain any) ([]float64, string, error) {
	switch v := spiketrain.(type) {
	case *neuro.SpikeTrain:
		if v.Times == nil {
			return nil, "", fmt.Errorf("spike train %q has no times", v.Name())
		}
		return v.Times.Values, v.Times.Units, nil
	case *neuro.Quantity:
		return v.Values, v.Units, nil
	case []float64:
		return v, "", nil
	default:
		return nil, "", fmt.Errorf("cannot compute statistics on %T", spiketrain)
	}
}

// boundIn resolves a window bound into the spike-time units.
func boundIn(v any, units string, fallback float64, name string) (float64, error) {
	switch b := v.(type) {
	case nil:
		return fallback, nil
	case float64:
		return b, nil
	case int:
		return float64(b), nil
	case *neuro.Quantity:
		if b.Units == "" || b.Units == units {
			return b.Scalar()
		}
		if units == "" {
			return 0, fmt.Errorf("%s cannot carry units when the spike train has none", name)
		}
		rescaled, err := b.Rescale(units)
		if err != nil {
			return 0, err
		}
		return rescaled.Scalar()
	default:
		return 0, fmt.Errorf("unsupported %s type %T", name, v)
	}
}

func maxOf(values []float64) float64 {
	var max float64
	for i, v := range values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}
