package convert

import (
	"errors"
	"fmt"
	"sort"

	"github.com/meredith/spikekit/internal/neuro"
)

// BinarizeOptions supplies the binning parameters. Each field accepts
// a plain float64 (interpreted in the spike train's units) or a
// *neuro.Quantity (rescaled to the spike train's units). Unset fields
// fall back to the spike train's own attributes.
type BinarizeOptions struct {
	SamplingRate any
	TStart       any
	TStop        any
	// ReturnTimes also fills Binarized.Times with the bin time points.
	ReturnTimes bool
}

// Binarized is a boolean presence vector over uniform time bins.
type Binarized struct {
	// Values marks bins containing one or more spikes. Spike counts
	// per bin are not preserved.
	Values []bool
	// Times holds the bin time points in the train's units. Nil unless
	// requested; Units is empty when the input carried no units.
	Times *neuro.Quantity
}

// Binarize bins spike times into boolean presence values, one per time
// point spaced 1/sampling_rate apart from t_start to t_stop.
//
// spiketrain may be a *neuro.SpikeTrain, a *neuro.Quantity, or a plain
// []float64. Spikes land in the bin of the closest time point, going
// up when exactly between two; the upper edge of the last bin (t_stop)
// is inclusive. Spikes outside [t_start, t_stop] are dropped.
func Binarize(spiketrain any, opts BinarizeOptions) (*Binarized, error) {
	values, units, err := spikeValues(spiketrain)
	if err != nil {
		return nil, err
	}

	st, _ := spiketrain.(*neuro.SpikeTrain)

	rate := opts.SamplingRate
	if rate == nil && st != nil && st.SamplingRate != nil {
		rate = st.SamplingRate
	}
	if rate == nil {
		return nil, errors.New("sampling rate must either be given explicitly or be an attribute of the spike train")
	}
	period, err := samplingPeriodIn(rate, units)
	if err != nil {
		return nil, err
	}

	tStart := opts.TStart
	if tStart == nil && st != nil && st.TStart != nil {
		tStart = st.TStart
	}
	start, err := boundIn(tStart, units, 0, "t_start")
	if err != nil {
		return nil, err
	}

	tStop := opts.TStop
	if tStop == nil && st != nil && st.TStop != nil {
		tStop = st.TStop
	}
	stop, err := boundIn(tStop, units, maxOf(values), "t_stop")
	if err != nil {
		return nil, err
	}

	edges := binEdges(start, stop, period)
	res := make([]bool, len(edges)-1)
	for _, t := range values {
		if bin, ok := findBin(edges, t); ok {
			res[bin] = true
		}
	}

	out := &Binarized{Values: res}
	if opts.ReturnTimes {
		times := make([]float64, 0, len(res))
		for t := start; t <= stop+period/2; t += period {
			times = append(times, t)
		}
		out.Times = neuro.NewQuantity(times, units)
	}
	return out, nil
}

// binEdges places one edge halfway between adjacent time points so a
// spike lands in the bin of its closest point, then clamps the outer
// edges to the requested bounds.
func binEdges(start, stop, period float64) []float64 {
	var edges []float64
	for e := start - period/2; e < stop+period*1.5; e += period {
		edges = append(edges, e)
	}
	if len(edges) >= 2 && edges[len(edges)-2] > stop {
		edges = edges[:len(edges)-1]
	}
	if len(edges) >= 2 && edges[1] < start {
		edges = edges[1:]
	}
	if len(edges) < 2 {
		edges = []float64{start, stop}
	}
	edges[0] = start
	edges[len(edges)-1] = stop
	return edges
}

// findBin locates the histogram bin for t: bins are left-inclusive,
// right-exclusive, except the last whose upper edge is inclusive.
func findBin(edges []float64, t float64) (int, bool) {
	last := len(edges) - 1
	if t < edges[0] || t > edges[last] {
		return 0, false
	}
	i := sort.SearchFloat64s(edges, t)
	if i < len(edges) && edges[i] == t {
		if i == last {
			return last - 1, true
		}
		return i, true
	}
	return i - 1, true
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
		return nil, "", fmt.Errorf("cannot binarize %T", spiketrain)
	}
}

// samplingPeriodIn inverts a sampling rate into a period expressed in
// the spike-time units. A quantity rate on a unitless train is an
// error; a plain number is taken as already matching the train.
func samplingPeriodIn(rate any, units string) (float64, error) {
	switch r := rate.(type) {
	case *neuro.Quantity:
		if r.Units == "" {
			v, err := r.Scalar()
			if err != nil {
				return 0, err
			}
			if v <= 0 {
				return 0, fmt.Errorf("invalid sampling rate %v", v)
			}
			return 1 / v, nil
		}
		if units == "" {
			return 0, errors.New("sampling rate cannot carry units when the spike train has none")
		}
		hz, err := r.Rescale("Hz")
		if err != nil {
			return 0, err
		}
		v, err := hz.Scalar()
		if err != nil {
			return 0, err
		}
		if v <= 0 {
			return 0, fmt.Errorf("invalid sampling rate %v", v)
		}
		period := neuro.NewScalar(1/v, "s")
		rescaled, err := period.Rescale(units)
		if err != nil {
			return 0, err
		}
		return rescaled.Scalar()
	case float64:
		if r <= 0 {
			return 0, fmt.Errorf("invalid sampling rate %v", r)
		}
		return 1 / r, nil
	case int:
		if r <= 0 {
			return 0, fmt.Errorf("invalid sampling rate %v", r)
		}
		return 1 / float64(r), nil
	default:
		return 0, fmt.Errorf("unsupported sampling rate type %T", rate)
	}
}

// boundIn resolves a t_start/t_stop value into the spike-time units.
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
