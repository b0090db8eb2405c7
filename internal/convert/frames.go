// Package convert turns recording objects into tabular dataframes and
// binary presence vectors. Scalar attributes and annotations (with
// parent propagation) ride along as constant-valued metadata columns,
// so grouped analysis can key on them.
package convert

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/meredith/spikekit/internal/neuro"
)

// ErrTooManyDims is returned when a signal has more than two
// dimensions; only 1-D and 2-D signals have a tabular form.
var ErrTooManyDims = errors.New("only 1-D and 2-D signals can be converted to a dataframe")

// FrameOptions controls metadata column generation.
type FrameOptions struct {
	// Parents merges attributes and annotations from parent objects,
	// child values winning. Enabled by default by the constructors
	// below when the zero value is passed through DefaultFrameOptions.
	Parents bool
}

// DefaultFrameOptions includes parent metadata.
func DefaultFrameOptions() FrameOptions {
	return FrameOptions{Parents: true}
}

// SpikeTrainFrame returns a dataframe with one row per spike. The
// "time" column holds spike times in seconds; scalar attributes become
// constant metadata columns.
func SpikeTrainFrame(st *neuro.SpikeTrain, opts FrameOptions) (dataframe.DataFrame, error) {
	times, err := secondsOf(st.Times)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	cols := []series.Series{series.New(times, series.Float, "time")}
	cols = append(cols, metadataColumns(st, opts, len(times))...)
	return dataframe.New(cols...), nil
}

// EventFrame returns a dataframe with one row per event: time in
// seconds and the event label, plus metadata columns.
func EventFrame(evt *neuro.Event, opts FrameOptions) (dataframe.DataFrame, error) {
	times, err := secondsOf(evt.Times)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	labels := padLabels(evt.Labels, len(times))
	cols := []series.Series{
		series.New(times, series.Float, "time"),
		series.New(labels, series.String, "label"),
	}
	cols = append(cols, metadataColumns(evt, opts, len(times))...)
	return dataframe.New(cols...), nil
}

// EpochFrame returns a dataframe with one row per epoch: time and
// duration in seconds and the epoch label, plus metadata columns.
func EpochFrame(epc *neuro.Epoch, opts FrameOptions) (dataframe.DataFrame, error) {
	times, err := secondsOf(epc.Times)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	durations, err := secondsOf(epc.Durations)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(durations) != len(times) {
		return dataframe.DataFrame{}, fmt.Errorf("epoch %q has %d times but %d durations",
			epc.Name(), len(times), len(durations))
	}
	labels := padLabels(epc.Labels, len(times))
	cols := []series.Series{
		series.New(times, series.Float, "time"),
		series.New(durations, series.Float, "duration"),
		series.New(labels, series.String, "label"),
	}
	cols = append(cols, metadataColumns(epc, opts, len(times))...)
	return dataframe.New(cols...), nil
}

// AnalogSignalFrame returns a dataframe with one row per sample. The
// "time" column is derived from t_start and the sampling rate; each
// channel becomes a "ch_N" column in the signal's base units. Signals
// with more than two dimensions return ErrTooManyDims.
func AnalogSignalFrame(sig *neuro.AnalogSignal, opts FrameOptions) (dataframe.DataFrame, error) {
	if sig.Signal == nil {
		return dataframe.DataFrame{}, fmt.Errorf("signal %q has no data", sig.Name())
	}
	if sig.Signal.NDim() > 2 {
		return dataframe.DataFrame{}, ErrTooManyDims
	}
	base := sig.Signal
	if base.Units != "" {
		var err error
		base, err = base.BaseUnits()
		if err != nil {
			return dataframe.DataFrame{}, err
		}
	}

	channels := channelsOf(base)
	samples := len(channels[0])

	period, err := samplingPeriodSeconds(sig.SamplingRate)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	start := 0.0
	if sig.TStart != nil {
		s, err := secondsOf(sig.TStart)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		start = s[0]
	}
	times := make([]float64, samples)
	for i := range times {
		times[i] = start + float64(i)*period
	}

	cols := []series.Series{series.New(times, series.Float, "time")}
	for i, ch := range channels {
		cols = append(cols, series.New(ch, series.Float, fmt.Sprintf("ch_%d", i)))
	}
	cols = append(cols, metadataColumns(sig, opts, samples)...)
	return dataframe.New(cols...), nil
}

// metadataColumns turns scalar attributes into constant columns, one
// value repeated per row, in sorted name order.
func metadataColumns(obj neuro.DomainObject, opts FrameOptions, rows int) []series.Series {
	attrs := neuro.ExtractAttrs(obj, neuro.ExtractOptions{
		IncludeParents: opts.Parents,
		PreferChild:    true,
		SkipArray:      true,
		SkipNone:       true,
	})

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]series.Series, 0, len(names))
	for _, name := range names {
		cols = append(cols, constantColumn(name, attrs[name], rows))
	}
	return cols
}

func constantColumn(name string, value any, rows int) series.Series {
	switch v := value.(type) {
	case float64:
		return series.New(repeat(v, rows), series.Float, name)
	case int:
		return series.New(repeat(v, rows), series.Int, name)
	case bool:
		return series.New(repeat(v, rows), series.Bool, name)
	case string:
		return series.New(repeat(v, rows), series.String, name)
	default:
		return series.New(repeat(fmt.Sprint(v), rows), series.String, name)
	}
}

func repeat[T any](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func secondsOf(q *neuro.Quantity) ([]float64, error) {
	if q == nil {
		return nil, errors.New("missing quantity data")
	}
	if q.Units == "" {
		return append([]float64(nil), q.Values...), nil
	}
	rescaled, err := q.Rescale("s")
	if err != nil {
		return nil, err
	}
	return rescaled.Values, nil
}

// channelsOf splits a quantity into per-channel sample slices. A 1-D
// quantity is a single channel; a 2-D quantity is sample-major with
// one column per channel.
func channelsOf(q *neuro.Quantity) [][]float64 {
	if q.NDim() < 2 {
		return [][]float64{append([]float64(nil), q.Values...)}
	}
	samples, nch := q.Shape[0], q.Shape[1]
	channels := make([][]float64, nch)
	for c := range channels {
		channels[c] = make([]float64, samples)
		for s := 0; s < samples; s++ {
			channels[c][s] = q.Values[s*nch+c]
		}
	}
	return channels
}

func samplingPeriodSeconds(rate *neuro.Quantity) (float64, error) {
	if rate == nil {
		return 0, errors.New("signal has no sampling rate")
	}
	hz, err := rate.Rescale("Hz")
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
	return 1 / v, nil
}

func padLabels(labels []string, n int) []string {
	out := make([]string, n)
	copy(out, labels)
	return out
}
