package neuro

import "fmt"

// AnalogSignal is a regularly sampled, continuous signal. Signal is the
// primary payload: one axis for a single channel, two axes
// (sample, channel) for a multi-channel recording.
type AnalogSignal struct {
	baseObject
	Signal       *Quantity
	SamplingRate *Quantity
	TStart       *Quantity
	ChannelIndex []int

	segment *Segment
}

var analogSignalNecessary = []AttrSpec{
	{Name: "signal", Array: true},
	{Name: "sampling_rate"},
	{Name: "t_start"},
}

var analogSignalRecommended = append([]AttrSpec{
	{Name: "channel_index", Array: true},
}, commonRecommended...)

// NewAnalogSignal returns a signal starting at tStart, sampled at rate.
func NewAnalogSignal(name string, signal *Quantity, rate *Quantity, tStart float64) *AnalogSignal {
	timeUnits := "s"
	return &AnalogSignal{
		baseObject:   newBaseObject(name),
		Signal:       signal,
		SamplingRate: rate,
		TStart:       NewScalar(tStart, timeUnits),
	}
}

func (a *AnalogSignal) TypeName() string             { return "AnalogSignal" }
func (a *AnalogSignal) NecessaryAttrs() []AttrSpec   { return analogSignalNecessary }
func (a *AnalogSignal) RecommendedAttrs() []AttrSpec { return analogSignalRecommended }
func (a *AnalogSignal) QuantityAttr() string         { return "signal" }

func (a *AnalogSignal) Parents() []DomainObject {
	if a.segment == nil {
		return nil
	}
	return []DomainObject{a.segment}
}

// Segment returns the signal's parent segment, if any.
func (a *AnalogSignal) Segment() *Segment { return a.segment }

func (a *AnalogSignal) GetAttr(name string) (any, bool) {
	switch name {
	case "signal":
		return quantityValue(a.Signal)
	case "sampling_rate":
		return quantityValue(a.SamplingRate)
	case "t_start":
		return quantityValue(a.TStart)
	case "channel_index":
		if a.ChannelIndex == nil {
			return nil, false
		}
		return a.ChannelIndex, true
	}
	if v, ok := a.getCommon(name); ok {
		return v, true
	}
	return a.getAnnotation(name)
}

func (a *AnalogSignal) SetAttr(name string, value any, create bool) error {
	switch name {
	case "signal", "sampling_rate", "t_start":
		q, err := asQuantity(name, value)
		if err != nil {
			return err
		}
		switch name {
		case "signal":
			a.Signal = q
		case "sampling_rate":
			a.SamplingRate = q
		case "t_start":
			a.TStart = q
		}
		return nil
	case "channel_index":
		idx, ok := value.([]int)
		if !ok {
			return fmt.Errorf("attribute %q requires a []int, got %T", name, value)
		}
		a.ChannelIndex = idx
		return nil
	}
	if handled, err := a.setCommon(name, value); handled {
		return err
	}
	return a.setAnnotation(a.TypeName(), name, value, create)
}
