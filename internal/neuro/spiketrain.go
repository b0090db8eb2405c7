package neuro

// SpikeTrain holds the spike times of one source over one time window.
// Times is the primary payload; TStart and TStop bound the window.
type SpikeTrain struct {
	baseObject
	Times        *Quantity
	TStart       *Quantity
	TStop        *Quantity
	SamplingRate *Quantity
	LeftSweep    *Quantity
	Waveforms    *Quantity

	segment *Segment
	unit    *Unit
}

var spikeTrainNecessary = []AttrSpec{
	{Name: "times", Array: true},
	{Name: "t_start"},
	{Name: "t_stop"},
}

var spikeTrainRecommended = append([]AttrSpec{
	{Name: "waveforms", Array: true},
	{Name: "left_sweep"},
	{Name: "sampling_rate"},
}, commonRecommended...)

// NewSpikeTrain returns a spike train over [tStart, tStop].
func NewSpikeTrain(name string, times *Quantity, tStart, tStop float64) *SpikeTrain {
	units := ""
	if times != nil {
		units = times.Units
	}
	return &SpikeTrain{
		baseObject: newBaseObject(name),
		Times:      times,
		TStart:     NewScalar(tStart, units),
		TStop:      NewScalar(tStop, units),
	}
}

func (s *SpikeTrain) TypeName() string             { return "SpikeTrain" }
func (s *SpikeTrain) NecessaryAttrs() []AttrSpec   { return spikeTrainNecessary }
func (s *SpikeTrain) RecommendedAttrs() []AttrSpec { return spikeTrainRecommended }
func (s *SpikeTrain) QuantityAttr() string         { return "times" }

func (s *SpikeTrain) Parents() []DomainObject {
	var out []DomainObject
	if s.segment != nil {
		out = append(out, s.segment)
	}
	if s.unit != nil {
		out = append(out, s.unit)
	}
	return out
}

// Segment returns the spike train's parent segment, if any.
func (s *SpikeTrain) Segment() *Segment { return s.segment }

// Unit returns the unit the spike train is attributed to, if any.
func (s *SpikeTrain) Unit() *Unit { return s.unit }

func (s *SpikeTrain) GetAttr(name string) (any, bool) {
	switch name {
	case "times":
		return quantityValue(s.Times)
	case "t_start":
		return quantityValue(s.TStart)
	case "t_stop":
		return quantityValue(s.TStop)
	case "sampling_rate":
		return quantityValue(s.SamplingRate)
	case "left_sweep":
		return quantityValue(s.LeftSweep)
	case "waveforms":
		return quantityValue(s.Waveforms)
	}
	if v, ok := s.getCommon(name); ok {
		return v, true
	}
	return s.getAnnotation(name)
}

func (s *SpikeTrain) SetAttr(name string, value any, create bool) error {
	switch name {
	case "times", "t_start", "t_stop", "sampling_rate", "left_sweep", "waveforms":
		q, err := asQuantity(name, value)
		if err != nil {
			return err
		}
		switch name {
		case "times":
			s.Times = q
		case "t_start":
			s.TStart = q
		case "t_stop":
			s.TStop = q
		case "sampling_rate":
			s.SamplingRate = q
		case "left_sweep":
			s.LeftSweep = q
		case "waveforms":
			s.Waveforms = q
		}
		return nil
	}
	if handled, err := s.setCommon(name, value); handled {
		return err
	}
	return s.setAnnotation(s.TypeName(), name, value, create)
}
