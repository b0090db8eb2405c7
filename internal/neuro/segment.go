package neuro

import (
	"fmt"
	"time"
)

// Segment groups the data objects recorded over one time window: spike
// trains, analog signals, events and epochs.
type Segment struct {
	baseObject
	RecDatetime time.Time
	Index       int

	spiketrains   []*SpikeTrain
	analogsignals []*AnalogSignal
	events        []*Event
	epochs        []*Epoch

	block *Block
}

// NewSegment returns an empty segment.
func NewSegment(name string) *Segment {
	return &Segment{baseObject: newBaseObject(name)}
}

func (s *Segment) TypeName() string             { return "Segment" }
func (s *Segment) NecessaryAttrs() []AttrSpec   { return nil }
func (s *Segment) RecommendedAttrs() []AttrSpec { return blockRecommended }
func (s *Segment) QuantityAttr() string         { return "" }

func (s *Segment) Parents() []DomainObject {
	if s.block == nil {
		return nil
	}
	return []DomainObject{s.block}
}

// Block returns the segment's parent block, if any.
func (s *Segment) Block() *Block { return s.block }

func (s *Segment) SpikeTrains() []*SpikeTrain     { return s.spiketrains }
func (s *Segment) AnalogSignals() []*AnalogSignal { return s.analogsignals }
func (s *Segment) Events() []*Event               { return s.events }
func (s *Segment) Epochs() []*Epoch               { return s.epochs }

// AddSpikeTrain appends a spike train and links it back to the segment.
func (s *Segment) AddSpikeTrain(st *SpikeTrain) {
	st.segment = s
	s.spiketrains = append(s.spiketrains, st)
}

// AddAnalogSignal appends a signal and links it back to the segment.
func (s *Segment) AddAnalogSignal(sig *AnalogSignal) {
	sig.segment = s
	s.analogsignals = append(s.analogsignals, sig)
}

// AddEvent appends an event and links it back to the segment.
func (s *Segment) AddEvent(ev *Event) {
	ev.segment = s
	s.events = append(s.events, ev)
}

// AddEpoch appends an epoch and links it back to the segment.
func (s *Segment) AddEpoch(ep *Epoch) {
	ep.segment = s
	s.epochs = append(s.epochs, ep)
}

func (s *Segment) GetAttr(name string) (any, bool) {
	switch name {
	case "rec_datetime":
		if s.RecDatetime.IsZero() {
			return nil, false
		}
		return s.RecDatetime, true
	case "index":
		return s.Index, true
	}
	if v, ok := s.getCommon(name); ok {
		return v, true
	}
	return s.getAnnotation(name)
}

func (s *Segment) SetAttr(name string, value any, create bool) error {
	switch name {
	case "rec_datetime":
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("attribute %q requires a time.Time, got %T", name, value)
		}
		s.RecDatetime = t
		return nil
	case "index":
		i, ok := value.(int)
		if !ok {
			return fmt.Errorf("attribute %q requires an int, got %T", name, value)
		}
		s.Index = i
		return nil
	}
	if handled, err := s.setCommon(name, value); handled {
		return err
	}
	return s.setAnnotation(s.TypeName(), name, value, create)
}

// RecursiveChildren returns the segment's data objects in declaration
// order: spike trains, analog signals, events, epochs.
func (s *Segment) RecursiveChildren() []DomainObject {
	var out []DomainObject
	for _, st := range s.spiketrains {
		out = append(out, st)
	}
	for _, sig := range s.analogsignals {
		out = append(out, sig)
	}
	for _, ev := range s.events {
		out = append(out, ev)
	}
	for _, ep := range s.epochs {
		out = append(out, ep)
	}
	return out
}

// FlatChildrenOfType returns the segment's direct child collections.
func (s *Segment) FlatChildrenOfType(typeName string) ([]DomainObject, bool) {
	switch typeName {
	case "SpikeTrain":
		return asDomainObjects(s.spiketrains), true
	case "AnalogSignal":
		return asDomainObjects(s.analogsignals), true
	case "Event":
		return asDomainObjects(s.events), true
	case "Epoch":
		return asDomainObjects(s.epochs), true
	}
	return nil, false
}

// ChildrenByTypeName returns every descendant of the given type.
func (s *Segment) ChildrenByTypeName(typeName string) ([]DomainObject, bool) {
	return childrenByTypeName(s, typeName), true
}
