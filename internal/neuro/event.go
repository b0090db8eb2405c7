package neuro

import "fmt"

// Event marks labelled points in time within a segment.
type Event struct {
	baseObject
	Times  *Quantity
	Labels []string

	segment *Segment
}

var eventNecessary = []AttrSpec{
	{Name: "times", Array: true},
	{Name: "labels", Array: true},
}

// NewEvent returns an event series.
func NewEvent(name string, times *Quantity, labels []string) *Event {
	return &Event{baseObject: newBaseObject(name), Times: times, Labels: labels}
}

func (e *Event) TypeName() string             { return "Event" }
func (e *Event) NecessaryAttrs() []AttrSpec   { return eventNecessary }
func (e *Event) RecommendedAttrs() []AttrSpec { return commonRecommended }
func (e *Event) QuantityAttr() string         { return "times" }

func (e *Event) Parents() []DomainObject {
	if e.segment == nil {
		return nil
	}
	return []DomainObject{e.segment}
}

// Segment returns the event's parent segment, if any.
func (e *Event) Segment() *Segment { return e.segment }

func (e *Event) GetAttr(name string) (any, bool) {
	switch name {
	case "times":
		return quantityValue(e.Times)
	case "labels":
		if e.Labels == nil {
			return nil, false
		}
		return e.Labels, true
	}
	if v, ok := e.getCommon(name); ok {
		return v, true
	}
	return e.getAnnotation(name)
}

func (e *Event) SetAttr(name string, value any, create bool) error {
	switch name {
	case "times":
		q, err := asQuantity(name, value)
		if err != nil {
			return err
		}
		e.Times = q
		return nil
	case "labels":
		labels, ok := value.([]string)
		if !ok {
			return fmt.Errorf("attribute %q requires a []string, got %T", name, value)
		}
		e.Labels = labels
		return nil
	}
	if handled, err := e.setCommon(name, value); handled {
		return err
	}
	return e.setAnnotation(e.TypeName(), name, value, create)
}

// Epoch marks labelled time spans within a segment: each entry has a
// start time and a duration.
type Epoch struct {
	baseObject
	Times     *Quantity
	Durations *Quantity
	Labels    []string

	segment *Segment
}

var epochNecessary = []AttrSpec{
	{Name: "times", Array: true},
	{Name: "durations", Array: true},
	{Name: "labels", Array: true},
}

// NewEpoch returns an epoch series.
func NewEpoch(name string, times, durations *Quantity, labels []string) *Epoch {
	return &Epoch{
		baseObject: newBaseObject(name),
		Times:      times,
		Durations:  durations,
		Labels:     labels,
	}
}

func (e *Epoch) TypeName() string             { return "Epoch" }
func (e *Epoch) NecessaryAttrs() []AttrSpec   { return epochNecessary }
func (e *Epoch) RecommendedAttrs() []AttrSpec { return commonRecommended }
func (e *Epoch) QuantityAttr() string         { return "times" }

func (e *Epoch) Parents() []DomainObject {
	if e.segment == nil {
		return nil
	}
	return []DomainObject{e.segment}
}

// Segment returns the epoch's parent segment, if any.
func (e *Epoch) Segment() *Segment { return e.segment }

func (e *Epoch) GetAttr(name string) (any, bool) {
	switch name {
	case "times":
		return quantityValue(e.Times)
	case "durations":
		return quantityValue(e.Durations)
	case "labels":
		if e.Labels == nil {
			return nil, false
		}
		return e.Labels, true
	}
	if v, ok := e.getCommon(name); ok {
		return v, true
	}
	return e.getAnnotation(name)
}

func (e *Epoch) SetAttr(name string, value any, create bool) error {
	switch name {
	case "times", "durations":
		q, err := asQuantity(name, value)
		if err != nil {
			return err
		}
		if name == "times" {
			e.Times = q
		} else {
			e.Durations = q
		}
		return nil
	case "labels":
		labels, ok := value.([]string)
		if !ok {
			return fmt.Errorf("attribute %q requires a []string, got %T", name, value)
		}
		e.Labels = labels
		return nil
	}
	if handled, err := e.setCommon(name, value); handled {
		return err
	}
	return e.setAnnotation(e.TypeName(), name, value, create)
}
