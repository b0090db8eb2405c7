package recio

import (
	"fmt"

	"github.com/meredith/spikekit/internal/neuro"
)

// ObjectDoc is the serialized form of a domain object, shared between
// the YAML recording format and the container store's JSON payloads.
// Child collections imply their element types; Type disambiguates at
// the top level.
type ObjectDoc struct {
	Type        string         `yaml:"type,omitempty" json:"type,omitempty"`
	Name        string         `yaml:"name,omitempty" json:"name,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	FileOrigin  string         `yaml:"file_origin,omitempty" json:"file_origin,omitempty"`
	Annotations map[string]any `yaml:"annotations,omitempty" json:"annotations,omitempty"`

	Times        *QuantityDoc `yaml:"times,omitempty" json:"times,omitempty"`
	Durations    *QuantityDoc `yaml:"durations,omitempty" json:"durations,omitempty"`
	Labels       []string     `yaml:"labels,omitempty" json:"labels,omitempty"`
	TStart       *QuantityDoc `yaml:"t_start,omitempty" json:"t_start,omitempty"`
	TStop        *QuantityDoc `yaml:"t_stop,omitempty" json:"t_stop,omitempty"`
	SamplingRate *QuantityDoc `yaml:"sampling_rate,omitempty" json:"sampling_rate,omitempty"`
	Signal       *QuantityDoc `yaml:"signal,omitempty" json:"signal,omitempty"`
	Waveforms    *QuantityDoc `yaml:"waveforms,omitempty" json:"waveforms,omitempty"`

	Segments    []*ObjectDoc `yaml:"segments,omitempty" json:"segments,omitempty"`
	Groups      []*ObjectDoc `yaml:"groups,omitempty" json:"groups,omitempty"`
	Units       []*ObjectDoc `yaml:"units,omitempty" json:"units,omitempty"`
	SpikeTrains []*ObjectDoc `yaml:"spiketrains,omitempty" json:"spiketrains,omitempty"`
	Signals     []*ObjectDoc `yaml:"analogsignals,omitempty" json:"analogsignals,omitempty"`
	Events      []*ObjectDoc `yaml:"events,omitempty" json:"events,omitempty"`
	Epochs      []*ObjectDoc `yaml:"epochs,omitempty" json:"epochs,omitempty"`
}

// QuantityDoc is the serialized form of a neuro.Quantity. Shape may be
// omitted for one-dimensional values.
type QuantityDoc struct {
	Values []float64 `yaml:"values" json:"values"`
	Shape  []int     `yaml:"shape,omitempty" json:"shape,omitempty"`
	Units  string    `yaml:"units,omitempty" json:"units,omitempty"`
}

func quantityToDoc(q *neuro.Quantity) *QuantityDoc {
	if q == nil {
		return nil
	}
	return &QuantityDoc{Values: q.Values, Shape: q.Shape, Units: q.Units}
}

func docToQuantity(d *QuantityDoc) *neuro.Quantity {
	if d == nil {
		return nil
	}
	shape := d.Shape
	if shape == nil {
		shape = []int{len(d.Values)}
	}
	return &neuro.Quantity{Values: d.Values, Shape: shape, Units: d.Units}
}

// EncodeObject serializes a domain object and its subtree.
func EncodeObject(obj neuro.DomainObject) (*ObjectDoc, error) {
	switch v := obj.(type) {
	case *neuro.Block:
		return encodeBlock(v), nil
	case *neuro.Segment:
		return encodeSegment(v), nil
	case *neuro.Group:
		return encodeGroup(v), nil
	case *neuro.Unit:
		return encodeUnit(v), nil
	case *neuro.SpikeTrain:
		return encodeSpikeTrain(v), nil
	case *neuro.AnalogSignal:
		return encodeAnalogSignal(v), nil
	case *neuro.Event:
		return encodeEvent(v), nil
	case *neuro.Epoch:
		return encodeEpoch(v), nil
	default:
		return nil, fmt.Errorf("cannot serialize object of type %T", obj)
	}
}

// DecodeObject rebuilds a domain object from its serialized form. The
// doc's Type decides the concrete type.
func DecodeObject(doc *ObjectDoc) (neuro.DomainObject, error) {
	switch doc.Type {
	case "Block":
		return decodeBlock(doc), nil
	case "Segment":
		return decodeSegment(doc), nil
	case "Group":
		return decodeGroup(doc), nil
	case "Unit":
		return decodeUnit(doc), nil
	case "SpikeTrain":
		return decodeSpikeTrain(doc), nil
	case "AnalogSignal":
		return decodeAnalogSignal(doc), nil
	case "Event":
		return decodeEvent(doc), nil
	case "Epoch":
		return decodeEpoch(doc), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", doc.Type)
	}
}

func baseDoc(obj neuro.DomainObject, typeName string) *ObjectDoc {
	doc := &ObjectDoc{Type: typeName, FileOrigin: obj.FileOrigin()}
	if name, ok := obj.GetAttr("name"); ok {
		doc.Name, _ = name.(string)
	}
	if desc, ok := obj.GetAttr("description"); ok {
		doc.Description, _ = desc.(string)
	}
	if len(obj.Annotations()) > 0 {
		doc.Annotations = make(map[string]any, len(obj.Annotations()))
		for k, v := range obj.Annotations() {
			doc.Annotations[k] = v
		}
	}
	return doc
}

func encodeBlock(b *neuro.Block) *ObjectDoc {
	doc := baseDoc(b, "Block")
	for _, seg := range b.Segments() {
		doc.Segments = append(doc.Segments, encodeSegment(seg))
	}
	for _, g := range b.Groups() {
		doc.Groups = append(doc.Groups, encodeGroup(g))
	}
	return doc
}

func encodeSegment(s *neuro.Segment) *ObjectDoc {
	doc := baseDoc(s, "Segment")
	for _, st := range s.SpikeTrains() {
		doc.SpikeTrains = append(doc.SpikeTrains, encodeSpikeTrain(st))
	}
	for _, sig := range s.AnalogSignals() {
		doc.Signals = append(doc.Signals, encodeAnalogSignal(sig))
	}
	for _, ev := range s.Events() {
		doc.Events = append(doc.Events, encodeEvent(ev))
	}
	for _, ep := range s.Epochs() {
		doc.Epochs = append(doc.Epochs, encodeEpoch(ep))
	}
	return doc
}

func encodeGroup(g *neuro.Group) *ObjectDoc {
	doc := baseDoc(g, "Group")
	for _, u := range g.Units() {
		doc.Units = append(doc.Units, encodeUnit(u))
	}
	return doc
}

func encodeUnit(u *neuro.Unit) *ObjectDoc {
	doc := baseDoc(u, "Unit")
	for _, st := range u.SpikeTrains() {
		doc.SpikeTrains = append(doc.SpikeTrains, encodeSpikeTrain(st))
	}
	return doc
}

func encodeSpikeTrain(st *neuro.SpikeTrain) *ObjectDoc {
	doc := baseDoc(st, "SpikeTrain")
	doc.Times = quantityToDoc(st.Times)
	doc.TStart = quantityToDoc(st.TStart)
	doc.TStop = quantityToDoc(st.TStop)
	doc.SamplingRate = quantityToDoc(st.SamplingRate)
	doc.Waveforms = quantityToDoc(st.Waveforms)
	return doc
}

func encodeAnalogSignal(sig *neuro.AnalogSignal) *ObjectDoc {
	doc := baseDoc(sig, "AnalogSignal")
	doc.Signal = quantityToDoc(sig.Signal)
	doc.SamplingRate = quantityToDoc(sig.SamplingRate)
	doc.TStart = quantityToDoc(sig.TStart)
	return doc
}

func encodeEvent(ev *neuro.Event) *ObjectDoc {
	doc := baseDoc(ev, "Event")
	doc.Times = quantityToDoc(ev.Times)
	doc.Labels = ev.Labels
	return doc
}

func encodeEpoch(ep *neuro.Epoch) *ObjectDoc {
	doc := baseDoc(ep, "Epoch")
	doc.Times = quantityToDoc(ep.Times)
	doc.Durations = quantityToDoc(ep.Durations)
	doc.Labels = ep.Labels
	return doc
}

func applyBase(obj neuro.DomainObject, doc *ObjectDoc) {
	if doc.Description != "" {
		_ = obj.SetAttr("description", doc.Description, false)
	}
	if doc.FileOrigin != "" {
		_ = obj.SetAttr("file_origin", doc.FileOrigin, false)
	}
	for k, v := range doc.Annotations {
		_ = obj.SetAttr(k, v, true)
	}
}

func decodeBlock(doc *ObjectDoc) *neuro.Block {
	b := neuro.NewBlock(doc.Name)
	applyBase(b, doc)
	for _, segDoc := range doc.Segments {
		b.AddSegment(decodeSegment(segDoc))
	}
	for _, groupDoc := range doc.Groups {
		b.AddGroup(decodeGroup(groupDoc))
	}
	return b
}

func decodeSegment(doc *ObjectDoc) *neuro.Segment {
	s := neuro.NewSegment(doc.Name)
	applyBase(s, doc)
	for _, stDoc := range doc.SpikeTrains {
		s.AddSpikeTrain(decodeSpikeTrain(stDoc))
	}
	for _, sigDoc := range doc.Signals {
		s.AddAnalogSignal(decodeAnalogSignal(sigDoc))
	}
	for _, evDoc := range doc.Events {
		s.AddEvent(decodeEvent(evDoc))
	}
	for _, epDoc := range doc.Epochs {
		s.AddEpoch(decodeEpoch(epDoc))
	}
	return s
}

func decodeGroup(doc *ObjectDoc) *neuro.Group {
	g := neuro.NewGroup(doc.Name)
	applyBase(g, doc)
	for _, unitDoc := range doc.Units {
		g.AddUnit(decodeUnit(unitDoc))
	}
	return g
}

func decodeUnit(doc *ObjectDoc) *neuro.Unit {
	u := neuro.NewUnit(doc.Name)
	applyBase(u, doc)
	for _, stDoc := range doc.SpikeTrains {
		u.AddSpikeTrain(decodeSpikeTrain(stDoc))
	}
	return u
}

func decodeSpikeTrain(doc *ObjectDoc) *neuro.SpikeTrain {
	st := neuro.NewSpikeTrain(doc.Name, docToQuantity(doc.Times), 0, 0)
	st.TStart = docToQuantity(doc.TStart)
	st.TStop = docToQuantity(doc.TStop)
	st.SamplingRate = docToQuantity(doc.SamplingRate)
	st.Waveforms = docToQuantity(doc.Waveforms)
	applyBase(st, doc)
	return st
}

func decodeAnalogSignal(doc *ObjectDoc) *neuro.AnalogSignal {
	sig := neuro.NewAnalogSignal(doc.Name, docToQuantity(doc.Signal), docToQuantity(doc.SamplingRate), 0)
	sig.TStart = docToQuantity(doc.TStart)
	applyBase(sig, doc)
	return sig
}

func decodeEvent(doc *ObjectDoc) *neuro.Event {
	ev := neuro.NewEvent(doc.Name, docToQuantity(doc.Times), doc.Labels)
	applyBase(ev, doc)
	return ev
}

func decodeEpoch(doc *ObjectDoc) *neuro.Epoch {
	ep := neuro.NewEpoch(doc.Name, docToQuantity(doc.Times), docToQuantity(doc.Durations), doc.Labels)
	applyBase(ep, doc)
	return ep
}
