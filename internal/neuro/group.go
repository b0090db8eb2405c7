package neuro

import "fmt"

// Group collects Units recorded from one electrode or channel group.
type Group struct {
	baseObject
	ChannelIndexes []int

	units []*Unit
	block *Block
}

var groupRecommended = append([]AttrSpec{
	{Name: "channel_indexes", Array: true},
}, commonRecommended...)

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	return &Group{baseObject: newBaseObject(name)}
}

func (g *Group) TypeName() string             { return "Group" }
func (g *Group) NecessaryAttrs() []AttrSpec   { return nil }
func (g *Group) RecommendedAttrs() []AttrSpec { return groupRecommended }
func (g *Group) QuantityAttr() string         { return "" }

func (g *Group) Parents() []DomainObject {
	if g.block == nil {
		return nil
	}
	return []DomainObject{g.block}
}

func (g *Group) Units() []*Unit { return g.units }

// AddUnit appends a unit and links it back to the group.
func (g *Group) AddUnit(u *Unit) {
	u.group = g
	g.units = append(g.units, u)
}

func (g *Group) GetAttr(name string) (any, bool) {
	if name == "channel_indexes" {
		if g.ChannelIndexes == nil {
			return nil, false
		}
		return g.ChannelIndexes, true
	}
	if v, ok := g.getCommon(name); ok {
		return v, true
	}
	return g.getAnnotation(name)
}

func (g *Group) SetAttr(name string, value any, create bool) error {
	if name == "channel_indexes" {
		idx, ok := value.([]int)
		if !ok {
			return fmt.Errorf("attribute %q requires a []int, got %T", name, value)
		}
		g.ChannelIndexes = idx
		return nil
	}
	if handled, err := g.setCommon(name, value); handled {
		return err
	}
	return g.setAnnotation(g.TypeName(), name, value, create)
}

// RecursiveChildren returns the group's units and their spike trains
// depth-first.
func (g *Group) RecursiveChildren() []DomainObject {
	var out []DomainObject
	for _, u := range g.units {
		out = append(out, u)
		out = append(out, u.RecursiveChildren()...)
	}
	return out
}

// FlatChildrenOfType returns the group's direct child collections.
func (g *Group) FlatChildrenOfType(typeName string) ([]DomainObject, bool) {
	if typeName == "Unit" {
		return asDomainObjects(g.units), true
	}
	return nil, false
}

// ChildrenByTypeName returns every descendant of the given type.
func (g *Group) ChildrenByTypeName(typeName string) ([]DomainObject, bool) {
	return childrenByTypeName(g, typeName), true
}

// Unit is one identified spike source, holding the SpikeTrains
// attributed to it across segments.
type Unit struct {
	baseObject

	spiketrains []*SpikeTrain
	group       *Group
}

// NewUnit returns an empty unit.
func NewUnit(name string) *Unit {
	return &Unit{baseObject: newBaseObject(name)}
}

func (u *Unit) TypeName() string             { return "Unit" }
func (u *Unit) NecessaryAttrs() []AttrSpec   { return nil }
func (u *Unit) RecommendedAttrs() []AttrSpec { return commonRecommended }
func (u *Unit) QuantityAttr() string         { return "" }

func (u *Unit) Parents() []DomainObject {
	if u.group == nil {
		return nil
	}
	return []DomainObject{u.group}
}

func (u *Unit) SpikeTrains() []*SpikeTrain { return u.spiketrains }

// AddSpikeTrain attributes a spike train to the unit. The train keeps
// its segment link; the unit link is an additional path to it.
func (u *Unit) AddSpikeTrain(st *SpikeTrain) {
	st.unit = u
	u.spiketrains = append(u.spiketrains, st)
}

func (u *Unit) GetAttr(name string) (any, bool) {
	if v, ok := u.getCommon(name); ok {
		return v, true
	}
	return u.getAnnotation(name)
}

func (u *Unit) SetAttr(name string, value any, create bool) error {
	if handled, err := u.setCommon(name, value); handled {
		return err
	}
	return u.setAnnotation(u.TypeName(), name, value, create)
}

// RecursiveChildren returns the unit's spike trains.
func (u *Unit) RecursiveChildren() []DomainObject {
	return asDomainObjects(u.spiketrains)
}

// FlatChildrenOfType returns the unit's direct child collections.
func (u *Unit) FlatChildrenOfType(typeName string) ([]DomainObject, bool) {
	if typeName == "SpikeTrain" {
		return asDomainObjects(u.spiketrains), true
	}
	return nil, false
}

// ChildrenByTypeName returns every descendant of the given type.
func (u *Unit) ChildrenByTypeName(typeName string) ([]DomainObject, bool) {
	return childrenByTypeName(u, typeName), true
}
