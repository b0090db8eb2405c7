package neuro

import (
	"fmt"
	"time"
)

// Block is the top-level container: one recording session, holding the
// session's Segments and Groups.
type Block struct {
	baseObject
	RecDatetime time.Time
	Index       int

	segments []*Segment
	groups   []*Group
}

var blockRecommended = append([]AttrSpec{
	{Name: "rec_datetime"},
	{Name: "index"},
}, commonRecommended...)

// NewBlock returns an empty block.
func NewBlock(name string) *Block {
	return &Block{baseObject: newBaseObject(name)}
}

func (b *Block) TypeName() string             { return "Block" }
func (b *Block) NecessaryAttrs() []AttrSpec   { return nil }
func (b *Block) RecommendedAttrs() []AttrSpec { return blockRecommended }
func (b *Block) QuantityAttr() string         { return "" }
func (b *Block) Parents() []DomainObject      { return nil }

// Segments returns the block's segments in insertion order.
func (b *Block) Segments() []*Segment { return b.segments }

// Groups returns the block's groups in insertion order.
func (b *Block) Groups() []*Group { return b.groups }

// AddSegment appends a segment and links it back to the block.
func (b *Block) AddSegment(s *Segment) {
	s.block = b
	b.segments = append(b.segments, s)
}

// AddGroup appends a group and links it back to the block.
func (b *Block) AddGroup(g *Group) {
	g.block = b
	b.groups = append(b.groups, g)
}

func (b *Block) GetAttr(name string) (any, bool) {
	switch name {
	case "rec_datetime":
		if b.RecDatetime.IsZero() {
			return nil, false
		}
		return b.RecDatetime, true
	case "index":
		return b.Index, true
	}
	if v, ok := b.getCommon(name); ok {
		return v, true
	}
	return b.getAnnotation(name)
}

func (b *Block) SetAttr(name string, value any, create bool) error {
	switch name {
	case "rec_datetime":
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("attribute %q requires a time.Time, got %T", name, value)
		}
		b.RecDatetime = t
		return nil
	case "index":
		i, ok := value.(int)
		if !ok {
			return fmt.Errorf("attribute %q requires an int, got %T", name, value)
		}
		b.Index = i
		return nil
	}
	if handled, err := b.setCommon(name, value); handled {
		return err
	}
	return b.setAnnotation(b.TypeName(), name, value, create)
}

// RecursiveChildren returns every descendant depth-first: segments with
// their data objects first, then groups with their units and spike
// trains. A spike train attributed to a unit appears once under its
// segment and again under the unit.
func (b *Block) RecursiveChildren() []DomainObject {
	var out []DomainObject
	for _, seg := range b.segments {
		out = append(out, seg)
		out = append(out, seg.RecursiveChildren()...)
	}
	for _, g := range b.groups {
		out = append(out, g)
		out = append(out, g.RecursiveChildren()...)
	}
	return out
}

// FlatChildrenOfType returns the block's direct child collections.
func (b *Block) FlatChildrenOfType(typeName string) ([]DomainObject, bool) {
	switch typeName {
	case "Segment":
		return asDomainObjects(b.segments), true
	case "Group":
		return asDomainObjects(b.groups), true
	}
	return nil, false
}

// ChildrenByTypeName returns every descendant of the given type.
func (b *Block) ChildrenByTypeName(typeName string) ([]DomainObject, bool) {
	return childrenByTypeName(b, typeName), true
}
