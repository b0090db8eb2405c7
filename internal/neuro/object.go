package neuro

import (
	"fmt"

	"github.com/google/uuid"
)

// AttrSpec declares one attribute of a domain object type.
type AttrSpec struct {
	// Name is the attribute name as used by GetAttr and SetAttr.
	Name string
	// Array marks attributes holding array values rather than scalars.
	Array bool
}

// commonRecommended are the attributes every object type declares.
var commonRecommended = []AttrSpec{
	{Name: "name"},
	{Name: "description"},
	{Name: "file_origin"},
}

// DomainObject is the marker interface for objects of the recording
// model. Asserting a value to this interface is what distinguishes a
// domain object from a plain container during traversal.
type DomainObject interface {
	// TypeName returns the declared type name, e.g. "SpikeTrain".
	TypeName() string
	// Annotations returns the object's free-form annotation map. The
	// map is live; callers that need a private copy must copy it.
	Annotations() map[string]any
	// GetAttr resolves a declared attribute or annotation by name.
	GetAttr(name string) (any, bool)
	// SetAttr sets a declared attribute or annotation. When create is
	// false and the object has neither the attribute nor an existing
	// annotation under that name, it fails with a *MissingAttrError.
	SetAttr(name string, value any, create bool) error
	// NecessaryAttrs and RecommendedAttrs declare the object's
	// attribute lists.
	NecessaryAttrs() []AttrSpec
	RecommendedAttrs() []AttrSpec
	// QuantityAttr names the attribute holding the primary numeric
	// payload, or "" for container types. That attribute is metadata
	// for storage purposes, never for extraction.
	QuantityAttr() string
	// Parents returns the objects that logically contain this one.
	Parents() []DomainObject
	// ID returns the object's unique identity.
	ID() uuid.UUID
	// FileOrigin returns the path of the file the object came from.
	FileOrigin() string
	// StorePath returns the object's path fragment inside a container
	// store, set when the object is saved.
	StorePath() string
	// SetStorePath records the container-store path fragment.
	SetStorePath(path string)
}

// RecursiveChildrenLister is implemented by containers that can
// enumerate every domain object transitively contained in them.
type RecursiveChildrenLister interface {
	// RecursiveChildren returns all descendants depth-first. The list
	// may contain duplicates when an object is reachable over more
	// than one path.
	RecursiveChildren() []DomainObject
}

// FlatChildLister is implemented by containers holding direct child
// collections per type.
type FlatChildLister interface {
	// FlatChildrenOfType returns the container's direct children of
	// the given declared type name. ok is false when the container has
	// no child collection for that type.
	FlatChildrenOfType(typeName string) ([]DomainObject, bool)
}

// ChildLister is implemented by containers that can search their
// descendants by declared type name.
type ChildLister interface {
	// ChildrenByTypeName returns every descendant whose declared type
	// name equals typeName.
	ChildrenByTypeName(typeName string) ([]DomainObject, bool)
}

// MissingAttrError reports a SetAttr call on an object lacking the
// attribute when creation was not permitted.
type MissingAttrError struct {
	TypeName string
	Attr     string
}

func (e *MissingAttrError) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.TypeName, e.Attr)
}

// UnsupportedContainerError reports a value that is neither a
// recognizable nested structure nor a domain object exposing a child
// access capability.
type UnsupportedContainerError struct {
	Value any
}

func (e *UnsupportedContainerError) Error() string {
	return fmt.Sprintf("cannot handle object of type %T", e.Value)
}

// baseObject carries the identity and metadata shared by every object
// type.
type baseObject struct {
	id          uuid.UUID
	name        string
	description string
	fileOrigin  string
	storePath   string
	annotations map[string]any
}

func newBaseObject(name string) baseObject {
	return baseObject{
		id:          uuid.New(),
		name:        name,
		annotations: make(map[string]any),
	}
}

func (b *baseObject) ID() uuid.UUID               { return b.id }
func (b *baseObject) Name() string                { return b.name }
func (b *baseObject) SetName(name string)         { b.name = name }
func (b *baseObject) Description() string         { return b.description }
func (b *baseObject) SetDescription(d string)     { b.description = d }
func (b *baseObject) FileOrigin() string          { return b.fileOrigin }
func (b *baseObject) SetFileOrigin(origin string) { b.fileOrigin = origin }
func (b *baseObject) StorePath() string           { return b.storePath }
func (b *baseObject) SetStorePath(path string)    { b.storePath = path }

func (b *baseObject) Annotations() map[string]any { return b.annotations }

// Annotate sets one annotation.
func (b *baseObject) Annotate(key string, value any) {
	b.annotations[key] = value
}

// getCommon resolves the attributes shared by all object types.
func (b *baseObject) getCommon(name string) (any, bool) {
	switch name {
	case "name":
		return b.name, true
	case "description":
		return b.description, true
	case "file_origin":
		return b.fileOrigin, true
	}
	return nil, false
}

// setCommon assigns the attributes shared by all object types. The
// first return reports whether the name was recognised.
func (b *baseObject) setCommon(name string, value any) (bool, error) {
	assign := func(dst *string) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("attribute %q requires a string, got %T", name, value)
		}
		*dst = s
		return nil
	}
	switch name {
	case "name":
		return true, assign(&b.name)
	case "description":
		return true, assign(&b.description)
	case "file_origin":
		return true, assign(&b.fileOrigin)
	}
	return false, nil
}

// setAnnotation handles the SetAttr fallback for undeclared names.
func (b *baseObject) setAnnotation(typeName, name string, value any, create bool) error {
	if _, ok := b.annotations[name]; !ok && !create {
		return &MissingAttrError{TypeName: typeName, Attr: name}
	}
	b.annotations[name] = value
	return nil
}

// getAnnotation resolves an annotation by name.
func (b *baseObject) getAnnotation(name string) (any, bool) {
	v, ok := b.annotations[name]
	return v, ok
}

// quantityValue unwraps a possibly-nil Quantity for attribute lookup so
// a missing value resolves to an untyped nil.
func quantityValue(q *Quantity) (any, bool) {
	if q == nil {
		return nil, false
	}
	return q, true
}

// asQuantity type-checks a SetAttr value destined for a Quantity field.
func asQuantity(name string, value any) (*Quantity, error) {
	if value == nil {
		return nil, nil
	}
	q, ok := value.(*Quantity)
	if !ok {
		return nil, fmt.Errorf("attribute %q requires a *Quantity, got %T", name, value)
	}
	return q, nil
}
