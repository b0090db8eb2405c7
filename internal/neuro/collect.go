package neuro

import (
	"github.com/meredith/spikekit/internal/flatten"
)

// Collect gathers the unique domain objects inside container, which may
// be a domain object, a slice, a map, or any nesting of those. With an
// empty typeName every domain object is returned; otherwise only
// objects whose declared type name equals typeName exactly
// ("SpikeTrain", not "spiketrain").
//
// Dispatch checks the container's capabilities in a fixed order: plain
// nested structures are decomposed one level at a time and collected
// recursively; a domain container is asked for its recursive children,
// its per-type child collection or a by-type-name search, in that
// order. A value that is neither a nested structure nor a domain object
// with a usable capability fails with *UnsupportedContainerError.
//
// Results are deduplicated by identity in first-seen order: an object
// reachable over several paths appears once.
func Collect(container any, typeName string) ([]DomainObject, error) {
	obj, ok := container.(DomainObject)
	if !ok {
		parts, ok := flatten.Decompose(container)
		if !ok {
			return nil, &UnsupportedContainerError{Value: container}
		}
		var out []DomainObject
		for _, part := range parts {
			found, err := Collect(part, typeName)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		}
		return uniqueObjects(out), nil
	}

	if typeName == "" {
		rc, ok := obj.(RecursiveChildrenLister)
		if !ok {
			// A leaf domain object with no children concept.
			return []DomainObject{obj}, nil
		}
		return uniqueObjects(append([]DomainObject{obj}, rc.RecursiveChildren()...)), nil
	}

	if obj.TypeName() == typeName {
		return []DomainObject{obj}, nil
	}

	if fl, ok := obj.(FlatChildLister); ok {
		if children, ok := fl.FlatChildrenOfType(typeName); ok {
			return uniqueObjects(children), nil
		}
	}
	if cl, ok := obj.(ChildLister); ok {
		if children, ok := cl.ChildrenByTypeName(typeName); ok {
			return uniqueObjects(children), nil
		}
	}
	return nil, &UnsupportedContainerError{Value: container}
}

// SpikeTrainsIn collects every unique SpikeTrain in container.
func SpikeTrainsIn(container any) ([]*SpikeTrain, error) {
	return collectTyped[*SpikeTrain](container, "SpikeTrain")
}

// EventsIn collects every unique Event in container.
func EventsIn(container any) ([]*Event, error) {
	return collectTyped[*Event](container, "Event")
}

// EpochsIn collects every unique Epoch in container.
func EpochsIn(container any) ([]*Epoch, error) {
	return collectTyped[*Epoch](container, "Epoch")
}

// AnalogSignalsIn collects every unique AnalogSignal in container.
func AnalogSignalsIn(container any) ([]*AnalogSignal, error) {
	return collectTyped[*AnalogSignal](container, "AnalogSignal")
}

func collectTyped[T DomainObject](container any, typeName string) ([]T, error) {
	objs, err := Collect(container, typeName)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(objs))
	for _, obj := range objs {
		if typed, ok := obj.(T); ok {
			out = append(out, typed)
		}
	}
	return out, nil
}

// uniqueObjects deduplicates by identity, preserving first-seen order.
func uniqueObjects(objs []DomainObject) []DomainObject {
	seen := make(map[DomainObject]struct{}, len(objs))
	out := make([]DomainObject, 0, len(objs))
	for _, obj := range objs {
		if _, ok := seen[obj]; ok {
			continue
		}
		seen[obj] = struct{}{}
		out = append(out, obj)
	}
	return out
}

// childrenByTypeName filters a container's recursive children by
// declared type name. Every container backs ChildrenByTypeName with
// this helper, so the collector's by-type-name step only matters for
// types the container's flat child collections do not expose; when a
// flat lookup hit first, this path is never consulted.
func childrenByTypeName(c RecursiveChildrenLister, typeName string) []DomainObject {
	var out []DomainObject
	for _, child := range c.RecursiveChildren() {
		if child.TypeName() == typeName {
			out = append(out, child)
		}
	}
	return out
}

// asDomainObjects widens a typed child slice.
func asDomainObjects[T DomainObject](objs []T) []DomainObject {
	out := make([]DomainObject, len(objs))
	for i, obj := range objs {
		out[i] = obj
	}
	return out
}
