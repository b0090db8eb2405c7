// Package flatten turns arbitrarily nested values into flat sequences
// of leaves.
//
// A value is classified once, at the point it enters the package, as a
// leaf, a sequence, a mapping, or an array-like value. Strings are
// always leaves. Array-like values (anything implementing Array) are
// leaves by default and are only descended into on request.
//
// The input must be acyclic. Cycles are not detected; flattening a
// self-referential structure recurses until the stack is exhausted.
package flatten

import (
	"iter"
	"reflect"
)

// Array is implemented by array-like values that carry a dimensionality,
// such as measurement arrays. They are treated as opaque leaves unless
// the caller explicitly asks for them to be flattened.
type Array interface {
	// Dims returns the length of each axis. A scalar array has no axes.
	Dims() []int
	// Len returns the length of the first axis, or 0 for a scalar array.
	Len() int
	// Elem returns the i-th element along the first axis. For a
	// multi-dimensional array this is a sub-array.
	Elem(i int) any
}

// Kind classifies how a value is traversed.
type Kind int

const (
	// KindLeaf values are yielded verbatim.
	KindLeaf Kind = iota
	// KindSequence values are traversed element by element.
	KindSequence
	// KindMapping values are traversed over their values; keys are
	// discarded.
	KindMapping
	// KindArray values implement Array and are leaves unless array
	// flattening is requested.
	KindArray
)

// KindOf classifies a value. The Array check comes first so that an
// array-like type is never mistaken for the mapping or sequence it may
// be built on, and strings are never treated as sequences of bytes.
func KindOf(v any) Kind {
	if v == nil {
		return KindLeaf
	}
	if _, ok := v.(Array); ok {
		return KindArray
	}
	if _, ok := v.(string); ok {
		return KindLeaf
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map:
		return KindMapping
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.String:
		return KindLeaf
	default:
		return KindLeaf
	}
}

// Flatten returns a lazy depth-first, left-to-right sequence of the
// leaves of v. Mapping values are recursed into (their keys are
// dropped) in map iteration order, sequences element-wise in order.
// When flattenArrays is true, array-like values are also descended
// element-wise; otherwise they are yielded whole.
//
// The sequence is a single forward pass; it is not meant to be ranged
// over more than once.
func Flatten(v any, flattenArrays bool) iter.Seq[any] {
	return func(yield func(any) bool) {
		flattenInto(v, flattenArrays, yield)
	}
}

func flattenInto(v any, flattenArrays bool, yield func(any) bool) bool {
	switch KindOf(v) {
	case KindMapping:
		it := reflect.ValueOf(v).MapRange()
		for it.Next() {
			if !flattenInto(it.Value().Interface(), flattenArrays, yield) {
				return false
			}
		}
	case KindSequence:
		rv := reflect.ValueOf(v)
		for i := 0; i < rv.Len(); i++ {
			if !flattenInto(rv.Index(i).Interface(), flattenArrays, yield) {
				return false
			}
		}
	case KindArray:
		a := v.(Array)
		// A scalar array has nothing to descend into and stays whole.
		if !flattenArrays || len(a.Dims()) == 0 {
			return yield(v)
		}
		for i := 0; i < a.Len(); i++ {
			if !flattenInto(a.Elem(i), flattenArrays, yield) {
				return false
			}
		}
	default:
		return yield(v)
	}
	return true
}

// Collect flattens v eagerly into a slice.
func Collect(v any, flattenArrays bool) []any {
	var out []any
	for leaf := range Flatten(v, flattenArrays) {
		out = append(out, leaf)
	}
	return out
}

// Decompose breaks v apart by exactly one level of nesting: a mapping
// yields its values, a sequence its elements. The second return is
// false when v is not decomposable (leaves and array-like values,
// which are opaque here).
func Decompose(v any) ([]any, bool) {
	switch KindOf(v) {
	case KindMapping:
		rv := reflect.ValueOf(v)
		out := make([]any, 0, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out = append(out, it.Value().Interface())
		}
		return out, true
	case KindSequence:
		rv := reflect.ValueOf(v)
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
