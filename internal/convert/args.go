package convert

import "github.com/meredith/spikekit/internal/neuro"

// ArgRegistry maps analysis function names to the argument names that
// can be fed from object attributes. The attribute name and the
// argument name are identical by convention.
//
// The registry is explicit and passed by value; callers build it once
// during wiring and extend it with their own functions.
type ArgRegistry map[string][]string

// DefaultArgRegistry registers the built-in analysis functions.
func DefaultArgRegistry() ArgRegistry {
	return ArgRegistry{
		"binarize":    {"sampling_rate", "t_start", "t_stop"},
		"firing_rate": {"t_start", "t_stop"},
	}
}

// Register adds or replaces the attribute-fed arguments of a function.
func (r ArgRegistry) Register(name string, args ...string) {
	r[name] = args
}

// ArgsFor returns the attribute-fed argument names of a function.
func (r ArgRegistry) ArgsFor(name string) []string {
	return r[name]
}

// FillArgs resolves the registered arguments of a function from an
// object's attributes. Missing attributes are left out.
func (r ArgRegistry) FillArgs(name string, obj neuro.DomainObject) map[string]any {
	args := make(map[string]any)
	for _, arg := range r[name] {
		if v, ok := obj.GetAttr(arg); ok && v != nil {
			args[arg] = v
		}
	}
	return args
}
