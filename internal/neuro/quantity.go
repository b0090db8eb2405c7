package neuro

import "fmt"

// unitDef maps a unit symbol to its base dimension and scale factor.
type unitDef struct {
	base  string
	scale float64
}

var unitTable = map[string]unitDef{
	"s":   {base: "s", scale: 1},
	"ms":  {base: "s", scale: 1e-3},
	"us":  {base: "s", scale: 1e-6},
	"V":   {base: "V", scale: 1},
	"mV":  {base: "V", scale: 1e-3},
	"uV":  {base: "V", scale: 1e-6},
	"Hz":  {base: "Hz", scale: 1},
	"kHz": {base: "Hz", scale: 1e3},
}

// Quantity is a numeric array with physical units. Values are stored
// flat in row-major order; Shape gives the length of each axis. A nil
// or empty Shape with one value is a scalar quantity.
type Quantity struct {
	Values []float64
	Shape  []int
	Units  string
}

// NewQuantity returns a one-dimensional quantity.
func NewQuantity(values []float64, units string) *Quantity {
	return &Quantity{Values: values, Shape: []int{len(values)}, Units: units}
}

// NewScalar returns a dimensionless-shape quantity holding one value.
func NewScalar(value float64, units string) *Quantity {
	return &Quantity{Values: []float64{value}, Units: units}
}

// Scalar returns the single value of a scalar or one-element quantity.
func (q *Quantity) Scalar() (float64, error) {
	if len(q.Values) != 1 {
		return 0, fmt.Errorf("quantity has %d values, not 1", len(q.Values))
	}
	return q.Values[0], nil
}

// NDim returns the number of axes.
func (q *Quantity) NDim() int { return len(q.Shape) }

// Dims returns the length of each axis.
func (q *Quantity) Dims() []int { return q.Shape }

// Len returns the length of the first axis, or 0 for a scalar.
func (q *Quantity) Len() int {
	if len(q.Shape) == 0 {
		return 0
	}
	return q.Shape[0]
}

// Elem returns the i-th element along the first axis: a float64 for a
// one-dimensional quantity, a sub-quantity otherwise.
func (q *Quantity) Elem(i int) any {
	if len(q.Shape) == 1 {
		return q.Values[i]
	}
	stride := 1
	for _, n := range q.Shape[1:] {
		stride *= n
	}
	sub := &Quantity{
		Values: q.Values[i*stride : (i+1)*stride],
		Shape:  q.Shape[1:],
		Units:  q.Units,
	}
	return sub
}

// Rescale converts the quantity to another unit of the same dimension.
// The receiver is unchanged.
func (q *Quantity) Rescale(units string) (*Quantity, error) {
	from, ok := unitTable[q.Units]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", q.Units)
	}
	to, ok := unitTable[units]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", units)
	}
	if from.base != to.base {
		return nil, fmt.Errorf("cannot rescale %s to %s", q.Units, units)
	}
	factor := from.scale / to.scale
	values := make([]float64, len(q.Values))
	for i, v := range q.Values {
		values[i] = v * factor
	}
	return &Quantity{Values: values, Shape: append([]int(nil), q.Shape...), Units: units}, nil
}

// BaseUnits rescales the quantity to the base unit of its dimension
// (e.g. ms to s, uV to V).
func (q *Quantity) BaseUnits() (*Quantity, error) {
	def, ok := unitTable[q.Units]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", q.Units)
	}
	return q.Rescale(def.base)
}

func (q *Quantity) String() string {
	return fmt.Sprintf("%v %s", q.Values, q.Units)
}
