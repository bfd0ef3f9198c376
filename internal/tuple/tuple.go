// Package tuple implements the Up/Down tuple algebra: fixed-length
// sequences of scalars tagged with a variance kind. Tuples of the same
// kind combine element-wise; an Up and a Down of equal length contract
// to a scalar (sum of pairwise products).
//
// Same-kind multiplication is deliberately undefined: contraction
// semantics only exist between opposite variances, so Mul fails with a
// VARIANCE_MISMATCH ShapeError. Hadamard provides the element-wise
// product explicitly for callers that want it.
//
// Tuples are immutable; every operation returns a new tuple.
package tuple

import (
	"github.com/roach88/epsilon/internal/dual"
)

// Kind is the variance tag of a tuple.
type Kind int

const (
	// Contravariant marks an Up tuple (component indices written as
	// superscripts).
	Contravariant Kind = iota + 1
	// Covariant marks a Down tuple (subscript indices).
	Covariant
)

// String returns the conventional name for the kind.
func (k Kind) String() string {
	switch k {
	case Contravariant:
		return "up"
	case Covariant:
		return "down"
	default:
		return "unknown"
	}
}

// Tuple is an ordered, fixed-length sequence of scalars with a variance
// kind. Construct with Up or Down; the zero value is not useful.
type Tuple struct {
	kind  Kind
	items []dual.Scalar
}

// Up constructs a contravariant tuple from the given components.
func Up(items ...dual.Scalar) *Tuple {
	return newTuple(Contravariant, items)
}

// Down constructs a covariant tuple from the given components.
func Down(items ...dual.Scalar) *Tuple {
	return newTuple(Covariant, items)
}

// UpOf and DownOf build tuples from plain values, a convenience for
// tests and the CLI.
func UpOf(values ...float64) *Tuple {
	return newTuple(Contravariant, lift(values))
}

func DownOf(values ...float64) *Tuple {
	return newTuple(Covariant, lift(values))
}

func newTuple(kind Kind, items []dual.Scalar) *Tuple {
	copied := make([]dual.Scalar, len(items))
	copy(copied, items)
	return &Tuple{kind: kind, items: copied}
}

func lift(values []float64) []dual.Scalar {
	items := make([]dual.Scalar, len(values))
	for i, v := range values {
		items[i] = dual.Float(v)
	}
	return items
}

// Kind returns the variance tag.
func (t *Tuple) Kind() Kind { return t.kind }

// Len returns the number of components.
func (t *Tuple) Len() int { return len(t.items) }

// At returns the i-th component.
func (t *Tuple) At(i int) dual.Scalar { return t.items[i] }

// Items returns a copy of the component slice.
func (t *Tuple) Items() []dual.Scalar {
	copied := make([]dual.Scalar, len(t.items))
	copy(copied, t.items)
	return copied
}

// Equal reports whether o has the same kind, length and (structurally)
// equal components.
func (t *Tuple) Equal(o *Tuple) bool {
	if t.kind != o.kind || len(t.items) != len(o.items) {
		return false
	}
	for i := range t.items {
		if !dual.Equal(t.items[i], o.items[i]) {
			return false
		}
	}
	return true
}

// Map applies fn to each component, preserving the kind.
func (t *Tuple) Map(fn func(dual.Scalar) dual.Scalar) *Tuple {
	items := make([]dual.Scalar, len(t.items))
	for i, item := range t.items {
		items[i] = fn(item)
	}
	return &Tuple{kind: t.kind, items: items}
}

// Add returns the element-wise sum. Operands must share kind and
// length; otherwise a ShapeError is returned.
func Add(a, b *Tuple) (*Tuple, error) {
	if err := sameShape("Add", a, b); err != nil {
		return nil, err
	}
	items := make([]dual.Scalar, a.Len())
	for i := range items {
		items[i] = dual.Add(a.items[i], b.items[i])
	}
	return &Tuple{kind: a.kind, items: items}, nil
}

// Sub returns the element-wise difference under the same shape rules
// as Add.
func Sub(a, b *Tuple) (*Tuple, error) {
	if err := sameShape("Sub", a, b); err != nil {
		return nil, err
	}
	items := make([]dual.Scalar, a.Len())
	for i := range items {
		items[i] = dual.Sub(a.items[i], b.items[i])
	}
	return &Tuple{kind: a.kind, items: items}, nil
}

// Neg returns the element-wise negation.
func Neg(t *Tuple) *Tuple {
	return t.Map(dual.Neg)
}

// Scale returns t with every component multiplied by s.
func Scale(t *Tuple, s dual.Scalar) *Tuple {
	return t.Map(func(item dual.Scalar) dual.Scalar {
		return dual.Mul(item, s)
	})
}

// Contract reduces an Up/Down pair of equal length to a scalar: the
// sum of pairwise products. Operand order does not matter. Returns a
// ShapeError when kinds are not opposite or lengths differ.
func Contract(a, b *Tuple) (dual.Scalar, error) {
	if a.kind == b.kind {
		return nil, varianceMismatch("Contract", a, b)
	}
	if a.Len() != b.Len() {
		return nil, lengthMismatch("Contract", a, b)
	}
	acc := dual.Scalar(dual.Float(0))
	for i := range a.items {
		acc = dual.Add(acc, dual.Mul(a.items[i], b.items[i]))
	}
	return acc, nil
}

// Mul multiplies two tuples. Opposite kinds contract to a scalar;
// same-kind multiplication is undefined and fails with a
// VARIANCE_MISMATCH ShapeError (use Hadamard for an explicit
// element-wise product).
func Mul(a, b *Tuple) (dual.Scalar, error) {
	if a.kind == b.kind {
		return nil, varianceMismatch("Mul", a, b)
	}
	return Contract(a, b)
}

// Hadamard returns the element-wise product of two tuples of the same
// kind and length.
func Hadamard(a, b *Tuple) (*Tuple, error) {
	if err := sameShape("Hadamard", a, b); err != nil {
		return nil, err
	}
	items := make([]dual.Scalar, a.Len())
	for i := range items {
		items[i] = dual.Mul(a.items[i], b.items[i])
	}
	return &Tuple{kind: a.kind, items: items}, nil
}

func sameShape(op string, a, b *Tuple) error {
	if a.kind != b.kind {
		return varianceMismatch(op, a, b)
	}
	if a.Len() != b.Len() {
		return lengthMismatch(op, a, b)
	}
	return nil
}
