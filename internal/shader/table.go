package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Value is a parameter slot value: either a scalar or a 3-vector.
type Value struct {
	vec    bool
	scalar float64
	v      mgl64.Vec3
}

// Scalar wraps a float parameter.
func Scalar(x float64) Value { return Value{scalar: x} }

// Vector wraps a vec3 parameter.
func Vector(v mgl64.Vec3) Value { return Value{vec: true, v: v} }

// Vec is shorthand for Vector(mgl64.Vec3{x, y, z}).
func Vec(x, y, z float64) Value { return Vector(mgl64.Vec3{x, y, z}) }

// IsVector reports whether the value holds a vec3.
func (v Value) IsVector() bool { return v.vec }

// Float returns the scalar. Vectors report their x component.
func (v Value) Float() float64 {
	if v.vec {
		return v.v[0]
	}
	return v.scalar
}

// Vec3 returns the vector. Scalars are splatted across all components.
func (v Value) Vec3() mgl64.Vec3 {
	if v.vec {
		return v.v
	}
	return mgl64.Vec3{v.scalar, v.scalar, v.scalar}
}

func (v Value) String() string {
	if v.vec {
		return fmt.Sprintf("(%g, %g, %g)", v.v[0], v.v[1], v.v[2])
	}
	return fmt.Sprintf("%g", v.scalar)
}

// Table is a named parameter table bound to a material. Slots are declared
// once at generation time; afterwards only existing slots can be written.
type Table struct {
	slots map[string]Value
	order []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{slots: map[string]Value{}}
}

// Declare adds a slot (or replaces its value if already declared).
func (t *Table) Declare(name string, v Value) {
	if _, ok := t.slots[name]; !ok {
		t.order = append(t.order, name)
	}
	t.slots[name] = v
}

// Set overwrites an existing slot. It reports false and writes nothing when
// the slot does not exist.
func (t *Table) Set(name string, v Value) bool {
	if _, ok := t.slots[name]; !ok {
		return false
	}
	t.slots[name] = v
	return true
}

// Get looks up a slot.
func (t *Table) Get(name string) (Value, bool) {
	v, ok := t.slots[name]
	return v, ok
}

// Has reports whether a slot exists.
func (t *Table) Has(name string) bool {
	_, ok := t.slots[name]
	return ok
}

// Float reads a scalar slot, returning 0 when absent.
func (t *Table) Float(name string) float64 { return t.slots[name].Float() }

// Vec3 reads a vector slot, returning the zero vector when absent.
func (t *Table) Vec3(name string) mgl64.Vec3 { return t.slots[name].Vec3() }

// Names lists the slots in declaration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Snapshot copies every slot into a plain map.
func (t *Table) Snapshot() map[string]Value {
	out := make(map[string]Value, len(t.slots))
	for k, v := range t.slots {
		out[k] = v
	}
	return out
}

// Len reports the number of slots.
func (t *Table) Len() int { return len(t.slots) }
