package expansion

import (
	"fmt"
	"strings"
)

// Field is a single slot of an Expansion.
type Field struct {
	Value string
	Index int
}

// Expansion is an ordered, indexable list of fields.
type Expansion struct {
	fields []Field
}

// New creates an expansion with one field per value. New() has zero fields.
func New(values ...string) *Expansion {
	e := &Expansion{fields: make([]Field, 0, len(values))}
	for _, v := range values {
		e.fields = append(e.fields, Field{Value: v})
	}
	return e
}

// NewOne creates a single-field expansion.
func NewOne(value string) *Expansion {
	return &Expansion{fields: []Field{{Value: value}}}
}

// FromMatch creates an expansion from regexp submatches, as returned by
// regexp.FindStringSubmatch: the full match is field 0 and each group
// follows in order.
func FromMatch(submatches []string) *Expansion {
	return New(submatches...)
}

// Copy returns an independent expansion with the same values and indices.
func (e *Expansion) Copy() *Expansion {
	if e == nil {
		return nil
	}
	fields := make([]Field, len(e.fields))
	copy(fields, e.fields)
	return &Expansion{fields: fields}
}

// Num returns the number of fields.
func (e *Expansion) Num() int {
	if e == nil {
		return 0
	}
	return len(e.fields)
}

// Get returns the value of field i. The boolean is false when the field does
// not exist, which is different from a field holding the empty string.
func (e *Expansion) Get(i int) (string, bool) {
	if e == nil || i < 0 || i >= len(e.fields) {
		return "", false
	}
	return e.fields[i].Value, true
}

// Value returns the value of field i, or "" when it does not exist.
func (e *Expansion) Value(i int) string {
	v, _ := e.Get(i)
	return v
}

// Index returns the stored index of field i, or 0 when it does not exist.
func (e *Expansion) Index(i int) int {
	if e == nil || i < 0 || i >= len(e.fields) {
		return 0
	}
	return e.fields[i].Index
}

// SetIndex stores v as the index of field i. Out of range fields are ignored.
func (e *Expansion) SetIndex(i, v int) {
	if i < 0 || i >= len(e.fields) {
		return
	}
	e.fields[i].Index = v
}

// Set replaces the value of field i, growing the expansion with empty fields
// when i is past the end.
func (e *Expansion) Set(i int, v string) {
	if i < 0 {
		return
	}
	for len(e.fields) <= i {
		e.fields = append(e.fields, Field{})
	}
	e.fields[i].Value = v
}

// Insert puts a new field with value v at position i, shifting later fields
// up. Positions past the end append.
func (e *Expansion) Insert(i int, v string) {
	if i < 0 {
		i = 0
	}
	if i >= len(e.fields) {
		e.fields = append(e.fields, Field{Value: v})
		return
	}
	e.fields = append(e.fields, Field{})
	copy(e.fields[i+1:], e.fields[i:])
	e.fields[i] = Field{Value: v}
}

// Add appends a field.
func (e *Expansion) Add(v string) {
	e.fields = append(e.fields, Field{Value: v})
}

// Append appends the fields of other, skipping its first skip fields.
// Indices are carried over.
func (e *Expansion) Append(other *Expansion, skip int) {
	if other == nil {
		return
	}
	if skip < 0 {
		skip = 0
	}
	for i := skip; i < len(other.fields); i++ {
		e.fields = append(e.fields, other.fields[i])
	}
}

// Values returns a copy of all field values.
func (e *Expansion) Values() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.fields))
	for i, f := range e.fields {
		out[i] = f.Value
	}
	return out
}

// Equal reports whether both expansions hold the same values and indices.
func (e *Expansion) Equal(other *Expansion) bool {
	if e.Num() != other.Num() {
		return false
	}
	for i := 0; i < e.Num(); i++ {
		if e.fields[i] != other.fields[i] {
			return false
		}
	}
	return true
}

// String renders the expansion for debugging, e.g. `[a1(0), 1(0)]`.
func (e *Expansion) String() string {
	if e == nil {
		return "[]"
	}
	parts := make([]string, len(e.fields))
	for i, f := range e.fields {
		parts[i] = fmt.Sprintf("%s(%d)", f.Value, f.Index)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
