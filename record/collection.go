// Package record implements the record type enumeration and
// RecordCollection: the ordered, uniqueness-constrained set of fields
// attached to a single Entry.
package record

import (
	"errors"

	"github.com/mjlyons/pwsafe3/field"
)

// ErrReadOnly is returned by any mutating Collection operation when the
// collection's owner reports itself read-only.
var ErrReadOnly = errors.New("record: collection is read-only")

// Owner is the change-tracking and read-only hook a Collection reports
// mutations to. An *entry.Entry satisfies this interface.
type Owner interface {
	MarkChanged()
	ReadOnly() bool
}

// Collection is an ordered sequence of record Fields with the invariant
// that at most one Field of any given type is present.
type Collection struct {
	owner  Owner
	fields []field.Field
}

// New returns an empty Collection reporting mutations to owner.
func New(owner Owner) *Collection {
	return &Collection{owner: owner}
}

func (c *Collection) readOnly() bool {
	return c.owner != nil && c.owner.ReadOnly()
}

func (c *Collection) markChanged() {
	if c.owner != nil {
		c.owner.MarkChanged()
	}
}

// Contains reports whether a Field of type t is present.
func (c *Collection) Contains(t Type) bool {
	return c.indexOf(t) >= 0
}

func (c *Collection) indexOf(t Type) int {
	for i := range c.fields {
		if Type(c.fields[i].TypeCode()) == t {
			return i
		}
	}
	return -1
}

// Get returns the first Field of type t, and whether it was present.
func (c *Collection) Get(t Type) (field.Field, bool) {
	if i := c.indexOf(t); i >= 0 {
		return c.fields[i], true
	}
	return field.Field{}, false
}

// GetOrCreate returns a pointer to the Field of type t, appending a fresh
// empty Field of that type if absent.
func (c *Collection) GetOrCreate(t Type) (*field.Field, error) {
	if c.readOnly() {
		return nil, ErrReadOnly
	}
	if i := c.indexOf(t); i >= 0 {
		c.markChanged()
		return &c.fields[i], nil
	}
	c.fields = append(c.fields, field.New(byte(t), nil))
	c.markChanged()
	return &c.fields[len(c.fields)-1], nil
}

// Set replaces the Field of type t, or appends f if no Field of that type
// is present yet.
func (c *Collection) Set(t Type, f field.Field) error {
	if c.readOnly() {
		return ErrReadOnly
	}
	if i := c.indexOf(t); i >= 0 {
		c.fields[i] = f
	} else {
		c.fields = append(c.fields, f)
	}
	c.markChanged()
	return nil
}

// Remove deletes the Field of type t, if present.
func (c *Collection) Remove(t Type) error {
	if c.readOnly() {
		return ErrReadOnly
	}
	i := c.indexOf(t)
	if i < 0 {
		return nil
	}
	c.fields = append(c.fields[:i], c.fields[i+1:]...)
	c.markChanged()
	return nil
}

// All returns a snapshot of the Fields in insertion order.
func (c *Collection) All() []field.Field {
	out := make([]field.Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Len returns the number of Fields currently held.
func (c *Collection) Len() int { return len(c.fields) }
