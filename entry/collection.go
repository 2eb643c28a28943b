package entry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mjlyons/pwsafe3/record"
)

// ErrReadOnly is returned by any mutating Collection operation when the
// collection's owner reports itself read-only.
var ErrReadOnly = errors.New("entry: collection is read-only")

// ErrAlreadyOwned is returned by Add/Insert when the Entry already
// belongs to a Collection (its own or another one).
var ErrAlreadyOwned = errors.New("entry: already belongs to a collection")

// ErrOnlyNoneSupported is returned by the "assign none to remove" setter
// forms when called with anything other than the removal sentinel.
var ErrOnlyNoneSupported = errors.New("entry: indexer assignment only supports removal (none)")

// ErrIndexOutOfRange is returned by position-indexed operations given an
// out-of-bounds index.
var ErrIndexOutOfRange = errors.New("entry: index out of range")

// Owner is the change-tracking, read-only and collation hooks a
// Collection reports to and draws from. A *pwsafe.Document satisfies
// this interface.
type Owner interface {
	MarkChanged()
	ReadOnly() bool

	// Fold returns the comparison key used for case-insensitive title and
	// group lookups, honoring the owner's chosen collation (locale-aware
	// by default, or invariant — see Document.CollationInvariant).
	Fold(s string) string
}

// Collection is an ordered sequence of Entries, each owned by at most one
// Collection at a time.
type Collection struct {
	owner   Owner
	entries []*Entry
}

// NewCollection returns an empty Collection reporting mutations to owner.
func NewCollection(owner Owner) *Collection {
	return &Collection{owner: owner}
}

func (c *Collection) markChanged() {
	if c.owner != nil {
		c.owner.MarkChanged()
	}
}

// ReadOnly reports whether the owning document is read-only.
func (c *Collection) ReadOnly() bool {
	return c.owner != nil && c.owner.ReadOnly()
}

func (c *Collection) fold(s string) string {
	if c.owner == nil {
		return s
	}
	return c.owner.Fold(s)
}

// Len returns the number of entries.
func (c *Collection) Len() int { return len(c.entries) }

// At returns the entry at position i.
func (c *Collection) At(i int) (*Entry, error) {
	if i < 0 || i >= len(c.entries) {
		return nil, ErrIndexOutOfRange
	}
	return c.entries[i], nil
}

// All returns a snapshot of the entries in insertion order. Structural
// mutation of the Collection (Add/Remove/Clear/sort) after this call does
// not affect the returned slice or invalidate any in-progress range over
// it — this is the "iteration returns a snapshot" invariant.
func (c *Collection) All() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Add appends e to the collection. It is an error if e already belongs to
// a collection (its own or another one).
func (c *Collection) Add(e *Entry) error {
	if c.ReadOnly() {
		return ErrReadOnly
	}
	if e.owner != nil {
		return ErrAlreadyOwned
	}
	e.owner = c
	c.entries = append(c.entries, e)
	c.markChanged()
	return nil
}

// AddRange appends each of es in order. If any entry is already owned,
// no entries are added and the first such error is returned.
func (c *Collection) AddRange(es []*Entry) error {
	for _, e := range es {
		if e.owner != nil {
			return ErrAlreadyOwned
		}
	}
	for _, e := range es {
		if err := c.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// Insert inserts e at position i.
func (c *Collection) Insert(i int, e *Entry) error {
	if c.ReadOnly() {
		return ErrReadOnly
	}
	if i < 0 || i > len(c.entries) {
		return ErrIndexOutOfRange
	}
	if e.owner != nil {
		return ErrAlreadyOwned
	}
	c.entries = append(c.entries, nil)
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
	e.owner = c
	c.markChanged()
	return nil
}

// Remove deletes e from the collection, if it is a member.
func (c *Collection) Remove(e *Entry) error {
	if c.ReadOnly() {
		return ErrReadOnly
	}
	for i, cur := range c.entries {
		if cur == e {
			return c.removeAt(i)
		}
	}
	return nil
}

// RemoveAt deletes the entry at position i.
func (c *Collection) RemoveAt(i int) error {
	if c.ReadOnly() {
		return ErrReadOnly
	}
	if i < 0 || i >= len(c.entries) {
		return ErrIndexOutOfRange
	}
	return c.removeAt(i)
}

func (c *Collection) removeAt(i int) error {
	c.entries[i].owner = nil
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.markChanged()
	return nil
}

// Clear removes all entries.
func (c *Collection) Clear() error {
	if c.ReadOnly() {
		return ErrReadOnly
	}
	for _, e := range c.entries {
		e.owner = nil
	}
	c.entries = nil
	c.markChanged()
	return nil
}

// Contains reports whether an entry with the given title exists
// (case-insensitive, linear scan).
func (c *Collection) Contains(title string) bool {
	_, ok := c.find(title)
	return ok
}

// ContainsGroup reports whether an entry with the given (group, title)
// exists (case-insensitive, linear scan).
func (c *Collection) ContainsGroup(group, title string) bool {
	_, ok := c.findGroup(group, title)
	return ok
}

func (c *Collection) find(title string) (*Entry, bool) {
	want := c.fold(title)
	for _, e := range c.entries {
		if c.fold(e.Title()) == want {
			return e, true
		}
	}
	return nil, false
}

func (c *Collection) findGroup(group, title string) (*Entry, bool) {
	wantG, wantT := c.fold(group), c.fold(title)
	for _, e := range c.entries {
		if c.fold(e.Group()) == wantG && c.fold(e.Title()) == wantT {
			return e, true
		}
	}
	return nil, false
}

// ByTitle is the read side of the title indexer: if an entry with this
// title exists, it is returned. Otherwise, if the collection is mutable,
// a new entry with this title is created, appended, and returned. If the
// collection is read-only, a detached dummy entry is returned instead
// (not inserted) — see EntryOrNil for the non-auto-creating form.
func (c *Collection) ByTitle(title string) *Entry {
	if e, ok := c.find(title); ok {
		return e
	}
	if c.ReadOnly() {
		return newDetachedDummy("", title)
	}
	e := NewWithTitle(title)
	_ = c.Add(e)
	return e
}

// ByGroupTitle is the (group, title) counterpart to ByTitle.
func (c *Collection) ByGroupTitle(group, title string) *Entry {
	if e, ok := c.findGroup(group, title); ok {
		return e
	}
	if c.ReadOnly() {
		return newDetachedDummy(group, title)
	}
	e := NewWithTitle(title)
	e.SetGroup(group)
	_ = c.Add(e)
	return e
}

// EntryOrNil is the explicit, non-auto-creating counterpart to ByTitle,
// per the source-compatibility note in the design docs: it never mutates
// the collection.
func (c *Collection) EntryOrNil(title string) *Entry {
	e, ok := c.find(title)
	if !ok {
		return nil
	}
	return e
}

// EntryOrCreate is ByTitle under its preferred, explicit name.
func (c *Collection) EntryOrCreate(title string) *Entry { return c.ByTitle(title) }

// SetByTitle is the write side of the title indexer. Only passing
// wantRemove=true (the "none" sentinel) is accepted; it removes the
// matched entry. Any other call fails with ErrOnlyNoneSupported.
func (c *Collection) SetByTitle(title string, wantRemove bool) error {
	if !wantRemove {
		return ErrOnlyNoneSupported
	}
	if e, ok := c.find(title); ok {
		return c.Remove(e)
	}
	return nil
}

// RecordByTitle is the getter half of the (title, record type) indexer:
// it delegates to the matched entry's record collection, returning the
// record's text and true, or "" and false if either the entry or the
// record is absent.
func (c *Collection) RecordByTitle(title string, t record.Type) (string, bool) {
	e, ok := c.find(title)
	if !ok {
		return "", false
	}
	f, ok := e.records.Get(t)
	if !ok {
		return "", false
	}
	return f.Text(), true
}

// RemoveRecordByTitle is the setter half of the (title, record type)
// indexer: it removes the named record from the matched entry, without
// creating the entry if it is absent.
func (c *Collection) RemoveRecordByTitle(title string, t record.Type) error {
	e, ok := c.find(title)
	if !ok {
		return nil
	}
	return e.records.Remove(t)
}

// RecordByGroupTitle is the (group, title, record type) counterpart to
// RecordByTitle.
func (c *Collection) RecordByGroupTitle(group, title string, t record.Type) (string, bool) {
	e, ok := c.findGroup(group, title)
	if !ok {
		return "", false
	}
	f, ok := e.records.Get(t)
	if !ok {
		return "", false
	}
	return f.Text(), true
}

// RemoveRecordByGroupTitle is the (group, title, record type) counterpart
// to RemoveRecordByTitle.
func (c *Collection) RemoveRecordByGroupTitle(group, title string, t record.Type) error {
	e, ok := c.findGroup(group, title)
	if !ok {
		return nil
	}
	return e.records.Remove(t)
}

// Sort stably reorders entries by (Group, Title), both compared
// case-insensitively via the owner's collation.
func (c *Collection) Sort() {
	sort.SliceStable(c.entries, func(i, j int) bool {
		a, b := c.entries[i], c.entries[j]
		ag, bg := c.fold(a.Group()), c.fold(b.Group())
		if ag != bg {
			return ag < bg
		}
		return c.fold(a.Title()) < c.fold(b.Title())
	})
	c.markChanged()
}

// String implements fmt.Stringer for debugging.
func (c *Collection) String() string {
	return fmt.Sprintf("entry.Collection{len=%d}", len(c.entries))
}
