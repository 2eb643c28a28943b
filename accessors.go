package pwsafe

import (
	"time"

	"github.com/google/uuid"

	"github.com/mjlyons/pwsafe3/entry"
	"github.com/mjlyons/pwsafe3/header"
)

// Headers returns the Document's HeaderCollection.
func (d *Document) Headers() *header.Collection { return d.headers }

// Entries returns the Document's EntryCollection.
func (d *Document) Entries() *entry.Collection { return d.entries }

// Version is the file-format version stamped in the header group.
func (d *Document) Version() uint16 {
	f, ok := d.headers.Get(header.Version)
	if !ok {
		return 0
	}
	v, _ := f.Version()
	return v
}

// Uuid is the document's own identity, distinct from any entry's Uuid.
func (d *Document) Uuid() uuid.UUID {
	f, ok := d.headers.Get(header.UUID)
	if !ok {
		return uuid.Nil
	}
	id, _ := f.Uuid()
	return id
}

// Name is the database's display name.
func (d *Document) Name() string     { return d.headerText(header.DatabaseName) }
func (d *Document) SetName(s string) { d.setHeaderText(header.DatabaseName, s) }

// Description is the database's free-form description.
func (d *Document) Description() string     { return d.headerText(header.DatabaseDescription) }
func (d *Document) SetDescription(s string) { d.setHeaderText(header.DatabaseDescription, s) }

// LastSaveTime is when the database was last saved.
func (d *Document) LastSaveTime() time.Time { return d.headerTime(header.TimestampOfLastSave) }

// LastSaveApp names the library and version that performed the last save.
func (d *Document) LastSaveApp() string { return d.headerText(header.WhatPerformedLastSave) }

// LastSaveUser is the OS username that performed the last save.
func (d *Document) LastSaveUser() string { return d.headerText(header.LastSavedByUser) }

// LastSaveHost is the hostname that performed the last save.
func (d *Document) LastSaveHost() string { return d.headerText(header.LastSavedOnHost) }

// Iterations is the key-stretch iteration count. Setting it below
// MinIterations is allowed — the value is only clamped at Save time, not
// on assignment.
func (d *Document) Iterations() uint32     { return d.iterations }
func (d *Document) SetIterations(n uint32) { d.iterations = n }

// ReadOnly reports (and sets) whether mutating operations against this
// Document's headers and entries are rejected.
func (d *Document) SetReadOnly(b bool) { d.readOnly = b }

// TrackAccess is a stored flag, default true. No operation in this
// package reads it: reading an entry never stamps its LastAccessTime.
func (d *Document) TrackAccess() bool     { return d.trackAccess }
func (d *Document) SetTrackAccess(b bool) { d.trackAccess = b }

// TrackModify governs whether Save refreshes the last-save stamps.
// Default true.
func (d *Document) TrackModify() bool     { return d.trackModify }
func (d *Document) SetTrackModify(b bool) { d.trackModify = b }

// HasChanged reports whether the Document has unsaved mutations.
func (d *Document) HasChanged() bool { return d.hasChanged }

// CollationInvariant switches title/group comparison from the process's
// locale to a fixed, locale-independent fold, trading a more
// "native-feeling" sort for cross-platform determinism.
func (d *Document) CollationInvariant() bool { return d.collationInvariant }
func (d *Document) SetCollationInvariant(b bool) {
	d.collationInvariant = b
	d.fold = newFolder(b)
}

func (d *Document) headerText(t header.Type) string {
	f, ok := d.headers.Get(t)
	if !ok {
		return ""
	}
	return f.Text()
}

func (d *Document) setHeaderText(t header.Type, s string) {
	f, err := d.headers.GetOrCreate(t)
	if err != nil {
		return
	}
	f.SetText(s)
}

func (d *Document) headerTime(t header.Type) time.Time {
	f, ok := d.headers.Get(t)
	if !ok {
		return time.Time{}
	}
	tm, _ := f.Time()
	return tm
}

func (d *Document) setHeaderTime(t header.Type, tm time.Time) {
	f, err := d.headers.GetOrCreate(t)
	if err != nil {
		return
	}
	f.SetTime(tm)
}
