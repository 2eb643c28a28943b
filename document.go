// Package pwsafe implements Document, the top-level aggregate of a
// Password Safe V3 database: its headers, its entries, the passphrase
// that locks it, and the change-tracking and access-stamping flags that
// govern how it behaves on load and save.
package pwsafe

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"

	"github.com/mjlyons/pwsafe3/container"
	"github.com/mjlyons/pwsafe3/entry"
	"github.com/mjlyons/pwsafe3/field"
	"github.com/mjlyons/pwsafe3/header"
	"github.com/mjlyons/pwsafe3/internal/wire"
	"github.com/mjlyons/pwsafe3/secret"
)

// Document is a Password Safe V3 database: a HeaderCollection, an
// EntryCollection, and the passphrase that locks them, plus the flags
// that govern load/save behavior.
//
// Document owns its collections and is their change-tracking and
// collation authority: it implements header.Owner and entry.Owner
// directly, so mutating any header, entry, or record anywhere in the
// tree sets has_changed on this Document, not on some intermediate
// object.
type Document struct {
	headers *header.Collection
	entries *entry.Collection

	passphrase *secret.Custody

	iterations uint32
	readOnly   bool
	trackAccess bool
	trackModify bool
	hasChanged  bool

	collationInvariant bool
	fold                func(string) string
}

// NewDocument constructs an empty, ready-to-save Document locked under
// passphrase. The header group is seeded with a default Version
// (0x030D) and a freshly generated document Uuid, matching what a
// client creating a brand new database would persist. The caller's
// passphrase slice is copied and left untouched; only the library's
// internal copy is zeroized once sealed.
func NewDocument(passphrase []byte) (*Document, error) {
	d := &Document{
		trackAccess: true,
		trackModify: true,
		iterations:  container.MinIterations,
		fold:        newFolder(false),
	}
	d.headers = header.New(d)
	d.entries = entry.NewCollection(d)

	vf := field.New(byte(header.Version), nil)
	vf.SetVersion(container.DefaultVersion)
	if err := d.headers.Set(header.Version, vf); err != nil {
		return nil, err
	}

	uf := field.New(byte(header.UUID), nil)
	uf.SetUuid(uuid.New())
	if err := d.headers.Set(header.UUID, uf); err != nil {
		return nil, err
	}

	if err := d.setPassphrase(passphrase); err != nil {
		return nil, err
	}
	return d, nil
}

// Load authenticates and parses a V3 stream from r, building a Document
// from its header and entry fields. The iteration count is preserved
// exactly as persisted — it is never re-clamped to the minimum on load,
// only on save.
func Load(r io.Reader, passphrase []byte) (*Document, error) {
	loaded, err := container.Load(r, passphrase)
	if err != nil {
		return nil, err
	}

	d := &Document{
		trackAccess: true,
		trackModify: true,
		iterations:  loaded.Iterations,
		fold:        newFolder(false),
	}
	d.headers = header.New(d)
	for _, f := range loaded.Headers {
		if err := d.headers.Set(header.Type(f.TypeCode()), f); err != nil {
			return nil, err
		}
	}

	d.entries = entry.NewCollection(d)
	for _, recs := range loaded.Entries {
		if err := d.entries.Add(entry.FromRecords(recs)); err != nil {
			return nil, err
		}
	}

	if err := d.setPassphrase(passphrase); err != nil {
		return nil, err
	}
	return d, nil
}

// Save serializes the Document to w under its stored passphrase, or
// under an explicitly supplied one. If the Document is not read-only and
// tracking modifications is enabled, the last-save stamps
// (TimestampOfLastSave, WhatPerformedLastSave, LastSavedByUser,
// LastSavedOnHost) are refreshed first. has_changed is cleared only once
// the underlying write has fully succeeded.
func (d *Document) Save(w io.Writer, passphrase ...[]byte) error {
	if !d.readOnly && d.trackModify {
		d.stampLastSave()
	}

	headerFields := d.headers.All()
	all := d.entries.All()
	entryGroups := make([][]field.Field, len(all))
	for i, e := range all {
		entryGroups[i] = e.Records().All()
	}

	var pass []byte
	if len(passphrase) > 0 {
		pass = passphrase[0]
	} else {
		p, err := d.passphrase.Get()
		if err != nil {
			return err
		}
		defer wire.Zero(p)
		pass = p
	}

	if err := container.Save(w, headerFields, entryGroups, pass, container.Options{Iterations: d.iterations}); err != nil {
		return err
	}
	d.hasChanged = false
	return nil
}

func (d *Document) stampLastSave() {
	d.setHeaderTime(header.TimestampOfLastSave, time.Now().UTC())
	d.setHeaderText(header.WhatPerformedLastSave, fmt.Sprintf("%s V%s", container.LibraryName, container.LibraryVersion))
	if u, err := user.Current(); err == nil {
		d.setHeaderText(header.LastSavedByUser, u.Username)
	}
	if host, err := os.Hostname(); err == nil {
		d.setHeaderText(header.LastSavedOnHost, host)
	}
}

func (d *Document) setPassphrase(passphrase []byte) error {
	buf := append([]byte(nil), passphrase...)
	d.passphrase = secret.New()
	return d.passphrase.Set(buf)
}

// SetPassphrase replaces the passphrase a subsequent Save (without an
// explicit argument) will use. The caller's own slice is left untouched;
// only the library's internal copy is zeroized once sealed.
func (d *Document) SetPassphrase(passphrase []byte) error {
	return d.setPassphrase(passphrase)
}

// Dispose zeroizes the Document's held passphrase custody. Call it when
// the Document is no longer needed, in place of waiting on the garbage
// collector.
func (d *Document) Dispose() {
	if d.passphrase != nil {
		d.passphrase.Clear()
	}
}

// MarkChanged implements header.Owner and entry.Owner.
func (d *Document) MarkChanged() { d.hasChanged = true }

// ReadOnly implements header.Owner and entry.Owner.
func (d *Document) ReadOnly() bool { return d.readOnly }

// Fold implements entry.Owner, returning the comparison key title/group
// lookups use.
func (d *Document) Fold(s string) string {
	if d.fold == nil {
		d.fold = newFolder(d.collationInvariant)
	}
	return d.fold(s)
}

