// Package entry implements Entry and EntryCollection: the logical
// password entries (groups of Records) that make up a Password Safe V3
// document body.
package entry

import (
	"time"

	"github.com/google/uuid"

	"github.com/mjlyons/pwsafe3/field"
	"github.com/mjlyons/pwsafe3/record"
)

// Entry is one logical password entry: a Collection of Records plus the
// convenience accessors listed in the format's data model.
//
// An Entry holds a back-pointer to the EntryCollection that owns it, not
// the other way around exclusively — Go's tracing garbage collector has
// no trouble with the resulting cycle (collection -> entries -> owner),
// so unlike a parent handle in a non-GC language this needs no weak/arena
// indirection; it is a plain pointer, set once on Add and cleared on
// removal.
type Entry struct {
	records *record.Collection
	owner   *Collection

	// detachedReadOnly marks a dummy entry returned by a read-only
	// collection's miss-on-lookup: it is never added to any collection,
	// so owner is nil, and ReadOnly must still report true.
	detachedReadOnly bool
}

// New constructs a default Entry: a fresh v4 UUID record, and empty Title
// and Password records.
func New() *Entry {
	e := &Entry{}
	e.records = record.New(e)
	e.ensureUUID(uuid.Nil)
	_, _ = e.records.GetOrCreate(record.Title)
	_, _ = e.records.GetOrCreate(record.Password)
	return e
}

// NewWithTitle constructs a default Entry (see New) with Title pre-set.
func NewWithTitle(title string) *Entry {
	e := New()
	e.SetTitle(title)
	return e
}

// newDetachedDummy builds the read-only miss-on-lookup placeholder
// EntryCollection.ByTitle/ByGroupTitle return: a fully-formed Entry
// (records included) carrying the looked-up title (and group, if any)
// but never added to any collection, so mutating it has no lasting
// effect and ReadOnly reports true via detachedReadOnly rather than an
// owner.
func newDetachedDummy(group, title string) *Entry {
	e := NewWithTitle(title)
	if group != "" {
		e.SetGroup(group)
	}
	e.detachedReadOnly = true
	return e
}

// FromRecords constructs an Entry from a parser-supplied record set. A
// UUID record is generated if fields contains none; otherwise the
// supplied fields are kept exactly as given (Title/Password are not
// force-created here — only the default constructor guarantees them).
func FromRecords(fields []field.Field) *Entry {
	e := &Entry{}
	e.records = record.New(e)
	for _, f := range fields {
		_ = e.records.Set(record.Type(f.TypeCode()), f)
	}
	e.ensureUUID(uuid.Nil)
	return e
}

func (e *Entry) ensureUUID(id uuid.UUID) {
	if e.records.Contains(record.UUID) {
		return
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	f := field.New(byte(record.UUID), nil)
	f.SetUuid(id)
	_ = e.records.Set(record.UUID, f)
}

// MarkChanged implements record.Owner, propagating the change signal up
// to the owning EntryCollection (and from there to its Document).
func (e *Entry) MarkChanged() {
	if e.owner != nil {
		e.owner.markChanged()
	}
}

// ReadOnly implements record.Owner.
func (e *Entry) ReadOnly() bool {
	if e.owner != nil {
		return e.owner.ReadOnly()
	}
	return e.detachedReadOnly
}

// Owner returns the EntryCollection this Entry belongs to, or nil if
// detached.
func (e *Entry) Owner() *Collection { return e.owner }

// Records returns the underlying RecordCollection.
func (e *Entry) Records() *record.Collection { return e.records }

// Uuid returns the entry's identity UUID. Every Entry has one from the
// moment of construction.
func (e *Entry) Uuid() uuid.UUID {
	f, ok := e.records.Get(record.UUID)
	if !ok {
		return uuid.Nil
	}
	id, _ := f.Uuid()
	return id
}

func (e *Entry) text(t record.Type) string {
	f, ok := e.records.Get(t)
	if !ok {
		return ""
	}
	return f.Text()
}

func (e *Entry) setText(t record.Type, s string) {
	f, err := e.records.GetOrCreate(t)
	if err != nil {
		return
	}
	f.SetText(s)
}

func (e *Entry) when(t record.Type) time.Time {
	f, ok := e.records.Get(t)
	if !ok {
		return time.Time{}
	}
	tm, _ := f.Time()
	return tm
}

func (e *Entry) setWhen(t record.Type, tm time.Time) {
	f, err := e.records.GetOrCreate(t)
	if err != nil {
		return
	}
	f.SetTime(tm)
}

// Group is the entry's group path (e.g. "Email.Personal").
func (e *Entry) Group() string       { return e.text(record.Group) }
func (e *Entry) SetGroup(s string)   { e.setText(record.Group, s) }

// Title is the entry's display name.
func (e *Entry) Title() string     { return e.text(record.Title) }
func (e *Entry) SetTitle(s string) { e.setText(record.Title, s) }

// UserName is the account's login name.
func (e *Entry) UserName() string     { return e.text(record.UserName) }
func (e *Entry) SetUserName(s string) { e.setText(record.UserName, s) }

// Password is the account's secret.
func (e *Entry) Password() string     { return e.text(record.Password) }
func (e *Entry) SetPassword(s string) { e.setText(record.Password, s) }

// Notes is free-form entry text.
func (e *Entry) Notes() string     { return e.text(record.Notes) }
func (e *Entry) SetNotes(s string) { e.setText(record.Notes, s) }

// URL is the entry's associated web address.
func (e *Entry) URL() string     { return e.text(record.URL) }
func (e *Entry) SetURL(s string) { e.setText(record.URL, s) }

// Email is the entry's associated email address.
func (e *Entry) Email() string     { return e.text(record.EmailAddress) }
func (e *Entry) SetEmail(s string) { e.setText(record.EmailAddress, s) }

// CreationTime is when the entry was first created.
func (e *Entry) CreationTime() time.Time     { return e.when(record.CreationTime) }
func (e *Entry) SetCreationTime(t time.Time) { e.setWhen(record.CreationTime, t) }

// PasswordModificationTime is when the password was last changed.
func (e *Entry) PasswordModificationTime() time.Time { return e.when(record.PasswordModificationTime) }
func (e *Entry) SetPasswordModificationTime(t time.Time) {
	e.setWhen(record.PasswordModificationTime, t)
}

// LastAccessTime is when the entry was last read by the application.
func (e *Entry) LastAccessTime() time.Time     { return e.when(record.LastAccessTime) }
func (e *Entry) SetLastAccessTime(t time.Time) { e.setWhen(record.LastAccessTime, t) }

// PasswordExpiryTime is when the password should be considered stale.
func (e *Entry) PasswordExpiryTime() time.Time     { return e.when(record.PasswordExpiryTime) }
func (e *Entry) SetPasswordExpiryTime(t time.Time) { e.setWhen(record.PasswordExpiryTime, t) }

// LastModificationTime is when any field of the entry was last changed.
func (e *Entry) LastModificationTime() time.Time { return e.when(record.LastModificationTime) }
func (e *Entry) SetLastModificationTime(t time.Time) {
	e.setWhen(record.LastModificationTime, t)
}

// CreditCardNumber is the card number stored for this entry, if any.
func (e *Entry) CreditCardNumber() string     { return e.text(record.CreditCardNumber) }
func (e *Entry) SetCreditCardNumber(s string) { e.setText(record.CreditCardNumber, s) }

// CreditCardExpiration is the card's expiration, as entered (MM/YY etc).
func (e *Entry) CreditCardExpiration() string     { return e.text(record.CreditCardExpiration) }
func (e *Entry) SetCreditCardExpiration(s string) { e.setText(record.CreditCardExpiration, s) }

// CreditCardVerificationValue is the card's CVV/CVC.
func (e *Entry) CreditCardVerificationValue() string {
	return e.text(record.CreditCardVerificationValue)
}
func (e *Entry) SetCreditCardVerificationValue(s string) {
	e.setText(record.CreditCardVerificationValue, s)
}

// CreditCardPin is the card's PIN.
func (e *Entry) CreditCardPin() string     { return e.text(record.CreditCardPin) }
func (e *Entry) SetCreditCardPin(s string) { e.setText(record.CreditCardPin, s) }
