// Package field implements Field, the typed view over a raw byte payload
// tagged by a header or record type code that every Password Safe V3
// field — header and record alike — is built from.
package field

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mjlyons/pwsafe3/internal/wire"
)

// Field is a (type code, raw payload) pair plus typed accessors over the
// payload. The raw bytes are canonical: a typed read interprets them, and
// a typed write replaces them with the canonical encoding for that type.
//
// Field has value semantics; it does not know about the collection (if
// any) that holds it. Collections are responsible for calling back into
// their owning document's change-tracking hook on mutation.
type Field struct {
	typeCode byte
	raw      []byte
}

// New constructs a Field from an explicit type code and raw payload. The
// payload is copied so the caller's slice can be reused or discarded.
func New(typeCode byte, raw []byte) Field {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Field{typeCode: typeCode, raw: cp}
}

// TypeCode returns the field's type tag.
func (f Field) TypeCode() byte { return f.typeCode }

// Raw returns the canonical byte payload. The returned slice must not be
// mutated by the caller.
func (f Field) Raw() []byte { return f.raw }

// Len returns len(Raw()).
func (f Field) Len() int { return len(f.raw) }

// Text reads the payload as UTF-8 text. Password Safe V3 text fields
// carry no byte-order mark, and the raw bytes already are the UTF-8
// encoding, so this is a direct conversion.
func (f Field) Text() string { return string(f.raw) }

// SetText replaces the payload with the UTF-8 encoding of s.
func (f *Field) SetText(s string) { f.raw = []byte(s) }

// Time reads the payload as a little-endian unix-seconds timestamp. A
// zero-width or all-zero payload means "unset" and reads back as the
// zero time.Time in UTC. A payload of any width other than 0 or 4 is a
// format error.
func (f Field) Time() (time.Time, error) {
	if len(f.raw) == 0 {
		return time.Time{}, nil
	}
	if len(f.raw) != 4 {
		return time.Time{}, wire.ErrBadWidth
	}
	secs := wire.ReadU32(f.raw, 0)
	if secs == 0 {
		return time.Time{}, nil
	}
	return time.Unix(int64(secs), 0).UTC(), nil
}

// SetTime replaces the payload with the little-endian unix-seconds
// encoding of t. The zero time.Time encodes as 0 ("unset"). A non-zero t
// outside the range a uint32 seconds count can hold (before 1970, or
// after 2106-02-07) is clamped to the nearest representable second rather
// than silently wrapping around.
func (f *Field) SetTime(t time.Time) {
	buf := make([]byte, 4)
	if !t.IsZero() {
		secs := t.UTC().Unix()
		switch {
		case secs <= 0:
			secs = 1
		case secs > int64(math.MaxUint32):
			secs = int64(math.MaxUint32)
		}
		wire.PutU32(buf, 0, uint32(secs))
	}
	f.raw = buf
}

// Uuid reads the payload as a 16-byte UUID in its raw on-disk layout (no
// endianness swap — big-endian platforms must not reorder these bytes).
func (f Field) Uuid() (uuid.UUID, error) {
	if len(f.raw) != 16 {
		return uuid.UUID{}, wire.ErrBadWidth
	}
	var id uuid.UUID
	copy(id[:], f.raw)
	return id, nil
}

// SetUuid replaces the payload with the 16 raw bytes of id.
func (f *Field) SetUuid(id uuid.UUID) {
	buf := make([]byte, 16)
	copy(buf, id[:])
	f.raw = buf
}

// Version reads the payload as a little-endian uint16.
func (f Field) Version() (uint16, error) {
	if len(f.raw) != 2 {
		return 0, wire.ErrBadWidth
	}
	return wire.ReadU16(f.raw, 0), nil
}

// SetVersion replaces the payload with the little-endian encoding of v.
func (f *Field) SetVersion(v uint16) {
	buf := make([]byte, 2)
	wire.PutU16(buf, 0, v)
	f.raw = buf
}

// Uint32 reads the payload as a little-endian uint32.
func (f Field) Uint32() (uint32, error) {
	if len(f.raw) != 4 {
		return 0, wire.ErrBadWidth
	}
	return wire.ReadU32(f.raw, 0), nil
}

// SetUint32 replaces the payload with the little-endian encoding of v.
func (f *Field) SetUint32(v uint32) {
	buf := make([]byte, 4)
	wire.PutU32(buf, 0, v)
	f.raw = buf
}

// Bytes returns a copy of the raw payload.
func (f Field) Bytes() []byte {
	cp := make([]byte, len(f.raw))
	copy(cp, f.raw)
	return cp
}

// SetBytes replaces the payload with a copy of b.
func (f *Field) SetBytes(b []byte) {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.raw = cp
}
