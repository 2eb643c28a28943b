// Package wire provides the little-endian binary primitives shared by the
// field, container, keysched, secret and root pwsafe packages:
// fixed-width get/put helpers, the field-block size function that
// Password Safe V3 uses to pad records up to 16-byte boundaries, and the
// Zero buffer scrubber.
package wire

import "encoding/binary"

// PutU16 writes v to b[off:off+2] in little-endian order.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes v to b[off:off+4] in little-endian order.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU16 reads a little-endian uint16 from b[off:off+2].
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a little-endian uint32 from b[off:off+4].
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}
