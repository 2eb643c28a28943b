package wire

// BlockSize returns the total on-disk size, in bytes, of a plaintext field
// block whose value payload is valueLen bytes long.
//
// A field block is laid out as:
//
//	length: u32 LE | type: u8 | value: valueLen bytes | pad: random bytes
//
// The encoded length header is only 4 bytes, but the reference
// implementation treats the 1-byte type tag as a fifth byte of that
// header when computing how much padding to add, so the block is always
// padded up to the *next* 16-byte boundary and never ends exactly on one.
//
//	BlockSize(0)  = 16   (5 header bytes -> next boundary, 16)
//	BlockSize(11) = 32   (16 header+value bytes lands ON 16 -> bumped to 32)
//	BlockSize(12) = 32   (17 header+value bytes -> next boundary, 32)
func BlockSize(valueLen int) int {
	return (valueLen+5)/16*16 + 16
}

// PadLen returns the number of random padding bytes a field block of the
// given value length needs, i.e. BlockSize(valueLen) - 5 - valueLen.
func PadLen(valueLen int) int {
	return BlockSize(valueLen) - 5 - valueLen
}
