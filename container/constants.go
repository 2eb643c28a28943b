package container

// Bit-exact framing constants, little-endian on the wire.
const (
	tagPWS3 uint32 = 0x33535750
	tagEOF  uint32 = 0x464F452D

	saltSize = 32
	ivSize   = 16
	macSize  = 32

	// fixedHeaderSize is the byte count of everything before the start
	// of the ciphertext body: leading tag, salt, iter, verifier, wrapped
	// K, wrapped L, IV.
	fixedHeaderSize = 4 + saltSize + 4 + macSize + 32 + 32 + ivSize

	// trailerSize is the byte count of the four trailing tag words plus
	// the HMAC: this is also the gap between len(stream) and the end of
	// the ciphertext body.
	trailerSize = 16 + macSize

	minStreamLen = 200
)

// MinIterations is the minimum key-stretch iteration count Save will
// emit, regardless of what a caller requests.
const MinIterations = 2048

// DefaultVersion is the file-format version stamped into a new
// document's Version header.
const DefaultVersion = 0x030D

// LibraryName and LibraryVersion are stamped into the
// WhatPerformedLastSave header on every Document save that isn't
// read-only and has modification tracking enabled.
const (
	LibraryName    = "pwsafe3"
	LibraryVersion = "1.0"
)
