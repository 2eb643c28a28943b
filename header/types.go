package header

// Type is a header field type code, as carried in the first plaintext
// header group of a Password Safe V3 stream.
type Type byte

// Defined header type codes. These are a closed enumeration — an unknown
// code encountered while parsing is preserved (not rejected), since the
// format allows forward-compatible extension fields, but no symbolic name
// exists for it beyond its raw Type value.
const (
	Version               Type = 0x00
	UUID                  Type = 0x01
	NonDefaultPreferences Type = 0x02
	TreeDisplayStatus     Type = 0x03
	TimestampOfLastSave   Type = 0x04
	WhatPerformedLastSave Type = 0x05
	LastSavedByUser       Type = 0x06
	LastSavedOnHost       Type = 0x07
	DatabaseName          Type = 0x08
	DatabaseDescription   Type = 0x09
	DatabaseFilters       Type = 0x0A
	RecentlyUsedEntries   Type = 0x0F
	NamedPasswordPolicies Type = 0x10
	EmptyGroups           Type = 0x11
	YubicoKey             Type = 0x12

	// EndOfEntry is the sentinel that terminates the header group.
	EndOfEntry Type = 0xFF
)
