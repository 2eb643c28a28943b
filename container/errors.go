package container

import "fmt"

// FormatErrorKind distinguishes the structural defects Load can report.
//
// A mis-width typed field read (field.Field.Time/Uuid/Version/Uint32)
// is reported separately, as wire.ErrBadWidth: that error can surface
// from any typed accessor anywhere a Field is held, not only while
// parsing a stream through Load, so it isn't one of the kinds below.
type FormatErrorKind int

const (
	// UnrecognizedFormat means the stream is too short, its framing
	// tags (leading PWS3, trailing PWS3-EOF!) don't match, or its
	// ciphertext body is not a whole number of cipher blocks.
	UnrecognizedFormat FormatErrorKind = iota
	// UnsupportedVersion means the first header field isn't Version, or
	// its value is below 0x0300.
	UnsupportedVersion
)

func (k FormatErrorKind) String() string {
	switch k {
	case UnrecognizedFormat:
		return "UnrecognizedFormat"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	default:
		return "FormatError"
	}
}

// FormatError reports a structural defect in a V3 byte stream.
type FormatError struct {
	Kind   FormatErrorKind
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("container: %s: %s", e.Kind, e.Detail)
}

// CryptoErrorKind distinguishes the cryptographic failures Load can
// report.
type CryptoErrorKind int

const (
	// PasswordMismatch means the candidate passphrase didn't reproduce
	// the stored verifier hash. Reported before the body is touched.
	PasswordMismatch CryptoErrorKind = iota
	// AuthenticationMismatch means the decrypted body either did not
	// parse as a sequence of field blocks or its HMAC didn't match the
	// trailing stored tag.
	AuthenticationMismatch
)

func (k CryptoErrorKind) String() string {
	switch k {
	case PasswordMismatch:
		return "PasswordMismatch"
	case AuthenticationMismatch:
		return "AuthenticationMismatch"
	default:
		return "CryptoError"
	}
}

// CryptoError reports a cryptographic verification failure.
type CryptoError struct {
	Kind CryptoErrorKind
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("container: %s", e.Kind)
}
