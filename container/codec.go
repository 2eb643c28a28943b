// Package container implements the Password Safe V3 authenticated byte
// stream: the tag-delimited, TwoFish-CBC-encrypted, HMAC-SHA-256-sealed
// container that a document's headers and entries are loaded from and
// saved to.
//
// The codec deals only in field.Field and the header/record EndOfEntry
// sentinels — it has no notion of HeaderCollection, EntryCollection, or
// Entry. Keeping that structure out of this package keeps the codec
// purely about bytes in, bytes out; the higher-level collections are
// assembled from its output one layer up.
package container

import (
	"bytes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"hash"
	"io"

	"github.com/aead/twofish"
	sha256simd "github.com/minio/sha256-simd"

	"github.com/mjlyons/pwsafe3/field"
	"github.com/mjlyons/pwsafe3/header"
	"github.com/mjlyons/pwsafe3/internal/wire"
	"github.com/mjlyons/pwsafe3/keysched"
	"github.com/mjlyons/pwsafe3/record"
)

// Loaded is the result of parsing and authenticating a V3 stream: the
// header fields in insertion order, one record-field slice per entry in
// document order, and the iteration count exactly as persisted (callers
// must not re-clamp it).
type Loaded struct {
	Headers    []field.Field
	Entries    [][]field.Field
	Iterations uint32
}

// Load authenticates and parses a V3 byte stream, deriving the body key
// from passphrase. It fails fast with a CryptoError before ever touching
// the encrypted body if the passphrase doesn't verify, and with a
// CryptoError (AuthenticationMismatch) if the decrypted body does not
// parse as field blocks or its HMAC doesn't match — so a wrong passphrase
// is rejected without reaching the MAC check.
func Load(r io.Reader, passphrase []byte) (*Loaded, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	n := len(buf)
	if n < minStreamLen {
		return nil, &FormatError{Kind: UnrecognizedFormat, Detail: "stream shorter than minimum container size"}
	}
	if wire.ReadU32(buf, 0) != tagPWS3 {
		return nil, &FormatError{Kind: UnrecognizedFormat, Detail: "missing leading PWS3 tag"}
	}

	trailerOff := n - trailerSize
	if wire.ReadU32(buf, trailerOff) != tagPWS3 ||
		wire.ReadU32(buf, trailerOff+4) != tagEOF ||
		wire.ReadU32(buf, trailerOff+8) != tagPWS3 ||
		wire.ReadU32(buf, trailerOff+12) != tagEOF {
		return nil, &FormatError{Kind: UnrecognizedFormat, Detail: "missing trailing PWS3-EOF! tag"}
	}

	salt := buf[4 : 4+saltSize]
	iter := wire.ReadU32(buf, 4+saltSize)
	var storedVerifier [keysched.KeySize]byte
	copy(storedVerifier[:], buf[40:72])
	wrappedOff := 72

	stretched, err := keysched.VerifyPassphrase(passphrase, salt, iter, storedVerifier)
	if err != nil {
		return nil, &CryptoError{Kind: PasswordMismatch}
	}
	defer wire.Zero(stretched[:])

	var wrappedK, wrappedL [keysched.KeySize]byte
	copy(wrappedK[:], buf[wrappedOff:wrappedOff+32])
	copy(wrappedL[:], buf[wrappedOff+32:wrappedOff+64])

	K, err := keysched.UnwrapKey(stretched, wrappedK)
	if err != nil {
		return nil, err
	}
	defer wire.Zero(K[:])
	L, err := keysched.UnwrapKey(stretched, wrappedL)
	if err != nil {
		return nil, err
	}
	defer wire.Zero(L[:])

	iv := buf[fixedHeaderSize-ivSize : fixedHeaderSize]
	cipherBody := buf[fixedHeaderSize:trailerOff]

	block, err := twofish.NewCipher(K[:])
	if err != nil {
		return nil, err
	}
	if len(cipherBody)%block.BlockSize() != 0 {
		return nil, &FormatError{Kind: UnrecognizedFormat, Detail: "ciphertext body is not block-aligned"}
	}
	plain := make([]byte, len(cipherBody))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, cipherBody)
	defer wire.Zero(plain)

	mac := hmac.New(sha256simd.New, L[:])

	pos := 0
	var headers []field.Field
	for {
		f, adv, err := readFieldBlock(plain, pos, mac)
		if err != nil {
			// A body that does not parse cannot authenticate.
			return nil, &CryptoError{Kind: AuthenticationMismatch}
		}
		pos += adv
		if header.Type(f.TypeCode()) == header.EndOfEntry {
			break
		}
		headers = append(headers, f)
	}
	if len(headers) == 0 || header.Type(headers[0].TypeCode()) != header.Version {
		return nil, &FormatError{Kind: UnsupportedVersion, Detail: "first header field is not Version"}
	}
	ver, verErr := headers[0].Version()
	if verErr != nil || ver < 0x0300 {
		return nil, &FormatError{Kind: UnsupportedVersion, Detail: "version below 0x0300"}
	}

	var entries [][]field.Field
	var cur []field.Field
	for pos < len(plain) {
		f, adv, err := readFieldBlock(plain, pos, mac)
		if err != nil {
			return nil, &CryptoError{Kind: AuthenticationMismatch}
		}
		pos += adv
		if record.Type(f.TypeCode()) == record.EndOfEntry {
			entries = append(entries, cur)
			cur = nil
			continue
		}
		cur = append(cur, f)
	}
	if len(cur) > 0 {
		entries = append(entries, cur)
	}

	if !hmac.Equal(mac.Sum(nil), buf[n-macSize:]) {
		return nil, &CryptoError{Kind: AuthenticationMismatch}
	}

	return &Loaded{Headers: headers, Entries: entries, Iterations: iter}, nil
}

// readFieldBlock parses one field block at plain[pos:], feeding its
// value bytes (and only its value bytes, per the format's historical
// HMAC-over-values-only quirk) into mac. It returns the parsed field and
// the number of bytes the block occupied on the wire.
func readFieldBlock(plain []byte, pos int, mac hash.Hash) (field.Field, int, error) {
	if pos+5 > len(plain) {
		return field.Field{}, 0, &FormatError{Kind: UnrecognizedFormat, Detail: "truncated field header"}
	}
	length := int(wire.ReadU32(plain, pos))
	if length < 0 {
		return field.Field{}, 0, &FormatError{Kind: UnrecognizedFormat, Detail: "negative field length"}
	}
	typeCode := plain[pos+4]
	blockSize := wire.BlockSize(length)
	if pos+blockSize > len(plain) {
		return field.Field{}, 0, &FormatError{Kind: UnrecognizedFormat, Detail: "truncated field value"}
	}
	value := plain[pos+5 : pos+5+length]
	mac.Write(value)
	return field.New(typeCode, value), blockSize, nil
}

// Save emits a fresh V3 byte stream for headers and entries' records,
// sealed under a freshly generated salt, K, L, and IV. The passphrase
// used to derive the stretch key is passed in directly (the caller's
// copy) and is never modified or retained by this function.
func Save(w io.Writer, headers []field.Field, entries [][]field.Field, passphrase []byte, opts Options) error {
	iterations := opts.clampedIterations()

	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return err
	}
	stretched := keysched.Stretch(passphrase, salt[:], iterations)
	defer wire.Zero(stretched[:])
	verifier := keysched.Verifier(stretched)

	var K, L [keysched.KeySize]byte
	if _, err := rand.Read(K[:]); err != nil {
		return err
	}
	if _, err := rand.Read(L[:]); err != nil {
		return err
	}
	defer wire.Zero(K[:])
	defer wire.Zero(L[:])

	wrappedK, err := keysched.WrapKey(stretched, K)
	if err != nil {
		return err
	}
	wrappedL, err := keysched.WrapKey(stretched, L)
	if err != nil {
		return err
	}

	var iv [ivSize]byte
	if _, err := rand.Read(iv[:]); err != nil {
		return err
	}

	block, err := twofish.NewCipher(K[:])
	if err != nil {
		return err
	}

	mac := hmac.New(sha256simd.New, L[:])

	var body bytes.Buffer
	for _, f := range headers {
		if err := writeFieldBlock(&body, f, mac); err != nil {
			return err
		}
	}
	if err := writeFieldBlock(&body, field.New(byte(header.EndOfEntry), nil), mac); err != nil {
		return err
	}
	for _, recs := range entries {
		for _, f := range recs {
			if err := writeFieldBlock(&body, f, mac); err != nil {
				return err
			}
		}
		if err := writeFieldBlock(&body, field.New(byte(record.EndOfEntry), nil), mac); err != nil {
			return err
		}
	}

	plain := body.Bytes()
	defer wire.Zero(plain)
	if len(plain)%block.BlockSize() != 0 {
		return &FormatError{Kind: UnrecognizedFormat, Detail: "assembled body is not block-aligned"}
	}
	cipherBody := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(cipherBody, plain)
	defer wire.Zero(cipherBody)

	out := make([]byte, 0, fixedHeaderSize+len(cipherBody)+trailerSize)
	head := make([]byte, 4)
	wire.PutU32(head, 0, tagPWS3)
	out = append(out, head...)
	out = append(out, salt[:]...)
	iterBuf := make([]byte, 4)
	wire.PutU32(iterBuf, 0, iterations)
	out = append(out, iterBuf...)
	out = append(out, verifier[:]...)
	out = append(out, wrappedK[:]...)
	out = append(out, wrappedL[:]...)
	out = append(out, iv[:]...)
	out = append(out, cipherBody...)

	trailer := make([]byte, 16)
	wire.PutU32(trailer, 0, tagPWS3)
	wire.PutU32(trailer, 4, tagEOF)
	wire.PutU32(trailer, 8, tagPWS3)
	wire.PutU32(trailer, 12, tagEOF)
	out = append(out, trailer...)
	out = append(out, mac.Sum(nil)...)

	_, err = w.Write(out)
	return err
}

// writeFieldBlock emits one field's length|type|value|pad block, feeding
// only its value bytes into mac.
func writeFieldBlock(body *bytes.Buffer, f field.Field, mac hash.Hash) error {
	value := f.Raw()
	length := len(value)
	head := make([]byte, 5)
	wire.PutU32(head, 0, uint32(length))
	head[4] = f.TypeCode()
	body.Write(head)
	body.Write(value)
	mac.Write(value)

	pad := make([]byte, wire.PadLen(length))
	if len(pad) > 0 {
		if _, err := rand.Read(pad); err != nil {
			return err
		}
	}
	body.Write(pad)
	return nil
}

