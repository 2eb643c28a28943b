// Package secret implements the passphrase custody a Document holds for
// its lifetime: the passphrase is kept obfuscated at rest rather than in
// the clear.
//
// Some password-database clients call out to a platform-provided
// current-user protection facility (Windows DPAPI and equivalents) for
// this. That facility is an external collaborator referenced only by
// interface, out of scope for this library, and Go has no portable,
// dependency-free equivalent across platforms. Implementations on
// platforms without a per-user protection facility are expected to
// substitute an equivalent mechanism and document the weaker threat
// model; Custody instead seals the
// passphrase with an AEAD cipher keyed by process-local random material
// generated fresh on every Set. This defends against the easy cases —
// the plaintext passphrase sitting in a heap dump, a core file, or a
// debugger's memory view of an unrelated structure — but not against an
// attacker who can read this process's memory wholesale: without an
// OS-backed secret store there is nowhere else to put the unwrapping key.
package secret

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/mjlyons/pwsafe3/internal/wire"
)

// ErrNotSet is returned by Get when no passphrase has been stored yet.
var ErrNotSet = errors.New("secret: no passphrase set")

// Custody holds a passphrase obfuscated at rest.
type Custody struct {
	entropy    [16]byte
	key        [chacha20poly1305.KeySize]byte
	nonce      [chacha20poly1305.NonceSizeX]byte
	ciphertext []byte
	set        bool
}

// New returns an empty Custody holding no passphrase.
func New() *Custody { return &Custody{} }

// Set seals plaintext into the Custody and zeroizes plaintext on every
// return path, success or failure. The caller's own copy of the
// passphrase (if it kept one upstream of this call) is unaffected — only
// this argument buffer is cleared.
func (c *Custody) Set(plaintext []byte) error {
	defer wire.Zero(plaintext)

	if _, err := rand.Read(c.entropy[:]); err != nil {
		return err
	}
	if _, err := rand.Read(c.key[:]); err != nil {
		return err
	}
	if _, err := rand.Read(c.nonce[:]); err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return err
	}
	c.ciphertext = aead.Seal(nil, c.nonce[:], plaintext, c.entropy[:])
	c.set = true
	return nil
}

// Get decrypts and returns a fresh plaintext buffer. The caller is
// responsible for zeroizing the returned slice once done with it.
func (c *Custody) Get() ([]byte, error) {
	if !c.set {
		return nil, ErrNotSet
	}
	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, c.nonce[:], c.ciphertext, c.entropy[:])
}

// Clear zeroizes every buffer Custody holds (ciphertext, key, nonce,
// entropy) and marks it unset. Safe to call more than once.
func (c *Custody) Clear() {
	wire.Zero(c.ciphertext)
	wire.Zero(c.key[:])
	wire.Zero(c.nonce[:])
	wire.Zero(c.entropy[:])
	c.ciphertext = nil
	c.set = false
}
