// Package keysched implements the Password Safe V3 key schedule: turning
// a passphrase and salt into the stretched key used for passphrase
// verification, and wrapping/unwrapping the per-file K and L keys under
// it with TwoFish-256-ECB.
//
// This is not PBKDF2 — it is a plain iterated SHA-256 over a pre-hashed
// seed, exactly as the format requires. The hashing is done with
// minio/sha256-simd rather than crypto/sha256: it's a drop-in,
// SIMD-accelerated hash.Hash implementation, useful here since the
// format's iterated-hash stretch (a minimum of 2048 rounds, often
// configured far higher for slower verification) is performance
// sensitive.
package keysched

import (
	"crypto/cipher"
	"errors"

	"github.com/aead/twofish"
	sha256simd "github.com/minio/sha256-simd"

	"github.com/mjlyons/pwsafe3/internal/wire"
)

// KeySize is the width, in bytes, of the stretched key and of each of K
// and L.
const KeySize = 32

// ErrPasswordMismatch is returned by VerifyPassphrase when the derived
// stretched key does not reproduce the stored verifier hash.
var ErrPasswordMismatch = errors.New("keysched: password mismatch")

// Stretch derives the stretched key from passphrase and salt, iterating
// SHA-256 `iterations` times over the seed hash SHA256(passphrase||salt).
func Stretch(passphrase, salt []byte, iterations uint32) [KeySize]byte {
	h := sha256simd.New()
	h.Write(passphrase)
	h.Write(salt)
	var cur [KeySize]byte
	copy(cur[:], h.Sum(nil))

	for i := uint32(0); i < iterations; i++ {
		h.Reset()
		h.Write(cur[:])
		copy(cur[:], h.Sum(nil))
	}
	return cur
}

// Verifier returns SHA256(stretched), the value stored on disk so a
// future load can check a candidate passphrase without unwrapping K/L.
func Verifier(stretched [KeySize]byte) [KeySize]byte {
	h := sha256simd.Sum256(stretched[:])
	return h
}

// VerifyPassphrase derives the stretched key for passphrase/salt/iterations
// and checks it against the persisted verifier. On success it returns the
// stretched key for use unwrapping K and L; on mismatch it returns
// ErrPasswordMismatch and a zeroed key.
func VerifyPassphrase(passphrase, salt []byte, iterations uint32, verifier [KeySize]byte) ([KeySize]byte, error) {
	stretched := Stretch(passphrase, salt, iterations)
	if Verifier(stretched) != verifier {
		wire.Zero(stretched[:])
		return [KeySize]byte{}, ErrPasswordMismatch
	}
	return stretched, nil
}

// WrapKey encrypts key under stretched using TwoFish-256 in ECB mode (two
// independent 16-byte block encryptions — no chaining, by format
// definition).
func WrapKey(stretched, key [KeySize]byte) ([KeySize]byte, error) {
	block, err := twofish.NewCipher(stretched[:])
	if err != nil {
		return [KeySize]byte{}, err
	}
	var out [KeySize]byte
	ecbCrypt(block, out[:], key[:], block.Encrypt)
	return out, nil
}

// UnwrapKey decrypts a wrapped key under stretched using TwoFish-256-ECB.
func UnwrapKey(stretched, wrapped [KeySize]byte) ([KeySize]byte, error) {
	block, err := twofish.NewCipher(stretched[:])
	if err != nil {
		return [KeySize]byte{}, err
	}
	var out [KeySize]byte
	ecbCrypt(block, out[:], wrapped[:], block.Decrypt)
	return out, nil
}

// ecbCrypt applies op (Encrypt or Decrypt) to src one cipher.Block.BlockSize()
// block at a time, writing into dst. crypto/cipher deliberately doesn't
// ship an ECB mode (it's unsafe for bulk data), but the V3 key wrap is
// exactly two independent block operations, which is what ECB is for.
func ecbCrypt(block cipher.Block, dst, src []byte, op func(dst, src []byte)) {
	bs := block.BlockSize()
	for off := 0; off < len(src); off += bs {
		op(dst[off:off+bs], src[off:off+bs])
	}
}
