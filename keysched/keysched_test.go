package keysched

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStretchDeterministic(t *testing.T) {
	salt := make([]byte, 32)
	for i := range salt {
		salt[i] = byte(i)
	}
	a := Stretch([]byte("hunter2"), salt, 2048)
	b := Stretch([]byte("hunter2"), salt, 2048)
	require.Equal(t, a, b)

	c := Stretch([]byte("different"), salt, 2048)
	require.NotEqual(t, a, c)
}

func TestVerifyPassphrase(t *testing.T) {
	salt := make([]byte, 32)
	stretched := Stretch([]byte("hunter2"), salt, 2048)
	verifier := Verifier(stretched)

	got, err := VerifyPassphrase([]byte("hunter2"), salt, 2048, verifier)
	require.NoError(t, err)
	require.Equal(t, stretched, got)

	_, err = VerifyPassphrase([]byte("wrong"), salt, 2048, verifier)
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestWrapUnwrapKeyRoundTrip(t *testing.T) {
	var stretched, key [KeySize]byte
	for i := range stretched {
		stretched[i] = byte(i)
	}
	for i := range key {
		key[i] = byte(255 - i)
	}

	wrapped, err := WrapKey(stretched, key)
	require.NoError(t, err)
	require.NotEqual(t, key, wrapped)

	got, err := UnwrapKey(stretched, wrapped)
	require.NoError(t, err)
	require.Equal(t, key, got)
}
