package pwsafe

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mjlyons/pwsafe3/container"
	"github.com/mjlyons/pwsafe3/entry"
)

func TestNewDocumentDefaults(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, uint16(container.DefaultVersion), d.Version())
	require.NotEqual(t, uuid.Nil, d.Uuid())
	require.Equal(t, 0, d.Entries().Len())
	require.True(t, d.TrackAccess())
	require.True(t, d.TrackModify())
	require.False(t, d.ReadOnly())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)

	e := entry.NewWithTitle("gmail")
	e.SetUserName("a@b")
	e.SetPassword("p!")
	require.NoError(t, d.Entries().Add(e))

	var buf bytes.Buffer
	require.NoError(t, d.Save(&buf))
	require.False(t, d.HasChanged())

	loaded, err := Load(bytes.NewReader(buf.Bytes()), []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Entries().Len())

	got, err := loaded.Entries().At(0)
	require.NoError(t, err)
	require.Equal(t, "gmail", got.Title())
	require.Equal(t, "a@b", got.UserName())
	require.Equal(t, "p!", got.Password())

	require.NotEmpty(t, loaded.LastSaveApp())
}

func TestDocumentRoundTripIdentityAfterReSave(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)
	e := entry.NewWithTitle("bank")
	require.NoError(t, d.Entries().Add(e))

	var buf1 bytes.Buffer
	require.NoError(t, d.Save(&buf1))

	loaded, err := Load(bytes.NewReader(buf1.Bytes()), []byte("hunter2"))
	require.NoError(t, err)

	var buf2 bytes.Buffer
	require.NoError(t, loaded.Save(&buf2))

	// B and B' are not byte-identical (fresh salt/K/L/IV/pad), but
	// loading either reproduces the same logical document.
	require.NotEqual(t, buf1.Bytes(), buf2.Bytes())

	reloaded, err := Load(bytes.NewReader(buf2.Bytes()), []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Entries().Len())
	got, err := reloaded.Entries().At(0)
	require.NoError(t, err)
	require.Equal(t, "bank", got.Title())
}

func TestIterationsClampOnSave(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)
	d.SetIterations(10)
	require.Equal(t, uint32(10), d.Iterations())

	var buf bytes.Buffer
	require.NoError(t, d.Save(&buf))

	loaded, err := Load(bytes.NewReader(buf.Bytes()), []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, uint32(container.MinIterations), loaded.Iterations())
}

func TestLoadWrongPassphraseFails(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, d.Save(&buf))

	_, err = Load(bytes.NewReader(buf.Bytes()), []byte("wrong"))
	require.Error(t, err)
}

func TestReadOnlyEntriesReturnsDetachedDummy(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)
	d.SetReadOnly(true)

	before := d.Entries().Len()
	got := d.Entries().ByTitle("ghost")
	require.Equal(t, "ghost", got.Title())
	require.Equal(t, before, d.Entries().Len())
}

func TestDisposeZeroizesPassphrase(t *testing.T) {
	d, err := NewDocument([]byte("hunter2"))
	require.NoError(t, err)
	d.Dispose()
	_, err = d.passphrase.Get()
	require.Error(t, err)
}
