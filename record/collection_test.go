package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjlyons/pwsafe3/field"
)

type fakeOwner struct {
	changed  int
	readOnly bool
}

func (o *fakeOwner) MarkChanged()  { o.changed++ }
func (o *fakeOwner) ReadOnly() bool { return o.readOnly }

func TestCollectionUniquePerType(t *testing.T) {
	c := New(nil)
	f1 := field.New(byte(Title), nil)
	f1.SetText("gmail")
	require.NoError(t, c.Set(Title, f1))

	f2 := field.New(byte(Title), nil)
	f2.SetText("gmail-renamed")
	require.NoError(t, c.Set(Title, f2))

	require.Equal(t, 1, c.Len())
	got, _ := c.Get(Title)
	require.Equal(t, "gmail-renamed", got.Text())
}

func TestGetOrCreateAutoAppends(t *testing.T) {
	owner := &fakeOwner{}
	c := New(owner)
	f, err := c.GetOrCreate(Notes)
	require.NoError(t, err)
	f.SetText("hello")
	got, ok := c.Get(Notes)
	require.True(t, ok)
	require.Equal(t, "hello", got.Text())
	require.Equal(t, 1, owner.changed)
}

func TestReadOnlyCollection(t *testing.T) {
	c := New(&fakeOwner{readOnly: true})
	require.ErrorIs(t, c.Set(Title, field.New(byte(Title), nil)), ErrReadOnly)
	require.ErrorIs(t, c.Remove(Title), ErrReadOnly)
	_, err := c.GetOrCreate(Title)
	require.ErrorIs(t, err, ErrReadOnly)
}
