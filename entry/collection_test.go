package entry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjlyons/pwsafe3/record"
)

type fakeOwner struct {
	changed  int
	readOnly bool
}

func (o *fakeOwner) MarkChanged()   { o.changed++ }
func (o *fakeOwner) ReadOnly() bool { return o.readOnly }
func (o *fakeOwner) Fold(s string) string { return strings.ToLower(s) }

func TestAddAndContains(t *testing.T) {
	owner := &fakeOwner{}
	c := NewCollection(owner)
	e := NewWithTitle("GMail")
	require.NoError(t, c.Add(e))
	require.True(t, c.Contains("gmail"))
	require.Equal(t, e, c.EntryOrNil("GMAIL"))
}

func TestAddAlreadyOwned(t *testing.T) {
	c1 := NewCollection(&fakeOwner{})
	c2 := NewCollection(&fakeOwner{})
	e := NewWithTitle("x")
	require.NoError(t, c1.Add(e))
	require.ErrorIs(t, c2.Add(e), ErrAlreadyOwned)
}

func TestByTitleAutoCreatesWhenMutable(t *testing.T) {
	c := NewCollection(&fakeOwner{})
	require.Equal(t, 0, c.Len())
	e := c.ByTitle("new one")
	require.Equal(t, 1, c.Len())
	require.Equal(t, "new one", e.Title())
}

func TestByTitleReadOnlyReturnsDummy(t *testing.T) {
	c := NewCollection(&fakeOwner{readOnly: true})
	e := c.ByTitle("ghost")
	require.Equal(t, 0, c.Len())
	require.True(t, e.ReadOnly())
	require.Equal(t, "ghost", e.Title())
}

func TestByGroupTitleReadOnlyReturnsDummy(t *testing.T) {
	c := NewCollection(&fakeOwner{readOnly: true})
	e := c.ByGroupTitle("Email", "ghost")
	require.Equal(t, 0, c.Len())
	require.True(t, e.ReadOnly())
	require.Equal(t, "Email", e.Group())
	require.Equal(t, "ghost", e.Title())
}

func TestSetByTitleOnlyNoneSupported(t *testing.T) {
	c := NewCollection(&fakeOwner{})
	require.NoError(t, c.Add(NewWithTitle("a")))
	require.ErrorIs(t, c.SetByTitle("a", false), ErrOnlyNoneSupported)
	require.NoError(t, c.SetByTitle("a", true))
	require.False(t, c.Contains("a"))
}

func TestSortByGroupThenTitle(t *testing.T) {
	c := NewCollection(&fakeOwner{})
	b := NewWithTitle("banana")
	a := NewWithTitle("apple")
	a.SetGroup("fruit")
	b.SetGroup("fruit")
	require.NoError(t, c.Add(b))
	require.NoError(t, c.Add(a))
	c.Sort()
	all := c.All()
	require.Equal(t, "apple", all[0].Title())
	require.Equal(t, "banana", all[1].Title())
}

func TestRecordByGroupTitle(t *testing.T) {
	c := NewCollection(&fakeOwner{})
	e := NewWithTitle("gmail")
	e.SetGroup("Email")
	e.SetUserName("a@b")
	require.NoError(t, c.Add(e))

	got, ok := c.RecordByGroupTitle("email", "GMAIL", record.UserName)
	require.True(t, ok)
	require.Equal(t, "a@b", got)

	_, ok = c.RecordByGroupTitle("other", "gmail", record.UserName)
	require.False(t, ok)
}

func TestRemoveRecordByGroupTitleDoesNotCreateEntry(t *testing.T) {
	c := NewCollection(&fakeOwner{})
	require.NoError(t, c.RemoveRecordByGroupTitle("missing", "missing", record.UserName))
	require.Equal(t, 0, c.Len())

	e := NewWithTitle("gmail")
	e.SetGroup("Email")
	e.SetUserName("a@b")
	require.NoError(t, c.Add(e))

	require.NoError(t, c.RemoveRecordByGroupTitle("Email", "gmail", record.UserName))
	_, ok := c.RecordByGroupTitle("Email", "gmail", record.UserName)
	require.False(t, ok)
}

func TestIterationSnapshot(t *testing.T) {
	c := NewCollection(&fakeOwner{})
	require.NoError(t, c.Add(NewWithTitle("one")))
	require.NoError(t, c.Add(NewWithTitle("two")))

	snap := c.All()
	require.NoError(t, c.Add(NewWithTitle("three")))
	require.Len(t, snap, 2)
	require.Equal(t, 3, c.Len())
}
