package autotype

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjlyons/pwsafe3/entry"
)

func TestTokenizeEmptyScriptDefault(t *testing.T) {
	got := Tokenize("")
	want := []Token{
		Command("UserName"), Key("{Tab}"),
		Command("Password"), Key("{Tab}"),
		Key("{Enter}"),
	}
	require.Equal(t, want, got)
}

func TestTokenizeLiteralAndSymbolicKeys(t *testing.T) {
	got := Tokenize("ab\\tc\\n")
	want := []Token{
		Key("a"), Key("b"), Key("{Tab}"), Key("c"), Key("{Enter}"),
	}
	require.Equal(t, want, got)
}

func TestTokenizeTrailingBackslash(t *testing.T) {
	got := Tokenize("a\\")
	want := []Token{Key("a"), Key("\\")}
	require.Equal(t, got, want)
}

func TestTokenizeCreditCardEscapes(t *testing.T) {
	got := Tokenize("\\cn\\ce\\cv\\cp")
	want := []Token{
		Command("CreditCardNumber"),
		Command("CreditCardExpiration"),
		Command("CreditCardVerification"),
		Command("CreditCardPin"),
	}
	require.Equal(t, want, got)
}

func TestTokenizeCreditCardFallback(t *testing.T) {
	got := Tokenize("\\cx")
	want := []Token{Key("c"), Key("x")}
	require.Equal(t, want, got)
}

func TestTokenizeMandatoryNumberEscapes(t *testing.T) {
	got := Tokenize("\\d250\\w3\\W2")
	want := []Token{
		Command("Delay:250"),
		Command("Wait:3"),
		Command("Wait:2000"),
	}
	require.Equal(t, want, got)
}

func TestTokenizeMandatoryNumberFallback(t *testing.T) {
	got := Tokenize("\\dz")
	want := []Token{Key("d"), Key("z")}
	require.Equal(t, want, got)
}

func TestTokenizeOptionalNumberEscape(t *testing.T) {
	require.Equal(t, []Token{Command("Notes")}, Tokenize("\\o"))
	require.Equal(t, []Token{Command("Notes:12")}, Tokenize("\\o12"))
}

func TestTokenizeBoundWorkedExample(t *testing.T) {
	e := entry.New()
	e.SetUserName("x")
	e.SetPassword("y")

	got := TokenizeBound("\\u\\t\\p\\n", e)
	want := []Token{
		Key("x"), Key("{Tab}"), Key("y"), Key("{Enter}"),
	}
	require.Equal(t, want, got)
}

func TestTokenizeBoundExpandsMetaCharacters(t *testing.T) {
	e := entry.New()
	e.SetUserName("a+b{c}")

	got := TokenizeBound("\\u", e)
	want := []Token{
		Key("a"), Key("{+}"), Key("b"), Key("{{}"), Key("c"), Key("{}}"),
	}
	require.Equal(t, want, got)
}

func TestTokenizeBoundFullNotes(t *testing.T) {
	e := entry.New()
	e.SetNotes("line one\nline two")

	got := TokenizeBound("\\o", e)
	want := expandKeys("line one\nline two")
	require.Equal(t, want, got)
}

func TestTokenizeBoundSingleNotesLine(t *testing.T) {
	e := entry.New()
	e.SetNotes("line one\nline two")

	got := TokenizeBound("\\o2", e)
	want := expandKeys("line two")
	require.Equal(t, want, got)
}

func TestTokenizeBoundNotesLineOutOfRange(t *testing.T) {
	e := entry.New()
	e.SetNotes("only one line")

	got := TokenizeBound("\\o5", e)
	require.Empty(t, got)
}

func TestTokenizeBoundPassthroughCommands(t *testing.T) {
	e := entry.New()
	got := TokenizeBound("\\2\\d100\\z", e)
	want := []Token{
		Command("TwoFactorCode"),
		Command("Delay:100"),
		Command("Legacy"),
	}
	require.Equal(t, want, got)
}
