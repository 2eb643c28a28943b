package autotype

import "strings"

// FieldSource supplies the entry fields the bound tokenizer expands
// UserName/Password/Group/Title/Url/Email/CreditCard* commands and the
// Notes escape against. entry.Entry satisfies this interface.
type FieldSource interface {
	UserName() string
	Password() string
	Group() string
	Title() string
	URL() string
	Email() string
	Notes() string
	CreditCardNumber() string
	CreditCardExpiration() string
	CreditCardVerificationValue() string
	CreditCardPin() string
}

// TokenizeBound parses text with Tokenize, then expands every field
// command into per-character Key tokens drawn from src.
// TwoFactorCode/Delay/Wait/Legacy commands pass through unexpanded, since
// they describe timing/client behavior rather than entry data.
func TokenizeBound(text string, src FieldSource) []Token {
	base := Tokenize(text)
	out := make([]Token, 0, len(base))
	for _, tok := range base {
		if tok.Kind == KeyToken {
			out = append(out, tok)
			continue
		}
		out = append(out, expandCommand(tok, src)...)
	}
	return out
}

func expandCommand(tok Token, src FieldSource) []Token {
	switch {
	case tok.Value == "UserName":
		return expandKeys(src.UserName())
	case tok.Value == "Password":
		return expandKeys(src.Password())
	case tok.Value == "Group":
		return expandKeys(src.Group())
	case tok.Value == "Title":
		return expandKeys(src.Title())
	case tok.Value == "Url":
		return expandKeys(src.URL())
	case tok.Value == "Email":
		return expandKeys(src.Email())
	case tok.Value == "CreditCardNumber":
		return expandKeys(src.CreditCardNumber())
	case tok.Value == "CreditCardExpiration":
		return expandKeys(src.CreditCardExpiration())
	case tok.Value == "CreditCardVerification":
		return expandKeys(src.CreditCardVerificationValue())
	case tok.Value == "CreditCardPin":
		return expandKeys(src.CreditCardPin())
	case tok.Value == "Notes" || strings.HasPrefix(tok.Value, "Notes:"):
		return expandNotesCommand(tok.Value, src.Notes())
	default:
		// TwoFactorCode, Delay:N, Wait:N, Legacy, and any forward-compat
		// command we don't recognize: pass through untouched.
		return []Token{tok}
	}
}

func expandNotesCommand(cmd, notes string) []Token {
	normalized := strings.ReplaceAll(strings.ReplaceAll(notes, "\r\n", "\n"), "\r", "\n")
	if cmd == "Notes" {
		return expandKeys(normalized)
	}

	n, ok := parseNotesLine(cmd)
	if !ok {
		return nil
	}
	lines := strings.Split(normalized, "\n")
	if n < 1 || n > len(lines) {
		return nil
	}
	return expandKeys(lines[n-1])
}

func parseNotesLine(cmd string) (int, bool) {
	const prefix = "Notes:"
	if !strings.HasPrefix(cmd, prefix) {
		return 0, false
	}
	numStr := cmd[len(prefix):]
	n := 0
	for _, r := range numStr {
		if !isDigit(r) {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if numStr == "" {
		return 0, false
	}
	return n, true
}

// sendKeysMeta are the send-keys syntax characters that must be
// individually bracketed so a downstream keystroke-sending API doesn't
// misinterpret them as its own escape syntax.
var sendKeysMeta = map[rune]bool{
	'+': true, '^': true, '%': true, '~': true,
	'(': true, ')': true, '{': true, '}': true,
	'[': true, ']': true,
}

// expandKeys turns a raw field value into one Key token per character,
// mapping send-keys meta-characters to bracketed literals and control
// characters (backspace/tab/CR/LF) to their symbolic key names.
func expandKeys(s string) []Token {
	out := make([]Token, 0, len(s))
	for _, r := range s {
		switch {
		case sendKeysMeta[r]:
			out = append(out, Key("{"+string(r)+"}"))
		case r == '\b':
			out = append(out, Key("{Backspace}"))
		case r == '\n', r == '\r':
			out = append(out, Key("{Enter}"))
		case r == '\t':
			out = append(out, Key("{Tab}"))
		default:
			out = append(out, Key(string(r)))
		}
	}
	return out
}
