package pwsafe

import (
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// newFolder builds the case-folding function an EntryCollection uses for
// title/group comparison. The default is locale-sensitive, following the
// process's LC_ALL/LANG environment exactly as a CLI tool reading the
// current user's locale would; CollationInvariant switches to
// language.Und so comparison is stable across machines and locales.
func newFolder(invariant bool) func(string) string {
	tag := language.Und
	if !invariant {
		tag = processLocale()
	}
	c := cases.Lower(tag)
	return func(s string) string { return c.String(s) }
}

// processLocale reads LC_ALL then LANG, stripping any encoding suffix
// (e.g. "en_US.UTF-8" -> "en_US") and converting the POSIX underscore
// separator to the BCP-47 hyphen before parsing. It falls back to
// language.Und if neither variable is set or parses.
func processLocale() language.Tag {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		v = strings.SplitN(v, ".", 2)[0]
		v = strings.ReplaceAll(v, "_", "-")
		if tag, err := language.Parse(v); err == nil {
			return tag
		}
	}
	return language.Und
}
