package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// SentinelLabel is the placeholder for users whose display name could not be
// resolved or came back empty. It carries the raw user id so moderators can
// still trace the account.
func SentinelLabel(id UserID) string {
	return fmt.Sprintf("No Username Was Found: %s", id)
}

// LabelFor builds a roster entry from a resolved display name. Names that
// are empty after trimming get the sentinel label; the directory accepts
// all-whitespace usernames and those would otherwise render as blank links.
func LabelFor(id UserID, name string) PlayerRef {
	if strings.TrimSpace(name) == "" {
		return PlayerRef{UserID: id, Label: SentinelLabel(id)}
	}
	return PlayerRef{UserID: id, Label: name}
}

// TitleCase normalizes map and mode strings for display ("brown town" ->
// "Brown Town").
func TitleCase(s string) string {
	return titler.String(s)
}

// Capitalize upper-cases only the first rune, the way lobby descriptions are
// shown.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
