// Package slug validates short identifiers used in file names, config keys
// and suite names.
//
// A slug is non-empty, uses only lowercase ASCII letters, digits, underscore
// and hyphen, and does not start with a hyphen. On Windows the reserved
// device names (con, prn, aux, nul, com0-com9, lpt0-lpt9) are also refused.
//
// Slugs are joined with one of SeparatorChars, never concatenated bare.
package slug

import (
	"fmt"
)

// SeparatorChars separate slugs when building names. None of them is a
// valid slug character.
const SeparatorChars = "/+."

// Kind classifies a BadSlugError.
type Kind int

const (
	BadCharacter Kind = iota
	BadFirstCharacter
	EmptySlug
	ForbiddenOnWindows
)

// BadSlugError describes why a string is not a slug.
type BadSlugError struct {
	Kind Kind
	// Char is the offending character for BadCharacter and BadFirstCharacter.
	Char rune
	// Name is the reserved name for ForbiddenOnWindows.
	Name string
}

func (e *BadSlugError) Error() string {
	switch e.Kind {
	case BadCharacter:
		return fmt.Sprintf("character %q (U+%04X) is not allowed", e.Char, e.Char)
	case BadFirstCharacter:
		return fmt.Sprintf("character %q (U+%04X) is not allowed as the first character", e.Char, e.Char)
	case EmptySlug:
		return "empty identifier (empty slug) not allowed"
	case ForbiddenOnWindows:
		return fmt.Sprintf("slug (name) %q is not allowed on Windows", e.Name)
	}
	return "invalid slug"
}

// Is matches any BadSlugError of the same kind, so callers can write
// errors.Is(err, &BadSlugError{Kind: EmptySlug}).
func (e *BadSlugError) Is(target error) bool {
	t, ok := target.(*BadSlugError)
	return ok && t.Kind == e.Kind
}

// Slug is a string that passed CheckSyntax.
type Slug string

// New checks s and returns it as a Slug.
func New(s string) (Slug, error) {
	if err := CheckSyntax(s); err != nil {
		return "", err
	}
	return Slug(s), nil
}

// String returns the slug text.
func (s Slug) String() string {
	return string(s)
}

// CheckSyntax returns nil if s is a valid slug.
func CheckSyntax(s string) error {
	if s == "" {
		return &BadSlugError{Kind: EmptySlug}
	}
	if s[0] == '-' {
		return &BadSlugError{Kind: BadFirstCharacter, Char: '-'}
	}
	for _, c := range s {
		if !validChar(c) {
			return &BadSlugError{Kind: BadCharacter, Char: c}
		}
	}
	return checkForbidden(s)
}

func validChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
