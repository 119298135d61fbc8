package slug

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Good(t *testing.T) {
	for _, s := range []string{"a", "tor1-aes128-sha1", "z9", "_", "a-b_c", "0"} {
		got, err := New(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.String())
	}
}

func TestCheckSyntax_Bad(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		char rune
		msg  string
	}{
		{"", EmptySlug, 0, "empty identifier (empty slug) not allowed"},
		{"-x", BadFirstCharacter, '-', `character '-' (U+002D) is not allowed as the first character`},
		{"A", BadCharacter, 'A', `character 'A' (U+0041) is not allowed`},
		{"a.b", BadCharacter, '.', `character '.' (U+002E) is not allowed`},
		{"a/b", BadCharacter, '/', `character '/' (U+002F) is not allowed`},
		{"a:b", BadCharacter, ':', `character ':' (U+003A) is not allowed`},
		{"café", BadCharacter, 'é', `character 'é' (U+00E9) is not allowed`},
		{"a b", BadCharacter, ' ', `character ' ' (U+0020) is not allowed`},
	}
	for _, tc := range cases {
		err := CheckSyntax(tc.in)
		require.Error(t, err, tc.in)

		var bad *BadSlugError
		require.True(t, errors.As(err, &bad), tc.in)
		assert.Equal(t, tc.kind, bad.Kind, tc.in)
		assert.Equal(t, tc.char, bad.Char, tc.in)
		assert.Equal(t, tc.msg, err.Error(), tc.in)
		assert.ErrorIs(t, err, &BadSlugError{Kind: tc.kind})
	}
}

func TestSeparatorsAreNeverSlugChars(t *testing.T) {
	for _, c := range SeparatorChars {
		assert.False(t, validChar(c), "separator %q", c)
		assert.Error(t, CheckSyntax("a"+string(c)+"b"))
	}
	assert.False(t, strings.ContainsRune(SeparatorChars, ':'))
}

func TestWindowsReservedNames(t *testing.T) {
	err := CheckSyntax("con")
	if runtime.GOOS == "windows" {
		assert.ErrorIs(t, err, &BadSlugError{Kind: ForbiddenOnWindows})
		assert.Equal(t, `slug (name) "con" is not allowed on Windows`, err.Error())
	} else {
		assert.NoError(t, err)
	}
	assert.NoError(t, CheckSyntax("con1"))
}
