package input

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Line
	}{
		{"", Line{}},
		{"   ", Line{}},
		{"name", Line{Head: "name", Args: []string{}}},
		{"width 5", Line{Head: "width", Args: []string{"5"}, Rest: "5"}},
		{"(width 5)", Line{Head: "width", Args: []string{"5"}, Rest: "5", List: true}},
		{"()", Line{List: true}},
		{`set-field "a b" [1, 2]`, Line{Head: "set-field", Args: []string{`"a b"`, "[1, 2]"}, Rest: `"a b" [1, 2]`}},
		{"len(xs) + 1", Line{Head: "len(xs)", Args: []string{"+", "1"}, Rest: "+ 1"}},
		{"(a) b", Line{Head: "(a)", Args: []string{"b"}, Rest: "b"}},
		{"Città", Line{Head: "Città", Args: []string{}}},
		{"set-field Å 1", Line{Head: "set-field", Args: []string{"Å", "1"}, Rest: "Å 1"}},
		{"naïve\u00a0x", Line{Head: "naïve", Args: []string{"x"}, Rest: "x"}},
		{`'x' "it's"`, Line{Head: "'x'", Args: []string{`"it's"`}, Rest: `"it's"`}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{`"open`, "(width 5", "f(x", "`raw"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnterminated, in)
	}
	for _, in := range []string{"a)", "(a]", "x }"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnbalanced, in)
	}
}

func TestTokens_EscapedQuote(t *testing.T) {
	toks, err := Tokens(`"a \" b" c`)
	require.NoError(t, err)
	assert.Equal(t, []string{`"a \" b"`, "c"}, toks)
}

func TestLine_Empty(t *testing.T) {
	assert.True(t, Line{}.Empty())
	assert.False(t, Line{Head: "x"}.Empty())
}

func TestTokens_MultiByteRunes(t *testing.T) {
	// à is C3 A0 and Å is C3 85; both trailing bytes are Latin-1 spaces.
	toks, err := Tokens("città Åland")
	require.NoError(t, err)
	assert.Equal(t, []string{"città", "Åland"}, toks)
}
