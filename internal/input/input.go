// Package input splits an operator line into a selector and its arguments.
// This package is internal and not part of the public API.
package input

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Line is one parsed operator input.
type Line struct {
	Head string   // command or field selector, raw token text
	Args []string // argument tokens, raw text
	Rest string   // raw text following Head
	List bool     // input used the (head arg ...) form
}

// Empty reports whether the line carried no selector.
func (l Line) Empty() bool { return l.Head == "" }

var (
	ErrUnterminated = errors.New("input: unterminated string or bracket")
	ErrUnbalanced   = errors.New("input: unbalanced closing bracket")
)

// Parse accepts an atom, "head arg ...", or "(head arg ...)". Quoted strings,
// rune literals and bracketed groups are kept as single tokens.
func Parse(s string) (Line, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Line{}, nil
	}
	list := false
	if s[0] == '(' {
		end, err := matching(s, 0)
		if err != nil {
			return Line{}, err
		}
		if end == len(s)-1 {
			list = true
			s = strings.TrimSpace(s[1:end])
			if s == "" {
				return Line{List: true}, nil
			}
		}
	}
	toks, err := Tokens(s)
	if err != nil {
		return Line{}, err
	}
	l := Line{Head: toks[0], Args: toks[1:], List: list}
	l.Rest = strings.TrimSpace(s[len(toks[0]):])
	return l, nil
}

// Tokens splits s on white space outside quotes and brackets. Delimiters are
// ASCII, so multi-byte runes never split a token.
func Tokens(s string) ([]string, error) {
	var out []string
	i := 0
	for i < len(s) {
		if r, w := utf8.DecodeRuneInString(s[i:]); unicode.IsSpace(r) {
			i += w
			continue
		}
		start := i
		for i < len(s) {
			r, w := utf8.DecodeRuneInString(s[i:])
			if unicode.IsSpace(r) {
				break
			}
			switch s[i] {
			case '"', '\'', '`':
				end, err := closingQuote(s, i)
				if err != nil {
					return nil, err
				}
				i = end + 1
			case '(', '[', '{':
				end, err := matching(s, i)
				if err != nil {
					return nil, err
				}
				i = end + 1
			case ')', ']', '}':
				return nil, ErrUnbalanced
			default:
				i += w
			}
		}
		out = append(out, s[start:i])
	}
	return out, nil
}

// closingQuote returns the index of the quote closing the one at s[i].
func closingQuote(s string, i int) (int, error) {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch {
		case s[j] == '\\' && q != '`':
			j++
		case s[j] == q:
			return j, nil
		}
	}
	return 0, ErrUnterminated
}

// matching returns the index of the bracket closing the one at s[i].
func matching(s string, i int) (int, error) {
	var stack []byte
	for j := i; j < len(s); j++ {
		switch c := s[j]; c {
		case '"', '\'', '`':
			end, err := closingQuote(s, j)
			if err != nil {
				return 0, err
			}
			j = end
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != opener(c) {
				return 0, ErrUnbalanced
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j, nil
			}
		}
	}
	return 0, ErrUnterminated
}

func opener(c byte) byte {
	switch c {
	case ')':
		return '('
	case ']':
		return '['
	}
	return '{'
}
