package goinspect

import (
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// ParseLiteral reads a Go basic literal: an integer, a float, a quoted or raw
// string, a rune, true, false or nil. nil yields the invalid Value.
func ParseLiteral(tok string) (reflect.Value, bool) {
	switch tok {
	case "":
		return reflect.Value{}, false
	case "nil":
		return reflect.Value{}, true
	case "true":
		return reflect.ValueOf(true), true
	case "false":
		return reflect.ValueOf(false), true
	}
	switch c := tok[0]; {
	case c == '"' || c == '`':
		s, err := strconv.Unquote(tok)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(s), true
	case c == '\'':
		s, err := strconv.Unquote(tok)
		if err != nil || utf8.RuneCountInString(s) != 1 {
			return reflect.Value{}, false
		}
		r, _ := utf8.DecodeRuneInString(s)
		return reflect.ValueOf(r), true
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		if n, err := strconv.ParseInt(tok, 0, 64); err == nil {
			if n >= math.MinInt && n <= math.MaxInt {
				return reflect.ValueOf(int(n)), true
			}
			return reflect.ValueOf(n), true
		}
		if n, err := strconv.ParseUint(tok, 0, 64); err == nil {
			return reflect.ValueOf(n), true
		}
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return reflect.ValueOf(f), true
		}
	}
	return reflect.Value{}, false
}

// ParseKey classifies an operator token as a Key: integers address
// positions, other literals match field keys by equality, and anything else
// is a name resolved by prefix.
func ParseKey(tok string) Key {
	v, ok := ParseLiteral(tok)
	if !ok || !v.IsValid() {
		return Name(tok)
	}
	return Literal(v.Interface())
}
