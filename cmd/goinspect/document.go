package main

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/reoring/goinspect"
)

// reservedNames are the field names an extraction of a document object uses
// itself. Document keys spelled like them stay quoted literal keys.
var reservedNames = map[string]bool{
	"identity": true,
	"type":     true,
	"kind":     true,
	"members":  true,
	"methods":  true,
	"count":    true,
}

// documentExtractors extends the built-in rules for decoded documents: object
// keys that read as names become name keys, so they are typed bare and can be
// abbreviated like struct fields.
func documentExtractors() *goinspect.Extractors {
	e := goinspect.NewExtractors()
	e.RegisterType(goinspect.TypeOf[map[string]any](), goinspect.ExtractorFunc(extractObject))
	return e
}

func extractObject(x *goinspect.Extraction, v reflect.Value) {
	x.AddValue("count", v.Len())
	if v.IsNil() {
		return
	}
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	for _, k := range keys {
		x.AddElement(goinspect.Field{Key: documentKey(k.String()), Value: v.MapIndex(k), Set: entrySetter(v, k)})
	}
}

func documentKey(s string) goinspect.Key {
	if reservedNames[s] || !isName(s) {
		return goinspect.Literal(s)
	}
	if _, literal := goinspect.ParseLiteral(s); literal {
		return goinspect.Literal(s)
	}
	return goinspect.Name(s)
}

// isName reports whether s is a letter or underscore followed by letters,
// digits, underscores and dashes.
func isName(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return s != ""
}

var errUnexportedValue = errors.New("value read through an unexported field")

func entrySetter(m, k reflect.Value) goinspect.Setter {
	return func(nv, _ reflect.Value) error {
		if !nv.IsValid() {
			nv = reflect.Zero(m.Type().Elem())
		}
		if !nv.CanInterface() {
			return errUnexportedValue
		}
		m.SetMapIndex(k, nv)
		return nil
	}
}
