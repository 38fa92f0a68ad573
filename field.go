package goinspect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// KeyKind tags the flavor of a Key.
type KeyKind uint8

const (
	KeyName    KeyKind = iota // symbolic name, resolvable by prefix
	KeyIndex                  // integer position
	KeyLiteral                // any other comparable value (string map keys, floats, ...)
)

// Key addresses a Field. Exactly one of the three flavors is populated.
type Key struct {
	kind  KeyKind
	name  string
	index int
	lit   any
}

// Name builds a symbolic key.
func Name(s string) Key { return Key{kind: KeyName, name: s} }

// Index builds an integer key.
func Index(i int) Key { return Key{kind: KeyIndex, index: i} }

// Literal builds a literal key. Integer values that fit in an int become
// integer keys so that they take part in positional addressing; strings,
// bools and floats of named types are reduced to their basic type.
func Literal(v any) Key {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Key{kind: KeyLiteral, lit: rv.String()}
	case reflect.Bool:
		return Key{kind: KeyLiteral, lit: rv.Bool()}
	case reflect.Float32, reflect.Float64:
		return Key{kind: KeyLiteral, lit: rv.Float()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if int64(int(n)) == n {
			return Index(int(n))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n <= uint64(maxInt) {
			return Index(int(n))
		}
	}
	return Key{kind: KeyLiteral, lit: v}
}

const maxInt = int(^uint(0) >> 1)

// Kind reports the key flavor.
func (k Key) Kind() KeyKind { return k.kind }

// Name returns the symbolic name, or "" for non-name keys.
func (k Key) Name() string {
	if k.kind != KeyName {
		return ""
	}
	return k.name
}

// Index returns the integer value of an integer key.
func (k Key) Index() (int, bool) { return k.index, k.kind == KeyIndex }

// Value returns the key as a plain Go value.
func (k Key) Value() any {
	switch k.kind {
	case KeyName:
		return k.name
	case KeyIndex:
		return k.index
	default:
		return k.lit
	}
}

// Equal reports whether two keys have the same flavor and value.
func (k Key) Equal(o Key) bool {
	if k.kind != o.kind {
		return false
	}
	switch k.kind {
	case KeyName:
		return k.name == o.name
	case KeyIndex:
		return k.index == o.index
	}
	return reflect.DeepEqual(k.lit, o.lit)
}

// String renders names bare and every other key in machine-readable form.
func (k Key) String() string {
	switch k.kind {
	case KeyName:
		return k.name
	case KeyIndex:
		return strconv.Itoa(k.index)
	}
	if s, ok := k.lit.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%#v", k.lit)
}

// Setter writes nv into the location a Field refers to. old is the value the
// field held when the operator asked for the change.
type Setter func(nv, old reflect.Value) error

// Field is one (key, value, setter) unit of a value's inspection view. Value
// refers to live memory wherever Go allows it, so a write through Set is seen by
// every holder of the inspected value.
type Field struct {
	Key   Key
	Value reflect.Value
	Set   Setter
}

// Settable reports whether the field carries a setter.
func (f Field) Settable() bool { return f.Set != nil }

// Absent reports whether the field holds no value (invalid or a nil reference).
func (f Field) Absent() bool { return isAbsent(f.Value) }

// Interface returns the field value as an interface, or nil when it is absent
// or cannot be exported.
func (f Field) Interface() any {
	if f.Absent() {
		return nil
	}
	x, _ := interfaceOf(f.Value)
	return x
}

// Get returns the field with the given key.
func Get(fields []Field, key Key) (Field, bool) {
	for _, f := range fields {
		if f.Key.Equal(key) {
			return f, true
		}
	}
	return Field{}, false
}

// strip removes absent fields that cannot be set. A field with a setter stays
// because it can still be given a value.
func strip(fields []Field) []Field {
	out := fields[:0]
	for _, f := range fields {
		if f.Absent() && f.Set == nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// uniquify renames later name keys that repeat an earlier one, e.g. an
// unexported struct member called "kind".
func uniquify(fields []Field) {
	seen := make(map[string]int, len(fields))
	for i := range fields {
		if fields[i].Key.kind != KeyName {
			continue
		}
		name := fields[i].Key.name
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			continue
		}
		for {
			n++
			alt := name + "#" + strconv.Itoa(n)
			if seen[alt] == 0 {
				seen[alt] = 1
				fields[i].Key = Name(alt)
				break
			}
		}
	}
}

// isSymbolic reports whether a key prints bare in the field listing.
func isSymbolic(k Key) bool {
	return k.kind == KeyName && k.name != "" && !strings.ContainsAny(k.name, " \t\"")
}
