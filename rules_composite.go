package goinspect

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
)

func extractPointer(x *Extraction, v reflect.Value) {
	if v.IsNil() {
		x.Add(Field{Key: Name("target")})
		return
	}
	elem := accessible(v.Elem())
	x.Add(Field{Key: Name("target"), Value: elem, Set: setterFor(elem)})
	x.Contribute(elem)
}

// extractStruct exposes every member, exported or not, as a slot. Members are
// settable when the struct is addressable.
func extractStruct(x *Extraction, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := accessible(v.Field(i))
		x.AddElement(Field{Key: Name(t.Field(i).Name), Value: fv, Set: setterFor(fv)})
	}
}

func extractSlice(x *Extraction, v reflect.Value) {
	x.AddValue("length", v.Len())
	x.AddValue("capacity", v.Cap())
	x.AddValue("element-type", v.Type().Elem().String())
	for i := 0; i < v.Len(); i++ {
		e := accessible(v.Index(i))
		x.AddElement(Field{Key: Index(i), Value: e, Set: setterFor(e)})
	}
}

func extractArray(x *Extraction, v reflect.Value) {
	x.AddValue("length", v.Len())
	x.AddValue("element-type", v.Type().Elem().String())
	for i := 0; i < v.Len(); i++ {
		e := accessible(v.Index(i))
		x.AddElement(Field{Key: Index(i), Value: e, Set: setterFor(e)})
	}
}

// extractMap exposes scalar-keyed entries as individually settable fields.
// Entries with composite keys have no stable lexical form to address them by,
// so they are flattened into a single other-pairs field.
func extractMap(x *Extraction, v reflect.Value) {
	x.AddValue("count", v.Len())
	x.AddValue("key-type", v.Type().Key().String())
	x.AddValue("value-type", v.Type().Elem().String())
	if v.IsNil() {
		return
	}
	m := accessible(v)
	writable := m.CanInterface()
	seen := map[string]bool{}
	var other []any
	for _, k := range sortedMapKeys(m) {
		val := m.MapIndex(k)
		if kv, ok := scalarKey(k); ok {
			key := Literal(kv)
			id := fmt.Sprintf("%d/%s", key.Kind(), key)
			if !seen[id] {
				seen[id] = true
				f := Field{Key: key, Value: val}
				if writable {
					f.Set = mapSetter(m, k)
				}
				x.AddElement(f)
				continue
			}
		}
		kx, _ := interfaceOf(k)
		vx, _ := interfaceOf(val)
		other = append(other, kx, vx)
	}
	if len(other) > 0 {
		x.AddElement(Field{Key: Name("other-pairs"), Value: valueOf(other)})
	}
}

// scalarKey returns the plain value of a map key usable as a Field key.
func scalarKey(k reflect.Value) (any, bool) {
	k = unwrapInterface(k)
	if !k.IsValid() || !isScalarKind(k.Kind()) {
		return nil, false
	}
	if isFloatKind(k.Kind()) && math.IsNaN(k.Float()) {
		return nil, false
	}
	return scalarInterface(k)
}

func mapSetter(m, k reflect.Value) Setter {
	return func(nv, _ reflect.Value) error {
		cv, err := assign(m.Type().Elem(), nv)
		if err != nil {
			return err
		}
		m.SetMapIndex(k, cv)
		return nil
	}
}

// sortedMapKeys orders keys by kind, then value, so listings are stable
// across renders.
func sortedMapKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	a, b = unwrapInterface(a), unwrapInterface(b)
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolInt(a.IsValid()), boolInt(b.IsValid()))
	}
	if a.Type() != b.Type() {
		if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
			return c
		}
		return cmp.Compare(a.Type().String(), b.Type().String())
	}
	switch {
	case a.Kind() == reflect.String:
		return cmp.Compare(a.String(), b.String())
	case isIntKind(a.Kind()):
		return cmp.Compare(a.Int(), b.Int())
	case isUintKind(a.Kind()):
		return cmp.Compare(a.Uint(), b.Uint())
	case isFloatKind(a.Kind()):
		return cmp.Compare(a.Float(), b.Float())
	case a.Kind() == reflect.Bool:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	case a.Kind() == reflect.Pointer || a.Kind() == reflect.Chan:
		return cmp.Compare(a.Pointer(), b.Pointer())
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func extractChan(x *Extraction, v reflect.Value) {
	x.AddValue("direction", v.Type().ChanDir().String())
	x.AddValue("element-type", v.Type().Elem().String())
	if v.IsNil() {
		return
	}
	x.AddValue("length", v.Len())
	x.AddValue("capacity", v.Cap())
}

// extractPair exposes a proper list as its length plus one settable slot per
// element, and an improper pair as its settable head and tail.
func extractPair(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	p, _ := iv.(*Pair)
	if p == nil {
		return
	}
	cells, proper := p.Cells()
	if proper {
		x.AddValue("length", len(cells))
		for i, c := range cells {
			slot := reflect.ValueOf(&c.Head).Elem()
			x.AddElement(Field{Key: Index(i), Value: slot, Set: setterFor(slot)})
		}
		return
	}
	head := reflect.ValueOf(&p.Head).Elem()
	tail := reflect.ValueOf(&p.Tail).Elem()
	x.AddElement(
		Field{Key: Name("head"), Value: head, Set: setterFor(head)},
		Field{Key: Name("tail"), Value: tail, Set: setterFor(tail)},
	)
}
