package goinspect

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unsafe"
)

// isAbsent reports whether v holds nothing: an invalid value or a nil reference.
func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// interfaceOf returns v as an interface when reflection allows it. Values read
// through unexported fields are made accessible when addressable.
func interfaceOf(v reflect.Value) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}
	if v.CanInterface() {
		return v.Interface(), true
	}
	if a := accessible(v); a.CanInterface() {
		return a.Interface(), true
	}
	return nil, false
}

// accessible lifts the read-only flag reflection puts on values reached through
// unexported struct fields. Only addressable values can be lifted; others are
// returned unchanged and remain read-only.
func accessible(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// unwrapInterface follows interface values to their dynamic value.
func unwrapInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// isScalarKind reports whether values of kind k have a stable lexical form and
// can therefore serve as addressable keys.
func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// scalarInterface returns the plain Go value of a scalar, readable even when v
// is read-only.
func scalarInterface(v reflect.Value) (any, bool) {
	if x, ok := interfaceOf(v); ok {
		return x, true
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), true
	case reflect.String:
		return v.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return nil, false
}

// valueOf wraps a freshly computed Go value. The result is not addressable.
func valueOf(x any) reflect.Value { return reflect.ValueOf(x) }

// setterFor returns a Setter writing into dst, or nil when dst cannot be set.
func setterFor(dst reflect.Value) Setter {
	dst = accessible(dst)
	if !dst.CanSet() {
		return nil
	}
	return func(nv, _ reflect.Value) error {
		cv, err := assign(dst.Type(), nv)
		if err != nil {
			return err
		}
		dst.Set(cv)
		return nil
	}
}

// assign converts nv to type t following Go's assignment rules, extended with
// lossless numeric conversions. An invalid nv means nil.
func assign(t reflect.Type, nv reflect.Value) (reflect.Value, error) {
	if !nv.IsValid() {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, notAssignable(t, "nil")
	}
	nv = accessible(nv)
	if nv.Kind() == reflect.Interface && !nv.IsNil() && t.Kind() != reflect.Interface {
		nv = nv.Elem()
	}
	if nv.Type().AssignableTo(t) {
		return nv, nil
	}
	src, dst := nv.Kind(), t.Kind()
	switch {
	case isIntKind(src) && isIntKind(dst):
		n := nv.Int()
		out := reflect.New(t).Elem()
		if out.OverflowInt(n) {
			return reflect.Value{}, notAssignable(t, fmt.Sprint(n))
		}
		out.SetInt(n)
		return out, nil
	case isIntKind(src) && isUintKind(dst):
		n := nv.Int()
		out := reflect.New(t).Elem()
		if n < 0 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, notAssignable(t, fmt.Sprint(n))
		}
		out.SetUint(uint64(n))
		return out, nil
	case isUintKind(src) && isUintKind(dst):
		n := nv.Uint()
		out := reflect.New(t).Elem()
		if out.OverflowUint(n) {
			return reflect.Value{}, notAssignable(t, fmt.Sprint(n))
		}
		out.SetUint(n)
		return out, nil
	case isUintKind(src) && isIntKind(dst):
		n := nv.Uint()
		out := reflect.New(t).Elem()
		if n > math.MaxInt64 || out.OverflowInt(int64(n)) {
			return reflect.Value{}, notAssignable(t, fmt.Sprint(n))
		}
		out.SetInt(int64(n))
		return out, nil
	case (isIntKind(src) || isUintKind(src) || isFloatKind(src)) && isFloatKind(dst):
		return nv.Convert(t), nil
	case isFloatKind(src) && (isIntKind(dst) || isUintKind(dst)):
		f := nv.Float()
		if f != math.Trunc(f) {
			return reflect.Value{}, notAssignable(t, fmt.Sprint(f))
		}
		return assign(t, reflect.ValueOf(int64(f)))
	case src == reflect.String && dst == reflect.String:
		return nv.Convert(t), nil
	case (isIntKind(src) || isFloatKind(src)) && (dst == reflect.Complex64 || dst == reflect.Complex128):
		return reflect.ValueOf(complex(nv.Convert(reflect.TypeOf(float64(0))).Float(), 0)).Convert(t), nil
	}
	if nv.Type().ConvertibleTo(t) && src == dst {
		return nv.Convert(t), nil
	}
	return reflect.Value{}, notAssignable(t, nv.Type().String())
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// memberDef renders one struct field definition as it appears in the members
// list: name, type and the external key when a json or yaml tag renames it.
func memberDef(sf reflect.StructField) string {
	b := &strings.Builder{}
	if sf.Anonymous {
		b.WriteString("(embedded) ")
	}
	b.WriteString(sf.Name)
	b.WriteByte(' ')
	b.WriteString(sf.Type.String())
	if k := externalKey(sf); k != "" && k != sf.Name {
		fmt.Fprintf(b, " (%s)", k)
	}
	return b.String()
}

// externalKey applies the tag priority yaml > json > field name.
// "-" means the field is hidden from serialization.
func externalKey(sf reflect.StructField) string {
	for _, tag := range []string{"yaml", "json"} {
		if t := sf.Tag.Get(tag); t != "" {
			if i := strings.IndexByte(t, ','); i >= 0 {
				t = t[:i]
			}
			if t != "" {
				return t
			}
		}
	}
	return sf.Name
}

// indirectType strips pointer levels from t.
func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
