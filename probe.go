package goinspect

import (
	"fmt"
	"reflect"
	"unsafe"
)

// HeaderProbe exposes runtime header data that reflection can reach: the
// backing array of slices and strings and the entry point of funcs.
type HeaderProbe struct{}

func (HeaderProbe) Probe(v reflect.Value) []Field {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		return []Field{hexField("data-pointer", v.Pointer())}
	case reflect.String:
		s := v.String()
		if s == "" {
			return nil
		}
		return []Field{hexField("data-pointer", uintptr(unsafe.Pointer(unsafe.StringData(s))))}
	case reflect.Func:
		if v.IsNil() {
			return nil
		}
		return []Field{hexField("entry-pc", v.Pointer())}
	}
	return nil
}

func hexField(name string, p uintptr) Field {
	return Field{Key: Name(name), Value: valueOf(fmt.Sprintf("%#x", p))}
}
