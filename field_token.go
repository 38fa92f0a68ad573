package goinspect

import (
	"reflect"
)

// KeyOf returns the field key under which the top-level member of struct S
// selected by selector appears in an inspection. The selector ties the key to
// the member at compile time:
//
//	goinspect.KeyOf(func(o *Order) *string { return &o.Status })
//
// It panics when selector does not return the address of a member of S.
func KeyOf[S any, F any](selector func(*S) *F) Key {
	if selector == nil {
		panic("goinspect.KeyOf: selector must not be nil")
	}
	var zero S
	target := reflect.ValueOf(selector(&zero)).Pointer()
	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() == reflect.Struct {
		ft := reflect.TypeOf((*F)(nil)).Elem()
		for i := 0; i < rv.NumField(); i++ {
			fv := rv.Field(i)
			if fv.Addr().Pointer() == target && fv.Type() == ft {
				return Name(rv.Type().Field(i).Name)
			}
		}
	}
	panic("goinspect.KeyOf: selector must return the address of a top-level member of S")
}
