package goinspect

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Standard writes v in machine-readable form: JSON when the value encodes,
// Go syntax otherwise.
func Standard(w io.Writer, v reflect.Value) error {
	_, err := io.WriteString(w, standardString(v)+"\n")
	return err
}

// Aesthetic writes v in human-readable form: YAML when the value encodes,
// fmt's %+v otherwise.
func Aesthetic(w io.Writer, v reflect.Value) error {
	s := aestheticString(v)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

func standardString(v reflect.Value) (s string) {
	v = unwrapInterface(v)
	if !v.IsValid() {
		return "null"
	}
	x, ok := interfaceOf(v)
	if !ok {
		return fmt.Sprintf("#<%s>", v.Type())
	}
	switch shapeOf(v) {
	case cyclic:
		return fmt.Sprintf("#<%s circular>", v.Type())
	case oversized:
		return boundedString(v)
	}
	defer func() {
		if p := recover(); p != nil {
			s = fmt.Sprintf("%#v", x)
		}
	}()
	b, err := json.Marshal(x)
	if err != nil {
		return fmt.Sprintf("%#v", x)
	}
	return string(b)
}

func aestheticString(v reflect.Value) (s string) {
	v = unwrapInterface(v)
	if !v.IsValid() {
		return "nil"
	}
	x, ok := interfaceOf(v)
	if !ok {
		return fmt.Sprintf("#<%s>", v.Type())
	}
	switch shapeOf(v) {
	case cyclic:
		return fmt.Sprintf("#<%s circular>", v.Type())
	case oversized:
		return boundedString(v)
	}
	if isScalarKind(v.Kind()) {
		if st, ok := x.(fmt.Stringer); ok {
			return st.String()
		}
		return fmt.Sprint(x)
	}
	defer func() {
		if p := recover(); p != nil {
			s = fmt.Sprintf("%+v", x)
		}
	}()
	b, err := yaml.Marshal(x)
	if err != nil {
		return fmt.Sprintf("%+v", x)
	}
	return string(b)
}

// maxCycleNodes bounds the walk of shapeOf.
const maxCycleNodes = 4096

type shape uint8

const (
	acyclic shape = iota
	cyclic
	// oversized values exhausted the walk before it could rule out a cycle.
	oversized
)

// shapeOf reports whether v reaches itself through pointers, maps, slices or
// interfaces. Printing a cyclic value with fmt or an encoder would not
// terminate, and neither may an oversized one.
func shapeOf(v reflect.Value) shape {
	w := cycleWalk{onPath: map[cycleNode]bool{}}
	switch {
	case w.visit(v):
		return cyclic
	case w.exhausted:
		return oversized
	}
	return acyclic
}

type cycleNode struct {
	ptr uintptr
	typ reflect.Type
}

type cycleWalk struct {
	onPath    map[cycleNode]bool
	nodes     int
	exhausted bool
}

func (w *cycleWalk) visit(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	w.nodes++
	if w.nodes > maxCycleNodes {
		w.exhausted = true
		return false
	}
	switch v.Kind() {
	case reflect.Interface:
		return !v.IsNil() && w.visit(v.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return false
		}
		n := cycleNode{ptr: v.Pointer(), typ: v.Type()}
		if w.onPath[n] {
			return true
		}
		w.onPath[n] = true
		defer delete(w.onPath, n)
		switch v.Kind() {
		case reflect.Pointer:
			return w.visit(v.Elem())
		case reflect.Map:
			it := v.MapRange()
			for it.Next() && !w.exhausted {
				if w.visit(it.Key()) || w.visit(it.Value()) {
					return true
				}
			}
			return false
		}
		return w.elements(v)
	case reflect.Array:
		return w.elements(v)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if w.visit(v.Field(i)) {
				return true
			}
		}
	}
	return false
}

func (w *cycleWalk) elements(v reflect.Value) bool {
	switch v.Type().Elem().Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.String:
		return false
	}
	for i := 0; i < v.Len() && !w.exhausted; i++ {
		if w.visit(v.Index(i)) {
			return true
		}
	}
	return false
}

// Limits of boundedString.
const (
	maxBoundedDepth = 3
	maxBoundedElems = 16
)

// boundedString renders v in fmt's %v layout, cut off below maxBoundedDepth
// and after maxBoundedElems elements per container. It never follows more
// than a bounded number of references, so it is safe on any graph.
func boundedString(v reflect.Value) string {
	var b strings.Builder
	writeBounded(&b, v, 0)
	return b.String()
}

func writeBounded(b *strings.Builder, v reflect.Value, depth int) {
	v = unwrapInterface(v)
	if !v.IsValid() {
		b.WriteString("<nil>")
		return
	}
	if isScalarKind(v.Kind()) {
		x, _ := scalarInterface(v)
		fmt.Fprint(b, x)
		return
	}
	if depth >= maxBoundedDepth {
		b.WriteString("...")
		return
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			b.WriteString("<nil>")
			return
		}
		b.WriteByte('&')
		writeBounded(b, v.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			if i == maxBoundedElems {
				fmt.Fprintf(b, "...+%d", v.Len()-i)
				break
			}
			writeBounded(b, v.Index(i), depth+1)
		}
		b.WriteByte(']')
	case reflect.Map:
		b.WriteString("map[")
		it := v.MapRange()
		for i := 0; it.Next(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			if i == maxBoundedElems {
				fmt.Fprintf(b, "...+%d", v.Len()-i)
				break
			}
			writeBounded(b, it.Key(), depth+1)
			b.WriteByte(':')
			writeBounded(b, it.Value(), depth+1)
		}
		b.WriteByte(']')
	case reflect.Struct:
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			if i == maxBoundedElems {
				fmt.Fprintf(b, "...+%d", v.NumField()-i)
				break
			}
			writeBounded(b, v.Field(i), depth+1)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "#<%s>", v.Type())
	}
}
