package goinspect

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// funcInfo is what the runtime knows about a function value.
type funcInfo struct {
	name    string
	file    string
	line    int
	closure bool
}

func lookupFunc(v reflect.Value) (funcInfo, bool) {
	if v.Kind() != reflect.Func || v.IsNil() {
		return funcInfo{}, false
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return funcInfo{}, false
	}
	fi := funcInfo{name: rf.Name()}
	fi.file, fi.line = rf.FileLine(rf.Entry())
	fi.closure = isClosureName(fi.name)
	return fi, true
}

// isClosureName recognizes compiler-generated names such as main.run.func1.
func isClosureName(name string) bool {
	i := strings.LastIndex(name, ".func")
	if i < 0 {
		return false
	}
	rest := name[i+len(".func"):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// funcSignature renders the parameter and result list of ft, e.g.
// "(int, ...string) (bool, error)". skipRecv drops the receiver of method types.
func funcSignature(ft reflect.Type, skipRecv bool) string {
	b := &strings.Builder{}
	b.WriteByte('(')
	start := 0
	if skipRecv {
		start = 1
	}
	for i := start; i < ft.NumIn(); i++ {
		if i > start {
			b.WriteString(", ")
		}
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			b.WriteString("..." + ft.In(i).Elem().String())
			continue
		}
		b.WriteString(ft.In(i).String())
	}
	b.WriteByte(')')
	switch ft.NumOut() {
	case 0:
	case 1:
		b.WriteString(" " + ft.Out(0).String())
	default:
		b.WriteString(" (")
		for i := 0; i < ft.NumOut(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ft.Out(i).String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

func typeList(n int, at func(int) reflect.Type) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = at(i).String()
	}
	return out
}

func extractFunc(x *Extraction, v reflect.Value) {
	ft := v.Type()
	x.AddValue("params", typeList(ft.NumIn(), ft.In))
	x.AddValue("results", typeList(ft.NumOut(), ft.Out))
	x.AddValue("variadic", ft.IsVariadic())
	fi, ok := lookupFunc(v)
	if !ok {
		return
	}
	x.AddValue("name", fi.name)
	x.AddValue("file", fi.file)
	x.AddValue("line", fi.line)
	x.AddValue("closure", fi.closure)
}

// extractFile probes an *os.File. Each probe degrades on its own: a pipe has
// no position, a closed file has no stat.
func extractFile(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	f, _ := iv.(*os.File)
	if f == nil {
		return
	}
	x.AddValue("name", f.Name())
	if fd := f.Fd(); fd != ^uintptr(0) {
		x.AddValue("fd", fd)
	}
	if st, err := f.Stat(); err == nil {
		x.AddValue("mode", st.Mode())
		x.AddValue("size", st.Size())
		x.AddValue("mod-time", st.ModTime())
	}
	if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
		if pos, err := f.Seek(0, io.SeekCurrent); err == nil {
			x.AddValue("position", pos)
		}
	}
}

func extractConn(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	c, _ := iv.(net.Conn)
	if c == nil {
		return
	}
	if a := c.LocalAddr(); a != nil {
		x.AddValue("local-addr", a.String())
		x.AddValue("network", a.Network())
	}
	if a := c.RemoteAddr(); a != nil {
		x.AddValue("remote-addr", a.String())
	}
}

func isIOHandle(t reflect.Type) bool {
	return t.Implements(TypeOf[io.Reader]()) || t.Implements(TypeOf[io.Writer]()) ||
		t.Implements(TypeOf[io.Closer]())
}

func extractIOHandle(x *Extraction, v reflect.Value) {
	t := v.Type()
	var caps []string
	for _, c := range []struct {
		name string
		t    reflect.Type
	}{
		{"read", TypeOf[io.Reader]()},
		{"write", TypeOf[io.Writer]()},
		{"close", TypeOf[io.Closer]()},
		{"seek", TypeOf[io.Seeker]()},
		{"read-at", TypeOf[io.ReaderAt]()},
		{"write-at", TypeOf[io.WriterAt]()},
	} {
		if t.Implements(c.t) {
			caps = append(caps, c.name)
		}
	}
	x.AddValue("capabilities", caps)
}

// extractError exposes the message and the wrap chain of an error value.
func extractError(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	err, _ := iv.(error)
	if err == nil || isAbsent(v) {
		return
	}
	x.AddValue("message", err.Error())
	if cause := errors.Unwrap(err); cause != nil {
		x.AddValue("cause", cause)
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		x.AddValue("errors", j.Unwrap())
	}
	var chain []string
	for e := errors.Unwrap(err); e != nil && len(chain) < 32; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
	}
	if len(chain) > 0 {
		x.AddValue("chain", chain)
	}
}

// extractContext reports the state of a context without blocking on it.
func extractContext(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	ctx, _ := iv.(context.Context)
	if ctx == nil || isAbsent(v) {
		return
	}
	if dl, ok := ctx.Deadline(); ok {
		x.AddValue("deadline", dl)
		x.AddValue("remaining", time.Until(dl))
	}
	done := false
	select {
	case <-ctx.Done():
		done = true
	default:
	}
	x.AddValue("done", done)
	if err := ctx.Err(); err != nil {
		x.AddValue("err", err)
	}
	if c := context.Cause(ctx); c != nil && !errors.Is(c, ctx.Err()) {
		x.AddValue("cause", c)
	}
}
