package goinspect

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// Integers that fall in this range of Unix seconds (1973..5138) are also shown
// as timestamps.
const (
	minTimestamp = 100_000_000
	maxTimestamp = 100_000_000_000
)

func describeInt(d *Description, v reflect.Value) {
	n := v.Int()
	d.Detail("dec %d, hex %#x, oct %O, bin %#b", n, n, n, n)
	d.Clause(func() string { return asTimestamp(n) })
	if v.Kind() == reflect.Int32 {
		d.Clause(func() string { return asRune(rune(n)) })
	}
}

func describeUint(d *Description, v reflect.Value) {
	n := v.Uint()
	d.Detail("dec %d, hex %#x, oct %O, bin %#b", n, n, n, n)
	if n <= math.MaxInt64 {
		d.Clause(func() string { return asTimestamp(int64(n)) })
	}
	if v.Kind() == reflect.Uint8 && n < utf8.RuneSelf {
		d.Clause(func() string { return asRune(rune(n)) })
	}
}

func asTimestamp(n int64) string {
	if n < minTimestamp || n > maxTimestamp {
		return ""
	}
	t := time.Unix(n, 0).UTC()
	return fmt.Sprintf("as unix time: %s (%s, day %d of %d)", t.Format(time.RFC3339), t.Weekday(), t.YearDay(), t.Year())
}

func asRune(r rune) string {
	if !utf8.ValidRune(r) {
		return ""
	}
	name := runenames.Name(r)
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("as rune: %s U+%04X %s (%s)", strconv.QuoteRune(r), r, name, runeCategory(r))
}

func describeFloat(d *Description, v reflect.Value) {
	f := v.Float()
	bitSize := 64
	if v.Kind() == reflect.Float32 {
		bitSize = 32
	}
	d.Detail("scientific %s, hex %s", strconv.FormatFloat(f, 'e', -1, bitSize), strconv.FormatFloat(f, 'x', -1, bitSize))
	d.Clause(func() string {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		prec := 53
		if bitSize == 32 {
			prec = 24
		}
		m, e := decodeFloat(math.Abs(f), prec)
		return fmt.Sprintf("= %d * 2^%d", m, e)
	})
}

func describeComplex(d *Description, v reflect.Value) {
	c := v.Complex()
	d.Detail("real %g, imag %g", real(c), imag(c))
}

func describeBool(d *Description, v reflect.Value) {
	d.Summary("bool", "%t", v.Bool())
}

func describeString(d *Description, v reflect.Value) {
	s := v.String()
	d.Summary(v.Type().String(), "%s", compact(v, d.width))
	d.Detail("%d bytes, %d runes", len(s), utf8.RuneCountInString(s))
	if !utf8.ValidString(s) {
		d.Detail("contains invalid UTF-8")
	}
}

func describeEnum(d *Description, v reflect.Value) {
	iv, ok := interfaceOf(v)
	if !ok {
		return
	}
	name := iv.(fmt.Stringer).String()
	if isIntKind(v.Kind()) {
		d.Summary(v.Type().String(), "%s (%d)", name, v.Int())
		return
	}
	d.Summary(v.Type().String(), "%s (%d)", name, v.Uint())
}

func describeSlice(d *Description, v reflect.Value) {
	if v.IsNil() {
		d.Summary(v.Type().String(), "nil slice")
		return
	}
	d.Detail("length %d, capacity %d", v.Len(), v.Cap())
}

func describeArray(d *Description, v reflect.Value) {
	d.Detail("%d elements of %s", v.Len(), v.Type().Elem())
}

func describeMap(d *Description, v reflect.Value) {
	if v.IsNil() {
		d.Summary(v.Type().String(), "nil map")
		return
	}
	d.Detail("%d entries", v.Len())
}

func describeStruct(d *Description, v reflect.Value) {
	d.Detail("struct with %d fields", v.NumField())
}

func describePointer(d *Description, v reflect.Value) {
	if v.IsNil() {
		d.Summary(v.Type().String(), "nil pointer")
		return
	}
	d.Detail("points to %#x", v.Pointer())
	d.Clause(func() string { return "target: " + compact(v.Elem(), d.width) })
}

func describeChan(d *Description, v reflect.Value) {
	if v.IsNil() {
		d.Summary(v.Type().String(), "nil channel")
		return
	}
	d.Summary(v.Type().String(), "%d/%d buffered, %s", v.Len(), v.Cap(), v.Type().ChanDir())
}

// describeFunc shows name, parameter list and definition site. Captured
// variables of closures are not reachable through reflection, which the
// summary says instead of listing them.
func describeFunc(d *Description, v reflect.Value) {
	sig := funcSignature(v.Type(), false)
	if v.IsNil() {
		d.Summary("func", "nil %s", sig)
		return
	}
	fi, ok := lookupFunc(v)
	if !ok {
		d.Summary("func", "%s", sig)
		return
	}
	d.Summary("func", "%s%s", fi.name, sig)
	d.Clause(func() string {
		if fi.file == "" {
			return ""
		}
		return fmt.Sprintf("defined at %s:%d", fi.file, fi.line)
	})
	if fi.closure {
		d.Detail("closure (captured variables are not inspectable)")
	}
}

func describePair(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	p, _ := iv.(*Pair)
	if p == nil {
		d.Summary("list", "()")
		return
	}
	cells, proper := p.Cells()
	if proper {
		d.Summary("list", "%s", truncate(p.String(), d.width))
		d.Detail("proper list of %d elements", len(cells))
		return
	}
	d.Summary("pair", "%s", truncate(p.String(), d.width))
}

func describeBigInt(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	n, _ := iv.(*big.Int)
	if n == nil {
		return
	}
	d.Detail("dec %s, hex %s, %d bits", n.Text(10), n.Text(16), n.BitLen())
}

func describeBigRat(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	r, _ := iv.(*big.Rat)
	if r == nil {
		return
	}
	d.Summary("ratio", "%s", r.RatString())
	d.Clause(func() string { return "≈ " + r.FloatString(10) })
}

func describeBigFloat(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	f, _ := iv.(*big.Float)
	if f == nil {
		return
	}
	d.Detail("precision %d, mode %s", f.Prec(), f.Mode())
}

func describeDuration(d *Description, v reflect.Value) {
	dur := time.Duration(v.Int())
	d.Summary("time.Duration", "%s", dur)
	d.Detail("%d ns", dur.Nanoseconds())
}

func describeTime(d *Description, v reflect.Value) {
	iv, ok := interfaceOf(v)
	if !ok {
		return
	}
	t := iv.(time.Time)
	d.Summary("time.Time", "%s", t.Format(time.RFC3339Nano))
	d.Detail("%s %d %s %d, %02d:%02d:%02d %s", t.Weekday(), t.Day(), t.Month(), t.Year(), t.Hour(), t.Minute(), t.Second(), t.Location())
	d.Detail("unix %d, day %d of the year", t.Unix(), t.YearDay())
}

func describeFile(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	f, _ := iv.(*os.File)
	if f == nil {
		d.Summary("file", "nil")
		return
	}
	d.Summary("file", "%s", f.Name())
	d.Clause(func() string {
		st, err := f.Stat()
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%s, %d bytes", st.Mode(), st.Size())
	})
}

func describeError(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	err, _ := iv.(error)
	if err == nil || isAbsent(v) {
		return
	}
	d.Summary("error "+v.Type().String(), "%s", truncate(err.Error(), d.width))
	for e := errors.Unwrap(err); e != nil && len(d.details) < 8; e = errors.Unwrap(e) {
		d.Detail("wraps %T: %s", e, truncate(e.Error(), d.width))
	}
}

func describeContext(d *Description, v reflect.Value) {
	iv, _ := interfaceOf(v)
	ctx, _ := iv.(context.Context)
	if ctx == nil || isAbsent(v) {
		return
	}
	d.Summary("context "+v.Type().String(), "%s", truncate(fmt.Sprint(ctx), d.width))
	if dl, ok := ctx.Deadline(); ok {
		d.Detail("deadline %s", dl.Format(time.RFC3339))
	}
	if err := ctx.Err(); err != nil {
		d.Detail("done: %v", err)
	}
}
