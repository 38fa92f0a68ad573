package goinspect

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"math/cmplx"
	"reflect"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

func extractInt(x *Extraction, v reflect.Value) {
	n := v.Int()
	x.AddValue("bits", v.Type().Bits())
	x.AddValue("bit-length", bitLength(n))
	if v.Kind() == reflect.Int32 {
		addRune(x, rune(n))
	}
}

func extractUint(x *Extraction, v reflect.Value) {
	x.AddValue("bits", v.Type().Bits())
	x.AddValue("bit-length", bits.Len64(v.Uint()))
}

func bitLength(n int64) int {
	if n < 0 {
		return bits.Len64(uint64(^n))
	}
	return bits.Len64(uint64(n))
}

// addRune contributes the character view of an int32 holding a valid rune.
func addRune(x *Extraction, r rune) {
	if !utf8.ValidRune(r) {
		return
	}
	x.AddValue("char", string(r))
	x.AddValue("code-point", fmt.Sprintf("U+%04X", r))
	if name := runenames.Name(r); name != "" {
		x.AddValue("char-name", name)
	}
	x.AddValue("category", runeCategory(r))
	x.AddValue("upcase", string(unicode.ToUpper(r)))
	x.AddValue("downcase", string(unicode.ToLower(r)))
	x.AddValue("utf8-length", utf8.RuneLen(r))
}

var categoryTables = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Lu", unicode.Lu}, {"Ll", unicode.Ll}, {"Lt", unicode.Lt}, {"Lm", unicode.Lm}, {"Lo", unicode.Lo},
	{"Mn", unicode.Mn}, {"Mc", unicode.Mc}, {"Me", unicode.Me},
	{"Nd", unicode.Nd}, {"Nl", unicode.Nl}, {"No", unicode.No},
	{"Pc", unicode.Pc}, {"Pd", unicode.Pd}, {"Ps", unicode.Ps}, {"Pe", unicode.Pe},
	{"Pi", unicode.Pi}, {"Pf", unicode.Pf}, {"Po", unicode.Po},
	{"Sm", unicode.Sm}, {"Sc", unicode.Sc}, {"Sk", unicode.Sk}, {"So", unicode.So},
	{"Zs", unicode.Zs}, {"Zl", unicode.Zl}, {"Zp", unicode.Zp},
	{"Cc", unicode.Cc}, {"Cf", unicode.Cf}, {"Co", unicode.Co}, {"Cs", unicode.Cs},
}

// runeCategory returns the two-letter Unicode general category of r.
func runeCategory(r rune) string {
	for _, c := range categoryTables {
		if unicode.Is(c.table, r) {
			return c.name
		}
	}
	return "Cn"
}

// extractFloat decomposes a float into sign * mantissa * radix^exponent.
func extractFloat(x *Extraction, v reflect.Value) {
	f := v.Float()
	prec := 53
	maxVal := math.MaxFloat64
	if v.Kind() == reflect.Float32 {
		prec, maxVal = 24, math.MaxFloat32
	}
	sign := 1
	if math.Signbit(f) {
		sign = -1
	}
	x.AddValue("sign", sign)
	switch {
	case math.IsNaN(f):
		x.AddValue("special", "NaN")
	case math.IsInf(f, 0):
		x.AddValue("special", "Inf")
	default:
		mant, exp := decodeFloat(math.Abs(f), prec)
		x.AddValue("exponent", exp)
		x.AddValue("mantissa", mant)
	}
	x.AddValue("radix", 2)
	x.AddValue("precision", prec)
	x.AddValue("max-value", maxVal)
	if r, ok := roundFloat(f); ok {
		x.AddValue("rounded", r)
	}
}

// decodeFloat returns the integer significand and exponent of a non-negative
// finite f such that f == mant * 2^exp.
func decodeFloat(f float64, prec int) (uint64, int) {
	if f == 0 {
		return 0, 0
	}
	frac, exp := math.Frexp(f)
	mant := uint64(math.Ldexp(frac, prec))
	return mant, exp - prec
}

// roundFloat rounds to the nearest integer, halves to even. Values outside
// the int64 range are rounded into a big.Int.
func roundFloat(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	r := math.RoundToEven(f)
	if r >= math.MinInt64 && r < math.MaxInt64 {
		return int64(r), true
	}
	bi, _ := big.NewFloat(r).Int(nil)
	return bi, true
}

func extractComplex(x *Extraction, v reflect.Value) {
	c := v.Complex()
	x.AddValue("real", real(c))
	x.AddValue("imag", imag(c))
	x.AddValue("abs", cmplx.Abs(c))
	x.AddValue("phase", cmplx.Phase(c))
}

func extractString(x *Extraction, v reflect.Value) {
	s := v.String()
	x.AddValue("length", len(s))
	x.AddValue("rune-count", utf8.RuneCountInString(s))
	x.AddValue("valid-utf8", utf8.ValidString(s))
}

// extractEnum gives integer-kinded Stringer types (time.Month, os.FileMode,
// generated enums) a symbolic view.
func extractEnum(x *Extraction, v reflect.Value) {
	s, ok := interfaceOf(v)
	if !ok {
		return
	}
	x.AddValue("name", s.(fmt.Stringer).String())
	switch {
	case isIntKind(v.Kind()):
		x.AddValue("ordinal", v.Int())
	case isUintKind(v.Kind()):
		x.AddValue("ordinal", v.Uint())
	}
}

func isEnumType(t reflect.Type) bool {
	k := t.Kind()
	return (isIntKind(k) || isUintKind(k)) && t.Implements(TypeOf[fmt.Stringer]())
}

func extractBigInt(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	n, _ := iv.(*big.Int)
	if n == nil {
		return
	}
	x.AddValue("sign", n.Sign())
	x.AddValue("bit-length", n.BitLen())
	if n.IsInt64() {
		x.AddValue("int64", n.Int64())
	}
	x.AddValue("hex", n.Text(16))
}

func extractBigRat(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	r, _ := iv.(*big.Rat)
	if r == nil {
		return
	}
	x.AddValue("numerator", new(big.Int).Set(r.Num()))
	x.AddValue("denominator", new(big.Int).Set(r.Denom()))
	x.AddValue("rounded", roundRat(r))
	f, exact := r.Float64()
	x.AddValue("float64", f)
	x.AddValue("exact", exact)
}

// roundRat rounds r to the nearest integer, halves to even.
func roundRat(r *big.Rat) *big.Int {
	num, den := r.Num(), r.Denom()
	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	m.Abs(m).Lsh(m, 1)
	if c := m.Cmp(den); c > 0 || (c == 0 && q.Bit(0) == 1) {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

func extractBigFloat(x *Extraction, v reflect.Value) {
	iv, _ := interfaceOf(v)
	f, _ := iv.(*big.Float)
	if f == nil {
		return
	}
	mant := new(big.Float)
	exp := f.MantExp(mant)
	x.AddValue("sign", f.Sign())
	x.AddValue("exponent", exp)
	x.AddValue("mantissa", mant)
	x.AddValue("radix", 2)
	x.AddValue("precision", f.Prec())
	x.AddValue("mode", f.Mode().String())
	x.AddValue("accuracy", f.Acc().String())
	if !f.IsInf() {
		r, _ := f.Rat(nil)
		x.AddValue("rounded", roundRat(r))
	}
}

func extractDuration(x *Extraction, v reflect.Value) {
	d := time.Duration(v.Int())
	x.AddValue("string", d.String())
	x.AddValue("hours", d.Hours())
	x.AddValue("minutes", d.Minutes())
	x.AddValue("seconds", d.Seconds())
	x.AddValue("nanoseconds", d.Nanoseconds())
}

func extractTime(x *Extraction, v reflect.Value) {
	tv, ok := interfaceOf(v)
	if !ok {
		return
	}
	t := tv.(time.Time)
	x.AddValue("year", t.Year())
	x.AddValue("month", t.Month())
	x.AddValue("day", t.Day())
	x.AddValue("hour", t.Hour())
	x.AddValue("minute", t.Minute())
	x.AddValue("second", t.Second())
	x.AddValue("nanosecond", t.Nanosecond())
	x.AddValue("weekday", t.Weekday())
	x.AddValue("yearday", t.YearDay())
	x.AddValue("location", t.Location().String())
	x.AddValue("unix", t.Unix())
	x.AddValue("zero", t.IsZero())
}
