package goinspect

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Extractor contributes the variant-specific fields of a value.
type Extractor interface {
	Extract(x *Extraction, v reflect.Value)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(x *Extraction, v reflect.Value)

func (f ExtractorFunc) Extract(x *Extraction, v reflect.Value) { f(x, v) }

// Probe is the platform extension point: it may append implementation-private
// fields for a value. Returning nothing is always acceptable.
type Probe interface {
	Probe(v reflect.Value) []Field
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(v reflect.Value) []Field

func (f ProbeFunc) Probe(v reflect.Value) []Field { return f(v) }

// Extraction accumulates the fields of one value. Rules add header fields with
// Add and element/slot fields with AddElement; the registry assembles them as
// base, variant, probe, element.
type Extraction struct {
	ex       *Extractors
	typed    []Field
	elements []Field
	depth    int
}

// Add appends variant-specific fields.
func (x *Extraction) Add(fs ...Field) { x.typed = append(x.typed, fs...) }

// AddValue is a shorthand for a read-only field holding a computed value.
func (x *Extraction) AddValue(name string, val any) {
	x.typed = append(x.typed, Field{Key: Name(name), Value: valueOf(val)})
}

// AddElement appends element or slot fields (sequence elements, struct
// members, map entries).
func (x *Extraction) AddElement(fs ...Field) { x.elements = append(x.elements, fs...) }

// Contribute runs the variant rules of v into this extraction, without v's
// base fields. Pointer and interface rules use it to flatten their target.
func (x *Extraction) Contribute(v reflect.Value) {
	if x.depth >= maxContributeDepth {
		return
	}
	x.depth++
	defer func() { x.depth-- }()
	x.ex.contribute(x, unwrapInterface(v), false)
}

const maxContributeDepth = 8

// Extractors is the extraction registry. Register rules before sharing an
// Extractors between goroutines; lookups are read-only afterwards.
type Extractors struct {
	rules  *table[Extractor]
	probes []Probe
	logger *zap.Logger
}

// NewExtractors returns a registry preloaded with the built-in rules.
func NewExtractors() *Extractors {
	e := &Extractors{rules: newTable[Extractor](), logger: zap.NewNop()}
	registerBuiltinExtractors(e)
	return e
}

// Clone returns an independent copy that can be extended separately.
func (e *Extractors) Clone() *Extractors {
	return &Extractors{
		rules:  e.rules.clone(),
		probes: append([]Probe(nil), e.probes...),
		logger: e.logger,
	}
}

// RegisterType installs a rule for exactly type t. Exact-type rules replace
// both the kind rule and the traits for that type.
func (e *Extractors) RegisterType(t reflect.Type, r Extractor) { e.rules.byType[t] = r }

// RegisterKind installs the rule used for every type of kind k without an
// exact-type rule.
func (e *Extractors) RegisterKind(k reflect.Kind, r Extractor) { e.rules.byKind[k] = r }

// RegisterTrait installs a rule applied, in addition to the kind rule, to every
// type accepted by match. Registering an existing name replaces it.
func (e *Extractors) RegisterTrait(name string, match func(reflect.Type) bool, r Extractor) {
	e.rules.addTrait(name, match, r)
}

// SetFallback installs the rule used when nothing else matches.
func (e *Extractors) SetFallback(r Extractor) { e.rules.fallback, e.rules.hasFall = r, true }

// AddProbe appends a platform probe.
func (e *Extractors) AddProbe(p Probe) { e.probes = append(e.probes, p) }

// SetLogger sets the logger that receives recovered rule failures.
func (e *Extractors) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	e.logger = l
}

// Extract returns the ordered fields of v. With stripNull, absent fields
// without a setter are dropped. Extract never panics: a failing rule or probe
// contributes nothing.
func (e *Extractors) Extract(v reflect.Value, stripNull bool) []Field {
	v = unwrapInterface(v)
	x := &Extraction{ex: e}
	base := e.base(v)
	if v.IsValid() {
		e.contribute(x, v, true)
	}
	var probed []Field
	for _, p := range e.probes {
		probed = append(probed, e.probe(p, v)...)
	}
	out := make([]Field, 0, len(base)+len(x.typed)+len(probed)+len(x.elements))
	out = append(out, base...)
	out = append(out, x.typed...)
	out = append(out, probed...)
	out = append(out, x.elements...)
	if stripNull {
		out = strip(out)
	}
	uniquify(out)
	return out
}

// contribute runs the exact-type rule, or else the kind rule plus (withTraits)
// every matching trait, falling back when nothing applied.
func (e *Extractors) contribute(x *Extraction, v reflect.Value, withTraits bool) {
	if !v.IsValid() {
		return
	}
	t := v.Type()
	if r, ok := e.rules.exact(t); ok {
		e.run(r, x, v, t.String())
		return
	}
	matched := false
	if r, ok := e.rules.kind(t); ok {
		e.run(r, x, v, t.Kind().String())
		matched = true
	}
	if withTraits {
		for _, r := range e.rules.matching(t) {
			e.run(r, x, v, "trait")
			matched = true
		}
	}
	if !matched && e.rules.hasFall {
		e.run(e.rules.fallback, x, v, "fallback")
	}
}

// run applies one rule, discarding whatever it added if it panics.
func (e *Extractors) run(r Extractor, x *Extraction, v reflect.Value, rule string) {
	nt, ne := len(x.typed), len(x.elements)
	defer func() {
		if p := recover(); p != nil {
			x.typed, x.elements = x.typed[:nt], x.elements[:ne]
			e.logger.Debug("extract rule failed",
				zap.String("rule", rule), zap.String("type", v.Type().String()), zap.Any("panic", p))
		}
	}()
	r.Extract(x, v)
}

func (e *Extractors) probe(p Probe, v reflect.Value) (fs []Field) {
	defer func() {
		if r := recover(); r != nil {
			fs = nil
			e.logger.Debug("probe failed", zap.String("probe", fmt.Sprintf("%T", p)), zap.Any("panic", r))
		}
	}()
	return p.Probe(v)
}

// base builds the fields every value carries: identity, type, kind and, for
// record types, the member definitions and method set.
func (e *Extractors) base(v reflect.Value) []Field {
	fs := []Field{
		{Key: Name("identity"), Value: identity(v)},
		{Key: Name("type"), Value: typeName(v)},
		{Key: Name("kind"), Value: kindName(v)},
	}
	if !v.IsValid() {
		return fs
	}
	t := v.Type()
	if st := indirectType(t); st.Kind() == reflect.Struct {
		members := make([]string, 0, st.NumField())
		for i := 0; i < st.NumField(); i++ {
			members = append(members, memberDef(st.Field(i)))
		}
		fs = append(fs, Field{Key: Name("members"), Value: valueOf(members)})
	}
	if t.NumMethod() > 0 {
		methods := make([]string, 0, t.NumMethod())
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			methods = append(methods, m.Name+funcSignature(m.Type, t.Kind() != reflect.Interface))
		}
		fs = append(fs, Field{Key: Name("methods"), Value: valueOf(methods)})
	}
	return fs
}

func identity(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return reflect.Value{}
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if p := v.Pointer(); p != 0 {
			return valueOf(fmt.Sprintf("%#x", p))
		}
		return reflect.Value{}
	}
	if v.CanAddr() {
		return valueOf(fmt.Sprintf("%#x", v.UnsafeAddr()))
	}
	return reflect.Value{}
}

func typeName(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return valueOf("nil")
	}
	return valueOf(v.Type().String())
}

func kindName(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return valueOf("invalid")
	}
	return valueOf(v.Kind().String())
}

var (
	defaultExtractorsOnce sync.Once
	defaultExtractors     *Extractors
)

func sharedExtractors() *Extractors {
	defaultExtractorsOnce.Do(func() { defaultExtractors = NewExtractors() })
	return defaultExtractors
}

// Extract returns the stripped fields of x using the built-in rules.
func Extract(x any) []Field {
	return sharedExtractors().Extract(reflect.ValueOf(x), true)
}

// ExtractValue is Extract for a reflect.Value, with control over the absent
// field filter. Pass an addressable value to get settable fields.
func ExtractValue(v reflect.Value, stripNull bool) []Field {
	return sharedExtractors().Extract(v, stripNull)
}
