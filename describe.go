package goinspect

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Describer renders the human-readable summary of a value.
type Describer interface {
	Describe(d *Description, v reflect.Value)
}

// DescriberFunc adapts a function to Describer.
type DescriberFunc func(d *Description, v reflect.Value)

func (f DescriberFunc) Describe(d *Description, v reflect.Value) { f(d, v) }

// Description collects one summary line and any number of detail lines.
// Detail clauses that fail are omitted rather than aborting the summary.
type Description struct {
	summary string
	details []string
	width   int
	logger  *zap.Logger
}

// Summary sets the summary line: a type tag followed by a compact rendering.
func (d *Description) Summary(tag, format string, args ...any) {
	d.summary = tag + ": " + fmt.Sprintf(format, args...)
}

// Detail appends a detail line.
func (d *Description) Detail(format string, args ...any) {
	d.details = append(d.details, fmt.Sprintf(format, args...))
}

// Clause appends the line fn produces. A panic or an empty result drops the
// line.
func (d *Description) Clause(fn func() string) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Debug("describe clause failed", zap.Any("panic", p))
		}
	}()
	if s := fn(); s != "" {
		d.details = append(d.details, s)
	}
}

// Compact renders v on one line, truncated to the configured width.
func (d *Description) Compact(v reflect.Value) string { return compact(v, d.width) }

// Lines returns the summary followed by the detail lines.
func (d *Description) Lines() []string {
	return append([]string{d.summary}, d.details...)
}

// Describers is the description registry. Lookup order: exact type, first
// matching trait, kind, fallback.
type Describers struct {
	rules  *table[Describer]
	width  int
	logger *zap.Logger
}

// NewDescribers returns a registry preloaded with the built-in rules.
func NewDescribers() *Describers {
	d := &Describers{rules: newTable[Describer](), width: defaultValueWidth, logger: zap.NewNop()}
	registerBuiltinDescribers(d)
	return d
}

// Clone returns an independent copy that can be extended separately.
func (d *Describers) Clone() *Describers {
	return &Describers{rules: d.rules.clone(), width: d.width, logger: d.logger}
}

func (d *Describers) RegisterType(t reflect.Type, r Describer) { d.rules.byType[t] = r }

func (d *Describers) RegisterKind(k reflect.Kind, r Describer) { d.rules.byKind[k] = r }

func (d *Describers) RegisterTrait(name string, match func(reflect.Type) bool, r Describer) {
	d.rules.addTrait(name, match, r)
}

func (d *Describers) SetFallback(r Describer) { d.rules.fallback, d.rules.hasFall = r, true }

// SetWidth bounds the compact renderings used in summaries.
func (d *Describers) SetWidth(n int) {
	if n > 0 {
		d.width = n
	}
}

func (d *Describers) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	d.logger = l
}

func (d *Describers) lookup(t reflect.Type) (Describer, bool) {
	if r, ok := d.rules.exact(t); ok {
		return r, true
	}
	if rs := d.rules.matching(t); len(rs) > 0 {
		return rs[0], true
	}
	if r, ok := d.rules.kind(t); ok {
		return r, true
	}
	return d.rules.fallback, d.rules.hasFall
}

// Lines describes v. It never panics; a failing rule leaves the generic
// summary in place.
func (d *Describers) Lines(v reflect.Value) []string {
	v = unwrapInterface(v)
	desc := &Description{width: d.width, logger: d.logger}
	if !v.IsValid() {
		desc.Summary("nil", "no value")
		return desc.Lines()
	}
	desc.Summary(v.Type().String(), "%s", compact(v, d.width))
	r, ok := d.lookup(v.Type())
	if !ok {
		return desc.Lines()
	}
	func() {
		defer func() {
			if p := recover(); p != nil {
				desc.details = nil
				d.logger.Debug("describe rule failed", zap.String("type", v.Type().String()), zap.Any("panic", p))
			}
		}()
		r.Describe(desc, v)
	}()
	return desc.Lines()
}

// Describe writes the description of v to w, details indented.
func (d *Describers) Describe(w io.Writer, v reflect.Value) {
	for i, l := range d.Lines(v) {
		if i > 0 {
			l = "  " + l
		}
		fmt.Fprintln(w, l)
	}
}

var (
	defaultDescribersOnce sync.Once
	defaultDescribers     *Describers
)

// Describe writes the description of x to w using the built-in rules.
func Describe(w io.Writer, x any) {
	defaultDescribersOnce.Do(func() { defaultDescribers = NewDescribers() })
	defaultDescribers.Describe(w, reflect.ValueOf(x))
}

const defaultValueWidth = 70

// compact renders v on one line, truncated to width runes.
func compact(v reflect.Value, width int) (s string) {
	defer func() {
		if p := recover(); p != nil {
			s = fmt.Sprintf("#<%s unprintable>", v.Type())
		}
	}()
	v = unwrapInterface(v)
	if !v.IsValid() {
		return "nil"
	}
	switch shape := shapeOf(v); {
	case shape == cyclic:
		return fmt.Sprintf("#<%s circular>", v.Type())
	case shape == oversized:
		s = boundedString(v)
	case v.Kind() == reflect.String:
		s = fmt.Sprintf("%q", v.String())
	default:
		s = fmt.Sprintf("%v", v)
	}
	s = strings.ReplaceAll(s, "\n", `\n`)
	return truncate(s, width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
