package goinspect

import "reflect"

// trait is a rule selected by a type predicate (usually "implements interface I").
type trait[R any] struct {
	name  string
	match func(reflect.Type) bool
	rule  R
}

// table maps runtime types to rules. Lookup order: exact type, then kind,
// with traits consulted alongside. Rules register without touching the
// dispatcher itself.
type table[R any] struct {
	byType   map[reflect.Type]R
	byKind   map[reflect.Kind]R
	traits   []trait[R]
	fallback R
	hasFall  bool
}

func newTable[R any]() *table[R] {
	return &table[R]{byType: map[reflect.Type]R{}, byKind: map[reflect.Kind]R{}}
}

func (t *table[R]) clone() *table[R] {
	c := newTable[R]()
	for k, v := range t.byType {
		c.byType[k] = v
	}
	for k, v := range t.byKind {
		c.byKind[k] = v
	}
	c.traits = append(c.traits, t.traits...)
	c.fallback, c.hasFall = t.fallback, t.hasFall
	return c
}

// exact returns the rule registered for typ itself.
func (t *table[R]) exact(typ reflect.Type) (R, bool) {
	r, ok := t.byType[typ]
	return r, ok
}

// kind returns the rule registered for typ's kind.
func (t *table[R]) kind(typ reflect.Type) (R, bool) {
	r, ok := t.byKind[typ.Kind()]
	return r, ok
}

// matching returns every trait rule whose predicate accepts typ, in
// registration order.
func (t *table[R]) matching(typ reflect.Type) []R {
	var out []R
	for _, tr := range t.traits {
		if tr.match(typ) {
			out = append(out, tr.rule)
		}
	}
	return out
}

func (t *table[R]) addTrait(name string, match func(reflect.Type) bool, r R) {
	for i := range t.traits {
		if t.traits[i].name == name {
			t.traits[i] = trait[R]{name: name, match: match, rule: r}
			return
		}
	}
	t.traits = append(t.traits, trait[R]{name: name, match: match, rule: r})
}

// Implements returns a type predicate matching types that implement I.
func Implements[I any]() func(reflect.Type) bool {
	it := reflect.TypeOf((*I)(nil)).Elem()
	return func(t reflect.Type) bool { return t.Implements(it) }
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
