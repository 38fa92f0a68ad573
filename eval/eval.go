// Package eval provides a Go expression evaluator for inspector sessions,
// backed by the yaegi interpreter.
//
// The object being inspected is reachable from expressions as goinspect.Self
// (of type any). The fmt, strings and strconv packages are imported up front:
//
//	goinspect /Items> evaluate fmt.Sprintf("%T", goinspect.Self)
//	goinspect /Items> len(goinspect.Self.([]any))
package eval

import (
	"context"
	"io"
	"reflect"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// preludeImports are evaluated when the interpreter is created.
var preludeImports = []string{"goinspect", "fmt", "strings", "strconv"}

// Evaluator evaluates Go source with yaegi. It is safe for use by one session
// at a time; calls are serialized.
type Evaluator struct {
	mu   sync.Mutex
	in   *interp.Interpreter
	self any
}

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	stdout, stderr io.Writer
	exports        []interp.Exports
}

// WithOutput directs the interpreter's standard output and error.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *config) { c.stdout, c.stderr = stdout, stderr }
}

// WithSymbols exposes additional packages to expressions.
func WithSymbols(ex interp.Exports) Option {
	return func(c *config) { c.exports = append(c.exports, ex) }
}

// New returns an Evaluator with the standard library loaded.
func New(opts ...Option) (*Evaluator, error) {
	var c config
	for _, o := range opts {
		o(&c)
	}
	e := &Evaluator{}
	e.in = interp.New(interp.Options{Stdout: c.stdout, Stderr: c.stderr})
	if err := e.in.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	if err := e.in.Use(interp.Exports{
		"goinspect/goinspect": {"Self": reflect.ValueOf(&e.self).Elem()},
	}); err != nil {
		return nil, err
	}
	for _, ex := range c.exports {
		if err := e.in.Use(ex); err != nil {
			return nil, err
		}
	}
	for _, p := range preludeImports {
		if _, err := e.in.Eval(`import "` + p + `"`); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Eval evaluates src with goinspect.Self bound to self. Statements produce no
// values; expressions produce one.
func (e *Evaluator) Eval(ctx context.Context, src string, self reflect.Value) ([]reflect.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.self = nil
	if self.IsValid() && self.CanInterface() {
		e.self = self.Interface()
	}
	v, err := e.in.EvalWithContext(ctx, src)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	return []reflect.Value{v}, nil
}
