package goinspect

import (
	"errors"
	"fmt"
	"reflect"
)

// Problem codes (exported consts so callers can switch on them).
const (
	CodeNoSuchField   = "no_such_field"
	CodeNotModifiable = "not_modifiable"
	CodeNotAssignable = "not_assignable"
	CodeFirstPage     = "first_page"
	CodeLastPage      = "last_page"
	CodeEvalFailed    = "eval_failed"
	CodeNoEvaluator   = "no_evaluator"
	CodeBadInput      = "bad_input"
	CodeBadArgument   = "bad_argument"
	CodeSetFailed     = "set_failed"
)

var (
	// ErrNoSuchField is reported when a key matches no field.
	ErrNoSuchField = errors.New("goinspect: no such field")
	// ErrNotModifiable is reported when a field exists but has no setter.
	ErrNotModifiable = errors.New("goinspect: field is not modifiable")
	// ErrNotAssignable is returned by setters when a value cannot be converted
	// to the field's type.
	ErrNotAssignable = errors.New("goinspect: value not assignable")
	// ErrFirstPage and ErrLastPage mark paging requests past either end.
	ErrFirstPage = errors.New("goinspect: already at first page")
	ErrLastPage  = errors.New("goinspect: already at last page")
	// ErrNoEvaluator is returned when expression evaluation is requested but
	// the session has no evaluator able to handle the input.
	ErrNoEvaluator = errors.New("goinspect: no evaluator")
)

// Problem is an operator-facing failure: what went wrong (Code), on which key,
// and the underlying cause.
type Problem struct {
	Code    string
	Key     string // rendered key, empty when not applicable
	Message string
	Cause   error
}

func (p *Problem) Error() string {
	msg := p.Message
	if msg == "" {
		msg = p.Code
	}
	if p.Key != "" {
		msg = fmt.Sprintf("%s: %s", msg, p.Key)
	}
	if p.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, p.Cause)
	}
	return msg
}

func (p *Problem) Unwrap() error { return p.Cause }

// AsProblem extracts a *Problem from err using errors.As.
func AsProblem(err error) (*Problem, bool) {
	if err == nil {
		return nil, false
	}
	var p *Problem
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

func noSuchField(k Key) error {
	return &Problem{Code: CodeNoSuchField, Key: k.String(), Cause: ErrNoSuchField}
}

func notModifiable(k Key) error {
	return &Problem{Code: CodeNotModifiable, Key: k.String(), Cause: ErrNotModifiable}
}

func notAssignable(t reflect.Type, what string) error {
	return &Problem{
		Code:    CodeNotAssignable,
		Message: fmt.Sprintf("cannot assign %s to %s", what, t),
		Cause:   ErrNotAssignable,
	}
}
