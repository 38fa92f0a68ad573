package goinspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reoring/goinspect/i18n"
	"github.com/reoring/goinspect/internal/input"
)

// LineReader is the input half of the operator channel. ReadLine shows prompt
// and blocks until a line is available; io.EOF ends the session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Evaluator evaluates operator expressions. self is the object of the frame
// the expression was typed in.
type Evaluator interface {
	Eval(ctx context.Context, src string, self reflect.Value) ([]reflect.Value, error)
}

// Session is one inspection frame: an object, its field view and the paging
// window over it. Drilling into a field runs a child Session; the parent's
// window is untouched while the child runs.
type Session struct {
	id     string
	object reflect.Value
	path   Path
	offset int
	page   int
	fields []Field
	index  []int

	in         LineReader
	out        io.Writer
	prompt     string
	valueWidth int
	commands   *Commands
	eval       Evaluator
	tr         i18n.Translator
	base       *zap.Logger
	logger     *zap.Logger

	summaryFn    func(w io.Writer, v reflect.Value)
	fieldsFn     func(v reflect.Value) []Field
	printFieldFn func(w io.Writer, pos int, f Field)
}

// NewSession returns a root session on v. It does not register the field
// commands; Inspect does.
func NewSession(v reflect.Value, opts ...Option) *Session {
	o := newOptions(opts)
	return newSession(v, o)
}

func newSession(v reflect.Value, o Options) *Session {
	s := &Session{
		id:           uuid.NewString(),
		object:       v,
		page:         o.PageLength,
		in:           o.In,
		out:          o.Out,
		prompt:       o.Prompt,
		valueWidth:   o.ValueWidth,
		commands:     o.Commands,
		eval:         o.Evaluator,
		tr:           o.Translator,
		base:         o.Logger,
		summaryFn:    o.Summary,
		fieldsFn:     o.Fields,
		printFieldFn: o.PrintField,
	}
	s.logger = s.base.With(zap.String("session", s.id), zap.String("path", s.path.String()))
	s.Refresh()
	return s
}

// child returns the frame for drilling into f.
func (s *Session) child(f Field) *Session {
	c := *s
	c.id = uuid.NewString()
	c.object = f.Value
	c.path = s.path.Child(f.Key)
	c.offset = 0
	c.fields, c.index = nil, nil
	c.logger = c.base.With(zap.String("session", c.id), zap.String("path", c.path.String()))
	c.Refresh()
	return &c
}

func (s *Session) ID() string { return s.id }
func (s *Session) Object() reflect.Value { return s.object }
func (s *Session) Path() Path { return s.path }
func (s *Session) Offset() int { return s.offset }
func (s *Session) PageLength() int { return s.page }
func (s *Session) Out() io.Writer { return s.out }
func (s *Session) Commands() *Commands { return s.commands }
func (s *Session) Fields() []Field { return s.fields }
func (s *Session) Prompt() string { return fmt.Sprintf("%s %s> ", s.prompt, s.path) }
func (s *Session) Translator() i18n.Translator { return s.tr }

// Refresh re-extracts the fields of the object and keeps the window inside
// the new field count.
func (s *Session) Refresh() {
	s.fields = s.fieldsFn(s.object)
	s.index = IndexFields(s.fields)
	if s.offset > 0 && s.offset >= len(s.fields) {
		s.offset = max(0, len(s.fields)-s.page)
	}
}

// SetPageLength changes the window size; n must be positive. The offset is
// kept, so the window may end short of a full page until the next move.
func (s *Session) SetPageLength(n int) {
	if n > 0 {
		s.page = n
	}
}

// NextPage advances the window by one page. The target offset is clamped so
// that the last page is a full window; from a short window at the end this
// moves the offset back to fill it.
func (s *Session) NextPage() error {
	next := min(s.offset+s.page, max(0, len(s.fields)-s.page))
	if next == s.offset {
		return &Problem{Code: CodeLastPage, Cause: ErrLastPage}
	}
	s.offset = next
	return nil
}

// PreviousPage moves the window back by one page.
func (s *Session) PreviousPage() error {
	if s.offset == 0 {
		return &Problem{Code: CodeFirstPage, Cause: ErrFirstPage}
	}
	s.offset = max(0, s.offset-s.page)
	return nil
}

// Home moves the window to the first field.
func (s *Session) Home() { s.offset = 0 }

// Window returns the half-open range of field slots currently shown.
func (s *Session) Window() (start, end int) {
	return s.offset, min(s.offset+s.page, len(s.fields))
}

// Render prints the summary, the current page of fields and the footer.
func (s *Session) Render() {
	s.Refresh()
	s.summaryFn(s.out, s.object)
	start, end := s.Window()
	for i := start; i < end; i++ {
		s.printFieldFn(s.out, s.index[i], s.fields[i])
	}
	first := start + 1
	if len(s.fields) == 0 {
		first, end = 0, 0
	}
	s.Say("footer", map[string]string{
		"start": strconv.Itoa(first),
		"end":   strconv.Itoa(end),
		"total": strconv.Itoa(len(s.fields)),
	})
}

// Say prints the operator message for code.
func (s *Session) Say(code string, data map[string]string) {
	fmt.Fprintln(s.out, s.tr.Message(code, data))
}

// Report prints err as an operator message.
func (s *Session) Report(err error) {
	if err == nil {
		return
	}
	s.logger.Debug("command failed", zap.Error(err))
	fmt.Fprintln(s.out, s.message(err))
}

func (s *Session) message(err error) string {
	p, ok := AsProblem(err)
	if !ok {
		return err.Error()
	}
	detail := p.Message
	if detail == "" && p.Cause != nil {
		detail = p.Cause.Error()
	}
	msg := s.tr.Message(p.Code, map[string]string{"key": p.Key, "input": p.Key, "detail": detail})
	if msg == p.Code {
		return p.Error()
	}
	return msg
}

// Run renders the frame and serves operator input until a command pops the
// frame or terminates the inspection. End of input terminates.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	s.logger.Debug("frame entered")
	s.Render()
	for {
		if err := ctx.Err(); err != nil {
			return Terminate, err
		}
		line, err := s.in.ReadLine(s.Prompt())
		if errors.Is(err, io.EOF) {
			return Terminate, nil
		}
		if err != nil {
			return Terminate, err
		}
		out, err := s.Dispatch(ctx, line)
		if out != Continue {
			s.logger.Debug("frame left", zap.Stringer("outcome", out))
			return out, err
		}
		s.Report(err)
	}
}

// Dispatch resolves one operator line and runs it. Lines that name neither a
// command nor a field are evaluated as expressions. The returned error is an
// operator-facing problem; the session stays usable.
func (s *Session) Dispatch(ctx context.Context, line string) (Outcome, error) {
	ln, err := input.Parse(line)
	if err != nil {
		return Continue, &Problem{Code: CodeBadInput, Cause: err}
	}
	if ln.Empty() {
		return Continue, nil
	}
	s.Refresh()
	m := Resolve(ParseKey(ln.Head), s.commands, s.fields)
	switch {
	case m.Kind == MatchCommand:
		s.logger.Debug("command", zap.String("command", m.Command.Name()))
		return m.Command.Run(ctx, s, Call{Args: ln.Args, Raw: ln.Rest})
	case m.Kind == MatchField && len(ln.Args) == 0:
		return s.DrillIn(ctx, m.Field)
	}
	return Continue, s.EvalPrint(ctx, strings.TrimSpace(line))
}

// DrillIn runs a child session on the value of f and re-renders this frame
// when the child pops.
func (s *Session) DrillIn(ctx context.Context, f Field) (Outcome, error) {
	c := s.child(f)
	s.logger.Info("drill in", zap.String("to", c.path.String()))
	out, err := c.Run(ctx)
	if out == Terminate || err != nil {
		return Terminate, err
	}
	s.logger.Info("back", zap.String("from", c.path.String()))
	s.Render()
	return Continue, nil
}

// SetField writes nv into the field addressed by key. Without a value the
// field gets the zero value of its type. It returns the field as re-read
// after the write.
func (s *Session) SetField(key Key, nv reflect.Value, haveValue bool) (Field, error) {
	s.Refresh()
	f, ok := findField(key, s.fields)
	if !ok {
		return Field{}, noSuchField(key)
	}
	if f.Set == nil {
		return f, notModifiable(f.Key)
	}
	if !haveValue {
		nv = reflect.Value{}
		if f.Value.IsValid() {
			nv = reflect.Zero(f.Value.Type())
		}
	}
	if err := f.Set(nv, f.Value); err != nil {
		if _, ok := AsProblem(err); ok {
			return f, err
		}
		return f, &Problem{Code: CodeSetFailed, Key: f.Key.String(), Cause: err}
	}
	s.logger.Info("field set", zap.String("key", f.Key.String()))
	s.Refresh()
	if nf, ok := Get(s.fields, f.Key); ok {
		f = nf
	}
	return f, nil
}

// Eval evaluates src with the session evaluator. Without one, only literals
// evaluate.
func (s *Session) Eval(ctx context.Context, src string) ([]reflect.Value, error) {
	if s.eval == nil {
		if v, ok := ParseLiteral(src); ok {
			return []reflect.Value{v}, nil
		}
		return nil, &Problem{Code: CodeNoEvaluator, Key: src, Cause: ErrNoEvaluator}
	}
	vs, err := s.eval.Eval(ctx, src, s.object)
	if err != nil {
		s.logger.Debug("evaluation failed", zap.String("input", src), zap.Error(err))
		return nil, &Problem{Code: CodeEvalFailed, Cause: err}
	}
	return vs, nil
}

// EvalArg evaluates a command argument to a single value. Literals are read
// directly.
func (s *Session) EvalArg(ctx context.Context, src string) (reflect.Value, error) {
	if v, ok := ParseLiteral(src); ok {
		return v, nil
	}
	vs, err := s.Eval(ctx, src)
	if err != nil {
		return reflect.Value{}, err
	}
	if len(vs) == 0 {
		return reflect.Value{}, badArgument("%s has no value", src)
	}
	return vs[0], nil
}

// EvalPrint evaluates src and prints each result on its own line.
func (s *Session) EvalPrint(ctx context.Context, src string) error {
	vs, err := s.Eval(ctx, src)
	if err != nil {
		return err
	}
	if len(vs) == 0 {
		s.Say("no_values", nil)
		return nil
	}
	for _, v := range vs {
		fmt.Fprintln(s.out, compact(v, 0))
	}
	return nil
}

// subject is the value standard and aesthetic print: the object, or the
// evaluated argument when one is given.
func (s *Session) subject(ctx context.Context, c Call) (reflect.Value, error) {
	if len(c.Args) == 0 {
		return s.object, nil
	}
	return s.EvalArg(ctx, strings.TrimSpace(c.Raw))
}

// fieldLabel renders a key for the field listing.
func fieldLabel(k Key) string {
	if isSymbolic(k) {
		return k.Name()
	}
	if k.Kind() == KeyName {
		return strconv.Quote(k.Name())
	}
	return k.String()
}

// FieldPrinter returns the default field line printer: [pos] key = value.
func FieldPrinter(width int) func(w io.Writer, pos int, f Field) {
	return func(w io.Writer, pos int, f Field) {
		fmt.Fprintf(w, "[%d] %s = %s\n", pos, fieldLabel(f.Key), compact(f.Value, width))
	}
}

func intValue(v reflect.Value) (int, bool) {
	v = unwrapInterface(v)
	if !v.IsValid() {
		return 0, false
	}
	cv, err := assign(reflect.TypeOf(0), v)
	if err != nil {
		return 0, false
	}
	return int(cv.Int()), true
}
