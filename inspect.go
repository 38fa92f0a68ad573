package goinspect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/goinspect/i18n"
)

const (
	DefaultPageLength = 10
	DefaultPrompt     = "goinspect"
)

// Options configures a session. Zero fields take defaults.
type Options struct {
	In         LineReader
	Out        io.Writer
	Prompt     string
	PageLength int
	ValueWidth int
	KeepNull   bool // list absent fields that have no setter
	Commands   *Commands
	Evaluator  Evaluator
	Extractors *Extractors
	Describers *Describers
	Probes     []Probe
	Logger     *zap.Logger
	Translator i18n.Translator

	Summary    func(w io.Writer, v reflect.Value)
	Fields     func(v reflect.Value) []Field
	PrintField func(w io.Writer, pos int, f Field)
}

// Option mutates Options.
type Option func(*Options)

func WithStream(r io.Reader, w io.Writer) Option {
	return func(o *Options) { o.In, o.Out = NewLineReader(r, w), w }
}

func WithLineReader(r LineReader) Option { return func(o *Options) { o.In = r } }

func WithOutput(w io.Writer) Option { return func(o *Options) { o.Out = w } }

func WithPrompt(p string) Option { return func(o *Options) { o.Prompt = p } }

func WithPageLength(n int) Option { return func(o *Options) { o.PageLength = n } }

// WithValueWidth bounds the rendering of values in field lines and summaries.
func WithValueWidth(n int) Option { return func(o *Options) { o.ValueWidth = n } }

// WithStripNull controls whether absent fields without a setter are listed.
// Stripping is on by default.
func WithStripNull(strip bool) Option { return func(o *Options) { o.KeepNull = !strip } }

// WithCommands replaces the built-in command table.
func WithCommands(c *Commands) Option { return func(o *Options) { o.Commands = c } }

// WithEvaluator installs the expression evaluator used by evaluate, by
// command arguments and by unresolved input.
func WithEvaluator(e Evaluator) Option { return func(o *Options) { o.Evaluator = e } }

func WithExtractors(e *Extractors) Option { return func(o *Options) { o.Extractors = e } }

func WithDescribers(d *Describers) Option { return func(o *Options) { o.Describers = d } }

// WithProbes adds platform probes to the extraction registry.
func WithProbes(ps ...Probe) Option {
	return func(o *Options) { o.Probes = append(o.Probes, ps...) }
}

func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

func WithTranslator(t i18n.Translator) Option { return func(o *Options) { o.Translator = t } }

// WithSummary replaces the summary printed above the field listing.
func WithSummary(fn func(w io.Writer, v reflect.Value)) Option {
	return func(o *Options) { o.Summary = fn }
}

// WithFields replaces extraction for the whole session.
func WithFields(fn func(v reflect.Value) []Field) Option {
	return func(o *Options) { o.Fields = fn }
}

func WithFieldPrinter(fn func(w io.Writer, pos int, f Field)) Option {
	return func(o *Options) { o.PrintField = fn }
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.In == nil {
		o.In = NewLineReader(os.Stdin, o.Out)
	}
	if o.Prompt == "" {
		o.Prompt = DefaultPrompt
	}
	if o.PageLength <= 0 {
		o.PageLength = DefaultPageLength
	}
	if o.ValueWidth <= 0 {
		o.ValueWidth = defaultValueWidth
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Translator == nil {
		o.Translator = i18n.Current()
	}
	if o.Commands == nil {
		o.Commands = DefaultCommands()
	}
	if o.Fields == nil {
		ex := o.Extractors
		if ex == nil {
			ex = sharedExtractors()
		}
		ex = ex.Clone()
		for _, p := range o.Probes {
			ex.AddProbe(p)
		}
		ex.SetLogger(o.Logger)
		strip := !o.KeepNull
		o.Fields = func(v reflect.Value) []Field { return ex.Extract(v, strip) }
	}
	if o.Summary == nil {
		d := o.Describers
		if d == nil {
			d = NewDescribers()
		}
		d = d.Clone()
		d.SetWidth(o.ValueWidth)
		d.SetLogger(o.Logger)
		o.Summary = d.Describe
	}
	if o.PrintField == nil {
		o.PrintField = FieldPrinter(o.ValueWidth)
	}
	return o
}

// Inspect opens an interactive session on x and serves it until the operator
// quits or input ends. The set-field and istep commands are added to the
// command table unless it already has commands of those names. Pass a pointer
// to inspect a value mutably.
func Inspect(ctx context.Context, x any, opts ...Option) error {
	o := newOptions(opts)
	cmds := o.Commands.Clone()
	for _, c := range FieldCommands() {
		if !cmds.Has(c.Name()) {
			cmds.Add(c)
		}
	}
	o.Commands = cmds
	s := newSession(reflect.ValueOf(x), o)
	s.logger.Info("inspection started", zap.String("type", fmt.Sprintf("%T", x)))
	out, err := s.Run(ctx)
	s.logger.Info("inspection finished", zap.Stringer("outcome", out), zap.Error(err))
	return err
}

type lineReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewLineReader reads lines from r, writing prompts to w.
func NewLineReader(r io.Reader, w io.Writer) LineReader {
	return &lineReader{r: bufio.NewReader(r), w: w}
}

func (l *lineReader) ReadLine(prompt string) (string, error) {
	if l.w != nil && prompt != "" {
		if _, err := io.WriteString(l.w, prompt); err != nil {
			return "", err
		}
	}
	line, err := l.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}
