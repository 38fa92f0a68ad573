package goinspect

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Outcome tells the session loop what to do after a command.
type Outcome uint8

const (
	// Continue keeps the current frame active.
	Continue Outcome = iota
	// PopFrame leaves the current drill-in frame and resumes its parent.
	PopFrame
	// Terminate ends the whole inspection.
	Terminate
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case PopFrame:
		return "pop-frame"
	case Terminate:
		return "terminate"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Call is the argument part of an operator line.
type Call struct {
	Args []string // argument tokens, unevaluated
	Raw  string   // text after the command name
}

// Action runs a command against a session.
type Action func(ctx context.Context, s *Session, c Call) (Outcome, error)

// Command is a named session action. Names are matched by case-insensitive
// prefix; the first name is the canonical one.
type Command struct {
	Names []string
	Args  string // argument synopsis for help, e.g. "key [value]"
	Help  string
	Run   Action
}

// Name returns the canonical name.
func (c *Command) Name() string {
	if len(c.Names) == 0 {
		return ""
	}
	return c.Names[0]
}

// Commands is an ordered command table.
type Commands struct {
	list []*Command
}

// NewCommands returns a table holding cmds in order.
func NewCommands(cmds ...*Command) *Commands {
	t := &Commands{}
	t.Add(cmds...)
	return t
}

// Add appends commands. A command whose canonical name is already present
// replaces the earlier one in place.
func (t *Commands) Add(cmds ...*Command) {
next:
	for _, c := range cmds {
		for i, old := range t.list {
			if strings.EqualFold(old.Name(), c.Name()) {
				t.list[i] = c
				continue next
			}
		}
		t.list = append(t.list, c)
	}
}

// Clone returns a copy that can be extended independently.
func (t *Commands) Clone() *Commands {
	return &Commands{list: append([]*Command(nil), t.list...)}
}

// Lookup returns the first command, in declaration order, having a name that
// starts with prefix (case-insensitive).
func (t *Commands) Lookup(prefix string) (*Command, bool) {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return nil, false
	}
	for _, c := range t.list {
		for _, n := range c.Names {
			if strings.HasPrefix(strings.ToLower(n), prefix) {
				return c, true
			}
		}
	}
	return nil, false
}

// Has reports whether a command has the given canonical name.
func (t *Commands) Has(name string) bool {
	for _, c := range t.list {
		if strings.EqualFold(c.Name(), name) {
			return true
		}
	}
	return false
}

// All returns the commands in declaration order.
func (t *Commands) All() []*Command { return append([]*Command(nil), t.list...) }

// DefaultCommands returns the built-in command table.
func DefaultCommands() *Commands {
	return NewCommands(
		&Command{Names: []string{"quit", "exit"}, Help: "leave the inspector", Run: cmdQuit},
		&Command{Names: []string{"width", "widen", "length"}, Args: "[n]", Help: "show or set the page length", Run: cmdWidth},
		&Command{Names: []string{"next-page"}, Help: "show the next page of fields", Run: cmdNextPage},
		&Command{Names: []string{"previous-page"}, Help: "show the previous page of fields", Run: cmdPreviousPage},
		&Command{Names: []string{"home", "reset", "top"}, Help: "go back to the first page", Run: cmdHome},
		&Command{Names: []string{"self", "show", "current", "again", "this", "redisplay"}, Help: "redisplay the current object", Run: cmdSelf},
		&Command{Names: []string{"standard"}, Args: "[expr]", Help: "print the object (or expr) in machine-readable form", Run: cmdStandard},
		&Command{Names: []string{"aesthetic"}, Args: "[expr]", Help: "print the object (or expr) in human-readable form", Run: cmdAesthetic},
		&Command{Names: []string{"evaluate"}, Args: "expr", Help: "evaluate expr, Self bound to the current object", Run: cmdEvaluate},
		&Command{Names: []string{"up", "pop", "back"}, Help: "return to the parent object", Run: cmdUp},
		&Command{Names: []string{"help", "?"}, Help: "list commands", Run: cmdHelp},
	)
}

// FieldCommands returns the commands that act on a field by key.
func FieldCommands() []*Command {
	return []*Command{
		{Names: []string{"set-field", "modify-field"}, Args: "key [value]", Help: "set a field; no value sets its zero value", Run: cmdSetField},
		{Names: []string{"istep", "inspect"}, Args: "key", Help: "inspect the value of a field", Run: cmdIstep},
	}
}

func cmdQuit(context.Context, *Session, Call) (Outcome, error) { return Terminate, nil }

func cmdUp(context.Context, *Session, Call) (Outcome, error) { return PopFrame, nil }

func cmdWidth(ctx context.Context, s *Session, c Call) (Outcome, error) {
	if len(c.Args) == 0 {
		s.Say("page_length", map[string]string{"n": fmt.Sprint(s.PageLength())})
		return Continue, nil
	}
	v, err := s.EvalArg(ctx, c.Args[0])
	if err != nil {
		return Continue, err
	}
	n, ok := intValue(v)
	if !ok || n <= 0 {
		return Continue, badArgument("page length must be a positive integer, got %s", c.Args[0])
	}
	s.SetPageLength(n)
	s.Say("page_length_set", map[string]string{"n": fmt.Sprint(n)})
	s.Render()
	return Continue, nil
}

func cmdNextPage(_ context.Context, s *Session, _ Call) (Outcome, error) {
	if err := s.NextPage(); err != nil {
		return Continue, err
	}
	s.Render()
	return Continue, nil
}

func cmdPreviousPage(_ context.Context, s *Session, _ Call) (Outcome, error) {
	if err := s.PreviousPage(); err != nil {
		return Continue, err
	}
	s.Render()
	return Continue, nil
}

func cmdHome(_ context.Context, s *Session, _ Call) (Outcome, error) {
	s.Home()
	s.Render()
	return Continue, nil
}

func cmdSelf(_ context.Context, s *Session, _ Call) (Outcome, error) {
	s.Render()
	return Continue, nil
}

func cmdStandard(ctx context.Context, s *Session, c Call) (Outcome, error) {
	v, err := s.subject(ctx, c)
	if err != nil {
		return Continue, err
	}
	return Continue, Standard(s.out, v)
}

func cmdAesthetic(ctx context.Context, s *Session, c Call) (Outcome, error) {
	v, err := s.subject(ctx, c)
	if err != nil {
		return Continue, err
	}
	return Continue, Aesthetic(s.out, v)
}

func cmdEvaluate(ctx context.Context, s *Session, c Call) (Outcome, error) {
	src := strings.TrimSpace(c.Raw)
	if src == "" {
		return Continue, badArgument("usage: evaluate expr")
	}
	return Continue, s.EvalPrint(ctx, src)
}

func cmdHelp(_ context.Context, s *Session, _ Call) (Outcome, error) {
	s.Say("help_header", nil)
	for _, c := range s.commands.All() {
		syn := strings.Join(c.Names, "/")
		if c.Args != "" {
			syn += " " + c.Args
		}
		fmt.Fprintf(s.out, "  %-44s %s\n", syn, c.Help)
	}
	return Continue, nil
}

func cmdSetField(ctx context.Context, s *Session, c Call) (Outcome, error) {
	if len(c.Args) == 0 {
		return Continue, badArgument("usage: set-field key [value]")
	}
	key := ParseKey(c.Args[0])
	var (
		nv      reflect.Value
		haveArg bool
	)
	if rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Raw), c.Args[0])); rest != "" {
		v, err := s.EvalArg(ctx, rest)
		if err != nil {
			return Continue, err
		}
		nv, haveArg = v, true
	}
	f, err := s.SetField(key, nv, haveArg)
	if err != nil {
		return Continue, err
	}
	s.Say("set_ok", map[string]string{"key": f.Key.String(), "value": compact(f.Value, s.valueWidth)})
	return Continue, nil
}

func cmdIstep(ctx context.Context, s *Session, c Call) (Outcome, error) {
	if len(c.Args) == 0 {
		return Continue, badArgument("usage: istep key")
	}
	key := ParseKey(c.Args[0])
	f, ok := findField(key, s.Fields())
	if !ok {
		return Continue, noSuchField(key)
	}
	return s.DrillIn(ctx, f)
}

func badArgument(format string, args ...any) error {
	return &Problem{Code: CodeBadArgument, Message: fmt.Sprintf(format, args...)}
}
