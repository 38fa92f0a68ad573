package goinspect_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goinspect"
)

// numbered returns a field function producing n read-only fields f00, f01, ...
func numbered(n int) func(reflect.Value) []goinspect.Field {
	return func(reflect.Value) []goinspect.Field {
		out := make([]goinspect.Field, n)
		for i := range out {
			out[i] = goinspect.Field{Key: goinspect.Name(fmt.Sprintf("f%02d", i)), Value: reflect.ValueOf(i)}
		}
		return out
	}
}

func withFieldCommands() *goinspect.Commands {
	cmds := goinspect.DefaultCommands()
	cmds.Add(goinspect.FieldCommands()...)
	return cmds
}

func newSession(v any, script string, opts ...goinspect.Option) (*goinspect.Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	opts = append([]goinspect.Option{
		goinspect.WithStream(strings.NewReader(script), out),
		goinspect.WithCommands(withFieldCommands()),
	}, opts...)
	return goinspect.NewSession(reflect.ValueOf(v), opts...), out
}

type evalFunc func(ctx context.Context, src string, self reflect.Value) ([]reflect.Value, error)

func (f evalFunc) Eval(ctx context.Context, src string, self reflect.Value) ([]reflect.Value, error) {
	return f(ctx, src, self)
}

func TestSession_Pagination(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(nil, "", goinspect.WithFields(numbered(25)), goinspect.WithPageLength(10))

	_, err := s.Dispatch(ctx, "previous-page")
	require.ErrorIs(t, err, goinspect.ErrFirstPage)
	assert.Equal(t, 0, s.Offset())

	_, err = s.Dispatch(ctx, "next-page")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Offset())

	out.Reset()
	_, err = s.Dispatch(ctx, "next")
	require.NoError(t, err)
	start, end := s.Window()
	assert.Equal(t, 25, end, "window is clamped to the field count")
	assert.Equal(t, 15, start)
	assert.Contains(t, out.String(), "Showing fields 16-25 out of 25")
	assert.Contains(t, out.String(), "[24] f24 = 24")

	_, err = s.Dispatch(ctx, "next-page")
	require.ErrorIs(t, err, goinspect.ErrLastPage)
	_, end = s.Window()
	assert.Equal(t, 25, end)

	_, err = s.Dispatch(ctx, "previous-page")
	require.NoError(t, err)
	assert.Equal(t, 5, s.Offset())

	_, err = s.Dispatch(ctx, "top")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Offset())
}

func TestSession_NextPageFillsShortWindow(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(nil, "", goinspect.WithFields(numbered(25)), goinspect.WithPageLength(5))
	for i := 0; i < 4; i++ {
		_, err := s.Dispatch(ctx, "next-page")
		require.NoError(t, err)
	}
	require.Equal(t, 20, s.Offset())

	_, err := s.Dispatch(ctx, "width 10")
	require.NoError(t, err)
	assert.Equal(t, 20, s.Offset())
	start, end := s.Window()
	assert.Equal(t, [2]int{20, 25}, [2]int{start, end})

	out.Reset()
	_, err = s.Dispatch(ctx, "next-page")
	require.NoError(t, err)
	start, end = s.Window()
	assert.Equal(t, [2]int{15, 25}, [2]int{start, end})
	assert.Contains(t, out.String(), "Showing fields 16-25 out of 25")

	_, err = s.Dispatch(ctx, "next-page")
	require.ErrorIs(t, err, goinspect.ErrLastPage)
	assert.Equal(t, 15, s.Offset())
}

func TestSession_EmptyFooter(t *testing.T) {
	s, out := newSession(nil, "", goinspect.WithFields(numbered(0)))
	s.Render()
	assert.Contains(t, out.String(), "Showing fields 0-0 out of 0")

	_, err := s.Dispatch(context.Background(), "next-page")
	require.ErrorIs(t, err, goinspect.ErrLastPage)
}

func TestSession_Width(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(nil, "", goinspect.WithFields(numbered(25)), goinspect.WithPageLength(10))

	_, err := s.Dispatch(ctx, "width")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "page length is 10")

	_, err = s.Dispatch(ctx, "wi 4")
	require.NoError(t, err)
	assert.Equal(t, 4, s.PageLength())

	_, err = s.Dispatch(ctx, "(length 0)")
	p, ok := goinspect.AsProblem(err)
	require.True(t, ok)
	assert.Equal(t, goinspect.CodeBadArgument, p.Code)
	assert.Equal(t, 4, s.PageLength())
}

func TestSession_DrillInAndUpRestoresOffset(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(nil, "up\nistep 3\nback\nup\n", goinspect.WithFields(numbered(25)), goinspect.WithPageLength(10))

	_, err := s.Dispatch(ctx, "next-page")
	require.NoError(t, err)
	require.Equal(t, 10, s.Offset())

	outcome, err := s.Dispatch(ctx, "f12")
	require.NoError(t, err)
	assert.Equal(t, goinspect.Continue, outcome)
	assert.Equal(t, 10, s.Offset())
	assert.Contains(t, out.String(), "goinspect /f12> ")

	outcome, err = s.Dispatch(ctx, "istep f20")
	require.NoError(t, err)
	assert.Equal(t, goinspect.Continue, outcome)
	assert.Equal(t, 10, s.Offset())
	assert.Contains(t, out.String(), "goinspect /f20/f03> ")
}

type città struct {
	Città int
	Å     string
}

func TestSession_NonASCIIFieldNames(t *testing.T) {
	ctx := context.Background()
	v := &città{Città: 1}
	s, out := newSession(v, "up\n")

	outcome, err := s.Dispatch(ctx, "Città")
	require.NoError(t, err)
	assert.Equal(t, goinspect.Continue, outcome)
	assert.Contains(t, out.String(), "goinspect /Città> ")

	_, err = s.Dispatch(ctx, `set-field Å "ok"`)
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Å)
}

func TestSession_ShadowedFieldByPosition(t *testing.T) {
	ctx := context.Background()
	v := &struct{ Help string }{Help: "manual"}
	s, out := newSession(v, "up\n")

	_, err := s.Dispatch(ctx, "Help")
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "/Help> ")

	slot := -1
	for i, f := range s.Fields() {
		if f.Key.Equal(goinspect.Name("Help")) {
			slot = i
		}
	}
	require.GreaterOrEqual(t, slot, 0)
	pos := goinspect.IndexFields(s.Fields())[slot]

	out.Reset()
	outcome, err := s.Dispatch(ctx, fmt.Sprint(pos))
	require.NoError(t, err)
	assert.Equal(t, goinspect.Continue, outcome)
	assert.Contains(t, out.String(), "goinspect /Help> ")
}

func TestSession_QuitInsideChildTerminates(t *testing.T) {
	s, _ := newSession([]int{1, 2}, "quit\n")
	outcome, err := s.Dispatch(context.Background(), "0")
	require.NoError(t, err)
	assert.Equal(t, goinspect.Terminate, outcome)
}

func TestSession_UpAtRootPops(t *testing.T) {
	s, _ := newSession(1, "")
	outcome, err := s.Dispatch(context.Background(), "up")
	require.NoError(t, err)
	assert.Equal(t, goinspect.PopFrame, outcome)
}

func TestSession_SetField(t *testing.T) {
	ctx := context.Background()
	acct := &account{Name: "alice", Balance: 10}
	s, out := newSession(acct, "")

	_, err := s.Dispatch(ctx, "set-field Balance 99")
	require.NoError(t, err)
	assert.Equal(t, 99, acct.Balance)
	assert.Contains(t, out.String(), "Balance set to 99")

	_, err = s.Dispatch(ctx, `modify-field Name "bob smith"`)
	require.NoError(t, err)
	assert.Equal(t, "bob smith", acct.Name)

	_, err = s.Dispatch(ctx, "set-field Name")
	require.NoError(t, err)
	assert.Equal(t, "", acct.Name, "no value sets the zero value")

	_, err = s.Dispatch(ctx, "set-field type 3")
	require.ErrorIs(t, err, goinspect.ErrNotModifiable)

	_, err = s.Dispatch(ctx, "set-field zzz 3")
	require.ErrorIs(t, err, goinspect.ErrNoSuchField)

	_, err = s.Dispatch(ctx, `set-field Balance "lots"`)
	require.ErrorIs(t, err, goinspect.ErrNotAssignable)
	assert.Equal(t, 99, acct.Balance)
}

func TestSession_SetMapEntryByLiteralKey(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	s, _ := newSession(m, "")
	_, err := s.Dispatch(context.Background(), `set-field "b" 5`)
	require.NoError(t, err)
	assert.Equal(t, 5, m["b"])
}

func TestSession_FallbackEvaluation(t *testing.T) {
	ctx := context.Background()
	var seen reflect.Value
	ev := evalFunc(func(_ context.Context, src string, self reflect.Value) ([]reflect.Value, error) {
		seen = self
		if src == "boom()" {
			return nil, errors.New("kaboom")
		}
		return []reflect.Value{reflect.ValueOf(strings.ToUpper(src))}, nil
	})
	acct := &account{}
	s, out := newSession(acct, "", goinspect.WithEvaluator(ev))

	_, err := s.Dispatch(ctx, "hello(world)")
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"HELLO(WORLD)"`)
	assert.Equal(t, acct, seen.Interface())

	_, err = s.Dispatch(ctx, "boom()")
	p, ok := goinspect.AsProblem(err)
	require.True(t, ok)
	assert.Equal(t, goinspect.CodeEvalFailed, p.Code)

	_, err = s.Dispatch(ctx, "evaluate 1 + 2")
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"1 + 2"`)
}

func TestSession_NoEvaluator(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(1, "")

	_, err := s.Dispatch(ctx, "zzz")
	require.ErrorIs(t, err, goinspect.ErrNoEvaluator)

	_, err = s.Dispatch(ctx, "3.25")
	require.NoError(t, err, "literals evaluate without an evaluator")
	assert.Contains(t, out.String(), "3.25")
}

func TestSession_StandardAndAesthetic(t *testing.T) {
	ctx := context.Background()
	s, out := newSession(map[string]int{"a": 1}, "")

	_, err := s.Dispatch(ctx, "standard")
	require.NoError(t, err)
	assert.Contains(t, out.String(), `{"a":1}`)

	out.Reset()
	_, err = s.Dispatch(ctx, "aesthetic")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", out.String())
}

func TestSession_Help(t *testing.T) {
	s, out := newSession(1, "")
	_, err := s.Dispatch(context.Background(), "?")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "set-field/modify-field key [value]")
	assert.Contains(t, out.String(), "up/pop/back")
}

func TestSession_BadInput(t *testing.T) {
	s, _ := newSession(1, "")
	_, err := s.Dispatch(context.Background(), `set-field "open`)
	p, ok := goinspect.AsProblem(err)
	require.True(t, ok)
	assert.Equal(t, goinspect.CodeBadInput, p.Code)
}

func TestSession_RenderListsKeys(t *testing.T) {
	s, out := newSession(map[string]int{"a b": 1}, "")
	s.Render()
	assert.Contains(t, out.String(), `"a b" = 1`)
	assert.Contains(t, out.String(), "[0] identity = ")
}

func TestInspect_ScriptedSession(t *testing.T) {
	acct := &account{Name: "alice", Balance: 10}
	out := &bytes.Buffer{}
	script := strings.Join([]string{
		"Balance",
		"up",
		"set-field Balance 7",
		"previous-page",
		"no-such-thing",
		"quit",
		"set-field Balance 8",
	}, "\n")

	err := goinspect.Inspect(context.Background(), acct, goinspect.WithStream(strings.NewReader(script), out))
	require.NoError(t, err)

	assert.Equal(t, 7, acct.Balance, "input after quit is not read")
	transcript := out.String()
	assert.Contains(t, transcript, "goinspect /> ")
	assert.Contains(t, transcript, "goinspect /Balance> ")
	assert.Contains(t, transcript, "Balance set to 7")
	assert.Contains(t, transcript, "already at first page")
	assert.Contains(t, transcript, "no evaluator configured")
}

func TestInspect_EndOfInput(t *testing.T) {
	out := &bytes.Buffer{}
	err := goinspect.Inspect(context.Background(), goinspect.List(1, 2), goinspect.WithStream(strings.NewReader(""), out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "list: (1 2)")
}

func TestInspect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := goinspect.Inspect(ctx, 1, goinspect.WithStream(strings.NewReader("quit\n"), &bytes.Buffer{}))
	require.ErrorIs(t, err, context.Canceled)
}
