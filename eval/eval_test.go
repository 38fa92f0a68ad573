package eval

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_Expression(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	vs, err := e.Eval(context.Background(), "1 + 2", reflect.Value{})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.EqualValues(t, 3, vs[0].Interface())
}

func TestEval_Self(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	vs, err := e.Eval(context.Background(), `fmt.Sprint(goinspect.Self)`, reflect.ValueOf(42))
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "42", vs[0].Interface())

	vs, err = e.Eval(context.Background(), `strings.ToUpper(goinspect.Self.(string))`, reflect.ValueOf("abc"))
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "ABC", vs[0].Interface())
}

func TestEval_Output(t *testing.T) {
	out := &bytes.Buffer{}
	e, err := New(WithOutput(out, out))
	require.NoError(t, err)

	_, err = e.Eval(context.Background(), `fmt.Println("hello")`, reflect.Value{})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestEval_Errors(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	_, err = e.Eval(context.Background(), "undefinedName + 1", reflect.Value{})
	assert.Error(t, err)

	_, err = e.Eval(context.Background(), `goinspect.Self.(int)`, reflect.ValueOf("not an int"))
	assert.Error(t, err)
}
