package goinspect_test

import (
	"bytes"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goinspect"
)

func describe(x any) []string {
	return goinspect.NewDescribers().Lines(reflect.ValueOf(x))
}

func TestDescribe_Integer(t *testing.T) {
	lines := describe(255)
	require.NotEmpty(t, lines)
	assert.Equal(t, "int: 255", lines[0])
	assert.Contains(t, lines[1], "hex 0xff")
	assert.Contains(t, lines[1], "bin 0b11111111")
}

func TestDescribe_IntegerAsTimestamp(t *testing.T) {
	lines := describe(int64(1_700_000_000))
	assert.Contains(t, strings.Join(lines, "\n"), "as unix time: 2023-11-14T22:13:20Z")
}

func TestDescribe_Rune(t *testing.T) {
	lines := describe('é')
	assert.Contains(t, strings.Join(lines, "\n"), "LATIN SMALL LETTER E WITH ACUTE")
}

func TestDescribe_Pairs(t *testing.T) {
	assert.Equal(t, "pair: (1 . 2)", describe(goinspect.Cons(1, 2))[0])
	lines := describe(goinspect.List(1, 2, 3))
	assert.Equal(t, "list: (1 2 3)", lines[0])
	assert.Equal(t, "proper list of 3 elements", lines[1])
}

func TestDescribe_Values(t *testing.T) {
	assert.Equal(t, "nil: no value", describe(nil)[0])
	assert.Equal(t, "bool: true", describe(true)[0])
	assert.Equal(t, `string: "hi"`, describe("hi")[0])
	assert.Equal(t, "ratio: 1/3", describe(big.NewRat(1, 3))[0])
	assert.Equal(t, "time.Duration: 1m30s", describe(90*time.Second)[0])
	assert.Equal(t, "time.Month: March (3)", describe(time.March)[0])
	assert.Equal(t, "[]int: nil slice", describe([]int(nil))[0])
}

func TestDescribe_CircularValue(t *testing.T) {
	type node struct{ Next *node }
	n := &node{}
	n.Next = n
	var lines []string
	require.NotPanics(t, func() { lines = describe(n) })
	assert.Contains(t, lines[0], "circular")
}

type gauge int

func TestDescribe_FailingRuleKeepsSummary(t *testing.T) {
	d := goinspect.NewDescribers()
	d.RegisterType(goinspect.TypeOf[gauge](), goinspect.DescriberFunc(func(desc *goinspect.Description, v reflect.Value) {
		desc.Detail("half done")
		panic("broken")
	}))
	d.RegisterTrait("never", func(reflect.Type) bool { return false }, goinspect.DescriberFunc(func(*goinspect.Description, reflect.Value) {}))

	var lines []string
	require.NotPanics(t, func() { lines = d.Lines(reflect.ValueOf(gauge(3))) })
	assert.Equal(t, []string{"goinspect_test.gauge: 3"}, lines)
}

func TestDescribe_FailingClauseIsDropped(t *testing.T) {
	d := goinspect.NewDescribers()
	d.RegisterType(goinspect.TypeOf[gauge](), goinspect.DescriberFunc(func(desc *goinspect.Description, v reflect.Value) {
		desc.Clause(func() string { panic("unavailable") })
		desc.Detail("kept")
	}))
	assert.Equal(t, []string{"goinspect_test.gauge: 3", "kept"}, d.Lines(reflect.ValueOf(gauge(3))))
}

func TestDescribe_WritesIndentedDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	goinspect.Describe(buf, 8)
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[1], "  dec 8"))
}

func TestDescribe_WidthTruncates(t *testing.T) {
	d := goinspect.NewDescribers()
	d.SetWidth(10)
	lines := d.Lines(reflect.ValueOf(strings.Repeat("x", 50)))
	assert.Equal(t, `string: "xxxxxx...`, lines[0])
}

func TestDescribe_LargeCyclicValue(t *testing.T) {
	s := make([]any, 5000)
	s[4999] = s
	var lines []string
	require.NotPanics(t, func() { lines = describe(s) })
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "[]interface {}: [<nil> <nil>"), lines[0])
	assert.Equal(t, "length 5000, capacity 5000", lines[1])
}
