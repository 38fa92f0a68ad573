package goinspect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goinspect"
)

func TestResolve_CommandsFirstInDeclaredOrder(t *testing.T) {
	cmds := goinspect.NewCommands(
		&goinspect.Command{Names: []string{"width"}},
		&goinspect.Command{Names: []string{"widen"}},
	)
	fields := fieldsWithKeys(goinspect.Name("widget"))

	m := goinspect.Resolve(goinspect.Name("wi"), cmds, fields)
	require.True(t, m.IsCommand())
	assert.Equal(t, "width", m.Command.Name())

	m = goinspect.Resolve(goinspect.Name("wide"), cmds, fields)
	require.True(t, m.IsCommand())
	assert.Equal(t, "widen", m.Command.Name())

	m = goinspect.Resolve(goinspect.Name("widg"), cmds, fields)
	assert.Equal(t, goinspect.MatchField, m.Kind)
	assert.Equal(t, goinspect.Name("widget"), m.Field.Key)
}

func TestResolve_CaseInsensitivePrefix(t *testing.T) {
	cmds := goinspect.DefaultCommands()
	m := goinspect.Resolve(goinspect.Name("NEXT"), cmds, nil)
	require.True(t, m.IsCommand())
	assert.Equal(t, "next-page", m.Command.Name())

	m = goinspect.Resolve(goinspect.Name("bal"), cmds, fieldsWithKeys(goinspect.Name("Balance")))
	assert.Equal(t, goinspect.MatchField, m.Kind)

	m = goinspect.Resolve(goinspect.Name("?"), cmds, nil)
	require.True(t, m.IsCommand())
	assert.Equal(t, "help", m.Command.Name())
}

func TestResolve_IntegersArePositionsOnly(t *testing.T) {
	cmds := goinspect.NewCommands(&goinspect.Command{Names: []string{"1st"}})
	fields := fieldsWithKeys(goinspect.Name("a"), goinspect.Index(0), goinspect.Name("b"))

	m := goinspect.Resolve(goinspect.Index(1), cmds, fields)
	require.Equal(t, goinspect.MatchField, m.Kind)
	assert.Equal(t, goinspect.Name("a"), m.Field.Key)
	assert.Equal(t, 0, m.Slot)

	m = goinspect.Resolve(goinspect.Index(0), cmds, fields)
	assert.Equal(t, goinspect.Index(0), m.Field.Key)

	m = goinspect.Resolve(goinspect.Index(9), cmds, fields)
	assert.Equal(t, goinspect.MatchNone, m.Kind)
}

func TestResolve_LiteralsByEquality(t *testing.T) {
	fields := goinspect.Extract(map[string]int{"alpha": 1, "beta": 2})

	m := goinspect.Resolve(goinspect.Literal("beta"), nil, fields)
	require.Equal(t, goinspect.MatchField, m.Kind)
	assert.Equal(t, 2, m.Field.Interface())

	m = goinspect.Resolve(goinspect.Literal("bet"), nil, fields)
	assert.Equal(t, goinspect.MatchNone, m.Kind, "literals never prefix-match")

	m = goinspect.Resolve(goinspect.Literal(2.5), nil, fields)
	assert.Equal(t, goinspect.MatchNone, m.Kind)
}

func TestResolve_Unresolved(t *testing.T) {
	m := goinspect.Resolve(goinspect.Name("zzz"), goinspect.DefaultCommands(), fieldsWithKeys(goinspect.Name("a")))
	assert.Equal(t, goinspect.MatchNone, m.Kind)
	assert.False(t, m.IsCommand())
	assert.Nil(t, m.Command)
}

func TestCommands_AddReplacesByCanonicalName(t *testing.T) {
	cmds := goinspect.DefaultCommands()
	n := len(cmds.All())
	cmds.Add(&goinspect.Command{Names: []string{"quit", "bye"}, Help: "custom"})
	require.Len(t, cmds.All(), n)
	c, ok := cmds.Lookup("bye")
	require.True(t, ok)
	assert.Equal(t, "custom", c.Help)
	assert.True(t, cmds.Has("QUIT"))
}

func TestResolve_FieldShadowedByCommandByPositionOnly(t *testing.T) {
	cmds := goinspect.DefaultCommands()
	fields := fieldsWithKeys(goinspect.Name("type"), goinspect.Name("Help"), goinspect.Name("Quiet"))
	index := goinspect.IndexFields(fields)

	m := goinspect.Resolve(goinspect.Name("Help"), cmds, fields)
	require.True(t, m.IsCommand())
	assert.Equal(t, "help", m.Command.Name())

	m = goinspect.Resolve(goinspect.Name("Qui"), cmds, fields)
	require.True(t, m.IsCommand())
	assert.Equal(t, "quit", m.Command.Name())

	m = goinspect.Resolve(goinspect.Index(index[1]), cmds, fields)
	require.Equal(t, goinspect.MatchField, m.Kind)
	assert.Equal(t, goinspect.Name("Help"), m.Field.Key)

	m = goinspect.Resolve(goinspect.Index(index[2]), cmds, fields)
	require.Equal(t, goinspect.MatchField, m.Kind)
	assert.Equal(t, goinspect.Name("Quiet"), m.Field.Key)
}
