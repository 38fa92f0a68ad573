package main

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goinspect"
)

func TestDocumentKey(t *testing.T) {
	cases := []struct {
		in   string
		want goinspect.Key
	}{
		{"name", goinspect.Name("name")},
		{"api-version", goinspect.Name("api-version")},
		{"_id", goinspect.Name("_id")},
		{"Città", goinspect.Name("Città")},
		{"two words", goinspect.Literal("two words")},
		{"2fa", goinspect.Literal("2fa")},
		{"", goinspect.Literal("")},
		{"type", goinspect.Literal("type")},
		{"true", goinspect.Literal("true")},
		{"nil", goinspect.Literal("nil")},
	}
	for _, c := range cases {
		assert.Truef(t, c.want.Equal(documentKey(c.in)), "documentKey(%q) = %v", c.in, documentKey(c.in))
	}
}

func TestDocumentExtractors_ObjectKeys(t *testing.T) {
	doc, err := decodeDocument(".json", []byte(`{"metadata": {"name": "web"}, "two words": 1, "type": "svc"}`))
	require.NoError(t, err)
	obj := doc.(map[string]any)

	fields := documentExtractors().Extract(reflect.ValueOf(obj), true)
	meta, ok := goinspect.Get(fields, goinspect.Name("metadata"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "web"}, meta.Interface())
	_, ok = goinspect.Get(fields, goinspect.Literal("two words"))
	assert.True(t, ok)
	typ, ok := goinspect.Get(fields, goinspect.Literal("type"))
	require.True(t, ok)
	assert.Equal(t, "svc", typ.Interface())

	m := goinspect.Resolve(goinspect.Name("meta"), nil, fields)
	require.Equal(t, goinspect.MatchField, m.Kind)
	assert.Equal(t, goinspect.Name("metadata"), m.Field.Key)

	require.True(t, meta.Settable())
	require.NoError(t, meta.Set(reflect.ValueOf("replaced"), meta.Value))
	assert.Equal(t, "replaced", obj["metadata"])
	require.NoError(t, typ.Set(reflect.Value{}, typ.Value))
	assert.Nil(t, obj["type"])
}
