package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/semc/src/lerrors"
)

func TestTypeEqual(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b  Type
		match bool
	}{
		{Void, Void, true},
		{Int, Int, true},
		{Int, &Simple{Kind: KindInt}, true},
		{Int, Double, false},
		{String, Boolean, false},
		{Int, NewFunction(Int), false},
		{NewFunction(Int, Double), NewFunction(Int, Double), true},
		{NewFunction(Int, Double), NewFunction(Int, Int), false},
		{NewFunction(Int), NewFunction(Int), true},
		{NewFunction(Int), NewFunction(Double), false},
		{NewFunction(Void, String), NewFunction(Void), false},
		{NewFunction(Void), NewFunction(Void, String), false},
		{NewFunction(NewFunction(Int), Int), NewFunction(NewFunction(Int), Int), true},
	}

	for i, tc := range cases {
		assert.Equal(t, tc.match, Equal(tc.a, tc.b), "[%v] %s equal %s", i, tc.a, tc.b)
		assert.Equal(t, tc.match, Equal(tc.b, tc.a), "[%v] %s equal %s", i, tc.b, tc.a)
		assert.True(t, tc.a.Equal(tc.a), "[%v] %s is not reflexive", i, tc.a)
	}
}

func TestTypeVariants(t *testing.T) {
	t.Parallel()
	for _, defn := range DefaultDefns {
		assert.True(t, IsSimple(defn))
		assert.False(t, IsFunction(defn))
	}
	fn := NewFunction(Void, Int)
	assert.True(t, IsFunction(fn))
	assert.False(t, IsSimple(fn))
}

func TestTypeString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		defn     Type
		expected string
	}{
		{Void, NameVoid},
		{Int, NameInt},
		{Double, NameDouble},
		{Boolean, NameBoolean},
		{String, NameString},
		{NewFunction(Int), "int ()"},
		{NewFunction(Void, String), "void (String)"},
		{NewFunction(Double, Int, Boolean, String), "double (int, boolean, String)"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.defn.String())
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	for name, defn := range DefaultDefns {
		parsed, err := Parse(name)
		require.NoError(t, err)
		assert.Same(t, defn, parsed)
	}

	for _, name := range []string{"string", "float", "Int", ""} {
		_, err := Parse(name)
		require.Error(t, err)
		kind, ok := lerrors.KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, lerrors.InvalidTypeName, kind)
	}
}

func TestCanConvert(t *testing.T) {
	t.Parallel()
	allowed := map[[2]Kind]bool{
		{KindInt, KindDouble}:     true,
		{KindInt, KindBoolean}:    true,
		{KindInt, KindString}:     true,
		{KindDouble, KindString}:  true,
		{KindBoolean, KindString}: true,
	}
	for _, from := range DefaultDefns {
		for _, to := range DefaultDefns {
			assert.Equal(t, allowed[[2]Kind{from.Kind, to.Kind}], CanConvert(from, to), "%s -> %s", from, to)
		}
		assert.False(t, CanConvert(from, from))
		assert.False(t, CanConvert(from, NewFunction(from)))
		assert.False(t, CanConvert(NewFunction(from), from))
	}
	assert.True(t, CanConvert(Int, String))
	assert.False(t, CanConvert(String, Int))
}

func TestAssignable(t *testing.T) {
	t.Parallel()
	assert.True(t, Assignable(Int, Int))
	assert.True(t, Assignable(Int, Double))
	assert.False(t, Assignable(Double, Int))
	assert.True(t, Assignable(NewFunction(Int), NewFunction(Int)))
	assert.False(t, Assignable(NewFunction(Int), NewFunction(Double)))
}
