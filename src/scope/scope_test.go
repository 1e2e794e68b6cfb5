package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/semc/src/lerrors"
	"github.com/tanema/semc/src/types"
)

func assertDuplicate(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	kind, ok := lerrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, lerrors.DuplicateIdentifier, kind)
}

func declareFunc(t *testing.T, sc Scope, name string) Scope {
	t.Helper()
	fn, err := sc.Declare(NewIdent(name, types.NewFunction(types.Void), Local))
	require.NoError(t, err)
	return sc.FuncChild(fn)
}

func TestScope_Chain(t *testing.T) {
	t.Parallel()
	global := NewGlobal()
	assert.True(t, global.IsGlobal())
	_, hasParent := global.Parent()
	assert.False(t, hasParent)
	_, inFn := global.EnclosingFunction()
	assert.False(t, inFn)

	fnScope := declareFunc(t, global, "main")
	block := fnScope.Child().Child()
	assert.False(t, block.IsGlobal())
	assert.Equal(t, global, block.Global())

	found, ok := block.EnclosingFunction()
	require.True(t, ok)
	assert.Equal(t, fnScope, found)
	assert.Equal(t, "main", found.Function().Name)

	found, ok = fnScope.EnclosingFunction()
	require.True(t, ok)
	assert.Equal(t, fnScope, found)

	_, ok = global.Child().EnclosingFunction()
	assert.False(t, ok)
}

func TestScope_Resolve(t *testing.T) {
	t.Parallel()
	global := NewGlobal()
	x, err := global.Declare(NewIdent("x", types.Int, Local))
	require.NoError(t, err)
	assert.Equal(t, Global, x.Class)

	child := global.Child()
	assert.Same(t, x, child.Resolve("x"))
	assert.Nil(t, child.Resolve("y"))

	y, err := child.Declare(NewIdent("y", types.Double, Local))
	require.NoError(t, err)
	assert.Equal(t, Local, y.Class)
	assert.Same(t, y, child.Resolve("y"))
	assert.Nil(t, global.Resolve("y"))
	assert.Empty(t, child.Child().Idents())
}

func TestScope_Shadowing(t *testing.T) {
	t.Parallel()

	t.Run("local shadows global", func(t *testing.T) {
		t.Parallel()
		global := NewGlobal()
		outer, err := global.Declare(NewIdent("x", types.Int, Local))
		require.NoError(t, err)
		fnScope := declareFunc(t, global, "f")
		inner, err := fnScope.Declare(NewIdent("x", types.String, Local))
		require.NoError(t, err)
		assert.Same(t, inner, fnScope.Resolve("x"))
		assert.Same(t, outer, global.Resolve("x"))
	})

	t.Run("local twice in function", func(t *testing.T) {
		t.Parallel()
		fnScope := declareFunc(t, NewGlobal(), "f")
		_, err := fnScope.Declare(NewIdent("x", types.Int, Local))
		require.NoError(t, err)
		_, err = fnScope.Declare(NewIdent("x", types.Int, Local))
		assertDuplicate(t, err)
		_, err = fnScope.Child().Declare(NewIdent("x", types.Int, Local))
		assertDuplicate(t, err)
	})

	t.Run("param twice", func(t *testing.T) {
		t.Parallel()
		fnScope := declareFunc(t, NewGlobal(), "f")
		_, err := fnScope.Declare(NewIdent("x", types.Int, Param))
		require.NoError(t, err)
		_, err = fnScope.Declare(NewIdent("x", types.Double, Param))
		assertDuplicate(t, err)
	})

	t.Run("local shadows param", func(t *testing.T) {
		t.Parallel()
		fnScope := declareFunc(t, NewGlobal(), "f")
		_, err := fnScope.Declare(NewIdent("x", types.Int, Param))
		require.NoError(t, err)
		_, err = fnScope.Child().Declare(NewIdent("x", types.Int, Local))
		assertDuplicate(t, err)
	})

	t.Run("param shadows global and local", func(t *testing.T) {
		t.Parallel()
		global := NewGlobal()
		_, err := global.Declare(NewIdent("x", types.Int, Local))
		require.NoError(t, err)
		outer := declareFunc(t, global, "f")
		_, err = outer.Declare(NewIdent("x", types.Int, Param))
		require.NoError(t, err)

		_, err = outer.Declare(NewIdent("y", types.Int, Local))
		require.NoError(t, err)
		inner := declareFunc(t, outer, "g")
		_, err = inner.Declare(NewIdent("y", types.Int, Param))
		require.NoError(t, err)
		_, err = inner.Declare(NewIdent("x", types.Int, Param))
		assertDuplicate(t, err)
	})

	t.Run("global twice", func(t *testing.T) {
		t.Parallel()
		global := NewGlobal()
		_, err := global.Declare(NewIdent("x", types.Int, Local))
		require.NoError(t, err)
		_, err = global.Declare(NewIdent("x", types.Int, Local))
		assertDuplicate(t, err)
		_, err = global.Declare(NewIdent("x", types.NewFunction(types.Int), Local))
		assertDuplicate(t, err)
	})
}

func TestScope_Slots(t *testing.T) {
	t.Parallel()
	global := NewGlobal()
	g0, err := global.Declare(NewIdent("g0", types.Int, Local))
	require.NoError(t, err)
	assert.Equal(t, 0, g0.Index)

	fn, err := global.Declare(NewIdent("f", types.NewFunction(types.Int, types.Int, types.Int), Local))
	require.NoError(t, err)
	assert.Equal(t, NoSlot, fn.Index)
	assert.False(t, fn.HasSlot())
	fnScope := global.FuncChild(fn)

	a, err := fnScope.Declare(NewIdent("a", types.Int, Param))
	require.NoError(t, err)
	b, err := fnScope.Declare(NewIdent("b", types.Int, Param))
	require.NoError(t, err)
	l0, err := fnScope.Declare(NewIdent("l0", types.Int, Local))
	require.NoError(t, err)
	block := fnScope.Child()
	l1, err := block.Declare(NewIdent("l1", types.Int, Local))
	require.NoError(t, err)

	assert.Equal(t, 0, a.Index)
	assert.Equal(t, 1, b.Index)
	assert.Equal(t, 0, l0.Index)
	assert.Equal(t, 1, l1.Index)
	assert.Equal(t, Param, a.Class)
	assert.Equal(t, Local, l1.Class)

	topBlock := global.Child()
	g1, err := topBlock.Declare(NewIdent("g1", types.Int, Local))
	require.NoError(t, err)
	assert.Equal(t, Local, g1.Class)
	assert.Equal(t, 1, g1.Index)
}

func TestScope_Close(t *testing.T) {
	t.Parallel()
	global := NewGlobal()
	child := global.Child()
	grandchild := child.Child()
	assert.Equal(t, 3, grandchild.live())
	grandchild.Close()
	assert.Equal(t, 2, global.live())
	child.Close()
	assert.Equal(t, 1, global.live())
	global.Close()
	assert.Equal(t, 1, global.live())

	sibling := global.Child()
	_, err := sibling.Declare(NewIdent("x", types.Int, Local))
	require.NoError(t, err)
	sibling.Close()
	assert.Nil(t, global.Child().Resolve("x"))
}

func TestScope_MarkBuiltIn(t *testing.T) {
	t.Parallel()
	global := NewGlobal()
	printFn, err := global.Declare(NewIdent("print", types.NewFunction(types.Void, types.String), Local))
	require.NoError(t, err)
	v, err := global.Declare(NewIdent("version", types.String, Local))
	require.NoError(t, err)
	global.MarkBuiltIn()
	assert.True(t, printFn.BuiltIn)
	assert.True(t, v.BuiltIn)
	assert.Equal(t, "void (String), global, built-in", printFn.String())

	user, err := global.Declare(NewIdent("x", types.Int, Local))
	require.NoError(t, err)
	assert.False(t, user.BuiltIn)
	assert.Equal(t, 0, user.Index)
	assert.Equal(t, "int, global, 0", user.String())
	assert.Equal(t, []*Ident{printFn, v, user}, global.Idents())
}

// live returns the number of scopes currently open in the arena of s.
func (s Scope) live() int { return len(s.tbl.records) }
