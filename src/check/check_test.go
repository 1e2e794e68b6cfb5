package check

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/conf"
	"github.com/tanema/semc/src/lerrors"
	"github.com/tanema/semc/src/scope"
	"github.com/tanema/semc/src/types"
)

func checkSrc(t *testing.T, src string) (*Result, error) {
	t.Helper()
	c, err := New(nil)
	require.NoError(t, err)
	return c.Source("test", src)
}

func TestBootstrap(t *testing.T) {
	t.Parallel()
	global, err := Bootstrap(nil)
	require.NoError(t, err)
	assert.True(t, global.IsGlobal())

	expected := map[string]*types.Function{
		"read":     types.NewFunction(types.String),
		"print":    types.NewFunction(types.Void, types.String),
		"println":  types.NewFunction(types.Void, types.String),
		"to_int":   types.NewFunction(types.Int, types.String),
		"to_float": types.NewFunction(types.Int, types.String),
	}
	idents := global.Idents()
	require.Len(t, idents, len(expected))
	for _, id := range idents {
		defn, ok := expected[id.Name]
		require.True(t, ok, id.Name)
		assert.True(t, defn.Equal(id.Type), id.Name)
		assert.True(t, id.BuiltIn, id.Name)
		assert.Equal(t, scope.Global, id.Class, id.Name)
		assert.Equal(t, scope.NoSlot, id.Index, id.Name)
	}
}

func TestBootstrap_Config(t *testing.T) {
	t.Parallel()
	global, err := Bootstrap(&conf.Config{
		Prelude:    false,
		TimeFormat: conf.DEFAULTTIMEFORMAT,
		Builtins:   []conf.Builtin{{Name: "sqrt", Returns: "double", Params: []string{"double"}}},
	})
	require.NoError(t, err)
	idents := global.Idents()
	require.Len(t, idents, 1)
	assert.Equal(t, "sqrt", idents[0].Name)
	assert.Equal(t, "double (double)", idents[0].Type.String())
	assert.Nil(t, global.Resolve("print"))

	_, err = Bootstrap(&conf.Config{Prelude: true, Builtins: []conf.Builtin{{Name: "print", Returns: "void"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap")
	kind, ok := lerrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, lerrors.DuplicateIdentifier, kind)
	var lerr *lerrors.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, conf.PRELUDENAME, lerr.Filename)

	_, err = Bootstrap(&conf.Config{Builtins: []conf.Builtin{{Name: "f", Returns: "long"}}})
	kind, _ = lerrors.KindOf(err)
	assert.Equal(t, lerrors.InvalidTypeName, kind)
}

func TestCheck_Globals(t *testing.T) {
	t.Parallel()
	res, err := checkSrc(t, `int a = 4; int b = a + 1;`)
	require.NoError(t, err)
	require.Len(t, res.Globals, 2)
	assert.Equal(t, "a", res.Globals[0].Name)
	assert.Equal(t, 0, res.Globals[0].Index)
	assert.Equal(t, "b", res.Globals[1].Name)
	assert.Equal(t, 1, res.Globals[1].Index)
	assert.Len(t, res.Builtins, 5)
	assert.Equal(t, "test (2 globals, 5 built-ins)\n\ta\tint, global, 0\n\tb\tint, global, 1\n", res.String())
	assert.Contains(t, res.Verbose(), "\tto_float\tint (String), global, built-in")

	sum := res.Program.Stmts[1].(*ast.VarDecl).Init
	assert.Equal(t, types.Int, sum.Type())
	assert.Same(t, res.Globals[0], sum.(*ast.Binary).Left.(*ast.Var).Ident)
}

func TestCheck_Programs(t *testing.T) {
	t.Parallel()
	valid := map[string]string{
		"int widens to boolean":   `boolean c = 5;`,
		"int widens to double":    `int f(int n) { return n; } double d = f(3);`,
		"builtins":                `String s = read(); println(s); int n = to_int(s); int f = to_float("1.5");`,
		"int converts to string":  `print(42);`,
		"shadow global in block":  `int a; { double a = 1.5; } a = 2;`,
		"param shadows global":    `int n; int f(int n) { return n; }`,
		"prototype then body":     `int f(int n); int g() { return f(1); }`,
		"recursion":               "int fact(int n) {\n if (n <= 1) { return 1; }\n return n * fact(n - 1);\n}\nint x = fact(5);",
		"loop variable is scoped": `for (int i = 0; i < 10; i = i + 1) { print("x"); } int i = 1;`,
		"nested functions scopes": `int a = 1; int f() { int b = a; while (b > 0) { b = b - 1; } return b; }`,
		"string compare":          `boolean same = "a" == "b";`,
		"mixed arithmetic":        `double d = 1 + 2.5 * 3;`,
		"logical":                 `boolean b = !(1 < 2) || true && false;`,
		"shadow builtin locally":  `void f() { int print = 1; }`,
	}
	for name, src := range valid {
		name, src := name, src
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := checkSrc(t, src)
			assert.NoError(t, err)
		})
	}

	invalid := map[string]struct {
		src  string
		kind lerrors.ErrorKind
	}{
		"boolean to int":          {`int c = true;`, lerrors.TypeMismatch},
		"string argument for int": {`int f(int n) { return n; } int x = f("3");`, lerrors.TypeMismatch},
		"double to int return":    {`int f() { return 1.5; }`, lerrors.TypeMismatch},
		"unknown type":            {`float x = 1.0;`, lerrors.InvalidTypeName},
		"redeclare builtin":       {`void print(String s) {}`, lerrors.DuplicateIdentifier},
		"duplicate locals":        {`void f() { int a; int a; }`, lerrors.DuplicateIdentifier},
		"undeclared":              {`x = 1;`, lerrors.UndeclaredIdentifier},
		"call variable":           {`int a; a();`, lerrors.NotAFunction},
		"arity":                   {`println();`, lerrors.ArityMismatch},
		"operands":                {`int a = 1 + "s";`, lerrors.InvalidOperandTypes},
		"return at top":           {`return 1;`, lerrors.ReturnOutsideFunction},
		"string condition":        {`if ("yes") {}`, lerrors.TypeMismatch},
		"syntax error":            {`int a = ;`, lerrors.ParserErr},
		"lex error":               {`int a = @;`, lerrors.LexerErr},
	}
	for name, test := range invalid {
		name, test := name, test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := checkSrc(t, test.src)
			require.Error(t, err)
			kind, ok := lerrors.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, test.kind, kind, err.Error())
		})
	}
}

func TestCheck_ErrorLocation(t *testing.T) {
	t.Parallel()
	_, err := checkSrc(t, "int f(int n) { return n; }\nint x = f(1, 2);")
	var lerr *lerrors.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lerrors.ArityMismatch, lerr.Kind)
	assert.Equal(t, "test", lerr.Filename)
	assert.Equal(t, int64(2), lerr.Line)
	assert.Equal(t, int64(9), lerr.Column)
	assert.Equal(t, "Arity Mismatch: test:2:9 function f expects 1 arguments but received 2", err.Error())
}

func TestCheck_Once(t *testing.T) {
	t.Parallel()
	c, err := New(nil)
	require.NoError(t, err)
	_, err = c.Source("a", `int a;`)
	require.NoError(t, err)
	_, err = c.Source("b", `int b;`)
	assert.True(t, errors.Is(err, ErrUsed))
}

func TestCheck_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prog.c")
	require.NoError(t, os.WriteFile(path, []byte("int a = 1;\nString s = a;\n"), 0o600))
	c, err := New(nil)
	require.NoError(t, err)
	res, err := c.File(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Filename)
	assert.Len(t, res.Globals, 2)

	c, err = New(nil)
	require.NoError(t, err)
	_, err = c.File(filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
