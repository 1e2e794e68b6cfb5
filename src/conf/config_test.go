package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	t.Parallel()
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, DEFAULTTIMEFORMAT, cfg.TimeFormat)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "semc.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
prelude: false
time_format: "%H:%M"
builtins:
  - name: sqrt
    returns: double
    params: [double]
  - name: now
    returns: int
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Prelude)
	assert.Equal(t, "%H:%M", cfg.TimeFormat)
	assert.Equal(t, []Builtin{
		{Name: "sqrt", Returns: "double", Params: []string{"double"}},
		{Name: "now", Returns: "int"},
	}, cfg.Builtins)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: open")
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestDecode(t *testing.T) {
	t.Parallel()
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Decode(strings.NewReader("builtins: [{name: abs, returns: int, params: [int]}]"))
	require.NoError(t, err)
	assert.True(t, cfg.Prelude)
	assert.Len(t, cfg.Builtins, 1)

	_, err = Decode(strings.NewReader("unknown: true"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("prelude: [1"))
	assert.Error(t, err)
}

func TestDecode_Validation(t *testing.T) {
	t.Parallel()
	_, err := Decode(strings.NewReader(`
time_format: ""
builtins:
  - returns: int
  - name: f
  - name: f
    returns: int
    params: [""]
`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"time_format must not be empty",
		"builtins[0] missing name",
		"builtins[1] missing returns",
		"builtins[2] f declared twice",
		"builtins[2].params[0] must not be empty",
	}, verr.Issues)
	assert.True(t, strings.HasPrefix(err.Error(), "config validation failed:\n- "))
}

func TestBuiltinSignature(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "int now();", Builtin{Name: "now", Returns: "int"}.Signature())
	assert.Equal(t,
		"double pow(double a0, int a1);",
		Builtin{Name: "pow", Returns: "double", Params: []string{"double", "int"}}.Signature(),
	)
}
