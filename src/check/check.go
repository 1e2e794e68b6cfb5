// Package check is the entry point of semantic analysis. A Checker owns a
// global scope that was bootstrapped with the built-in library and checks a
// single program against it.
package check

import (
	"github.com/pkg/errors"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/conf"
	"github.com/tanema/semc/src/lerrors"
	"github.com/tanema/semc/src/parse"
	"github.com/tanema/semc/src/scope"
)

// Prelude declares the built-in library. to_float returning int is how the
// library has always been declared and is kept as is.
const Prelude = `String read();
void print(String s);
void println(String s);
int to_int(String s);
int to_float(String s);
`

// ErrUsed is returned when a Checker is asked to check a second program.
var ErrUsed = errors.New("checker has already analyzed a program")

// Checker checks one program against a bootstrapped global scope.
type Checker struct {
	global scope.Scope
	used   bool
}

// New bootstraps a global scope from cfg and returns a checker for it. A nil
// cfg uses the default configuration.
func New(cfg *conf.Config) (*Checker, error) {
	global, err := Bootstrap(cfg)
	if err != nil {
		return nil, err
	}
	return &Checker{global: global}, nil
}

// Bootstrap runs the prelude and the configured extra built-ins through the
// parser and checker into a fresh global scope, then marks everything it
// declared as built in.
func Bootstrap(cfg *conf.Config) (scope.Scope, error) {
	if cfg == nil {
		cfg = conf.Default()
	}
	src := ""
	if cfg.Prelude {
		src = Prelude
	}
	for _, builtin := range cfg.Builtins {
		src += builtin.Signature() + "\n"
	}

	global := scope.NewGlobal()
	prog, err := parse.Source(conf.PRELUDENAME, src)
	if err != nil {
		return global, errors.Wrap(err, "bootstrap")
	} else if _, err := prog.Check(global); err != nil {
		return global, errors.Wrap(withFilename(err, conf.PRELUDENAME), "bootstrap")
	}
	global.MarkBuiltIn()
	return global, nil
}

// Global returns the global scope of the checker.
func (c *Checker) Global() scope.Scope { return c.global }

// Check checks prog. On success every name in the tree is bound and every
// expression carries its type. Errors are *lerrors.Error naming filename.
func (c *Checker) Check(filename string, prog *ast.Program) (*Result, error) {
	if c.used {
		return nil, ErrUsed
	}
	c.used = true
	if _, err := prog.Check(c.global); err != nil {
		return nil, withFilename(err, filename)
	}
	return newResult(filename, prog, c.global), nil
}

// Source parses and checks src.
func (c *Checker) Source(filename, src string) (*Result, error) {
	prog, err := parse.Source(filename, src)
	if err != nil {
		return nil, err
	}
	return c.Check(filename, prog)
}

// File parses and checks the file at path.
func (c *Checker) File(path string) (*Result, error) {
	prog, err := parse.File(path)
	if _, isDiag := lerrors.KindOf(err); err != nil && !isDiag {
		return nil, errors.Wrapf(err, "check %s", path)
	} else if err != nil {
		return nil, err
	}
	return c.Check(path, prog)
}

func withFilename(err error, filename string) error {
	var lerr *lerrors.Error
	if errors.As(err, &lerr) && lerr.Filename == "" {
		lerr.Filename = filename
	}
	return err
}
