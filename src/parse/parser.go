// Package parse turns source text into the syntax tree defined in package ast.
// The grammar is a small C like language:
//
//	int fact(int n) {
//	  if (n <= 1) { return 1; }
//	  return n * fact(n - 1);
//	}
//	int a = fact(4);
//
// Type names are plain identifiers as far as the parser is concerned, an
// unknown type name is reported when the tree is checked.
package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/lerrors"
)

// Parser is the object that will parse a file and return its syntax tree.
type Parser struct {
	lex           *lexer
	filename      string
	lastTokenInfo ast.LineInfo
}

// New creates a new parser that can parse one file at a time.
func New() *Parser {
	return &Parser{}
}

// File is a helper function around Parse to open and close a file automatically.
func File(path string) (*ast.Program, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return Parse(path, src)
}

// Parse parses a whole source file.
func Parse(filename string, src io.Reader) (*ast.Program, error) {
	return New().Parse(filename, src)
}

// Source parses a source string.
func Source(filename, src string) (*ast.Program, error) {
	return Parse(filename, strings.NewReader(src))
}

// Parse will reset the parser and parse src as a whole program. An io.EOF
// error means the source ended in the middle of a statement, which allows a
// repl to ask for more input.
func (p *Parser) Parse(filename string, src io.Reader) (*ast.Program, error) {
	p.filename = filename
	p.lex = newLexer(filename, src)
	prog := &ast.Program{LineInfo: ast.LineInfo{Line: 1, Column: 1}, Stmts: []ast.Node{}}
	for {
		tk, err := p.peek()
		if err != nil {
			return nil, err
		} else if tk.Kind == tokenEOS {
			return prog, nil
		}
		stmt, err := p.stat()
		if errors.Is(err, io.EOF) {
			return nil, &lerrors.Error{
				Kind:     lerrors.ParserErr,
				Filename: p.filename,
				Line:     p.lex.Line,
				Column:   p.lex.Column,
				Err:      fmt.Errorf("unexpected end of source: %w", err),
			}
		} else if err != nil {
			return nil, err
		} else if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
}

func (p *Parser) parseErr(tk *token, err error) error {
	if err == nil {
		return nil
	}
	var lerr *lerrors.Error
	if errors.As(err, &lerr) || errors.Is(err, io.EOF) {
		return err
	}
	newErr := &lerrors.Error{
		Kind:     lerrors.ParserErr,
		Filename: p.filename,
		Err:      err,
	}
	if tk != nil {
		newErr.Line = tk.Line
		newErr.Column = tk.Column
	}
	return newErr
}

func (p *Parser) peek() (*token, error) {
	return p.lex.Peek()
}

func (p *Parser) consumeToken(tt tokenType) (*token, error) {
	tk, err := p.lex.Next()
	if err != nil {
		return nil, p.parseErr(tk, err)
	} else if tt != tk.Kind {
		return nil, p.parseErr(tk, fmt.Errorf("expected %q but consumed %q", tt, tk.Kind))
	}
	p.lastTokenInfo = tk.LineInfo
	return tk, nil
}

func (p *Parser) next(tt tokenType) error {
	_, err := p.consumeToken(tt)
	return err
}

// only used after a peek has confirmed the kind.
func (p *Parser) mustnext(tt tokenType) *token {
	tk, err := p.consumeToken(tt)
	if err != nil {
		panic(err)
	}
	return tk
}

// peekIs consumes the next token if it is of kind tt.
func (p *Parser) peekIs(tt tokenType) (bool, error) {
	tk, err := p.peek()
	if err != nil {
		return false, err
	} else if tk.Kind != tt {
		return false, nil
	}
	p.mustnext(tt)
	return true, nil
}

// stat -> ';' | block | ifstat | whilestat | forstat | retstat | declstat | exprstat.
func (p *Parser) stat() (ast.Node, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tk.Kind {
	case tokenSemiColon:
		return nil, p.next(tokenSemiColon)
	case tokenOpenCurly:
		return p.block()
	case tokenIf:
		return p.ifstat()
	case tokenWhile:
		return p.whilestat()
	case tokenFor:
		return p.forstat()
	case tokenReturn:
		return p.retstat()
	case tokenIdentifier:
		decl, isFn, err := p.tryDecl(true)
		if err != nil {
			return nil, err
		} else if isFn {
			return decl, nil
		} else if decl != nil {
			return decl, p.next(tokenSemiColon)
		}
	}
	return p.exprstat()
}

// block -> '{' { stat } '}'.
func (p *Parser) block() (*ast.Block, error) {
	tk, err := p.consumeToken(tokenOpenCurly)
	if err != nil {
		return nil, err
	}
	blk := &ast.Block{LineInfo: tk.LineInfo, Stmts: []ast.Node{}}
	for {
		if done, err := p.peekIs(tokenCloseCurly); err != nil {
			return nil, err
		} else if done {
			return blk, nil
		}
		ptk, err := p.peek()
		if err != nil {
			return nil, err
		} else if ptk.Kind == tokenEOS {
			return nil, io.EOF
		}
		stmt, err := p.stat()
		if err != nil {
			return nil, err
		} else if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
	}
}

// ifstat -> IF '(' exp ')' stat [ELSE stat].
func (p *Parser) ifstat() (ast.Node, error) {
	tk := p.mustnext(tokenIf)
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	then, err := p.body()
	if err != nil {
		return nil, err
	}
	stat := &ast.If{Cond: cond, Then: then, LineInfo: tk.LineInfo}
	if hasElse, err := p.peekIs(tokenElse); err != nil {
		return nil, err
	} else if hasElse {
		if stat.Else, err = p.body(); err != nil {
			return nil, err
		}
	}
	return stat, nil
}

// whilestat -> WHILE '(' exp ')' stat.
func (p *Parser) whilestat() (ast.Node, error) {
	tk := p.mustnext(tokenWhile)
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.body()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, LineInfo: tk.LineInfo}, nil
}

// forstat -> FOR '(' [decl | exp] ';' [exp] ';' [exp] ')' stat.
func (p *Parser) forstat() (ast.Node, error) {
	tk := p.mustnext(tokenFor)
	if err := p.next(tokenOpenParen); err != nil {
		return nil, err
	}
	stat := &ast.For{LineInfo: tk.LineInfo}

	if empty, err := p.peekIs(tokenSemiColon); err != nil {
		return nil, err
	} else if !empty {
		ptk, err := p.peek()
		if err != nil {
			return nil, err
		}
		if ptk.Kind == tokenIdentifier {
			if stat.Init, _, err = p.tryDecl(false); err != nil {
				return nil, err
			}
		}
		if stat.Init == nil {
			expr, err := p.expression()
			if err != nil {
				return nil, err
			}
			stat.Init = &ast.ExprStmt{X: expr, LineInfo: ptk.LineInfo}
		}
		if err := p.next(tokenSemiColon); err != nil {
			return nil, err
		}
	}

	if empty, err := p.peekIs(tokenSemiColon); err != nil {
		return nil, err
	} else if !empty {
		if stat.Cond, err = p.expression(); err != nil {
			return nil, err
		} else if err := p.next(tokenSemiColon); err != nil {
			return nil, err
		}
	}

	if empty, err := p.peekIs(tokenCloseParen); err != nil {
		return nil, err
	} else if !empty {
		if stat.Step, err = p.expression(); err != nil {
			return nil, err
		} else if err := p.next(tokenCloseParen); err != nil {
			return nil, err
		}
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}
	stat.Body = body
	return stat, nil
}

// retstat -> RETURN [exp] ';'.
func (p *Parser) retstat() (ast.Node, error) {
	tk := p.mustnext(tokenReturn)
	stat := &ast.Return{LineInfo: tk.LineInfo}
	if bare, err := p.peekIs(tokenSemiColon); err != nil {
		return nil, err
	} else if bare {
		return stat, nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	stat.Value = value
	return stat, p.next(tokenSemiColon)
}

// exprstat -> exp ';'.
func (p *Parser) exprstat() (ast.Node, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: expr, LineInfo: tk.LineInfo}, p.next(tokenSemiColon)
}

func (p *Parser) condition() (ast.Expr, error) {
	if err := p.next(tokenOpenParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	return cond, p.next(tokenCloseParen)
}

// body parses the statement controlled by if, while or for. An empty
// statement becomes an empty block so the tree never holds a nil branch.
func (p *Parser) body() (ast.Node, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, err
	} else if tk.Kind == tokenEOS {
		return nil, io.EOF
	}
	stmt, err := p.stat()
	if err != nil {
		return nil, err
	} else if stmt == nil {
		return &ast.Block{LineInfo: tk.LineInfo, Stmts: []ast.Node{}}, nil
	}
	return stmt, nil
}
