package parse

import "github.com/tanema/semc/src/ast"

// tryDecl parses a declaration if the next two tokens are both names, the
// first being the type. Otherwise nothing is consumed and a nil node is
// returned. The second return is true for function declarations which, unlike
// variable declarations, are not terminated by a ';' of the caller.
func (p *Parser) tryDecl(allowFunc bool) (ast.Node, bool, error) {
	typeTk := p.mustnext(tokenIdentifier)
	nameTk, err := p.peek()
	if err != nil {
		return nil, false, err
	} else if nameTk.Kind != tokenIdentifier {
		p.lex.back(typeTk)
		return nil, false, nil
	}
	p.mustnext(tokenIdentifier)

	if allowFunc {
		if isFn, err := p.peekIs(tokenOpenParen); err != nil {
			return nil, false, err
		} else if isFn {
			fn, err := p.funcstat(typeTk, nameTk)
			return fn, true, err
		}
	}
	decl, err := p.declstat(typeTk, nameTk)
	return decl, false, err
}

// declstat -> TYPE NAME ['=' exp] {',' NAME ['=' exp]}.
func (p *Parser) declstat(typeTk, nameTk *token) (ast.Node, error) {
	decls := []ast.Node{}
	for {
		decl := &ast.VarDecl{
			TypeName: typeTk.StringVal,
			Name:     nameTk.StringVal,
			LineInfo: nameTk.LineInfo,
		}
		if hasInit, err := p.peekIs(tokenAssign); err != nil {
			return nil, err
		} else if hasInit {
			if decl.Init, err = p.expression(); err != nil {
				return nil, err
			}
		}
		decls = append(decls, decl)

		if more, err := p.peekIs(tokenComma); err != nil {
			return nil, err
		} else if !more {
			break
		}
		var err error
		if nameTk, err = p.consumeToken(tokenIdentifier); err != nil {
			return nil, err
		}
	}
	if len(decls) == 1 {
		return decls[0], nil
	}
	return &ast.StmtList{Stmts: decls, LineInfo: typeTk.LineInfo}, nil
}

// funcstat -> TYPE NAME '(' parlist ')' (block | ';').
func (p *Parser) funcstat(typeTk, nameTk *token) (ast.Node, error) {
	fn := &ast.FuncDecl{
		ReturnType: typeTk.StringVal,
		Name:       nameTk.StringVal,
		LineInfo:   nameTk.LineInfo,
	}
	params, err := p.parlist()
	if err != nil {
		return nil, err
	}
	fn.Params = params
	if proto, err := p.peekIs(tokenSemiColon); err != nil {
		return nil, err
	} else if proto {
		return fn, nil
	}
	if fn.Body, err = p.block(); err != nil {
		return nil, err
	}
	return fn, nil
}

// parlist -> [ TYPE NAME {',' TYPE NAME} ] ')'.
func (p *Parser) parlist() ([]*ast.Param, error) {
	params := []*ast.Param{}
	if done, err := p.peekIs(tokenCloseParen); err != nil {
		return nil, err
	} else if done {
		return params, nil
	}
	for {
		typeTk, err := p.consumeToken(tokenIdentifier)
		if err != nil {
			return nil, err
		}
		nameTk, err := p.consumeToken(tokenIdentifier)
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{
			TypeName: typeTk.StringVal,
			Name:     nameTk.StringVal,
			LineInfo: nameTk.LineInfo,
		})
		if more, err := p.peekIs(tokenComma); err != nil {
			return nil, err
		} else if !more {
			return params, p.next(tokenCloseParen)
		}
	}
}
