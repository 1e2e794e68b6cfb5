package parse

import (
	"fmt"
	"io"

	"github.com/tanema/semc/src/ast"
)

// exp -> NAME '=' exp | subexpr.
func (p *Parser) expression() (ast.Expr, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, err
	} else if tk.Kind != tokenIdentifier {
		return p.expr(0)
	}
	name := p.mustnext(tokenIdentifier)
	if isAssign, err := p.peekIs(tokenAssign); err != nil {
		return nil, err
	} else if isAssign {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: name.StringVal, Value: value, LineInfo: name.LineInfo}, nil
	}
	p.lex.back(name)
	return p.expr(0)
}

// subexpr -> (simpleexp | unop subexpr) { binop subexpr }
// where 'binop' is any binary operator with a priority higher than 'limit'.
func (p *Parser) expr(limit int) (ast.Expr, error) {
	var desc ast.Expr
	if tk, err := p.peek(); err != nil {
		return nil, err
	} else if tk.isUnary() {
		p.mustnext(tk.Kind)
		operand, err := p.expr(unaryPriority)
		if err != nil {
			return nil, err
		}
		desc = &ast.Unary{Op: tokenToUnaryOp[tk.Kind], X: operand, LineInfo: tk.LineInfo}
	} else if desc, err = p.simpleexp(); err != nil {
		return nil, err
	}
	op, err := p.peek()
	if err != nil {
		return nil, err
	}
	for op.isBinary() && binaryPriority[op.Kind][0] > limit {
		p.mustnext(op.Kind)
		rdesc, err := p.expr(binaryPriority[op.Kind][1])
		if err != nil {
			return nil, err
		}
		desc = &ast.Binary{
			Op:       tokenToBinaryOp[op.Kind],
			Left:     desc,
			Right:    rdesc,
			LineInfo: op.LineInfo,
		}
		if op, err = p.peek(); err != nil {
			return nil, err
		}
	}
	return desc, nil
}

// simpleexp -> FLOAT | INTEGER | STRING | TRUE | FALSE | primaryexp.
func (p *Parser) simpleexp() (ast.Expr, error) {
	ptk, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch ptk.Kind {
	case tokenFloat:
		tk := p.mustnext(tokenFloat)
		return &ast.DoubleLit{LineInfo: tk.LineInfo, Val: tk.FloatVal}, nil
	case tokenInteger:
		tk := p.mustnext(tokenInteger)
		return &ast.IntLit{LineInfo: tk.LineInfo, Val: tk.IntVal}, nil
	case tokenString:
		tk := p.mustnext(tokenString)
		return &ast.StringLit{LineInfo: tk.LineInfo, Val: tk.StringVal}, nil
	case tokenTrue:
		tk := p.mustnext(tokenTrue)
		return &ast.BoolLit{LineInfo: tk.LineInfo, Val: true}, nil
	case tokenFalse:
		tk := p.mustnext(tokenFalse)
		return &ast.BoolLit{LineInfo: tk.LineInfo, Val: false}, nil
	default:
		return p.primaryexp()
	}
}

// primaryexp -> NAME | NAME '(' args ')' | '(' exp ')'.
func (p *Parser) primaryexp() (ast.Expr, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tk.Kind {
	case tokenOpenParen:
		p.mustnext(tokenOpenParen)
		desc, err := p.expression()
		if err != nil {
			return nil, err
		}
		return desc, p.next(tokenCloseParen)
	case tokenIdentifier:
		name := p.mustnext(tokenIdentifier)
		if isCall, err := p.peekIs(tokenOpenParen); err != nil {
			return nil, err
		} else if isCall {
			args, err := p.funcargs()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Name: name.StringVal, Args: args, LineInfo: name.LineInfo}, nil
		}
		return &ast.Var{Name: name.StringVal, LineInfo: name.LineInfo}, nil
	case tokenEOS:
		return nil, io.EOF
	default:
		return nil, p.parseErr(tk, fmt.Errorf("unexpected symbol %v", tk.Kind))
	}
}

// funcargs -> [ exp {',' exp} ] ')'.
func (p *Parser) funcargs() ([]ast.Expr, error) {
	args := []ast.Expr{}
	if done, err := p.peekIs(tokenCloseParen); err != nil {
		return nil, err
	} else if done {
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if more, err := p.peekIs(tokenComma); err != nil {
			return nil, err
		} else if !more {
			return args, p.next(tokenCloseParen)
		}
	}
}
