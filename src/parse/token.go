package parse

import (
	"fmt"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/types"
)

type (
	tokenType string
	token     struct {
		ast.LineInfo
		Kind      tokenType
		StringVal string
		FloatVal  float64
		IntVal    int64
	}
)

const (
	tokenAdd        tokenType = "+"
	tokenMinus      tokenType = "-"
	tokenMultiply   tokenType = "*"
	tokenDivide     tokenType = "/"
	tokenModulo     tokenType = "%"
	tokenBitwiseAnd tokenType = "&"
	tokenBitwiseOr  tokenType = "|"
	tokenAnd        tokenType = "&&"
	tokenOr         tokenType = "||"
	tokenNot        tokenType = "!"
	tokenAssign     tokenType = "="
	tokenComma      tokenType = ","
	tokenSemiColon  tokenType = ";"
	tokenOpenParen  tokenType = "("
	tokenCloseParen tokenType = ")"
	tokenOpenCurly  tokenType = "{"
	tokenCloseCurly tokenType = "}"
	tokenEq         tokenType = "=="
	tokenNe         tokenType = "!="
	tokenGe         tokenType = ">="
	tokenGt         tokenType = ">"
	tokenLe         tokenType = "<="
	tokenLt         tokenType = "<"
	tokenIf         tokenType = "if"
	tokenElse       tokenType = "else"
	tokenWhile      tokenType = "while"
	tokenFor        tokenType = "for"
	tokenReturn     tokenType = "return"
	tokenTrue       tokenType = "true"
	tokenFalse      tokenType = "false"
	tokenFloat      tokenType = "float"
	tokenInteger    tokenType = "integer"
	tokenIdentifier tokenType = "identifier"
	tokenString     tokenType = "string"
	tokenEOS        tokenType = "<EOS>"
)

const unaryPriority = 9

// left, right priority for binary ops.
var (
	binaryPriority = map[tokenType][2]int{
		tokenOr:         {1, 1},
		tokenAnd:        {2, 2},
		tokenBitwiseOr:  {3, 3},
		tokenBitwiseAnd: {4, 4},
		tokenEq:         {5, 5},
		tokenNe:         {5, 5},
		tokenLt:         {6, 6},
		tokenLe:         {6, 6},
		tokenGt:         {6, 6},
		tokenGe:         {6, 6},
		tokenAdd:        {7, 7},
		tokenMinus:      {7, 7},
		tokenMultiply:   {8, 8},
		tokenModulo:     {8, 8},
		tokenDivide:     {8, 8},
	}
	keywords = map[string]tokenType{
		string(tokenIf):     tokenIf,
		string(tokenElse):   tokenElse,
		string(tokenWhile):  tokenWhile,
		string(tokenFor):    tokenFor,
		string(tokenReturn): tokenReturn,
		string(tokenTrue):   tokenTrue,
		string(tokenFalse):  tokenFalse,
	}
	tokenToBinaryOp = map[tokenType]types.BinaryOp{
		tokenAdd:        types.OpAdd,
		tokenMinus:      types.OpSub,
		tokenMultiply:   types.OpMult,
		tokenDivide:     types.OpDiv,
		tokenModulo:     types.OpMod,
		tokenGt:         types.OpGt,
		tokenLt:         types.OpLt,
		tokenGe:         types.OpGe,
		tokenLe:         types.OpLe,
		tokenEq:         types.OpEq,
		tokenNe:         types.OpNe,
		tokenBitwiseAnd: types.OpBitAnd,
		tokenBitwiseOr:  types.OpBitOr,
		tokenAnd:        types.OpAnd,
		tokenOr:         types.OpOr,
	}
	tokenToUnaryOp = map[tokenType]types.UnaryOp{
		tokenMinus: types.OpNeg,
		tokenNot:   types.OpNot,
	}
)

func (tk *token) String() string {
	switch tk.Kind {
	case tokenFloat:
		return fmt.Sprintf("f%v", tk.FloatVal)
	case tokenInteger:
		return fmt.Sprintf("i%v", tk.IntVal)
	case tokenIdentifier:
		return fmt.Sprintf("<%v>", tk.StringVal)
	case tokenString:
		return fmt.Sprintf("\"%v\"", tk.StringVal)
	default:
		return string(tk.Kind)
	}
}

func (tk *token) isUnary() bool {
	_, ok := tokenToUnaryOp[tk.Kind]
	return ok
}

func (tk *token) isBinary() bool {
	_, ok := binaryPriority[tk.Kind]
	return ok
}
