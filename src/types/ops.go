package types

import "fmt"

type (
	// BinaryOp is the closed set of binary operators.
	BinaryOp int
	// UnaryOp is the closed set of prefix operators.
	UnaryOp int
	// operands is an ordered pair of operand kinds.
	operands [2]Kind
)

const (
	// OpAdd is +.
	OpAdd BinaryOp = iota
	// OpSub is -.
	OpSub
	// OpMult is *.
	OpMult
	// OpDiv is /.
	OpDiv
	// OpMod is %.
	OpMod
	// OpGt is >.
	OpGt
	// OpLt is <.
	OpLt
	// OpGe is >=.
	OpGe
	// OpLe is <=.
	OpLe
	// OpEq is ==.
	OpEq
	// OpNe is !=.
	OpNe
	// OpBitAnd is &.
	OpBitAnd
	// OpBitOr is |.
	OpBitOr
	// OpAnd is &&.
	OpAnd
	// OpOr is ||.
	OpOr
	binaryOpCount
)

const (
	// OpNeg is unary -.
	OpNeg UnaryOp = iota
	// OpNot is !.
	OpNot
	unaryOpCount
)

var (
	binaryOpSymbols = [binaryOpCount]string{
		OpAdd:    "+",
		OpSub:    "-",
		OpMult:   "*",
		OpDiv:    "/",
		OpMod:    "%",
		OpGt:     ">",
		OpLt:     "<",
		OpGe:     ">=",
		OpLe:     "<=",
		OpEq:     "==",
		OpNe:     "!=",
		OpBitAnd: "&",
		OpBitOr:  "|",
		OpAnd:    "&&",
		OpOr:     "||",
	}
	unaryOpSymbols = [unaryOpCount]string{
		OpNeg: "-",
		OpNot: "!",
	}

	// Conversions lists, for each kind, the kinds it silently widens to.
	Conversions = map[Kind][]Kind{
		KindInt:     {KindDouble, KindBoolean, KindString},
		KindDouble:  {KindString},
		KindBoolean: {KindString},
	}

	arithmetic = map[operands]Kind{
		{KindInt, KindInt}:       KindInt,
		{KindDouble, KindDouble}: KindDouble,
		{KindInt, KindDouble}:    KindDouble,
		{KindDouble, KindInt}:    KindDouble,
	}
	comparison = map[operands]Kind{
		{KindInt, KindInt}:       KindBoolean,
		{KindDouble, KindDouble}: KindBoolean,
		{KindString, KindString}: KindBoolean,
	}
	bitwise = map[operands]Kind{
		{KindInt, KindInt}: KindInt,
	}
	logical = map[operands]Kind{
		{KindBoolean, KindBoolean}: KindBoolean,
	}

	// BinaryOps maps each operator to the operand pairs it accepts and the
	// kind it produces for them.
	BinaryOps = [binaryOpCount]map[operands]Kind{
		OpAdd: {
			{KindInt, KindInt}:       KindInt,
			{KindDouble, KindDouble}: KindDouble,
			{KindString, KindString}: KindString,
			{KindInt, KindDouble}:    KindDouble,
			{KindDouble, KindInt}:    KindDouble,
		},
		OpSub:    arithmetic,
		OpMult:   arithmetic,
		OpDiv:    arithmetic,
		OpMod:    arithmetic,
		OpGt:     comparison,
		OpLt:     comparison,
		OpGe:     comparison,
		OpLe:     comparison,
		OpEq:     comparison,
		OpNe:     comparison,
		OpBitAnd: bitwise,
		OpBitOr:  bitwise,
		OpAnd:    logical,
		OpOr:     logical,
	}

	// UnaryOps maps each prefix operator to the operand kinds it accepts.
	UnaryOps = [unaryOpCount]map[Kind]Kind{
		OpNeg: {KindInt: KindInt, KindDouble: KindDouble},
		OpNot: {KindBoolean: KindBoolean},
	}
)

// BinaryOpList returns every binary operator in declaration order.
func BinaryOpList() []BinaryOp {
	ops := make([]BinaryOp, binaryOpCount)
	for i := range ops {
		ops[i] = BinaryOp(i)
	}
	return ops
}

func (op BinaryOp) String() string {
	if op >= 0 && op < binaryOpCount {
		return binaryOpSymbols[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

func (op UnaryOp) String() string {
	if op >= 0 && op < unaryOpCount {
		return unaryOpSymbols[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// CanConvert reports whether from silently widens to to. It is never true for
// function types and never true for a type converting to itself.
func CanConvert(from, to Type) bool {
	sfrom, fromSimple := from.(*Simple)
	sto, toSimple := to.(*Simple)
	if !fromSimple || !toSimple {
		return false
	}
	for _, kind := range Conversions[sfrom.Kind] {
		if kind == sto.Kind {
			return true
		}
	}
	return false
}

// Assignable reports whether a value of type from may be used where to is
// required, either because they are equal or because from widens to to.
func Assignable(from, to Type) bool {
	return Equal(from, to) || CanConvert(from, to)
}

// BinaryResult looks up the result type of applying op to left and right. The
// second return is false when the operator is not defined for the pair.
func BinaryResult(op BinaryOp, left, right Type) (*Simple, bool) {
	sleft, leftSimple := left.(*Simple)
	sright, rightSimple := right.(*Simple)
	if !leftSimple || !rightSimple || op < 0 || op >= binaryOpCount {
		return nil, false
	}
	kind, ok := BinaryOps[op][operands{sleft.Kind, sright.Kind}]
	if !ok {
		return nil, false
	}
	return FromKind(kind), true
}

// UnaryResult looks up the result type of applying op to operand.
func UnaryResult(op UnaryOp, operand Type) (*Simple, bool) {
	soperand, isSimple := operand.(*Simple)
	if !isSimple || op < 0 || op >= unaryOpCount {
		return nil, false
	}
	kind, ok := UnaryOps[op][soperand.Kind]
	if !ok {
		return nil, false
	}
	return FromKind(kind), true
}
