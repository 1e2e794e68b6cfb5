package ast

import (
	"github.com/tanema/semc/src/lerrors"
	"github.com/tanema/semc/src/scope"
	"github.com/tanema/semc/src/types"
)

func errorf(li LineInfo, kind lerrors.ErrorKind, msg string, data ...any) error {
	err := lerrors.New(kind, msg, data...)
	err.Line, err.Column = li.Line, li.Column
	return err
}

func at(li LineInfo, err error) error {
	return lerrors.At(err, lerrors.ParserErr, li.Line, li.Column)
}

func checkStmts(sc scope.Scope, stmts []Node) error {
	for _, stmt := range stmts {
		if _, err := stmt.Check(sc); err != nil {
			return err
		}
	}
	return nil
}

// checkScoped checks node in a fresh child of sc. A block is unwrapped so it
// does not open a second scope.
func checkScoped(sc scope.Scope, node Node) error {
	inner := sc.Child()
	defer inner.Close()
	if blk, isBlock := node.(*Block); isBlock {
		return checkStmts(inner, blk.Stmts)
	}
	_, err := node.Check(inner)
	return err
}

func checkCondition(sc scope.Scope, cond Expr) error {
	defn, err := cond.Check(sc)
	if err != nil {
		return err
	} else if !types.Assignable(defn, types.Boolean) {
		return errorf(cond.Pos(), lerrors.TypeMismatch, "condition must be %s but found %s", types.Boolean, defn)
	}
	return nil
}

// Check checks every top level statement in the global scope.
func (prog *Program) Check(sc scope.Scope) (types.Type, error) {
	return types.Void, checkStmts(sc, prog.Stmts)
}

// Check opens a new scope for the block.
func (blk *Block) Check(sc scope.Scope) (types.Type, error) {
	return types.Void, checkScoped(sc, blk)
}

// Check checks each statement in the current scope.
func (list *StmtList) Check(sc scope.Scope) (types.Type, error) {
	return types.Void, checkStmts(sc, list.Stmts)
}

// Check declares the variable, then checks the initializer against it.
func (decl *VarDecl) Check(sc scope.Scope) (types.Type, error) {
	defn, err := types.Parse(decl.TypeName)
	if err != nil {
		return nil, at(decl.LineInfo, err)
	}
	if decl.Ident, err = sc.Declare(scope.NewIdent(decl.Name, defn, scope.Local)); err != nil {
		return nil, at(decl.LineInfo, err)
	}
	if decl.Init == nil {
		return types.Void, nil
	}
	initDefn, err := decl.Init.Check(sc)
	if err != nil {
		return nil, err
	} else if !types.Assignable(initDefn, defn) {
		return nil, errorf(decl.Init.Pos(), lerrors.TypeMismatch,
			"cannot assign %s to %s of type %s", initDefn, decl.Name, defn)
	}
	return types.Void, nil
}

// Check declares the function in the enclosing scope, then its params and body
// in a new function scope so the body can refer to the function itself.
func (fn *FuncDecl) Check(sc scope.Scope) (types.Type, error) {
	ret, err := types.Parse(fn.ReturnType)
	if err != nil {
		return nil, at(fn.LineInfo, err)
	}
	params := make([]types.Type, len(fn.Params))
	for i, param := range fn.Params {
		if params[i], err = types.Parse(param.TypeName); err != nil {
			return nil, at(param.LineInfo, err)
		}
	}

	defn := types.NewFunction(ret, params...)
	if fn.Ident, err = sc.Declare(scope.NewIdent(fn.Name, defn, scope.Local)); err != nil {
		return nil, at(fn.LineInfo, err)
	}

	body := sc.FuncChild(fn.Ident)
	defer body.Close()
	for i, param := range fn.Params {
		if param.Ident, err = body.Declare(scope.NewIdent(param.Name, params[i], scope.Param)); err != nil {
			return nil, at(param.LineInfo, err)
		}
	}
	if fn.Body == nil {
		return defn, nil
	}
	return defn, checkStmts(body, fn.Body.Stmts)
}

// Check is only ever called through FuncDecl, a param on its own has no meaning.
func (param *Param) Check(sc scope.Scope) (types.Type, error) {
	if param.Ident == nil {
		return nil, errorf(param.LineInfo, lerrors.ParserErr, "parameter %s outside of function", param.Name)
	}
	return param.Ident.Type, nil
}

// Check requires a boolean condition and checks each branch in its own scope.
func (stat *If) Check(sc scope.Scope) (types.Type, error) {
	if err := checkCondition(sc, stat.Cond); err != nil {
		return nil, err
	} else if err := checkScoped(sc, stat.Then); err != nil {
		return nil, err
	} else if stat.Else != nil {
		if err := checkScoped(sc, stat.Else); err != nil {
			return nil, err
		}
	}
	return types.Void, nil
}

// Check requires a boolean condition and checks the body in its own scope.
func (stat *While) Check(sc scope.Scope) (types.Type, error) {
	if err := checkCondition(sc, stat.Cond); err != nil {
		return nil, err
	}
	return types.Void, checkScoped(sc, stat.Body)
}

// Check opens a scope for the loop header so the init declaration is only
// visible to the loop.
func (stat *For) Check(sc scope.Scope) (types.Type, error) {
	loop := sc.Child()
	defer loop.Close()
	if stat.Init != nil {
		if _, err := stat.Init.Check(loop); err != nil {
			return nil, err
		}
	}
	if stat.Cond != nil {
		if err := checkCondition(loop, stat.Cond); err != nil {
			return nil, err
		}
	}
	if stat.Step != nil {
		if _, err := stat.Step.Check(loop); err != nil {
			return nil, err
		}
	}
	return types.Void, checkScoped(loop, stat.Body)
}

// Check compares the returned value with the return type of the enclosing function.
func (stat *Return) Check(sc scope.Scope) (types.Type, error) {
	fnScope, inFn := sc.EnclosingFunction()
	if !inFn {
		return nil, errorf(stat.LineInfo, lerrors.ReturnOutsideFunction, "return outside of function")
	}
	fn := fnScope.Function()
	want := fn.Type.(*types.Function).Return

	var got types.Type = types.Void
	if stat.Value != nil {
		var err error
		if got, err = stat.Value.Check(sc); err != nil {
			return nil, err
		}
	}
	if !types.Assignable(got, want) {
		return nil, errorf(stat.LineInfo, lerrors.TypeMismatch,
			"function %s returns %s but found %s", fn.Name, want, got)
	}
	return got, nil
}

// Check checks the wrapped expression.
func (stat *ExprStmt) Check(sc scope.Scope) (types.Type, error) {
	return stat.X.Check(sc)
}

// Check resolves the name.
func (ex *Var) Check(sc scope.Scope) (types.Type, error) {
	if ex.Ident = sc.Resolve(ex.Name); ex.Ident == nil {
		return nil, errorf(ex.LineInfo, lerrors.UndeclaredIdentifier, "identifier %s is not declared", ex.Name)
	}
	ex.typ = ex.Ident.Type
	return ex.typ, nil
}

// Check resolves the target and requires the value to fit its type.
func (ex *Assign) Check(sc scope.Scope) (types.Type, error) {
	if ex.Ident = sc.Resolve(ex.Name); ex.Ident == nil {
		return nil, errorf(ex.LineInfo, lerrors.UndeclaredIdentifier, "identifier %s is not declared", ex.Name)
	} else if types.IsFunction(ex.Ident.Type) {
		return nil, errorf(ex.LineInfo, lerrors.TypeMismatch, "cannot assign to function %s", ex.Name)
	}
	valDefn, err := ex.Value.Check(sc)
	if err != nil {
		return nil, err
	} else if !types.Assignable(valDefn, ex.Ident.Type) {
		return nil, errorf(ex.Value.Pos(), lerrors.TypeMismatch,
			"cannot assign %s to %s of type %s", valDefn, ex.Name, ex.Ident.Type)
	}
	ex.typ = ex.Ident.Type
	return ex.typ, nil
}

// Check resolves the callee and matches every argument with its parameter.
func (ex *Call) Check(sc scope.Scope) (types.Type, error) {
	if ex.Ident = sc.Resolve(ex.Name); ex.Ident == nil {
		return nil, errorf(ex.LineInfo, lerrors.UndeclaredIdentifier, "function %s is not declared", ex.Name)
	}
	fnDefn, isFn := ex.Ident.Type.(*types.Function)
	if !isFn {
		return nil, errorf(ex.LineInfo, lerrors.NotAFunction, "%s of type %s is not a function", ex.Name, ex.Ident.Type)
	} else if len(ex.Args) != len(fnDefn.Params) {
		return nil, errorf(ex.LineInfo, lerrors.ArityMismatch,
			"function %s expects %d arguments but received %d", ex.Name, len(fnDefn.Params), len(ex.Args))
	}
	for i, arg := range ex.Args {
		argDefn, err := arg.Check(sc)
		if err != nil {
			return nil, err
		} else if !types.Assignable(argDefn, fnDefn.Params[i]) {
			return nil, errorf(arg.Pos(), lerrors.TypeMismatch,
				"argument %d of %s expects %s but found %s", i+1, ex.Name, fnDefn.Params[i], argDefn)
		}
	}
	ex.typ = fnDefn.Return
	return ex.typ, nil
}

// Check looks the operand kinds up in the operator table.
func (ex *Binary) Check(sc scope.Scope) (types.Type, error) {
	left, err := ex.Left.Check(sc)
	if err != nil {
		return nil, err
	}
	right, err := ex.Right.Check(sc)
	if err != nil {
		return nil, err
	}
	res, ok := types.BinaryResult(ex.Op, left, right)
	if !ok {
		return nil, errorf(ex.LineInfo, lerrors.InvalidOperandTypes,
			"operator %v is not defined for %s and %s", ex.Op, left, right)
	}
	ex.typ = res
	return ex.typ, nil
}

// Check looks the operand kind up in the unary operator table.
func (ex *Unary) Check(sc scope.Scope) (types.Type, error) {
	operand, err := ex.X.Check(sc)
	if err != nil {
		return nil, err
	}
	res, ok := types.UnaryResult(ex.Op, operand)
	if !ok {
		return nil, errorf(ex.LineInfo, lerrors.InvalidOperandTypes, "operator %v is not defined for %s", ex.Op, operand)
	}
	ex.typ = res
	return ex.typ, nil
}

func (ex *IntLit) Check(scope.Scope) (types.Type, error)    { return ex.Type(), nil }
func (ex *DoubleLit) Check(scope.Scope) (types.Type, error) { return ex.Type(), nil }
func (ex *StringLit) Check(scope.Scope) (types.Type, error) { return ex.Type(), nil }
func (ex *BoolLit) Check(scope.Scope) (types.Type, error)   { return ex.Type(), nil }
