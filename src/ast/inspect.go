package ast

// Inspect traverses the tree in depth-first order, calling fn for each node
// before its children. If fn returns false the children of that node are
// skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		inspectAll(n.Stmts, fn)
	case *Block:
		inspectAll(n.Stmts, fn)
	case *StmtList:
		inspectAll(n.Stmts, fn)
	case *VarDecl:
		inspectExpr(n.Init, fn)
	case *FuncDecl:
		for _, param := range n.Params {
			Inspect(param, fn)
		}
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
	case *If:
		inspectExpr(n.Cond, fn)
		Inspect(n.Then, fn)
		Inspect(n.Else, fn)
	case *While:
		inspectExpr(n.Cond, fn)
		Inspect(n.Body, fn)
	case *For:
		Inspect(n.Init, fn)
		inspectExpr(n.Cond, fn)
		inspectExpr(n.Step, fn)
		Inspect(n.Body, fn)
	case *Return:
		inspectExpr(n.Value, fn)
	case *ExprStmt:
		inspectExpr(n.X, fn)
	case *Assign:
		inspectExpr(n.Value, fn)
	case *Call:
		for _, arg := range n.Args {
			inspectExpr(arg, fn)
		}
	case *Binary:
		inspectExpr(n.Left, fn)
		inspectExpr(n.Right, fn)
	case *Unary:
		inspectExpr(n.X, fn)
	}
}

func inspectAll(nodes []Node, fn func(Node) bool) {
	for _, node := range nodes {
		Inspect(node, fn)
	}
}

// a nil Expr stored in a Node is not a nil interface so it is filtered here.
func inspectExpr(ex Expr, fn func(Node) bool) {
	if ex != nil {
		Inspect(ex, fn)
	}
}
