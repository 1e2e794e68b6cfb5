// Package types contains the structures used to describe the static types of the
// language and the tables that decide how they may be combined. A type is either
// Simple, wrapping one primitive Kind, or a Function with a return type and an
// ordered list of parameter types. Simple types are shared singletons so they can
// be compared by pointer, but Equal is structural and works for independently
// built function types as well.
//
// Two tables drive all checking: the conversion table, which lists the implicit
// widenings allowed at assignments, arguments and returns, and the operator
// tables, which map an ordered pair of operand kinds to the result kind. A pair
// missing from a table is not allowed.
package types //nolint:revive
