package parser

import (
	"sable/internal/ast"
	"sable/internal/token"
)

// Binary operator precedence; higher binds tighter.
const (
	precAssignment     = 1  // =
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precEquality       = 4  // == !=
	precComparison     = 5  // < <= > >=
	precBitwiseOr      = 6  // |
	precBitwiseXor     = 7  // ^
	precBitwiseAnd     = 8  // &
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// binaryOpPrec returns the precedence and right-associativity of a binary
// operator token, or ok=false for non-operators.
func binaryOpPrec(kind token.Kind) (prec int, rightAssoc, ok bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true, true
	case token.OrOr:
		return precLogicalOr, false, true
	case token.AndAnd:
		return precLogicalAnd, false, true
	case token.EqEq, token.BangEq:
		return precEquality, false, true
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false, true
	case token.Pipe:
		return precBitwiseOr, false, true
	case token.Caret:
		return precBitwiseXor, false, true
	case token.Amp:
		return precBitwiseAnd, false, true
	case token.Shl, token.Shr:
		return precShift, false, true
	case token.Plus, token.Minus:
		return precAdditive, false, true
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false, true
	default:
		return 0, false, false
	}
}

// binaryOpFor maps an operator token to its AST operator. Call only for
// kinds binaryOpPrec accepts.
func binaryOpFor(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Assign:
		return ast.ExprBinaryAssign
	case token.OrOr:
		return ast.ExprBinaryLogicalOr
	case token.AndAnd:
		return ast.ExprBinaryLogicalAnd
	case token.EqEq:
		return ast.ExprBinaryEq
	case token.BangEq:
		return ast.ExprBinaryNotEq
	case token.Lt:
		return ast.ExprBinaryLess
	case token.LtEq:
		return ast.ExprBinaryLessEq
	case token.Gt:
		return ast.ExprBinaryGreater
	case token.GtEq:
		return ast.ExprBinaryGreaterEq
	case token.Pipe:
		return ast.ExprBinaryBitOr
	case token.Caret:
		return ast.ExprBinaryBitXor
	case token.Amp:
		return ast.ExprBinaryBitAnd
	case token.Shl:
		return ast.ExprBinaryShiftLeft
	case token.Shr:
		return ast.ExprBinaryShiftRight
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.Percent:
		return ast.ExprBinaryMod
	default:
		return ast.ExprBinaryAdd
	}
}
