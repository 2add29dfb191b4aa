package ast

import (
	"sable/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprUnary
	ExprBinary
	ExprCall
	ExprIndex
	ExprMember
	ExprGroup
	// ExprBad is the error marker standing in for a missing or skipped
	// expression, so the surrounding tree stays walkable.
	ExprBad
)

type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitFloat
	LitString
	LitBool
)

type ExprUnaryOp uint8

const (
	ExprUnaryMinus ExprUnaryOp = iota
	ExprUnaryNot
)

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryAssign
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID // raw source spelling
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  source.StringID
}

type ExprGroupData struct {
	Inner ExprID
}

// Exprs manages allocation of expressions and their payloads.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Calls    *Arena[ExprCallData]
	Indices  *Arena[ExprIndexData]
	Members  *Arena[ExprMemberData]
	Groups   *Arena[ExprGroupData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Indices:  NewArena[ExprIndexData](capHint),
		Members:  NewArena[ExprMemberData](capHint),
		Groups:   NewArena[ExprGroupData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIdent || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Idents.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprLit || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Literals.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprUnary || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Unaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprBinary || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Binaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Target: target, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprCall || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Calls.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIndex || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Indices.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, field source.StringID) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Field: field})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprMember || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Members.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprGroup || !ex.Payload.IsValid() {
		return nil, false
	}
	return e.Groups.Get(uint32(ex.Payload)), true
}

// NewBad allocates an error-marker expression at the failure span.
func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, NoPayloadID)
}
