package ast

import (
	"sable/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtExpr
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
	StmtBreak
	StmtContinue
	StmtEmit
	// StmtBad is the error marker for a skipped statement.
	StmtBad
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID when there is no else branch
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtForData struct {
	Var  source.StringID
	Iter ExprID
	Body StmtID
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare return
}

type StmtEmitData struct {
	Name source.StringID
	Args []ExprID
}

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[StmtBlockData]
	Lets    *Arena[LetDecl]
	Exprs   *Arena[StmtExprData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Fors    *Arena[StmtForData]
	Returns *Arena[StmtReturnData]
	Emits   *Arena[StmtEmitData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
		Lets:    NewArena[LetDecl](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Fors:    NewArena[StmtForData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Emits:   NewArena[StmtEmitData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Blocks.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, typ TypeID, value ExprID) StmtID {
	payload := s.Lets.Allocate(LetDecl{Name: name, Type: typ, Value: value})
	return s.new(StmtLet, span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) (*LetDecl, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Whiles.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, v source.StringID, iter ExprID, body StmtID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Var: v, Iter: iter, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Fors.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Returns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

func (s *Stmts) NewEmit(span source.Span, name source.StringID, args []ExprID) StmtID {
	payload := s.Emits.Allocate(StmtEmitData{Name: name, Args: args})
	return s.new(StmtEmit, span, PayloadID(payload))
}

func (s *Stmts) Emit(id StmtID) (*StmtEmitData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtEmit || !st.Payload.IsValid() {
		return nil, false
	}
	return s.Emits.Get(uint32(st.Payload)), true
}

// NewBad allocates an error-marker statement covering the skipped span.
func (s *Stmts) NewBad(span source.Span) StmtID {
	return s.new(StmtBad, span, NoPayloadID)
}
