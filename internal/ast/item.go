package ast

import (
	"sable/internal/source"
)

type ItemKind uint8

const (
	ItemContract ItemKind = iota
	ItemLet
	ItemConst
	ItemFn
	// ItemBad is the error-marker item: it stands in for a top-level
	// construct the parser had to skip. Its span covers the skipped region.
	ItemBad
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// FnModifiers is a bitset of function modifiers.
type FnModifiers uint8

const (
	FnModPub FnModifiers = 1 << iota
	FnModPayable
	FnModView
)

func (m FnModifiers) Has(flag FnModifiers) bool { return m&flag != 0 }

// ContractDecl is the payload of an ItemContract.
type ContractDecl struct {
	Name     source.StringID
	Members  []MemberID
	BodySpan source.Span
}

// LetDecl is shared by top-level lets, contract state variables, and let
// statements. Type is optional; Value is required by the grammar but may be
// an ExprBad marker after recovery.
type LetDecl struct {
	Name  source.StringID
	Type  TypeID
	Value ExprID
}

// ConstDecl is the payload of an ItemConst or MemberConst.
type ConstDecl struct {
	Name  source.StringID
	Type  TypeID
	Value ExprID
}

// FnDecl is the payload of an ItemFn or MemberFn.
type FnDecl struct {
	Name      source.StringID
	Modifiers FnModifiers
	Params    []ParamID
	Return    TypeID // NoTypeID when the fn returns nothing
	Body      StmtID // always a StmtBlock
}

// FnParam is one parameter of a fn or event.
type FnParam struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// EventDecl is the payload of a MemberEvent.
type EventDecl struct {
	Name   source.StringID
	Params []ParamID
}

// Items manages allocation of top-level items, contract members, and their
// payloads.
type Items struct {
	Arena     *Arena[Item]
	Members   *Arena[Member]
	Contracts *Arena[ContractDecl]
	Lets      *Arena[LetDecl]
	Consts    *Arena[ConstDecl]
	Fns       *Arena[FnDecl]
	Params    *Arena[FnParam]
	Events    *Arena[EventDecl]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		Members:   NewArena[Member](capHint),
		Contracts: NewArena[ContractDecl](capHint),
		Lets:      NewArena[LetDecl](capHint),
		Consts:    NewArena[ConstDecl](capHint),
		Fns:       NewArena[FnDecl](capHint),
		Params:    NewArena[FnParam](capHint),
		Events:    NewArena[EventDecl](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewContract(span source.Span, name source.StringID, members []MemberID, bodySpan source.Span) ItemID {
	payload := i.Contracts.Allocate(ContractDecl{
		Name:     name,
		Members:  members,
		BodySpan: bodySpan,
	})
	return i.New(ItemContract, span, PayloadID(payload))
}

func (i *Items) Contract(id ItemID) (*ContractDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemContract || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Contracts.Get(uint32(item.Payload)), true
}

func (i *Items) NewLet(span source.Span, name source.StringID, typ TypeID, value ExprID) ItemID {
	payload := i.Lets.Allocate(LetDecl{Name: name, Type: typ, Value: value})
	return i.New(ItemLet, span, PayloadID(payload))
}

func (i *Items) Let(id ItemID) (*LetDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemLet || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) NewConst(span source.Span, name source.StringID, typ TypeID, value ExprID) ItemID {
	payload := i.Consts.Allocate(ConstDecl{Name: name, Type: typ, Value: value})
	return i.New(ItemConst, span, PayloadID(payload))
}

func (i *Items) Const(id ItemID) (*ConstDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemConst || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewFn(span source.Span, decl FnDecl) ItemID {
	payload := i.Fns.Allocate(decl)
	return i.New(ItemFn, span, PayloadID(payload))
}

func (i *Items) Fn(id ItemID) (*FnDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// NewBad allocates an error-marker item covering the skipped span.
func (i *Items) NewBad(span source.Span) ItemID {
	return i.New(ItemBad, span, NoPayloadID)
}

func (i *Items) NewParam(name source.StringID, typ TypeID, span source.Span) ParamID {
	return ParamID(i.Params.Allocate(FnParam{Name: name, Type: typ, Span: span}))
}

func (i *Items) Param(id ParamID) *FnParam {
	if !id.IsValid() {
		return nil
	}
	return i.Params.Get(uint32(id))
}
