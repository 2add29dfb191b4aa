package ast

import (
	"sable/internal/source"
)

type MemberKind uint8

const (
	// MemberLet is a contract state variable.
	MemberLet MemberKind = iota
	MemberConst
	MemberFn
	MemberEvent
	// MemberBad is the error marker for a skipped contract member.
	MemberBad
)

// Member is one declaration inside a contract body. Payload indexes the
// arena matching Kind (Lets, Consts, Fns, Events).
type Member struct {
	Kind    MemberKind
	Span    source.Span
	Payload PayloadID
}

func (i *Items) newMember(kind MemberKind, span source.Span, payloadID PayloadID) MemberID {
	return MemberID(i.Members.Allocate(Member{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) GetMember(id MemberID) *Member {
	return i.Members.Get(uint32(id))
}

func (i *Items) NewMemberLet(span source.Span, name source.StringID, typ TypeID, value ExprID) MemberID {
	payload := i.Lets.Allocate(LetDecl{Name: name, Type: typ, Value: value})
	return i.newMember(MemberLet, span, PayloadID(payload))
}

func (i *Items) MemberLetDecl(id MemberID) (*LetDecl, bool) {
	m := i.GetMember(id)
	if m == nil || m.Kind != MemberLet || !m.Payload.IsValid() {
		return nil, false
	}
	return i.Lets.Get(uint32(m.Payload)), true
}

func (i *Items) NewMemberConst(span source.Span, name source.StringID, typ TypeID, value ExprID) MemberID {
	payload := i.Consts.Allocate(ConstDecl{Name: name, Type: typ, Value: value})
	return i.newMember(MemberConst, span, PayloadID(payload))
}

func (i *Items) MemberConstDecl(id MemberID) (*ConstDecl, bool) {
	m := i.GetMember(id)
	if m == nil || m.Kind != MemberConst || !m.Payload.IsValid() {
		return nil, false
	}
	return i.Consts.Get(uint32(m.Payload)), true
}

func (i *Items) NewMemberFn(span source.Span, decl FnDecl) MemberID {
	payload := i.Fns.Allocate(decl)
	return i.newMember(MemberFn, span, PayloadID(payload))
}

func (i *Items) MemberFnDecl(id MemberID) (*FnDecl, bool) {
	m := i.GetMember(id)
	if m == nil || m.Kind != MemberFn || !m.Payload.IsValid() {
		return nil, false
	}
	return i.Fns.Get(uint32(m.Payload)), true
}

func (i *Items) NewMemberEvent(span source.Span, name source.StringID, params []ParamID) MemberID {
	payload := i.Events.Allocate(EventDecl{Name: name, Params: params})
	return i.newMember(MemberEvent, span, PayloadID(payload))
}

func (i *Items) MemberEventDecl(id MemberID) (*EventDecl, bool) {
	m := i.GetMember(id)
	if m == nil || m.Kind != MemberEvent || !m.Payload.IsValid() {
		return nil, false
	}
	return i.Events.Get(uint32(m.Payload)), true
}

// NewMemberBad allocates an error-marker member covering the skipped span.
func (i *Items) NewMemberBad(span source.Span) MemberID {
	return i.newMember(MemberBad, span, NoPayloadID)
}
