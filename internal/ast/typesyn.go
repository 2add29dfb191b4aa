package ast

import (
	"sable/internal/source"
)

type TypeKind uint8

const (
	// TypeName is a named type reference such as u64 or address.
	TypeName TypeKind = iota
	// TypeList is the builtin list form []T.
	TypeList
	// TypeMap is the builtin map form map[K]V.
	TypeMap
	// TypeBad is the error marker for an unparseable type annotation.
	TypeBad
)

type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type TypeNameData struct {
	Name source.StringID
}

type TypeListData struct {
	Elem TypeID
}

type TypeMapData struct {
	Key   TypeID
	Value TypeID
}

// Types manages allocation of type annotations and their payloads.
type Types struct {
	Arena *Arena[Type]
	Names *Arena[TypeNameData]
	Lists *Arena[TypeListData]
	Maps  *Arena[TypeMapData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena: NewArena[Type](capHint),
		Names: NewArena[TypeNameData](capHint),
		Lists: NewArena[TypeListData](capHint),
		Maps:  NewArena[TypeMapData](capHint),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(Type{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewName(span source.Span, name source.StringID) TypeID {
	payload := t.Names.Allocate(TypeNameData{Name: name})
	return t.new(TypeName, span, PayloadID(payload))
}

func (t *Types) Name(id TypeID) (*TypeNameData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeName || !ty.Payload.IsValid() {
		return nil, false
	}
	return t.Names.Get(uint32(ty.Payload)), true
}

func (t *Types) NewList(span source.Span, elem TypeID) TypeID {
	payload := t.Lists.Allocate(TypeListData{Elem: elem})
	return t.new(TypeList, span, PayloadID(payload))
}

func (t *Types) List(id TypeID) (*TypeListData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeList || !ty.Payload.IsValid() {
		return nil, false
	}
	return t.Lists.Get(uint32(ty.Payload)), true
}

func (t *Types) NewMap(span source.Span, key, value TypeID) TypeID {
	payload := t.Maps.Allocate(TypeMapData{Key: key, Value: value})
	return t.new(TypeMap, span, PayloadID(payload))
}

func (t *Types) Map(id TypeID) (*TypeMapData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeMap || !ty.Payload.IsValid() {
		return nil, false
	}
	return t.Maps.Get(uint32(ty.Payload)), true
}

// NewBad allocates an error-marker type at the failure span.
func (t *Types) NewBad(span source.Span) TypeID {
	return t.new(TypeBad, span, NoPayloadID)
}
