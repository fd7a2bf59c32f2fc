package main

// TypeKind discriminates the type sum type.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypePrimitive
	TypePointer
)

// PrimitiveID names the four built-in scalar types.
type PrimitiveID int

const (
	PrimU8 PrimitiveID = iota
	PrimU16
	PrimU32
	PrimU64
)

func (p PrimitiveID) String() string {
	switch p {
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	default:
		return "?"
	}
}

func (p PrimitiveID) Size() int {
	switch p {
	case PrimU8:
		return 1
	case PrimU16:
		return 2
	case PrimU32:
		return 4
	case PrimU64:
		return 8
	default:
		fatalInternalf("PrimitiveID.Size: unknown primitive id %d", p)
		return 0
	}
}

var primitiveByName = map[string]PrimitiveID{
	"u8":  PrimU8,
	"u16": PrimU16,
	"u32": PrimU32,
	"u64": PrimU64,
}

// Type is a sum type shared by pointer: Unknown (a parser placeholder
// carrying only a name), Primitive, or Pointer. Every Unknown must be
// resolved in place to Primitive or Pointer before codegen reads it.
type Type struct {
	Kind TypeKind

	// valid when Kind == TypeUnknown
	UnknownID string

	// valid when Kind == TypePrimitive
	Primitive PrimitiveID

	// valid when Kind == TypePointer
	Pointee *Type
}

func newUnknownType(a *Arena, id string) *Type {
	t := ArenaNew[Type](a)
	t.Kind = TypeUnknown
	t.UnknownID = id
	return t
}

func newPointerType(a *Arena, pointee *Type) *Type {
	t := ArenaNew[Type](a)
	t.Kind = TypePointer
	t.Pointee = pointee
	return t
}

func newPrimitiveType(a *Arena, id PrimitiveID) *Type {
	t := ArenaNew[Type](a)
	t.Kind = TypePrimitive
	t.Primitive = id
	return t
}

// SizeOf returns the byte width of a resolved type. Pointer size is
// always 8, regardless of the pointee's size.
func (t *Type) SizeOf() int {
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive.Size()
	case TypePointer:
		return 8
	default:
		fatalInternalf("SizeOf: type is not resolved (kind=%d)", t.Kind)
		return 0
	}
}

func (t *Type) String() string {
	switch t.Kind {
	case TypeUnknown:
		return t.UnknownID
	case TypePrimitive:
		return t.Primitive.String()
	case TypePointer:
		return t.Pointee.String() + "*"
	default:
		return "?"
	}
}
