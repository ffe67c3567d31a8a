package shape

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Kind is the leaf classification of a field once list and non-null
// modifiers are removed.
type Kind int

const (
	// KindUnknown fields are emitted without a type annotation.
	KindUnknown Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindObject
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindString:  "string",
	KindInt:     "int",
	KindFloat:   "float",
	KindBool:    "bool",
	KindObject:  "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the primitive kinds a custom scalar may be bound to.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "bool":
		return KindBool, nil
	}

	return KindUnknown, fmt.Errorf("unsupported scalar kind %q, want one of string, int, float, bool", s)
}

// TypeRef is the type of a single field.
// Nullable describes the outermost modifier, ElemNullable the named type
// found under all list modifiers. For a non-list both are the same.
type TypeRef struct {
	Kind         Kind
	Declaration  DeclarationID
	ListDepth    int
	Nullable     bool
	ElemNullable bool
}

func (t TypeRef) IsList() bool {
	return t.ListDepth > 0
}

// unwrapType strips list and non-null modifiers from t and returns the name of
// the base type together with the modifiers it carried.
func unwrapType(t *ast.Type) (string, TypeRef) {
	ref := TypeRef{Nullable: !t.NonNull}
	for t.Elem != nil {
		ref.ListDepth++
		t = t.Elem
	}
	ref.ElemNullable = !t.NonNull

	return t.NamedType, ref
}
