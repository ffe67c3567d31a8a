package gotype

import (
	"go/types"
	"testing"

	"github.com/Yamashou/gqldto/shape"
)

func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   shape.DeclarationID
		want string
	}{
		{id: shape.DeclarationID{Namespace: "generated", Name: "GetEvents"}, want: "GetEvents"},
		{id: shape.DeclarationID{Namespace: "generated/GetEvents", Name: "Events"}, want: "GetEvents_Events"},
		{id: shape.DeclarationID{Namespace: "generated/Q/Hero", Name: "FriendsHuman"}, want: "Q_Hero_FriendsHuman"},
		{id: shape.DeclarationID{Namespace: "other/Q", Name: "Node"}, want: "Other_Q_Node"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := typeName("generated", tt.id); got != tt.want {
				t.Errorf("typeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinder_FieldType(t *testing.T) {
	t.Parallel()

	node := shape.DeclarationID{Namespace: "generated/Q", Name: "Node"}
	human := shape.DeclarationID{Namespace: "generated/Q", Name: "NodeHuman"}

	forest := shape.NewForest()
	forest.Add(&shape.Declaration{ID: human, Parent: &node})
	forest.Add(&shape.Declaration{ID: node, Abstract: true})

	tests := []struct {
		name       string
		ref        shape.TypeRef
		native     string
		annotation string
	}{
		{name: "non-null string", ref: shape.TypeRef{Kind: shape.KindString}, native: "string"},
		{name: "nullable int", ref: shape.TypeRef{Kind: shape.KindInt, Nullable: true, ElemNullable: true}, native: "*int"},
		{name: "float", ref: shape.TypeRef{Kind: shape.KindFloat}, native: "float64"},
		{name: "bool", ref: shape.TypeRef{Kind: shape.KindBool, Nullable: true, ElemNullable: true}, native: "*bool"},
		{name: "list of non-null strings", ref: shape.TypeRef{Kind: shape.KindString, ListDepth: 1, Nullable: true}, native: "[]string"},
		{name: "nested list", ref: shape.TypeRef{Kind: shape.KindInt, ListDepth: 2, Nullable: true, ElemNullable: true}, native: "[][]*int"},
		{name: "concrete object", ref: shape.TypeRef{Kind: shape.KindObject, Declaration: human, Nullable: true, ElemNullable: true}, native: "*Q_NodeHuman"},
		{name: "abstract object", ref: shape.TypeRef{Kind: shape.KindObject, Declaration: node, Nullable: true, ElemNullable: true}, native: "Q_Node"},
		{name: "list of abstract objects", ref: shape.TypeRef{Kind: shape.KindObject, Declaration: node, ListDepth: 1, ElemNullable: true}, native: "[]Q_Node"},
		{name: "unknown", ref: shape.TypeRef{Nullable: true, ElemNullable: true}, native: "any"},
		{name: "list of unknown", ref: shape.TypeRef{ListDepth: 1}, native: "[]any"},
	}

	pkg := types.NewPackage("generated", "generated")
	binder := NewBinder("generated", pkg, forest, true)
	legacy := NewBinder("generated", pkg, forest, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := binder.TypeString(binder.DeclaredType(tt.ref)); got != tt.native {
				t.Errorf("DeclaredType() = %q, want %q", got, tt.native)
			}

			if got := legacy.TypeString(legacy.DeclaredType(tt.ref)); got != "interface{}" {
				t.Errorf("legacy DeclaredType() = %q, want interface{}", got)
			}
		})
	}
}
