package gotype

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"github.com/Yamashou/gqldto/shape"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Binder binds resolved declarations and field types to Go types of the
// generated package.
type Binder struct {
	rootNamespace string
	pkg           *types.Package
	forest        *shape.Forest
	native        bool
}

func NewBinder(rootNamespace string, pkg *types.Package, forest *shape.Forest, native bool) *Binder {
	return &Binder{
		rootNamespace: rootNamespace,
		pkg:           pkg,
		forest:        forest,
		native:        native,
	}
}

// TypeName returns the Go type name of a declaration. Namespace segments
// below the root namespace are layered in front of the declaration name:
//
//	generated/GetEvents         -> GetEvents
//	generated/GetEvents/Events  -> GetEvents_Events
//	generated/Q/Hero/Friends    -> Q_Hero_Friends
func (b *Binder) TypeName(id shape.DeclarationID) string {
	return typeName(b.rootNamespace, id)
}

func typeName(rootNamespace string, id shape.DeclarationID) string {
	relative := id.Namespace
	if relative == rootNamespace {
		relative = ""
	} else if strings.HasPrefix(relative, rootNamespace+"/") {
		relative = strings.TrimPrefix(relative, rootNamespace+"/")
	}

	name := ""
	for _, segment := range strings.Split(relative, "/") {
		if segment == "" {
			continue
		}
		if name == "" {
			name = segment
			continue
		}
		name = layerTypeName(name, segment)
	}

	if name == "" {
		return id.Name
	}

	return layerTypeName(name, id.Name)
}

// layerTypeName creates a qualified name for nested types.
// For example, if we have a query with nested fields:
//
//	user {
//	  profile {
//	    settings {
//	      notifications
//	    }
//	  }
//	}
//
// This would generate names like User_Profile and User_Profile_Settings
func layerTypeName(base, thisField string) string {
	return fmt.Sprintf("%s_%s", cases.Title(language.Und, cases.NoLower).String(base), thisField)
}

// Named returns the named type of a declaration.
func (b *Binder) Named(id shape.DeclarationID) *types.Named {
	return types.NewNamed(types.NewTypeName(token.NoPos, b.pkg, b.TypeName(id), nil), nil, nil)
}

// IsAbstract reports whether id was registered as an abstract declaration.
// Unknown ids are treated as concrete.
func (b *Binder) IsAbstract(id shape.DeclarationID) bool {
	declaration, ok := b.forest.Lookup(id)
	return ok && declaration.Abstract
}

// Variants returns the concrete declarations registered with id as their
// parent, in the order they were first registered. Each is the latest
// registration of its id.
func (b *Binder) Variants(id shape.DeclarationID) []*shape.Declaration {
	var variants []*shape.Declaration
	seen := make(map[shape.DeclarationID]struct{})
	for _, declaration := range b.forest.Declarations() {
		if declaration.Parent == nil || *declaration.Parent != id {
			continue
		}
		if _, ok := seen[declaration.ID]; ok {
			continue
		}
		seen[declaration.ID] = struct{}{}

		latest, _ := b.forest.Lookup(declaration.ID)
		variants = append(variants, latest)
	}

	return variants
}

// FieldType returns the native Go type of ref.
// Nullable leaves and concrete declarations become pointers; abstract
// declarations are interfaces and are never pointed to. Lists are slices
// whose nil value stands for a null list.
func (b *Binder) FieldType(ref shape.TypeRef) types.Type {
	var typ types.Type
	switch ref.Kind {
	case shape.KindString:
		typ = types.Typ[types.String]
	case shape.KindInt:
		typ = types.Typ[types.Int]
	case shape.KindFloat:
		typ = types.Typ[types.Float64]
	case shape.KindBool:
		typ = types.Typ[types.Bool]
	case shape.KindObject:
		typ = b.Named(ref.Declaration)
	case shape.KindUnknown:
		typ = b.Any()
	}

	if ref.ElemNullable && ref.Kind != shape.KindUnknown && !(ref.Kind == shape.KindObject && b.IsAbstract(ref.Declaration)) {
		typ = types.NewPointer(typ)
	}

	for range ref.ListDepth {
		typ = types.NewSlice(typ)
	}

	return typ
}

// DeclaredType is the type a field is declared with. Legacy targets declare
// every field as an empty interface.
func (b *Binder) DeclaredType(ref shape.TypeRef) types.Type {
	if !b.native {
		return b.Any()
	}

	return b.FieldType(ref)
}

func (b *Binder) Any() types.Type {
	if b.native {
		return types.Universe.Lookup("any").Type()
	}

	return types.NewInterfaceType(nil, nil)
}

// TypeString renders typ relative to the generated package.
func (b *Binder) TypeString(typ types.Type) string {
	return types.TypeString(typ, types.RelativeTo(b.pkg))
}
