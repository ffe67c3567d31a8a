package shape

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

var ErrNoQueryType = errors.New("schema has no query type")

// SelectionNode is anything that owns a declaration: the operation itself
// or a field with a selection set.
type SelectionNode struct {
	Name         string
	SelectionSet ast.SelectionSet
}

// OperationNode names an anonymous operation after its operation type.
func OperationNode(operation *ast.OperationDefinition) SelectionNode {
	name := operation.Name
	if name == "" {
		name = string(operation.Operation)
	}

	return SelectionNode{Name: name, SelectionSet: operation.SelectionSet}
}

func FieldNode(field *ast.Field) SelectionNode {
	return SelectionNode{Name: field.Name, SelectionSet: field.SelectionSet}
}

type Option func(*Resolver)

// WithScalars binds custom scalars to primitive kinds. Unbound custom
// scalars are resolved as KindUnknown.
func WithScalars(scalars map[string]Kind) Option {
	return func(r *Resolver) {
		r.scalars = scalars
	}
}

// Resolver derives the declaration forest of a selection against the schema.
type Resolver struct {
	schema    *ast.Schema
	fragments *FragmentIndex
	scalars   map[string]Kind
	forest    *Forest
	// resolving holds the object fields on the current resolution path.
	resolving map[*ast.Field]struct{}
}

func NewResolver(schema *ast.Schema, fragments *FragmentIndex, opts ...Option) *Resolver {
	r := &Resolver{
		schema:    schema,
		fragments: fragments,
		scalars:   map[string]Kind{},
		forest:    NewForest(),
		resolving: map[*ast.Field]struct{}{},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) Forest() *Forest {
	return r.forest
}

// ResolveDocument resolves the first operation of doc against the query
// root in namespace. A document without operations yields an empty forest.
func ResolveDocument(schema *ast.Schema, doc *ast.QueryDocument, namespace string, opts ...Option) (*Forest, error) {
	if len(doc.Operations) == 0 {
		return NewForest(), nil
	}

	if schema.Query == nil {
		return nil, ErrNoQueryType
	}

	r := NewResolver(schema, NewFragmentIndex(doc), opts...)
	if _, err := r.Resolve(OperationNode(doc.Operations[0]), schema.Query, namespace, nil); err != nil {
		return nil, err
	}

	return r.Forest(), nil
}

// Resolve registers the declaration of node resolved against target and
// returns its id. With a parent, the declaration is the variant of parent
// for the concrete type target.
//
// Interfaces are registered abstract after one variant per possible object
// type, so variants always precede their parent in the forest. Each variant
// resolves its fields against its own concrete type, and therefore
// redeclares whatever the abstract declaration already has.
func (r *Resolver) Resolve(node SelectionNode, target *ast.Definition, namespace string, parent *DeclarationID) (DeclarationID, error) {
	id := DeclarationID{Namespace: namespace, Name: ClassName(node.Name)}
	if parent != nil {
		id.Name = SubclassName(parent.LocalName(), target.Name)
	}

	declaration := &Declaration{ID: id, Parent: parent}

	if target.Kind == ast.Interface {
		declaration.Abstract = true
		for _, possibleType := range r.possibleTypes(target) {
			abstractID := id
			if _, err := r.Resolve(node, possibleType, namespace, &abstractID); err != nil {
				return DeclarationID{}, err
			}
		}
	}

	if node.SelectionSet != nil {
		selections, err := Merge(node.SelectionSet, target, r.fragments)
		if err != nil {
			return DeclarationID{}, fmt.Errorf("%s: %w", id, err)
		}

		// variants share the nested declarations of their abstract parent
		nested := id.String()
		if parent != nil {
			nested = parent.String()
		}

		declaration.Fields = make([]*Field, 0, len(selections))
		for _, selection := range selections {
			field, err := r.resolveField(selection, target, nested)
			if err != nil {
				return DeclarationID{}, err
			}
			declaration.Fields = append(declaration.Fields, field)
		}
	}

	r.forest.Add(declaration)

	return id, nil
}

func (r *Resolver) resolveField(selection *ast.Field, owner *ast.Definition, namespace string) (*Field, error) {
	definition := owner.Fields.ForName(selection.Name)
	typeName, ref := unwrapType(definition.Type)
	base := r.schema.Types[typeName]

	switch categorize(base) {
	case CategoryObject, CategoryInterface:
		// a field met again below itself was reached through a fragment
		// spreading the fragment it belongs to
		if _, ok := r.resolving[selection]; ok {
			return nil, r.fragmentCycle(selection)
		}

		r.resolving[selection] = struct{}{}
		id, err := r.Resolve(FieldNode(selection), base, namespace, nil)
		delete(r.resolving, selection)
		if err != nil {
			return nil, err
		}
		ref.Kind = KindObject
		ref.Declaration = id
	case CategoryID, CategoryString, CategoryEnum:
		ref.Kind = KindString
	case CategoryFloat:
		ref.Kind = KindFloat
	case CategoryBoolean:
		ref.Kind = KindBool
	case CategoryInt:
		ref.Kind = KindInt
	case CategoryUnknown:
		ref.Kind = r.scalars[typeName]
	}

	return &Field{
		Name:       selection.Name,
		OutputName: outputName(selection),
		Type:       ref,
	}, nil
}

func (r *Resolver) fragmentCycle(field *ast.Field) *FragmentCycleError {
	name, ok := r.fragments.Owner(field)
	if !ok {
		name = field.Name
	}

	return &FragmentCycleError{Path: []string{name, name}}
}

// possibleTypes returns the object types implementing def in schema order.
// Interfaces implementing def are skipped.
func (r *Resolver) possibleTypes(def *ast.Definition) []*ast.Definition {
	possibleTypes := r.schema.GetPossibleTypes(def)
	objects := make([]*ast.Definition, 0, len(possibleTypes))
	for _, possibleType := range possibleTypes {
		if possibleType.Kind == ast.Object {
			objects = append(objects, possibleType)
		}
	}

	return objects
}

func outputName(field *ast.Field) string {
	if field.Alias != "" {
		return field.Alias
	}

	return field.Name
}
