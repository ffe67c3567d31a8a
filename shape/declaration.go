package shape

import "slices"

// DeclarationID identifies a declaration by namespace and local name.
// Namespaces are slash separated; nested declarations live in the
// namespace named after the declaration that owns them.
type DeclarationID struct {
	Namespace string
	Name      string
}

func (id DeclarationID) String() string {
	if id.Namespace == "" {
		return id.Name
	}

	return id.Namespace + "/" + id.Name
}

func (id DeclarationID) LocalName() string {
	return id.Name
}

// Field is one resolved field of a declaration.
// Name is the schema field name and is what deduplication keys on;
// OutputName is the alias when one was given.
type Field struct {
	Name       string
	OutputName string
	Type       TypeRef
}

// Declaration is the shape of one selection set resolved against one
// schema type. Abstract declarations come from interfaces; their concrete
// variants carry the abstract declaration's id in Parent.
type Declaration struct {
	ID       DeclarationID
	Abstract bool
	Parent   *DeclarationID
	Fields   []*Field
}

func (d *Declaration) Equal(other *Declaration) bool {
	if d.ID != other.ID || d.Abstract != other.Abstract {
		return false
	}

	if (d.Parent == nil) != (other.Parent == nil) {
		return false
	}

	if d.Parent != nil && *d.Parent != *other.Parent {
		return false
	}

	return slices.EqualFunc(d.Fields, other.Fields, func(a, b *Field) bool {
		return *a == *b
	})
}

// Forest holds declarations in the order they were resolved.
// An id may be registered more than once; Lookup returns the latest.
type Forest struct {
	declarations []*Declaration
	latest       map[DeclarationID]*Declaration
	collisions   []DeclarationID
}

func NewForest() *Forest {
	return &Forest{
		declarations: []*Declaration{},
		latest:       map[DeclarationID]*Declaration{},
	}
}

func (f *Forest) Add(declaration *Declaration) {
	if prev, ok := f.latest[declaration.ID]; ok && !prev.Equal(declaration) && !slices.Contains(f.collisions, declaration.ID) {
		f.collisions = append(f.collisions, declaration.ID)
	}

	f.declarations = append(f.declarations, declaration)
	f.latest[declaration.ID] = declaration
}

func (f *Forest) Declarations() []*Declaration {
	return f.declarations
}

func (f *Forest) Lookup(id DeclarationID) (*Declaration, bool) {
	declaration, ok := f.latest[id]
	return declaration, ok
}

func (f *Forest) Len() int {
	return len(f.declarations)
}

// Collisions returns the ids that were registered more than once with
// differing content, in the order the first conflict was seen. Identical
// re-registrations, as produced by interface variants resolving the same
// nested selection, are not collisions.
func (f *Forest) Collisions() []DeclarationID {
	return f.collisions
}
