package shape

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// UnknownFragmentError is returned when a spread names a fragment the
// document does not define.
type UnknownFragmentError struct {
	Name     string
	Position *ast.Position
}

func (e *UnknownFragmentError) Error() string {
	if e.Position != nil && e.Position.Src != nil {
		return fmt.Sprintf("%s:%d: unknown fragment %q", e.Position.Src.Name, e.Position.Line, e.Name)
	}

	return fmt.Sprintf("unknown fragment %q", e.Name)
}

// FragmentCycleError is returned when a fragment spreads itself, directly or
// through other fragments. When the spread sits below one of the fragment's
// own fields, Path only names the fragment owning that field.
type FragmentCycleError struct {
	Path []string
}

func (e *FragmentCycleError) Error() string {
	return fmt.Sprintf("fragment cycle: %v", e.Path)
}

// FragmentIndex maps fragment names to their definitions.
type FragmentIndex struct {
	fragments  map[string]*ast.FragmentDefinition
	ordered    []*ast.FragmentDefinition
	duplicates []string
}

// NewFragmentIndex indexes the fragments of doc. When a name is defined
// twice the first definition is kept.
func NewFragmentIndex(doc *ast.QueryDocument) *FragmentIndex {
	index := &FragmentIndex{
		fragments: make(map[string]*ast.FragmentDefinition, len(doc.Fragments)),
	}

	for _, fragment := range doc.Fragments {
		if _, ok := index.fragments[fragment.Name]; ok {
			index.duplicates = append(index.duplicates, fragment.Name)
			continue
		}
		index.fragments[fragment.Name] = fragment
		index.ordered = append(index.ordered, fragment)
	}

	return index
}

func (i *FragmentIndex) Lookup(name string) (*ast.FragmentDefinition, error) {
	fragment, ok := i.fragments[name]
	if !ok {
		return nil, &UnknownFragmentError{Name: name}
	}

	return fragment, nil
}

// Duplicates returns the names that were defined more than once.
func (i *FragmentIndex) Duplicates() []string {
	return i.duplicates
}

// Owner returns the name of the fragment whose selection set contains field
// at any depth.
func (i *FragmentIndex) Owner(field *ast.Field) (string, bool) {
	for _, fragment := range i.ordered {
		if containsField(fragment.SelectionSet, field) {
			return fragment.Name, true
		}
	}

	return "", false
}

func containsField(selectionSet ast.SelectionSet, field *ast.Field) bool {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *ast.Field:
			if sel == field || containsField(sel.SelectionSet, field) {
				return true
			}
		case *ast.InlineFragment:
			if containsField(sel.SelectionSet, field) {
				return true
			}
		}
	}

	return false
}
