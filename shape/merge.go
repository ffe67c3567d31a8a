package shape

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
)

// Merge flattens selectionSet into the fields target defines.
//
// Fragment spreads and inline fragments are inlined depth-first and merged
// against target itself; their type conditions are not consulted, only the
// existence of each field on target decides whether it is kept. The
// result is deduplicated by schema field name, keeping the first
// occurrence even when a later one uses a different alias.
//
//	query {
//	  user {
//	    name: login   # kept
//	    ...UserFields # contributes email, login is dropped as a duplicate
//	  }
//	}
//
//	fragment UserFields on User {
//	  login
//	  email
//	}
func Merge(selectionSet ast.SelectionSet, target *ast.Definition, fragments *FragmentIndex) ([]*ast.Field, error) {
	fields, err := collectFields(selectionSet, target, fragments, nil)
	if err != nil {
		return nil, err
	}

	return uniqueByName(fields), nil
}

func collectFields(selectionSet ast.SelectionSet, target *ast.Definition, fragments *FragmentIndex, spreading []string) ([]*ast.Field, error) {
	fields := make([]*ast.Field, 0, len(selectionSet))
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *ast.Field:
			if isComposite(target) && target.Fields.ForName(sel.Name) != nil {
				fields = append(fields, sel)
			}

		case *ast.FragmentSpread:
			if slices.Contains(spreading, sel.Name) {
				return nil, &FragmentCycleError{Path: append(slices.Clone(spreading), sel.Name)}
			}

			fragment, err := fragments.Lookup(sel.Name)
			if err != nil {
				return nil, &UnknownFragmentError{Name: sel.Name, Position: sel.Position}
			}

			children, err := collectFields(fragment.SelectionSet, target, fragments, append(slices.Clip(spreading), sel.Name))
			if err != nil {
				return nil, err
			}
			fields = append(fields, children...)

		case *ast.InlineFragment:
			children, err := collectFields(sel.SelectionSet, target, fragments, spreading)
			if err != nil {
				return nil, err
			}
			fields = append(fields, children...)
		}
	}

	return fields, nil
}

func uniqueByName(fields []*ast.Field) []*ast.Field {
	seen := make(map[string]struct{}, len(fields))
	unique := make([]*ast.Field, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field.Name]; ok {
			continue
		}
		seen[field.Name] = struct{}{}
		unique = append(unique, field)
	}

	return unique
}
