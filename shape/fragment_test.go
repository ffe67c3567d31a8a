package shape

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestFragmentIndex(t *testing.T) {
	t.Parallel()

	doc := parseTestQuery(t, `
		query q { human(id: "1") { ...A } }
		fragment A on Human { name }
		fragment B on Human { height }
		fragment A on Human { homePlanet }
	`)
	index := NewFragmentIndex(doc)

	a, err := index.Lookup("A")
	if err != nil {
		t.Fatalf("Lookup(A) error = %v", err)
	}
	if field, ok := a.SelectionSet[0].(*ast.Field); !ok || field.Name != "name" {
		t.Errorf("Lookup(A) returned the later definition")
	}

	if _, err := index.Lookup("B"); err != nil {
		t.Errorf("Lookup(B) error = %v", err)
	}

	_, err = index.Lookup("C")
	var unknown *UnknownFragmentError
	if !errors.As(err, &unknown) || unknown.Name != "C" {
		t.Errorf("Lookup(C) error = %v, want UnknownFragmentError for C", err)
	}

	if diff := cmp.Diff([]string{"A"}, index.Duplicates()); diff != "" {
		t.Errorf("Duplicates() mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentIndex_Owner(t *testing.T) {
	t.Parallel()

	doc := parseTestQuery(t, `
		query q { human(id: "1") { name } }
		fragment A on Human { name }
		fragment B on Human { ... on Human { friends { name } } }
	`)
	index := NewFragmentIndex(doc)

	friends := doc.Fragments.ForName("B").SelectionSet[0].(*ast.InlineFragment).SelectionSet[0].(*ast.Field)
	tests := []struct {
		name   string
		field  *ast.Field
		want   string
		wantOK bool
	}{
		{name: "top level field", field: doc.Fragments.ForName("A").SelectionSet[0].(*ast.Field), want: "A", wantOK: true},
		{name: "field in an inline fragment", field: friends, want: "B", wantOK: true},
		{name: "nested field", field: friends.SelectionSet[0].(*ast.Field), want: "B", wantOK: true},
		{name: "operation field", field: doc.Operations[0].SelectionSet[0].(*ast.Field)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := index.Owner(tt.field)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Owner() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFragmentIndex_empty(t *testing.T) {
	t.Parallel()

	index := NewFragmentIndex(parseTestQuery(t, `{ events { id } }`))
	if _, err := index.Lookup("A"); err == nil {
		t.Error("Lookup() on an empty index succeeded")
	}
	if got := index.Duplicates(); len(got) != 0 {
		t.Errorf("Duplicates() = %v, want none", got)
	}
}

func TestUnknownFragmentError_Error(t *testing.T) {
	t.Parallel()

	doc := parseTestQuery(t, `{ human(id: "1") { ...Missing } }`)
	_, err := Merge(selectionOf(t, doc), loadTestSchema(t).Types["Human"], NewFragmentIndex(doc))
	if err == nil {
		t.Fatal("Merge() succeeded")
	}

	want := `query.graphql:1: unknown fragment "Missing"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &UnknownFragmentError{Name: "Missing"}
	if got := bare.Error(); got != `unknown fragment "Missing"` {
		t.Errorf("Error() = %q", got)
	}
}
