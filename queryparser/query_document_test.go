package queryparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestQueryDocument(t *testing.T) {
	t.Parallel()

	sources := []*ast.Source{
		{Name: "events.graphql", Input: `query getEvents { events { ...EventFields } } fragment EventFields on Event { id }`},
		{Name: "fragments.graphql", Input: `fragment LocationFields on Location { name } query second { events { id } }`},
	}

	doc, err := QueryDocument(sources)
	if err != nil {
		t.Fatalf("QueryDocument() error = %v", err)
	}

	var operations, fragments []string
	for _, operation := range doc.Operations {
		operations = append(operations, operation.Name)
	}
	for _, fragment := range doc.Fragments {
		fragments = append(fragments, fragment.Name)
	}

	if diff := cmp.Diff([]string{"getEvents", "second"}, operations); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"EventFields", "LocationFields"}, fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryDocument_notValidated(t *testing.T) {
	t.Parallel()

	// unknown fields and fragments are left for resolution to deal with
	doc, err := QueryDocument([]*ast.Source{{Name: "q.graphql", Input: `{ nothing { ...Missing } }`}})
	if err != nil {
		t.Fatalf("QueryDocument() error = %v", err)
	}
	if len(doc.Operations) != 1 {
		t.Errorf("QueryDocument() operations = %d, want 1", len(doc.Operations))
	}
}

func TestQueryDocument_syntaxError(t *testing.T) {
	t.Parallel()

	if _, err := QueryDocument([]*ast.Source{{Name: "broken.graphql", Input: `query {`}}); err == nil {
		t.Error("QueryDocument() error = nil, want syntax error")
	}
}

func TestQuerySources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filename := filepath.Join(dir, "getEvents.graphql")
	if err := os.WriteFile(filename, []byte("{ events { id } }"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := QuerySources([]string{filename})
	if err != nil {
		t.Fatalf("QuerySources() error = %v", err)
	}
	if len(sources) != 1 || sources[0].Input != "{ events { id } }" {
		t.Errorf("QuerySources() = %v", sources)
	}

	if _, err := QuerySources([]string{filepath.Join(dir, "missing.graphql")}); err == nil {
		t.Error("QuerySources() error = nil for a missing file")
	}
}
