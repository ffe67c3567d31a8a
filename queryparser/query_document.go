package queryparser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// QuerySources reads query files in the given order.
func QuerySources(filenames []string) ([]*ast.Source, error) {
	sources := make([]*ast.Source, 0, len(filenames))
	for _, filename := range filenames {
		raw, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("unable to open query: %w", err)
		}

		sources = append(sources, &ast.Source{Name: filepath.ToSlash(filename), Input: string(raw)})
	}

	return sources, nil
}

// QueryDocument parses query sources into one document, keeping operations
// and fragments in source order. The document is not validated against the
// schema.
func QueryDocument(querySources []*ast.Source) (*ast.QueryDocument, error) {
	var queryDocument ast.QueryDocument
	for _, querySource := range querySources {
		query, err := parser.ParseQuery(querySource)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", querySource.Name, err)
		}

		queryDocument.Operations = append(queryDocument.Operations, query.Operations...)
		queryDocument.Fragments = append(queryDocument.Fragments, query.Fragments...)
	}

	return &queryDocument, nil
}
