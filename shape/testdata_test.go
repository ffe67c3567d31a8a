package shape

import (
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const testSchema = `
type Query {
	hero: Character
	node(id: ID!): Node
	human(id: ID!): Human
	search(text: String!): [SearchResult]
	events: [Event!]!
}

interface Node {
	id: ID!
}

interface Character {
	name: String!
	friends: [Character]
}

type Human implements Node & Character {
	id: ID!
	name: String!
	friends: [Character]
	height: Float
	homePlanet: String
}

type Droid implements Node & Character {
	id: ID!
	name: String!
	friends: [Character]
	primaryFunction: String
}

union SearchResult = Human | Droid

enum Status {
	ACTIVE
	CANCELLED
}

scalar DateTime

type Event {
	id: ID!
	title: String
	tags: [String!]
	matrix: [[Int]]
	status: Status!
	price: Float
	soldOut: Boolean!
	startsAt: DateTime
	capacity: Int
	location: Location
}

type Location {
	name: String!
}
`

func loadTestSchema(t *testing.T) *ast.Schema {
	t.Helper()

	return gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: testSchema})
}

func parseTestQuery(t *testing.T, query string) *ast.QueryDocument {
	t.Helper()

	doc, err := parser.ParseQuery(&ast.Source{Name: "query.graphql", Input: query})
	if err != nil {
		t.Fatalf("failed to parse query: %v", err)
	}

	return doc
}

func nonNull(kind Kind) TypeRef {
	return TypeRef{Kind: kind}
}

func nullable(kind Kind) TypeRef {
	return TypeRef{Kind: kind, Nullable: true, ElemNullable: true}
}

func object(namespace, name string, nullable bool) TypeRef {
	return TypeRef{
		Kind:         KindObject,
		Declaration:  DeclarationID{Namespace: namespace, Name: name},
		Nullable:     nullable,
		ElemNullable: nullable,
	}
}

func parentID(namespace, name string) *DeclarationID {
	return &DeclarationID{Namespace: namespace, Name: name}
}
