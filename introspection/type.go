package introspection

import (
	"encoding/json"
	"fmt"
)

type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

// Query is the result of the standard introspection query.
type Query struct {
	Schema Schema `json:"__schema"`
}

type Schema struct {
	QueryType        *NamedType       `json:"queryType"`
	MutationType     *NamedType       `json:"mutationType"`
	SubscriptionType *NamedType       `json:"subscriptionType"`
	Types            []*FullType      `json:"types"`
	Directives       []*DirectiveType `json:"directives"`
}

type NamedType struct {
	Name string `json:"name"`
}

type FullType struct {
	Kind          TypeKind      `json:"kind"`
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Fields        []*FieldValue `json:"fields"`
	InputFields   []*InputValue `json:"inputFields"`
	Interfaces    []*TypeRef    `json:"interfaces"`
	EnumValues    []*EnumValue  `json:"enumValues"`
	PossibleTypes []*TypeRef    `json:"possibleTypes"`
}

type FieldValue struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Args        []*InputValue `json:"args"`
	Type        TypeRef       `json:"type"`
}

type InputValue struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        TypeRef `json:"type"`
}

type EnumValue struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

type DirectiveType struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Locations   []string      `json:"locations"`
	Args        []*InputValue `json:"args"`
}

// DecodeQuery decodes an introspection result, either a bare result or one
// wrapped in a GraphQL response's data field.
func DecodeQuery(raw []byte) (*Query, error) {
	var response struct {
		Data *Query `json:"data"`
		Query
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("unable to decode introspection result: %w", err)
	}

	query := &response.Query
	if response.Data != nil {
		query = response.Data
	}

	if query.Schema.QueryType == nil && len(query.Schema.Types) == 0 {
		return nil, fmt.Errorf("introspection result has no __schema")
	}

	return query, nil
}
