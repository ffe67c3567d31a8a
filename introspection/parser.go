package introspection

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

type parser struct {
	sharedPosition *ast.Position
}

// ParseIntrospectionQuery converts an introspection result into a schema
// document. Types keep the order of the result, and types reserved by
// introspection itself are left out.
func ParseIntrospectionQuery(name string, query *Query) *ast.SchemaDocument {
	p := parser{
		sharedPosition: &ast.Position{Src: &ast.Source{Name: name}},
	}

	return p.parseIntrospectionQuery(query)
}

func (p parser) parseIntrospectionQuery(query *Query) *ast.SchemaDocument {
	doc := &ast.SchemaDocument{Position: p.sharedPosition}

	if schema := p.parseSchemaDefinition(query); schema != nil {
		doc.Schema = append(doc.Schema, schema)
	}

	for _, typ := range query.Schema.Types {
		if typ.Name == nil || strings.HasPrefix(*typ.Name, "__") {
			continue
		}
		doc.Definitions = append(doc.Definitions, p.parseTypeSystemDefinition(typ))
	}

	for _, directive := range query.Schema.Directives {
		doc.Directives = append(doc.Directives, p.parseDirectiveDefinition(directive))
	}

	return doc
}

func (p parser) parseSchemaDefinition(query *Query) *ast.SchemaDefinition {
	var operationTypes ast.OperationTypeDefinitionList
	add := func(operation ast.Operation, typ *NamedType) {
		if typ == nil || typ.Name == "" {
			return
		}
		operationTypes = append(operationTypes, &ast.OperationTypeDefinition{
			Operation: operation,
			Type:      typ.Name,
			Position:  p.sharedPosition,
		})
	}

	add(ast.Query, query.Schema.QueryType)
	add(ast.Mutation, query.Schema.MutationType)
	add(ast.Subscription, query.Schema.SubscriptionType)

	if len(operationTypes) == 0 {
		return nil
	}

	return &ast.SchemaDefinition{
		OperationTypes: operationTypes,
		Position:       p.sharedPosition,
	}
}

func (p parser) parseTypeSystemDefinition(typ *FullType) *ast.Definition {
	def := &ast.Definition{
		Name:        *typ.Name,
		Description: pointerString(typ.Description),
		Position:    p.sharedPosition,
	}

	switch typ.Kind {
	case TypeKindScalar:
		def.Kind = ast.Scalar
	case TypeKindObject:
		def.Kind = ast.Object
		def.Fields = p.parseFieldsDefinition(typ.Fields)
		def.Interfaces = typeNames(typ.Interfaces)
	case TypeKindInterface:
		def.Kind = ast.Interface
		def.Fields = p.parseFieldsDefinition(typ.Fields)
		def.Interfaces = typeNames(typ.Interfaces)
	case TypeKindUnion:
		def.Kind = ast.Union
		def.Types = typeNames(typ.PossibleTypes)
	case TypeKindEnum:
		def.Kind = ast.Enum
		def.EnumValues = make(ast.EnumValueList, 0, len(typ.EnumValues))
		for _, value := range typ.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
				Name:        value.Name,
				Description: pointerString(value.Description),
				Position:    p.sharedPosition,
			})
		}
	case TypeKindInputObject:
		def.Kind = ast.InputObject
		def.Fields = make(ast.FieldList, 0, len(typ.InputFields))
		for _, field := range typ.InputFields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        field.Name,
				Description: pointerString(field.Description),
				Type:        p.buildType(&field.Type),
				Position:    p.sharedPosition,
			})
		}
	}

	return def
}

func (p parser) parseFieldsDefinition(fields []*FieldValue) ast.FieldList {
	fieldList := make(ast.FieldList, 0, len(fields))
	for _, field := range fields {
		fieldList = append(fieldList, &ast.FieldDefinition{
			Name:        field.Name,
			Description: pointerString(field.Description),
			Arguments:   p.parseArgumentsDefinition(field.Args),
			Type:        p.buildType(&field.Type),
			Position:    p.sharedPosition,
		})
	}

	return fieldList
}

func (p parser) parseArgumentsDefinition(args []*InputValue) ast.ArgumentDefinitionList {
	argumentList := make(ast.ArgumentDefinitionList, 0, len(args))
	for _, arg := range args {
		argumentList = append(argumentList, &ast.ArgumentDefinition{
			Name:        arg.Name,
			Description: pointerString(arg.Description),
			Type:        p.buildType(&arg.Type),
			Position:    p.sharedPosition,
		})
	}

	return argumentList
}

func (p parser) parseDirectiveDefinition(directive *DirectiveType) *ast.DirectiveDefinition {
	locations := make([]ast.DirectiveLocation, 0, len(directive.Locations))
	for _, location := range directive.Locations {
		locations = append(locations, ast.DirectiveLocation(location))
	}

	return &ast.DirectiveDefinition{
		Name:        directive.Name,
		Description: pointerString(directive.Description),
		Arguments:   p.parseArgumentsDefinition(directive.Args),
		Locations:   locations,
		Position:    p.sharedPosition,
	}
}

func (p parser) buildType(typeRef *TypeRef) *ast.Type {
	switch typeRef.Kind {
	case TypeKindNonNull:
		typ := p.buildType(typeRef.OfType)
		typ.NonNull = true

		return typ
	case TypeKindList:
		return &ast.Type{
			Elem:     p.buildType(typeRef.OfType),
			Position: p.sharedPosition,
		}
	default:
		return &ast.Type{
			NamedType: pointerString(typeRef.Name),
			Position:  p.sharedPosition,
		}
	}
}

func typeNames(refs []*TypeRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Name != nil {
			names = append(names, *ref.Name)
		}
	}

	return names
}

func pointerString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
