package gotype

import (
	"fmt"

	"github.com/99designs/gqlgen/codegen/templates"
	"github.com/Yamashou/gqldto/shape"
)

// DeclarationSource is the template input of one generated file.
type DeclarationSource struct {
	PackageName string
	ID          string
	TypeName    string
	Abstract    bool
	// Marker is the unexported method tying an abstract declaration to its
	// variants: declared on the interface, implemented by each variant.
	Marker string
	Fields []*FieldSource
}

type FieldSource struct {
	Name string
	Type string
	// Annotation documents the native type of a legacy interface{} field.
	Annotation string
	Tag        string
}

// NewDeclarationSource builds the template input of declaration. It fails
// when two fields, or a field and a getter, end up with the same Go name,
// as the aliases a and A do.
func NewDeclarationSource(packageName string, binder *Binder, declaration *shape.Declaration) (*DeclarationSource, error) {
	source := &DeclarationSource{
		PackageName: packageName,
		ID:          declaration.ID.String(),
		TypeName:    binder.TypeName(declaration.ID),
		Abstract:    declaration.Abstract,
		Fields:      make([]*FieldSource, 0, len(declaration.Fields)),
	}

	switch {
	case declaration.Abstract:
		source.Marker = markerName(source.TypeName)
	case declaration.Parent != nil:
		source.Marker = markerName(binder.TypeName(*declaration.Parent))
	}

	fields := declaration.Fields
	if declaration.Abstract {
		fields = sharedFields(binder, declaration)
	}

	// struct fields and getters share one member namespace
	members := make(map[string]string, 2*len(fields))
	claim := func(member, outputName string) error {
		if other, ok := members[member]; ok {
			return fmt.Errorf("%s: fields %q and %q both declare %s", source.ID, other, outputName, member)
		}
		members[member] = outputName
		return nil
	}

	for _, field := range fields {
		fieldSource := NewFieldSource(binder, field)
		if !source.Abstract {
			if err := claim(fieldSource.Name, field.OutputName); err != nil {
				return nil, err
			}
		}
		if err := claim("Get"+fieldSource.Name, field.OutputName); err != nil {
			return nil, err
		}

		source.Fields = append(source.Fields, fieldSource)
	}

	return source, nil
}

// sharedFields returns the fields of an abstract declaration that every
// variant declares with the same Go type. An object type may narrow the
// nullability of an interface field, and such a field gets no getter on
// the interface.
func sharedFields(binder *Binder, declaration *shape.Declaration) []*shape.Field {
	variants := binder.Variants(declaration.ID)

	fields := make([]*shape.Field, 0, len(declaration.Fields))
	for _, field := range declaration.Fields {
		want := binder.TypeString(binder.DeclaredType(field.Type))

		shared := true
		for _, variant := range variants {
			variantField := fieldByOutputName(variant.Fields, field.OutputName)
			if variantField == nil || binder.TypeString(binder.DeclaredType(variantField.Type)) != want {
				shared = false
				break
			}
		}

		if shared {
			fields = append(fields, field)
		}
	}

	return fields
}

func fieldByOutputName(fields []*shape.Field, outputName string) *shape.Field {
	for _, field := range fields {
		if field.OutputName == outputName {
			return field
		}
	}

	return nil
}

func NewFieldSource(binder *Binder, field *shape.Field) *FieldSource {
	name := templates.ToGo(field.OutputName)
	source := &FieldSource{
		Name: name,
		Type: binder.TypeString(binder.DeclaredType(field.Type)),
		Tag:  fmt.Sprintf(`json:"%s" graphql:"%s"`, field.OutputName, field.OutputName),
	}

	if !binder.native && field.Type.Kind != shape.KindUnknown {
		source.Annotation = fmt.Sprintf("%s: %s", name, binder.TypeString(binder.FieldType(field.Type)))
	}

	return source
}

func markerName(typeName string) string {
	return "is" + typeName
}
