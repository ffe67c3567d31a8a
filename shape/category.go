package shape

import "github.com/vektah/gqlparser/v2/ast"

// Category is the schema-side classification of a field's base type.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryObject
	CategoryInterface
	CategoryEnum
	CategoryID
	CategoryString
	CategoryFloat
	CategoryBoolean
	CategoryInt
)

var builtinScalarCategories = map[string]Category{
	"ID":      CategoryID,
	"String":  CategoryString,
	"Float":   CategoryFloat,
	"Boolean": CategoryBoolean,
	"Int":     CategoryInt,
}

// categorize classifies def. Unions, input objects, custom scalars and
// missing definitions are all CategoryUnknown.
func categorize(def *ast.Definition) Category {
	if def == nil {
		return CategoryUnknown
	}

	switch def.Kind {
	case ast.Object:
		return CategoryObject
	case ast.Interface:
		return CategoryInterface
	case ast.Enum:
		return CategoryEnum
	case ast.Scalar:
		if category, ok := builtinScalarCategories[def.Name]; ok {
			return category
		}
	}

	return CategoryUnknown
}

// isComposite reports whether selections can be made against def.
func isComposite(def *ast.Definition) bool {
	return def != nil && (def.Kind == ast.Object || def.Kind == ast.Interface)
}
