package shape

import "github.com/99designs/gqlgen/codegen/templates"

// ClassName names the declaration of a selection node.
func ClassName(name string) string {
	return templates.UcFirst(name)
}

// SubclassName names the variant of an abstract declaration for one of the
// interface's concrete types, e.g. Node + Human = NodeHuman. Collisions are
// not detected here.
func SubclassName(parentLocalName, concreteTypeName string) string {
	return parentLocalName + concreteTypeName
}
