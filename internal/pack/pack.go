// Package pack models the pack categories of an asset project and
// resolves category-relative path templates to concrete project paths.
package pack

// Type classifies which sub-project a path or definition applies to.
type Type string

const (
	// TypeBehavior is the behavior pack category.
	TypeBehavior Type = "behaviorPack"

	// TypeResource is the resource pack category.
	TypeResource Type = "resourcePack"

	// TypeSkin is the skin pack category.
	TypeSkin Type = "skinPack"

	// TypeWorldTemplate is the world template category.
	TypeWorldTemplate Type = "worldTemplate"

	// TypeNone marks the absence of a category. Templates resolved
	// with TypeNone are taken relative to the project root.
	TypeNone Type = ""
)

// Valid reports whether t is a known pack category.
// TypeNone is not a category and reports false.
func (t Type) Valid() bool {
	switch t {
	case TypeBehavior, TypeResource, TypeSkin, TypeWorldTemplate:
		return true
	}
	return false
}

// String returns the category tag as written in project and
// definition files.
func (t Type) String() string {
	return string(t)
}
