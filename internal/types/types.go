// Package types defines the minilang type system: five primitive types
// plus an Invalid sentinel, and the widening lattice that governs
// assignments, arithmetic, and conditional expressions.
//
// The set of types is closed, so Type is a plain enum rather than an
// interface hierarchy. Consumers switch exhaustively on it.
package types

// Type identifies a minilang type.
type Type int

const (
	// Invalid marks an expression whose type could not be determined
	// because of an earlier error. It widens to nothing and nothing
	// widens to it, which stops one mistake from producing a cascade of
	// follow-on diagnostics.
	Invalid Type = iota

	Int
	Long
	Double
	Bool
	Char
)

// String returns the type name as it appears in source.
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Long:
		return "long"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case Char:
		return "char"
	default:
		return "<invalid>"
	}
}

// Width returns the storage size of the type in bytes. Symbol offsets
// within a scope advance by this amount per declaration.
func (t Type) Width() int {
	switch t {
	case Int:
		return 4
	case Long:
		return 8
	case Double:
		return 8
	case Bool:
		return 4
	case Char:
		return 1
	default:
		return 0
	}
}

// IsNumeric reports whether the type participates in the numeric
// widening chain int -> long -> double.
func (t Type) IsNumeric() bool {
	return t == Int || t == Long || t == Double
}

// IsValid reports whether the type is a real source-level type.
func (t Type) IsValid() bool {
	return t != Invalid
}
