package types

// rank orders the numeric widening chain. Higher rank holds more.
var rank = map[Type]int{Int: 1, Long: 2, Double: 3}

// Widens reports whether a value of type from may be used where type to
// is expected. Every type widens to itself; among the numerics the
// chain is int -> long -> double and never backwards. Bool and Char
// widen only to themselves. Invalid widens to nothing.
func Widens(from, to Type) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	rf, okf := rank[from]
	rt, okt := rank[to]
	return okf && okt && rf < rt
}

// Common returns the least type both a and b widen to, used for the
// results of arithmetic and for joining the branches of a conditional.
// Identical types join to themselves; distinct numeric types join to
// the wider one. Anything else has no common type.
func Common(a, b Type) (Type, bool) {
	if !a.IsValid() || !b.IsValid() {
		return Invalid, false
	}
	if a == b {
		return a, true
	}
	ra, oka := rank[a]
	rb, okb := rank[b]
	if !oka || !okb {
		return Invalid, false
	}
	if ra > rb {
		return a, true
	}
	return b, true
}

// Assignable reports whether a value of type rhs may be assigned to a
// target of type lhs. Assignment permits widening only; narrowing is
// always rejected.
func Assignable(lhs, rhs Type) bool {
	return Widens(rhs, lhs)
}

// Comparable reports whether a and b may be compared with ==, > or <.
// Comparison is stricter than arithmetic: the operand types must be
// identical, with no implicit widening.
func Comparable(a, b Type) bool {
	return a.IsValid() && a == b
}

// BoolOperands reports whether a and b are both bool, as the logical
// connectives require.
func BoolOperands(a, b Type) bool {
	return a == Bool && b == Bool
}

// FloorDivOperands reports whether a and b are legal operands for the
// floor division operator, which rejects double on either side.
func FloorDivOperands(a, b Type) bool {
	return a.IsValid() && b.IsValid() && a != Double && b != Double
}
