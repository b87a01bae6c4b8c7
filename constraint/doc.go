// Package constraint implements the per-room-type validity predicates used
// during room-type assignment: the built-in constraint kinds, Composite
// (And/Or/Not), and Custom user predicates.
//
// Constraints are typed variants evaluated through a single Constraint[T]
// interface. New kinds are added as new constructors or as user Custom
// predicates; there is no expression language and no open type hierarchy.
package constraint
