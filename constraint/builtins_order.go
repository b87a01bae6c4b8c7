package constraint

// MustComeBefore requires that, if the candidate is on the critical path,
// its index in the critical path is smaller than the index of some
// already-assigned room of a type in types.
//
// The constraint is permissive (returns true) when no room of types has
// been assigned yet, and also when the candidate itself is not on the
// critical path: an off-path candidate has no path index to order, so it
// is never rejected on ordering grounds.
func MustComeBefore[T comparable](target T, types []T) Constraint[T] {
	set := toSet(types)
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		path := ctx.Graph.CriticalPath
		candidateIdx := indexOf(path, nodeID)
		if candidateIdx < 0 {
			return true
		}
		anyPathedR := false
		for id, t := range ctx.Assignment {
			if _, match := set[t]; !match {
				continue
			}
			idx := indexOf(path, id)
			if idx < 0 {
				continue
			}
			anyPathedR = true
			if candidateIdx < idx {
				return true
			}
		}
		return !anyPathedR
	}}
}

func indexOf(path []int, id int) int {
	for i, p := range path {
		if p == id {
			return i
		}
	}
	return -1
}
