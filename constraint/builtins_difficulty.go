package constraint

// MinDifficulty requires the candidate's computed difficulty to be at
// least d. Permissive (true) when difficulty has not been computed yet:
// difficulty scaling runs after room-type assignment in the generation
// pipeline, so this only gates re-evaluation passes.
func MinDifficulty[T comparable](target T, d float64) Constraint[T] {
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		if !ctx.HasDiff {
			return true
		}
		return ctx.Difficulty[nodeID] >= d
	}}
}

// MaxDifficulty requires the candidate's computed difficulty to be at
// most d. Permissive when difficulty has not been computed yet.
func MaxDifficulty[T comparable](target T, d float64) Constraint[T] {
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		if !ctx.HasDiff {
			return true
		}
		return ctx.Difficulty[nodeID] <= d
	}}
}
