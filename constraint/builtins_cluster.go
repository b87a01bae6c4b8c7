package constraint

// MustClusterSize, MinClusterSize, and MaxClusterSize all return true
// during assignment: spatial clustering is computed after rooms are
// placed, well after the CSP assignment pass these constraints gate runs.
// ClusterSizeOf is kept on EvalContext for completeness and for any future
// post-placement re-validation pass, but the assignment-time behavior is
// always permissive.

// MustClusterSize requires the candidate's eventual spatial cluster to
// contain exactly n rooms of its type.
func MustClusterSize[T comparable](target T, n int) Constraint[T] {
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		if ctx.ClusterSizeOf == nil {
			return true
		}
		return ctx.ClusterSizeOf[nodeID] == n
	}}
}

// MinClusterSize requires the candidate's eventual cluster to contain at
// least n rooms of its type.
func MinClusterSize[T comparable](target T, n int) Constraint[T] {
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		if ctx.ClusterSizeOf == nil {
			return true
		}
		return ctx.ClusterSizeOf[nodeID] >= n
	}}
}

// MaxClusterSize requires the candidate's eventual cluster to contain at
// most n rooms of its type.
func MaxClusterSize[T comparable](target T, n int) Constraint[T] {
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		if ctx.ClusterSizeOf == nil {
			return true
		}
		return ctx.ClusterSizeOf[nodeID] <= n
	}}
}
