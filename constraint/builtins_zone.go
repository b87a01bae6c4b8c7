package constraint

// OnlyInZone requires the candidate's zone to equal zoneName. Permissive
// (true) when the context carries no zone data (HasZones false). During
// floor generation the zone map is computed before assignment without a
// critical path, so only distance-based zones can match here.
func OnlyInZone[T comparable](target T, zoneName string) Constraint[T] {
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		if !ctx.HasZones {
			return true
		}
		return ctx.ZoneOf[nodeID] == zoneName
	}}
}
