package constraint

// MinDistanceFromRoomType requires the BFS distance from the candidate to
// the nearest already-assigned room of any type in types to be at least
// d. Permissive (true) if no room of those types has been assigned yet.
func MinDistanceFromRoomType[T comparable](target T, types []T, d int) Constraint[T] {
	set := toSet(types)
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		dist, found := nearestAssignedDistance(nodeID, ctx, set)
		if !found {
			return true
		}
		return dist >= d
	}}
}

// MaxDistanceFromRoomType requires the BFS distance to the nearest
// already-assigned room of any type in types to be at most d. Permissive
// if no such room is assigned yet.
func MaxDistanceFromRoomType[T comparable](target T, types []T, d int) Constraint[T] {
	set := toSet(types)
	return &predicate[T]{target: target, fn: func(nodeID int, ctx EvalContext[T]) bool {
		dist, found := nearestAssignedDistance(nodeID, ctx, set)
		if !found {
			return true
		}
		return dist <= d
	}}
}

// nearestAssignedDistance runs a BFS from nodeID over the full graph and
// returns the hop distance to the closest node whose assigned type is in
// types, along with whether any such node exists at all.
func nearestAssignedDistance[T comparable](nodeID int, ctx EvalContext[T], types map[T]struct{}) (int, bool) {
	adjacency := ctx.Graph.Adjacency()
	n := len(ctx.Graph.Nodes)
	visited := make([]bool, n)
	visited[nodeID] = true
	queue := []int{nodeID}
	dist := 0
	for len(queue) > 0 {
		var next []int
		for _, cur := range queue {
			if t, assigned := ctx.Assignment[cur]; assigned && cur != nodeID {
				if _, match := types[t]; match {
					return dist, true
				}
			}
			for _, nb := range adjacency[cur] {
				if !visited[nb] {
					visited[nb] = true
					next = append(next, nb)
				}
			}
		}
		queue = next
		dist++
	}
	return 0, false
}
