// Package cluster groups placed rooms of the same type into spatial
// clusters: maximal cliques in the epsilon-threshold graph over each
// room type's centroids.
package cluster
