// Package dungeonerr defines the three typed error kinds that surface at
// the dungeon generation API boundary: InvalidConfiguration,
// ConstraintViolation, and SpatialPlacement. Every stage wraps lower-level
// errors with %w so callers can still errors.As into the originating
// failure while also errors.As into the kind that crossed the boundary.
package dungeonerr
