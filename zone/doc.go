// Package zone assigns each graph node a zone id before room-type
// assignment runs, so zone-aware constraints can consult it. Zones are
// tested in input order; the first match wins.
package zone
