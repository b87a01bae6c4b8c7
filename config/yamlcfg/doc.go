// Package yamlcfg loads and saves a FloorConfig[string] as YAML, the
// T=string instantiation the CLI and any other YAML-driven caller uses.
// It applies the documented defaults floor.FloorConfig itself
// deliberately omits (branching_factor 0.3, hallway_mode as_needed), and
// translates YAML-friendly declarative records (templates, requirements,
// constraints, algorithm configs) into the typed values floor.Generate
// expects.
package yamlcfg
