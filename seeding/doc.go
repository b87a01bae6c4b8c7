// Package seeding expands a single master seed into five independent
// deterministic RNG streams, one per pipeline stage, so that reordering or
// modifying one stage's internals can never perturb another stage's
// random sequence.
package seeding
