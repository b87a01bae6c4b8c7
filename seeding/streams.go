package seeding

import "math/rand"

// Streams holds the five independent RNG instances each generate() call
// derives from the master seed, one per pipeline stage. A stage must use
// only its own stream; this is enforced at the type level by handing each
// stage exactly the field it needs, never the Streams struct itself.
type Streams struct {
	Graph    *RNG
	Type     *RNG
	Template *RNG
	Spatial  *RNG
	Hallway  *RNG
}

// Expand derives five independent 32-bit stage seeds from masterSeed by
// drawing them, in this fixed order, from a single seeded source:
// graph_seed, type_seed, template_seed, spatial_seed, hallway_seed. Same
// masterSeed always yields byte-identical streams; the draw order is part
// of the determinism contract and must never change.
func Expand(masterSeed int64) Streams {
	master := rand.New(rand.NewSource(masterSeed))

	graphSeed := master.Uint32()
	typeSeed := master.Uint32()
	templateSeed := master.Uint32()
	spatialSeed := master.Uint32()
	hallwaySeed := master.Uint32()

	return Streams{
		Graph:    newRNG(graphSeed),
		Type:     newRNG(typeSeed),
		Template: newRNG(templateSeed),
		Spatial:  newRNG(spatialSeed),
		Hallway:  newRNG(hallwaySeed),
	}
}
