package yamlcfg

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hollowspire/dungeongen/assign"
	"github.com/hollowspire/dungeongen/cluster"
	"github.com/hollowspire/dungeongen/constraint"
	"github.com/hollowspire/dungeongen/difficulty"
	"github.com/hollowspire/dungeongen/dungeonerr"
	"github.com/hollowspire/dungeongen/floor"
	"github.com/hollowspire/dungeongen/geom"
	"github.com/hollowspire/dungeongen/graphgen"
	"github.com/hollowspire/dungeongen/secret"
	"github.com/hollowspire/dungeongen/spatial"
	"github.com/hollowspire/dungeongen/template"
	"github.com/hollowspire/dungeongen/zone"
)

// defaultBranchingFactor is applied when the YAML document omits the
// branching_factor key entirely.
const defaultBranchingFactor = 0.3

// Config is the YAML-facing mirror of floor.FloorConfig[string]. Pointer
// fields distinguish "key absent, apply the default" from "key present
// with its zero value", which floor.FloorConfig itself cannot do for
// BranchingFactor (see floor/config.go).
type Config struct {
	Seed             int64             `yaml:"seed"`
	RoomCount        int               `yaml:"room_count"`
	SpawnRoomType    string            `yaml:"spawn_room_type"`
	BossRoomType     string            `yaml:"boss_room_type"`
	DefaultRoomType  string            `yaml:"default_room_type"`
	Templates        []TemplateSpec    `yaml:"templates"`
	RoomRequirements []RequirementSpec `yaml:"room_requirements,omitempty"`
	Constraints      []ConstraintSpec  `yaml:"constraints,omitempty"`
	BranchingFactor  *float64          `yaml:"branching_factor,omitempty"`
	HallwayMode      string            `yaml:"hallway_mode,omitempty"`
	MaxHallwayRadius int               `yaml:"max_hallway_radius,omitempty"`

	GraphAlgorithm string        `yaml:"graph_algorithm,omitempty"`
	Grid           *GridSpec     `yaml:"grid,omitempty"`
	Cellular       *CellularSpec `yaml:"cellular,omitempty"`
	Maze           *MazeSpec     `yaml:"maze,omitempty"`
	HubSpoke       *HubSpec      `yaml:"hub_spoke,omitempty"`

	Zones         []ZoneSpec                `yaml:"zones,omitempty"`
	ZoneTemplates map[string][]TemplateSpec `yaml:"zone_templates,omitempty"`

	SecretPassages *SecretSpec     `yaml:"secret_passage_config,omitempty"`
	Difficulty     *DifficultySpec `yaml:"difficulty_config,omitempty"`
	Clusters       *ClusterSpec    `yaml:"cluster_config,omitempty"`
}

// TemplateSpec is the YAML form of template.RoomTemplate[string].
type TemplateSpec struct {
	ID              string        `yaml:"id"`
	ValidRoomTypes  []string      `yaml:"valid_room_types"`
	Cells           []CellSpec    `yaml:"cells"`
	Doors           []DoorSpec    `yaml:"doors,omitempty"`
	Weight          float64       `yaml:"weight"`
	InteriorFeature []FeatureSpec `yaml:"interior_features,omitempty"`
}

// CellSpec is a relative (x,y) offset from a template's anchor.
type CellSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// DoorSpec places one or more door edges on a template cell.
type DoorSpec struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Edges []string `yaml:"edges"`
}

// FeatureSpec tags an interior cell with an opaque feature marker.
type FeatureSpec struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Feature string `yaml:"feature"`
}

// RequirementSpec is the YAML form of assign.Requirement[string].
type RequirementSpec struct {
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
}

// ConstraintSpec is a declarative, typed-field record naming one of the
// built-in constraint.Constraint[string] constructors plus its
// parameters. Every Kind maps to a single builtin function by name; there
// is no expression language to parse.
type ConstraintSpec struct {
	Kind     string   `yaml:"kind"`
	Target   string   `yaml:"target"`
	Distance *int     `yaml:"distance,omitempty"`
	Count    *int     `yaml:"count,omitempty"`
	Types    []string `yaml:"types,omitempty"`
	Floor    *int     `yaml:"floor,omitempty"`
	Zone     string   `yaml:"zone,omitempty"`
	Value    *float64 `yaml:"value,omitempty"`
}

// ZoneSpec is the YAML form of zone.Zone.
type ZoneSpec struct {
	ID          string  `yaml:"id"`
	Kind        string  `yaml:"kind"` // "distance" or "critical_path_pct"
	MinDistance int     `yaml:"min_distance,omitempty"`
	MaxDistance int     `yaml:"max_distance,omitempty"`
	StartPct    float64 `yaml:"start_pct,omitempty"`
	EndPct      float64 `yaml:"end_pct,omitempty"`
}

// SecretSpec is the YAML form of secret.Config[string].
type SecretSpec struct {
	Count                        int      `yaml:"count"`
	MaxSpatialDistance           float64  `yaml:"max_spatial_distance"`
	AllowedRoomTypes             []string `yaml:"allowed_room_types,omitempty"`
	ForbiddenRoomTypes           []string `yaml:"forbidden_room_types,omitempty"`
	AllowCriticalPathConnections bool     `yaml:"allow_critical_path_connections"`
	AllowGraphConnectedRooms     bool     `yaml:"allow_graph_connected_rooms"`
}

// DifficultySpec is the YAML form of difficulty.Config, minus CustomFn
// (a pure function can't be expressed in YAML; Kind: custom is rejected
// by ToFloorConfig with a clear error instead of silently falling back).
type DifficultySpec struct {
	Kind          string  `yaml:"kind"` // "linear" or "exponential"
	Base          float64 `yaml:"base"`
	Factor        float64 `yaml:"factor"`
	MaxDifficulty float64 `yaml:"max_difficulty"`
}

// ClusterSpec is the YAML form of cluster.Config[string].
type ClusterSpec struct {
	RoomTypes []string `yaml:"room_types,omitempty"`
	Epsilon   float64  `yaml:"epsilon"`
	MinSize   int      `yaml:"min_size"`
	MaxSize   int      `yaml:"max_size"`
}

// GridSpec is the YAML form of graphgen.GridConfig.
type GridSpec struct {
	GridWidth  int    `yaml:"grid_width"`
	GridHeight int    `yaml:"grid_height"`
	Pattern    string `yaml:"pattern,omitempty"` // "four_connected" or "eight_connected"
}

// CellularSpec is the YAML form of graphgen.CellularConfig.
type CellularSpec struct {
	GridWidth         int     `yaml:"grid_width"`
	GridHeight        int     `yaml:"grid_height"`
	InitialLiveChance float64 `yaml:"initial_live_chance"`
	Iterations        int     `yaml:"iterations"`
	BirthThreshold    int     `yaml:"birth_threshold"`
	SurvivalThreshold int     `yaml:"survival_threshold"`
}

// MazeSpec is the YAML form of graphgen.MazeConfig.
type MazeSpec struct {
	GridWidth  int  `yaml:"grid_width"`
	GridHeight int  `yaml:"grid_height"`
	Imperfect  bool `yaml:"imperfect"`
}

// HubSpec is the YAML form of graphgen.HubConfig.
type HubSpec struct {
	HubCount       int `yaml:"hub_count"`
	MaxSpokeLength int `yaml:"max_spoke_length"`
}

// Load reads and parses a YAML config file. It does not apply defaults
// or validate; call ToFloorConfig for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlcfg: reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML config from a byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yamlcfg: parsing YAML: %w", err)
	}
	return &cfg, nil
}

// ToYAML serializes the config back to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic SHA-256 digest of the config's YAML
// encoding, for callers that want a content-addressed identifier for a
// configuration distinct from its random Seed.
func (c *Config) Hash() ([]byte, error) {
	data, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// ToFloorConfig applies the documented defaults for any omitted key
// (branching_factor 0.3, hallway_mode as_needed) and converts every
// declarative YAML record into its typed floor.FloorConfig[string]
// counterpart. Validation is left to floor.Generate / floor.FloorConfig.Validate.
func (c *Config) ToFloorConfig() (floor.FloorConfig[string], error) {
	out := floor.FloorConfig[string]{
		Seed:             c.Seed,
		RoomCount:        c.RoomCount,
		SpawnRoomType:    c.SpawnRoomType,
		BossRoomType:     c.BossRoomType,
		DefaultRoomType:  c.DefaultRoomType,
		MaxHallwayRadius: c.MaxHallwayRadius,
	}

	if c.BranchingFactor != nil {
		out.BranchingFactor = *c.BranchingFactor
	} else {
		out.BranchingFactor = defaultBranchingFactor
	}

	mode, err := parseHallwayMode(c.HallwayMode)
	if err != nil {
		return floor.FloorConfig[string]{}, err
	}
	out.HallwayMode = mode

	templates, err := buildTemplates(c.Templates)
	if err != nil {
		return floor.FloorConfig[string]{}, err
	}
	out.Templates = templates

	for _, r := range c.RoomRequirements {
		out.RoomRequirements = append(out.RoomRequirements, assign.Requirement[string]{Type: r.Type, Count: r.Count})
	}

	constraints, err := buildConstraints(c.Constraints)
	if err != nil {
		return floor.FloorConfig[string]{}, err
	}
	out.Constraints = constraints

	algo, algoCfg, err := buildAlgorithm(c)
	if err != nil {
		return floor.FloorConfig[string]{}, err
	}
	out.GraphAlgorithm = algo
	out.AlgorithmConfig = algoCfg

	for _, z := range c.Zones {
		zz, err := buildZone(z)
		if err != nil {
			return floor.FloorConfig[string]{}, err
		}
		out.Zones = append(out.Zones, zz)
	}

	if len(c.ZoneTemplates) > 0 {
		out.ZoneTemplates = make(map[string][]*template.RoomTemplate[string], len(c.ZoneTemplates))
		for zoneID, specs := range c.ZoneTemplates {
			tpls, err := buildTemplates(specs)
			if err != nil {
				return floor.FloorConfig[string]{}, err
			}
			out.ZoneTemplates[zoneID] = tpls
		}
	}

	if c.SecretPassages != nil {
		out.SecretPassages = &secret.Config[string]{
			Count:                        c.SecretPassages.Count,
			MaxSpatialDistance:           c.SecretPassages.MaxSpatialDistance,
			AllowedRoomTypes:             c.SecretPassages.AllowedRoomTypes,
			ForbiddenRoomTypes:           c.SecretPassages.ForbiddenRoomTypes,
			AllowCriticalPathConnections: c.SecretPassages.AllowCriticalPathConnections,
			AllowGraphConnectedRooms:     c.SecretPassages.AllowGraphConnectedRooms,
		}
	}

	if c.Difficulty != nil {
		diff, err := buildDifficulty(*c.Difficulty)
		if err != nil {
			return floor.FloorConfig[string]{}, err
		}
		out.Difficulty = diff
	}

	if c.Clusters != nil {
		out.Clusters = &cluster.Config[string]{
			RoomTypes: c.Clusters.RoomTypes,
			Epsilon:   c.Clusters.Epsilon,
			MinSize:   c.Clusters.MinSize,
			MaxSize:   c.Clusters.MaxSize,
		}
	}

	return out, nil
}

func parseHallwayMode(s string) (spatial.HallwayMode, error) {
	switch s {
	case "", "as_needed":
		return spatial.HallwayAsNeeded, nil
	case "none":
		return spatial.HallwayNone, nil
	case "always":
		return spatial.HallwayAlways, nil
	default:
		return 0, dungeonerr.InvalidConfiguration("yamlcfg: unknown hallway_mode %q", s)
	}
}

func buildTemplates(specs []TemplateSpec) ([]*template.RoomTemplate[string], error) {
	out := make([]*template.RoomTemplate[string], 0, len(specs))
	for _, spec := range specs {
		tpl, err := buildTemplate(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

func buildTemplate(spec TemplateSpec) (*template.RoomTemplate[string], error) {
	cells := make([]geom.Cell, len(spec.Cells))
	for i, c := range spec.Cells {
		cells[i] = geom.Cell{X: c.X, Y: c.Y}
	}

	var doors map[geom.Cell]geom.Edge
	if len(spec.Doors) > 0 {
		doors = make(map[geom.Cell]geom.Edge, len(spec.Doors))
		for _, d := range spec.Doors {
			edges, err := parseEdges(d.Edges)
			if err != nil {
				return nil, err
			}
			doors[geom.Cell{X: d.X, Y: d.Y}] = edges
		}
	}

	var features map[geom.Cell]template.Feature
	if len(spec.InteriorFeature) > 0 {
		features = make(map[geom.Cell]template.Feature, len(spec.InteriorFeature))
		for _, f := range spec.InteriorFeature {
			feat, err := parseFeature(f.Feature)
			if err != nil {
				return nil, err
			}
			features[geom.Cell{X: f.X, Y: f.Y}] = feat
		}
	}

	return template.New[string](spec.ID, spec.ValidRoomTypes, cells, doors, spec.Weight, features)
}

func parseEdges(names []string) (geom.Edge, error) {
	var out geom.Edge
	for _, n := range names {
		switch n {
		case "north":
			out |= geom.North
		case "south":
			out |= geom.South
		case "east":
			out |= geom.East
		case "west":
			out |= geom.West
		default:
			return 0, dungeonerr.InvalidConfiguration("yamlcfg: unknown door edge %q", n)
		}
	}
	return out, nil
}

func parseFeature(name string) (template.Feature, error) {
	switch name {
	case "pillar":
		return template.Pillar, nil
	case "wall":
		return template.Wall, nil
	case "hazard":
		return template.Hazard, nil
	case "decorative":
		return template.Decorative, nil
	default:
		return 0, dungeonerr.InvalidConfiguration("yamlcfg: unknown interior feature %q", name)
	}
}

func buildConstraints(specs []ConstraintSpec) ([]constraint.Constraint[string], error) {
	out := make([]constraint.Constraint[string], 0, len(specs))
	for _, spec := range specs {
		c, err := buildConstraint(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func buildConstraint(spec ConstraintSpec) (constraint.Constraint[string], error) {
	switch spec.Kind {
	case "min_distance_from_start":
		return constraint.MinDistanceFromStart[string](spec.Target, intOr(spec.Distance, 0)), nil
	case "max_distance_from_start":
		return constraint.MaxDistanceFromStart[string](spec.Target, intOr(spec.Distance, 0)), nil
	case "must_be_dead_end":
		return constraint.MustBeDeadEnd[string](spec.Target), nil
	case "min_connection_count":
		return constraint.MinConnectionCount[string](spec.Target, intOr(spec.Count, 0)), nil
	case "max_connection_count":
		return constraint.MaxConnectionCount[string](spec.Target, intOr(spec.Count, 0)), nil
	case "not_on_critical_path":
		return constraint.NotOnCriticalPath[string](spec.Target), nil
	case "only_on_critical_path":
		return constraint.OnlyOnCriticalPath[string](spec.Target), nil
	case "max_per_floor":
		return constraint.MaxPerFloor[string](spec.Target, intOr(spec.Count, 0)), nil
	case "must_be_adjacent_to":
		return constraint.MustBeAdjacentTo[string](spec.Target, spec.Types), nil
	case "must_not_be_adjacent_to":
		return constraint.MustNotBeAdjacentTo[string](spec.Target, spec.Types), nil
	case "min_distance_from_room_type":
		return constraint.MinDistanceFromRoomType[string](spec.Target, spec.Types, intOr(spec.Distance, 0)), nil
	case "max_distance_from_room_type":
		return constraint.MaxDistanceFromRoomType[string](spec.Target, spec.Types, intOr(spec.Distance, 0)), nil
	case "must_come_before":
		return constraint.MustComeBefore[string](spec.Target, spec.Types), nil
	case "only_on_floor":
		return constraint.OnlyOnFloor[string](spec.Target, intOr(spec.Floor, 0)), nil
	case "not_on_floor":
		return constraint.NotOnFloor[string](spec.Target, intOr(spec.Floor, 0)), nil
	case "min_floor":
		return constraint.MinFloor[string](spec.Target, intOr(spec.Floor, 0)), nil
	case "max_floor":
		return constraint.MaxFloor[string](spec.Target, intOr(spec.Floor, 0)), nil
	case "only_in_zone":
		return constraint.OnlyInZone[string](spec.Target, spec.Zone), nil
	case "min_difficulty":
		return constraint.MinDifficulty[string](spec.Target, floatOr(spec.Value, 0)), nil
	case "max_difficulty":
		return constraint.MaxDifficulty[string](spec.Target, floatOr(spec.Value, 0)), nil
	case "must_cluster_size":
		return constraint.MustClusterSize[string](spec.Target, intOr(spec.Count, 0)), nil
	case "min_cluster_size":
		return constraint.MinClusterSize[string](spec.Target, intOr(spec.Count, 0)), nil
	case "max_cluster_size":
		return constraint.MaxClusterSize[string](spec.Target, intOr(spec.Count, 0)), nil
	default:
		return nil, dungeonerr.InvalidConfiguration("yamlcfg: unknown constraint kind %q", spec.Kind)
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func buildZone(spec ZoneSpec) (zone.Zone, error) {
	switch spec.Kind {
	case "distance":
		return zone.Zone{ID: spec.ID, Kind: zone.Distance, MinDistance: spec.MinDistance, MaxDistance: spec.MaxDistance}, nil
	case "critical_path_pct":
		return zone.Zone{ID: spec.ID, Kind: zone.CriticalPathPct, StartPct: spec.StartPct, EndPct: spec.EndPct}, nil
	default:
		return zone.Zone{}, dungeonerr.InvalidConfiguration("yamlcfg: unknown zone kind %q", spec.Kind)
	}
}

func buildDifficulty(spec DifficultySpec) (difficulty.Config, error) {
	switch spec.Kind {
	case "linear":
		return difficulty.Config{Kind: difficulty.Linear, Base: spec.Base, Factor: spec.Factor, MaxDifficulty: spec.MaxDifficulty}, nil
	case "exponential":
		return difficulty.Config{Kind: difficulty.Exponential, Base: spec.Base, Factor: spec.Factor, MaxDifficulty: spec.MaxDifficulty}, nil
	case "custom":
		return difficulty.Config{}, dungeonerr.InvalidConfiguration("yamlcfg: difficulty_config kind \"custom\" cannot be expressed in YAML; build it programmatically")
	default:
		return difficulty.Config{}, dungeonerr.InvalidConfiguration("yamlcfg: unknown difficulty kind %q", spec.Kind)
	}
}

func buildAlgorithm(c *Config) (graphgen.Algorithm, graphgen.AlgorithmConfig, error) {
	switch c.GraphAlgorithm {
	case "", "spanning_tree":
		return graphgen.SpanningTreeAlgorithm, graphgen.AlgorithmConfig{}, nil
	case "grid_based":
		if c.Grid == nil {
			return "", graphgen.AlgorithmConfig{}, dungeonerr.InvalidConfiguration("yamlcfg: graph_algorithm grid_based requires a grid block")
		}
		pattern, err := parsePattern(c.Grid.Pattern)
		if err != nil {
			return "", graphgen.AlgorithmConfig{}, err
		}
		cfg := graphgen.GridConfig{GridWidth: c.Grid.GridWidth, GridHeight: c.Grid.GridHeight, Pattern: pattern}
		return graphgen.GridBasedAlgorithm, graphgen.AlgorithmConfig{Grid: &cfg}, nil
	case "cellular_automata":
		if c.Cellular == nil {
			return "", graphgen.AlgorithmConfig{}, dungeonerr.InvalidConfiguration("yamlcfg: graph_algorithm cellular_automata requires a cellular block")
		}
		cfg := graphgen.CellularConfig{
			GridWidth: c.Cellular.GridWidth, GridHeight: c.Cellular.GridHeight,
			InitialLiveChance: c.Cellular.InitialLiveChance, Iterations: c.Cellular.Iterations,
			BirthThreshold: c.Cellular.BirthThreshold, SurvivalThreshold: c.Cellular.SurvivalThreshold,
		}
		return graphgen.CellularAutomataAlgorithm, graphgen.AlgorithmConfig{Cellular: &cfg}, nil
	case "maze_based":
		if c.Maze == nil {
			return "", graphgen.AlgorithmConfig{}, dungeonerr.InvalidConfiguration("yamlcfg: graph_algorithm maze_based requires a maze block")
		}
		cfg := graphgen.MazeConfig{GridWidth: c.Maze.GridWidth, GridHeight: c.Maze.GridHeight, Imperfect: c.Maze.Imperfect}
		return graphgen.MazeBasedAlgorithm, graphgen.AlgorithmConfig{Maze: &cfg}, nil
	case "hub_and_spoke":
		if c.HubSpoke == nil {
			return "", graphgen.AlgorithmConfig{}, dungeonerr.InvalidConfiguration("yamlcfg: graph_algorithm hub_and_spoke requires a hub_spoke block")
		}
		cfg := graphgen.HubConfig{HubCount: c.HubSpoke.HubCount, MaxSpokeLength: c.HubSpoke.MaxSpokeLength}
		return graphgen.HubAndSpokeAlgorithm, graphgen.AlgorithmConfig{HubSpoke: &cfg}, nil
	default:
		return "", graphgen.AlgorithmConfig{}, dungeonerr.InvalidConfiguration("yamlcfg: unknown graph_algorithm %q", c.GraphAlgorithm)
	}
}

func parsePattern(s string) (graphgen.ConnectivityPattern, error) {
	switch s {
	case "", "four_connected":
		return graphgen.FourConnected, nil
	case "eight_connected":
		return graphgen.EightConnected, nil
	default:
		return 0, dungeonerr.InvalidConfiguration("yamlcfg: unknown connectivity pattern %q", s)
	}
}
