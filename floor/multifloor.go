package floor

import (
	"fmt"

	"github.com/hollowspire/dungeongen/dungeonerr"
)

// ConnectionType names the kind of traversal a FloorConnection represents.
type ConnectionType int

const (
	StairsUp ConnectionType = iota
	StairsDown
	Teleporter
)

func (t ConnectionType) String() string {
	switch t {
	case StairsUp:
		return "StairsUp"
	case StairsDown:
		return "StairsDown"
	case Teleporter:
		return "Teleporter"
	default:
		return fmt.Sprintf("ConnectionType(%d)", int(t))
	}
}

// FloorConnection is a typed link between a room on one floor and a room
// on another. Floors are independent 2D planes; this record is the only
// binding between them.
type FloorConnection struct {
	FromFloor int
	FromRoom  int
	ToFloor   int
	ToRoom    int
	Type      ConnectionType
}

// MultiFloorConfig bundles one FloorConfig per floor (each with its own
// seed) plus the connections linking them.
type MultiFloorConfig[T comparable] struct {
	Floors      []FloorConfig[T]
	Connections []FloorConnection
}

// MultiFloorLayout is an ordered list of independently generated floors
// plus the typed connections between them. There is no cross-floor
// geometry: each FloorLayout is a complete, self-contained 2D plan.
type MultiFloorLayout[T comparable] struct {
	Floors      []*FloorLayout[T]
	Connections []FloorConnection
}

// GenerateMultiFloor runs the single-floor pipeline once per floor config
// (in order, each with its own seed and floor index injected into
// floor-aware constraints), then validates every FloorConnection against
// the finished floors: floor indices in range, room ids exist on their
// respective floors, and no connection links a floor to itself.
func GenerateMultiFloor[T comparable](cfg MultiFloorConfig[T]) (*MultiFloorLayout[T], error) {
	floors := make([]*FloorLayout[T], len(cfg.Floors))
	for i, floorCfg := range cfg.Floors {
		fl, err := generate(floorCfg, true, i)
		if err != nil {
			return nil, fmt.Errorf("floor %d: %w", i, err)
		}
		floors[i] = fl
	}

	for _, conn := range cfg.Connections {
		if err := validateConnection(conn, floors); err != nil {
			return nil, err
		}
	}

	return &MultiFloorLayout[T]{Floors: floors, Connections: cfg.Connections}, nil
}

func validateConnection[T comparable](conn FloorConnection, floors []*FloorLayout[T]) error {
	if conn.FromFloor < 0 || conn.FromFloor >= len(floors) {
		return dungeonerr.InvalidConfiguration("floor_connection: from_floor %d out of range", conn.FromFloor)
	}
	if conn.ToFloor < 0 || conn.ToFloor >= len(floors) {
		return dungeonerr.InvalidConfiguration("floor_connection: to_floor %d out of range", conn.ToFloor)
	}
	if conn.FromFloor == conn.ToFloor {
		return dungeonerr.InvalidConfiguration("floor_connection: from_floor and to_floor must differ, both are %d", conn.FromFloor)
	}
	if _, ok := floors[conn.FromFloor].Rooms[conn.FromRoom]; !ok {
		return dungeonerr.InvalidConfiguration("floor_connection: room %d does not exist on floor %d", conn.FromRoom, conn.FromFloor)
	}
	if _, ok := floors[conn.ToFloor].Rooms[conn.ToRoom]; !ok {
		return dungeonerr.InvalidConfiguration("floor_connection: room %d does not exist on floor %d", conn.ToRoom, conn.ToFloor)
	}
	return nil
}
