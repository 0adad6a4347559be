package content

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// RoomKind classifies one dungeon room.
type RoomKind uint8

const (
	RoomEntrance RoomKind = iota
	RoomCombat
	RoomTreasure
	RoomElite
	RoomKey
	RoomBoss
)

// String returns the room kind name.
func (k RoomKind) String() string {
	switch k {
	case RoomEntrance:
		return "entrance"
	case RoomCombat:
		return "combat"
	case RoomTreasure:
		return "treasure"
	case RoomElite:
		return "elite"
	case RoomKey:
		return "key"
	case RoomBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Room is one node of a dungeon floor.
type Room struct {
	Kind  RoomKind
	Depth int // position along the floor, 0 = entrance
}

var dungeonNames = []string{
	"Barrowdeep", "The Rat Warrens", "Halls of the Unnumbered",
	"Saltgrave", "The Widow's Vault", "Cindergaol",
}

// DungeonName picks a flavor name from a uniform roll.
func DungeonName(roll int) string {
	return dungeonNames[roll%len(dungeonNames)]
}

// GenerateFloor lays out a dungeon floor of the given length. The middle
// rooms are sampled from a normalized noise field: low values become plain
// combat rooms, the upper band elites, and a narrow slice treasure caches.
// The entrance, a single key room and the boss room are fixed so every floor
// is completable.
func GenerateFloor(seed int64, rooms int) []Room {
	if rooms < 4 {
		rooms = 4
	}
	noise := opensimplex.NewNormalized(seed)

	floor := make([]Room, 0, rooms)
	floor = append(floor, Room{Kind: RoomEntrance, Depth: 0})

	// Interior rooms leave space for the key room and the boss.
	interior := rooms - 3
	for i := 0; i < interior; i++ {
		v := noise.Eval2(float64(i)*0.37, float64(seed%97)*0.11)
		kind := RoomCombat
		switch {
		case v > 0.80:
			kind = RoomElite
		case v > 0.68:
			kind = RoomTreasure
		}
		floor = append(floor, Room{Kind: kind, Depth: i + 1})
	}

	// Key always precedes the boss door.
	floor = append(floor, Room{Kind: RoomKey, Depth: rooms - 2})
	floor = append(floor, Room{Kind: RoomBoss, Depth: rooms - 1})
	return floor
}
