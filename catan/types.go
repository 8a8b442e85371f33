// Package catan defines the contract between the environment bridge and
// the external game engine: seat identifiers, board vocabulary, hand
// contents, turn phases, and the State/Game/Actor interfaces the engine
// implements. The package carries no game rules.
package catan

// PlayerId identifies a seat at the table. Seat numbers are stable for
// the life of one game.
type PlayerId uint8

// PlayerNone marks an unclaimed award or an empty location.
const PlayerNone PlayerId = 0xFF

// Resource is one of the five tradeable resources.
type Resource uint8

const (
	Brick Resource = iota
	Ore
	Wool
	Grain
	Lumber
)

// ResourceCount is the number of distinct resources.
const ResourceCount = 5

// DevelopmentCard is one of the five development card kinds.
type DevelopmentCard uint8

const (
	Knight DevelopmentCard = iota
	VictoryPoint
	RoadBuilding
	YearOfPlenty
	Monopoly
)

// DevelopmentCardCount is the number of distinct development cards.
const DevelopmentCardCount = 5

// Resources holds a count per resource kind.
type Resources [ResourceCount]uint8

// Total returns the summed resource count.
func (r Resources) Total() int {
	t := 0
	for _, c := range r {
		t += int(c)
	}
	return t
}

// DevCards holds a count per development card kind.
type DevCards [DevelopmentCardCount]uint8

// Total returns the summed card count.
func (d DevCards) Total() int {
	t := 0
	for _, c := range d {
		t += int(c)
	}
	return t
}

// Coord addresses a hex, a path or an intersection in the engine's
// shared board coordinate space.
type Coord struct {
	X int8
	Y int8
}

// Layout lists every location of the board, split by location kind.
// It is fixed for the life of one game.
type Layout struct {
	Hexes         []Coord
	Paths         []Coord
	Intersections []Coord
}

// HexKind distinguishes the three hex variants.
type HexKind uint8

const (
	HexWater HexKind = iota
	HexDesert
	HexProduction
)

// Hex describes one board hex. Resource and Number are meaningful only
// for HexProduction.
type Hex struct {
	Kind     HexKind
	Resource Resource
	Number   uint8
}

// Harbor describes the harbor attached to an intersection, if any.
type Harbor uint8

const (
	HarborNone Harbor = iota
	HarborBrick
	HarborOre
	HarborWool
	HarborGrain
	HarborLumber
	HarborGeneric
)

// HarborKinds is the number of harbor flags a hand carries
// (five resource harbors plus the generic one).
const HarborKinds = 6

// Building is a settlement or city standing on an intersection.
type Building struct {
	Owner PlayerId
	City  bool
}

// Hand is everything one seat privately holds plus its public piece
// counts. The bridge only ever reads hands, never mutates them.
type Hand struct {
	Resources           Resources
	RoadPieces          uint8
	SettlementPieces    uint8
	CityPieces          uint8
	Knights             uint8
	DevelopmentCards    DevCards
	NewDevelopmentCards DevCards
	Harbors             [HarborKinds]bool
}

// SeatResult is one seat's final outcome for a finished game.
type SeatResult struct {
	VictoryPoints uint8
	Winner        bool
}
