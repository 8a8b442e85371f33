package catan

// State is the read-only view of one game the engine exposes to
// observers. The engine owns the state exclusively; the bridge only
// reads it synchronously from inside a decision callback, never across
// goroutines.
type State interface {
	// PlayerCount returns the number of seats in this game.
	PlayerCount() uint8
	// Layout returns the fixed board layout.
	Layout() *Layout
	// HexAt returns the static hex at a layout hex coordinate.
	HexAt(Coord) Hex
	// RobberHex returns the hex currently hosting the robber.
	RobberHex() Coord
	// RoadAt returns the owner of the road on a path coordinate.
	// ok is false when the path is empty.
	RoadAt(Coord) (owner PlayerId, ok bool)
	// HarborAt returns the harbor attached to an intersection, or
	// HarborNone.
	HarborAt(Coord) Harbor
	// BuildingAt returns the building on an intersection. ok is false
	// when the intersection is empty.
	BuildingAt(Coord) (b Building, ok bool)
	// PlayerHand returns the hand of the given seat.
	PlayerHand(PlayerId) *Hand
	// LongestRoad returns the seat holding the longest road award, or
	// PlayerNone.
	LongestRoad() PlayerId
	// LargestArmy returns the seat holding the largest army award, or
	// PlayerNone.
	LargestArmy() PlayerId
	// BankResources returns the bank's remaining resources.
	BankResources() Resources
	// BankDevelopmentCards returns the count of undrawn development
	// cards.
	BankDevelopmentCards() int
}

// TableState is a plain data container implementing State. It carries
// no rules; engines, fixtures and tests fill it by hand. The zero value
// is unusable — construct with NewTableState.
type TableState struct {
	Players     uint8
	Board       Layout
	Hexes       map[Coord]Hex
	Robber      Coord
	Roads       map[Coord]PlayerId
	Harbors     map[Coord]Harbor
	Buildings   map[Coord]Building
	Hands       []Hand
	LongestHeld PlayerId
	LargestHeld PlayerId
	Bank        Resources
	DevDeck     int
}

// NewTableState returns an empty table for the given seat count and
// layout, with both awards unclaimed.
func NewTableState(players uint8, board Layout) *TableState {
	return &TableState{
		Players:     players,
		Board:       board,
		Hexes:       make(map[Coord]Hex),
		Roads:       make(map[Coord]PlayerId),
		Harbors:     make(map[Coord]Harbor),
		Buildings:   make(map[Coord]Building),
		Hands:       make([]Hand, players),
		LongestHeld: PlayerNone,
		LargestHeld: PlayerNone,
	}
}

func (t *TableState) PlayerCount() uint8 { return t.Players }

func (t *TableState) Layout() *Layout { return &t.Board }

func (t *TableState) HexAt(c Coord) Hex { return t.Hexes[c] }

func (t *TableState) RobberHex() Coord { return t.Robber }

func (t *TableState) RoadAt(c Coord) (PlayerId, bool) {
	owner, ok := t.Roads[c]
	return owner, ok
}

func (t *TableState) HarborAt(c Coord) Harbor { return t.Harbors[c] }

func (t *TableState) BuildingAt(c Coord) (Building, bool) {
	b, ok := t.Buildings[c]
	return b, ok
}

func (t *TableState) PlayerHand(p PlayerId) *Hand { return &t.Hands[p] }

func (t *TableState) LongestRoad() PlayerId { return t.LongestHeld }

func (t *TableState) LargestArmy() PlayerId { return t.LargestHeld }

func (t *TableState) BankResources() Resources { return t.Bank }

func (t *TableState) BankDevelopmentCards() int { return t.DevDeck }
