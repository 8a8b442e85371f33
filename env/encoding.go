package env

import "github.com/catanlab/catanenv/catan"

// Board tensor channel map. Player-keyed channels use relative offsets
// from the observing seat, so the encoding is seat-agnostic.
//
//	0..4              production number, indexed by resource
//	5                 desert
//	6                 robber
//	7 .. 7+P-1        road owner (relative)
//	7+P .. 12+P       harbor (5 resources, then generic)
//	13+P .. 13+2P-1   building level (relative): 1 settlement, 2 city
const (
	chanDesert = 5
	chanRobber = 6
	chanRoads  = 7
)

// boardChannels returns the channel depth of the board tensor.
func boardChannels(players uint8) int { return 13 + 2*int(players) }

// flatLen returns the length of the flat feature vector.
func flatLen(players uint8) int { return 29 + 8*int(players) }

// hiddenLen returns the length of the hidden opponent-detail vector.
func hiddenLen(players uint8) int { return (int(players) - 1) * visibleHandLen }

const (
	// visibleHandLen is the size of a seat's own fully detailed block.
	visibleHandLen = 27
	// concealedHandLen is the size of an opponent's aggregate block.
	concealedHandLen = 8
	bankLen          = 6
	phaseFlagsLen    = 4
)

// Encode produces the observation addressed to player at one decision
// point. It is a pure function: identical inputs yield bit-identical
// output, and neither state nor legal is mutated.
func Encode(format *ObservationFormat, player catan.PlayerId, state catan.State, phase catan.Phase, legal []bool) *Observation {
	obs := &Observation{
		Seat:     player,
		Board:    encodeBoard(format, player, state),
		Flat:     encodeFlat(player, state, phase),
		Actions:  append([]bool(nil), legal...),
		Width:    format.width,
		Height:   format.height,
		Channels: boardChannels(state.PlayerCount()),
	}
	if format.includeHidden {
		obs.Hidden = encodeHidden(player, state)
	}
	return obs
}

// encodeBoard writes the spatial tensor for one observer.
func encodeBoard(format *ObservationFormat, player catan.PlayerId, state catan.State) []int32 {
	players := state.PlayerCount()
	channels := boardChannels(players)
	board := make([]int32, format.width*format.height*channels)
	cell := func(x, y, c int) *int32 {
		return &board[(x*format.height+y)*channels+c]
	}
	layout := state.Layout()
	robber := state.RobberHex()

	for _, coord := range layout.Hexes {
		hex := state.HexAt(coord)
		if hex.Kind == catan.HexWater {
			continue
		}
		x, y := format.mapCoord(coord)
		switch hex.Kind {
		case catan.HexDesert:
			*cell(x, y, chanDesert) = 1
		case catan.HexProduction:
			*cell(x, y, int(hex.Resource)) = int32(hex.Number)
		}
		if coord == robber {
			*cell(x, y, chanRobber) = 1
		}
	}

	for _, coord := range layout.Paths {
		owner, ok := state.RoadAt(coord)
		if !ok {
			continue
		}
		rel := catan.RelativeID(player, owner, players)
		x, y := format.mapCoord(coord)
		*cell(x, y, chanRoads+int(rel)) = 1
	}

	chanHarbors := chanRoads + int(players)
	chanBuildings := chanHarbors + catan.HarborKinds
	for _, coord := range layout.Intersections {
		x, y := format.mapCoord(coord)
		switch harbor := state.HarborAt(coord); harbor {
		case catan.HarborNone:
		case catan.HarborGeneric:
			*cell(x, y, chanHarbors+catan.HarborKinds-1) = 1
		default:
			*cell(x, y, chanHarbors+int(harbor-catan.HarborBrick)) = 1
		}
		if b, ok := state.BuildingAt(coord); ok {
			rel := catan.RelativeID(player, b.Owner, players)
			level := int32(1)
			if b.City {
				level = 2
			}
			*cell(x, y, chanBuildings+int(rel)) = level
		}
	}
	return board
}

// encodeFlat assembles the scalar vector from named sections: the
// observer's fully detailed hand, one aggregate block per opponent in
// relative order, the bank, and the turn-phase flags.
func encodeFlat(player catan.PlayerId, state catan.State, phase catan.Phase) []int32 {
	players := state.PlayerCount()
	longest := state.LongestRoad()
	largest := state.LargestArmy()

	flat := make([]int32, 0, flatLen(players))
	flat = appendVisibleHand(flat, state.PlayerHand(player), longest == player, largest == player)
	for off := uint8(1); off < players; off++ {
		opp := catan.OffsetToPlayer(player, off, players)
		flat = appendConcealedHand(flat, state.PlayerHand(opp), longest == opp, largest == opp)
	}
	flat = appendBank(flat, state)
	flat = appendPhaseFlags(flat, phase)
	return flat
}

// encodeHidden assembles the privileged vector: every opponent's
// aggregate block again, one visible-hand-sized stride per opponent in
// relative order. The layout mirrors the opponent blocks of Flat on
// purpose.
func encodeHidden(player catan.PlayerId, state catan.State) []int32 {
	players := state.PlayerCount()
	longest := state.LongestRoad()
	largest := state.LargestArmy()

	hidden := make([]int32, 0, hiddenLen(players))
	for off := uint8(1); off < players; off++ {
		opp := catan.OffsetToPlayer(player, off, players)
		hidden = appendConcealedHand(hidden, state.PlayerHand(opp), longest == opp, largest == opp)
		hidden = append(hidden, make([]int32, visibleHandLen-concealedHandLen)...)
	}
	return hidden
}

// appendVisibleHand appends the 27-cell fully detailed block: resource
// counts, piece counts, knights, held and newly bought development
// cards, harbor access, and the two award flags.
func appendVisibleHand(dst []int32, hand *catan.Hand, longestRoad, largestArmy bool) []int32 {
	for _, c := range hand.Resources {
		dst = append(dst, int32(c))
	}
	dst = append(dst, int32(hand.RoadPieces), int32(hand.SettlementPieces), int32(hand.CityPieces), int32(hand.Knights))
	for _, c := range hand.DevelopmentCards {
		dst = append(dst, int32(c))
	}
	for _, c := range hand.NewDevelopmentCards {
		dst = append(dst, int32(c))
	}
	for _, has := range hand.Harbors {
		dst = append(dst, boolCell(has))
	}
	return append(dst, boolCell(longestRoad), boolCell(largestArmy))
}

// appendConcealedHand appends the 8-cell aggregate block: totals only,
// deliberately coarser than the observer's own view.
func appendConcealedHand(dst []int32, hand *catan.Hand, longestRoad, largestArmy bool) []int32 {
	dst = append(dst, int32(hand.Resources.Total()))
	dst = append(dst, int32(hand.RoadPieces), int32(hand.SettlementPieces), int32(hand.CityPieces), int32(hand.Knights))
	dst = append(dst, int32(hand.DevelopmentCards.Total()))
	return append(dst, boolCell(longestRoad), boolCell(largestArmy))
}

// appendBank appends the 6 shared-state cells: bank resources and the
// undrawn development card total.
func appendBank(dst []int32, state catan.State) []int32 {
	for _, c := range state.BankResources() {
		dst = append(dst, int32(c))
	}
	return append(dst, int32(state.BankDevelopmentCards()))
}

// appendPhaseFlags appends the 4 turn-phase cells: pre-roll indicator,
// development-ready indicator, and the remaining-pick counters of the
// two multi-step development cards. All zero outside a turn.
func appendPhaseFlags(dst []int32, phase catan.Phase) []int32 {
	var flags [phaseFlagsLen]int32
	if phase.Kind == catan.PhaseTurn {
		if phase.Turn == catan.PreRoll {
			flags[0] = 1
		}
		switch phase.Development.Kind {
		case catan.DevReady:
			flags[1] = 1
		case catan.DevRoadBuilding:
			flags[2] = remainingPicks(phase.Development.TwoLeft)
		case catan.DevYearOfPlenty:
			flags[3] = remainingPicks(phase.Development.TwoLeft)
		}
	}
	return append(dst, flags[:]...)
}

func remainingPicks(twoLeft bool) int32 {
	if twoLeft {
		return 2
	}
	return 1
}

func boolCell(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
