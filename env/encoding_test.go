package env

import (
	"reflect"
	"testing"

	"github.com/catanlab/catanenv/catan"
)

func testFormat(t *testing.T, includeHidden bool) *ObservationFormat {
	t.Helper()
	f, err := NewObservationFormat(4, 4, func(c catan.Coord) (int, int) {
		return int(c.X), int(c.Y)
	}, includeHidden)
	if err != nil {
		t.Fatalf("NewObservationFormat: %v", err)
	}
	return f
}

// testState builds a three-seat table with one of everything the
// encoder reads: a production hex, the desert with the robber, a water
// hex, one road, two harbors, a settlement, a city, distinct hands, the
// longest-road award and a non-empty bank.
func testState() *catan.TableState {
	layout := catan.Layout{
		Hexes:         []catan.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 2}},
		Paths:         []catan.Coord{{X: 2, Y: 0}, {X: 2, Y: 1}},
		Intersections: []catan.Coord{{X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}},
	}
	s := catan.NewTableState(3, layout)
	s.Hexes[catan.Coord{X: 0, Y: 0}] = catan.Hex{Kind: catan.HexProduction, Resource: catan.Wool, Number: 8}
	s.Hexes[catan.Coord{X: 1, Y: 0}] = catan.Hex{Kind: catan.HexDesert}
	s.Hexes[catan.Coord{X: 2, Y: 2}] = catan.Hex{Kind: catan.HexWater}
	s.Robber = catan.Coord{X: 1, Y: 0}
	s.Roads[catan.Coord{X: 2, Y: 0}] = 1
	s.Harbors[catan.Coord{X: 3, Y: 0}] = catan.HarborGrain
	s.Harbors[catan.Coord{X: 3, Y: 1}] = catan.HarborGeneric
	s.Buildings[catan.Coord{X: 3, Y: 0}] = catan.Building{Owner: 2}
	s.Buildings[catan.Coord{X: 3, Y: 2}] = catan.Building{Owner: 0, City: true}

	s.Hands[0] = catan.Hand{
		Resources:           catan.Resources{2, 0, 1, 0, 3},
		RoadPieces:          13,
		SettlementPieces:    4,
		CityPieces:          3,
		Knights:             1,
		DevelopmentCards:    catan.DevCards{1, 0, 0, 0, 0},
		NewDevelopmentCards: catan.DevCards{0, 1, 0, 0, 0},
		Harbors:             [catan.HarborKinds]bool{false, false, false, true, false, false},
	}
	s.Hands[1] = catan.Hand{
		Resources:        catan.Resources{0, 4, 0, 0, 0},
		RoadPieces:       10,
		SettlementPieces: 3,
		CityPieces:       4,
		Knights:          3,
		DevelopmentCards: catan.DevCards{0, 0, 2, 0, 0},
	}
	s.Hands[2] = catan.Hand{
		Resources:        catan.Resources{1, 1, 1, 1, 1},
		RoadPieces:       15,
		SettlementPieces: 5,
		CityPieces:       4,
	}
	s.LongestHeld = 1
	s.Bank = catan.Resources{19, 18, 17, 16, 15}
	s.DevDeck = 21
	return s
}

func testPhase() catan.Phase {
	return catan.Phase{
		Kind:        catan.PhaseTurn,
		Player:      0,
		Turn:        catan.PreRoll,
		Development: catan.DevelopmentPhase{Kind: catan.DevReady},
	}
}

func TestEncodeBoardChannels(t *testing.T) {
	obs := Encode(testFormat(t, false), 0, testState(), testPhase(), []bool{true})

	if obs.Channels != 19 {
		t.Fatalf("Channels = %d, want 19 for 3 players", obs.Channels)
	}
	if len(obs.Board) != 4*4*19 {
		t.Fatalf("len(Board) = %d, want %d", len(obs.Board), 4*4*19)
	}

	checks := []struct {
		name    string
		x, y, c int
		want    int32
	}{
		{"wool production number", 0, 0, int(catan.Wool), 8},
		{"other resource channel empty", 0, 0, int(catan.Brick), 0},
		{"desert flag", 1, 0, chanDesert, 1},
		{"robber on desert", 1, 0, chanRobber, 1},
		{"no robber on production hex", 0, 0, chanRobber, 0},
		{"road owned by seat 1, offset 1", 2, 0, chanRoads + 1, 1},
		{"no own road on that path", 2, 0, chanRoads, 0},
		{"empty path", 2, 1, chanRoads + 1, 0},
		{"grain harbor", 3, 0, 10 + 3, 1},
		{"generic harbor", 3, 1, 10 + 5, 1},
		{"settlement of seat 2, offset 2", 3, 0, 16 + 2, 1},
		{"own city", 3, 2, 16, 2},
		{"water hex stays empty", 2, 2, int(catan.Wool), 0},
	}
	for _, c := range checks {
		if got := obs.BoardAt(c.x, c.y, c.c); got != c.want {
			t.Errorf("%s: BoardAt(%d,%d,%d) = %d, want %d", c.name, c.x, c.y, c.c, got, c.want)
		}
	}
}

func TestEncodeFlatLayout(t *testing.T) {
	obs := Encode(testFormat(t, false), 0, testState(), testPhase(), []bool{true})

	want := []int32{
		// own hand: resources, pieces, knights, dev cards, new dev
		// cards, harbor access, awards
		2, 0, 1, 0, 3,
		13, 4, 3, 1,
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 1, 0, 0,
		0, 0,
		// seat 1 (offset 1): totals only, plus longest road
		4, 10, 3, 4, 3, 2, 1, 0,
		// seat 2 (offset 2)
		5, 15, 5, 4, 0, 0, 0, 0,
		// bank
		19, 18, 17, 16, 15, 21,
		// pre-roll, dev ready
		1, 1, 0, 0,
	}
	if !reflect.DeepEqual(obs.Flat, want) {
		t.Fatalf("Flat = %v\nwant   %v", obs.Flat, want)
	}
}

func TestEncodePhaseFlags(t *testing.T) {
	state := testState()
	format := testFormat(t, false)
	flags := func(phase catan.Phase) []int32 {
		flat := Encode(format, 0, state, phase, nil).Flat
		return flat[len(flat)-phaseFlagsLen:]
	}

	cases := []struct {
		name  string
		phase catan.Phase
		want  []int32
	}{
		{
			"setup has no turn flags",
			catan.Phase{Kind: catan.PhaseSetup},
			[]int32{0, 0, 0, 0},
		},
		{
			"post-roll with card already used",
			catan.Phase{Kind: catan.PhaseTurn, Turn: catan.PostRoll},
			[]int32{0, 0, 0, 0},
		},
		{
			"road building, both picks left",
			catan.Phase{Kind: catan.PhaseTurn, Turn: catan.PostRoll,
				Development: catan.DevelopmentPhase{Kind: catan.DevRoadBuilding, TwoLeft: true}},
			[]int32{0, 0, 2, 0},
		},
		{
			"year of plenty, one pick left",
			catan.Phase{Kind: catan.PhaseTurn, Turn: catan.PostRoll,
				Development: catan.DevelopmentPhase{Kind: catan.DevYearOfPlenty}},
			[]int32{0, 0, 0, 1},
		},
	}
	for _, c := range cases {
		if got := flags(c.phase); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: flags = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEncodeHiddenVector(t *testing.T) {
	state := testState()
	phase := testPhase()

	plain := Encode(testFormat(t, false), 0, state, phase, nil)
	if plain.Hidden != nil {
		t.Fatalf("Hidden present without includeHidden")
	}

	obs := Encode(testFormat(t, true), 0, state, phase, nil)
	if len(obs.Hidden) != 2*visibleHandLen {
		t.Fatalf("len(Hidden) = %d, want %d", len(obs.Hidden), 2*visibleHandLen)
	}
	// Each opponent stride repeats that opponent's aggregate block from
	// Flat, padded with zeros to the visible-hand width.
	for off := 0; off < 2; off++ {
		stride := obs.Hidden[off*visibleHandLen : (off+1)*visibleHandLen]
		flatBlock := obs.Flat[visibleHandLen+off*concealedHandLen : visibleHandLen+(off+1)*concealedHandLen]
		if !reflect.DeepEqual(stride[:concealedHandLen], flatBlock) {
			t.Errorf("opponent %d: hidden block %v != flat block %v", off+1, stride[:concealedHandLen], flatBlock)
		}
		for i := concealedHandLen; i < visibleHandLen; i++ {
			if stride[i] != 0 {
				t.Errorf("opponent %d: padding cell %d = %d, want 0", off+1, i, stride[i])
			}
		}
	}
}

// rotateSeats relabels every seat of s by +k, preserving everything
// else. Encoding the rotated table from the rotated observer must be
// bit-identical to encoding the original from the original observer.
func rotateSeats(s *catan.TableState, k uint8) *catan.TableState {
	n := s.Players
	shift := func(p catan.PlayerId) catan.PlayerId {
		if p == catan.PlayerNone {
			return p
		}
		return catan.PlayerId((uint8(p) + k) % n)
	}
	r := catan.NewTableState(n, s.Board)
	for c, h := range s.Hexes {
		r.Hexes[c] = h
	}
	r.Robber = s.Robber
	for c, owner := range s.Roads {
		r.Roads[c] = shift(owner)
	}
	for c, h := range s.Harbors {
		r.Harbors[c] = h
	}
	for c, b := range s.Buildings {
		r.Buildings[c] = catan.Building{Owner: shift(b.Owner), City: b.City}
	}
	for i := range s.Hands {
		r.Hands[shift(catan.PlayerId(i))] = s.Hands[i]
	}
	r.LongestHeld = shift(s.LongestHeld)
	r.LargestHeld = shift(s.LargestHeld)
	r.Bank = s.Bank
	r.DevDeck = s.DevDeck
	return r
}

func TestEncodeSeatRotationInvariance(t *testing.T) {
	format := testFormat(t, true)
	state := testState()
	phase := testPhase()

	for k := uint8(1); k < 3; k++ {
		rotated := rotateSeats(state, k)
		for p := catan.PlayerId(0); p < 3; p++ {
			a := Encode(format, p, state, phase, nil)
			b := Encode(format, catan.PlayerId((uint8(p)+k)%3), rotated, phase, nil)
			if !reflect.DeepEqual(a.Board, b.Board) {
				t.Errorf("k=%d observer=%d: board changed under seat relabelling", k, p)
			}
			if !reflect.DeepEqual(a.Flat, b.Flat) {
				t.Errorf("k=%d observer=%d: flat vector changed under seat relabelling", k, p)
			}
			if !reflect.DeepEqual(a.Hidden, b.Hidden) {
				t.Errorf("k=%d observer=%d: hidden vector changed under seat relabelling", k, p)
			}
		}
	}
}

func TestEncodeActionMaskCopied(t *testing.T) {
	legal := []bool{true, false, true, true}
	obs := Encode(testFormat(t, false), 0, testState(), testPhase(), legal)

	if !reflect.DeepEqual(obs.Actions, legal) {
		t.Fatalf("Actions = %v, want %v", obs.Actions, legal)
	}
	legal[0] = false
	if !obs.Actions[0] {
		t.Fatal("mutating the caller's mask leaked into the observation")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	format := testFormat(t, true)
	state := testState()
	phase := testPhase()
	legal := []bool{true, true, false}

	a := Encode(format, 1, state, phase, legal)
	b := Encode(format, 1, state, phase, legal)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different observations")
	}
}
