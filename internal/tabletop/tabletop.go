// Package tabletop is a deterministic stand-in for the external game
// engine. It deals a small fixed board, consults every seat in rotation
// for a configured number of rounds, verifies the returned action
// against the legal mask, and hands out rotating results. It implements
// none of the real rules; its job is to exercise the bridge protocol
// and the encoder end to end in tests and smoke runs.
package tabletop

import (
	"fmt"
	"math/rand/v2"

	"github.com/catanlab/catanenv/catan"
	"github.com/catanlab/catanenv/env"
)

// Board cell coordinates of the fixed demo layout. Everything maps into
// a 4×4 observation tensor with the identity coordinate mapping.
var (
	hexProd   = catan.Coord{X: 0, Y: 0}
	hexDesert = catan.Coord{X: 1, Y: 0}
	pathA     = catan.Coord{X: 2, Y: 0}
	pathB     = catan.Coord{X: 2, Y: 1}
	nodeA     = catan.Coord{X: 3, Y: 0}
	nodeB     = catan.Coord{X: 3, Y: 1}
)

// FormatSize is the tensor edge length matching Layout.
const FormatSize = 4

// Format returns an observation format covering the demo layout.
func Format(includeHidden bool) *env.ObservationFormat {
	f, err := env.NewObservationFormat(FormatSize, FormatSize, func(c catan.Coord) (int, int) {
		return int(c.X), int(c.Y)
	}, includeHidden)
	if err != nil {
		panic(err) // static inputs, cannot fail
	}
	return f
}

// Layout returns the fixed demo board layout.
func Layout() catan.Layout {
	return catan.Layout{
		Hexes:         []catan.Coord{hexProd, hexDesert},
		Paths:         []catan.Coord{pathA, pathB},
		Intersections: []catan.Coord{nodeA, nodeB},
	}
}

// Table implements catan.Game over the demo layout.
type Table struct {
	// Players is the seat count. Required, at least 1.
	Players int
	// Rounds is the number of decision points per seat per game.
	Rounds int
	// ActionSpace is the size of the legal-action mask.
	ActionSpace int
	// Winnerless suppresses the win flag on every result, modelling an
	// engine that terminates a game without determining a winner.
	Winnerless bool

	games int // finished games; rotates the winning seat
}

// Play runs one scripted game: Rounds decision points per seat in seat
// order, then results. Seat (games mod Players) wins with 10 points.
func (t *Table) Play(rng *rand.Rand, actors []catan.Actor) error {
	if len(actors) != t.Players {
		return fmt.Errorf("tabletop: %d actors for %d seats", len(actors), t.Players)
	}
	state := t.deal(rng)
	for seat := range actors {
		actors[seat].BeginGame(catan.PlayerId(seat), state)
	}

	for round := 0; round < t.Rounds; round++ {
		for seat := 0; seat < t.Players; seat++ {
			phase := catan.Phase{
				Kind:   catan.PhaseTurn,
				Player: catan.PlayerId(seat),
				Turn:   catan.PostRoll,
				Development: catan.DevelopmentPhase{
					Kind: catan.DevReady,
				},
			}
			if round == 0 {
				phase.Turn = catan.PreRoll
			}
			legal := t.legalMask(seat, round)
			action, err := actors[seat].PickAction(state, phase, legal)
			if err != nil {
				return fmt.Errorf("tabletop: seat %d decision failed: %w", seat, err)
			}
			if int(action) >= len(legal) || !legal[action] {
				return fmt.Errorf("tabletop: seat %d played illegal action %d", seat, action)
			}
			// Trivial state evolution so consecutive observations differ.
			state.Hands[seat].Resources[int(action)%catan.ResourceCount]++
		}
	}

	winner := t.games % t.Players
	t.games++
	for seat := range actors {
		result := catan.SeatResult{VictoryPoints: uint8(2 + seat)}
		if seat == winner && !t.Winnerless {
			result.VictoryPoints = 10
			result.Winner = true
		}
		actors[seat].EndGame(state, result)
	}
	return nil
}

// legalMask marks every other action legal, phase-shifted by seat and
// round so distinct decision points see distinct masks.
func (t *Table) legalMask(seat, round int) []bool {
	legal := make([]bool, t.ActionSpace)
	for i := range legal {
		legal[i] = (i+seat+round)%2 == 0
	}
	return legal
}

// deal builds the starting table: one production hex, the desert with
// the robber, one road and one settlement for seat 0, staggered hands.
func (t *Table) deal(rng *rand.Rand) *catan.TableState {
	state := catan.NewTableState(uint8(t.Players), Layout())
	state.Hexes[hexProd] = catan.Hex{Kind: catan.HexProduction, Resource: catan.Brick, Number: 6}
	state.Hexes[hexDesert] = catan.Hex{Kind: catan.HexDesert}
	state.Robber = hexDesert
	state.Roads[pathA] = 0
	state.Harbors[nodeA] = catan.HarborGeneric
	state.Buildings[nodeB] = catan.Building{Owner: 0, City: false}
	for seat := range state.Hands {
		state.Hands[seat].Resources[catan.Brick] = uint8(seat + 1)
		state.Hands[seat].RoadPieces = 15
		state.Hands[seat].SettlementPieces = 5
		state.Hands[seat].CityPieces = 4
	}
	state.Bank = catan.Resources{19, 19, 19, 19, 19}
	state.DevDeck = 25
	_ = rng
	return state
}
