package catan

import (
	"errors"
	"math/rand/v2"
)

// ErrNoLegalAction is returned by an Actor asked to decide with an
// all-false legal mask. The engine treats it as an invariant violation.
var ErrNoLegalAction = errors.New("catan: no legal action available")

// Actor occupies one seat for the duration of one game. The engine
// calls it synchronously from the goroutine driving the game, so an
// Actor may block in PickAction.
type Actor interface {
	// BeginGame announces a fresh game and the actor's seat in it.
	BeginGame(seat PlayerId, state State)
	// PickAction returns the index of the chosen action. legal is the
	// engine-computed mask over the full action space; the returned
	// index must be legal. A non-nil error aborts the game.
	PickAction(state State, phase Phase, legal []bool) (uint16, error)
	// EndGame announces the finished game and the actor's final result.
	EndGame(state State, result SeatResult)
}

// Game is one engine instance. Implementations own all rules, legality
// checking and scoring.
type Game interface {
	// Play sets up a fresh game (board, seating) and runs it to
	// completion, consulting actors[i] for seat i at each of that
	// seat's decision points. It returns the error of the first actor
	// that fails, or a rules-level invariant violation.
	Play(rng *rand.Rand, actors []Actor) error
}

// RandomActor picks uniformly among legal actions. It is the scripted
// stand-in opponent for seats not driven by an external caller.
type RandomActor struct {
	rng *rand.Rand
}

// NewRandomActor returns a RandomActor drawing from rng. rng must not
// be shared with another goroutine.
func NewRandomActor(rng *rand.Rand) *RandomActor {
	return &RandomActor{rng: rng}
}

func (a *RandomActor) BeginGame(PlayerId, State) {}

func (a *RandomActor) PickAction(_ State, _ Phase, legal []bool) (uint16, error) {
	count := 0
	for _, ok := range legal {
		if ok {
			count++
		}
	}
	if count == 0 {
		return 0, ErrNoLegalAction
	}
	pick := a.rng.IntN(count)
	for i, ok := range legal {
		if !ok {
			continue
		}
		if pick == 0 {
			return uint16(i), nil
		}
		pick--
	}
	return 0, ErrNoLegalAction
}

func (a *RandomActor) EndGame(State, SeatResult) {}
