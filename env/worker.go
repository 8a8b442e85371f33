package env

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/catanlab/catanenv/catan"
)

// remoteSeat occupies one engine seat on behalf of the external caller.
// It runs on the simulation goroutine: at every decision point it
// publishes the seat's observation and blocks until the matching action
// arrives, preserving the publish-then-await alternation the protocol
// relies on. At game end it publishes the terminal sentinel followed by
// the seat's result.
type remoteSeat struct {
	seat         catan.PlayerId
	format       *ObservationFormat
	actions      <-chan uint16
	observations chan<- *Observation
	results      chan<- catan.SeatResult
	done         <-chan struct{}
}

func (s *remoteSeat) BeginGame(catan.PlayerId, catan.State) {}

func (s *remoteSeat) PickAction(state catan.State, phase catan.Phase, legal []bool) (uint16, error) {
	obs := Encode(s.format, s.seat, state, phase, legal)
	select {
	case s.observations <- obs:
	case <-s.done:
		return 0, ErrClosed
	}
	select {
	case action := <-s.actions:
		return action, nil
	case <-s.done:
		return 0, ErrClosed
	}
}

func (s *remoteSeat) EndGame(_ catan.State, result catan.SeatResult) {
	terminal := &Observation{Seat: s.seat, Terminal: true}
	select {
	case s.observations <- terminal:
	case <-s.done:
		return
	}
	select {
	case s.results <- result:
	case <-s.done:
	}
}

// worker owns one engine instance and drives it game after game on its
// own goroutine. It is the sole sender on the observation and result
// channels and closes them on exit, so a stopped worker surfaces as
// ErrClosed on the caller's next blocking call instead of a hang.
type worker struct {
	game         catan.Game
	actors       []catan.Actor
	rng          *rand.Rand
	observations chan *Observation
	results      []chan catan.SeatResult
	done         chan struct{}
	exited       chan struct{}
	log          logrus.FieldLogger
}

func (w *worker) run() {
	defer close(w.exited)
	defer func() {
		close(w.observations)
		for _, ch := range w.results {
			close(ch)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("engine panicked, stopping environment")
		}
	}()

	for games := 0; ; games++ {
		select {
		case <-w.done:
			return
		default:
		}
		if err := w.game.Play(w.rng, w.actors); err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			w.log.WithError(err).Error("engine aborted the game, stopping environment")
			return
		}
		w.log.WithField("games", games+1).Debug("game finished, starting the next")
	}
}

// newRng seeds the worker's generator. A zero seed pair draws from the
// wall clock so distinct environments play distinct games.
func newRng(seed1, seed2 uint64) *rand.Rand {
	if seed1 == 0 && seed2 == 0 {
		seed1 = uint64(time.Now().UnixNano())
		seed2 = seed1 ^ 0x9e3779b97f4a7c15
	}
	return rand.New(rand.NewPCG(seed1, seed2))
}
