package env

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/catanlab/catanenv/catan"
)

// MultiConfig configures a MultiEnvironment.
type MultiConfig struct {
	// Game is the external engine instance. Required.
	Game catan.Game
	// Format fixes the observation encoding. Required.
	Format *ObservationFormat
	// Players is the seat count; every seat is caller-controlled.
	Players int
	// Seed1/Seed2 seed the simulation RNG; both zero means a
	// wall-clock seed.
	Seed1 uint64
	Seed2 uint64
	// Logger receives lifecycle events. Defaults to the standard
	// logrus logger.
	Logger logrus.FieldLogger
}

// MatchResult is one finished game of a MultiEnvironment. Winner is -1
// and Decided is false when no seat's result carried the win flag — a
// winnerless game is reported explicitly, never attributed to seat 0.
type MatchResult struct {
	Scores  []uint8
	Winner  int
	Decided bool
}

// MultiEnvironment exposes one engine-driven game stream where every
// seat is controlled by the caller. Observations from all seats arrive
// on one stream, addressed by seat; actions must answer the seat the
// most recent observation addressed.
type MultiEnvironment struct {
	id      uuid.UUID
	players int
	log     logrus.FieldLogger

	mu          sync.Mutex // serializes Start/Play, guards pending state
	pending     bool
	pendingSeat catan.PlayerId

	resMu sync.Mutex // serializes Result

	actions      []chan uint16
	observations chan *Observation
	results      []chan catan.SeatResult
	done         chan struct{}
	exited       chan struct{}
	closeOnce    sync.Once
}

// NewMultiEnvironment spawns the simulation goroutine and returns the
// caller-facing handle.
func NewMultiEnvironment(cfg MultiConfig) (*MultiEnvironment, error) {
	if cfg.Game == nil {
		return nil, errors.New("env: MultiConfig.Game is required")
	}
	if cfg.Format == nil {
		return nil, errors.New("env: MultiConfig.Format is required")
	}
	if cfg.Players < 2 {
		return nil, errors.New("env: MultiConfig.Players must be at least 2")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &MultiEnvironment{
		id:           uuid.New(),
		players: cfg.Players,
		// Buffered for one terminal sentinel per seat: at game end every
		// seat publishes before the caller can drain, and none of those
		// sends may block the worker against a caller sitting in Result.
		observations: make(chan *Observation, cfg.Players),
		done:         make(chan struct{}),
		exited:       make(chan struct{}),
	}
	e.log = logger.WithFields(logrus.Fields{"env": e.id, "seats": cfg.Players})

	actors := make([]catan.Actor, cfg.Players)
	e.actions = make([]chan uint16, cfg.Players)
	e.results = make([]chan catan.SeatResult, cfg.Players)
	for i := 0; i < cfg.Players; i++ {
		e.actions[i] = make(chan uint16)
		e.results[i] = make(chan catan.SeatResult, 1)
		actors[i] = &remoteSeat{
			seat:         catan.PlayerId(i),
			format:       cfg.Format,
			actions:      e.actions[i],
			observations: e.observations,
			results:      e.results[i],
			done:         e.done,
		}
	}

	w := &worker{
		game:         cfg.Game,
		actors:       actors,
		rng:          newRng(cfg.Seed1, cfg.Seed2),
		observations: e.observations,
		results:      e.results,
		done:         e.done,
		exited:       e.exited,
		log:          e.log,
	}
	go w.run()
	e.log.Debug("multi environment started")
	return e, nil
}

// ID returns the environment's instance id, for log correlation.
func (e *MultiEnvironment) ID() uuid.UUID { return e.id }

// Start blocks until the next observation on the shared stream. After a
// terminal observation, keep calling Start to collect the remaining
// seats' terminal sentinels and then the next game's first decision.
func (e *MultiEnvironment) Start() (*Observation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return nil, ErrDecisionPending
	}
	return e.receive()
}

// Play answers the outstanding decision of seat with action and blocks
// until the next observation. Sending for any other seat is rejected
// with ErrWrongSeat without consuming the pending decision.
func (e *MultiEnvironment) Play(seat catan.PlayerId, action uint16) (*Observation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.pending {
		return nil, ErrNoDecision
	}
	if seat != e.pendingSeat {
		return nil, ErrWrongSeat
	}
	select {
	case e.actions[seat] <- action:
	case <-e.exited:
		return nil, ErrClosed
	}
	e.pending = false
	return e.receive()
}

// receive drains one observation. Callers hold e.mu.
func (e *MultiEnvironment) receive() (*Observation, error) {
	obs, ok := <-e.observations
	if !ok {
		return nil, ErrClosed
	}
	e.pending = !obs.Terminal
	e.pendingSeat = obs.Seat
	return obs, nil
}

// Result blocks until every seat's result for the oldest unreported
// finished game, in seat order, and assembles the score vector. Results
// must be consumed: the simulation will not run more than one game
// ahead of an unread result.
func (e *MultiEnvironment) Result() (MatchResult, error) {
	e.resMu.Lock()
	defer e.resMu.Unlock()
	res := MatchResult{Scores: make([]uint8, e.players), Winner: -1}
	for seat := 0; seat < e.players; seat++ {
		r, ok := <-e.results[seat]
		if !ok {
			return MatchResult{}, ErrClosed
		}
		res.Scores[seat] = r.VictoryPoints
		if r.Winner {
			res.Winner = seat
			res.Decided = true
		}
	}
	return res, nil
}

// Close stops the simulation goroutine. Blocked and subsequent calls
// return ErrClosed. Close is idempotent.
func (e *MultiEnvironment) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
		e.log.Debug("multi environment closed")
	})
	return nil
}
