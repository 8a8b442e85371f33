package env

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/catanlab/catanenv/catan"
)

// SingleConfig configures a SingleEnvironment.
type SingleConfig struct {
	// Game is the external engine instance. Required. The environment
	// takes exclusive ownership: the engine must not be driven from
	// anywhere else.
	Game catan.Game
	// Format fixes the observation encoding. Required.
	Format *ObservationFormat
	// Opponents is the number of scripted seats playing against seat 0.
	Opponents int
	// NewOpponent builds one scripted opponent. Defaults to the
	// uniform-random actor.
	NewOpponent func(rng *rand.Rand) catan.Actor
	// Seed1/Seed2 seed the simulation RNG; both zero means a
	// wall-clock seed.
	Seed1 uint64
	Seed2 uint64
	// Logger receives lifecycle events. Defaults to the standard
	// logrus logger.
	Logger logrus.FieldLogger
}

// SingleEnvironment exposes one engine-driven game stream where seat 0
// is controlled by the caller and every other seat is scripted. The
// simulation goroutine starts at construction and loops through games
// until Close.
//
// The synchronous calls are individually serialized; issuing Start or
// Play concurrently from several goroutines is not a supported mode.
type SingleEnvironment struct {
	id     uuid.UUID
	format *ObservationFormat
	log    logrus.FieldLogger

	mu      sync.Mutex // serializes Start/Play, guards pending
	pending bool       // seat 0 owes an action for the last observation

	resMu sync.Mutex // serializes Result

	actions      chan uint16
	observations chan *Observation
	results      chan catan.SeatResult
	done         chan struct{}
	exited       chan struct{}
	closeOnce    sync.Once
}

// NewSingleEnvironment spawns the simulation goroutine and returns the
// caller-facing handle.
func NewSingleEnvironment(cfg SingleConfig) (*SingleEnvironment, error) {
	if cfg.Game == nil {
		return nil, errors.New("env: SingleConfig.Game is required")
	}
	if cfg.Format == nil {
		return nil, errors.New("env: SingleConfig.Format is required")
	}
	if cfg.Opponents < 0 {
		return nil, errors.New("env: SingleConfig.Opponents must not be negative")
	}
	newOpponent := cfg.NewOpponent
	if newOpponent == nil {
		newOpponent = func(rng *rand.Rand) catan.Actor { return catan.NewRandomActor(rng) }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &SingleEnvironment{
		id:           uuid.New(),
		format:       cfg.Format,
		actions:      make(chan uint16),
		observations: make(chan *Observation, 1),
		results:      make(chan catan.SeatResult, 1),
		done:         make(chan struct{}),
		exited:       make(chan struct{}),
	}
	e.log = logger.WithFields(logrus.Fields{"env": e.id, "seats": 1 + cfg.Opponents})

	// The same rng serves the engine and the scripted opponents; all of
	// them run on the simulation goroutine only.
	rng := newRng(cfg.Seed1, cfg.Seed2)
	actors := make([]catan.Actor, 0, 1+cfg.Opponents)
	actors = append(actors, &remoteSeat{
		seat:         0,
		format:       cfg.Format,
		actions:      e.actions,
		observations: e.observations,
		results:      e.results,
		done:         e.done,
	})
	for i := 0; i < cfg.Opponents; i++ {
		actors = append(actors, newOpponent(rng))
	}

	w := &worker{
		game:         cfg.Game,
		actors:       actors,
		rng:          rng,
		observations: e.observations,
		results:      []chan catan.SeatResult{e.results},
		done:         e.done,
		exited:       e.exited,
		log:          e.log,
	}
	go w.run()
	e.log.Debug("single environment started")
	return e, nil
}

// ID returns the environment's instance id, for log correlation.
func (e *SingleEnvironment) ID() uuid.UUID { return e.id }

// Start blocks until seat 0's next observation — the first decision of
// a game, or the terminal sentinel if the game ends without one.
func (e *SingleEnvironment) Start() (*Observation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return nil, ErrDecisionPending
	}
	return e.receive()
}

// Play answers the outstanding decision with action and blocks until
// the next observation. Calling Play with no outstanding decision is a
// protocol error.
func (e *SingleEnvironment) Play(action uint16) (*Observation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.pending {
		return nil, ErrNoDecision
	}
	select {
	case e.actions <- action:
	case <-e.exited:
		return nil, ErrClosed
	}
	e.pending = false
	return e.receive()
}

// receive drains one observation. Callers hold e.mu.
func (e *SingleEnvironment) receive() (*Observation, error) {
	obs, ok := <-e.observations
	if !ok {
		return nil, ErrClosed
	}
	e.pending = !obs.Terminal
	return obs, nil
}

// Result blocks until seat 0's result for the oldest unreported
// finished game. Results must be consumed: the simulation will not run
// more than one game ahead of an unread result.
func (e *SingleEnvironment) Result() (catan.SeatResult, error) {
	e.resMu.Lock()
	defer e.resMu.Unlock()
	r, ok := <-e.results
	if !ok {
		return catan.SeatResult{}, ErrClosed
	}
	return r, nil
}

// Close stops the simulation goroutine. Blocked and subsequent calls
// return ErrClosed. Close is idempotent.
func (e *SingleEnvironment) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
		e.log.Debug("single environment closed")
	})
	return nil
}
