// Command selfplay runs random self-play episodes through a
// SingleEnvironment against the scripted demo table and reports results,
// optionally publishing episode records for training telemetry.
package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/catanlab/catanenv/env"
	"github.com/catanlab/catanenv/internal/config"
	"github.com/catanlab/catanenv/internal/episode"
	"github.com/catanlab/catanenv/internal/tabletop"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)

	if err := run(cfg); err != nil {
		logrus.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	recorder, cleanup, err := newRecorder(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	seats := 1 + cfg.Opponents
	environment, err := env.NewSingleEnvironment(env.SingleConfig{
		Game: &tabletop.Table{
			Players:     seats,
			Rounds:      cfg.Rounds,
			ActionSpace: cfg.ActionSpace,
		},
		Format:    tabletop.Format(cfg.IncludeHidden),
		Opponents: cfg.Opponents,
		Seed1:     cfg.Seed,
	})
	if err != nil {
		return err
	}
	defer environment.Close()

	runID := uuid.New()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef))
	logrus.WithFields(logrus.Fields{"run": runID, "episodes": cfg.Episodes, "seats": seats}).Info("starting self-play")

	for ep := 0; ep < cfg.Episodes; ep++ {
		started := time.Now()
		decisions := 0

		obs, err := environment.Start()
		if err != nil {
			return err
		}
		for !obs.Terminal {
			obs, err = environment.Play(randomLegal(rng, obs.Actions))
			if err != nil {
				return err
			}
			decisions++
		}
		result, err := environment.Result()
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"episode":       ep,
			"decisions":     decisions,
			"victoryPoints": result.VictoryPoints,
			"won":           result.Winner,
		}).Info("episode finished")

		winner := -1
		if result.Winner {
			winner = 0
		}
		recorder.RecordAsync(episode.Record{
			RunID:      runID,
			GameID:     uuid.New(),
			FinishedAt: time.Now(),
			Seats:      seats,
			Scores:     []int{int(result.VictoryPoints)},
			Winner:     winner,
			Decided:    result.Winner,
			Decisions:  decisions,
			Duration:   time.Since(started),
		})
	}
	return nil
}

// randomLegal picks a uniformly random legal action from the mask.
func randomLegal(rng *rand.Rand, legal []bool) uint16 {
	count := 0
	for _, ok := range legal {
		if ok {
			count++
		}
	}
	if count == 0 {
		return 0
	}
	pick := rng.IntN(count)
	for i, ok := range legal {
		if ok {
			if pick == 0 {
				return uint16(i)
			}
			pick--
		}
	}
	return 0
}

// newRecorder wires the episode sinks named by the configuration.
func newRecorder(cfg *config.Config) (*episode.Recorder, func(), error) {
	var rdb *redis.Client
	var pool *pgxpool.Pool

	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	if cfg.PostgresURL != "" {
		var err error
		pool, err = pgxpool.New(context.Background(), cfg.PostgresURL)
		if err != nil {
			if rdb != nil {
				rdb.Close()
			}
			return nil, nil, err
		}
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		if pool != nil {
			pool.Close()
		}
	}
	return episode.NewRecorder(rdb, pool, logrus.StandardLogger()), cleanup, nil
}
