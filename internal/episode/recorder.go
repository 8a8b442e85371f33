// Package episode records finished games for offline training
// telemetry: each record is published to a Redis stream and, when a
// pool is configured, inserted into Postgres. Both sinks are optional
// and fire-and-forget — recording never blocks or fails the
// environment.
package episode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Stream is the Redis stream episodes are appended to.
const Stream = "catanenv:episodes"

// publishTimeout bounds each asynchronous sink write.
const publishTimeout = 2 * time.Second

// Record is one finished game.
type Record struct {
	RunID      uuid.UUID     `json:"runId"`
	GameID     uuid.UUID     `json:"gameId"`
	FinishedAt time.Time     `json:"finishedAt"`
	Seats      int           `json:"seats"`
	Scores     []int         `json:"scores"`
	Winner     int           `json:"winner"` // -1 when undecided
	Decided    bool          `json:"decided"`
	Decisions  int           `json:"decisions"`
	Duration   time.Duration `json:"durationNs"`
}

// Recorder fans a record out to the configured sinks. A nil Recorder,
// or one with no sinks, records nothing.
type Recorder struct {
	rdb  *redis.Client
	pool *pgxpool.Pool
	log  logrus.FieldLogger
}

// NewRecorder builds a recorder; rdb and pool may each be nil.
func NewRecorder(rdb *redis.Client, pool *pgxpool.Pool, log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Recorder{rdb: rdb, pool: pool, log: log}
}

// Record writes rec to every configured sink and returns the first
// sink error.
func (r *Recorder) Record(ctx context.Context, rec Record) error {
	if r == nil {
		return nil
	}
	if r.rdb != nil {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("episode: marshal record: %w", err)
		}
		err = r.rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: Stream,
			Values: map[string]interface{}{"episode": payload},
		}).Err()
		if err != nil {
			return fmt.Errorf("episode: publish to redis: %w", err)
		}
	}
	if r.pool != nil {
		if err := r.insert(ctx, rec); err != nil {
			return fmt.Errorf("episode: insert into postgres: %w", err)
		}
	}
	return nil
}

// RecordAsync writes rec on a background goroutine with a short
// timeout, logging failures instead of returning them.
func (r *Recorder) RecordAsync(rec Record) {
	if r == nil || (r.rdb == nil && r.pool == nil) {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := r.Record(ctx, rec); err != nil {
			r.log.WithError(err).WithField("game", rec.GameID).Error("failed to record episode")
		}
	}()
}

func (r *Recorder) insert(ctx context.Context, rec Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO episodes
			(run_id, game_id, finished_at, seats, scores, winner, decided, decisions, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (game_id) DO NOTHING`,
		rec.RunID, rec.GameID, rec.FinishedAt, rec.Seats, rec.Scores,
		rec.Winner, rec.Decided, rec.Decisions, rec.Duration.Milliseconds(),
	)
	return err
}
