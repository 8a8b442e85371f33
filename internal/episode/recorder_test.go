package episode

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderWithoutSinksIsNoOp(t *testing.T) {
	var nilRecorder *Recorder
	require.NoError(t, nilRecorder.Record(context.Background(), Record{}))
	nilRecorder.RecordAsync(Record{}) // must not panic

	r := NewRecorder(nil, nil, nil)
	require.NoError(t, r.Record(context.Background(), Record{}))
	r.RecordAsync(Record{})
}

func TestRecordSerialization(t *testing.T) {
	rec := Record{
		RunID:      uuid.New(),
		GameID:     uuid.New(),
		FinishedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Seats:      3,
		Scores:     []int{10, 2, 3},
		Winner:     -1,
		Decided:    false,
		Decisions:  24,
		Duration:   150 * time.Millisecond,
	}
	payload, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, rec.GameID.String(), decoded["gameId"])
	assert.EqualValues(t, -1, decoded["winner"])
	assert.Equal(t, []interface{}{10.0, 2.0, 3.0}, decoded["scores"])
	assert.Equal(t, false, decoded["decided"])
	assert.EqualValues(t, 3, decoded["seats"])
}
