package worker

// Jobs that exhaust their retries are parked in dlq:<queue> for a human to
// look at. Each list keeps only the newest dlqMaxEntries entries.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix     = "dlq:"
	dlqMaxEntries = 1000
)

// DLQEntry is what gets stored for a dead job.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ parks job. Failures to do so are only logged: the job is lost
// either way and the worker must keep consuming.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string, attempts int) {
	logger := log.With().Str("queue", queue).Str("job_type", job.Type).Str("reason", reason).Logger()
	if rdb == nil {
		logger.Error().Msg("dlq: redis unavailable, dropping failed job")
		return
	}
	data, err := json.Marshal(DLQEntry{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("dlq: marshal entry")
		return
	}

	key := DLQPrefix + queue
	_, err = rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, dlqMaxEntries-1)
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("dlq: push failed")
		return
	}
	logger.Warn().Int("attempts", attempts).Msg("dlq: job moved to dead letter queue")
}

// DLQLengths reports the size of every dead letter list, for /api/health.
// Queues whose length cannot be read are left out.
func DLQLengths(ctx context.Context, rdb *redis.Client) map[string]int64 {
	out := map[string]int64{}
	if rdb == nil {
		return out
	}
	queues := []string{QueueEmail, QueueCotizaciones}
	cmds := make([]*redis.IntCmd, len(queues))
	_, _ = rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, q := range queues {
			cmds[i] = pipe.LLen(ctx, DLQPrefix+q)
		}
		return nil
	})
	for i, q := range queues {
		if n, err := cmds[i].Result(); err == nil {
			out[q] = n
		}
	}
	return out
}
