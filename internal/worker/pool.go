package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail        = "jobs:email"
	QueueCotizaciones = "jobs:cotizaciones"
)

const (
	JobEmail      = "email"
	JobCotizacion = "cotizacion"
)

const maxAttempts = 3

// ErrQueueDisabled is returned by the Dispatcher when Redis is not configured.
var ErrQueueDisabled = errors.New("job queue disabled")

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one job payload. A returned error triggers a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

// NewDispatcher accepts a nil client; every enqueue then fails with
// ErrQueueDisabled.
func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) Enabled() bool { return d != nil && d.rdb != nil }

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, p EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, p)
}

// EnqueueCotizacion pushes a render-archive-mail job for one quote.
func (d *Dispatcher) EnqueueCotizacion(ctx context.Context, p CotizacionJobPayload) error {
	return d.enqueue(ctx, QueueCotizaciones, JobCotizacion, p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	if !d.Enabled() {
		return ErrQueueDisabled
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	backoff  time.Duration

	// pollPause is how long a worker waits after a Redis error before
	// polling again.
	pollPause time.Duration

	// deadLetter is swapped in tests.
	deadLetter func(ctx context.Context, queue string, job Job, reason string, attempts int)
}

func NewPool(rdb *redis.Client) *Pool {
	p := &Pool{rdb: rdb, handlers: map[string]Handler{}, backoff: time.Second, pollPause: 2 * time.Second}
	p.deadLetter = func(ctx context.Context, queue string, job Job, reason string, attempts int) {
		SendToDLQ(ctx, rdb, queue, job, reason, attempts)
	}
	return p
}

// Handle registers h for jobType.
func (p *Pool) Handle(jobType string, h Handler) {
	p.handlers[jobType] = h
}

// Start launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	queues := []string{QueueCotizaciones, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("queue poll failed")
					p.pause(ctx)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], []byte(result[1]))
		}
	}
}

// pause waits pollPause or until ctx is done, so a Redis outage does not
// turn the worker into a busy loop.
func (p *Pool) pause(ctx context.Context) {
	t := time.NewTimer(p.pollPause)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// process runs one raw job with retries; jobs that keep failing go to the DLQ.
func (p *Pool) process(ctx context.Context, queue string, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		p.deadLetter(ctx, queue, Job{Type: "unknown", Payload: json.RawMessage(`null`)}, "malformed envelope: "+err.Error(), 0)
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no handler for job type")
		p.deadLetter(ctx, queue, job, "unknown job type", 0)
		return
	}

	err := withRetry(ctx, maxAttempts, p.backoff, func(attempt int) error {
		if err := h(ctx, job.Payload); err != nil {
			log.Warn().Err(err).Str("type", job.Type).Int("attempt", attempt+1).Msg("job attempt failed")
			return err
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.deadLetter(ctx, queue, job, err.Error(), maxAttempts)
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}

// withRetry calls fn up to maxAttempts times, waiting base, 2×base, ...
// between attempts.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := base * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
