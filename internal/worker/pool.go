package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueImport = "jobs:import"
	QueueEmail  = "jobs:email"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists; the worker pool dequeues
// them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueImport pushes a supplier feed import job.
func (d *Dispatcher) EnqueueImport(ctx context.Context, payload ImportPayload) error {
	return d.enqueue(ctx, QueueImport, "import", payload, 0)
}

// EnqueueEmail pushes a report email job.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data, Attempts: attempts})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers bundles the concrete job handlers wired at the composition root.
type Handlers struct {
	Import *ImportWorker
	Email  *EmailWorker
}

// StartPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP; zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, h *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, h *Handlers, id int) {
	queues := []string{QueueImport, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop; waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, h, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, h *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch queue {
	case QueueImport:
		var payload ImportPayload
		if err = json.Unmarshal(job.Payload, &payload); err == nil {
			err = h.Import.Handle(ctx, payload)
		}
	case QueueEmail:
		var payload EmailPayload
		if err = json.Unmarshal(job.Payload, &payload); err == nil {
			err = h.Email.Handle(ctx, payload)
		}
	default:
		log.Warn().Str("queue", queue).Msg("job from unknown queue dropped")
		return
	}

	if err == nil {
		return
	}

	job.Attempts++
	log.Error().Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).Err(err).Msg("job failed")

	if job.Attempts >= maxAttempts {
		SendToDLQ(ctx, rdb, queue, job, err.Error())
		return
	}
	if encoded, marshalErr := json.Marshal(job); marshalErr == nil {
		if pushErr := rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
			log.Error().Err(pushErr).Msg("failed to re-enqueue job")
		}
	}
}
