package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueReceipts = "jobs:receipts"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists; the worker pool dequeues
// them via BRPOP. A nil Dispatcher (Redis disabled) is valid and callers
// must skip enqueueing.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	if rdb == nil {
		return nil
	}
	return &Dispatcher{rdb: rdb}
}

// EnqueueReceipt queues PDF receipt generation for a completed sale.
// Best effort: the sale is already committed, a lost job only means the
// receipt gets generated on demand later.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, saleID string) error {
	return d.enqueue(ctx, QueueReceipts, "receipt", ReceiptJobPayload{SaleID: saleID})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers groups the concrete job processors, wired at the
// composition root.
type WorkerHandlers struct {
	Receipt *ReceiptWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	if rdb == nil {
		log.Info().Msg("worker pool disabled: no redis configured")
		return
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueReceipts}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "receipt":
		if handlers != nil && handlers.Receipt != nil {
			if err := handlers.Receipt.Process(ctx, job.Payload); err != nil {
				log.Error().Err(err).Msg("receipt job failed")
				SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error())
			}
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
