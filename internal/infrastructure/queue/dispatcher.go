package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/staffhub/workforce-system/internal/api/metrics"
	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit records to a fixed set of workers using consistent
// hashing on the actor id, guaranteeing per-actor append ordering. Appends
// are fire-and-forget: a failed durable write is logged and counted, never
// reported back to the business call that produced the record.
type Dispatcher struct {
	workers []chan *domain.AuditRecord
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.AuditRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.AuditRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channels until
// Close is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a record to the worker responsible for its actor id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(record *domain.AuditRecord) {
	d.workers[d.shardIndex(record.ActorID)] <- record
}

// Close stops accepting records and blocks until every queued record has been
// handed to the repository. Call during graceful shutdown, after the HTTP
// server has stopped producing records.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.AuditRecord) {
	defer d.wg.Done()
	for record := range ch {
		if err := d.repo.Append(ctx, record); err != nil {
			metrics.AuditWriteFailuresTotal.Inc()
			d.log.Error().Err(err).
				Str("actor", record.ActorID).
				Str("action", string(record.Action)).
				Int("worker_id", id).
				Msg("audit append failed")
			continue
		}
		metrics.AuditRecordsTotal.WithLabelValues(string(record.Action)).Inc()
	}
}
