package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists admin audit entries asynchronously through a fixed set
// of workers. Entries are sharded by admin id, so one admin's trail is always
// written in the order it was recorded.
type Dispatcher struct {
	workers []chan domain.ActivityEntry
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an entry to the worker responsible for its admin id. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(entry domain.ActivityEntry) {
	d.workers[d.shardIndex(entry.AdminID)] <- entry
}

// QueueDepths reports the number of pending entries per worker.
func (d *Dispatcher) QueueDepths() []int {
	depths := make([]int, len(d.workers))
	for i, ch := range d.workers {
		depths[i] = len(ch)
	}
	return depths
}

// shardIndex maps an admin id deterministically to a worker index.
func (d *Dispatcher) shardIndex(adminID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(adminID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &entry); err != nil {
				d.log.Error().Err(err).
					Str("admin_id", entry.AdminID).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("activity write failed")
			}
		}
	}
}
