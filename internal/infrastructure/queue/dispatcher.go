package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/api/metrics"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Handler executes one intent. ports.Controller satisfies it.
type Handler interface {
	Handle(ctx context.Context, in ports.Intent) error
}

// Dispatcher runs view intents off the caller's goroutine. Intents are routed
// to a fixed set of workers by hashing their shard key, so intents sharing a
// key run in submission order while the rest may interleave.
type Dispatcher struct {
	workers []chan ports.Intent
	handler Handler
	log     zerolog.Logger

	mu   sync.RWMutex
	done <-chan struct{}
	wg   sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, handler Handler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Intent, numWorkers),
		handler: handler,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Intent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// intents still queued at that point are dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	d.done = ctx.Done()
	d.mu.Unlock()

	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an intent to the worker responsible for its shard key. It
// blocks only while that worker's buffer is full. Once the Start context is
// cancelled every call fails with domain.ErrQueueClosed. Before Start,
// intents are buffered.
func (d *Dispatcher) Enqueue(in ports.Intent) error {
	d.mu.RLock()
	done := d.done
	d.mu.RUnlock()

	idx := d.shardIndex(in.ShardKey())
	select {
	case <-done:
		return domain.ErrQueueClosed
	default:
	}
	select {
	case d.workers[idx] <- in:
		metrics.IntentsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-done:
		return domain.ErrQueueClosed
	}
}

// shardIndex maps a shard key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Intent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case in := <-ch:
			metrics.IntentsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			err := d.handler.Handle(ctx, in)
			metrics.IntentsProcessedTotal.WithLabelValues(string(in.Kind), metrics.Outcome(err)).Inc()
			if err != nil {
				// The controller already wrote the diagnostic entry.
				d.log.Debug().Err(err).
					Str("intent", string(in.Kind)).
					Int("worker_id", id).
					Msg("intent failed")
			}
		}
	}
}
