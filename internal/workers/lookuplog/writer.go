// Package lookuplog persists resolved lookups off the request path.
package lookuplog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"domaininfo/internal/metrics"
	"domaininfo/internal/ports"
)

const writeTimeout = 5 * time.Second

// Writer queues lookups and stores them with a fixed pool of workers.
type Writer struct {
	repo    ports.LookupRepository
	queue   chan ports.LookupEntry
	metrics *metrics.Metrics
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func New(repo ports.LookupRepository, queueSize int, m *metrics.Metrics, log zerolog.Logger) *Writer {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Writer{
		repo:    repo,
		queue:   make(chan ports.LookupEntry, queueSize),
		metrics: m,
		log:     log,
	}
}

// Record enqueues entry, dropping it when the queue is full.
func (w *Writer) Record(entry ports.LookupEntry) {
	select {
	case w.queue <- entry:
	default:
		w.metrics.IncrementAuditDropped()
		w.log.Warn().
			Str("lookup_id", entry.ID).
			Str("domain", entry.Record.Domain.String()).
			Msg("audit queue full, dropping lookup")
	}
}

// Run starts concurrency workers that drain the queue until ctx is done.
// Entries still queued at shutdown are written before Wait returns.
func (w *Writer) Run(ctx context.Context, concurrency int) {
	if concurrency < 1 {
		return
	}
	for i := 0; i < concurrency; i++ {
		w.wg.Add(1)
		go func(idx int) {
			defer w.wg.Done()
			for {
				select {
				case <-ctx.Done():
					w.drain(ctx, idx)
					return
				case entry := <-w.queue:
					w.store(ctx, idx, entry)
				}
			}
		}(i)
	}
}

// Wait blocks until all workers have exited.
func (w *Writer) Wait() { w.wg.Wait() }

func (w *Writer) drain(ctx context.Context, idx int) {
	for {
		select {
		case entry := <-w.queue:
			w.store(ctx, idx, entry)
		default:
			return
		}
	}
}

func (w *Writer) store(ctx context.Context, idx int, entry ports.LookupEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := w.repo.InsertLookup(ctx, entry); err != nil {
		w.metrics.IncrementAuditFailed()
		w.log.Error().
			Err(err).
			Int("worker", idx).
			Str("lookup_id", entry.ID).
			Msg("storing lookup failed")
	}
}

// Discard is a LookupRecorder that drops everything; used when no database
// is configured.
type Discard struct{}

func (Discard) Record(ports.LookupEntry) {}

var (
	_ ports.LookupRecorder = (*Writer)(nil)
	_ ports.LookupRecorder = Discard{}
)
