// Package bulk runs maintenance work over many items with a bounded worker
// pool. Item failures are counted, never fatal.
package bulk

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/observability"
)

// Defaults used when Options leaves a field unset.
const (
	DefaultConcurrency = 3
	DefaultItemTimeout = 30 * time.Second
)

// Progress is reported after every finished item.
type Progress struct {
	Done  int
	Total int
	Bytes int64
	Item  string
	Err   error
}

// Options configures a Run.
type Options struct {
	// Operation labels logs and metrics, e.g. "download" or "purge"
	Operation   string
	Concurrency int
	ItemTimeout time.Duration
	OnProgress  func(Progress)
	Logger      *logger.Logger
}

// Report summarizes a Run.
type Report struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
	Bytes     int64             `json:"bytes"`
	Failures  map[string]string `json:"failures,omitempty"`
	Canceled  bool              `json:"canceled"`
}

// Err returns a PARTIAL_FAILURE error when any item failed or was skipped,
// nil otherwise.
func (r *Report) Err() error {
	if r.Failed == 0 && r.Skipped == 0 {
		return nil
	}
	return apperrors.NewPartialFailure(apperrors.CodeBulkPartial, r.Succeeded, r.Failed+r.Skipped, r.Failures)
}

// Func processes one item and returns the number of bytes it handled.
type Func[T any] func(ctx context.Context, item T) (int64, error)

// Run applies fn to every item with at most opts.Concurrency in flight, each
// bounded by opts.ItemTimeout. Cancelling ctx stops scheduling; items already
// running are allowed to finish and the rest are reported as skipped.
func Run[T any](ctx context.Context, opts Options, items []T, name func(T) string, fn Func[T]) *Report {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.ItemTimeout <= 0 {
		opts.ItemTimeout = DefaultItemTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	report := &Report{Total: len(items), Failures: make(map[string]string)}
	sem := semaphore.NewWeighted(int64(opts.Concurrency))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	scheduled := 0
	for _, item := range items {
		if ctx.Err() != nil {
			report.Canceled = true
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			report.Canceled = true
			break
		}
		scheduled++
		wg.Add(1)
		go func(item T) {
			defer sem.Release(1)
			defer wg.Done()

			itemCtx, cancel := context.WithTimeout(ctx, opts.ItemTimeout)
			n, err := fn(itemCtx, item)
			cancel()

			label := name(item)
			mu.Lock()
			if err != nil {
				report.Failed++
				report.Failures[label] = err.Error()
				observability.BulkItems.WithLabelValues(opts.Operation, "failed").Inc()
				log.Warn("bulk item failed", "operation", opts.Operation, "item", label, "error", err)
			} else {
				report.Succeeded++
				report.Bytes += n
				observability.BulkItems.WithLabelValues(opts.Operation, "succeeded").Inc()
			}
			p := Progress{
				Done:  report.Succeeded + report.Failed,
				Total: report.Total,
				Bytes: report.Bytes,
				Item:  label,
				Err:   err,
			}
			if opts.OnProgress != nil {
				opts.OnProgress(p)
			}
			mu.Unlock()
		}(item)
	}
	wg.Wait()

	report.Skipped = report.Total - scheduled
	if report.Canceled {
		log.Warn("bulk operation canceled", "operation", opts.Operation, "skipped", report.Skipped)
	}
	log.Info("bulk operation finished",
		"operation", opts.Operation,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report
}
