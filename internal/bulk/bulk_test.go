package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("file%d.xlsx", i)
	}
	return out
}

func identity(s string) string { return s }

func TestRun_CountsFailuresWithoutAborting(t *testing.T) {
	items := names(5)
	var progress []Progress
	report := Run(context.Background(), Options{
		Operation:  "purge",
		OnProgress: func(p Progress) { progress = append(progress, p) },
	}, items, identity, func(ctx context.Context, item string) (int64, error) {
		if item == "file1.xlsx" || item == "file3.xlsx" {
			return 0, errors.New("permission denied")
		}
		return 10, nil
	})

	if report.Succeeded != 3 || report.Failed != 2 || report.Skipped != 0 {
		t.Fatalf("report = %+v", report)
	}
	if report.Bytes != 30 {
		t.Errorf("bytes = %d", report.Bytes)
	}
	if _, ok := report.Failures["file3.xlsx"]; !ok {
		t.Errorf("failures = %v", report.Failures)
	}
	if len(progress) != 5 || progress[4].Done != 5 || progress[4].Total != 5 {
		t.Errorf("progress = %+v", progress)
	}

	err := report.Err()
	if !apperrors.IsPartialFailure(err) {
		t.Fatalf("Err() = %v", err)
	}
	if !strings.Contains(err.Error(), "3 succeeded, 2 failed") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestRun_RespectsConcurrency(t *testing.T) {
	var inFlight, peak int32
	Run(context.Background(), Options{Concurrency: 2}, names(10), identity,
		func(ctx context.Context, item string) (int64, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return 0, nil
		})
	if peak > 2 {
		t.Errorf("peak concurrency %d exceeds 2", peak)
	}
}

func TestRun_ItemTimeout(t *testing.T) {
	report := Run(context.Background(), Options{ItemTimeout: 10 * time.Millisecond}, names(1), identity,
		func(ctx context.Context, item string) (int64, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
	if report.Failed != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRun_CancelStopsScheduling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var started int32
	report := Run(ctx, Options{Concurrency: 1}, names(10), identity,
		func(itemCtx context.Context, item string) (int64, error) {
			if atomic.AddInt32(&started, 1) == 2 {
				cancel()
			}
			return 1, nil
		})

	if !report.Canceled {
		t.Fatal("expected canceled report")
	}
	if report.Succeeded+report.Failed+report.Skipped != 10 {
		t.Errorf("report does not account for every item: %+v", report)
	}
	if report.Skipped == 0 {
		t.Errorf("expected skipped items: %+v", report)
	}
	if !apperrors.IsPartialFailure(report.Err()) {
		t.Error("a canceled run should report partial failure")
	}
}

func TestReport_ErrNilOnSuccess(t *testing.T) {
	report := Run(context.Background(), Options{}, names(3), identity,
		func(ctx context.Context, item string) (int64, error) { return 0, nil })
	if err := report.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}
