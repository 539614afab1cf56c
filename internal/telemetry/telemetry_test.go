package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordRun(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordRun(ctx, "applied", 100*time.Millisecond)
	provider.RecordRun(ctx, "pending", 50*time.Millisecond)
	provider.RecordRun(ctx, "failed", 10*time.Millisecond)
}

func TestRecordRanking(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordRanking(ctx, 5*time.Millisecond, 25, 3)
}

func TestRecordQuizGeneration(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordQuizGeneration(ctx, "created", 2*time.Second)
	provider.RecordQuizGeneration(ctx, "cached", 0)
	provider.RecordReview(ctx, "approve")
	provider.RecordTranscriptFetch(ctx, "ok")
}
