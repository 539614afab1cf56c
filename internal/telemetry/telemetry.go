// Package telemetry provides OpenTelemetry instrumentation for the quiz
// backend. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "adsp-quiz-back"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Classification engine metrics
	RunsTotal              *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	RankingDuration        prometheus.Histogram
	CategoriesScored       prometheus.Counter
	CandidateCount         prometheus.Histogram
	LowConfidenceRuns      prometheus.Counter

	// Review workflow metrics
	ReviewsTotal *prometheus.CounterVec

	// Quiz generation metrics
	QuizGenerationsTotal   *prometheus.CounterVec
	QuizGenerationDuration prometheus.Histogram

	// Transcript metrics
	TranscriptFetchesTotal *prometheus.CounterVec
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initClassificationMetrics(m)
	initReviewMetrics(m)
	initQuizMetrics(m)
	initTranscriptMetrics(m)
	return m
}

func initClassificationMetrics(m *Metrics) {
	m.RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_classification_runs_total",
		Help: "Classification runs by resulting status (pending, applied, failed)",
	}, []string{"status"})

	m.ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiz_classification_duration_seconds",
		Help:    "End-to-end time of one classification request",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	})

	m.RankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiz_ranking_duration_seconds",
		Help:    "Time spent scoring and ranking the taxonomy",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.CategoriesScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_categories_scored_total",
		Help: "Total category scoring evaluations",
	})

	m.CandidateCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiz_candidate_count",
		Help:    "Number of candidates produced per run",
		Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
	})

	m.LowConfidenceRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_low_confidence_runs_total",
		Help: "Runs whose top confidence fell below the warning floor",
	})
}

func initReviewMetrics(m *Metrics) {
	m.ReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_reviews_total",
		Help: "Review decisions by action (approve, override, reject)",
	}, []string{"action"})
}

func initQuizMetrics(m *Metrics) {
	m.QuizGenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_generations_total",
		Help: "Quiz generations by outcome (created, cached, overloaded, failed)",
	}, []string{"outcome"})

	m.QuizGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiz_generation_duration_seconds",
		Help:    "Time to generate one quiz via the LLM",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})
}

func initTranscriptMetrics(m *Metrics) {
	m.TranscriptFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_transcript_fetches_total",
		Help: "YouTube transcript fetches by outcome (ok, invalid_url, unavailable)",
	}, []string{"outcome"})
}

// RecordRun records the outcome and duration of one classification run.
func (p *Provider) RecordRun(ctx context.Context, status string, duration time.Duration) {
	p.Metrics.RunsTotal.WithLabelValues(status).Inc()
	p.Metrics.ClassificationDuration.Observe(duration.Seconds())
}

// RecordRanking records ranking metrics for one taxonomy scan.
func (p *Provider) RecordRanking(ctx context.Context, duration time.Duration, categoriesScored, candidates int) {
	p.Metrics.RankingDuration.Observe(duration.Seconds())
	p.Metrics.CategoriesScored.Add(float64(categoriesScored))
	p.Metrics.CandidateCount.Observe(float64(candidates))
}

// RecordLowConfidence counts a run below the confidence warning floor.
func (p *Provider) RecordLowConfidence(ctx context.Context) {
	p.Metrics.LowConfidenceRuns.Inc()
}

// RecordReview records a review decision.
func (p *Provider) RecordReview(ctx context.Context, action string) {
	p.Metrics.ReviewsTotal.WithLabelValues(action).Inc()
}

// RecordQuizGeneration records one quiz generation attempt.
func (p *Provider) RecordQuizGeneration(ctx context.Context, outcome string, duration time.Duration) {
	p.Metrics.QuizGenerationsTotal.WithLabelValues(outcome).Inc()
	p.Metrics.QuizGenerationDuration.Observe(duration.Seconds())
}

// RecordTranscriptFetch records one transcript fetch attempt.
func (p *Provider) RecordTranscriptFetch(ctx context.Context, outcome string) {
	p.Metrics.TranscriptFetchesTotal.WithLabelValues(outcome).Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
