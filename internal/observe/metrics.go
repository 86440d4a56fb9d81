// Package observe provides application-wide observability primitives for
// Clarion: OpenTelemetry metrics, tracing helpers, and HTTP middleware
// that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Clarion metrics.
const meterName = "github.com/clarionvoice/clarion"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// ExtractionDuration tracks audio feature extraction latency.
	ExtractionDuration metric.Float64Histogram

	// ScoringDuration tracks per-utterance scoring latency.
	ScoringDuration metric.Float64Histogram

	// AnalysisDuration tracks transcript alignment latency.
	AnalysisDuration metric.Float64Histogram

	// --- Counters ---

	// UtterancesScored counts scored utterances. Use with attributes:
	//   attribute.String("category", ...), attribute.String("round", ...)
	UtterancesScored metric.Int64Counter

	// SessionsCompleted counts finalized sessions. Use with attributes:
	//   attribute.String("confidence", ...), attribute.Int("level_tier", ...)
	SessionsCompleted metric.Int64Counter

	// QualityRejections counts recordings rejected by the quality gate.
	// Use with attribute: attribute.String("reason", ...)
	QualityRejections metric.Int64Counter

	// --- Gauges ---

	// ActiveAssessments tracks the number of in-flight assessments.
	ActiveAssessments metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("route", ...),
	//   attribute.Int("status", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) for the
// scoring pipeline, which runs well under a second per utterance.
var latencyBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.ExtractionDuration, err = m.Float64Histogram("clarion.extraction.duration",
		metric.WithDescription("Latency of audio feature extraction."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ScoringDuration, err = m.Float64Histogram("clarion.scoring.duration",
		metric.WithDescription("Latency of per-utterance scoring."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.AnalysisDuration, err = m.Float64Histogram("clarion.analysis.duration",
		metric.WithDescription("Latency of transcript alignment."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.UtterancesScored, err = m.Int64Counter("clarion.utterances.scored",
		metric.WithDescription("Total scored utterances by category and round."),
	); err != nil {
		return nil, err
	}
	if met.SessionsCompleted, err = m.Int64Counter("clarion.sessions.completed",
		metric.WithDescription("Total finalized sessions by confidence and level tier."),
	); err != nil {
		return nil, err
	}
	if met.QualityRejections, err = m.Int64Counter("clarion.quality.rejections",
		metric.WithDescription("Total recordings rejected by the quality gate, by reason."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveAssessments, err = m.Int64UpDownCounter("clarion.active_assessments",
		metric.WithDescription("Number of in-flight assessments."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("clarion.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route, and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordUtteranceScored records a scored-utterance counter increment with
// the standard attribute set.
func (m *Metrics) RecordUtteranceScored(ctx context.Context, category, round string) {
	m.UtterancesScored.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("category", category),
			attribute.String("round", round),
		),
	)
}

// RecordSessionCompleted records a finalized-session counter increment.
func (m *Metrics) RecordSessionCompleted(ctx context.Context, confidence string, levelTier int) {
	m.SessionsCompleted.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("confidence", confidence),
			attribute.Int("level_tier", levelTier),
		),
	)
}

// RecordQualityRejection records a quality-gate rejection counter increment.
func (m *Metrics) RecordQualityRejection(ctx context.Context, reason string) {
	m.QualityRejections.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}
