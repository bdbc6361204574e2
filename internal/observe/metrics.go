// Package observe provides the observability primitives of soundkit:
// OpenTelemetry metrics for the voice pool and slog logger construction.
//
// Metrics are recorded through the OpenTelemetry Metrics API. Without a
// configured MeterProvider the global no-op provider is used, so recording is
// free. Tests should use NewMetrics with an sdk ManualReader.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all soundkit metrics.
const meterName = "github.com/llehouerou/soundkit"

// Play statuses.
const (
	PlayStarted = "started"
	PlayDropped = "dropped"
)

// Metrics holds the metric instruments of the voice pool.
type Metrics struct {
	// Plays counts play requests. Use with attribute status (started, dropped).
	Plays metric.Int64Counter

	// PlayEnds counts finished plays. Use with attribute reason.
	PlayEnds metric.Int64Counter

	// VoicesCreated counts voices allocated by the pool.
	VoicesCreated metric.Int64Counter

	// BusyVoices tracks the number of voices currently playing.
	BusyVoices metric.Int64UpDownCounter

	// Fades counts started fades. Use with attribute kind.
	Fades metric.Int64Counter
}

// NewMetrics creates the instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Plays, err = m.Int64Counter("soundkit.plays",
		metric.WithDescription("Play requests by status."),
	); err != nil {
		return nil, err
	}
	if met.PlayEnds, err = m.Int64Counter("soundkit.play_ends",
		metric.WithDescription("Finished plays by end reason."),
	); err != nil {
		return nil, err
	}
	if met.VoicesCreated, err = m.Int64Counter("soundkit.voices.created",
		metric.WithDescription("Voices allocated by the pool."),
	); err != nil {
		return nil, err
	}
	if met.BusyVoices, err = m.Int64UpDownCounter("soundkit.voices.busy",
		metric.WithDescription("Voices currently bound to a play."),
	); err != nil {
		return nil, err
	}
	if met.Fades, err = m.Int64Counter("soundkit.fades",
		metric.WithDescription("Started fades by kind."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a package-level Metrics built on the global
// MeterProvider. It panics if instrument creation fails, which does not
// happen with the global provider.
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

// RecordPlay counts a play request with the given status.
func (m *Metrics) RecordPlay(ctx context.Context, status string) {
	m.Plays.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordPlayEnd counts a finished play.
func (m *Metrics) RecordPlayEnd(ctx context.Context, reason string) {
	m.PlayEnds.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordVoiceCreated counts a newly allocated voice.
func (m *Metrics) RecordVoiceCreated(ctx context.Context) {
	m.VoicesCreated.Add(ctx, 1)
}

// RecordFade counts a started fade of the given kind.
func (m *Metrics) RecordFade(ctx context.Context, kind string) {
	m.Fades.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordBusy adjusts the busy voice gauge by delta.
func (m *Metrics) RecordBusy(ctx context.Context, delta int64) {
	m.BusyVoices.Add(ctx, delta)
}
