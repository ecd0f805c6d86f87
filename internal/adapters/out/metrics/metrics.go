// Package metrics exposes Prometheus metrics of the fleet kernel.
package metrics

import (
	"context"
	"net/http"
	"time"

	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fleetkernel"

// Metrics owns a private registry so tests and the process never share collectors.
type Metrics struct {
	registry *prometheus.Registry

	transfers     *prometheus.CounterVec
	objectEvents  *prometheus.CounterVec
	flushDuration *prometheus.HistogramVec
	relayedEvents *prometheus.CounterVec
}

var (
	_ commands.TransferRecorder    = (*Metrics)(nil)
	_ ports.ObjectEventSubscriber = (*Metrics)(nil)
)

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bin_transfers_total",
				Help:      "Bin transfers between vehicles and locations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		objectEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "object_events_total",
				Help:      "Object events published by the pool by object kind",
			},
			[]string{"kind", "type"},
		),
		flushDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "persistence_flush_duration_seconds",
				Help:      "Duration of pool snapshot flushes to the database",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"status"},
		),
		relayedEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relayed_object_events_total",
				Help:      "Object events handed to the message broker by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(m.transfers, m.objectEvents, m.flushDuration, m.relayedEvents)
	return m
}

func (m *Metrics) RecordTransfer(operation string, outcome commands.TransferOutcome) {
	m.transfers.WithLabelValues(operation, string(outcome)).Inc()
}

// OnObjectEvent counts every committed event. It never fails.
func (m *Metrics) OnObjectEvent(_ context.Context, event ports.ObjectEvent) error {
	m.objectEvents.WithLabelValues(event.Ref().Kind().String(), string(event.Type)).Inc()
	return nil
}

func (m *Metrics) ObserveFlush(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.flushDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *Metrics) RecordRelay(outcome string) {
	m.relayedEvents.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
