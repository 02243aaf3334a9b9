// Package metrics provides Prometheus metrics collection for the registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the registry.
type Collector struct {
	// Render metrics
	RendersTotal   *prometheus.CounterVec
	RenderFailures *prometheus.CounterVec

	// Validation metrics
	ValidationsTotal   prometheus.Counter
	ValidationFindings *prometheus.CounterVec

	// Registry metrics
	ModulesRegistered prometheus.Counter
	DownloadsTotal    *prometheus.CounterVec
}

// New creates a collector registered on the default registry.
func New() *Collector {
	return newCollector(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry creates a collector registered on a caller-owned registry
// (used in tests to avoid duplicate registration).
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	return newCollector(promauto.With(reg))
}

func newCollector(factory promauto.Factory) *Collector {
	return &Collector{
		RendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "terramod",
				Name:      "renders_total",
				Help:      "Total number of successful template renders",
			},
			[]string{"module", "provider"},
		),
		RenderFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "terramod",
				Name:      "render_failures_total",
				Help:      "Total number of failed template renders",
			},
			[]string{"module", "reason"},
		),
		ValidationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "terramod",
				Name:      "validations_total",
				Help:      "Total number of validation passes",
			},
		),
		ValidationFindings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "terramod",
				Name:      "validation_findings_total",
				Help:      "Validation findings by severity",
			},
			[]string{"severity"},
		),
		ModulesRegistered: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "terramod",
				Name:      "modules_registered_total",
				Help:      "Total number of modules registered",
			},
		),
		DownloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "terramod",
				Name:      "downloads_total",
				Help:      "Template downloads (successful generates) per module",
			},
			[]string{"module"},
		),
	}
}
