package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	ActionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "actiongate_actions_total",
			Help: "Actions submitted for evaluation, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	VerdictsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "actiongate_verdicts_total",
			Help: "Risk verdicts produced by the analyzer",
		},
		[]string{"severity", "threat"},
	)

	RegistryMutationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "actiongate_registry_mutations_total",
			Help: "Block registry mutations, by operation and result",
		},
		[]string{"operation", "result"},
	)

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "actiongate_http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	NotifierFailuresTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "actiongate_notifier_failures_total",
			Help: "Notifications that could not be delivered",
		},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
