package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LinesCollected counts raw lines handed to the pipeline
	LinesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securiwatch_lines_collected_total",
		Help: "Raw log lines read from the source",
	})

	// EventsParsed counts structured events by category
	EventsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securiwatch_events_parsed_total",
		Help: "Structured events produced, by event type",
	}, []string{"event_type"})

	// LinesDropped counts blank or structurally unparsable lines
	LinesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securiwatch_lines_dropped_total",
		Help: "Lines that did not match the auth log shape",
	})

	// RiskEvents counts events at or above the risk threshold
	RiskEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securiwatch_risk_events_total",
		Help: "Events scoring at or above the risk threshold",
	})

	// ConfigReloads counts successful SIGHUP reloads
	ConfigReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securiwatch_config_reloads_total",
		Help: "Successful configuration reloads",
	})
)

// StartServer exposes /metrics on addr and blocks
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
