package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueryDuration misst Daten- und Count-Abfragen je Datenset.
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bidfinder_query_duration_seconds",
			Help:    "Duration of dataset queries.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset", "kind"},
	)

	// QueryErrors zählt fehlgeschlagene Abfragen.
	QueryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bidfinder_query_errors_total",
			Help: "Total number of failed dataset queries.",
		},
		[]string{"dataset"},
	)

	// LoaderRuns zählt Loader-Läufe nach Ergebnis.
	LoaderRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bidfinder_loader_runs_total",
			Help: "Total number of loader runs by status.",
		},
		[]string{"status"},
	)

	// LoadedRows hält die Zeilenzahl je Tabelle nach dem letzten erfolgreichen Lauf.
	LoadedRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bidfinder_loaded_rows",
			Help: "Row count per table after the last successful load.",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(QueryDuration, QueryErrors, LoaderRuns, LoadedRows)
}

// ObserveQuery erfasst die Dauer einer Abfrage seit start.
func ObserveQuery(dataset, kind string, start time.Time) {
	QueryDuration.WithLabelValues(dataset, kind).Observe(time.Since(start).Seconds())
}
