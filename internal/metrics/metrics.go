// Package metrics holds the Prometheus collectors of the data layer.
// There is no HTTP endpoint: the launcher writes them to a textfile at exit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_pos_loads_total",
		Help: "Collection loads by the tier they were served from",
	}, []string{"kind", "source"})

	SavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_pos_saves_total",
		Help: "Collection saves by outcome (consistent, store_failed, spreadsheet_failed, aborted)",
	}, []string{"kind", "outcome"})

	SaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop_pos_save_duration_seconds",
		Help:    "Duration of a full collection save",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	CheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_pos_checkouts_total",
		Help: "Completed checkouts",
	})

	CheckoutLineErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_pos_checkout_line_errors_total",
		Help: "Cart lines whose product stock could not be decremented",
	})
)

// WriteTextfile writes every registered metric to path in the text exposition format
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
