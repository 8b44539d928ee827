package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviebot",
		Name:      "http_requests_total",
		Help:      "Total ops HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moviebot",
		Name:      "http_request_duration_seconds",
		Help:      "Ops HTTP request duration in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"method", "path"})

	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviebot",
		Name:      "lookups_total",
		Help:      "Total movie lookups by outcome (found, not_found, source_unavailable).",
	}, []string{"outcome"})

	LookupDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "moviebot",
		Name:      "lookup_duration_seconds",
		Help:      "Full lookup pipeline duration (fetch plus match) in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 40},
	})

	CatalogFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviebot",
		Name:      "catalog_fetches_total",
		Help:      "Catalog fetch attempts by source name and result status.",
	}, []string{"source", "status"})

	CatalogFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moviebot",
		Name:      "catalog_fetch_duration_seconds",
		Help:      "Catalog fetch attempt duration in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"source"})

	DeletionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviebot",
		Name:      "message_deletions_total",
		Help:      "Scheduled result-message deletions by status (deleted, already_gone, failed, skipped).",
	}, []string{"status"})

	MembershipChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviebot",
		Name:      "membership_checks_total",
		Help:      "Channel membership checks by origin (cache, api) and verdict.",
	}, []string{"origin", "verdict"})

	BroadcastMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviebot",
		Name:      "broadcast_messages_total",
		Help:      "Broadcast deliveries by status (sent, blocked, failed).",
	}, []string{"status"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LookupsTotal,
		LookupDuration,
		CatalogFetchesTotal,
		CatalogFetchDuration,
		DeletionsTotal,
		MembershipChecksTotal,
		BroadcastMessagesTotal,
	)
}
