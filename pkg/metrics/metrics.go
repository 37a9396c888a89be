// Package metrics holds the prometheus collectors shared by the browsing
// core and the binaries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	KindList   = "list"
	KindDetail = "detail"
)

var (
	Fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskjewelry_fetches_total",
		Help: "The total number of dispatched catalog fetches",
	}, []string{"kind"})
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskjewelry_fetch_errors_total",
		Help: "The total number of catalog fetches that failed and were applied",
	}, []string{"kind"})
	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskjewelry_stale_responses_total",
		Help: "Responses dropped because a newer request superseded them",
	})
	APIRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slaskjewelry_api_request_seconds",
		Help:    "Latency of product API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	TrackingErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskjewelry_tracking_errors_total",
		Help: "Search events that could not be published",
	})
)
