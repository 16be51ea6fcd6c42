package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToggleTotal 切换结果，result 为 active 或 inactive
	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_toggle_total",
			Help: "Total number of relation toggles by kind and resulting state",
		},
		[]string{"kind", "result"},
	)

	ToggleDuplicateConversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_toggle_duplicate_conversions_total",
			Help: "Toggles whose create lost a race on the unique index and became a delete",
		},
		[]string{"kind"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_aggregation_query_duration_seconds",
			Help:    "Duration of aggregation queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_aggregation_query_errors_total",
			Help: "Total number of failed aggregation queries",
		},
		[]string{"query"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_events_published_total",
			Help: "Engagement events handed to the broker by exchange and result",
		},
		[]string{"exchange", "result"},
	)

	NotificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_notifications_delivered_total",
			Help: "Notifications written to user inboxes by type",
		},
		[]string{"type"},
	)
)

func RecordToggle(kind string, active bool) {
	result := "inactive"
	if active {
		result = "active"
	}
	ToggleTotal.WithLabelValues(kind, result).Inc()
}

// ObserveQuery 记录聚合查询耗时，err 非空时同时计数
func ObserveQuery(query string, start time.Time, err error) {
	QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(query).Inc()
	}
}

func RecordPublish(exchange string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(exchange, result).Inc()
}
