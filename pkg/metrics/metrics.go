package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MutationsTotal counts board mutations by operation name, labeled with
	// the tagged outcome ("OK", "Forbidden", "NotFound", ...).
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskflow",
		Name:      "board_mutations_total",
		Help:      "Board mutation operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// NotificationsCreated counts newly inserted notification rows.
	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Name:      "notifications_created_total",
		Help:      "Notification rows inserted.",
	})

	// NotificationsAggregated counts notifications merged into an existing
	// unread row inside the aggregation window.
	NotificationsAggregated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Name:      "notifications_aggregated_total",
		Help:      "Notifications merged into an existing unread row.",
	})

	// ProjectInvalidations counts cache/view invalidation signals emitted
	// after a completed mutation.
	ProjectInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "taskflow",
		Name:      "project_view_invalidations_total",
		Help:      "Project view invalidation signals.",
	})
)
