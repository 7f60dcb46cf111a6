package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trackedEvents  prometheus.Counter
	rejectedEvents *prometheus.CounterVec
)

func initEvents() {
	trackedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "ingest",
		Name:      "tracked",
	})
	rejectedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "ingest",
		Name:      "rejected",
	}, []string{"code"})
}

func TrackedEvent() {
	if Enabled {
		trackedEvents.Inc()
	}
}

func RejectedEvent(code string) {
	if Enabled {
		rejectedEvents.WithLabelValues(code).Inc()
	}
}
