package kafka

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish outcomes.
const (
	outcomePublished = "published"
	outcomeFailed    = "failed"
)

var (
	publishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_producer_publish_total",
			Help: "Kafka publish attempts by topic and outcome",
		},
		[]string{"topic", "outcome"},
	)

	publishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_producer_publish_duration_seconds",
			Help:    "Duration of Kafka publish operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"topic"},
	)
)

func observePublish(topic string, start time.Time, err error) {
	publishDuration.WithLabelValues(topic).Observe(time.Since(start).Seconds())
	outcome := outcomePublished
	if err != nil {
		outcome = outcomeFailed
	}
	publishTotal.WithLabelValues(topic, outcome).Inc()
}
