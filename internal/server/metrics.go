package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the converter's Prometheus collectors. Constructed against
// an injected registerer so tests can use isolated registries.
type Metrics struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	uploadBytes prometheus.Histogram
}

// NewMetrics constructs and registers the conversion metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docx2jats",
			Name:      "conversions_total",
			Help:      "Conversion requests by direction and result",
		}, []string{"direction", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docx2jats",
			Name:      "conversion_duration_seconds",
			Help:      "End-to-end conversion duration including pandoc",
			Buckets:   prometheus.DefBuckets,
		}, []string{"direction"}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docx2jats",
			Name:      "upload_size_bytes",
			Help:      "Uploaded document sizes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}

	reg.MustRegister(m.conversions, m.duration, m.uploadBytes)
	return m
}

// observeConversion records one conversion outcome.
func (m *Metrics) observeConversion(direction, result string, seconds float64) {
	m.conversions.WithLabelValues(direction, result).Inc()
	m.duration.WithLabelValues(direction).Observe(seconds)
}

// observeUpload records an uploaded document's size.
func (m *Metrics) observeUpload(bytes int64) {
	m.uploadBytes.Observe(float64(bytes))
}
