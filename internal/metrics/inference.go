package metrics

import "github.com/prometheus/client_golang/prometheus"

// Schema inference Prometheus metrics.
var (
	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fieldprobe",
			Name:      "inference_duration_seconds",
			Help:      "Schema inference duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"collection"},
	)

	InferenceSamplesFetched = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fieldprobe",
			Name:      "inference_samples_fetched",
			Help:      "Records fetched per inference run",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000},
		},
		[]string{"collection"},
	)

	InferenceFieldsInferred = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fieldprobe",
			Name:      "inference_fields_inferred",
			Help:      "Schema fields emitted per inference run",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"collection"},
	)

	InferenceTypeConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldprobe",
			Name:      "inference_type_conflicts_total",
			Help:      "Sampled values that disagreed with the field type outside the upgrade pairs",
		},
		[]string{"collection"},
	)

	DescribeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldprobe",
			Name:      "describe_requests_total",
			Help:      "Total number of description generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	DescribeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fieldprobe",
			Name:      "describe_request_duration_seconds",
			Help:      "Description generation request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)
)

var inferenceMetricsRegistered bool

// RegisterInferenceMetrics registers Prometheus inference metrics. Must be called once from main.
func RegisterInferenceMetrics() {
	if inferenceMetricsRegistered {
		return
	}
	prometheus.MustRegister(InferenceDuration)
	prometheus.MustRegister(InferenceSamplesFetched)
	prometheus.MustRegister(InferenceFieldsInferred)
	prometheus.MustRegister(InferenceTypeConflictsTotal)
	prometheus.MustRegister(DescribeRequestsTotal)
	prometheus.MustRegister(DescribeRequestDuration)
	inferenceMetricsRegistered = true
}
