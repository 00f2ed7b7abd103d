package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_predict_requests_total",
			Help: "Total number of prediction requests by response status",
		},
		[]string{"status"},
	)

	// Inference metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_predict_predictions_total",
			Help: "Total number of successful predictions by churn label",
		},
		[]string{"label"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_predict_errors_total",
			Help: "Total number of failed predictions by error kind",
		},
		[]string{"kind"},
	)

	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churn_predict_inference_duration_seconds",
			Help:    "Duration of model inference in seconds",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	Probability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churn_predict_probability",
			Help:    "Distribution of predicted churn probabilities",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "churn_predict_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
