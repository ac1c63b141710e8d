package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "textvec"

// Computation Prometheus metrics.
var (
	VectorizeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vectorize_requests_total",
			Help:      "Total number of vectorization computations",
		},
		[]string{"operation", "status"},
	)

	VectorizeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vectorize_duration_seconds",
			Help:      "Vectorization computation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	VocabularySize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vocabulary_size",
			Help:      "Number of vocabulary terms selected per computation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"operation"},
	)

	AnnotateRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotate_requests_total",
			Help:      "Total number of annotation requests",
		},
		[]string{"operation", "status"},
	)

	ResultCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers all textvec collectors on the default registry. Must be called from main.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			VectorizeRequestsTotal,
			VectorizeDuration,
			VocabularySize,
			AnnotateRequestsTotal,
			ResultCacheTotal,
		)
	})
}

// ObserveVectorize records one vectorization computation.
// vocabulary is ignored on error.
func ObserveVectorize(operation string, start time.Time, vocabulary int, err error) {
	VectorizeRequestsTotal.WithLabelValues(operation, status(err)).Inc()
	if err != nil {
		return
	}
	VectorizeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	VocabularySize.WithLabelValues(operation).Observe(float64(vocabulary))
}

// ObserveAnnotate records one annotation request.
func ObserveAnnotate(operation string, err error) {
	AnnotateRequestsTotal.WithLabelValues(operation, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
