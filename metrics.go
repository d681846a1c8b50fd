package elevationprofile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevationprofile_backend_requests_total",
		Help: "The total number of elevation backend requests",
	})
	backendRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevationprofile_backend_request_errors_total",
		Help: "The total number of failed elevation backend requests",
	})
	backendCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevationprofile_backend_cache_misses_total",
		Help: "The total number of misses on the backend response cache",
	})
	chunksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elevationprofile_chunks_total",
		Help: "The total number of chunks processed",
	}, []string{"within_bounds"})
	chunkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevationprofile_chunk_failures_total",
		Help: "The total number of chunks dropped from profiles",
	})
)
