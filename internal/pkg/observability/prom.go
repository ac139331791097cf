package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "componentrybackend"
)

var (
	MediaUploadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "media", "upload_duration_seconds"),
		Help:    "Duration of media host uploads in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"outcome"})
	ComponentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "component", "mutations"),
		Help: "Outcome distribution of component create/update operations",
	}, []string{"operation", "outcome"})
)
