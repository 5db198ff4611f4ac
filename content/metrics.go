package content

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inkpost",
		Subsystem: "content",
		Name:      "posts_loaded_total",
		Help:      "Posts successfully loaded by listing queries.",
	})

	postsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkpost",
		Subsystem: "content",
		Name:      "posts_dropped_total",
		Help:      "Posts left out of listings, by reason.",
	}, []string{"reason"})
)
