package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NodeBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowstudio_node_builds_total",
			Help: "Editor node builds by kind and result",
		},
		[]string{"kind", "result"},
	)
	KindCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowstudio_kind_cache_lookups_total",
			Help: "Node kind catalog cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
	ClassificationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowstudio_classification_events_total",
			Help: "Start-node classification events by outcome (published, failed)",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(NodeBuilds, KindCacheLookups, ClassificationEvents)
}

// Result labels a counter with "ok" or "error".
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
