package viewport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCommits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gridport",
		Name:      "render_context_commits_total",
		Help:      "Render context commits applied and propagated.",
	})
	metricSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gridport",
		Name:      "render_context_suppressed_total",
		Help:      "Candidate windows discarded by the update gate.",
	})
	metricScrollIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gridport",
		Name:      "scroll_events_ignored_total",
		Help:      "Scroll events skipped by the overscroll/direction guard.",
	})
	metricRenderedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridport",
		Name:      "rendered_rows",
		Help:      "Rows in the current rendered set.",
	})
)
