package skiplist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks engine-level operation counts using the usual
// promauto.NewCounterVec/NewCounter idiom; counters are package-level and
// shared across every engine instance in the process.
var (
	insertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skiplist_inserts_total",
		Help: "Total number of Engine.Insert calls by outcome.",
	}, []string{"outcome"}) // inserted | duplicate_rejected

	removesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skiplist_removes_total",
		Help: "Total number of nodes removed from skip-list engines.",
	})

	searchStepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skiplist_search_steps_total",
		Help: "Total number of lane-advance steps taken across all search-core calls.",
	})
)
