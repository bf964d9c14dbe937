// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline and the training endpoints.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GamesImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backranq",
		Name:      "games_imported_total",
		Help:      "Games imported for analysis.",
	})

	AnalysisRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backranq",
		Name:      "analysis_runs_total",
		Help:      "Extraction runs by outcome.",
	}, []string{"status"})

	PuzzlesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backranq",
		Name:      "puzzles_extracted_total",
		Help:      "Puzzles produced by extraction runs.",
	})

	AttemptsGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backranq",
		Name:      "attempts_graded_total",
		Help:      "Puzzle attempts graded, by result.",
	}, []string{"result"})

	EvalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "backranq",
		Name:      "eval_duration_seconds",
		Help:      "Wall time of one engine evaluation.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "backranq",
		Name:      "analysis_duration_seconds",
		Help:      "Wall time of one full game analysis.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
