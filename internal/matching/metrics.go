package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_likes_total",
			Help: "Total number of like operations",
		},
		[]string{"action"},
	)

	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_responses_total",
			Help: "Total number of confirm/reject responses",
		},
		[]string{"decision"},
	)

	matchesConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_confirmed_total",
			Help: "Total number of matches reaching the accepted state",
		},
	)

	similarityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_similarity_scores",
			Help:    "Distribution of computed similarity scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	recommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matching_recommendation_duration_seconds",
			Help: "Time spent building a recommendation response",
		},
	)

	candidateCacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_candidate_cache_reads_total",
			Help: "Candidate cache reads by result",
		},
		[]string{"result"},
	)
)

func recordLike(action string) {
	likesTotal.WithLabelValues(action).Inc()
}

func recordResponse(decision Status) {
	responsesTotal.WithLabelValues(string(decision)).Inc()
}

func recordConfirmedMatch() {
	matchesConfirmedTotal.Inc()
}

func recordSimilarityScore(score float64) {
	similarityScores.Observe(score)
}

func recordRecommendationDuration(d time.Duration) {
	recommendationDuration.Observe(d.Seconds())
}

func recordCacheRead(result string) {
	candidateCacheReads.WithLabelValues(result).Inc()
}
