package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wricardo/mcp-training/smartmario/game/engine"
)

var (
	// sessionsCreated counts sessions by level id
	sessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartmario_sessions_created_total",
		Help: "Total sessions created by level",
	}, []string{"config"})

	// movesTotal counts single moves by direction and result
	movesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartmario_moves_total",
		Help: "Total moves by direction and result",
	}, []string{"direction", "result"})

	// roundsFinished counts ended rounds by outcome
	roundsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartmario_rounds_finished_total",
		Help: "Total finished rounds by outcome (victory, timeout)",
	}, []string{"outcome"})

	// roundScoreRatio tracks score / max_mushrooms of won rounds
	roundScoreRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartmario_round_score_ratio",
		Help:    "Collected mushrooms over the achievable maximum for won rounds",
		Buckets: []float64{0, 0.25, 0.5, 0.75, 0.9, 1},
	})

	// solveDuration tracks stateless solver latency
	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartmario_solve_duration_seconds",
		Help:    "Solver duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	})
)

func moveResult(success bool) string {
	if success {
		return "accepted"
	}
	return "rejected"
}

func directionLabel(direction string) string {
	if direction == engine.Right || direction == engine.Down {
		return direction
	}
	return "invalid"
}

func observeRoundEnd(victory, timedOut bool, score, max int) {
	switch {
	case victory:
		roundsFinished.WithLabelValues("victory").Inc()
		if max > 0 {
			roundScoreRatio.Observe(float64(score) / float64(max))
		} else {
			roundScoreRatio.Observe(1)
		}
	case timedOut:
		roundsFinished.WithLabelValues("timeout").Inc()
	}
}
