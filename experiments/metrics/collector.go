package metrics

import (
	"time"

	"onitama/game"
	"onitama/searcher"

	"github.com/prometheus/client_golang/prometheus"
)

// MoveMetric describes one ply of a match.
type MoveMetric struct {
	Step     int
	Player   game.Player
	Agent    string
	Move     game.Move
	Card     string
	Passed   bool          // No legal move; the turn was passed
	Think    time.Duration // Wall-clock time spent in Choose
	Searched bool          // Search holds metrics from a searching agent
	Search   searcher.SearchMetrics
}

// GameMetric describes a finished (or abandoned) match.
type GameMetric struct {
	ID             string
	Seed           uint64
	Blue           string // Agent names
	Red            string
	StartingPlayer game.Player
	Winner         string // "blue", "red" or "" without a winner
	Reason         string
	TotalMoves     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

type Collector interface {
	ObserveMove(m MoveMetric)
	ObserveGame(g GameMetric)
}

// prometheusCollector exports match statistics as Prometheus metrics.
type prometheusCollector struct {
	moves       *prometheus.CounterVec
	passes      *prometheus.CounterVec
	think       *prometheus.HistogramVec
	searchNodes *prometheus.CounterVec
	searchDepth *prometheus.HistogramVec
	games       *prometheus.CounterVec
}

// NewPrometheusCollector registers the match metrics with reg.
func NewPrometheusCollector(reg prometheus.Registerer) Collector {
	c := &prometheusCollector{
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onitama",
			Name:      "moves_total",
			Help:      "Moves played, by agent and side.",
		}, []string{"agent", "player"}),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onitama",
			Name:      "passes_total",
			Help:      "Turns passed for lack of a legal move.",
		}, []string{"player"}),
		think: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "onitama",
			Name:      "think_seconds",
			Help:      "Time an agent took to choose a move.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"agent"}),
		searchNodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onitama",
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Nodes expanded by searching agents.",
		}, []string{"agent"}),
		searchDepth: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "onitama",
			Subsystem: "search",
			Name:      "depth",
			Help:      "Deepest completed search depth per move.",
			Buckets:   prometheus.LinearBuckets(0, 1, 12),
		}, []string{"agent"}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onitama",
			Name:      "games_total",
			Help:      "Finished matches by winner and reason.",
		}, []string{"winner", "reason"}),
	}
	reg.MustRegister(c.moves, c.passes, c.think, c.searchNodes, c.searchDepth, c.games)
	return c
}

func (c *prometheusCollector) ObserveMove(m MoveMetric) {
	if m.Passed {
		c.passes.WithLabelValues(m.Player.String()).Inc()
		return
	}
	c.moves.WithLabelValues(m.Agent, m.Player.String()).Inc()
	c.think.WithLabelValues(m.Agent).Observe(m.Think.Seconds())
	if m.Searched {
		c.searchNodes.WithLabelValues(m.Agent).Add(float64(m.Search.Nodes))
		c.searchDepth.WithLabelValues(m.Agent).Observe(float64(m.Search.Depth))
	}
}

func (c *prometheusCollector) ObserveGame(g GameMetric) {
	winner := g.Winner
	if winner == "" {
		winner = "none"
	}
	c.games.WithLabelValues(winner, g.Reason).Inc()
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) ObserveMove(MoveMetric) {}
func (m *dummyCollector) ObserveGame(GameMetric) {}
