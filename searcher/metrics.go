package searcher

import (
	"time"
)

// SearchMetrics summarises one call to Search.
type SearchMetrics struct {
	Duration time.Duration
	Nodes    int64 // Nodes expanded over all depths, aborted ones included
	Depth    int   // Deepest completed depth, 0 when the fallback move was returned
	Score    int   // Root score at Depth from the searching player's perspective
}

// MetricsCollector accumulates statistics for a single search. It is owned by
// the Search call that created it and is not safe for concurrent use.
type MetricsCollector interface {
	Start() time.Time
	AddNode()
	CompleteDepth(depth, score int)
	Complete() SearchMetrics
}

type metricsCollector struct {
	now       func() time.Time
	startTime time.Time
	nodes     int64
	depth     int
	score     int
}

func newMetricsCollector(now func() time.Time) MetricsCollector {
	return &metricsCollector{now: now}
}

func (m *metricsCollector) Start() time.Time {
	m.startTime = m.now()
	return m.startTime
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) CompleteDepth(depth, score int) {
	m.depth = depth
	m.score = score
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		Duration: m.now().Sub(m.startTime),
		Nodes:    m.nodes,
		Depth:    m.depth,
		Score:    m.score,
	}
}
