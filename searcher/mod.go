package searcher

import (
	"errors"
	"math"
)

// Bounds of the alpha-beta window; wider than any evaluation.
const (
	negInf = math.MinInt + 1
	posInf = math.MaxInt
)

// errSearchTimeout aborts the depth in progress. It never leaves Search.
var errSearchTimeout = errors.New("search deadline exceeded")
