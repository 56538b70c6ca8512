// meta/meta.go
package meta

import "time"

// MaxTurns ends a match without a winner once this many plies were played.
const MaxTurns = 300

// DefaultBudget is the per-move search time of a minimax agent.
const DefaultBudget = 500 * time.Millisecond

// DefaultSeed is used when no seed is configured.
const DefaultSeed = 42
