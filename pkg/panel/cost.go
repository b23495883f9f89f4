package panel

import (
	"math"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/search"
)

// DefaultBlocked lists panels that crash or soft-lock the game when entered.
var DefaultBlocked = []int32{-1025, -1317, -1353, -1381, -1383, -1400, -1409, -1424}

// CostPolicy prices moves by how hard they are to input in real time.
type CostPolicy struct {
	Straight float64 `toml:"straight" json:"straight"`
	Diagonal float64 `toml:"diagonal" json:"diagonal"`
	Other    float64 `toml:"other" json:"other"`
	Blocked  []int32 `toml:"blocked" json:"blocked"`
}

// DefaultCostPolicy returns the real-time policy.
func DefaultCostPolicy() CostPolicy {
	return CostPolicy{
		Straight: 1.0,
		Diagonal: 1.1,
		Other:    1.2,
		Blocked:  append([]int32(nil), DefaultBlocked...),
	}
}

// Validate rejects negative or NaN prices. Infinite prices are allowed and
// forbid the corresponding moves.
func (p CostPolicy) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{{"straight", p.Straight}, {"diagonal", p.Diagonal}, {"other", p.Other}} {
		if math.IsNaN(c.value) || c.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s cost must be a non-negative number, got %v", c.name, c.value)
		}
	}
	return nil
}

// Price returns the cost of a move with the given inputs. A move that can
// be played straight costs Straight even if it could also be played some
// harder way.
func (p CostPolicy) Price(dirs Directions) float64 {
	switch {
	case dirs.HasStraight():
		return p.Straight
	case dirs.HasDiagonal():
		return p.Diagonal
	default:
		return p.Other
	}
}

// Func returns the cost function for searches over a panel [Graph].
// Moves into a blocked panel cost +Inf.
func (p CostPolicy) Func() search.CostFunc[int32, Directions, float64] {
	blocked := make(map[int32]struct{}, len(p.Blocked))
	for _, b := range p.Blocked {
		blocked[b] = struct{}{}
	}
	return func(e search.Edge[int32, Directions]) float64 {
		if _, ok := blocked[e.To]; ok {
			return math.Inf(1)
		}
		return p.Price(e.Label)
	}
}
