// Package scoring computes the value-to-broker score of a navigator relative to its peers.
package scoring

import (
	"math"
	"sort"

	"github.com/okian/brokerlens/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultRevenueWeight   = 0.5
	defaultQualityWeight   = 0.3
	defaultGrowthWeight    = 0.2
	defaultHighThreshold   = 70
	defaultMediumThreshold = 40
	// emptyPeersScore is returned when there is nothing to rank against.
	emptyPeersScore = 50
	maxNormValue    = 100

	weightSumTolerance = 1e-9
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights sets the blend weights for the revenue, quality and growth ranks.
// Negative weights or an all-zero set are ignored.
func WithWeights(revenue, quality, growth float64) Option {
	return func(c *Calculator) {
		if revenue < 0 || quality < 0 || growth < 0 || revenue+quality+growth == 0 {
			return
		}
		c.revenueWeight = revenue
		c.qualityWeight = quality
		c.growthWeight = growth
	}
}

// WithTierThresholds sets the minimum scores for the high and medium tiers.
func WithTierThresholds(high, medium int) Option {
	return func(c *Calculator) {
		if medium >= 0 && high > medium {
			c.highThreshold = high
			c.mediumThreshold = medium
		}
	}
}

// RankSet holds the 1-based positions of a navigator among its peers.
type RankSet struct {
	Revenue int `json:"revenue"`
	Score   int `json:"score"`
	Growth  int `json:"growth"`
}

// Calculator blends rank-normalized revenue, quality and growth into a score.
// It holds no state between calls.
type Calculator struct {
	revenueWeight float64
	qualityWeight float64
	growthWeight  float64

	highThreshold   int
	mediumThreshold int
}

// New creates a Calculator with configuration options.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		revenueWeight:   defaultRevenueWeight,
		qualityWeight:   defaultQualityWeight,
		growthWeight:    defaultGrowthWeight,
		highThreshold:   defaultHighThreshold,
		mediumThreshold: defaultMediumThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = New()

// Calculate scores target against peers using the default weights.
func Calculate(target model.Navigator, peers []model.Navigator) model.ValueScore {
	return defaultCalculator.Calculate(target, peers)
}

// Calculate returns the composite value score of target among peers.
//
// Peers are ranked descending by revenue, pilot score and trend growth. Equal
// values keep their order from peers, so the same input always yields the same
// ranks. A target missing from peers takes the worst rank in every dimension;
// an empty peer set yields a mid-tier default.
func (c *Calculator) Calculate(target model.Navigator, peers []model.Navigator) model.ValueScore {
	n := len(peers)
	if n == 0 {
		return c.valueScore(emptyPeersScore)
	}

	ranks := c.Ranks(target, peers)
	// float64 conversions keep the products from being fused, so half-way
	// scores round the same on every architecture.
	blended := float64(c.revenueWeight*normalize(ranks.Revenue, n)) +
		float64(c.qualityWeight*normalize(ranks.Score, n)) +
		float64(c.growthWeight*normalize(ranks.Growth, n))

	// Custom weights need not sum to one.
	if total := c.revenueWeight + c.qualityWeight + c.growthWeight; math.Abs(total-1) > weightSumTolerance {
		blended /= total
	}

	return c.valueScore(int(roundHalfUp(blended)))
}

// Ranks returns the revenue, pilot score and growth ranks of target among peers.
func (c *Calculator) Ranks(target model.Navigator, peers []model.Navigator) RankSet {
	return RankSet{
		Revenue: rankOf(target.ID, peers, func(p model.Navigator) float64 { return p.BrokerRevenueShare }),
		Score:   rankOf(target.ID, peers, func(p model.Navigator) float64 { return p.PilotScore }),
		Growth:  rankOf(target.ID, peers, model.Navigator.Growth),
	}
}

// TierFor maps a score onto its tier.
func (c *Calculator) TierFor(score int) model.Tier {
	switch {
	case score >= c.highThreshold:
		return model.TierHigh
	case score >= c.mediumThreshold:
		return model.TierMedium
	default:
		return model.TierWatch
	}
}

func (c *Calculator) valueScore(score int) model.ValueScore {
	tier := c.TierFor(score)
	return model.ValueScore{Score: score, Tier: tier, Label: tier.Label()}
}

// rankOf sorts peers descending by key with a stable sort and returns the
// 1-based position of id. Returns len(peers) when id is absent.
func rankOf(id string, peers []model.Navigator, key func(model.Navigator) float64) int {
	keys := make([]float64, len(peers))
	order := make([]int, len(peers))
	for i, p := range peers {
		keys[i] = key(p)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] > keys[order[b]]
	})
	for pos, idx := range order {
		if peers[idx].ID == id {
			return pos + 1
		}
	}
	return len(peers)
}

// normalize maps rank 1 to 100 and rank n to 100/n.
func normalize(rank, n int) float64 {
	return float64(n-rank+1) / float64(n) * maxNormValue
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
