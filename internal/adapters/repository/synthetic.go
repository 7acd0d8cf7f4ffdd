package repository

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/brokerlens/internal/domain/model"
)

// Synthetic dataset defaults and ranges.
const (
	defaultSeed           = 42
	defaultNavigatorCount = 24
	defaultPilotCount     = 120

	minPilotScore      = 300
	pilotScoreSpan     = 680 // scores land in [300, 980]
	maxRevenue         = 18_000
	minRevenue         = 150
	maxFollowers       = 2_500
	maxGroupVolume     = 12.0 // millions per day
	maxTradesCopied    = 60
	maxFollowedPerUser = 3
)

var weekdays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var (
	firstNames = [...]string{
		"Avery", "Blake", "Casey", "Dana", "Eden", "Finley", "Gray", "Harper",
		"Indy", "Jules", "Kai", "Logan", "Morgan", "Noel", "Oakley", "Parker",
		"Quinn", "Reese", "Sage", "Taylor",
	}
	lastNames = [...]string{
		"Archer", "Brooks", "Castillo", "Doyle", "Ellis", "Fontaine", "Gallagher",
		"Hayes", "Ibarra", "Jensen", "Keller", "Lindqvist", "Moreau", "Novak",
	}
)

type synthetic struct {
	seed       int64
	navigators int
	pilots     int
}

// Synthetic generates a deterministic fixture dataset from a seed.
func Synthetic(opts ...SyntheticOption) model.Dataset {
	cfg := synthetic{
		seed:       defaultSeed,
		navigators: defaultNavigatorCount,
		pilots:     defaultPilotCount,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // fixtures, not secrets

	navigators := make([]model.Navigator, cfg.navigators)
	for i := range navigators {
		navigators[i] = syntheticNavigator(rng, i)
	}

	pilots := make([]model.Pilot, cfg.pilots)
	for i := range pilots {
		followed := 1 + rng.Intn(maxFollowedPerUser)
		if followed > cfg.navigators {
			followed = cfg.navigators
		}
		ids := make([]string, 0, followed)
		for _, idx := range rng.Perm(cfg.navigators)[:followed] {
			ids = append(ids, navigators[idx].ID)
		}
		pilots[i] = model.Pilot{
			ID:           fmt.Sprintf("pilot-%04d", i+1),
			TradesCopied: rng.Intn(maxTradesCopied + 1),
			NavigatorIDs: ids,
		}
	}

	return model.Dataset{Navigators: navigators, Pilots: pilots}
}

func syntheticNavigator(rng *rand.Rand, i int) model.Navigator {
	score := float64(minPilotScore + rng.Intn(pilotScoreSpan+1))
	// Better pilots tend to drive more revenue, with plenty of noise.
	quality := (score - minPilotScore) / pilotScoreSpan
	revenue := math.Round(minRevenue + (maxRevenue-minRevenue)*(0.3*quality+0.7*rng.Float64()))
	volume := math.Round((0.2+rng.Float64()*(maxGroupVolume-0.2))*100) / 100

	trend := make([]model.TrendPoint, len(weekdays))
	level := score
	drift := (rng.Float64() - 0.45) * 30
	for d, day := range weekdays {
		level = math.Max(0, level+drift+(rng.Float64()-0.5)*40)
		trend[d] = model.TrendPoint{Day: day, Value: math.Round(level)}
	}

	return model.Navigator{
		ID:                 fmt.Sprintf("nav-%03d", i+1),
		Name:               firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
		PilotScore:         score,
		BrokerRevenueShare: revenue,
		Followers:          rng.Intn(maxFollowers + 1),
		GroupVolume:        volume,
		Trend:              trend,
	}
}
