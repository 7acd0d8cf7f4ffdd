package valuecheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/okian/brokerlens/internal/adapters/repository"
	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	performerClasses   = 4
)

// Ranges for generated navigator metrics, per performer class.
const (
	minPilotScore   = 300.0
	pilotScoreRange = 680.0
	maxRevenue      = 20000.0
	maxFollowers    = 3000
	maxGroupVolume  = 15.0
	maxTradesCopied = 80
	maxFollowed     = 3
	trendDays       = 7
	trendStepRange  = 60.0

	caseStrong   = 0
	caseAverage  = 1
	caseWeak     = 2
	caseInactive = 3
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

var trendDayNames = [trendDays]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, n).
func getRandomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// GenerateDataset creates a random dataset with uuid navigator and pilot ids.
func GenerateDataset(navigators, pilots int) model.Dataset {
	ds := model.Dataset{
		Navigators: make([]model.Navigator, navigators),
		Pilots:     make([]model.Pilot, pilots),
	}
	for i := range ds.Navigators {
		ds.Navigators[i] = generateNavigator(i)
	}
	if navigators == 0 {
		ds.Pilots = ds.Pilots[:0]
		return ds
	}
	for i := range ds.Pilots {
		followed := min(1+getRandomInt(maxFollowed), navigators)
		ids := make([]string, 0, followed)
		seen := make(map[int]bool, followed)
		for len(ids) < followed {
			idx := getRandomInt(navigators)
			if seen[idx] {
				continue
			}
			seen[idx] = true
			ids = append(ids, ds.Navigators[idx].ID)
		}
		ds.Pilots[i] = model.Pilot{
			ID:           uuid.New().String(),
			TradesCopied: getRandomInt(maxTradesCopied + 1),
			NavigatorIDs: ids,
		}
	}
	return ds
}

// generateNavigator creates one navigator with a varied metric distribution.
func generateNavigator(index int) model.Navigator {
	score := minPilotScore + getRandomFloat()*pilotScoreRange
	revenue := getRandomFloat() * maxRevenue

	switch getRandomInt(performerClasses) {
	case caseStrong:
		// Strong performers earn in the top third.
		revenue = maxRevenue*2/3 + getRandomFloat()*maxRevenue/3
	case caseAverage:
	case caseWeak:
		revenue *= 0.2
	case caseInactive:
		// Inactive navigators still appear but bring nothing in.
		revenue = 0
	}

	trend := make([]model.TrendPoint, trendDays)
	level := score
	for d := range trend {
		level = math.Max(0, level+(getRandomFloat()-0.5)*trendStepRange)
		trend[d] = model.TrendPoint{Day: trendDayNames[d], Value: math.Round(level)}
	}

	return model.Navigator{
		ID:                 uuid.New().String(),
		Name:               fmt.Sprintf("Navigator %d", index+1),
		PilotScore:         math.Round(score),
		BrokerRevenueShare: math.Round(revenue),
		Followers:          getRandomInt(maxFollowers + 1),
		GroupVolume:        math.Round(getRandomFloat()*maxGroupVolume*100) / 100,
		Trend:              trend,
	}
}

// WriteDataset validates ds and writes it to path as YAML.
func WriteDataset(ctx context.Context, path string, ds model.Dataset) error {
	if err := repository.Validate(ds); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if err := repository.EncodeDataset(file, ds); err != nil {
		return err
	}

	logger.Get().Info(ctx, "dataset written",
		logger.String("path", path),
		logger.Int("navigators", len(ds.Navigators)),
		logger.Int("pilots", len(ds.Pilots)))
	return nil
}
