// Package season recommends crops for the upcoming growing season.
package season

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/api/models"
)

// Name labels a growing season.
type Name string

// Growing seasons.
const (
	SeasonWinter  Name = "Winter"
	SeasonSummer  Name = "Summer"
	SeasonMonsoon Name = "Monsoon"
)

// alternativeStep is the fixed profitability decrement per alternative rank.
// This is a presentation-ranking convenience, not an independent estimate.
const alternativeStep = 10

// Alternative is a lower-ranked crop option.
type Alternative struct {
	Crop          string
	Profitability int
	MarketDemand  string
}

// Advice is a request-scoped season planning recommendation.
type Advice struct {
	Season          Name
	RecommendedCrop string
	Profitability   int
	MarketDemand    string
	Reasoning       string
	Alternatives    []Alternative
}

// seasonPlan holds the crop table for one season.
type seasonPlan struct {
	primary       string
	profitability int
	marketDemand  string
	reasoning     string
	alternatives  [3]string
}

var seasonPlans = map[Name]seasonPlan{
	SeasonWinter: {
		primary:       "Cabbage",
		profitability: 75,
		marketDemand:  "High",
		reasoning:     "Cool nights suit cole crops, and winter cabbage fetches steady mandi prices.",
		alternatives:  [3]string{"Cauliflower", "Carrot", "Onion"},
	},
	SeasonSummer: {
		primary:       "Watermelon",
		profitability: 70,
		marketDemand:  "High",
		reasoning:     "Short-duration cucurbits handle the heat and peak-summer demand is strong.",
		alternatives:  [3]string{"Muskmelon", "Okra", "Cucumber"},
	},
	SeasonMonsoon: {
		primary:       "Rice",
		profitability: 80,
		marketDemand:  "High",
		reasoning:     "Assured rainfall favors paddy, with procurement support holding prices up.",
		alternatives:  [3]string{"Soybean", "Maize", "Cotton"},
	},
}

// PlannerConfig holds configuration for the season planner.
type PlannerConfig struct {
	// Logger for planner operations.
	Logger zerolog.Logger

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Planner ranks candidate crops for a location and season.
type Planner struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewPlanner creates a new season planner.
func NewPlanner(cfg PlannerConfig) *Planner {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Planner{
		logger: cfg.Logger.With().Str("component", "season_planner").Logger(),
		now:    now,
	}
}

// CurrentSeason derives the growing season from a calendar month.
func CurrentSeason(month time.Month) Name {
	switch {
	case month >= time.November || month <= time.March:
		return SeasonWinter
	case month >= time.April && month <= time.June:
		return SeasonSummer
	default:
		return SeasonMonsoon
	}
}

// PlanningAdvice recommends a primary crop for the location's current season
// plus exactly three ordered alternatives. Alternative profitability steps
// down a fixed 10 points per rank below the primary pick.
func (p *Planner) PlanningAdvice(_ context.Context, location string) (*Advice, error) {
	if location == "" {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "location", Message: "is required"},
		}}
	}

	seasonName := CurrentSeason(p.now().Month())
	plan := seasonPlans[seasonName]

	alternatives := make([]Alternative, 0, len(plan.alternatives))
	for rank, crop := range plan.alternatives {
		alternatives = append(alternatives, Alternative{
			Crop:          crop,
			Profitability: plan.profitability - alternativeStep*(rank+1),
			MarketDemand:  "Medium",
		})
	}

	p.logger.Debug().
		Str("location", location).
		Str("season", string(seasonName)).
		Str("crop", plan.primary).
		Msg("computed planning advice")

	return &Advice{
		Season:          seasonName,
		RecommendedCrop: plan.primary,
		Profitability:   plan.profitability,
		MarketDemand:    plan.marketDemand,
		Reasoning:       fmt.Sprintf("%s For %s, %s is the strongest %s pick.", plan.reasoning, location, plan.primary, seasonName),
		Alternatives:    alternatives,
	}, nil
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
