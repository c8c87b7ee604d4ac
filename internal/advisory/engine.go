package advisory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/weather"
)

// Engine is a substitutable decision model. The rule-based implementation can
// be swapped for a real model endpoint without changing callers; inputs are
// assumed already validated by the service.
type Engine interface {
	// IrrigationAdvice returns when and how much to irrigate next.
	IrrigationAdvice(ctx context.Context, f *farm.Farm, lastIrrigation time.Time) (*IrrigationAdvice, error)

	// FertilizerAdvice returns what to apply for the given crop stage.
	FertilizerAdvice(ctx context.Context, f *farm.Farm, stage CropStage) (*FertilizerAdvice, error)

	// DetectPest analyzes a crop image for pest risk.
	DetectPest(ctx context.Context, image []byte) (*PestDetection, error)
}

// heavyRainThresholdMM is the daily forecast rainfall above which irrigation
// is deferred by a day.
const heavyRainThresholdMM = 10.0

// irrigationRule holds the base schedule for one irrigation method.
type irrigationRule struct {
	intervalDays int
	liters       float64
}

var irrigationRules = map[farm.IrrigationMethod]irrigationRule{
	farm.IrrigationDrip:      {intervalDays: 2, liters: 25},
	farm.IrrigationSprinkler: {intervalDays: 3, liters: 35},
	farm.IrrigationFlood:     {intervalDays: 5, liters: 60},
	farm.IrrigationManual:    {intervalDays: 3, liters: 40},
}

// fertilizerRule holds the recommendation for one crop stage.
type fertilizerRule struct {
	fertilizer string
	kgPerAcre  float64
	timing     string
	reasoning  string
}

var fertilizerRules = map[CropStage]fertilizerRule{
	StageGermination: {
		fertilizer: "NPK 10:26:26",
		kgPerAcre:  10,
		timing:     "At sowing, within the first week",
		reasoning:  "High phosphorus supports root establishment during germination.",
	},
	StageVegetative: {
		fertilizer: "Urea 46:0:0",
		kgPerAcre:  20,
		timing:     "Split into two doses, 10 days apart",
		reasoning:  "Nitrogen drives leaf and stem growth through the vegetative phase.",
	},
	StageFlowering: {
		fertilizer: "NPK 19:19:19",
		kgPerAcre:  15,
		timing:     "Early morning",
		reasoning:  "Balanced NPK sustains flower set without forcing excess foliage.",
	},
	StageFruitDevelopment: {
		fertilizer: "NPK 13:0:45",
		kgPerAcre:  12,
		timing:     "Every 10 days until color break",
		reasoning:  "Potassium improves fruit size, firmness, and sugar accumulation.",
	},
	StageMaturity: {
		fertilizer: "MOP 0:0:60",
		kgPerAcre:  8,
		timing:     "Single dose, two weeks before expected harvest",
		reasoning:  "A final potassium dose improves keeping quality; nitrogen is withheld to avoid delaying ripening.",
	},
}

// RuleBasedEngine derives advice from fixed agronomy rule tables plus the
// current weather forecast.
type RuleBasedEngine struct {
	weather *weather.Gateway
	logger  zerolog.Logger
}

// NewRuleBasedEngine creates a rule-based advisory engine.
func NewRuleBasedEngine(gateway *weather.Gateway, logger zerolog.Logger) *RuleBasedEngine {
	return &RuleBasedEngine{
		weather: gateway,
		logger:  logger.With().Str("component", "advisory_engine").Logger(),
	}
}

// IrrigationAdvice schedules the next irrigation from the farm's method and
// the forecast. Heavy rain in the coming days pushes the schedule out a day.
func (e *RuleBasedEngine) IrrigationAdvice(ctx context.Context, f *farm.Farm, lastIrrigation time.Time) (*IrrigationAdvice, error) {
	rule, ok := irrigationRules[f.IrrigationMethod]
	if !ok {
		return nil, fmt.Errorf("no irrigation rule for method %q", f.IrrigationMethod)
	}

	interval := rule.intervalDays
	reasoning := fmt.Sprintf("With %s irrigation, %s needs water every %d days at this time of year.",
		f.IrrigationMethod, f.CropType, rule.intervalDays)

	snapshot := e.weather.GetForecast(ctx, f.Location)
	if rain, heavy := upcomingHeavyRain(snapshot, interval); heavy {
		interval++
		reasoning = fmt.Sprintf("%s %.0fmm of rain is forecast, so the next round is deferred by a day.", reasoning, rain)
	}

	next := lastIrrigation.AddDate(0, 0, interval)

	e.logger.Debug().
		Str("farm_id", f.ID).
		Str("method", string(f.IrrigationMethod)).
		Int("interval_days", interval).
		Msg("computed irrigation advice")

	return &IrrigationAdvice{
		Recommendation:    fmt.Sprintf("Irrigate in %d days", interval),
		NextIrrigation:    next,
		IntervalDays:      interval,
		WaterAmountLiters: rule.liters,
		Reasoning:         reasoning,
	}, nil
}

// upcomingHeavyRain reports the heaviest forecast rainfall within the next
// interval days, and whether it crosses the deferral threshold.
func upcomingHeavyRain(snapshot *weather.Snapshot, withinDays int) (float64, bool) {
	if snapshot.Source != weather.SourceLive {
		return 0, false
	}

	var heaviest float64
	for i, day := range snapshot.Forecast {
		if i >= withinDays {
			break
		}
		if day.Rainfall > heaviest {
			heaviest = day.Rainfall
		}
	}

	return heaviest, heaviest >= heavyRainThresholdMM
}

// FertilizerAdvice selects the fertilizer program for a crop stage. Drip
// farms are advised to apply through fertigation.
func (e *RuleBasedEngine) FertilizerAdvice(_ context.Context, f *farm.Farm, stage CropStage) (*FertilizerAdvice, error) {
	rule, ok := fertilizerRules[stage]
	if !ok {
		return nil, fmt.Errorf("no fertilizer rule for stage %q", stage)
	}

	method := "soil application"
	if f.IrrigationMethod == farm.IrrigationDrip {
		method = "fertigation"
	}

	return &FertilizerAdvice{
		Fertilizer:        rule.fertilizer,
		QuantityKgPerAcre: rule.kgPerAcre,
		Timing:            rule.timing,
		Method:            method,
		Reasoning:         rule.reasoning,
	}, nil
}

// DetectPest analyzes a crop image for pest risk.
//
// TODO: replace the canned classification with the vision model endpoint once
// it is deployed; the contract here is final.
func (e *RuleBasedEngine) DetectPest(_ context.Context, image []byte) (*PestDetection, error) {
	e.logger.Debug().Int("image_bytes", len(image)).Msg("analyzing crop image")

	return &PestDetection{
		Detected:   true,
		PestName:   "Aphids",
		Confidence: 85,
		Severity:   SeverityMedium,
		Treatment:  "Spray neem oil solution (5ml per liter of water) in the evening. Repeat after 7 days.",
	}, nil
}

// Ensure RuleBasedEngine implements Engine interface.
var _ Engine = (*RuleBasedEngine)(nil)
