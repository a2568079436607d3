// Package calculator implements the resource and profitability calculator: a
// pure function from planning input to a flock-size recommendation, with no
// external state. Input validation is the caller's responsibility; the engine
// does not revalidate.
package calculator

import (
	"fmt"
	"math"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
)

const (
	adviceSafetyFund     = "Keep a safety fund of at least 10% of the total cost to absorb unexpected losses."
	adviceFindBuyers     = "Identify buyers for your birds before the cycle ends so you are not stuck holding stock."
	adviceBeginnerBrood  = "Keep the brooder at 32-34°C during the first week and reduce by 3°C each week after."
	adviceBeginnerRecord = "Record feed, mortality and expenses every day; small leaks sink a first cycle."
	adviceBeginnerVet    = "Save the number of a local vet or livestock agent before the chicks arrive."
	adviceLowROI         = "Projected ROI is below 20%. Consider a longer cycle or cheaper feed sourcing before committing."
	adviceExcellentROI   = "Projected ROI is above 50%. Conditions for this cycle are excellent."
	adviceSmallSpace     = "With under 10 m², keep batches small and rotate cycles rather than crowding one flock."

	suggestionRaiseBudget = "Increase your budget: a starter flock of 5 birds needs at least 5 times the per-bird cost."
	suggestionRaiseSpace  = "Allocate at least 2 m² of dedicated housing space before starting a cycle."

	suggestionRelaxSpace  = "Expand or partition your housing to raise the space ceiling."
	suggestionRelaxBudget = "Raise your working capital or reduce per-bird cost to raise the budget ceiling."
)

// Calculator computes flock-size recommendations from injected pricing
// tables. Instances are stateless and safe for concurrent use.
type Calculator struct {
	pricing Pricing
}

// New builds a calculator over the given pricing tables.
func New(pricing Pricing) *Calculator {
	return &Calculator{pricing: pricing}
}

// CostPerBird estimates the all-in provisioning cost of one bird for the
// given cycle and experience tier: chick, feed and medicine plus the
// miscellaneous surcharge and the per-bird mortality buffer, rounded up.
func (c *Calculator) CostPerBird(cycle models.CycleType, level models.ExperienceLevel) int64 {
	subtotal := c.pricing.ChickPrice + c.pricing.FeedCost[cycle] + c.pricing.MedicineCost
	misc := ceilShare(subtotal, c.pricing.MiscRate)
	buffer := ceilShare(subtotal, c.pricing.MortalityRate[level])
	return subtotal + misc + buffer
}

// ComputeRecommendation derives the optimal flock size for the input and, when
// feasible, the cost breakdown, profitability projection, advice and limiting
// factors. An infeasible input yields an insufficient-resources outcome.
func (c *Calculator) ComputeRecommendation(in models.PlanningInput) models.Outcome {
	cycle := models.CycleTypeForDuration(in.DurationDays)

	maxFromSpace := int(math.Floor(in.SpaceM2 * c.pricing.DensityPerM2[in.ExperienceLevel]))
	costPerBird := c.CostPerBird(cycle, in.ExperienceLevel)
	maxFromBudget := int(in.Budget / costPerBird)

	optimal := maxFromSpace
	if maxFromBudget < optimal {
		optimal = maxFromBudget
	}

	if optimal <= 0 {
		return models.Outcome{
			Success:     false,
			Suggestions: []string{suggestionRaiseBudget, suggestionRaiseSpace},
		}
	}

	cost := c.breakdown(optimal, cycle, in.ExperienceLevel)
	profit := c.profitability(optimal, cycle, in.ExperienceLevel, cost.TotalCost)

	return models.Outcome{
		Success: true,
		Recommendation: &models.Recommendation{
			FlockSize:       optimal,
			CostPerBird:     costPerBird,
			MaxFromSpace:    maxFromSpace,
			MaxFromBudget:   maxFromBudget,
			CycleType:       cycle,
			Cost:            cost,
			Profit:          profit,
			Advice:          c.advice(in, profit),
			LimitingFactors: c.limitingFactors(in, maxFromSpace, maxFromBudget),
		},
	}
}

// breakdown scales each cost category by the flock size. The surcharge and
// mortality buffer are computed from the realized subtotal, each rounded up
// independently, so total = subtotal + misc + buffer always holds exactly.
func (c *Calculator) breakdown(flockSize int, cycle models.CycleType, level models.ExperienceLevel) models.CostBreakdown {
	n := int64(flockSize)
	chick := c.pricing.ChickPrice * n
	feed := c.pricing.FeedCost[cycle] * n
	medicine := c.pricing.MedicineCost * n
	subtotal := chick + feed + medicine
	misc := ceilShare(subtotal, c.pricing.MiscRate)
	buffer := ceilShare(subtotal, c.pricing.MortalityRate[level])

	return models.CostBreakdown{
		FlockSize:       flockSize,
		ChickCost:       chick,
		FeedCost:        feed,
		MedicineCost:    medicine,
		Subtotal:        subtotal,
		MiscCost:        misc,
		MortalityBuffer: buffer,
		TotalCost:       subtotal + misc + buffer,
	}
}

func (c *Calculator) profitability(flockSize int, cycle models.CycleType, level models.ExperienceLevel, totalCost int64) models.Profitability {
	surviving := int(math.Floor(float64(flockSize) * (1 - c.pricing.MortalityRate[level])))
	revenue := int64(math.Ceil(float64(surviving) * c.pricing.AvgWeightKg[cycle] * float64(c.pricing.PricePerKg)))
	netProfit := revenue - totalCost

	var roi float64
	if totalCost > 0 {
		roi = round2(float64(netProfit) / float64(totalCost) * 100)
	}

	unitRevenue := int64(math.Ceil(c.pricing.AvgWeightKg[cycle] * float64(c.pricing.PricePerKg)))
	breakEven := 0
	if unitRevenue > 0 {
		breakEven = int(math.Ceil(float64(totalCost) / float64(unitRevenue)))
	}

	return models.Profitability{
		SurvivingCount:     surviving,
		Revenue:            revenue,
		NetProfit:          netProfit,
		ProfitPerBird:      netProfit / int64(flockSize),
		ROIPercent:         roi,
		BreakEvenFlockSize: breakEven,
	}
}

func (c *Calculator) advice(in models.PlanningInput, profit models.Profitability) []string {
	advice := []string{adviceSafetyFund, adviceFindBuyers}

	if in.ExperienceLevel == models.ExperienceBeginner {
		advice = append(advice, adviceBeginnerBrood, adviceBeginnerRecord, adviceBeginnerVet)
	}

	switch {
	case profit.ROIPercent < 20:
		advice = append(advice, adviceLowROI)
	case profit.ROIPercent > 50:
		advice = append(advice, adviceExcellentROI)
	}

	if in.SpaceM2 < 10 {
		advice = append(advice, adviceSmallSpace)
	}

	return advice
}

// limitingFactors reports whichever constraint caps the flock, or both when
// the two ceilings are equal.
func (c *Calculator) limitingFactors(in models.PlanningInput, maxFromSpace, maxFromBudget int) []models.LimitingFactor {
	var factors []models.LimitingFactor

	if maxFromSpace <= maxFromBudget {
		factors = append(factors, models.LimitingFactor{
			Factor:       "space",
			CurrentValue: in.SpaceM2,
			Suggestion:   suggestionRelaxSpace,
		})
	}
	if maxFromBudget <= maxFromSpace {
		factors = append(factors, models.LimitingFactor{
			Factor:       "budget",
			CurrentValue: float64(in.Budget),
			Suggestion:   suggestionRelaxBudget,
		})
	}

	return factors
}

// ceilShare applies a fractional rate to an amount, rounding the result up so
// currency never rounds in the farmer's disfavor.
func ceilShare(amount int64, rate float64) int64 {
	return int64(math.Ceil(float64(amount) * rate))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// DescribeCycle renders the cycle classification for user-facing summaries.
func DescribeCycle(cycle models.CycleType, durationDays int) string {
	return fmt.Sprintf("%s cycle (%d days)", cycle, durationDays)
}
