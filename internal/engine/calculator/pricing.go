package calculator

import "github.com/ndiayefarms/broodplan/internal/domain/models"

// Pricing carries the immutable lookup tables the calculator derives every
// figure from. Inject alternate tables to target another market or region;
// the algorithm never hardcodes a price.
type Pricing struct {
	// ChickPrice is the purchase price of one day-old chick.
	ChickPrice int64
	// FeedCost is the total feed spend per bird for a full cycle of each type.
	FeedCost map[models.CycleType]int64
	// MedicineCost covers vaccines and routine medication per bird per cycle.
	MedicineCost int64
	// MiscRate is the miscellaneous surcharge applied to the cost subtotal.
	MiscRate float64
	// MortalityRate is the expected loss fraction per experience tier. It is
	// both the mortality-buffer percentage and the surviving-count reducer.
	MortalityRate map[models.ExperienceLevel]float64
	// DensityPerM2 caps stocking density per experience tier. Beginners get a
	// conservative density to avoid overcrowding losses.
	DensityPerM2 map[models.ExperienceLevel]float64
	// AvgWeightKg is the expected market weight per bird for each cycle type.
	AvgWeightKg map[models.CycleType]float64
	// PricePerKg is the live-weight market price per kilogram.
	PricePerKg int64
}

// DefaultPricing returns the built-in Guinean-franc tables for small-scale
// broiler production.
func DefaultPricing() Pricing {
	return Pricing{
		ChickPrice: 12000,
		FeedCost: map[models.CycleType]int64{
			models.CycleShort:    25000,
			models.CycleStandard: 38000,
			models.CycleExtended: 52000,
		},
		MedicineCost: 3000,
		MiscRate:     0.05,
		MortalityRate: map[models.ExperienceLevel]float64{
			models.ExperienceBeginner:     0.10,
			models.ExperienceIntermediate: 0.07,
			models.ExperienceAdvanced:     0.05,
		},
		DensityPerM2: map[models.ExperienceLevel]float64{
			models.ExperienceBeginner:     8,
			models.ExperienceIntermediate: 10,
			models.ExperienceAdvanced:     12,
		},
		AvgWeightKg: map[models.CycleType]float64{
			models.CycleShort:    1.4,
			models.CycleStandard: 1.9,
			models.CycleExtended: 2.4,
		},
		PricePerKg: 40000,
	}
}
