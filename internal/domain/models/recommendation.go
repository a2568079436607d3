package models

// PlanningInput carries the four planning parameters the calculator works from.
// Validation happens at the service boundary; the calculator itself trusts it.
type PlanningInput struct {
	Budget          int64           `json:"budget"`
	SpaceM2         float64         `json:"space_m2"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	DurationDays    int             `json:"duration_days"`
}

// CostBreakdown sums per-unit costs over the recommended flock size. All
// amounts are integer currency units, rounded up so the plan never
// under-provisions.
type CostBreakdown struct {
	FlockSize       int   `bson:"flock_size" json:"flock_size"`
	ChickCost       int64 `bson:"chick_cost" json:"chick_cost"`
	FeedCost        int64 `bson:"feed_cost" json:"feed_cost"`
	MedicineCost    int64 `bson:"medicine_cost" json:"medicine_cost"`
	Subtotal        int64 `bson:"subtotal" json:"subtotal"`
	MiscCost        int64 `bson:"misc_cost" json:"misc_cost"`
	MortalityBuffer int64 `bson:"mortality_buffer" json:"mortality_buffer"`
	TotalCost       int64 `bson:"total_cost" json:"total_cost"`
}

// Profitability projects the financial outcome of one cycle at the
// recommended flock size.
type Profitability struct {
	SurvivingCount     int     `bson:"surviving_count" json:"surviving_count"`
	Revenue            int64   `bson:"revenue" json:"revenue"`
	NetProfit          int64   `bson:"net_profit" json:"net_profit"`
	ProfitPerBird      int64   `bson:"profit_per_bird" json:"profit_per_bird"`
	ROIPercent         float64 `bson:"roi_percent" json:"roi_percent"`
	BreakEvenFlockSize int     `bson:"break_even_flock_size" json:"break_even_flock_size"`
}

// LimitingFactor names the constraint capping the flock size, with the raw
// current value and a fixed suggestion for relaxing it.
type LimitingFactor struct {
	Factor       string  `json:"factor"`
	CurrentValue float64 `json:"current_value"`
	Suggestion   string  `json:"suggestion"`
}

// Recommendation is the immutable result of one calculator invocation.
type Recommendation struct {
	FlockSize       int              `json:"flock_size"`
	CostPerBird     int64            `json:"cost_per_bird"`
	MaxFromSpace    int              `json:"max_from_space"`
	MaxFromBudget   int              `json:"max_from_budget"`
	CycleType       CycleType        `json:"cycle_type"`
	Cost            CostBreakdown    `json:"cost_breakdown"`
	Profit          Profitability    `json:"profitability"`
	Advice          []string         `json:"advice"`
	LimitingFactors []LimitingFactor `json:"limiting_factors"`
}

// Outcome wraps either a Recommendation or an insufficient-resources result.
// Insufficiency is an expected business outcome, not an error.
type Outcome struct {
	Success        bool            `json:"success"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Suggestions    []string        `json:"suggestions,omitempty"`
}
