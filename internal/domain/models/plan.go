package models

import (
	"fmt"
	"strings"
	"time"
)

// ExperienceLevel enumerates supported farmer experience tiers.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// ParseExperienceLevel derives an ExperienceLevel from free-form input.
func ParseExperienceLevel(value string) (ExperienceLevel, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))

	switch normalized {
	case string(ExperienceBeginner):
		return ExperienceBeginner, nil
	case string(ExperienceIntermediate):
		return ExperienceIntermediate, nil
	case string(ExperienceAdvanced):
		return ExperienceAdvanced, nil
	default:
		return "", fmt.Errorf("unknown experience level %q", value)
	}
}

// CycleType buckets a cycle duration into the class driving cost, weight and
// template lookups. It is always derived from the duration, never stored.
type CycleType string

const (
	CycleShort    CycleType = "short"
	CycleStandard CycleType = "standard"
	CycleExtended CycleType = "extended"
)

// CycleTypeForDuration classifies a cycle duration in days.
func CycleTypeForDuration(durationDays int) CycleType {
	switch {
	case durationDays <= 21:
		return CycleShort
	case durationDays <= 30:
		return CycleStandard
	default:
		return CycleExtended
	}
}

// FarmPlan is a persisted production cycle plan for one farmer.
type FarmPlan struct {
	ID                   string          `bson:"_id" json:"id"`
	OwnerID              string          `bson:"owner_id" json:"owner_id"`
	Budget               int64           `bson:"budget" json:"budget"`
	SpaceM2              float64         `bson:"space_m2" json:"space_m2"`
	ExperienceLevel      ExperienceLevel `bson:"experience_level" json:"experience_level"`
	DurationDays         int             `bson:"duration_days" json:"duration_days"`
	StartDate            time.Time       `bson:"start_date" json:"start_date"`
	RecommendedFlockSize int             `bson:"recommended_flock_size" json:"recommended_flock_size"`
	CreatedAt            time.Time       `bson:"created_at" json:"created_at"`
}
