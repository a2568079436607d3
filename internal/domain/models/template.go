package models

// TaskTemplate is one day-keyed task definition from the external catalog.
// The catalog is read-only to the generation engine; an empty ExperienceLevel
// means the template applies to every experience tier.
type TaskTemplate struct {
	ID               string          `bson:"_id" json:"id"`
	DayNumber        int             `bson:"day_number" json:"day_number"`
	Category         string          `bson:"category" json:"category"`
	IsCritical       bool            `bson:"is_critical" json:"is_critical"`
	DurationType     CycleType       `bson:"duration_type" json:"duration_type"`
	ExperienceLevel  ExperienceLevel `bson:"experience_level,omitempty" json:"experience_level,omitempty"`
	Title            string          `bson:"title" json:"title"`
	Description      string          `bson:"description" json:"description"`
	EstimatedMinutes int             `bson:"estimated_minutes" json:"estimated_minutes"`
}

// AppliesTo reports whether the template matches the given experience tier.
func (t TaskTemplate) AppliesTo(level ExperienceLevel) bool {
	return t.ExperienceLevel == "" || t.ExperienceLevel == level
}
