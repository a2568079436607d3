// Package tasks implements the task generation engine: pure expansion of a
// day-keyed template catalog into dated, personalized tasks for one farm
// plan. Persistence and the at-most-once generation guard live in the task
// service; this package never touches storage.
package tasks

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
)

// ErrNoTemplatesFound indicates the catalog holds nothing usable for the
// plan's cycle. Generation must never silently produce zero tasks.
var ErrNoTemplatesFound = errors.New("no task templates found for cycle")

// FlockSizePlaceholder is substituted in template descriptions with the
// plan's recommended flock size.
const FlockSizePlaceholder = "{count}"

// beginnerTips maps description keywords to the contextual tip appended for
// beginner plans. Matching is ordered and case-insensitive; a description can
// collect several tips.
var beginnerTips = []struct {
	Keyword string
	Tip     string
}{
	{"temperature", "Tip: chicks cannot regulate heat in week one; check the thermometer at bird height, not on the wall."},
	{"feed", "Tip: scatter a little feed on paper the first days so chicks learn where to eat."},
	{"clean", "Tip: dry bedding matters more than looks; wet litter breeds coccidiosis."},
	{"vaccin", "Tip: vaccinate in the cool morning hours and never mix vaccine water with disinfectant."},
}

// doubleCheckWindowDays bounds the first-week window in which beginner plans
// get synthesized verification tasks for critical monitoring work.
const doubleCheckWindowDays = 7

// Expand selects, personalizes and schedules the catalog templates for the
// plan. Returned tasks carry no ID or creation timestamp; the persisting
// caller assigns those.
func Expand(plan models.FarmPlan, catalog []models.TaskTemplate) ([]models.DailyTask, error) {
	cycle := models.CycleTypeForDuration(plan.DurationDays)

	selected := filterTemplates(catalog, cycle, plan.ExperienceLevel)
	if len(selected) == 0 {
		// Fall back to the experience-agnostic subset before giving up.
		selected = filterTemplates(catalog, cycle, "")
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoTemplatesFound, cycle)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].DayNumber != selected[j].DayNumber {
			return selected[i].DayNumber < selected[j].DayNumber
		}
		return selected[i].IsCritical && !selected[j].IsCritical
	})

	beginner := plan.ExperienceLevel == models.ExperienceBeginner
	result := make([]models.DailyTask, 0, len(selected))

	for _, tpl := range selected {
		if tpl.DayNumber > plan.DurationDays {
			continue
		}

		task := models.DailyTask{
			FarmPlanID:    plan.ID,
			TemplateID:    tpl.ID,
			DayNumber:     tpl.DayNumber,
			ScheduledDate: scheduleFor(plan.StartDate, tpl.DayNumber),
			Title:         tpl.Title,
			Description:   personalize(tpl.Description, plan.RecommendedFlockSize, beginner),
			Category:      tpl.Category,
			IsCritical:    tpl.IsCritical,
		}
		result = append(result, task)

		if beginner && tpl.IsCritical && tpl.Category == "monitoring" && tpl.DayNumber <= doubleCheckWindowDays {
			result = append(result, doubleCheckTask(plan, tpl))
		}
	}

	// The day-drop can empty a non-empty selection, e.g. a sparse catalog
	// whose matching templates all fall past a short plan's cycle end.
	if len(result) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoTemplatesFound, cycle)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DayNumber < result[j].DayNumber
	})

	return result, nil
}

func filterTemplates(catalog []models.TaskTemplate, cycle models.CycleType, level models.ExperienceLevel) []models.TaskTemplate {
	var out []models.TaskTemplate
	for _, tpl := range catalog {
		if tpl.DurationType != cycle {
			continue
		}
		if level == "" {
			if tpl.ExperienceLevel != "" {
				continue
			}
		} else if !tpl.AppliesTo(level) {
			continue
		}
		out = append(out, tpl)
	}
	return out
}

// personalize substitutes the flock-size placeholder and, for beginners,
// appends keyword-matched tips. Keyword matching against the description text
// is user-visible behavior; keep the wording and order stable.
func personalize(description string, flockSize int, beginner bool) string {
	text := strings.ReplaceAll(description, FlockSizePlaceholder, strconv.Itoa(flockSize))

	if !beginner {
		return text
	}

	lower := strings.ToLower(text)
	for _, entry := range beginnerTips {
		if strings.Contains(lower, entry.Keyword) {
			text += " " + entry.Tip
		}
	}
	return text
}

// doubleCheckTask synthesizes the non-critical verification row beginners get
// for critical first-week monitoring tasks. It is a new row on the same day,
// not a copy of a stored template.
func doubleCheckTask(plan models.FarmPlan, tpl models.TaskTemplate) models.DailyTask {
	return models.DailyTask{
		FarmPlanID:    plan.ID,
		DayNumber:     tpl.DayNumber,
		ScheduledDate: scheduleFor(plan.StartDate, tpl.DayNumber),
		Title:         "Double-check: " + tpl.Title,
		Description:   fmt.Sprintf("Do a second round of: %s. A repeat check in the first week catches brooder problems before they cost birds.", strings.ToLower(tpl.Title)),
		Category:      tpl.Category,
		IsCritical:    false,
	}
}

func scheduleFor(startDate time.Time, day int) time.Time {
	return startDate.AddDate(0, 0, day-1)
}
