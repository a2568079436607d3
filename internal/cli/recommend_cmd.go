// Package cli holds the planctl command implementations.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/engine/calculator"
	"github.com/ndiayefarms/broodplan/internal/service/planning"
)

// RecommendCmd returns the command that runs the calculator locally.
func RecommendCmd() *cobra.Command {
	var (
		budget     int64
		space      float64
		experience string
		days       int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Compute the optimal flock size for your resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := models.ParseExperienceLevel(experience)
			if err != nil {
				return err
			}

			in := models.PlanningInput{
				Budget:          budget,
				SpaceM2:         space,
				ExperienceLevel: level,
				DurationDays:    days,
			}
			if err := planning.ValidateInput(in); err != nil {
				return err
			}

			calc := calculator.New(calculator.DefaultPricing())
			printOutcome(calc.ComputeRecommendation(in), in)
			return nil
		},
	}

	cmd.Flags().Int64Var(&budget, "budget", 0, "available budget in GNF")
	cmd.Flags().Float64Var(&space, "space", 0, "available housing space in m2")
	cmd.Flags().StringVar(&experience, "experience", "beginner", "experience level (beginner|intermediate|advanced)")
	cmd.Flags().IntVar(&days, "days", 30, "cycle duration in days (21-60)")
	_ = cmd.MarkFlagRequired("budget")
	_ = cmd.MarkFlagRequired("space")

	return cmd
}

func printOutcome(outcome models.Outcome, in models.PlanningInput) {
	title := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	alert := color.New(color.FgRed, color.Bold)

	if !outcome.Success {
		alert.Println("Resources are not sufficient for a viable flock.")
		for _, suggestion := range outcome.Suggestions {
			warn.Printf("  - %s\n", suggestion)
		}
		return
	}

	rec := outcome.Recommendation
	title.Printf("Recommendation: raise %d birds over a %s\n", rec.FlockSize, calculator.DescribeCycle(rec.CycleType, in.DurationDays))
	fmt.Printf("  Space allows %d birds, budget allows %d (cost per bird %d GNF)\n", rec.MaxFromSpace, rec.MaxFromBudget, rec.CostPerBird)

	fmt.Println("\nCost breakdown:")
	fmt.Printf("  Chicks     %12d\n", rec.Cost.ChickCost)
	fmt.Printf("  Feed       %12d\n", rec.Cost.FeedCost)
	fmt.Printf("  Medicine   %12d\n", rec.Cost.MedicineCost)
	fmt.Printf("  Misc       %12d\n", rec.Cost.MiscCost)
	fmt.Printf("  Mortality  %12d\n", rec.Cost.MortalityBuffer)
	fmt.Printf("  Total      %12d\n", rec.Cost.TotalCost)

	fmt.Println("\nProfitability:")
	fmt.Printf("  Expected survivors  %d of %d\n", rec.Profit.SurvivingCount, rec.FlockSize)
	fmt.Printf("  Projected revenue   %d\n", rec.Profit.Revenue)
	fmt.Printf("  Net profit          %d (ROI %.2f%%)\n", rec.Profit.NetProfit, rec.Profit.ROIPercent)
	fmt.Printf("  Break-even flock    %d birds\n", rec.Profit.BreakEvenFlockSize)

	fmt.Println("\nLimiting factors:")
	for _, factor := range rec.LimitingFactors {
		warn.Printf("  - %s (current %.0f): %s\n", factor.Factor, factor.CurrentValue, factor.Suggestion)
	}

	fmt.Println("\nAdvice:")
	for _, advice := range rec.Advice {
		fmt.Printf("  - %s\n", advice)
	}
}
