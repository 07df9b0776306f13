package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bojcoach/internal/recommend"
	"github.com/abhisek/bojcoach/internal/weights"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <handle>",
	Short: "Generate an adaptive study plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeAll, err := buildCoach(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		urgency, _ := cmd.Flags().GetString("urgency")
		focus, _ := cmd.Flags().GetString("focus")
		mood, _ := cmd.Flags().GetString("mood")
		minutes, _ := cmd.Flags().GetInt("time")

		rep, err := svc.Recommendations(cmd.Context(), args[0], weights.Context{
			Urgency:              urgency,
			Focus:                focus,
			Mood:                 mood,
			TimeAvailableMinutes: minutes,
		})
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(rep)
		}
		printPlan(rep.User.Handle, rep.Adaptive, &rep.Set)
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("urgency", "", "Urgency of improvement: high, medium or low")
	recommendCmd.Flags().String("focus", "", "What to optimize for: weakness, tier_up or general")
	recommendCmd.Flags().String("mood", "", "Current mood: motivated, neutral or frustrated")
	recommendCmd.Flags().Int("time", 0, "Minutes available to study today")
	recommendCmd.Flags().Bool("json", false, "Emit the raw plan as JSON")
}

func printPlan(handle string, adaptive bool, set *recommend.Set) {
	mode := "baseline"
	if adaptive {
		mode = "adaptive"
	}
	fmt.Printf("Study plan for %s (%s)\n", handle, mode)

	if len(set.Immediate) > 0 {
		fmt.Println("\nToday")
		fmt.Println(strings.Repeat("─", 60))
		for _, r := range set.Immediate {
			fmt.Printf("[%-6s] %s\n", r.Priority, r.Action)
			fmt.Printf("         %s (%s)\n", r.Reason, r.EstimatedTime)
		}
	}

	if len(set.ShortTerm) > 0 {
		fmt.Println("\nThis week")
		fmt.Println(strings.Repeat("─", 60))
		for _, r := range set.ShortTerm {
			fmt.Printf("- %s", r.Goal)
			if r.TargetProblems > 0 {
				fmt.Printf(" (%d problems, %.1f%% -> %.1f%%)",
					r.TargetProblems, r.CurrentAccuracy, r.TargetAccuracy)
			}
			fmt.Println()
			if r.Breakdown != nil {
				fmt.Printf("  weakness %d, progress %d, review %d, challenge %d\n",
					r.Breakdown.Weakness, r.Breakdown.Progress, r.Breakdown.Review, r.Breakdown.Challenge)
			}
		}
	}

	if len(set.LongTerm) > 0 {
		fmt.Println("\nThis month")
		fmt.Println(strings.Repeat("─", 60))
		for _, r := range set.LongTerm {
			switch r.Type {
			case "monthly_tier_goal":
				fmt.Printf("- Reach %s from %s (about %d rating, %d focused problems)\n",
					r.TargetTier, r.CurrentTier, r.EstimatedRatingGain, r.RequiredEffort)
			case "skill_development":
				fmt.Printf("- Build up %s: %s\n", r.Area, strings.Join(r.LearningPath, " then "))
			}
		}
	}

	if len(set.Reasoning) > 0 {
		fmt.Println("\nWhy this plan")
		for _, rs := range set.Reasoning {
			fmt.Printf("- %s\n", rs)
		}
	}

	if set.PersonalizedMessage != "" {
		fmt.Println()
		fmt.Println(set.PersonalizedMessage)
	}
}
