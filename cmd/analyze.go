package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bojcoach/internal/coach"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <handle>",
	Short: "Full profile analysis: skills, difficulty spread, weak areas",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeAll, err := buildCoach(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		a, err := svc.Analysis(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(a)
		}
		printAnalysis(a)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Emit the raw report as JSON")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAnalysis(a *coach.Analysis) {
	fmt.Printf("%s  %s (%d rating, %d solved)\n",
		a.User.Handle, a.Tier.Name, a.User.Rating, a.User.SolvedCount)
	fmt.Printf("Toward %s: %.1f%% (%d rating to go)\n\n",
		a.Tier.NextName, a.Tier.Progress, a.Tier.RatingToNext)

	fmt.Println("Top tags by accuracy")
	fmt.Println(strings.Repeat("─", 44))
	for i, s := range a.TagSkills {
		if i >= 8 {
			break
		}
		fmt.Printf("%-20s %5.1f%%  (%d/%d)\n", s.Tag, s.SuccessRate, s.Solved, s.Tried)
	}

	if len(a.WeakTags) > 0 {
		fmt.Println("\nWeak areas")
		fmt.Println(strings.Repeat("─", 44))
		for _, w := range a.WeakTags {
			fmt.Printf("%-20s %5.1f%%  %-8s  %s\n", w.Tag, w.SuccessRate, w.Severity, w.EstimatedTime)
		}
	}

	fmt.Println("\nDifficulty")
	fmt.Println(strings.Repeat("─", 44))
	fmt.Printf("Range %s to %s, average level %.1f\n",
		a.Difficulty.Summary.Easiest, a.Difficulty.Summary.Hardest, a.Difficulty.Summary.AverageLevel)
	fmt.Printf("Current tier mastery %.1f%%", a.Performance.CurrentLevelMastery)
	if a.Performance.ReadyForNextLevel {
		fmt.Print("  (ready for the next tier)")
	}
	fmt.Println()
	fmt.Println(a.Performance.Recommendation)

	fmt.Printf("\nActivity: %.1f/day, %.1f/week (%s)\n",
		a.Activity.DailyAvg, a.Activity.WeeklyAvg, a.Activity.Label)

	fmt.Printf("\nOutlook: %s in %s (%s confidence)\n",
		a.Prediction.NextTier, a.Prediction.EstimatedTime, a.Prediction.Confidence)

	if a.Message != "" {
		fmt.Println()
		fmt.Println(a.Message)
	}
}
