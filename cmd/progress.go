package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <handle>",
	Short: "Record a snapshot and show deltas since the last one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeAll, err := buildCoach(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		rep, err := svc.Progress(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(rep)
		}

		if rep.First {
			fmt.Printf("First snapshot recorded for %s (%d rating, %d solved).\n",
				rep.User.Handle, rep.User.Rating, rep.User.SolvedCount)
			fmt.Println("Run this again after some solving to see deltas.")
		} else {
			last := rep.Pattern.History[len(rep.Pattern.History)-1]
			fmt.Printf("%s since the last snapshot: rating %+d, solved %+d\n",
				rep.User.Handle, last.RatingChange, last.SolvedCountChange)
			fmt.Printf("Trend: %s  momentum %.1f\n",
				rep.Pattern.Performance.Trend, rep.Pattern.Performance.Momentum)
		}

		if len(rep.Strengths) > 0 {
			fmt.Println("\nStrengths")
			for _, s := range rep.Strengths {
				fmt.Printf("  %-20s %5.1f%%  (%d/%d)\n", s.Tag, s.SuccessRate, s.Solved, s.Tried)
			}
		}
		if len(rep.Improvements) > 0 {
			fmt.Println("\nWorth pushing on")
			for _, s := range rep.Improvements {
				fmt.Printf("  %-20s %5.1f%%  (%d/%d)\n", s.Tag, s.SuccessRate, s.Solved, s.Tried)
			}
		}
		fmt.Printf("\nDifficulty range %s to %s, average level %.1f\n",
			rep.Difficulty.Summary.Easiest, rep.Difficulty.Summary.Hardest,
			rep.Difficulty.Summary.AverageLevel)
		fmt.Printf("Activity: %.1f/day, %.1f/week (%s)\n",
			rep.Activity.DailyAvg, rep.Activity.WeeklyAvg, rep.Activity.Label)
		return nil
	},
}

func init() {
	progressCmd.Flags().Bool("json", false, "Emit the raw report as JSON")
}
