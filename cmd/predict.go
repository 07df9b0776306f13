package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict <handle>",
	Short: "Predict when the user reaches the next tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeAll, err := buildCoach(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		rep, err := svc.Prediction(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(rep)
		}

		p := rep.Prediction
		fmt.Printf("%s -> %s in %s (%s confidence, %.1f%% there)\n",
			rep.User.Handle, p.NextTier, p.EstimatedTime, p.Confidence, p.CurrentProgress)

		if len(p.Blockers) > 0 {
			fmt.Println("\nBlockers")
			for _, b := range p.Blockers {
				fmt.Printf("- %s\n", b)
			}
		}
		if len(p.Recommendations) > 0 {
			fmt.Println("\nTo get there")
			for _, r := range p.Recommendations {
				fmt.Printf("- %s\n", r)
			}
		}
		return nil
	},
}

func init() {
	predictCmd.Flags().Bool("json", false, "Emit the raw prediction as JSON")
}
