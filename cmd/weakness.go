package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var weaknessCmd = &cobra.Command{
	Use:   "weakness <handle>",
	Short: "Show the weakest algorithm tags with study estimates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeAll, err := buildCoach(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		rep, err := svc.Weakness(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(rep)
		}

		if len(rep.WeakTags) == 0 {
			fmt.Printf("%s has no notable weak areas. Keep the streak going.\n", rep.User.Handle)
			return nil
		}

		fmt.Printf("Weak areas for %s (worst first)\n", rep.User.Handle)
		fmt.Println(strings.Repeat("─", 60))
		for _, w := range rep.WeakTags {
			fmt.Printf("%-20s %5.1f%%  %-8s  potential %-6s  %s\n",
				w.Tag, w.SuccessRate, w.Severity, w.ImprovementPotential, w.EstimatedTime)
		}
		if rep.Message != "" {
			fmt.Println()
			fmt.Println(rep.Message)
		}
		return nil
	},
}

func init() {
	weaknessCmd.Flags().Bool("json", false, "Emit the raw report as JSON")
}
