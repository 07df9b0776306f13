package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/bojcoach/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

func runDashboard(cmd *cobra.Command) error {
	svc, closeAll, err := buildCoach(cmd)
	if err != nil {
		return err
	}
	defer closeAll()

	return dashboard.Run(svc)
}
