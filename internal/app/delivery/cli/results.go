package cli

import (
	"carerouter-service/internal/app/services/core/results"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "results",
		Short: "Show your support pathway",
		RunE:  withApp(runResults),
	})
}

func runResults(cmd *cobra.Command, args []string, a *app) error {
	view, redirect, err := a.results.Load(cmd.Context(), a.clientID)
	if err != nil {
		return err
	}
	if redirect != "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No pathway yet. Run `carerouter assess` first.")
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), results.RenderText(view))
	if len(view.Map.Markers) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d resources can be shown on a map.\n", len(view.Map.Markers))
	}
	return nil
}
