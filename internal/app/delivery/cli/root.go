// Package cli is the terminal client: the same assessment, results and
// booking flows as the HTTP service, with state kept in a local sqlite file.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	statePath  string
	apiBaseUrl string
	verbose    bool
)

var RootCmd = &cobra.Command{
	Use:           "carerouter",
	Short:         "Mental health support routing from the terminal",
	Long:          "Answer a short assessment, get a personalized support pathway and book a visit with a nearby provider.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&statePath, "state", "", "State file (default: $CAREROUTER_STATE or ~/.carerouter/state.db)")
	RootCmd.PersistentFlags().StringVar(&apiBaseUrl, "api", "", "CareRouter API base url (default: $CAREROUTER_API_URL)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log service calls to stderr")
}

func Execute() error {
	return RootCmd.Execute()
}

func getStatePath() string {
	if statePath != "" {
		return statePath
	}
	if env := os.Getenv("CAREROUTER_STATE"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".carerouter", "state.db")
}
