package cmd

import (
	"github.com/abhisek/socratiq/internal/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "socratiq",
	Short: "Socratic tutoring session engine",
	Long:  "Socratiq — a deterministic Socratic tutoring engine: guided questioning, skill tracking, and auditable session traces in the terminal.",
	RunE:  runTutor,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite journal file (overrides SOCRATIQ_DB env var)")

	rootCmd.AddCommand(turnCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(tracesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the journal path using --db flag (highest
// priority), then SOCRATIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, journal.EnsureDir(p)
	}
	return journal.DefaultDBPath()
}
