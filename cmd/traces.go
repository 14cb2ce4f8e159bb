package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/socratiq/internal/journal"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List journaled session traces",
	RunE: func(cmd *cobra.Command, args []string) error {
		learnerID, _ := cmd.Flags().GetString("learner")
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
		jnl, err := journal.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer jnl.Close()

		traces, err := jnl.ListTraces(cmd.Context(), learnerID, limit)
		if err != nil {
			return fmt.Errorf("list traces: %w", err)
		}
		if len(traces) == 0 {
			fmt.Println("No traces found.")
			return nil
		}

		fmt.Printf("%-20s  %-12s  %-5s  %-10s  %-8s  %s\n",
			"Timestamp", "Session", "Turn", "Updates", "Assess", "Refusals")
		fmt.Println(strings.Repeat("─", 80))
		for _, tr := range traces {
			sessionID := tr.SessionID
			if len(sessionID) > 12 {
				sessionID = sessionID[:12]
			}
			assess := ""
			if tr.AssessmentGenerated {
				assess = "yes"
			}
			fmt.Printf("%-20s  %-12s  %-5d  %-10d  %-8s  %s\n",
				tr.TimestampISO, sessionID, tr.TurnCount, tr.SkillUpdatesCount,
				assess, strings.Join(tr.Refusals, ","))
		}
		return nil
	},
}

func init() {
	tracesCmd.Flags().String("learner", "local", "Learner id")
	tracesCmd.Flags().Int("limit", 20, "Maximum traces to list")
}
