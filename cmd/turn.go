package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/socratiq/internal/session"
)

var turnCmd = &cobra.Command{
	Use:   "turn [request.json]",
	Short: "Run one orchestrated turn from a JSON request",
	Long: `Reads a session request from the given file (or stdin when omitted),
runs one orchestrated turn and prints the full session output as JSON.
Thread the returned dialogueState and skillGraph into the next request.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}

		var req session.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("decode request: %w", err)
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		orch := session.NewOrchestrator(nil)
		out, err := orch.RunLearningSession(cmd.Context(), req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
