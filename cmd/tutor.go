package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/socratiq/internal/assessment"
	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/journal"
	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/llm"
	"github.com/abhisek/socratiq/internal/session"
	"github.com/abhisek/socratiq/internal/store"
	"github.com/abhisek/socratiq/internal/tui"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Start an interactive tutoring session",
	RunE:  runTutor,
}

func init() {
	tutorCmd.Flags().String("learner", "local", "Learner id")
	tutorCmd.Flags().String("age-band", string(learner.AgeBandAdult), "Age band: 6-9, 10-12, teen, adult")
	tutorCmd.Flags().Bool("minor", false, "Learner is a minor")
	tutorCmd.Flags().String("subject", "general", "Subject to work on")
	tutorCmd.Flags().String("topic", "", "Topic to work on (required)")
	tutorCmd.Flags().String("objective", "", "Session objective")
	tutorCmd.Flags().String("mode", string(dialogue.ModeSocratic), "Tutor mode: socratic, examiner, explainer")
	tutorCmd.Flags().Bool("teacher-present", false, "A teacher is present")

	// The root command runs the tutor too, so it needs the same flags.
	rootCmd.Flags().AddFlagSet(tutorCmd.Flags())
}

func runTutor(cmd *cobra.Command, _ []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return fmt.Errorf("--topic is required")
	}

	learnerID, _ := cmd.Flags().GetString("learner")
	ageBand, _ := cmd.Flags().GetString("age-band")
	minor, _ := cmd.Flags().GetBool("minor")
	subject, _ := cmd.Flags().GetString("subject")
	objective, _ := cmd.Flags().GetString("objective")
	modeFlag, _ := cmd.Flags().GetString("mode")
	teacherPresent, _ := cmd.Flags().GetBool("teacher-present")

	profile := learner.Profile{
		LearnerID: learnerID,
		AgeBand:   learner.AgeBand(ageBand),
		Safety:    learner.SafetyFlags{Minor: minor},
	}
	if !profile.AgeBand.Valid() {
		return fmt.Errorf("unknown age band %q", ageBand)
	}
	mode := dialogue.TutorMode(modeFlag)
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q", modeFlag)
	}

	// Journal is best-effort; the session works without it.
	var jnl *journal.Journal
	if dbPath, err := resolveDBPath(cmd); err == nil {
		if j, err := journal.Open(dbPath); err == nil {
			jnl = j
			defer jnl.Close()
		} else {
			fmt.Fprintln(os.Stderr, "journal unavailable:", err)
		}
	}

	// LLM provider is optional; assessments fall back to templates.
	var gen assessment.Generator
	var log llm.RequestLog
	if jnl != nil {
		log = jnl
	}
	if provider, err := llm.NewProviderFromEnv(cmd.Context(), log); err == nil {
		gen = assessment.NewLLMGenerator(provider, assessment.DefaultConfig())
	} else {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Assessment prompts will use built-in templates.")
	}

	return tui.Run(tui.Options{
		Orchestrator: session.NewOrchestrator(gen),
		Store:        store.New(),
		Journal:      jnl,
		SessionID:    uuid.NewString(),
		Profile:      profile,
		Goal:         learner.Goal{Subject: subject, Topic: topic, Objective: objective},
		Mode:         mode,
		Flags:        learner.ContextFlags{IsTeacherPresent: teacherPresent},
	})
}
