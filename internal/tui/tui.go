// Package tui is the interactive terminal front end: a single chat screen
// driving the session orchestrator turn by turn. It only calls the public
// engine API; no tutoring logic lives here.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/journal"
	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/session"
	"github.com/abhisek/socratiq/internal/skillgraph"
	"github.com/abhisek/socratiq/internal/store"
	"github.com/abhisek/socratiq/internal/ui/theme"
)

// Options carries the injected dependencies for the chat screen.
type Options struct {
	Orchestrator *session.Orchestrator
	Store        *store.Store
	Journal      *journal.Journal // optional audit sink

	SessionID string
	Profile   learner.Profile
	Goal      learner.Goal
	Mode      dialogue.TutorMode
	Flags     learner.ContextFlags
}

type lineKind int

const (
	lineTutor lineKind = iota
	lineLearner
	lineQuestion
	lineRefusal
)

type line struct {
	kind lineKind
	text string
}

// Model is the root Bubble Tea model.
type Model struct {
	opts Options

	state *dialogue.State
	graph *skillgraph.Graph
	rec   store.SessionRecord

	input      textinput.Model
	transcript []line
	errMsg     string
	width      int
	height     int
}

func newModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Say something..."
	ti.CharLimit = 280
	ti.Focus()

	return Model{
		opts:  opts,
		graph: skillgraph.NewGraph(),
		input: ti,
		rec: store.SessionRecord{
			SessionID:  opts.SessionID,
			LearnerID:  opts.Profile.LearnerID,
			Goal:       opts.Goal,
			Mode:       opts.Mode,
			CreatedAt:  time.Now().UTC(),
			TutorTurns: []dialogue.TurnPlan{},
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), func() tea.Msg { return openingTurnMsg{} })
}

// openingTurnMsg triggers the tutor's opening move before any input.
type openingTurnMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case openingTurnMsg:
		m.runTurn("")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			utterance := strings.TrimSpace(m.input.Value())
			if utterance == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.transcript = append(m.transcript, line{kind: lineLearner, text: utterance})
			m.runTurn(utterance)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runTurn executes one orchestrated turn and folds the result into the
// transcript, the session record and the stores.
func (m *Model) runTurn(utterance string) {
	req := session.Request{
		SessionID: m.opts.SessionID,
		Profile:   m.opts.Profile,
		Goal:      m.opts.Goal,
		Mode:      m.opts.Mode,
		Flags:     m.opts.Flags,
		Utterance: utterance,
		State:     m.state,
		Graph:     m.graph,
	}

	out, err := m.opts.Orchestrator.RunLearningSession(context.Background(), req)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.state = &out.DialogueState
	m.graph = out.SkillGraphDelta.NewGraph

	if out.TutorTurn.ShouldRefuse {
		m.transcript = append(m.transcript, line{kind: lineRefusal, text: out.TutorTurn.Message})
	} else {
		m.transcript = append(m.transcript, line{kind: lineTutor, text: out.TutorTurn.Message})
		for _, q := range out.TutorTurn.Questions {
			m.transcript = append(m.transcript, line{kind: lineQuestion, text: q})
		}
	}

	m.rec.UpdatedAt = time.Now().UTC()
	m.rec.TutorTurns = append(m.rec.TutorTurns, out.TutorTurn)
	m.rec.Observations = append(m.rec.Observations, out.Observations...)
	m.rec.Traces = append(m.rec.Traces, out.Trace)
	m.rec.Refusals = append(m.rec.Refusals, out.Trace.Refusals...)

	if m.opts.Store != nil {
		if err := m.opts.Store.AppendSession(m.rec); err != nil {
			m.errMsg = err.Error()
		}
		_ = m.opts.Store.SaveLearnerState(store.LearnerRecord{
			LearnerID: m.opts.Profile.LearnerID,
			Profile:   m.opts.Profile,
			Graph:     m.graph,
			UpdatedAt: m.rec.UpdatedAt,
		})
	}
	if m.opts.Journal != nil {
		if err := m.opts.Journal.AppendTrace(context.Background(), out.Trace); err != nil {
			fmt.Fprintln(os.Stderr, "journal:", err)
		}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	header := theme.Header.Width(m.width).Render(
		theme.Title.Render("socratiq") + theme.Subtitle.Render("  "+m.opts.Goal.Topic),
	)
	footer := theme.Footer.Width(m.width).Render("Enter send · Esc quit" + m.skillSummary())

	input := theme.InputFrame.Width(m.width - 2).Render(m.input.View())

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(input)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body := lipgloss.NewStyle().Width(m.width).Height(bodyHeight).Render(m.renderTranscript())

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, body, input, footer))
	return v
}

func (m Model) renderTranscript() string {
	if m.errMsg != "" {
		return theme.Refusal.Render("error: " + m.errMsg)
	}

	var b strings.Builder
	for _, l := range m.transcript {
		switch l.kind {
		case lineTutor:
			b.WriteString(theme.TutorLabel.Render("tutor") + "\n")
			b.WriteString(theme.TutorMessage.Render(l.text) + "\n")
		case lineLearner:
			b.WriteString(theme.LearnerLabel.Render("you") + "\n")
			b.WriteString(theme.LearnerMessage.Render(l.text) + "\n")
		case lineQuestion:
			b.WriteString(theme.Question.Render("? "+l.text) + "\n")
		case lineRefusal:
			b.WriteString(theme.Refusal.Render(l.text) + "\n")
		}
	}
	return b.String()
}

// skillSummary renders the confidence bands that have moved off Low.
func (m Model) skillSummary() string {
	if m.graph == nil {
		return ""
	}
	var parts []string
	for _, id := range m.graph.Skills() {
		st := m.graph.State(id)
		if st.Band == skillgraph.BandLow {
			continue
		}
		style := theme.BandMedium
		if st.Band == skillgraph.BandHigh {
			style = theme.BandHigh
		}
		parts = append(parts, style.Render(id.DisplayName()))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  ·  " + strings.Join(parts, " ")
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
