package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — calm and readable for long tutoring sessions
var (
	Primary   = lipgloss.Color("#0EA5E9") // Sky Blue
	Secondary = lipgloss.Color("#A78BFA") // Soft Violet
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#E2E8F0") // Light Slate
	TextDim   = lipgloss.Color("#64748B") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Near Black
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Dialogue roles
var (
	TutorMessage = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	LearnerMessage = lipgloss.NewStyle().
			Foreground(Secondary).
			PaddingLeft(2)

	TutorLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	LearnerLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Question = lipgloss.NewStyle().
			Foreground(Accent).
			PaddingLeft(4)

	Refusal = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true).
		PaddingLeft(2)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Foreground(TextDim).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	InputFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)

// Skill bands
var (
	BandLow = lipgloss.NewStyle().
		Foreground(TextDim)

	BandMedium = lipgloss.NewStyle().
			Foreground(Accent)

	BandHigh = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)
)
