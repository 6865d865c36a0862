package theme

import "charm.land/lipgloss/v2"

// Styles contains the pre-built lipgloss styles shared by the wizard.
type Styles struct {
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	StepHeading    lipgloss.Style
	Label          lipgloss.Style
	Muted          lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonSubmit   lipgloss.Style

	Selected lipgloss.Style
	Progress lipgloss.Style

	BannerSuccess lipgloss.Style
	BannerError   lipgloss.Style
	ErrorText     lipgloss.Style
}

func (t *Theme) buildStyles() *Styles {
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocused)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true).
			Align(lipgloss.Center),
		StepHeading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBright)).
			Bold(true).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),

		HintKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),

		ButtonNormal: button.
			Foreground(lipgloss.Color(t.FgBright)).
			Background(lipgloss.Color(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(lipgloss.Color(t.FgMuted)).
			Background(lipgloss.Color(t.BgMantle)),
		ButtonFocused: button.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Primary)).
			Bold(true),
		ButtonSubmit: button.
			Foreground(lipgloss.Color(t.FgBright)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Background(lipgloss.Color(t.BgSurface0)).
			Bold(true),
		Progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)),

		BannerSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Success)).
			Bold(true).
			Padding(0, 1),
		BannerError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBright)).
			Background(lipgloss.Color(t.Error)).
			Bold(true).
			Padding(0, 1),
		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),
	}
}
