package notestui

import "github.com/charmbracelet/lipgloss"

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	paneStyle       = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	paneActiveStyle = paneStyle.BorderForeground(lipgloss.Color("33"))

	labelStyle         = lipgloss.NewStyle().Bold(true)
	valueMuted         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24"))
	modalStyle         = lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
)
