// Package styles holds the lipgloss styles used for human-readable output
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/taskflow/internal/models"
)

var (
	// Column styles
	ColumnWidth = 36
	ColumnStyle lipgloss.Style

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Total:", "Overdue:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	OverdueStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Priority badges
	PriorityStyles map[models.Priority]lipgloss.Style
)

// palette holds the colors for one theme
type palette struct {
	Accent, Title, Subtle, Normal string
	High, Medium, Low             string
	ErrorFg, InfoFg               string
}

var palettes = map[models.Theme]palette{
	models.ThemeDark: {
		Accent: "#7E9CD8", Title: "#DCD7BA", Subtle: "#727169", Normal: "#C8C093",
		High: "#E46876", Medium: "#E6C384", Low: "#98BB6C",
		ErrorFg: "#FF5D62", InfoFg: "#7FB4CA",
	},
	models.ThemeLight: {
		Accent: "#4D699B", Title: "#1F1F28", Subtle: "#8A8980", Normal: "#545464",
		High: "#C84053", Medium: "#77713F", Low: "#6F894E",
		ErrorFg: "#D7474B", InfoFg: "#4E8CA2",
	},
}

func init() {
	Init(models.DefaultTheme)
}

// Init initializes all CLI styles for the given theme
func Init(theme models.Theme) {
	colors, ok := palettes[theme]
	if !ok {
		colors = palettes[models.DefaultTheme]
	}

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(0, 1).
		Width(ColumnWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	OverdueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg))

	PriorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.High)),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Medium)),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Low)),
	}
}

// Priority renders a priority badge such as "[High]"
func Priority(p models.Priority) string {
	style, ok := PriorityStyles[p]
	if !ok {
		return "[" + p.Label() + "]"
	}
	return style.Render("[" + p.Label() + "]")
}
