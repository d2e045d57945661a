package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the presentation mode
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle flips light and dark
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme accepts "light" or "dark"
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Palette holds the colours a theme renders with
type Palette struct {
	Text            lipgloss.Color
	TextSecondary   lipgloss.Color
	Primary         lipgloss.Color
	Border          lipgloss.Color
	UserBubble      lipgloss.Color
	UserText        lipgloss.Color
	AssistantBubble lipgloss.Color
	AssistantText   lipgloss.Color
	Error           lipgloss.Color
}

var (
	lightPalette = Palette{
		Text:            lipgloss.Color("#000000"),
		TextSecondary:   lipgloss.Color("#8E8E93"),
		Primary:         lipgloss.Color("#007AFF"),
		Border:          lipgloss.Color("#E5E5EA"),
		UserBubble:      lipgloss.Color("#007AFF"),
		UserText:        lipgloss.Color("#FFFFFF"),
		AssistantBubble: lipgloss.Color("#E5E5EA"),
		AssistantText:   lipgloss.Color("#000000"),
		Error:           lipgloss.Color("#FF3B30"),
	}

	darkPalette = Palette{
		Text:            lipgloss.Color("#FFFFFF"),
		TextSecondary:   lipgloss.Color("#8E8E93"),
		Primary:         lipgloss.Color("#0A84FF"),
		Border:          lipgloss.Color("#38383A"),
		UserBubble:      lipgloss.Color("#0A84FF"),
		UserText:        lipgloss.Color("#FFFFFF"),
		AssistantBubble: lipgloss.Color("#2C2C2E"),
		AssistantText:   lipgloss.Color("#FFFFFF"),
		Error:           lipgloss.Color("#FF453A"),
	}
)

// Palette returns the colours for the theme
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// BubbleStyle returns the style a message of the given role is rendered with
func (p Palette) BubbleStyle(role Role) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if role == RoleUser {
		return style.Background(p.UserBubble).Foreground(p.UserText)
	}
	return style.Background(p.AssistantBubble).Foreground(p.AssistantText)
}

// SecondaryStyle renders muted text
func (p Palette) SecondaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.TextSecondary)
}

// ErrorStyle renders error text
func (p Palette) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Error).Bold(true)
}

// TitleStyle renders headers
func (p Palette) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Text).Bold(true)
}

// AccentStyle renders highlighted items
func (p Palette) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Primary)
}
