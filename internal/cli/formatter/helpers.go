package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDaysFrom describes how far day is from now in calendar days.
func RelativeDaysFrom(day, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = day.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	days := int(math.Round(target.Sub(today).Hours() / 24))

	switch {
	case days == 0:
		return "сегодня"
	case days == 1:
		return "завтра"
	case days == -1:
		return "вчера"
	case days > 0:
		return fmt.Sprintf("через %d дн.", days)
	default:
		return fmt.Sprintf("%d дн. назад", -days)
	}
}

// DueStyled colors a due date by urgency: two days or less red, a week or
// less yellow.
func DueStyled(day, now time.Time) string {
	date := day.Format("2006-01-02")
	hours := day.Sub(now).Hours()
	switch {
	case hours <= 48:
		date = StyleRed.Render(date)
	case hours <= 7*24:
		date = StyleYellow.Render(date)
	}
	return date + " " + Dim("("+RelativeDaysFrom(day, now)+")")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash returns s, or a dimmed dash when s is empty.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
