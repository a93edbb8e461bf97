package thought

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/thoughts/internal/models"
)

const (
	iconEdit     = "✎"
	iconSave     = "💾"
	iconDelete   = "🗑"
	iconLike     = "👍"
	iconFavorite = "♥"
)

var (
	rowStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("236"))

	selectedRowStyle = rowStyle.
				BorderForeground(lipgloss.Color("205"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	editingValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229"))

	iconStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			PaddingRight(1)

	likedStyle = iconStyle.
			Foreground(lipgloss.Color("39")).
			Bold(true)

	favoriteStyle = iconStyle.
			Foreground(lipgloss.Color("204")).
			Bold(true)
)

// Row is everything needed to draw one thought.
type Row struct {
	Thought  models.Thought
	Selected bool
	Editing  bool
	// EditView is the rendered edit input, shown instead of the value while
	// editing. Rows being edited without focus fall back to EditDraft.
	EditView  string
	EditDraft string
}

// Ago is the relative-time label shown above each thought.
func Ago(t models.Thought, now time.Time) string {
	return fmt.Sprintf("Added/Edited by you %d min ago", models.MinutesSince(t.LastEditted, now))
}

// Reactions renders the like and favorite affordances. A set reaction is
// drawn in its highlight color.
func Reactions(t models.Thought) string {
	like := iconStyle.Render(iconLike)
	if t.Liked {
		like = likedStyle.Render(iconLike)
	}
	fav := iconStyle.Render(iconFavorite)
	if t.Favorite {
		fav = favoriteStyle.Render(iconFavorite)
	}
	return like + fav
}

// Actions renders the edit/save toggle and the delete icon.
func Actions(editing bool) string {
	toggle := iconEdit
	if editing {
		toggle = iconSave
	}
	return iconStyle.Render(toggle) + iconStyle.Render(iconDelete)
}

// Render draws a row at the given width.
func Render(r Row, now time.Time, width int) string {
	var value string
	switch {
	case r.Editing && r.EditView != "":
		value = r.EditView
	case r.Editing:
		value = editingValueStyle.Render(r.EditDraft)
	default:
		value = valueStyle.Render(r.Thought.Value)
	}

	var b strings.Builder
	b.WriteString(metaStyle.Render(Ago(r.Thought, now)))
	b.WriteString("\n")
	b.WriteString(value)
	b.WriteString("\n")
	b.WriteString(Reactions(r.Thought))
	b.WriteString(" ")
	b.WriteString(Actions(r.Editing))

	style := rowStyle
	if r.Selected {
		style = selectedRowStyle
	}
	if width > 4 {
		style = style.Width(width - 1)
	}
	return style.Render(b.String())
}
