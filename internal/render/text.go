package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todotxt-go/internal/todo"
)

var (
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	colorPurple = lipgloss.AdaptiveColor{Light: "91", Dark: "141"}
)

// textStyles are bound to one renderer so colour detection follows the
// destination writer rather than stdout.
type textStyles struct {
	done     lipgloss.Style
	date     lipgloss.Style
	project  lipgloss.Style
	context  lipgloss.Style
	priority map[string]lipgloss.Style
	priOther lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer) textStyles {
	return textStyles{
		done:    r.NewStyle().Foreground(colorGreen),
		date:    r.NewStyle().Foreground(colorDim),
		project: r.NewStyle().Foreground(colorPurple),
		context: r.NewStyle().Foreground(colorCyan),
		priority: map[string]lipgloss.Style{
			"A": r.NewStyle().Foreground(colorRed).Bold(true),
			"B": r.NewStyle().Foreground(colorYellow).Bold(true),
			"C": r.NewStyle().Foreground(colorGreen).Bold(true),
		},
		priOther: r.NewStyle().Foreground(colorCyan),
	}
}

// writeText prints one line per task:
//
//	[x] (A) 2024-01-02 2024-01-01 Description +project @context
//
// Absent fields are omitted.
func writeText(w io.Writer, tasks []*todo.Task) error {
	s := newTextStyles(lipgloss.NewRenderer(w))
	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, s.line(t)); err != nil {
			return err
		}
	}
	return nil
}

func (s textStyles) line(t *todo.Task) string {
	parts := make([]string, 0, 5)

	if t.Completed {
		parts = append(parts, s.done.Render("[x]"))
	} else {
		parts = append(parts, "[ ]")
	}
	if t.HasPriority() {
		style, ok := s.priority[t.Priority]
		if !ok {
			style = s.priOther
		}
		parts = append(parts, style.Render("("+t.Priority+")"))
	}
	if t.CompletionDate != nil {
		parts = append(parts, s.date.Render(t.CompletionDate.String()))
	}
	if t.CreationDate != nil {
		parts = append(parts, s.date.Render(t.CreationDate.String()))
	}
	// A priority without a date leaves the separating space in the description.
	if desc := strings.TrimLeft(t.Description, " "); desc != "" {
		parts = append(parts, s.description(desc))
	}
	return strings.Join(parts, " ")
}

// description highlights project and context words. Splitting and joining
// on the single space keeps the original spacing.
func (s textStyles) description(desc string) string {
	words := strings.Split(desc, " ")
	for i, word := range words {
		switch {
		case len(word) > 1 && word[0] == '+':
			words[i] = s.project.Render(word)
		case len(word) > 1 && word[0] == '@':
			words[i] = s.context.Render(word)
		}
	}
	return strings.Join(words, " ")
}
