// Package picker implements the interactive fuzzy worktree picker.
package picker

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/W1Real/workty/internal/ui/styles"
)

const maxVisible = 10

// Item is one selectable line.
type Item struct {
	// Label is matched against the filter and displayed.
	Label string
	// Detail is displayed after the label but not matched.
	Detail string
}

// Result is the outcome of a picker run.
type Result struct {
	// Index into the items passed to Run; -1 when cancelled.
	Index     int
	Cancelled bool
}

type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

type model struct {
	prompt    string
	items     []Item
	input     textinput.Model
	filtered  []fuzzy.Match
	cursor    int
	selected  int
	done      bool
	cancelled bool
}

func newModel(prompt string, items []Item) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.Focus()

	m := model{prompt: prompt, items: items, input: ti, selected: -1}
	m.applyFilter()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.selected = m.filtered[m.cursor].Index
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Bold.Render(m.prompt) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	for i := start; i < end; i++ {
		match := m.filtered[i]
		item := m.items[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.AccentStyle.Render("> ")
		}
		b.WriteString(cursor + highlight(item.Label, match.MatchedIndexes, i == m.cursor))
		if item.Detail != "" {
			b.WriteString("  " + styles.MutedStyle.Render(item.Detail))
		}
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching worktrees") + "\n")
	}
	b.WriteString(styles.MutedStyle.Render("↑/↓ select • enter confirm • esc cancel"))
	return b.String()
}

// highlight renders label with matched characters emphasized.
func highlight(label string, matched []int, isCursor bool) string {
	base := styles.NormalStyle
	if isCursor {
		base = styles.AccentStyle
	}
	if len(matched) == 0 {
		return base.Render(label)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var b strings.Builder
	// fuzzy reports byte offsets
	for i, r := range label {
		if set[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (m *model) applyFilter() {
	filter := m.input.Value()
	if filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i, it := range m.items {
			m.filtered[i] = fuzzy.Match{Str: it.Label, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(filter, itemSource(m.items))
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Run shows the picker on stderr and returns the chosen item.
func Run(prompt string, items []Item) (Result, error) {
	if len(items) == 0 {
		return Result{Index: -1, Cancelled: true}, nil
	}
	p := tea.NewProgram(newModel(prompt, items), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return Result{Index: -1}, err
	}
	m := final.(model)
	if m.cancelled || m.selected < 0 {
		return Result{Index: -1, Cancelled: true}, nil
	}
	return Result{Index: m.selected}, nil
}
