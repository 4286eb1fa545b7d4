package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bitbrush/internal/config"
	"bitbrush/internal/stream"
	"bitbrush/pkg/bitbrush"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#25A065")).
		Bold(true)

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))
)

// keyMap defines the key bindings for the pattern explorer.
type keyMap struct {
	Next      key.Binding
	Restart   key.Binding
	Generator key.Binding
	StepUp    key.Binding
	StepDown  key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Next:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "next pattern")),
	Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Generator: key.NewBinding(key.WithKeys("g", "tab"), key.WithHelp("g", "next generator")),
	StepUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "step up")),
	StepDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "step down")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// explorerModel is the Bubble Tea model for stepping through the
// generators one pattern at a time. Each advanced pattern becomes one
// rendered row, building up the same binary image a plotting client
// would draw.
type explorerModel struct {
	brush    *bitbrush.Brush
	genIndex int
	step     int

	seq  *bitbrush.Sequence
	rows []string
	done bool
	err  error
}

func newExplorerModel(cfg *config.Config) (explorerModel, error) {
	brush, err := bitbrush.New(cfg.Brush.Width)
	if err != nil {
		return explorerModel{}, err
	}

	m := explorerModel{
		brush:    brush,
		genIndex: max(slices.Index(config.Generators, cfg.Brush.Generator), 0),
		step:     cfg.Brush.Step,
	}
	m.seq, err = m.newSequence()
	return m, err
}

// newSequence starts a fresh run of the selected generator.
func (m *explorerModel) newSequence() (*bitbrush.Sequence, error) {
	return stream.NewSequence(m.brush, config.Generators[m.genIndex], m.step)
}

// restart throws away the drawn rows and begins the sequence again.
func (m *explorerModel) restart() {
	m.rows = nil
	m.done = false
	m.seq, m.err = m.newSequence()
}

// Init initializes the Bubble Tea model.
func (m explorerModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Next):
		if m.done || m.err != nil {
			return m, nil
		}
		if v, ok := m.seq.Next(); ok {
			m.rows = append(m.rows, m.brush.Visualize(v))
		} else {
			m.done = true
		}

	case key.Matches(keyMsg, keys.Restart):
		m.restart()

	case key.Matches(keyMsg, keys.Generator):
		m.genIndex = (m.genIndex + 1) % len(config.Generators)
		m.restart()

	case key.Matches(keyMsg, keys.StepUp):
		m.step++
		m.restart()

	case key.Matches(keyMsg, keys.StepDown):
		if m.step > 1 {
			m.step--
			m.restart()
		}
	}

	return m, nil
}

// View renders the accumulated pattern rows.
func (m explorerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bitbrush pattern explorer"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("error: %v\n", m.err))
		return b.String()
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf("generator: %s  width: %d  step: %d  pattern %d/%d",
		config.Generators[m.genIndex], m.brush.Width(), m.step, len(m.rows), m.seq.Len())))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		for _, c := range row {
			if c == '1' {
				b.WriteString(onStyle.Render("█"))
			} else {
				b.WriteString(offStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}
	if m.done {
		b.WriteString(helpStyle.Render("sequence exhausted, press r to restart"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: next • g: generator • +/-: step • r: restart • q: quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive pattern explorer.
func Run(cfg *config.Config) error {
	m, err := newExplorerModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
