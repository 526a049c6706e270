// Package browser implements the interactive command browser behind
// "cli browse": a sidebar of every registered command and a scrollable
// help pane for the selected one.
package browser

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/ui/splitpanel"
	"github.com/footprint-tools/clikit/internal/ui/style"
)

// ErrNotTerminal is returned by Run when stdin or stdout is redirected.
var ErrNotTerminal = errors.New("command browser requires an interactive terminal")

const (
	defaultWidth  = 100
	defaultHeight = 30
	footerHeight  = 1
	pageStep      = 10
)

var layoutConfig = splitpanel.Config{
	SidebarWidthPercent: 0.3,
	SidebarMinWidth:     24,
	SidebarMaxWidth:     40,
}

// Run opens the browser on the controlling terminal and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, r *dispatchers.Registry) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	p := tea.NewProgram(
		New(r, style.GetColors()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type item struct {
	label  string
	header bool
	cmd    *dispatchers.Command
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "u"), key.WithHelp("pgup/u", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "d"), key.WithHelp("pgdn/d", "scroll down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Top, k.Bottom}}
}

// Model is the bubbletea model of the browser.
type Model struct {
	items         []item
	cursor        int
	sidebarScroll int
	width         int
	height        int
	content       viewport.Model
	keys          keyMap
	help          help.Model
	colors        style.ColorConfig
}

// New builds a browser over r. Commands are grouped the same way global
// help groups them.
func New(r *dispatchers.Registry, colors style.ColorConfig) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Info))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Muted))
	h.Styles.ShortSeparator = h.Styles.ShortDesc

	m := Model{
		items:  buildItems(r),
		keys:   defaultKeyMap(),
		help:   h,
		colors: colors,
	}
	m.resize(defaultWidth, defaultHeight)
	m.jumpToFirst()
	m.syncContent()
	return m
}

func buildItems(r *dispatchers.Registry) []item {
	var items []item
	add := func(title string, cmds []*dispatchers.Command) {
		if len(cmds) == 0 {
			return
		}
		items = append(items, item{label: title, header: true})
		for _, c := range cmds {
			items = append(items, item{label: c.QualifiedName(), cmd: c})
		}
	}

	for _, ns := range r.Namespaces() {
		add(ns.Title(), ns.Commands())
	}
	add("Commands", r.Commands())
	return items
}

// Selected returns the command under the cursor, or nil for an empty
// registry.
func (m Model) Selected() *dispatchers.Command {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor].cmd
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.syncContent()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			m.syncContent()
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			m.syncContent()
		case key.Matches(msg, m.keys.PageUp):
			m.content.SetYOffset(m.content.YOffset - pageStep)
		case key.Matches(msg, m.keys.PageDown):
			m.content.SetYOffset(m.content.YOffset + pageStep)
		case key.Matches(msg, m.keys.Top):
			m.jumpToFirst()
			m.syncContent()
		case key.Matches(msg, m.keys.Bottom):
			m.jumpToLast()
			m.syncContent()
		}
	}

	m.clampSidebar()
	return m, nil
}

func (m *Model) layout() *splitpanel.Layout {
	return splitpanel.NewLayout(m.width, layoutConfig,
		lipgloss.Color(m.colors.Info), lipgloss.Color(m.colors.Muted))
}

func (m *Model) mainHeight() int {
	return max(m.height-footerHeight, 3)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	l := m.layout()
	if m.content.Width == 0 && m.content.Height == 0 {
		m.content = viewport.New(l.MainContentWidth(), m.mainHeight()-2)
		return
	}
	m.content.Width = l.MainContentWidth()
	m.content.Height = m.mainHeight() - 2
}

func (m *Model) syncContent() {
	if c := m.Selected(); c != nil {
		m.content.SetContent(strings.TrimRight(dispatchers.RenderCommandHelp(c), "\n"))
	} else {
		m.content.SetContent("No commands registered.")
	}
	m.content.GotoTop()
}

// moveCursor steps over headers and wraps at both ends.
func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 || m.Selected() == nil {
		return
	}
	next := m.cursor
	for {
		next = (next + delta + len(m.items)) % len(m.items)
		if !m.items[next].header {
			m.cursor = next
			return
		}
	}
}

func (m *Model) jumpToFirst() {
	for i, it := range m.items {
		if !it.header {
			m.cursor = i
			return
		}
	}
}

func (m *Model) jumpToLast() {
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].header {
			m.cursor = i
			return
		}
	}
}

// clampSidebar keeps the cursor inside the visible sidebar window.
func (m *Model) clampSidebar() {
	visible := m.mainHeight() - 2
	if m.cursor < m.sidebarScroll {
		m.sidebarScroll = m.cursor
	}
	if m.cursor >= m.sidebarScroll+visible {
		m.sidebarScroll = m.cursor - visible + 1
	}
	// Show the section header when its first command is at the top.
	if m.sidebarScroll > 0 && m.sidebarScroll == m.cursor && m.items[m.cursor-1].header {
		m.sidebarScroll--
	}
}

func (m Model) View() string {
	l := m.layout()

	sidebar := splitpanel.Panel{
		Lines:      m.sidebarLines(),
		ScrollPos:  m.sidebarScroll,
		TotalItems: len(m.items),
	}
	content := splitpanel.Panel{
		Lines:      strings.Split(m.content.View(), "\n"),
		ScrollPos:  m.content.YOffset,
		TotalItems: m.content.TotalLineCount(),
	}

	main := l.Render(sidebar, content, m.mainHeight())
	footer := " " + m.help.ShortHelpView(m.keys.ShortHelp())
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

func (m Model) sidebarLines() []string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted)).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Info)).Bold(true)

	var lines []string
	for i := m.sidebarScroll; i < len(m.items); i++ {
		it := m.items[i]
		switch {
		case it.header:
			lines = append(lines, headerStyle.Render(strings.ToUpper(it.label)))
		case i == m.cursor:
			lines = append(lines, selectedStyle.Render("▸ "+it.label))
		default:
			lines = append(lines, "  "+it.label)
		}
		if len(lines) >= m.mainHeight()-2 {
			break
		}
	}
	return lines
}
