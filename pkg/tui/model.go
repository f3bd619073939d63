package tui

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"src.smolcalc.dev/pkg/front"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/share"
	"src.smolcalc.dev/pkg/store/storedefs"
	"src.smolcalc.dev/pkg/trigger"
	"src.smolcalc.dev/pkg/typeset"
)

type keyMap struct {
	Evaluate key.Binding
	Cycle    key.Binding
	Auto     key.Binding
	Older    key.Binding
	Newer    key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Cycle, k.Auto, k.Older, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Evaluate, k.Cycle, k.Auto}, {k.Older, k.Newer, k.Quit}}
}

func newKeyMap() keyMap {
	return keyMap{
		Evaluate: key.NewBinding(key.WithKeys("enter", "ctrl+e"), key.WithHelp("enter", "evaluate")),
		Cycle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
		Auto:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "auto/manual")),
		Older:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "history")),
		Newer:    key.NewBinding(key.WithKeys("down")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	blockedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")).Padding(1, 2)
)

// Sent when the controller has started.
type startedMsg struct {
	v   view
	err error
}

// Sent when a controller operation has completed.
type doneMsg struct {
	ticket uint64
	v      view
	err    error
}

type model struct {
	ctrl   *front.Controller
	screen *screen
	seq    *front.Sequencer
	queue  *front.Queue

	// May be nil.
	history storedefs.Store
	// Sequence number of the recalled history entry; the next sequence number
	// when no entry is recalled.
	histSeq int

	input textinput.Model
	help  help.Model
	keys  keyMap

	// The last applied snapshot.
	v       view
	mode    mode.Mode
	started bool
	// Error that ends the program; reported after the terminal is restored.
	err error
}

func newModel(registry *mode.Registry, loc *url.URL, history storedefs.Store, manual bool) *model {
	s := newScreen(loc)
	m := &model{
		ctrl: front.NewController(registry, s, s, front.Options{
			Manual: manual,
			Loader: typeset.Loader{Acquire: func(context.Context) (typeset.Renderer, error) {
				return latexSource{}, nil
			}},
		}),
		screen:  s,
		seq:     &front.Sequencer{},
		queue:   &front.Queue{},
		history: history,
		input:   textinput.New(),
		help:    help.New(),
		keys:    newKeyMap(),
		mode:    share.CurrentMode(loc),
	}
	m.input.Prompt = "> "
	m.input.Placeholder = "expression"
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.input.Focus()
	m.resetHistory()
	return m
}

func (m *model) Init() tea.Cmd {
	return func() tea.Msg {
		err := m.ctrl.Start(context.Background(), nil)
		return startedMsg{m.screen.snapshot(), err}
	}
}

// Queues op and returns a command that runs it. Operations run in the order
// they were issued, whichever command runs them. The snapshot is only
// applied if no later operation has been issued by then.
func (m *model) do(op func() error) tea.Cmd {
	ticket := m.seq.Next()
	m.queue.Push(op)
	return func() tea.Msg {
		err := m.queue.Drain()
		return doneMsg{ticket, m.screen.snapshot(), err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		m.started = true
		m.mode = msg.v.Mode
		m.apply(msg.v)
		m.input.SetValue(msg.v.Text)
		m.input.CursorEnd()
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil
	case doneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if !m.seq.Current(msg.ticket) {
			return m, nil
		}
		m.apply(msg.v)
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m, m.key(msg)
	}
	return m, nil
}

func (m *model) key(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) || m.v.Blocked != "" {
		return tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Evaluate):
		m.record()
		if msg.Type == tea.KeyEnter {
			return m.do(func() error { return m.ctrl.Key(trigger.ActivationKey) })
		}
		return m.do(m.ctrl.Activate)
	case key.Matches(msg, m.keys.Cycle):
		if !m.started {
			return nil
		}
		return m.selectMode(m.mode.Next())
	case key.Matches(msg, m.keys.Auto):
		m.ctrl.ToggleAuto()
		v := m.screen.snapshot()
		m.v.Auto, m.v.Trigger = v.Auto, v.Trigger
		m.showTrigger()
		return nil
	case key.Matches(msg, m.keys.Older):
		return m.recall(true)
	case key.Matches(msg, m.keys.Newer):
		return m.recall(false)
	}
	old := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == old {
		return cmd
	}
	m.screen.SetInputText(m.input.Value())
	return tea.Batch(cmd, m.do(m.ctrl.Edit))
}

func (m *model) selectMode(next mode.Mode) tea.Cmd {
	m.mode = next
	return m.do(func() error { return m.ctrl.SelectMode(next) })
}

func (m *model) apply(v view) {
	m.v = v
	m.showTrigger()
}

// In auto mode, evaluation follows every edit and enter only saves the input
// to the history.
func (m *model) showTrigger() {
	if m.v.Trigger {
		m.keys.Evaluate.SetHelp("enter", "evaluate")
	} else {
		m.keys.Evaluate.SetHelp("enter", "save")
	}
}

// Adds the input to the history.
func (m *model) record() {
	text := m.input.Value()
	if m.history == nil || strings.TrimSpace(text) == "" {
		return
	}
	if _, err := m.history.Add(m.mode, text); err != nil {
		logger.Printf("add %q to history: %v", text, err)
	}
	m.resetHistory()
}

func (m *model) resetHistory() {
	if m.history == nil {
		return
	}
	seq, err := m.history.NextSeq()
	if err != nil {
		logger.Printf("history: %v", err)
		return
	}
	m.histSeq = seq
}

// Replaces the input with an older or newer history entry, switching to its
// mode. Going past the newest entry clears the input.
func (m *model) recall(older bool) tea.Cmd {
	if m.history == nil {
		return nil
	}
	var e storedefs.Entry
	var err error
	if older {
		e, err = m.history.Prev(m.histSeq, "")
	} else {
		e, err = m.history.Next(m.histSeq+1, "")
	}
	if errors.Is(err, storedefs.ErrNoMatchingEntry) {
		if older || m.input.Value() == "" {
			return nil
		}
		m.resetHistory()
		e = storedefs.Entry{Seq: m.histSeq, Mode: m.mode}
	} else if err != nil {
		logger.Printf("history: %v", err)
		return nil
	}
	m.histSeq = e.Seq
	m.input.SetValue(e.Text)
	m.input.CursorEnd()
	m.screen.SetInputText(e.Text)
	if e.Mode != m.mode {
		return m.selectMode(e.Mode)
	}
	return m.do(m.ctrl.Edit)
}

func (m *model) View() string {
	if m.v.Blocked != "" {
		return blockedStyle.Render(m.v.Blocked) + "\n"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("smolcalc"))
	b.WriteString(faintStyle.Render(" · " + m.mode.String() + " · " + m.trigger()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	switch {
	case !m.started:
		b.WriteString(faintStyle.Render("Loading…"))
	case strings.HasPrefix(m.v.Result, "Error:\n"):
		b.WriteString(errorStyle.Render(m.v.Result))
	case m.v.Result != "":
		b.WriteString(resultStyle.Render("= " + m.v.Result))
	}
	b.WriteString("\n")
	if m.v.Typeset != "" {
		b.WriteString(faintStyle.Render("Input interpretation: ") + "$" + m.v.Typeset + "$\n")
	}
	if m.v.Share != "" {
		b.WriteString(faintStyle.Render("Share: " + m.v.Share))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) trigger() string {
	if m.v.Auto {
		return trigger.Auto.String()
	}
	return trigger.Manual.String()
}
