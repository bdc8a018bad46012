package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/workflow"
)

// Dispatcher runs a named workflow action until it finishes or ctx is done
type Dispatcher interface {
	Dispatch(ctx context.Context, action string, session workflow.Session, reporter output.Reporter) (workflow.Outcome, error)
}

const (
	fieldDir = iota
	fieldURL
	fieldMessage
	fieldToken
	fieldCount
)

// buttons lists the workflow buttons in display order
var buttons = []struct {
	action string
	label  string
}{
	{workflow.ActionStatus, "Status"},
	{workflow.ActionFetch, "Fetch"},
	{workflow.ActionPull, "Pull"},
	{workflow.ActionPush, "Push"},
	{workflow.ActionPublish, "Publish"},
	{workflow.ActionCommit, "Commit"},
	{workflow.ActionClone, "Clone"},
}

// clearsLog lists actions whose runs start with an empty log
var clearsLog = map[string]bool{
	workflow.ActionPush:    true,
	workflow.ActionPublish: true,
}

// lineMsg carries one reported line from the worker
type lineMsg struct {
	line output.Line
}

// doneMsg is sent when a workflow finishes
type doneMsg struct {
	outcome workflow.Outcome
	err     error
}

// Model is the bubbletea model of the form
type Model struct {
	ctx        context.Context
	dispatcher Dispatcher
	base       workflow.Session

	inputs  []textinput.Model
	focus   int
	log     []output.Line
	logView viewport.Model
	spinner spinner.Model

	running    bool
	action     string
	events     chan tea.Msg
	confirming bool
	lastErr    error

	width  int
	styles formStyles
}

type formStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	button  lipgloss.Style
	focused lipgloss.Style
	help    lipgloss.Style
	warn    lipgloss.Style
	log     output.Styles
	border  lipgloss.Style
}

func defaultFormStyles() formStyles {
	return formStyles{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		label:   lipgloss.NewStyle().Width(18),
		button:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		focused: lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("205")).Bold(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		log:     output.DefaultStyles(),
		border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	}
}

// NewModel creates the form. base supplies remote, branch and publish mode;
// its Dir and RemoteURL prefill the fields. Workflows started from the form
// stop when ctx is done.
func NewModel(ctx context.Context, dispatcher Dispatcher, base workflow.Session) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 1024
		ti.Width = 56
		inputs[i] = ti
	}
	inputs[fieldDir].Placeholder = "/path/to/project"
	inputs[fieldDir].SetValue(base.Dir)
	inputs[fieldURL].Placeholder = "https://github.com/you/project.git"
	inputs[fieldURL].SetValue(base.RemoteURL)
	inputs[fieldMessage].Placeholder = "commit message (Commit button)"
	inputs[fieldToken].Placeholder = "optional, https only"
	inputs[fieldToken].EchoMode = textinput.EchoPassword
	inputs[fieldToken].EchoCharacter = '•'
	inputs[fieldDir].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:        ctx,
		dispatcher: dispatcher,
		base:       base,
		inputs:     inputs,
		logView:    viewport.New(80, 12),
		spinner:    s,
		width:      80,
		styles:     defaultFormStyles(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// focusables is every input plus every button
func focusables() int {
	return fieldCount + len(buttons)
}

// Session builds the session the next run would use
func (m Model) Session() workflow.Session {
	s := m.base
	s.Dir = strings.TrimSpace(m.inputs[fieldDir].Value())
	s.RemoteURL = strings.TrimSpace(m.inputs[fieldURL].Value())
	s.Message = m.inputs[fieldMessage].Value()
	if token := strings.TrimSpace(m.inputs[fieldToken].Value()); token != "" {
		s.UseToken = true
		s.Token = token
	}
	return s
}

// Lines returns the log lines shown in the form
func (m Model) Lines() []output.Line {
	return append([]output.Line(nil), m.log...)
}

// Running reports whether a workflow is in progress
func (m Model) Running() bool {
	return m.running
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.logView.Width = max(20, msg.Width-4)
		m.logView.Height = max(5, msg.Height-16)
		m.refreshLog()
		return m, nil

	case lineMsg:
		m.log = append(m.log, msg.line)
		m.refreshLog()
		return m, waitForEvent(m.events)

	case doneMsg:
		m.running = false
		m.events = nil
		m.lastErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			m.confirming = false
			return m.start(workflow.ActionPublish)
		case "ctrl+c":
			return m, tea.Quit
		default:
			m.confirming = false
			m.log = append(m.log, output.Line{Severity: output.SeverityError, Text: "Force push canceled.", Final: true})
			m.refreshLog()
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	case "enter":
		if m.focus < fieldCount {
			return m.moveFocus(1), nil
		}
		return m.trigger(buttons[m.focus-fieldCount].action)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= fieldCount {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	n := focusables()
	m.focus = ((m.focus+delta)%n + n) % n
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// trigger starts action, asking first when it would force push
func (m Model) trigger(action string) (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	if action == workflow.ActionPublish && m.base.PublishMode == workflow.PublishForce {
		m.confirming = true
		return m, nil
	}
	return m.start(action)
}

func (m Model) start(action string) (tea.Model, tea.Cmd) {
	if clearsLog[action] {
		m.log = nil
	} else if len(m.log) > 0 {
		m.log = append(m.log, output.Line{Severity: output.SeverityInfo, Text: ""})
	}
	m.refreshLog()

	m.running = true
	m.action = action
	m.lastErr = nil
	m.events = make(chan tea.Msg, 16)

	session := m.Session()
	events := m.events
	dispatcher := m.dispatcher
	ctx := m.ctx
	go func() {
		defer close(events)
		// nothing reads events once the program has exited, so every send
		// also watches ctx
		send := func(msg tea.Msg) {
			select {
			case events <- msg:
			case <-ctx.Done():
			}
		}
		reporter := output.ReporterFunc(func(line output.Line) {
			send(lineMsg{line: line})
		})
		outcome, err := dispatcher.Dispatch(ctx, action, session, reporter)
		send(doneMsg{outcome: outcome, err: err})
	}()

	return m, tea.Batch(waitForEvent(events), m.spinner.Tick)
}

// waitForEvent receives the next message from a running workflow
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) refreshLog() {
	rendered := make([]string, len(m.log))
	for i, line := range m.log {
		if line.Text == "" && line.Severity == output.SeverityInfo {
			continue
		}
		rendered[i] = m.styles.log.Render(line)
	}
	m.logView.SetContent(strings.Join(rendered, "\n"))
	m.logView.GotoBottom()
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Git Automation"))
	b.WriteString("\n\n")

	labels := []string{"Project Directory:", "Repository URL:", "Commit Message:", "Access Token:"}
	for i, label := range labels {
		b.WriteString(m.styles.label.Render(label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rendered := make([]string, len(buttons))
	for i, btn := range buttons {
		style := m.styles.button
		if m.focus == fieldCount+i {
			style = m.styles.focused
		}
		rendered[i] = style.Render(btn.label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpace(rendered)...))
	b.WriteString("\n\n")

	switch {
	case m.confirming:
		b.WriteString(m.styles.warn.Render(fmt.Sprintf("Force push overwrites %s/%s on the remote. Continue? (y/N)", m.base.Remote, m.base.Branch)))
	case m.running:
		b.WriteString(fmt.Sprintf("%s Running %s...", m.spinner.View(), m.action))
	default:
		b.WriteString(m.styles.help.Render("tab/shift+tab: move • enter: run • pgup/pgdown: scroll log • esc: quit"))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.border.Render(m.logView.View()))
	b.WriteString("\n")
	return b.String()
}

func joinWithSpace(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
