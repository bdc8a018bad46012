package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/workflow"
)

type fakeDispatcher struct {
	calls    []string
	sessions []workflow.Session
	lines    []output.Line
	err      error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, action string, session workflow.Session, reporter output.Reporter) (workflow.Outcome, error) {
	f.calls = append(f.calls, action)
	f.sessions = append(f.sessions, session)
	for _, line := range f.lines {
		reporter.Report(line)
	}
	return workflow.Outcome{Success: f.err == nil, FailedStep: -1}, f.err
}

func baseSession() workflow.Session {
	return workflow.Session{
		Dir:         "/tmp/project",
		Remote:      "origin",
		Branch:      "main",
		PublishMode: workflow.PublishUpstream,
	}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// focusButton tabs from the first field to the named action's button
func focusButton(t *testing.T, m Model, action string) Model {
	t.Helper()
	for i, b := range buttons {
		if b.action == action {
			for m.focus != fieldCount+i {
				next, _ := m.Update(key(tea.KeyTab))
				m = next.(Model)
			}
			return m
		}
	}
	t.Fatalf("no button for %s", action)
	return m
}

// drain feeds worker messages back into the model until the run finishes
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.Running() && i < 100; i++ {
		msg := waitForEvent(m.events)()
		require.NotNil(t, msg)
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	require.False(t, m.Running())
	return m
}

func TestModel_PrefillsFieldsFromSession(t *testing.T) {
	base := baseSession()
	base.RemoteURL = "https://github.com/u/r.git"
	m := NewModel(context.Background(), &fakeDispatcher{}, base)

	s := m.Session()
	assert.Equal(t, "/tmp/project", s.Dir)
	assert.Equal(t, "https://github.com/u/r.git", s.RemoteURL)
	assert.False(t, s.UseToken)
}

func TestModel_FocusWraps(t *testing.T) {
	m := NewModel(context.Background(), &fakeDispatcher{}, baseSession())

	next, _ := m.Update(key(tea.KeyShiftTab))
	m = next.(Model)
	assert.Equal(t, focusables()-1, m.focus)

	next, _ = m.Update(key(tea.KeyTab))
	m = next.(Model)
	assert.Equal(t, fieldDir, m.focus)
	assert.True(t, m.inputs[fieldDir].Focused())
}

func TestModel_TypingEditsFocusedField(t *testing.T) {
	base := baseSession()
	base.Dir = ""
	m := NewModel(context.Background(), &fakeDispatcher{}, base)

	next, _ := m.Update(runes("/work"))
	m = next.(Model)
	assert.Equal(t, "/work", m.Session().Dir)
}

func TestModel_TokenFieldOptsIn(t *testing.T) {
	m := NewModel(context.Background(), &fakeDispatcher{}, baseSession())
	m.inputs[fieldToken].SetValue("  secret  ")

	s := m.Session()
	assert.True(t, s.UseToken)
	assert.Equal(t, "secret", s.Token)
	assert.NotContains(t, m.View(), "secret")
}

func TestModel_RunStreamsLines(t *testing.T) {
	d := &fakeDispatcher{lines: []output.Line{
		{Severity: output.SeverityInfo, Text: "Running: git status", Step: 1},
		{Severity: output.SeveritySuccess, Text: "status completed successfully", Final: true},
	}}
	m := focusButton(t, NewModel(context.Background(), d, baseSession()), workflow.ActionStatus)

	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Running())
	assert.Contains(t, m.View(), "Running status")

	m = drain(t, m)
	require.Equal(t, []string{workflow.ActionStatus}, d.calls)
	require.Len(t, m.Lines(), 2)
	assert.Equal(t, "status completed successfully", m.Lines()[1].Text)
	assert.NoError(t, m.lastErr)
}

func TestModel_PushClearsLog(t *testing.T) {
	d := &fakeDispatcher{lines: []output.Line{{Severity: output.SeverityInfo, Text: "line"}}}
	m := NewModel(context.Background(), d, baseSession())
	m.log = []output.Line{{Severity: output.SeverityInfo, Text: "old"}}

	m = focusButton(t, m, workflow.ActionPush)
	next, _ := m.Update(key(tea.KeyEnter))
	m = drain(t, next.(Model))

	require.Len(t, m.Lines(), 1)
	assert.Equal(t, "line", m.Lines()[0].Text)
}

func TestModel_OtherActionsAppendToLog(t *testing.T) {
	d := &fakeDispatcher{lines: []output.Line{{Severity: output.SeverityInfo, Text: "line"}}}
	m := NewModel(context.Background(), d, baseSession())
	m.log = []output.Line{{Severity: output.SeverityInfo, Text: "old"}}

	m = focusButton(t, m, workflow.ActionFetch)
	next, _ := m.Update(key(tea.KeyEnter))
	m = drain(t, next.(Model))

	texts := make([]string, 0, len(m.Lines()))
	for _, l := range m.Lines() {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"old", "", "line"}, texts)
}

func TestModel_IgnoresTriggerWhileRunning(t *testing.T) {
	m := NewModel(context.Background(), &fakeDispatcher{}, baseSession())
	m.running = true

	next, cmd := m.trigger(workflow.ActionPull)
	assert.Nil(t, cmd)
	assert.True(t, next.(Model).Running())
}

func TestModel_ForcePublishNeedsConfirmation(t *testing.T) {
	base := baseSession()
	base.PublishMode = workflow.PublishForce
	d := &fakeDispatcher{}

	t.Run("declined", func(t *testing.T) {
		m := focusButton(t, NewModel(context.Background(), d, base), workflow.ActionPublish)
		next, cmd := m.Update(key(tea.KeyEnter))
		m = next.(Model)
		assert.Nil(t, cmd)
		assert.Contains(t, m.View(), "Force push overwrites origin/main")

		next, _ = m.Update(runes("n"))
		m = next.(Model)
		assert.False(t, m.Running())
		assert.Empty(t, d.calls)
		require.Len(t, m.Lines(), 1)
		assert.Equal(t, output.SeverityError, m.Lines()[0].Severity)
	})

	t.Run("confirmed", func(t *testing.T) {
		m := focusButton(t, NewModel(context.Background(), d, base), workflow.ActionPublish)
		next, _ := m.Update(key(tea.KeyEnter))
		next, _ = next.(Model).Update(runes("y"))
		m = drain(t, next.(Model))
		assert.Equal(t, []string{workflow.ActionPublish}, d.calls)
	})
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel(context.Background(), &fakeDispatcher{}, baseSession())
	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WorkerStopsWhenContextEnds(t *testing.T) {
	lines := make([]output.Line, 100)
	for i := range lines {
		lines[i] = output.Line{Severity: output.SeverityInfo, Text: fmt.Sprintf("line %d", i)}
	}
	finished := make(chan struct{})
	d := dispatcherFunc(func(ctx context.Context, _ string, _ workflow.Session, reporter output.Reporter) (workflow.Outcome, error) {
		defer close(finished)
		for _, line := range lines {
			reporter.Report(line)
		}
		return workflow.Outcome{FailedStep: -1}, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	m := focusButton(t, NewModel(ctx, d, baseSession()), workflow.ActionStatus)
	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	// the program has exited: nobody reads the remaining lines
	cancel()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("worker still blocked after the context was canceled")
	}
}

type dispatcherFunc func(ctx context.Context, action string, session workflow.Session, reporter output.Reporter) (workflow.Outcome, error)

func (f dispatcherFunc) Dispatch(ctx context.Context, action string, session workflow.Session, reporter output.Reporter) (workflow.Outcome, error) {
	return f(ctx, action, session, reporter)
}
