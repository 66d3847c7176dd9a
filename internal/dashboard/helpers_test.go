package dashboard_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/dashboard"
	"github.com/san-kum/ksdash/internal/logging"
	"github.com/san-kum/ksdash/internal/session"
)

const surfacePayload = `{
	"x": [0, 1, 2, 3, 4, 5],
	"t": [0, 0.5, 1],
	"u": [[0, 1, 0, -1, 0, 1], [1, 0, -1, 0, 1, 0], [0, -1, 0, 1, 0, -1]],
	"params": {"viscosity": 1, "length": 22}
}`

type fakeFetcher struct {
	calls  atomic.Int32
	result *client.Result
	err    error
}

func (f *fakeFetcher) Fetch(context.Context) (*client.Result, error) {
	f.calls.Add(1)
	return f.result, f.err
}

func present() *client.Result {
	return &client.Result{Payload: json.RawMessage(surfacePayload), RequestID: "req-1"}
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(context.Context, string, ...logging.Field) {}
func (l *recordingLogger) Info(context.Context, string, ...logging.Field)  {}
func (l *recordingLogger) Warn(context.Context, string, ...logging.Field)  {}

func (l *recordingLogger) Error(_ context.Context, msg string, _ ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) With(...logging.Field) logging.Logger { return l }

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

// run executes cmd and flattens batches into the messages they produce.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, run(c)...)
	}
	return out
}

func update(m dashboard.Model, msg tea.Msg) (dashboard.Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(dashboard.Model), cmd
}

// settle runs the mount fetch and delivers its result.
func settle(m dashboard.Model) dashboard.Model {
	for _, msg := range run(m.Init()) {
		if loaded, ok := msg.(session.LoadedMsg); ok {
			m, _ = update(m, loaded)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m dashboard.Model, keys ...string) dashboard.Model {
	for _, k := range keys {
		m, _ = update(m, keyMsg(k))
	}
	return m
}
