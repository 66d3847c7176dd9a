// Package controls is the parameter editor that asks the backend for new
// KS runs. It never sees the current simulation result.
package controls

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/config"
	"github.com/san-kum/ksdash/internal/theme"
)

// Submitter starts backend runs.
type Submitter interface {
	Submit(ctx context.Context, params any) (*client.Run, error)
}

// SubmittedMsg reports the outcome of a run request made by the editor with
// the matching ID.
type SubmittedMsg struct {
	ID  int64
	Run *client.Run
	Err error
}

var lastID atomic.Int64

type Model struct {
	id       int64
	ctx      context.Context
	defaults config.Params
	params   config.Params

	cursor  int
	editing bool
	editBuf string
	preset  int

	submitter  Submitter
	submitting bool
	spinner    spinner.Model
	lastRun    *client.Run
	lastErr    error

	theme theme.Theme
	keys  KeyMap
}

type Option func(*Model)

func WithContext(ctx context.Context) Option { return func(m *Model) { m.ctx = ctx } }
func WithTheme(t theme.Theme) Option        { return func(m *Model) { m.theme = t } }

func WithParams(p config.Params) Option {
	return func(m *Model) { m.defaults, m.params = p, p }
}

func New(s Submitter, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{
		id:        lastID.Add(1),
		ctx:       context.Background(),
		defaults:  config.DefaultParams(),
		params:    config.DefaultParams(),
		preset:    -1,
		submitter: s,
		spinner:   sp,
		theme:     theme.Ocean,
		keys:      DefaultKeyMap(),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

func (m Model) ID() int64             { return m.id }
func (m Model) Params() config.Params { return m.params }
func (m Model) Editing() bool         { return m.editing }
func (m Model) Submitting() bool      { return m.submitting }
func (m Model) LastRun() *client.Run  { return m.lastRun }
func (m Model) LastErr() error        { return m.lastErr }
func (m Model) Keys() KeyMap          { return m.keys }
func (m Model) Cursor() int           { return m.cursor }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg:
		if msg.ID != m.id {
			return m, nil
		}
		m.submitting = false
		m.lastRun, m.lastErr = msg.Run, msg.Err
		return m, nil
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg), nil
		}
		return m.navKey(msg)
	}
	return m, nil
}

func (m Model) navKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := params[m.cursor]
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(params)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Dec):
		f.set(&m.params, f.get(&m.params)-f.step)
		m.preset = -1
	case key.Matches(msg, m.keys.Inc):
		f.set(&m.params, f.get(&m.params)+f.step)
		m.preset = -1
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.editBuf = f.format(&m.params)
	case key.Matches(msg, m.keys.Preset):
		names := config.ListPresets()
		if len(names) > 0 {
			m.preset = (m.preset + 1) % len(names)
			m.params, _ = config.GetPreset(names[m.preset])
		}
	case key.Matches(msg, m.keys.Reset):
		m.params = m.defaults
		m.preset = -1
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
			params[m.cursor].set(&m.params, v)
			m.preset = -1
		}
		m.editing, m.editBuf = false, ""
	case tea.KeyEsc:
		m.editing, m.editBuf = false, ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyRunes:
		for _, c := range msg.Runes {
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				m.editBuf += string(c)
			}
		}
	}
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting || m.submitter == nil {
		return m, nil
	}
	if err := m.params.Validate(); err != nil {
		m.lastRun, m.lastErr = nil, err
		return m, nil
	}
	m.submitting = true
	m.lastErr = nil

	id, ctx, s, p := m.id, m.ctx, m.submitter, m.params
	run := func() tea.Msg {
		r, err := s.Submit(ctx, p)
		return SubmittedMsg{ID: id, Run: r, Err: err}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) View() string {
	var b strings.Builder

	title := "Simulation parameters"
	if m.preset >= 0 {
		title += "  " + m.theme.Label().Render("preset: "+config.ListPresets()[m.preset])
	}
	b.WriteString(m.theme.Title().Render(title) + "\n\n")

	for i, f := range params {
		val := fmt.Sprintf("%12s", f.format(&m.params))
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%12s", m.editBuf+"▋")
		}
		if i == m.cursor {
			b.WriteString(m.theme.Active().Render("▸ "+fmt.Sprintf("%-16s", f.name)) + m.theme.Active().Render(val) + "\n")
		} else {
			b.WriteString("  " + m.theme.Label().Render(fmt.Sprintf("%-16s", f.name)) + m.theme.Value().Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(m.spinner.View() + " " + m.theme.Label().Render("requesting run..."))
	case m.lastErr != nil:
		b.WriteString(m.theme.Danger().Render("run request failed: " + m.lastErr.Error()))
	case m.lastRun != nil:
		b.WriteString(m.theme.Good().Render("run started: " + m.lastRun.ID))
	}
	return b.String()
}
