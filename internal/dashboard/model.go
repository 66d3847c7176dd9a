// Package dashboard is the root terminal model. It mounts the fetch session
// once, switches between the visualization and controls panes, and draws
// the shared chrome around them.
package dashboard

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ksdash/internal/config"
	"github.com/san-kum/ksdash/internal/controls"
	"github.com/san-kum/ksdash/internal/render"
	"github.com/san-kum/ksdash/internal/session"
	"github.com/san-kum/ksdash/internal/theme"
)

const (
	Title       = "KS Equation PINN Solver"
	Subtitle    = "Physics-Informed Neural Network solution for the Kuramoto-Sivashinsky equation"
	LoadingText = "Loading simulation..."
	AlertIcon   = "⚠"

	defaultWidth  = 120
	defaultHeight = 36
)

type Model struct {
	ctx   context.Context
	ctl   *session.Controller
	state session.State
	mode  Mode

	// at most one of these is non-nil
	viz  *render.Model
	ctrl *controls.Model

	submitter controls.Submitter
	params    config.Params
	fps       int

	spinner spinner.Model
	help    help.Model
	keys    KeyMap
	theme   theme.Theme

	width, height int
}

type Option func(*Model)

func WithContext(ctx context.Context) Option    { return func(m *Model) { m.ctx = ctx } }
func WithTheme(t theme.Theme) Option            { return func(m *Model) { m.theme = t } }
func WithFPS(fps int) Option                    { return func(m *Model) { m.fps = fps } }
func WithParams(p config.Params) Option         { return func(m *Model) { m.params = p } }
func WithSubmitter(s controls.Submitter) Option { return func(m *Model) { m.submitter = s } }
func WithSize(w, h int) Option                  { return func(m *Model) { m.width, m.height = w, h } }

// New builds the dashboard around ctl. The session starts loading and the
// visualization tab is selected.
func New(ctl *session.Controller, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{
		ctx:     context.Background(),
		ctl:     ctl,
		state:   session.Loading(),
		mode:    ModeVisualization,
		params:  config.DefaultParams(),
		fps:     config.DefaultFPS,
		spinner: sp,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		theme:   theme.Ocean,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, o := range opts {
		o(&m)
	}
	m.help.Width = m.width
	return m
}

func (m Model) Mode() Mode                   { return m.mode }
func (m Model) State() session.State         { return m.state }
func (m Model) Visualization() *render.Model { return m.viz }
func (m Model) Controls() *controls.Model    { return m.ctrl }
func (m Model) Theme() theme.Theme           { return m.theme }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ctl.LoadCmd(m.ctx), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case session.LoadedMsg:
		m.state = msg.State
		if m.mode == ModeVisualization && m.viz == nil {
			return m.mountVisualization()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.viz != nil {
			v := m.viz.SetSize(m.paneSize())
			m.viz = &v
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.state.IsLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.ctrl != nil {
			c, cmd := m.ctrl.Update(msg)
			m.ctrl = &c
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case render.TickMsg:
		if m.viz == nil {
			return m, nil
		}
		v, cmd := m.viz.Update(msg)
		m.viz = &v
		return m, cmd

	case controls.SubmittedMsg:
		if m.ctrl == nil {
			return m, nil
		}
		c, cmd := m.ctrl.Update(msg)
		m.ctrl = &c
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// a field being typed into owns the keyboard
	if m.ctrl != nil && m.ctrl.Editing() {
		c, cmd := m.ctrl.Update(msg)
		m.ctrl = &c
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.SetMode(m.mode.Toggle())
	case key.Matches(msg, m.keys.Visualization):
		return m.SetMode(ModeVisualization)
	case key.Matches(msg, m.keys.Controls):
		return m.SetMode(ModeControls)
	case key.Matches(msg, m.keys.Theme):
		m.theme = theme.Next(m.theme)
		m.spinner.Style = lipgloss.NewStyle().Foreground(m.theme.Accent)
		return m.remount()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch {
	case m.viz != nil:
		v, cmd := m.viz.Update(msg)
		m.viz = &v
		return m, cmd
	case m.ctrl != nil:
		c, cmd := m.ctrl.Update(msg)
		m.ctrl = &c
		return m, cmd
	}
	return m, nil
}

// SetMode selects a tab. The pane being left is discarded and the new one
// is built fresh. Session state is untouched.
func (m Model) SetMode(mode Mode) (Model, tea.Cmd) {
	if mode == m.mode {
		return m, nil
	}
	m.mode = mode
	return m.remount()
}

func (m Model) remount() (Model, tea.Cmd) {
	m.viz, m.ctrl = nil, nil
	switch m.mode {
	case ModeVisualization:
		return m.mountVisualization()
	case ModeControls:
		c := controls.New(m.submitter,
			controls.WithContext(m.ctx),
			controls.WithParams(m.params),
			controls.WithTheme(m.theme),
		)
		m.ctrl = &c
		return m, c.Init()
	}
	return m, nil
}

// mountVisualization builds the surface from the current result. Nothing is
// built while the fetch is pending; after a failure the surface gets a nil
// payload and shows its own empty state.
func (m Model) mountVisualization() (Model, tea.Cmd) {
	if m.state.IsLoading() {
		return m, nil
	}
	var payload json.RawMessage
	if d := m.state.Data(); d != nil {
		payload = d.Payload
	}
	w, h := m.paneSize()
	v := render.New(payload,
		render.WithTheme(m.theme),
		render.WithFPS(m.fps),
		render.WithSize(w, h),
	)
	m.viz = &v
	return m, v.Init()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader() + "\n")
	if m.state.HasError() {
		b.WriteString(m.viewAlert() + "\n")
	}
	b.WriteString(renderTabs(m.mode, m.theme, m.width) + "\n\n")
	b.WriteString(m.viewPane() + "\n\n")
	b.WriteString(m.help.View(m.helpKeys()))

	return b.String()
}

func (m Model) viewHeader() string {
	return m.theme.Title().Render(Title) + "\n" + m.theme.Label().Render(Subtitle)
}

func (m Model) viewAlert() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Error).
		Foreground(m.theme.Error).
		Padding(0, 1).
		Width(max(m.width-2, 20))
	return box.Render(AlertIcon + "  " + m.state.Err())
}

func (m Model) viewPane() string {
	w, h := m.paneSize()
	switch m.mode {
	case ModeVisualization:
		if m.viz == nil {
			placeholder := m.spinner.View() + " " + m.theme.Label().Render(LoadingText)
			return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, placeholder)
		}
		return m.viz.View()
	case ModeControls:
		if m.ctrl != nil {
			return m.theme.Panel().Render(m.ctrl.View())
		}
	}
	return ""
}

func (m Model) helpKeys() help.KeyMap {
	h := helpKeys{global: m.keys}
	switch {
	case m.viz != nil && !m.viz.Empty():
		h.pane = m.viz.Keys()
	case m.ctrl != nil:
		h.pane = m.ctrl.Keys()
	}
	return h
}

// paneSize is the space left for the mounted pane after the header, alert,
// tabs and help bar.
func (m Model) paneSize() (int, int) {
	chrome := 2 + 3 + 2 + 2
	if m.state.HasError() {
		chrome += 3
	}
	h := m.height - chrome
	if h < 8 {
		h = 8
	}
	return m.width, h
}
