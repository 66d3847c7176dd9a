// Package render animates a KS solution as a rotating 3D surface in the
// terminal. It owns the payload schema; callers hand it raw JSON.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ksdash/internal/theme"
)

const (
	EmptyText = "No simulation data"

	defaultFPS    = 20
	defaultWidth  = 100
	defaultHeight = 28
	meshCols      = 48
	meshRows      = 24
	sideWidth     = 44
)

var lastID atomic.Int64

// TickMsg advances the animation of the surface with the matching ID.
type TickMsg struct {
	ID   int64
	Time time.Time
}

type Model struct {
	id      int64
	field   *Field
	err     error
	frame   int
	playing bool
	fps     int

	cam *camera
	cv  *canvas

	width, height int
	theme         theme.Theme
	keys          KeyMap
}

type Option func(*Model)

func WithTheme(t theme.Theme) Option { return func(m *Model) { m.theme = t } }

func WithFPS(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.fps = fps
		}
	}
}

func WithSize(w, h int) Option { return func(m *Model) { m.width, m.height = w, h } }

// New builds a surface for payload. A nil or malformed payload yields the
// empty state rather than an error.
func New(payload json.RawMessage, opts ...Option) Model {
	m := Model{
		id:      lastID.Add(1),
		playing: true,
		fps:     defaultFPS,
		cam:     newCamera(),
		width:   defaultWidth,
		height:  defaultHeight,
		theme:   theme.Ocean,
		keys:    DefaultKeyMap(),
	}
	for _, o := range opts {
		o(&m)
	}
	m.field, m.err = Decode(payload)
	m.cv = newCanvas(m.canvasSize())
	return m
}

func (m Model) ID() int64     { return m.id }
func (m Model) Field() *Field { return m.field }
func (m Model) Err() error    { return m.err }
func (m Model) Empty() bool   { return m.field == nil }
func (m Model) Frame() int    { return m.frame }
func (m Model) Playing() bool { return m.playing }
func (m Model) Keys() KeyMap  { return m.keys }

func (m Model) Init() tea.Cmd {
	if m.field == nil || m.field.Frames() < 2 {
		return nil
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

func (m Model) SetSize(w, h int) Model {
	m.width, m.height = w, h
	m.cv.resize(m.canvasSize())
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.field == nil {
		return m, nil
	}
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		if m.playing {
			m.frame = (m.frame + 1) % m.field.Frames()
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Play):
			m.playing = !m.playing
		case key.Matches(msg, m.keys.Prev):
			m.playing = false
			m.frame = clamp(m.frame-1, 0, m.field.Frames()-1)
		case key.Matches(msg, m.keys.Next):
			m.playing = false
			m.frame = clamp(m.frame+1, 0, m.field.Frames()-1)
		case key.Matches(msg, m.keys.PitchUp):
			m.cam.rotate(0.1, 0, 0)
		case key.Matches(msg, m.keys.PitchDown):
			m.cam.rotate(-0.1, 0, 0)
		case key.Matches(msg, m.keys.YawLeft):
			m.cam.rotate(0, 0.1, 0)
		case key.Matches(msg, m.keys.YawRight):
			m.cam.rotate(0, -0.1, 0)
		case key.Matches(msg, m.keys.RollLeft):
			m.cam.rotate(0, 0, 0.1)
		case key.Matches(msg, m.keys.RollRight):
			m.cam.rotate(0, 0, -0.1)
		case key.Matches(msg, m.keys.ZoomIn):
			m.cam.zoomBy(1.2)
		case key.Matches(msg, m.keys.ZoomOut):
			m.cam.zoomBy(1 / 1.2)
		case key.Matches(msg, m.keys.ResetView):
			m.cam = newCamera()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.field == nil {
		return m.viewEmpty()
	}

	m.cv.reset()
	draw(m.cv, m.cam, mesh(m.field, m.frame, meshCols, meshRows))
	surface := lipgloss.NewStyle().Foreground(m.theme.Primary).Render(m.cv.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, surface, "  ", m.viewSide())
}

func (m Model) viewEmpty() string {
	var b strings.Builder
	b.WriteString(m.theme.Label().Render(EmptyText))
	if m.err != nil && !errors.Is(m.err, ErrNoData) {
		b.WriteString("\n" + m.theme.Danger().Render(m.err.Error()))
	}
	return lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, b.String())
}

func (m Model) viewSide() string {
	f := m.field
	var s strings.Builder

	status := m.theme.Good().Render("● playing")
	if !m.playing {
		status = lipgloss.NewStyle().Foreground(m.theme.Warning).Render("○ paused")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(m.theme.Label().Render(fmt.Sprintf("%-8s", "t")) +
		m.theme.Value().Render(fmt.Sprintf("%.2f", f.T[m.frame])) + "\n")
	s.WriteString(m.theme.Label().Render(fmt.Sprintf("%-8s", "frame")) +
		m.theme.Value().Render(fmt.Sprintf("%d/%d", m.frame+1, f.Frames())) + "\n")
	lo, hi := f.Range()
	s.WriteString(m.theme.Label().Render(fmt.Sprintf("%-8s", "u range")) +
		m.theme.Value().Render(fmt.Sprintf("[%.2f, %.2f]", lo, hi)) + "\n\n")

	chart := asciigraph.Plot(f.Slice(m.frame),
		asciigraph.Height(6),
		asciigraph.Width(sideWidth-10),
		asciigraph.Caption("u(x) at t"),
	)
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n\n")

	if spec := f.Spectrum(m.frame); len(spec) > 0 {
		s.WriteString(m.theme.Label().Render("log |û(k)|") + "\n")
		s.WriteString(m.theme.Value().Render(sparkline(spec, sideWidth-4)) + "\n\n")
	}

	if keys := f.ParamKeys(); len(keys) > 0 {
		s.WriteString(m.theme.Title().Render("PARAMETERS") + "\n")
		for _, k := range keys {
			s.WriteString(m.theme.Label().Render(fmt.Sprintf("%-14s", k)) +
				m.theme.Value().Render(fmt.Sprintf("%g", f.Params[k])) + "\n")
		}
	}
	return lipgloss.NewStyle().Width(sideWidth).Render(s.String())
}

func (m Model) canvasSize() (cols, rows int) {
	cols = m.width - sideWidth - 2
	rows = m.height
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	return cols, rows
}
