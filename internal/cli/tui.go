package cli

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sheetdock/pkg/drag"
	"github.com/matzehuels/sheetdock/pkg/geom"
	"github.com/matzehuels/sheetdock/pkg/input"
	"github.com/matzehuels/sheetdock/pkg/level"
	"github.com/matzehuels/sheetdock/pkg/sheet"
	"github.com/matzehuels/sheetdock/pkg/textlayout"
)

var (
	statusBarStyle  = lipgloss.NewStyle().Foreground(colorGray)
	statusModeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	statusFineStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	statusSnapStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	statusErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
	helpKeyStyle    = lipgloss.NewStyle().Foreground(colorGray)
	helpDescStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// chromeRows is the number of terminal rows used by the status and help lines.
const chromeRows = 2

type (
	frameMsg  time.Time
	reloadMsg struct{}
)

// session bundles the state that is rebuilt when the level is reloaded.
type session struct {
	lvl  *level.Level
	reg  *sheet.Registry
	ctl  *drag.Controller
	disp *input.Dispatcher
}

func (s *session) close() {
	if s != nil && s.ctl != nil {
		s.ctl.Close()
	}
}

// PlayModel is the bubbletea model of the interactive canvas. Mouse and key
// input is queued as input events and handed to the dispatcher once per
// frame tick.
type PlayModel struct {
	cli      *CLI
	path     string
	measurer textlayout.Measurer
	keys     keyMap
	tick     time.Duration
	changes  <-chan struct{}
	savePath string

	cur      *session
	vp       viewport
	fitted   bool
	pending  []input.Event
	deferred []input.Event // synthetic key releases for the following frame
	last     time.Time

	showPoints bool
	status     string
	statusErr  bool
	width      int
	height     int
}

// newPlayModel builds the model for an already loaded session.
func newPlayModel(c *CLI, path string, m textlayout.Measurer, cur *session) *PlayModel {
	return &PlayModel{
		cli:      c,
		path:     path,
		measurer: m,
		keys:     defaultKeyMap(),
		tick:     c.Config.Tick,
		cur:      cur,
		vp:       newViewport(m, 80, 24-chromeRows),
		savePath: defaultOutput(cur.lvl, ".layout.json"),
	}
}

func (m *PlayModel) Init() tea.Cmd {
	return tea.Batch(m.nextFrame(), m.waitForChange())
}

func (m *PlayModel) nextFrame() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// waitForChange blocks on the level watcher, if any.
func (m *PlayModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m *PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.cols = max(msg.Width, 1)
		m.vp.rows = max(msg.Height-chromeRows, 1)
		if !m.fitted {
			m.vp.fit(m.cur.reg)
			m.fitted = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case frameMsg:
		m.frame(time.Time(msg))
		return m, m.nextFrame()

	case reloadMsg:
		m.reload()
		return m, m.waitForChange()
	}
	return m, nil
}

func (m *PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.RotateCW):
		m.tap(input.RotateCW)
	case key.Matches(msg, m.keys.RotateCCW):
		m.tap(input.RotateCCW)
	case key.Matches(msg, m.keys.FineAdjust):
		if m.cur.disp.Held(input.FineAdjust) {
			m.pending = append(m.pending, input.ActionReleased{Action: input.FineAdjust})
		} else {
			m.pending = append(m.pending, input.ActionPressed{Action: input.FineAdjust})
		}
	case key.Matches(msg, m.keys.Points):
		m.showPoints = !m.showPoints
	case key.Matches(msg, m.keys.Copy):
		m.copyLayout()
	case key.Matches(msg, m.keys.Save):
		m.saveLayout()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	}
	return m, nil
}

// tap presses a for one frame. Terminals report no key releases, so the
// release is queued behind the press; auto-repeat keeps the action held.
func (m *PlayModel) tap(a input.Action) {
	m.pending = append(m.pending, input.ActionPressed{Action: a})
	m.deferred = append(m.deferred, input.ActionReleased{Action: a})
}

func (m *PlayModel) handleMouse(msg tea.MouseMsg) {
	pos := m.vp.toWorld(msg.X, msg.Y)
	m.pending = append(m.pending, input.PointerMoved{Pos: pos})

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pending = append(m.pending, input.ActionPressed{Action: input.TranslateGrab})
		case tea.MouseButtonRight:
			m.pending = append(m.pending, input.ActionPressed{Action: input.RotateGrab})
		}
	case tea.MouseActionRelease:
		// Some terminals do not say which button was released.
		for _, a := range []input.Action{input.TranslateGrab, input.RotateGrab} {
			if m.cur.disp.Held(a) {
				m.pending = append(m.pending, input.ActionReleased{Action: a})
			}
		}
	}
}

// frame runs one dispatcher tick with the queued events.
func (m *PlayModel) frame(now time.Time) {
	elapsed := m.tick
	if !m.last.IsZero() {
		elapsed = min(now.Sub(m.last), 4*m.tick)
	}
	m.last = now

	events := m.pending
	m.pending, m.deferred = m.deferred, nil
	m.cur.disp.Frame(events, elapsed)
}

func (m *PlayModel) copyLayout() {
	var buf bytes.Buffer
	if err := level.WriteLayout(&buf, m.cur.lvl.Name, m.cur.reg); err != nil {
		m.setError(err)
		return
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		m.setError(fmt.Errorf("clipboard: %w", err))
		return
	}
	m.setStatus("layout copied to clipboard")
}

func (m *PlayModel) saveLayout() {
	if err := level.ExportLayout(m.savePath, m.cur.lvl.Name, m.cur.reg); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("layout saved to " + m.savePath)
}

// reload loads the level again into a fresh registry. The current sheets are
// kept if loading fails.
func (m *PlayModel) reload() {
	next, err := m.cli.openSession(m.path, m.measurer)
	if err != nil {
		m.setError(err)
		return
	}
	m.cur.close()
	m.cur = next
	m.pending, m.deferred = nil, nil
	m.vp.fit(m.cur.reg)
	m.setStatus("reloaded " + m.cur.lvl.Name)
}

func (m *PlayModel) setStatus(s string) {
	m.status, m.statusErr = s, false
	m.cli.Logger.Info(s)
}

func (m *PlayModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
	m.cli.Logger.Error("play", "err", err)
}

func (m *PlayModel) View() string {
	ctl := m.cur.ctl
	cv := newCanvas(m.vp)
	cv.paint(m.cur.reg, ctl.Focus())
	cv.text(m.cur.reg, m.measurer)

	res := ctl.LastResult()
	if m.showPoints {
		var docked *sheet.WorldPoint
		if ctl.SessionOpen() && res.Snapped {
			docked = &res.Match.Still
		}
		cv.marks(m.cur.reg, docked)
	}

	var b strings.Builder
	b.WriteString(cv.String())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.helpLine())
	return b.String()
}

func (m *PlayModel) statusLine() string {
	ctl := m.cur.ctl
	parts := []string{StyleTitle.Render(m.cur.lvl.Name), statusModeStyle.Render(ctl.Mode().String())}
	if s := m.cur.reg.Get(ctl.Focus()); s != nil {
		p := s.DragPose()
		parts = append(parts, fmt.Sprintf("%s (%.0f, %.0f) %.1f°", s.Name, p.Pos.X, p.Pos.Y, geom.Deg(p.Rot)))
	}
	if ctl.FineAdjust() {
		parts = append(parts, statusFineStyle.Render("fine"))
	}
	if ctl.SessionOpen() && ctl.LastResult().Snapped {
		parts = append(parts, statusSnapStyle.Render("docked"))
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, statusErrStyle.Render(m.status))
		} else {
			parts = append(parts, m.status)
		}
	}
	return statusBarStyle.Render(strings.Join(parts, "  "))
}

func (m *PlayModel) helpLine() string {
	var parts []string
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	parts = append(parts, helpKeyStyle.Render("left drag")+" "+helpDescStyle.Render("move"),
		helpKeyStyle.Render("right drag")+" "+helpDescStyle.Render("rotate"))
	return strings.Join(parts, "  ")
}
