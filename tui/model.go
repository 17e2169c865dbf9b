package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-midifx/debug"
	"go-midifx/fx"
	"go-midifx/midi"
	"go-midifx/sequencer"
	"go-midifx/theme"
	"go-midifx/widgets"
)

const (
	refreshRate = 100 * time.Millisecond
	maxPortLog  = 4
	sliderWidth = 16
)

// Model is the rack: one track's effect chain at a time, edited in place
// through the engine
type Model struct {
	Engine  *sequencer.Engine
	Store   *sequencer.Store
	Ports   *midi.PortManager // may be nil
	Theme   *theme.Theme
	Project string

	keys     keyMap
	help     help.Model
	track    int // index into Engine.Tracks()
	effect   int
	param    int
	addKind  fx.Kind
	status   string
	portLog  []string
	quitting bool
}

type TickMsg time.Time

type PortEventMsg midi.PortEvent

func NewModel(engine *sequencer.Engine, store *sequencer.Store, ports *midi.PortManager, th *theme.Theme, project string) Model {
	if project == "" {
		project = sequencer.DefaultProject
	}
	return Model{
		Engine:  engine,
		Store:   store,
		Ports:   ports,
		Theme:   th,
		Project: project,
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

// Tick redraws the transport position while playing
func Tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func ListenForPorts(pm *midi.PortManager) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-pm.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	if m.Ports == nil {
		return Tick()
	}
	return tea.Batch(Tick(), ListenForPorts(m.Ports))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.Engine.Stop()
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case TickMsg:
		return m, Tick()

	case PortEventMsg:
		ev := midi.PortEvent(msg)
		verb := "+"
		if ev.Type == midi.PortRemoved {
			verb = "-"
		}
		m.portLog = append(m.portLog, fmt.Sprintf("%s %s %s", verb, ev.Dir, ev.Name))
		if len(m.portLog) > maxPortLog {
			m.portLog = m.portLog[len(m.portLog)-maxPortLog:]
		}
		return m, ListenForPorts(m.Ports)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	tracks := m.Engine.Tracks()
	if len(tracks) == 0 {
		return
	}
	m.track = min(m.track, len(tracks)-1)
	chain := tracks[m.track].Chain

	switch {
	case key.Matches(msg, m.keys.NextTrack):
		m.track = (m.track + 1) % len(tracks)
		m.effect, m.param = 0, 0

	case key.Matches(msg, m.keys.Up):
		if m.effect > 0 {
			m.effect--
			m.param = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.effect < chain.Len()-1 {
			m.effect++
			m.param = 0
		}

	case key.Matches(msg, m.keys.Left):
		if m.param > 0 {
			m.param--
		}

	case key.Matches(msg, m.keys.Right):
		if e := chain.At(m.effect); e != nil && m.param < len(e.Params())-1 {
			m.param++
		}

	case key.Matches(msg, m.keys.Inc):
		m.adjust(1)
	case key.Matches(msg, m.keys.Dec):
		m.adjust(-1)
	case key.Matches(msg, m.keys.IncBig):
		m.adjust(10)
	case key.Matches(msg, m.keys.DecBig):
		m.adjust(-10)

	case key.Matches(msg, m.keys.Bypass):
		m.editChain(func(c *fx.Chain) error {
			if c.At(m.effect) != nil {
				c.ToggleBypass(m.effect)
			}
			return nil
		})

	case key.Matches(msg, m.keys.BypassAll):
		m.editChain(func(c *fx.Chain) error {
			c.SetBypassAll(!c.BypassAll())
			return nil
		})

	case key.Matches(msg, m.keys.CycleKind):
		m.addKind = fx.Kind((int(m.addKind) + 1) % len(fx.Kinds()))

	case key.Matches(msg, m.keys.Add):
		e, err := fx.New(m.addKind)
		if err != nil {
			m.fail(err)
			return
		}
		if m.editChain(func(c *fx.Chain) error { return c.Add(e) }) {
			m.effect, m.param = chain.Len(), 0
			m.status = "added " + e.Name()
		}

	case key.Matches(msg, m.keys.Remove):
		if chain.At(m.effect) == nil {
			return
		}
		m.editChain(func(c *fx.Chain) error {
			c.Remove(m.effect)
			return nil
		})
		if m.effect >= chain.Len()-1 && m.effect > 0 {
			m.effect--
		}
		m.param = 0

	case key.Matches(msg, m.keys.MoveDown):
		m.move(1)
	case key.Matches(msg, m.keys.MoveUp):
		m.move(-1)

	case key.Matches(msg, m.keys.Mute):
		m.editTrack(func(t *sequencer.Track) { t.Muted = !t.Muted })
	case key.Matches(msg, m.keys.Solo):
		m.editTrack(func(t *sequencer.Track) { t.Solo = !t.Solo })

	case key.Matches(msg, m.keys.Save):
		if m.Store == nil {
			return
		}
		file, err := m.Store.Save(m.Project, "", m.Engine)
		if err != nil {
			m.fail(err)
			return
		}
		m.status = "saved " + file

	case key.Matches(msg, m.keys.Play):
		m.Engine.TogglePlay()

	case key.Matches(msg, m.keys.TempoUp):
		m.Engine.SetTempo(m.Engine.Transport().BPM + 5)
	case key.Matches(msg, m.keys.TempoDown):
		m.Engine.SetTempo(m.Engine.Transport().BPM - 5)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

// trackID returns the id of the selected track
func (m *Model) trackID() (sequencer.TrackID, bool) {
	tracks := m.Engine.Tracks()
	if len(tracks) == 0 {
		return 0, false
	}
	return tracks[min(m.track, len(tracks)-1)].ID, true
}

// editChain applies fn to the live chain of the selected track and
// reports whether it succeeded
func (m *Model) editChain(fn func(c *fx.Chain) error) bool {
	id, ok := m.trackID()
	if !ok {
		return false
	}
	err := m.Engine.WithTrack(id, func(t *sequencer.Track) error {
		return fn(t.Chain)
	})
	if err != nil {
		m.fail(err)
		return false
	}
	return true
}

func (m *Model) editTrack(fn func(t *sequencer.Track)) {
	id, ok := m.trackID()
	if !ok {
		return
	}
	err := m.Engine.WithTrack(id, func(t *sequencer.Track) error {
		fn(t)
		return nil
	})
	if err != nil {
		m.fail(err)
	}
}

// adjust moves the selected parameter by delta; the effect clamps
func (m *Model) adjust(delta float64) {
	m.editChain(func(c *fx.Chain) error {
		e := c.At(m.effect)
		if e == nil {
			return nil
		}
		params := e.Params()
		if m.param >= len(params) {
			return nil
		}
		p := params[m.param]
		return c.SetParam(m.effect, p.Name, p.Value+delta)
	})
}

func (m *Model) move(dir int) {
	to := m.effect + dir
	moved := false
	m.editChain(func(c *fx.Chain) error {
		moved = c.Move(m.effect, to)
		return nil
	})
	if moved {
		m.effect = to
	}
}

func (m *Model) fail(err error) {
	m.status = err.Error()
	debug.Log("tui", "%v", err)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	selStyle := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(th.Warning())

	tr := m.Engine.Transport()
	playState := "STOP"
	if tr.Playing {
		playState = "PLAY"
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render(fmt.Sprintf("go-midifx  %s  %3.0fbpm  %s  %s",
		playState, tr.BPM, position(tr), m.Project)))
	out.WriteString("\n\n")

	tracks := m.Engine.Tracks()
	if len(tracks) == 0 {
		out.WriteString(dimStyle.Render("no tracks"))
		out.WriteString("\n")
		return out.String()
	}
	sel := min(m.track, len(tracks)-1)

	// Track tabs
	var tabs []string
	for i, t := range tracks {
		label := fmt.Sprintf(" %s ch%d", t.Name, t.Channel)
		if t.Muted {
			label += " M"
		}
		if t.Solo {
			label += " S"
		}
		label += " "
		switch {
		case i == sel:
			tabs = append(tabs, selStyle.Render("["+label+"]"))
		case t.Muted:
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		default:
			tabs = append(tabs, " "+label+" ")
		}
	}
	out.WriteString(strings.Join(tabs, ""))
	out.WriteString("\n\n")

	// Chain
	chain := tracks[sel].Chain
	title := fmt.Sprintf("CHAIN %d/%d", chain.Len(), fx.MaxEffects)
	if chain.BypassAll() {
		title += "  " + warnStyle.Render("BYPASSED")
	}
	out.WriteString(title)
	out.WriteString("\n")
	if chain.Len() == 0 {
		out.WriteString(dimStyle.Render("  (empty)  a: pick an effect, enter: add it"))
		out.WriteString("\n")
	}
	for i, e := range chain.Effects() {
		out.WriteString(widgets.SlotRow(th, i, e, i == m.effect))
		out.WriteString("\n")
	}

	// Parameters of the selected effect
	if e := chain.At(m.effect); e != nil {
		out.WriteString("\n")
		out.WriteString(e.Name())
		out.WriteString("\n")
		for i, p := range e.Params() {
			out.WriteString(widgets.ParamRow(th, p, i == m.param, sliderWidth))
			out.WriteString("\n")
		}
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("add: "))
	out.WriteString(lipgloss.NewStyle().Foreground(th.KindColor(int(m.addKind), len(fx.Kinds()))).Render(m.addKind.String()))
	out.WriteString("\n")

	if len(m.portLog) > 0 {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render("ports"))
		out.WriteString("\n")
		for _, line := range m.portLog {
			out.WriteString(dimStyle.Render("  " + line))
			out.WriteString("\n")
		}
	}

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render(m.status))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}

// position formats the transport as bar.beat (4/4)
func position(tr sequencer.Transport) string {
	spb := float64(fx.SamplesPerBeat(float64(tr.SampleRate), tr.BPM))
	if spb == 0 {
		return "1.1"
	}
	beats := int(float64(tr.Position) / spb)
	return fmt.Sprintf("%d.%d", beats/4+1, beats%4+1)
}
