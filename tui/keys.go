package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTrack key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Inc       key.Binding
	Dec       key.Binding
	IncBig    key.Binding
	DecBig    key.Binding
	Bypass    key.Binding
	BypassAll key.Binding
	CycleKind key.Binding
	Add       key.Binding
	Remove    key.Binding
	MoveDown  key.Binding
	MoveUp    key.Binding
	Mute      key.Binding
	Solo      key.Binding
	Save      key.Binding
	Play      key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTrack: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next track")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev effect")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next effect")),
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev param")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next param")),
		Inc:       key.NewBinding(key.WithKeys("="), key.WithHelp("=", "param +1")),
		Dec:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "param -1")),
		IncBig:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "param +10")),
		DecBig:    key.NewBinding(key.WithKeys("_"), key.WithHelp("_", "param -10")),
		Bypass:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bypass effect")),
		BypassAll: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "bypass chain")),
		CycleKind: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pick effect to add")),
		Add:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add effect")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove effect")),
		MoveDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move effect down")),
		MoveUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move effect up")),
		Mute:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute track")),
		Solo:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "solo track")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save project")),
		Play:      key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "play/stop")),
		TempoUp:   key.NewBinding(key.WithKeys("."), key.WithHelp(".", "tempo +5")),
		TempoDown: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "tempo -5")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTrack, k.Down, k.Right, k.Inc, k.Bypass, k.CycleKind, k.Add, k.Play, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTrack, k.Up, k.Down, k.Left, k.Right},
		{k.Inc, k.Dec, k.IncBig, k.DecBig, k.Bypass, k.BypassAll},
		{k.CycleKind, k.Add, k.Remove, k.MoveUp, k.MoveDown},
		{k.Mute, k.Solo, k.Play, k.TempoUp, k.TempoDown, k.Save, k.Quit},
	}
}
