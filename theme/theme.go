package theme

import (
	"github.com/charmbracelet/lipgloss"

	"go-midifx/debug"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Effect slots
	Active   rune // ● processing
	Bypassed rune // ○ bypassed
	Cursor   rune // ▶ selected slot

	// Parameter sliders
	SliderFull  rune // █
	SliderEmpty rune // ░
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Active:   '●',
			Bypassed: '○',
			Cursor:   '▶',

			SliderFull:  '█',
			SliderEmpty: '░',
		},
	}
}

// Default uses the built-in palette
func Default() *Theme {
	return New(DefaultPalette())
}

// Load uses the palette file at path, falling back to the built-in palette
// when path is empty or unreadable
func Load(path string) *Theme {
	if path == "" {
		return Default()
	}
	p, err := LoadGPL(path)
	if err != nil {
		debug.Log("theme", "%v, using built-in palette", err)
		return Default()
	}
	return New(p)
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// KindColor spreads effect kinds across the palette so each has its own hue
func (t *Theme) KindColor(kind, kinds int) lipgloss.Color {
	if kinds <= 1 {
		return t.Accent()
	}
	// Skip the darkest quarter, it is unreadable on dark terminals
	return t.Color(0.25 + 0.75*float64(kind)/float64(kinds-1))
}
