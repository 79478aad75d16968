// Package theme defines color themes for the planifica TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceHover  lipgloss.Color // active tab, focused row
	SurfaceBright lipgloss.Color // selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card
	TextDim       lipgloss.Color
	TextMuted     lipgloss.Color
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	Green         lipgloss.Color // completed periods, reached goals
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color // goal line, warnings
	Red           lipgloss.Color
	Yellow        lipgloss.Color
	Cyan          lipgloss.Color
}

// Scheme is the palette a Theme is built from.
type Scheme struct {
	Name string

	// Neutrals runs from the app background up to primary text:
	// background, surface, hover, selected, border, dim, muted, primary.
	Neutrals [8]string

	Accent, AccentBright string
	Green, GreenBright   string
	Orange, Red          string
	Yellow, Cyan         string
}

// Theme expands the scheme into color roles.
func (s Scheme) Theme() Theme {
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	n := s.Neutrals
	return Theme{
		Name:          s.Name,
		Background:    c(n[0]),
		Surface:       c(n[1]),
		SurfaceHover:  c(n[2]),
		SurfaceBright: c(n[3]),
		Border:        c(n[4]),
		BorderAccent:  c(s.Accent),
		TextDim:       c(n[5]),
		TextMuted:     c(n[6]),
		TextPrimary:   c(n[7]),
		Accent:        c(s.Accent),
		AccentBright:  c(s.AccentBright),
		Green:         c(s.Green),
		GreenBright:   c(s.GreenBright),
		Orange:        c(s.Orange),
		Red:           c(s.Red),
		Yellow:        c(s.Yellow),
		Cyan:          c(s.Cyan),
	}
}

// FlexokiDark is the default: warm ink on dark paper.
var FlexokiDark = Scheme{
	Name:         "flexoki-dark",
	Neutrals:     [8]string{"#100F0F", "#1C1B1A", "#282726", "#343331", "#403E3C", "#575653", "#878580", "#FFFCF0"},
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Green:        "#879A39",
	GreenBright:  "#A3B859",
	Orange:       "#DA702C",
	Red:          "#D14D41",
	Yellow:       "#D0A215",
	Cyan:         "#24837B",
}.Theme()

// FlexokiLight is FlexokiDark printed on paper, for light terminals.
var FlexokiLight = Scheme{
	Name:         "flexoki-light",
	Neutrals:     [8]string{"#FFFCF0", "#F2F0E5", "#E6E4D9", "#DAD8CE", "#CECDC3", "#B7B5AC", "#6F6E69", "#100F0F"},
	Accent:       "#24837B",
	AccentBright: "#1C6C66",
	Green:        "#66800B",
	GreenBright:  "#536907",
	Orange:       "#BC5215",
	Red:          "#AF3029",
	Yellow:       "#AD8301",
	Cyan:         "#24837B",
}.Theme()

// CatppuccinMocha uses the soft pastels of Catppuccin.
var CatppuccinMocha = Scheme{
	Name:         "catppuccin-mocha",
	Neutrals:     [8]string{"#1E1E2E", "#313244", "#45475A", "#585B70", "#585B70", "#6C7086", "#A6ADC8", "#CDD6F4"},
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Green:        "#A6E3A1",
	GreenBright:  "#C6F6C1",
	Orange:       "#FAB387",
	Red:          "#F38BA8",
	Yellow:       "#F9E2AF",
	Cyan:         "#94E2D5",
}.Theme()

// TokyoNight is a cool blue and purple palette.
var TokyoNight = Scheme{
	Name:         "tokyo-night",
	Neutrals:     [8]string{"#1A1B26", "#24283B", "#343A52", "#414868", "#565F89", "#565F89", "#A9B1D6", "#C0CAF5"},
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Green:        "#9ECE6A",
	GreenBright:  "#B9E87A",
	Orange:       "#FF9E64",
	Red:          "#F7768E",
	Yellow:       "#E0AF68",
	Cyan:         "#7DCFFF",
}.Theme()

// Terminal sticks to the 16 ANSI colors so it follows the terminal's own palette.
var Terminal = Scheme{
	Name:         "terminal",
	Neutrals:     [8]string{"0", "0", "8", "8", "8", "8", "7", "15"},
	Accent:       "6",
	AccentBright: "14",
	Green:        "2",
	GreenBright:  "10",
	Orange:       "3",
	Red:          "1",
	Yellow:       "11",
	Cyan:         "6",
}.Theme()

// All lists the themes in display order.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// Active is the theme every view renders with.
var Active = FlexokiDark

// ByName returns the named theme, or FlexokiDark when there is none.
func ByName(name string) Theme {
	if i := index(name); i >= 0 {
		return All[i]
	}
	return FlexokiDark
}

// SetActive switches Active to the named theme.
func SetActive(name string) {
	Active = ByName(name)
}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Exists reports whether name is a known theme.
func Exists(name string) bool {
	return index(name) >= 0
}

func index(name string) int {
	for i, t := range All {
		if t.Name == name {
			return i
		}
	}
	return -1
}
