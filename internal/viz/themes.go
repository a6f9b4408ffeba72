package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colours the viewer chrome and the graph decoration. Series keep
// their own colours.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

var Themes = []Theme{
	{
		Name:       "cyberpunk",
		Primary:    "#ff00ff",
		Secondary:  "#00ffff",
		Accent:     "#ffff00",
		Background: "#0a0a0a",
		Text:       "#ffffff",
		Muted:      "#666666",
		Warning:    "#ff8800",
	},
	{
		Name:       "retro",
		Primary:    "#00ff00",
		Secondary:  "#00cc00",
		Accent:     "#88ff88",
		Background: "#001100",
		Text:       "#00ff00",
		Muted:      "#005500",
		Warning:    "#ffff00",
	},
	{
		Name:       "minimal",
		Primary:    "#ffffff",
		Secondary:  "#cccccc",
		Accent:     "#0088ff",
		Background: "#000000",
		Text:       "#ffffff",
		Muted:      "#888888",
		Warning:    "#ffaa00",
	},
	{
		Name:       "ocean",
		Primary:    "#0077be",
		Secondary:  "#00a8cc",
		Accent:     "#ffd700",
		Background: "#001a33",
		Text:       "#e0f0ff",
		Muted:      "#4488aa",
		Warning:    "#ffcc00",
	},
	{
		Name:       "sunset",
		Primary:    "#ff6b6b",
		Secondary:  "#feca57",
		Accent:     "#ff9ff3",
		Background: "#2d1b2e",
		Text:       "#fff5f5",
		Muted:      "#8b6b8c",
		Warning:    "#ffc048",
	},
}

// GetTheme falls back to the first theme for unknown names.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ToRGBA converts a hex theme colour. Anything unparsable is grey.
func ToRGBA(c lipgloss.Color) color.RGBA {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return color.RGBA{128, 128, 128, 255}
	}
	r, g, b := col.RGB255()
	return color.RGBA{r, g, b, 255}
}
