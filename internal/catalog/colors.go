package catalog

import "fmt"

// ColorKey identifies a palette color.
type ColorKey string

// Color carries the style tokens a destination renders with.
type Color struct {
	Key        ColorKey `json:"key"`
	Name       string   `json:"name"`
	Hex        string   `json:"hex"`
	Fill       string   `json:"fill"`
	SubtleFill string   `json:"subtle_fill"`
	Text       string   `json:"text"`
	Border     string   `json:"border"`
}

func newColor(key ColorKey, name, hex string) Color {
	return Color{
		Key:        key,
		Name:       name,
		Hex:        hex,
		Fill:       fmt.Sprintf("bg-%s-500", key),
		SubtleFill: fmt.Sprintf("bg-%s-500/10", key),
		Text:       fmt.Sprintf("text-%s-500", key),
		Border:     fmt.Sprintf("border-%s-500/30", key),
	}
}

// Order matters: SuggestColor cycles through it.
var palette = []Color{
	newColor("red", "Red", "#ef4444"),
	newColor("orange", "Orange", "#f97316"),
	newColor("amber", "Amber", "#f59e0b"),
	newColor("yellow", "Yellow", "#eab308"),
	newColor("lime", "Lime", "#84cc16"),
	newColor("green", "Green", "#22c55e"),
	newColor("emerald", "Emerald", "#10b981"),
	newColor("cyan", "Cyan", "#06b6d4"),
	newColor("blue", "Blue", "#3b82f6"),
	newColor("indigo", "Indigo", "#6366f1"),
	newColor("purple", "Purple", "#a855f7"),
	newColor("pink", "Pink", "#ec4899"),
}

// PaletteSize is the number of colors in the palette.
var PaletteSize = len(palette)

// ResolveColor looks up key in the palette. Unknown keys return false.
func ResolveColor(key string) (Color, bool) {
	for _, c := range palette {
		if string(c.Key) == key {
			return c, true
		}
	}
	return Color{}, false
}

// IsKnownColor reports whether key is in the palette.
func IsKnownColor(key string) bool {
	_, ok := ResolveColor(key)
	return ok
}

// SuggestColor picks the color for the n-th destination of an account.
func SuggestColor(n int) Color {
	i := n % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}

// Palette returns all colors in cycle order.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}
