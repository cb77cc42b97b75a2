package pixelfixel

import "sort"

// Builtin palettes for common pixel-art targets.
var presets = map[string]Palette{
	"gameboy": mustHexPalette("#0f380f", "#306230", "#8bac0f", "#9bbc0f"),
	"pico8": mustHexPalette(
		"#000000", "#1d2b53", "#7e2553", "#008751",
		"#ab5236", "#5f574f", "#c2c3c7", "#fff1e8",
		"#ff004d", "#ffa300", "#ffec27", "#00e436",
		"#29adff", "#83769c", "#ff77a8", "#ffccaa",
	),
	"sweetie16": mustHexPalette(
		"#1a1c2c", "#5d275d", "#b13e53", "#ef7d57",
		"#ffcd75", "#a7f070", "#38b764", "#257179",
		"#29366f", "#3b5dc9", "#41a6f6", "#73eff7",
		"#f4f4f4", "#94b0c2", "#566c86", "#333c57",
	),
}

// Preset returns a copy of a named builtin palette, or nil if the name is
// unknown. Callers may reorder the copy freely.
func Preset(name string) Palette {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// PresetNames lists the builtin palette names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustHexPalette(hexes ...string) Palette {
	p, err := ParseHexPalette(hexes...)
	if err != nil {
		panic(err)
	}
	return p
}
