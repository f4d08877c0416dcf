package diagram

import "maps"

// DefaultColor fills modules the classifier does not recognize.
const DefaultColor = "#fff9b1"

// Classifier picks a fill color for a module name.
type Classifier func(name string) string

// Palette maps exact module names to fill colors.
type Palette struct {
	Colors  map[string]string
	Default string
}

// DefaultPalette returns the stock palette for common module roles.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[string]string{
			"server": "#a6ccf5",
			"auth":   "#f16c7f",
			"routes": "#93d275",
		},
		Default: DefaultColor,
	}
}

// With returns a copy of p with overrides applied on top.
func (p Palette) With(overrides map[string]string) Palette {
	colors := maps.Clone(p.Colors)
	if colors == nil {
		colors = make(map[string]string, len(overrides))
	}
	maps.Copy(colors, overrides)
	return Palette{Colors: colors, Default: p.Default}
}

// Classify implements Classifier.
func (p Palette) Classify(name string) string {
	if c, ok := p.Colors[name]; ok {
		return c
	}
	if p.Default != "" {
		return p.Default
	}
	return DefaultColor
}
