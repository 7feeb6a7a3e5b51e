package glyph

import "testing"

func TestDefaultGlyphsDistinct(t *testing.T) {
	seen := map[string]string{}
	for _, g := range DefaultGlyphs() {
		if g.Meaning == "" {
			t.Errorf("glyph %q has no meaning", g.Symbol)
		}
		if prev, ok := seen[g.Symbol]; ok {
			t.Errorf("glyph %q used for both %q and %q", g.Symbol, prev, g.Meaning)
		}
		seen[g.Symbol] = g.Meaning
	}
}
