// Package glyph names the symbols used to mark modules and topics.
package glyph

type Glyph struct {
	Symbol  string
	Meaning string
}

var (
	ModuleClosed = Glyph{Symbol: "▸", Meaning: "collapsed module"}
	ModuleOpen   = Glyph{Symbol: "▾", Meaning: "expanded module"}
	Topic        = Glyph{Symbol: "·", Meaning: "topic"}
	TopicActive  = Glyph{Symbol: "●", Meaning: "active topic"}
	Done         = Glyph{Symbol: "✓", Meaning: "completed"}
	Bookmark     = Glyph{Symbol: "★", Meaning: "bookmarked"}
)

// DefaultGlyphs returns the legend in display order.
func DefaultGlyphs() []Glyph {
	return []Glyph{ModuleClosed, ModuleOpen, Topic, TopicActive, Done, Bookmark}
}

func (g Glyph) String() string {
	return g.Symbol
}
