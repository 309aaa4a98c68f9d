package canonval

import (
	"strconv"
	"strings"
)

// Path is a typed document location: an ordered list of field and index
// tokens. It replaces string-matching on rendered pointers; codes are
// looked up from token structure, and rendering happens only at report
// time.
type Path struct {
	tokens []pathToken
}

type pathToken struct {
	key   string
	index int
	isIdx bool
}

// Root returns the document root path.
func Root() Path {
	return Path{}
}

// Field returns p extended with an object field token.
func (p Path) Field(name string) Path {
	return p.extend(pathToken{key: name})
}

// Index returns p extended with an array index token.
func (p Path) Index(i int) Path {
	return p.extend(pathToken{index: i, isIdx: true})
}

func (p Path) extend(t pathToken) Path {
	tokens := make([]pathToken, len(p.tokens), len(p.tokens)+1)
	copy(tokens, p.tokens)
	return Path{tokens: append(tokens, t)}
}

// String renders the path in dollar notation, e.g.
// "$.timeline.events[2].effect.keyframes.Level".
func (p Path) String() string {
	if len(p.tokens) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, t := range p.tokens {
		if t.isIdx {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(t.index))
			b.WriteByte(']')
			continue
		}
		b.WriteByte('.')
		b.WriteString(t.key)
	}
	return b.String()
}
