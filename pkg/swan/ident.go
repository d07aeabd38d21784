package swan

import (
	"regexp"
	"strings"
)

var (
	identRe = regexp.MustCompile(`^[a-zA-Z]\w*$`)
	pathRe  = regexp.MustCompile(`^[a-zA-Z]\w*(?:\s*::\s*[a-zA-Z]\w*)*$`)
	luidRe  = regexp.MustCompile(`^#?\w[-\w]*$`)
)

// Pragma is an annotation attached to an identifier, e.g.
// "#pragma cg probe#end". It is carried verbatim.
type Pragma string

// Identifier is a simple Swan identifier.
//
// An Identifier may be invalid when it was protected during
// serialization; such identifiers are kept as opaque text.
type Identifier struct {
	Base
	Value   string
	Pragmas []Pragma
	Comment string
}

// NewIdentifier creates an identifier with the given text.
func NewIdentifier(value string) *Identifier {
	return &Identifier{Value: value}
}

// IsValid reports whether the identifier text matches the Swan
// identifier syntax ([a-zA-Z]\w*).
func (id *Identifier) IsValid() bool { return identRe.MatchString(id.Value) }

// Ident returns the identifier itself, letting bare identifiers satisfy
// small parts of the Declaration surface in tests and tooling.
func (id *Identifier) Ident() *Identifier { return id }

func (id *Identifier) String() string {
	if len(id.Pragmas) == 0 {
		return id.Value
	}
	parts := make([]string, 0, len(id.Pragmas)+1)
	for _, p := range id.Pragmas {
		parts = append(parts, string(p))
	}
	parts = append(parts, id.Value)
	return strings.Join(parts, " ")
}

// ValidIdentifier reports whether s is a syntactically valid Swan
// identifier.
func ValidIdentifier(s string) bool { return identRe.MatchString(s) }

// PathID is a '::'-separated path identifier such as P1::P2::Id.
type PathID struct {
	Base
	Parts []string
}

// NewPathID builds a path identifier from its segments.
func NewPathID(parts ...string) *PathID {
	return &PathID{Parts: parts}
}

// ParsePathID splits a '::'-separated path string into a PathID,
// trimming whitespace around separators.
func ParsePathID(s string) *PathID {
	raw := strings.Split(s, "::")
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	return &PathID{Parts: parts}
}

// ValidPath reports whether s is a valid path identifier,
// id {:: id}, with optional spaces around '::'.
func ValidPath(s string) bool { return pathRe.MatchString(s) }

// Name returns the final segment of the path.
func (p *PathID) Name() string {
	if len(p.Parts) == 0 {
		return ""
	}
	return p.Parts[len(p.Parts)-1]
}

// String joins the segments with '::'.
func (p *PathID) String() string { return strings.Join(p.Parts, "::") }

// Luid is a local unique identifier scoping a diagram object as a wire
// endpoint. The leading '#' marker is not stored.
type Luid string

// ParseLuid strips the optional leading '#' and returns the Luid.
func ParseLuid(s string) Luid {
	return Luid(strings.TrimPrefix(s, "#"))
}

// ValidLuid reports whether s is a valid LUID, with or without its
// leading '#' marker.
func ValidLuid(s string) bool { return luidRe.MatchString(s) }

// String renders the Luid with its '#' marker.
func (l Luid) String() string { return "#" + string(l) }
