package pathexpr

import (
	"strings"
)

// Kind classifies a parsed expression.
type Kind int

const (
	// Invalid marks an expression that could not be interpreted as a path or
	// literal. Invalid expressions never match anything.
	Invalid Kind = iota
	// Path is a location in the enriched document tree.
	Path
	// Literal is a quoted constant such as ='en'.
	Literal
)

func (k Kind) String() string {
	switch k {
	case Path:
		return "path"
	case Literal:
		return "literal"
	default:
		return "invalid"
	}
}

// Root is the first segment of every document-rooted path.
const Root = "document"

// Wildcard matches exactly one path segment.
const Wildcard = "*"

// Expr is a parsed path expression. The zero value is Invalid.
type Expr struct {
	Raw       string   // input as written
	Kind      Kind     // classification
	Segments  []string // normalized segments; nil unless Kind == Path
	Wildcards []int    // indices into Segments that hold "*"
}

// Document returns the expression for the document root ("/document").
func Document() Expr {
	return Expr{Raw: "/" + Root, Kind: Path, Segments: []string{Root}}
}

// Parse interprets raw as a path expression.
//
// Expression-language decoration is stripped first: surrounding whitespace,
// one leading "=" and a whole-body "$( ... )" wrapper. A body wrapped in
// matching quotes is a [Literal]. Anything else is split on "/" into a
// [Path]; a relative body whose first segment is not "document" is a bare
// field name and is placed under the document root, so "content" and
// "/document/content" parse to the same segments.
//
// Parse never fails. Bodies that are empty or contain characters outside
// path syntax (operators, parentheses, whitespace) come back [Invalid].
func Parse(raw string) Expr {
	e := Expr{Raw: raw}
	body := strings.TrimSpace(raw)
	body = strings.TrimSpace(strings.TrimPrefix(body, "="))
	if strings.HasPrefix(body, "$(") && strings.HasSuffix(body, ")") {
		body = strings.TrimSpace(body[2 : len(body)-1])
	}
	if body == "" {
		return e
	}
	if isQuoted(body) {
		e.Kind = Literal
		return e
	}
	if strings.ContainsAny(body, " \t\r\n'\"()+=,;") {
		return e
	}

	absolute := strings.HasPrefix(body, "/")
	var segs []string
	for _, s := range strings.Split(body, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return e
	}
	if !absolute && segs[0] != Root {
		segs = append([]string{Root}, segs...)
	}
	return newPath(raw, segs)
}

// Join builds the absolute path of targetName under context. An empty or
// non-path context defaults to the document root. A target that is itself
// absolute replaces the context.
func Join(context Expr, targetName string) Expr {
	if context.Kind != Path {
		context = Document()
	}
	target := strings.TrimSpace(targetName)
	if strings.HasPrefix(target, "/") {
		return Parse(target)
	}
	segs := append([]string(nil), context.Segments...)
	for _, s := range strings.Split(target, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return newPath(context.String()+"/"+target, segs)
}

func newPath(raw string, segs []string) Expr {
	e := Expr{Raw: raw, Kind: Path, Segments: segs}
	for i, s := range segs {
		if s == Wildcard {
			e.Wildcards = append(e.Wildcards, i)
		}
	}
	return e
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}

// IsPath reports whether e is a usable path.
func (e Expr) IsPath() bool { return e.Kind == Path }

// IsLiteral reports whether e is a quoted constant.
func (e Expr) IsLiteral() bool { return e.Kind == Literal }

// DocumentRooted reports whether e is a path under the document root.
func (e Expr) DocumentRooted() bool {
	return e.Kind == Path && e.Segments[0] == Root
}

// String renders a path as "/seg/seg". Non-path expressions render their raw
// input.
func (e Expr) String() string {
	if e.Kind != Path {
		return e.Raw
	}
	return "/" + strings.Join(e.Segments, "/")
}

// Leaf returns the last non-wildcard segment, "*" for an all-wildcard path
// and "" for non-path expressions.
func (e Expr) Leaf() string {
	if e.Kind != Path {
		return ""
	}
	for i := len(e.Segments) - 1; i >= 0; i-- {
		if e.Segments[i] != Wildcard {
			return e.Segments[i]
		}
	}
	return Wildcard
}

// Covers reports whether candidate equals e or is nested under it. A "*"
// segment on either side matches exactly one segment of the other.
func (e Expr) Covers(candidate Expr) bool {
	if e.Kind != Path || candidate.Kind != Path {
		return false
	}
	if len(candidate.Segments) < len(e.Segments) {
		return false
	}
	for i, s := range e.Segments {
		c := candidate.Segments[i]
		if s != c && s != Wildcard && c != Wildcard {
			return false
		}
	}
	return true
}
