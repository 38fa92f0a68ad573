package goinspect

import (
	"strings"
)

// Path is the breadcrumb of a drill-in chain, rendered as a JSON Pointer
// (RFC 6901). The zero Path is the root.
type Path struct {
	parts []string
}

// Child returns the path extended with the segment for key k.
func (p Path) Child(k Key) Path {
	seg := k.String()
	if k.Kind() == KeyLiteral {
		if s, ok := k.Value().(string); ok {
			seg = s
		}
	}
	// escape '~' -> '~0', '/' -> '~1'
	seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1")
	return Path{parts: append(append([]string(nil), p.parts...), seg)}
}

// Depth is the number of drill-ins from the root.
func (p Path) Depth() int { return len(p.parts) }

// Pointer renders the path, "/" for the root.
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p Path) String() string { return p.Pointer() }

// ParsePath reverses Pointer. Segments are kept in escaped form.
func ParsePath(s string) Path {
	var parts []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return Path{parts: parts}
}
