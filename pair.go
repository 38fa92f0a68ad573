package goinspect

import (
	"fmt"
	"reflect"
	"strings"
)

// Pair is a cons cell. A chain of Pairs whose last Tail is nil is a proper
// list; any other Tail makes the chain improper (a dotted pair at the end).
type Pair struct {
	Head any
	Tail any
}

// Cons returns a new Pair.
func Cons(head, tail any) *Pair { return &Pair{Head: head, Tail: tail} }

// List builds a proper list of vs. It returns nil for no elements.
func List(vs ...any) *Pair {
	var p *Pair
	for i := len(vs) - 1; i >= 0; i-- {
		p = &Pair{Head: vs[i], Tail: asTail(p)}
	}
	return p
}

func asTail(p *Pair) any {
	if p == nil {
		return nil
	}
	return p
}

// Cells walks the chain starting at p. It returns the cells visited and
// whether the chain is a proper list. Circular chains are reported improper.
func (p *Pair) Cells() (cells []*Pair, proper bool) {
	seen := map[*Pair]bool{}
	for c := p; c != nil; {
		if seen[c] {
			return cells, false
		}
		seen[c] = true
		cells = append(cells, c)
		switch t := c.Tail.(type) {
		case nil:
			return cells, true
		case *Pair:
			c = t
		default:
			return cells, false
		}
	}
	return cells, true
}

// String renders the chain in dotted list notation: (1 2 3), (1 . 2).
func (p *Pair) String() string {
	b := &strings.Builder{}
	p.format(b, 0)
	return b.String()
}

const maxPairDepth = 16

func (p *Pair) format(b *strings.Builder, depth int) {
	if p == nil {
		b.WriteString("()")
		return
	}
	if depth > maxPairDepth {
		b.WriteString("(...)")
		return
	}
	cells, proper := p.Cells()
	b.WriteByte('(')
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeElem(b, c.Head, depth)
	}
	if !proper {
		last := cells[len(cells)-1]
		if next, ok := last.Tail.(*Pair); ok && next != nil {
			b.WriteString(" ...")
		} else {
			b.WriteString(" . ")
			writeElem(b, last.Tail, depth)
		}
	}
	b.WriteByte(')')
}

func writeElem(b *strings.Builder, v any, depth int) {
	switch e := v.(type) {
	case *Pair:
		e.format(b, depth+1)
	case string:
		fmt.Fprintf(b, "%q", e)
	case nil:
		b.WriteString("nil")
	default:
		b.WriteString(compact(reflect.ValueOf(e), 0))
	}
}
