package protocol

import (
	"strconv"
	"strings"
)

// Walk visits p and its descendants in pre-order. Returning false from fn
// skips the children of the visited packet.
func Walk(p Packet, fn func(p Packet, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Packet, depth int, fn func(Packet, int) bool) {
	if p == nil || !fn(p, depth) {
		return
	}
	if op, ok := p.(*Operator); ok {
		for _, child := range op.Children {
			walk(child, depth+1, fn)
		}
	}
}

// TreeStats summarizes the shape of a packet tree.
type TreeStats struct {
	Packets   int
	Literals  int
	Operators int
	// MaxDepth counts the root as depth 1.
	MaxDepth int
}

func Stats(p Packet) TreeStats {
	var s TreeStats
	Walk(p, func(p Packet, depth int) bool {
		s.Packets++
		if _, ok := p.(*Literal); ok {
			s.Literals++
		} else {
			s.Operators++
		}
		s.MaxDepth = max(s.MaxDepth, depth+1)
		return true
	})
	return s
}

// Format renders p as an S-expression with each packet prefixed by its
// version, e.g. "(v6:+ v0:1 v5:2)".
func Format(p Packet) string {
	var b strings.Builder
	format(&b, p)
	return b.String()
}

func format(b *strings.Builder, p Packet) {
	switch p := p.(type) {
	case *Literal:
		b.WriteByte('v')
		b.WriteString(strconv.Itoa(int(p.Version)))
		b.WriteByte(':')
		if p.Value == nil {
			b.WriteByte('0')
		} else {
			b.WriteString(p.Value.String())
		}
	case *Operator:
		b.WriteString("(v")
		b.WriteString(strconv.Itoa(int(p.Version)))
		b.WriteByte(':')
		b.WriteString(p.Kind.Symbol())
		for _, child := range p.Children {
			b.WriteByte(' ')
			format(b, child)
		}
		b.WriteByte(')')
	default:
		b.WriteString("<nil>")
	}
}
