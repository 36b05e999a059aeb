package export

import (
	"encoding/hex"

	"github.com/danmuck/bitsctl/internal/protocol"
	"github.com/zeebo/blake3"
)

// Node is one packet of an exported tree.
type Node struct {
	Version  uint8  `json:"version" yaml:"version"`
	Type     string `json:"type" yaml:"type"`
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Groups   int    `json:"groups,omitempty" yaml:"groups,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is the export of one decoded input line.
type Document struct {
	Digest     string `json:"digest" yaml:"digest"`
	Bits       int    `json:"bits" yaml:"bits"`
	Consumed   int    `json:"consumed" yaml:"consumed"`
	Trailing   int    `json:"trailing" yaml:"trailing"`
	Packets    int    `json:"packets" yaml:"packets"`
	Depth      int    `json:"depth" yaml:"depth"`
	VersionSum uint64 `json:"version_sum" yaml:"version_sum"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	EvalError  string `json:"eval_error,omitempty" yaml:"eval_error,omitempty"`
	Expr       string `json:"expr" yaml:"expr"`
	Root       Node   `json:"root" yaml:"root"`
}

// Digest returns the hex BLAKE3-256 digest of an input line.
func Digest(line string) string {
	sum := blake3.Sum256([]byte(line))
	return hex.EncodeToString(sum[:])
}

// Build assembles the document for line and its decode result. An
// evaluation failure is recorded in EvalError rather than returned, so
// malformed expressions can still be inspected.
func Build(line string, res *protocol.Result) Document {
	stats := protocol.Stats(res.Packet)
	doc := Document{
		Digest:     Digest(line),
		Bits:       res.Bits,
		Consumed:   res.Consumed,
		Trailing:   res.Trailing,
		Packets:    stats.Packets,
		Depth:      stats.MaxDepth,
		VersionSum: protocol.VersionSum(res.Packet),
		Expr:       protocol.Format(res.Packet),
		Root:       buildNode(res.Packet),
	}
	if v, err := protocol.Evaluate(res.Packet); err != nil {
		doc.EvalError = err.Error()
	} else {
		doc.Value = v.String()
	}
	return doc
}

func buildNode(p protocol.Packet) Node {
	switch p := p.(type) {
	case *protocol.Literal:
		n := Node{Version: p.Version, Type: "literal", Groups: p.Groups, Value: "0"}
		if p.Value != nil {
			n.Value = p.Value.String()
		}
		return n
	case *protocol.Operator:
		n := Node{Version: p.Version, Type: "operator", Kind: p.Kind.String()}
		if len(p.Children) > 0 {
			n.Children = make([]Node, 0, len(p.Children))
		}
		for _, child := range p.Children {
			n.Children = append(n.Children, buildNode(child))
		}
		return n
	default:
		return Node{Type: "unknown"}
	}
}
