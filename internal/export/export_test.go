package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/protocol"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildDoc(t *testing.T, line string) Document {
	t.Helper()
	res, err := protocol.DecodeHex(line)
	require.NoError(t, err)
	return Build(line, res)
}

func TestBuildDocument(t *testing.T) {
	doc := buildDoc(t, "9C0141080250320F1802104A08")

	require.Len(t, doc.Digest, 64)
	require.Equal(t, 104, doc.Bits)
	require.Equal(t, 102, doc.Consumed)
	require.Equal(t, 2, doc.Trailing)
	require.Equal(t, 7, doc.Packets)
	require.Equal(t, 3, doc.Depth)
	require.Equal(t, uint64(20), doc.VersionSum)
	require.Equal(t, "1", doc.Value)
	require.Empty(t, doc.EvalError)
	require.Equal(t, "(v4:== (v2:+ v2:1 v4:3) (v6:* v0:2 v2:2))", doc.Expr)

	require.Equal(t, "operator", doc.Root.Type)
	require.Equal(t, "equal_to", doc.Root.Kind)
	require.Len(t, doc.Root.Children, 2)
	require.Equal(t, "product", doc.Root.Children[1].Kind)
	require.Equal(t, Node{Version: 0, Type: "literal", Value: "2", Groups: 1}, doc.Root.Children[1].Children[0])
}

func TestBuildRecordsEvalError(t *testing.T) {
	doc := buildDoc(t, "480000")
	require.Empty(t, doc.Value)
	require.Contains(t, doc.EvalError, "no operands")
	require.Equal(t, "(v2:min)", doc.Expr)
}

func TestDigestStable(t *testing.T) {
	require.Equal(t, Digest("D2FE28"), Digest("D2FE28"))
	require.NotEqual(t, Digest("D2FE28"), Digest("d2fe28"))
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"text": FormatText, " YAML ": FormatYAML, "yml": FormatYAML,
		"json": FormatJSON, "cbor": FormatCBOR,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, buildDoc(t, "C200B40A82"), FormatText))
	out := buf.String()
	require.Contains(t, out, "version sum: 14\n")
	require.Contains(t, out, "value:       3\n")
	require.Contains(t, out, "expr:        (v6:+ v6:1 v2:2)\n")
}

func TestEncodeYAML(t *testing.T) {
	doc := buildDoc(t, "D2FE28")
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, FormatYAML))
	require.Contains(t, buf.String(), "version_sum: 6\n")

	var decoded Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, doc, decoded)
}

func TestEncodeJSON(t *testing.T) {
	doc := buildDoc(t, "04005AC33890")
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, FormatJSON))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Equal(t, "54", raw["value"])
	require.Equal(t, "(v0:* v5:6 v3:9)", raw["expr"])
}

func TestEncodeCBORDeterministic(t *testing.T) {
	doc := buildDoc(t, "A0016C880162017C3686B18A3D4780")

	var first, second bytes.Buffer
	require.NoError(t, Encode(&first, doc, FormatCBOR))
	require.NoError(t, Encode(&second, doc, FormatCBOR))
	require.Equal(t, first.Bytes(), second.Bytes())

	decoded, err := UnmarshalCBOR(first.Bytes())
	require.NoError(t, err)
	require.Equal(t, doc, decoded)
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, Document{}, Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.True(t, strings.TrimSpace(buf.String()) == "")
}
