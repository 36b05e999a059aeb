package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// encMode is Core Deterministic Encoding: identical documents always produce
// identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatYAML, FormatJSON, FormatCBOR:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatText:
		return encodeText(w, doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		return nil
	case FormatCBOR:
		data, err := encMode.Marshal(doc)
		if err != nil {
			return fmt.Errorf("export cbor: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// UnmarshalCBOR decodes a document written with FormatCBOR.
func UnmarshalCBOR(data []byte) (Document, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("export cbor: %w", err)
	}
	return doc, nil
}

func encodeText(w io.Writer, doc Document) error {
	value := doc.Value
	if doc.EvalError != "" {
		value = "error: " + doc.EvalError
	}
	_, err := fmt.Fprintf(w,
		"digest:      %s\nbits:        %d (consumed %d, trailing %d)\npackets:     %d (depth %d)\nversion sum: %d\nvalue:       %s\nexpr:        %s\n",
		doc.Digest, doc.Bits, doc.Consumed, doc.Trailing,
		doc.Packets, doc.Depth, doc.VersionSum, value, doc.Expr)
	return err
}
