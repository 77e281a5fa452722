package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/bumpver/internal/format"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/selector"
)

// jsonObject keeps object members in source order. A repeated key keeps its
// first position and its last value.
type jsonObject struct {
	keys   []string
	values map[string]any
}

func newJSONObject() *jsonObject {
	return &jsonObject{values: map[string]any{}}
}

func (o *jsonObject) set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// jsonNode addresses a value together with the object slot that holds it,
// so a leaf can be replaced in place.
type jsonNode struct {
	value  any
	parent *jsonObject
	key    string
}

// JSONDocument is a JSON value tree with source key order.
// Values are *jsonObject, []any, string, json.Number, bool, or nil.
type JSONDocument struct {
	root any
}

var _ model[jsonNode] = (*JSONDocument)(nil)

// ParseJSON decodes a single JSON value.
func ParseJSON(data []byte) (*JSONDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, jsonParseError(data, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Format: format.JSON, Err: errors.New(messages.DocumentTrailingData)}
	}
	return &JSONDocument{root: root}, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := newJSONObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			items := []any{}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

// jsonParseError adds a line and column to decoder syntax errors.
func jsonParseError(data []byte, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := lineCol(data, int(syntaxErr.Offset))
		err = fmt.Errorf(messages.DocumentPositionFmt, line, col, syntaxErr.Error())
	}
	return &ParseError{Format: format.JSON, Err: err}
}

// lineCol converts a byte offset to a 1-based line and column.
func lineCol(data []byte, offset int) (int, int) {
	if offset > len(data) {
		offset = len(data)
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// Format reports format.JSON.
func (d *JSONDocument) Format() format.Format { return format.JSON }

// ReadString implements Document.
func (d *JSONDocument) ReadString(sel selector.Selector) (string, error) {
	return readString[jsonNode](d, jsonNode{value: d.root}, sel)
}

// WriteString implements Document.
func (d *JSONDocument) WriteString(sel selector.Selector, value string) error {
	return writeString[jsonNode](d, jsonNode{value: d.root}, sel, value)
}

func (d *JSONDocument) IsTable(n jsonNode) bool {
	_, ok := n.value.(*jsonObject)
	return ok
}

func (d *JSONDocument) Child(n jsonNode, key string) (jsonNode, bool) {
	obj, ok := n.value.(*jsonObject)
	if !ok {
		return jsonNode{}, false
	}
	value, ok := obj.values[key]
	if !ok {
		return jsonNode{}, false
	}
	return jsonNode{value: value, parent: obj, key: key}, true
}

func (d *JSONDocument) String(n jsonNode) (string, bool) {
	s, ok := n.value.(string)
	return s, ok
}

func (d *JSONDocument) SetString(n jsonNode, value string) error {
	if n.parent == nil {
		d.root = value
		return nil
	}
	n.parent.values[n.key] = value
	return nil
}

// Encode renders two-space indented JSON in source key order with a trailing newline.
func (d *JSONDocument) Encode() ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSONValue(&compact, d.root); err != nil {
		return nil, fmt.Errorf(messages.DocumentEncodeFailedFmt, format.JSON, err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf(messages.DocumentEncodeFailedFmt, format.JSON, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case *jsonObject:
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONScalar(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSONValue(buf, v.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case json.Number:
		buf.WriteString(v.String())
		return nil
	default:
		return writeJSONScalar(buf, v)
	}
}

// writeJSONScalar encodes strings, booleans, and null without HTML escaping.
func writeJSONScalar(buf *bytes.Buffer, value any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}
