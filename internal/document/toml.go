package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/conn-castle/bumpver/internal/format"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/selector"
)

// TOMLDocument is an editable TOML document. It keeps the source bytes and a
// key index built from the go-toml parser; string leaves remember their byte
// span so a write splices only that span and leaves every other byte intact.
type TOMLDocument struct {
	src     []byte
	root    *tomlValue
	edits   map[uint32]tomlEdit
	written map[string]tomlWrite
}

type tomlTable struct {
	keys    []string
	entries map[string]*tomlValue
}

func newTOMLTable() *tomlTable {
	return &tomlTable{entries: map[string]*tomlValue{}}
}

func (t *tomlTable) set(key string, value *tomlValue) {
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = value
}

// tomlValue is one entry in the key index.
type tomlValue struct {
	kind   unstable.Kind
	table  *tomlTable   // standard, implicit, dotted-key, and inline tables
	tables []*tomlTable // elements of an array of tables
	text   string       // decoded content of a string
	span   unstable.Range
	quoted bool // span covers a quoted string literal
}

type tomlEdit struct {
	span unstable.Range
	text string
}

type tomlWrite struct {
	path  selector.Selector
	value string
}

var _ model[*tomlValue] = (*TOMLDocument)(nil)

// ParseTOML validates data with the go-toml decoder, then indexes it with the
// go-toml parser.
func ParseTOML(data []byte) (*TOMLDocument, error) {
	var probe map[string]any
	if err := toml.Unmarshal(data, &probe); err != nil {
		return nil, tomlParseError(err)
	}

	src := append([]byte(nil), data...)
	b := &tomlBuilder{root: newTOMLTable()}
	current := b.root

	var p unstable.Parser
	p.Reset(src)
	for p.NextExpression() {
		expr := p.Expression()
		var err error
		switch expr.Kind {
		case unstable.Table:
			current, err = b.openTable(b.root, keyParts(expr.Key()))
		case unstable.ArrayTable:
			current, err = b.appendArrayTable(keyParts(expr.Key()))
		case unstable.KeyValue:
			err = b.setKeyValue(current, expr)
		}
		if err != nil {
			return nil, &ParseError{Format: format.TOML, Err: err}
		}
	}
	if err := p.Error(); err != nil {
		return nil, tomlParseError(err)
	}

	return &TOMLDocument{
		src:     src,
		root:    &tomlValue{kind: unstable.Table, table: b.root},
		edits:   map[uint32]tomlEdit{},
		written: map[string]tomlWrite{},
	}, nil
}

func tomlParseError(err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		err = fmt.Errorf(messages.DocumentPositionFmt, row, col, decodeErr.Error())
	}
	return &ParseError{Format: format.TOML, Err: err}
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

type tomlBuilder struct {
	root *tomlTable
}

// openTable walks parts from t, creating implicit tables as needed. Arrays of
// tables continue into their most recent element.
func (b *tomlBuilder) openTable(t *tomlTable, parts []string) (*tomlTable, error) {
	for _, part := range parts {
		v, ok := t.entries[part]
		if !ok {
			v = &tomlValue{kind: unstable.Table, table: newTOMLTable()}
			t.set(part, v)
		}
		switch {
		case v.table != nil:
			t = v.table
		case len(v.tables) > 0:
			t = v.tables[len(v.tables)-1]
		default:
			return nil, fmt.Errorf("key %q is already defined as a value", part)
		}
	}
	return t, nil
}

func (b *tomlBuilder) appendArrayTable(parts []string) (*tomlTable, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty array table header")
	}
	parent, err := b.openTable(b.root, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}
	name := parts[len(parts)-1]
	v, ok := parent.entries[name]
	if !ok {
		v = &tomlValue{kind: unstable.ArrayTable}
		parent.set(name, v)
	}
	if v.kind != unstable.ArrayTable {
		return nil, fmt.Errorf("key %q is not an array of tables", name)
	}
	element := newTOMLTable()
	v.tables = append(v.tables, element)
	return element, nil
}

func (b *tomlBuilder) setKeyValue(t *tomlTable, kv *unstable.Node) error {
	parts := keyParts(kv.Key())
	if len(parts) == 0 {
		return errors.New("empty key")
	}
	parent, err := b.openTable(t, parts[:len(parts)-1])
	if err != nil {
		return err
	}
	value, err := b.convert(kv.Value())
	if err != nil {
		return err
	}
	parent.set(parts[len(parts)-1], value)
	return nil
}

func (b *tomlBuilder) convert(n *unstable.Node) (*tomlValue, error) {
	switch n.Kind {
	case unstable.String:
		return &tomlValue{kind: unstable.String, text: string(n.Data), span: n.Raw, quoted: true}, nil
	case unstable.InlineTable:
		t := newTOMLTable()
		it := n.Children()
		for it.Next() {
			if err := b.setKeyValue(t, it.Node()); err != nil {
				return nil, err
			}
		}
		return &tomlValue{kind: unstable.InlineTable, table: t}, nil
	default:
		return &tomlValue{kind: n.Kind}, nil
	}
}

// Format reports format.TOML.
func (d *TOMLDocument) Format() format.Format { return format.TOML }

// ReadString implements Document.
func (d *TOMLDocument) ReadString(sel selector.Selector) (string, error) {
	return readString[*tomlValue](d, d.root, sel)
}

// WriteString implements Document.
func (d *TOMLDocument) WriteString(sel selector.Selector, value string) error {
	if err := writeString[*tomlValue](d, d.root, sel, value); err != nil {
		return err
	}
	d.written[sel.String()] = tomlWrite{path: sel, value: value}
	return nil
}

func (d *TOMLDocument) IsTable(n *tomlValue) bool {
	return n != nil && n.table != nil
}

func (d *TOMLDocument) Child(n *tomlValue, key string) (*tomlValue, bool) {
	if n == nil || n.table == nil {
		return nil, false
	}
	v, ok := n.table.entries[key]
	return v, ok
}

func (d *TOMLDocument) String(n *tomlValue) (string, bool) {
	if n == nil || n.kind != unstable.String {
		return "", false
	}
	return n.text, true
}

// SetString records a splice of the string's source span. Literal strings stay
// literal when the new value allows it.
func (d *TOMLDocument) SetString(n *tomlValue, value string) error {
	start, end, err := d.stringBounds(n)
	if err != nil {
		return err
	}
	raw := d.src[start:end]
	literal := raw[0] == '\'' && !strings.HasPrefix(string(raw), "'''")

	var text string
	if literal && canBeTOMLLiteral(value) {
		text = "'" + value + "'"
	} else {
		text = quoteTOMLBasic(value)
	}
	span := unstable.Range{Offset: uint32(start), Length: uint32(end - start)}
	d.edits[span.Offset] = tomlEdit{span: span, text: text}
	n.text = value
	return nil
}

// stringBounds returns the byte range of the quoted string n, delimiters included.
func (d *TOMLDocument) stringBounds(n *tomlValue) (int, int, error) {
	start := int(n.span.Offset)
	end := start + int(n.span.Length)
	if !n.quoted || end > len(d.src) || start >= end {
		return 0, 0, fmt.Errorf(messages.DocumentInvalidStringFmt, start)
	}
	if isTOMLQuote(d.src[start]) {
		return start, end, nil
	}
	// Span without delimiters: widen by one quote on each side.
	if start > 0 && end < len(d.src) && isTOMLQuote(d.src[start-1]) && d.src[end] == d.src[start-1] {
		return start - 1, end + 1, nil
	}
	return 0, 0, fmt.Errorf(messages.DocumentInvalidStringFmt, start)
}

func isTOMLQuote(b byte) bool {
	return b == '"' || b == '\''
}

func canBeTOMLLiteral(s string) bool {
	for _, r := range s {
		if r == '\'' || (r < 0x20 && r != '\t') || r == 0x7f {
			return false
		}
	}
	return true
}

func quoteTOMLBasic(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Encode returns the source with pending string edits spliced in. The result is
// reloaded with the v1 tree loader and every written key must read back as
// the value that was set.
func (d *TOMLDocument) Encode() ([]byte, error) {
	if len(d.edits) == 0 {
		return append([]byte(nil), d.src...), nil
	}
	edits := make([]tomlEdit, 0, len(d.edits))
	for _, e := range d.edits {
		edits = append(edits, e)
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].span.Offset < edits[j].span.Offset })

	out := make([]byte, 0, len(d.src))
	pos := 0
	for _, e := range edits {
		start := int(e.span.Offset)
		out = append(out, d.src[pos:start]...)
		out = append(out, e.text...)
		pos = start + int(e.span.Length)
	}
	out = append(out, d.src[pos:]...)

	if err := verifyTOML(out, d.written); err != nil {
		return nil, fmt.Errorf(messages.DocumentEncodeFailedFmt, format.TOML, err)
	}
	return out, nil
}

func verifyTOML(out []byte, written map[string]tomlWrite) error {
	var tree map[string]any
	if err := toml.Unmarshal(out, &tree); err != nil {
		return err
	}
	for key, w := range written {
		got, ok := lookupTOMLPath(tree, w.path).(string)
		if !ok || got != w.value {
			return fmt.Errorf(messages.DocumentReadBackFmt, key, w.value)
		}
	}
	return nil
}

// lookupTOMLPath walks decoded tables only; arrays of tables are not entered.
func lookupTOMLPath(tree map[string]any, path selector.Selector) any {
	var current any = tree
	for _, segment := range path {
		table, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = table[segment]
	}
	return current
}
