package memhost

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/texmat"
)

// Document keys. Meta keys start with '$' so they never collide with leaves.
const (
	keyUnit     = "$unit"
	keyName     = "$name"
	keyPattern  = "$pattern"
	keyID       = "$id"
	keyGrids    = "$grids"
	keyReadOnly = "$readOnly"

	classGraph   = "Graph"
	classPattern = "Pattern"
)

// Parse decodes a host document from bytes.
func Parse(data []byte, opt *ParseOptions) (*Host, error) {
	return Decode(bytes.NewReader(data), opt)
}

// Decode decodes a host document from r.
func Decode(r io.Reader, opt *ParseOptions) (*Host, error) {
	p := &parser{l: newLexer(r, opt.normalize())}
	return p.parseDocument()
}

// DecodeFile decodes a host document from a file.
func DecodeFile(path string, opt *ParseOptions) (*Host, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b, opt)
}

type parser struct {
	l   *lexer
	buf token
	has bool
}

// assign is one parsed `key=value;` or `key[]={...};` statement.
type assign struct {
	name  token
	val   any // string, float64, bool, or []any for arrays
	array bool
}

func (p *parser) next() (token, error) {
	if p.has {
		p.has = false
		return p.buf, nil
	}

	return p.l.next()
}

func (p *parser) peek() (token, error) {
	if p.has {
		return p.buf, nil
	}

	tok, err := p.l.next()
	if err != nil {
		return tok, err
	}
	p.buf, p.has = tok, true

	return tok, nil
}

func (p *parser) parseDocument() (*Host, error) {
	h := New("")
	unitSet := false

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == tokEOF {
			return h, nil
		}

		if tok.Type == tokClass {
			if err := p.parseTopClass(h); err != nil {
				return nil, err
			}
			continue
		}

		a, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if a.name.Lit != keyUnit || unitSet {
			return nil, p.errorf(a.name, "unexpected top-level key %q", a.name.Lit)
		}
		s, ok := a.val.(string)
		if !ok {
			return nil, p.errorf(a.name, "%s must be a string", keyUnit)
		}
		u, err := texmat.ParseUnit(s)
		if err != nil {
			return nil, p.errorf(a.name, "%v", err)
		}
		h.unit, unitSet = u, true
	}
}

func (p *parser) parseTopClass(h *Host) error {
	if _, err := p.expect(tokClass); err != nil {
		return err
	}
	kind, err := p.expect(tokIdent)
	if err != nil {
		return err
	}

	switch kind.Lit {
	case classGraph:
		return p.parseGraph(h, kind)
	case classPattern:
		return p.parsePattern(h, kind)
	default:
		return p.errorf(kind, "unknown class %q", kind.Lit)
	}
}

func (p *parser) parseGraph(h *Host, at token) error {
	root := NewNode("")
	meta, err := p.parseBody(root, map[string]bool{keyName: true, keyPattern: true})
	if err != nil {
		return err
	}

	name, _ := meta[keyName].(string)
	if name == "" {
		return p.errorf(at, "graph without %s", keyName)
	}
	root.name = name

	g, err := h.AddGraph(name, root)
	if err != nil {
		return p.errorf(at, "%v", err)
	}
	g.pattern, _ = meta[keyPattern].(string)

	return nil
}

func (p *parser) parsePattern(h *Host, at token) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}

	var pat texmat.Pattern
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Type == tokRBrace {
			_, _ = p.next()
			break
		}

		a, err := p.parseAssign()
		if err != nil {
			return err
		}
		switch a.name.Lit {
		case keyName:
			s, ok := a.val.(string)
			if !ok {
				return p.errorf(a.name, "%s must be a string", keyName)
			}
			pat.Name = s
		case keyID:
			f, ok := a.val.(float64)
			if !ok {
				return p.errorf(a.name, "%s must be a number", keyID)
			}
			pat.ID = int(f)
		case keyGrids:
			grids, err := p.toGrids(a)
			if err != nil {
				return err
			}
			pat.Grids = grids
		default:
			return p.errorf(a.name, "unexpected pattern key %q", a.name.Lit)
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return err
	}

	if pat.Name == "" {
		return p.errorf(at, "pattern without %s", keyName)
	}
	h.mu.Lock()
	_, err := h.addPatternLocked(pat)
	h.mu.Unlock()
	if err != nil {
		return p.errorf(at, "%v", err)
	}

	return nil
}

// parseBody fills n from a `{ ... };` block and returns the meta keys allowed
// by meta. Read-only markers are applied after every leaf is known.
func (p *parser) parseBody(n *Node, meta map[string]bool) (map[string]any, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	out := make(map[string]any)
	var locked []token
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == tokRBrace {
			_, _ = p.next()
			break
		}

		if tok.Type == tokClass {
			_, _ = p.next()
			nameTok, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			if n.child(nameTok.Lit) != nil {
				return nil, p.errorf(nameTok, "duplicate node %q", nameTok.Lit)
			}
			if _, err := p.parseBody(n.AddChild(nameTok.Lit), nil); err != nil {
				return nil, err
			}
			continue
		}

		a, err := p.parseAssign()
		if err != nil {
			return nil, err
		}

		switch {
		case a.name.Lit == keyReadOnly:
			names, err := p.toStrings(a)
			if err != nil {
				return nil, err
			}
			for _, s := range names {
				locked = append(locked, token{Lit: s, Line: a.name.Line, Col: a.name.Col})
			}

		case strings.HasPrefix(a.name.Lit, "$"):
			if !meta[a.name.Lit] {
				return nil, p.errorf(a.name, "unexpected key %q", a.name.Lit)
			}
			out[a.name.Lit] = a.val

		default:
			v, err := p.toValue(a)
			if err != nil {
				return nil, err
			}
			if n.leaf(a.name.Lit) != nil {
				return nil, p.errorf(a.name, "duplicate leaf %q", a.name.Lit)
			}
			n.Define(a.name.Lit, v)
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	for _, t := range locked {
		if n.leaf(t.Lit) == nil {
			return nil, p.errorf(t, "read-only marker for unknown leaf %q", t.Lit)
		}
		n.Lock(t.Lit)
	}

	return out, nil
}

func (p *parser) parseAssign() (assign, error) {
	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return assign{}, err
	}

	a := assign{name: nameTok}
	if tok, _ := p.peek(); tok.Type == tokLBracket {
		_, _ = p.next()
		if _, err := p.expect(tokRBracket); err != nil {
			return assign{}, err
		}
		a.array = true
	}
	if _, err := p.expect(tokEqual); err != nil {
		return assign{}, err
	}

	if a.val, err = p.parseValue(); err != nil {
		return assign{}, err
	}
	if _, isArr := a.val.([]any); isArr != a.array {
		return assign{}, p.errorf(nameTok, "array value requires %s[]", nameTok.Lit)
	}

	return a, p.expectSemicolon()
}

func (p *parser) parseValue() (any, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case tokNumber:
		f, err := strconv.ParseFloat(tok.Lit, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number")
		}
		return f, nil
	case tokString:
		return tok.Lit, nil
	case tokIdent:
		switch tok.Lit {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, p.errorf(tok, "unexpected identifier %q", tok.Lit)
	case tokLBrace:
		return p.parseArray()
	default:
		return nil, p.errorf(tok, "unexpected token")
	}
}

func (p *parser) parseArray() ([]any, error) {
	arr := []any{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == tokRBrace {
			_, _ = p.next()
			return arr, nil
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case tokComma:
			_, _ = p.next()
		case tokRBrace:
		default:
			return nil, p.errorf(tok, "expected ',' or '}' in array")
		}
	}
}

// toValue converts a leaf assignment to a typed value.
func (p *parser) toValue(a assign) (texmat.Value, error) {
	switch v := a.val.(type) {
	case string:
		return texmat.StringValue(v), nil
	case bool:
		return texmat.BoolValue(v), nil
	case float64:
		return texmat.NumberValue(v), nil
	case []any:
		vec, err := p.toFloats(a.name, v)
		if err != nil {
			return texmat.Value{}, err
		}
		return texmat.VectorValue(vec), nil
	default:
		return texmat.Value{}, p.errorf(a.name, "unsupported value")
	}
}

func (p *parser) toFloats(at token, arr []any) ([]float64, error) {
	out := make([]float64, len(arr))
	for i, e := range arr {
		f, ok := e.(float64)
		if !ok {
			return nil, p.errorf(at, "%s: element %d is not a number", at.Lit, i)
		}
		out[i] = f
	}

	return out, nil
}

func (p *parser) toStrings(a assign) ([]string, error) {
	arr, _ := a.val.([]any)
	out := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, p.errorf(a.name, "%s: element %d is not a string", a.name.Lit, i)
		}
		out[i] = s
	}

	return out, nil
}

// toGrids reads {{angle, spacing, shift}, ...}; shift may be omitted.
func (p *parser) toGrids(a assign) ([]texmat.Grid, error) {
	arr, _ := a.val.([]any)
	out := make([]texmat.Grid, 0, len(arr))
	for i, e := range arr {
		row, ok := e.([]any)
		if !ok {
			return nil, p.errorf(a.name, "%s: element %d is not an array", a.name.Lit, i)
		}
		f, err := p.toFloats(a.name, row)
		if err != nil {
			return nil, err
		}
		if len(f) < 2 || len(f) > 3 {
			return nil, p.errorf(a.name, "%s: element %d needs angle, spacing and optional shift", a.name.Lit, i)
		}
		g := texmat.Grid{AngleDeg: f[0], Spacing: f[1]}
		if len(f) == 3 {
			g.Shift = f[2]
		}
		out = append(out, g)
	}

	return out, nil
}

func (p *parser) expect(tt tokenType) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s", tokenName(tt))
	}

	return tok, nil
}

func (p *parser) expectSemicolon() error {
	_, err := p.expect(tokSemicolon)
	return err
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return fmt.Errorf("%w at %d:%d: %s", ErrParse, tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

func tokenName(tt tokenType) string {
	switch tt {
	case tokEOF:
		return "EOF"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokLBrace:
		return "{"
	case tokRBrace:
		return "}"
	case tokLBracket:
		return "["
	case tokRBracket:
		return "]"
	case tokEqual:
		return "="
	case tokSemicolon:
		return ";"
	case tokComma:
		return ","
	case tokClass:
		return "class"
	default:
		return "token"
	}
}
