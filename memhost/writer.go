package memhost

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/texmat"
)

// Encode writes the committed state of h to w.
func Encode(w io.Writer, h *Host, opt *FormatOptions) error {
	fopt := opt.normalize()
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, indent: fopt.Indent}
	wr.writeHost(h)
	if wr.err != nil {
		return wr.err
	}

	return bw.Flush()
}

// EncodeFile writes h to a file.
func EncodeFile(path string, h *Host, opt *FormatOptions) error {
	b, err := Format(h, opt)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}

// Format renders h to bytes.
func Format(h *Host, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, h, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writer renders documents; the first write error sticks and stops output.
type writer struct {
	w      io.Writer
	err    error
	indent string
	cache  []string
	level  int
}

func (w *writer) writeHost(h *Host) {
	w.line(keyUnit + "=" + quote(string(h.Unit())) + ";")

	for _, p := range h.Patterns() {
		w.open(classPattern)
		w.line(keyName + "=" + quote(p.Name) + ";")
		w.line(keyID + "=" + strconv.Itoa(p.ID) + ";")
		if len(p.Grids) > 0 {
			rows := make([]string, len(p.Grids))
			for i, g := range p.Grids {
				rows[i] = "{" + joinFloats([]float64{g.AngleDeg, g.Spacing, g.Shift}) + "}"
			}
			w.line(keyGrids + "[]={" + strings.Join(rows, ", ") + "};")
		}
		w.close()
	}

	for _, tg := range h.Graphs() {
		g := tg.(*Graph)
		w.open(classGraph)
		w.line(keyName + "=" + quote(g.Name()) + ";")
		if pn := g.PatternName(); pn != "" {
			w.line(keyPattern + "=" + quote(pn) + ";")
		}
		w.writeBody(g.Tree())
		w.close()
	}
}

// writeBody writes leaves, read-only markers and child nodes of n.
func (w *writer) writeBody(n *Node) {
	var locked []string
	for _, l := range n.leaves {
		w.writeLeaf(l.name, l.val)
		if l.readOnly {
			locked = append(locked, quote(l.name))
		}
	}
	if len(locked) > 0 {
		w.line(keyReadOnly + "[]={" + strings.Join(locked, ", ") + "};")
	}

	for _, c := range n.children {
		w.open(c.name)
		w.writeBody(c)
		w.close()
	}
}

func (w *writer) writeLeaf(name string, v texmat.Value) {
	switch v.Kind {
	case texmat.KindString:
		w.line(name + "=" + quote(v.Str) + ";")
	case texmat.KindBool:
		w.line(name + "=" + strconv.FormatBool(v.Bool) + ";")
	case texmat.KindNumber:
		w.line(name + "=" + formatFloat(v.Num) + ";")
	case texmat.KindVector:
		w.line(name + "[]={" + joinFloats(v.Vec) + "};")
	}
}

func (w *writer) open(name string) {
	w.line("class " + name)
	w.line("{")
	w.level++
}

func (w *writer) close() {
	w.level--
	w.line("};")
}

func (w *writer) line(s string) {
	if w.err != nil {
		return
	}
	if _, w.err = io.WriteString(w.w, w.indentFor(w.level)); w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s+"\n")
}

// indentFor caches indentation strings per nesting level.
func (w *writer) indentFor(level int) string {
	if level <= 0 {
		return ""
	}
	if len(w.cache) <= level {
		w.cache = append(w.cache, make([]string, level-len(w.cache)+1)...)
	}
	if w.cache[level] == "" {
		w.cache[level] = strings.Repeat(w.indent, level)
	}

	return w.cache[level]
}

// quote escapes backslashes and quotes, the two escapes the lexer knows.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"` + s + `"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}

	return strings.Join(parts, ", ")
}
