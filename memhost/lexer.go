package memhost

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokString
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokEqual
	tokSemicolon
	tokComma
	tokClass
)

// punct maps single-character tokens to their type.
var punct = map[rune]tokenType{
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBracket,
	']': tokRBracket,
	'=': tokEqual,
	';': tokSemicolon,
	',': tokComma,
}

type token struct {
	Lit  string
	Type tokenType
	Line int
	Col  int
}

// lexer splits a document into tokens in a single pass.
type lexer struct {
	r    *bufio.Reader
	ch   rune
	line int
	col  int
	opt  ParseOptions
	eof  bool
}

func newLexer(r io.Reader, opt ParseOptions) *lexer {
	l := &lexer{r: bufio.NewReader(r), opt: opt, line: 1}
	l.read()
	if l.ch == 0xFEFF {
		l.read()
	}

	return l
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	at := token{Line: l.line, Col: l.col}
	if l.eof {
		at.Type = tokEOF
		return at, nil
	}

	if tt, ok := punct[l.ch]; ok {
		at.Type, at.Lit = tt, string(l.ch)
		l.read()
		return at, nil
	}

	switch {
	case l.ch == '"':
		lit, err := l.readString()
		at.Type, at.Lit = tokString, lit
		return at, err

	case isIdentStart(l.ch):
		at.Lit = l.readWhile(isIdentPart)
		at.Type = tokIdent
		if at.Lit == "class" {
			at.Type = tokClass
		}
		return at, nil

	case isNumberStart(l.ch):
		at.Lit = l.readWhile(isNumberPart)
		if _, err := strconv.ParseFloat(at.Lit, 64); err != nil {
			return at, l.errorf("invalid number %q", at.Lit)
		}
		at.Type = tokNumber
		return at, nil
	}

	return at, l.errorf("unexpected character %q", l.ch)
}

func (l *lexer) read() {
	ch, _, err := l.r.ReadRune()
	if err != nil {
		l.eof = true
		l.ch = 0
		return
	}

	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.ch = ch
}

func (l *lexer) peek() rune {
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0
	}
	_ = l.r.UnreadRune()

	return ch
}

// skipSpace skips whitespace and, unless disabled, // and /* */ comments.
func (l *lexer) skipSpace() {
	for !l.eof {
		switch {
		case unicode.IsSpace(l.ch):
			l.read()
		case !l.opt.DisableComments && l.ch == '/' && l.peek() == '/':
			for !l.eof && l.ch != '\n' {
				l.read()
			}
		case !l.opt.DisableComments && l.ch == '/' && l.peek() == '*':
			l.read()
			l.read()
			for !l.eof && !(l.ch == '*' && l.peek() == '/') {
				l.read()
			}
			l.read()
			l.read()
		default:
			return
		}
	}
}

func (l *lexer) readWhile(ok func(rune) bool) string {
	var b strings.Builder
	for !l.eof && ok(l.ch) {
		b.WriteRune(l.ch)
		l.read()
	}

	return b.String()
}

// readString reads a quoted string; \\ and \" are the only escapes.
func (l *lexer) readString() (string, error) {
	l.read()
	var b strings.Builder
	for {
		if l.eof {
			return "", l.errorf("unterminated string")
		}
		if l.ch == '"' {
			l.read()
			return b.String(), nil
		}
		if l.ch == '\\' {
			if next := l.peek(); next == '\\' || next == '"' {
				l.read()
			}
		}
		b.WriteRune(l.ch)
		l.read()
	}
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %d:%d: %s", ErrLex, l.line, l.col, fmt.Sprintf(format, args...))
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

// isIdentPart accepts dots so legacy leaf names like UnifiedBitmap.Bitmap stay one token.
func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '.'
}

func isNumberStart(r rune) bool {
	return unicode.IsDigit(r) || r == '-' || r == '+' || r == '.'
}

func isNumberPart(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E'
}
