package javacheck

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokChar
	tokPunct // single or multi character operator/punctuation
)

type token struct {
	kind tokenKind
	text string
	line uint32
	col  uint32
}

type lexer struct {
	src   []byte
	off   uint32
	limit uint32
	line  uint32
	col   uint32
}

func newLexer(src []byte) (*lexer, error) {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return nil, fmt.Errorf("source too large: %w", err)
	}
	return &lexer{src: src, limit: limit, line: 1, col: 1}, nil
}

func (lx *lexer) eof() bool {
	return lx.off >= lx.limit
}

func (lx *lexer) peek() byte {
	if lx.eof() {
		return 0
	}
	return lx.src[lx.off]
}

func (lx *lexer) peek2() byte {
	if lx.off+1 >= lx.limit {
		return 0
	}
	return lx.src[lx.off+1]
}

func (lx *lexer) bump() byte {
	b := lx.src[lx.off]
	lx.off++
	if b == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return b
}

// peekRune decodes the rune at the current offset. Identifiers are the
// only tokens that may contain multi-byte runes.
func (lx *lexer) peekRune() (rune, uint32) {
	if lx.eof() {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(lx.src[lx.off:])
	return r, uint32(size)
}

// bumpRune advances past a rune of the given byte size. Multi-byte runes
// are never newlines, so the column advances by one.
func (lx *lexer) bumpRune(size uint32) {
	lx.off += size
	lx.col++
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: lx.line, Col: lx.col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) skipTrivia() error {
	for !lx.eof() {
		switch b := lx.peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			lx.bump()
		case b == '/' && lx.peek2() == '/':
			for !lx.eof() && lx.peek() != '\n' {
				lx.bump()
			}
		case b == '/' && lx.peek2() == '*':
			lx.bump()
			lx.bump()
			for {
				if lx.eof() {
					return lx.errorf("unterminated block comment")
				}
				if lx.peek() == '*' && lx.peek2() == '/' {
					lx.bump()
					lx.bump()
					break
				}
				lx.bump()
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() (token, error) {
	if err := lx.skipTrivia(); err != nil {
		return token{}, err
	}
	tok := token{line: lx.line, col: lx.col}
	if lx.eof() {
		tok.kind = tokEOF
		return tok, nil
	}
	start := lx.off
	b := lx.peek()
	r, size := lx.peekRune()
	switch {
	case isIdentStart(r):
		for isIdentPart(r) {
			lx.bumpRune(size)
			if lx.eof() {
				break
			}
			r, size = lx.peekRune()
		}
		tok.kind = tokIdent
	case b >= '0' && b <= '9':
		for !lx.eof() && (lx.peek() >= '0' && lx.peek() <= '9') {
			lx.bump()
		}
		if !lx.eof() && lx.peek() == '.' && lx.peek2() >= '0' && lx.peek2() <= '9' {
			lx.bump()
			for !lx.eof() && (lx.peek() >= '0' && lx.peek() <= '9') {
				lx.bump()
			}
		}
		tok.kind = tokNumber
	case b == '"':
		// Backslashes pass through emission unescaped, so a string value
		// ending in a lone backslash renders as `\"` and reads here as an
		// escaped quote. Such output is reported unterminated.
		lx.bump()
		for {
			if lx.eof() || lx.peek() == '\n' {
				return token{}, lx.errorf("unterminated string literal")
			}
			c := lx.bump()
			if c == '\\' {
				if lx.eof() {
					return token{}, lx.errorf("unterminated escape sequence")
				}
				lx.bump()
				continue
			}
			if c == '"' && lx.off > start+1 {
				break
			}
		}
		tok.kind = tokString
	case b == '\'':
		lx.bump()
		if lx.eof() {
			return token{}, lx.errorf("unterminated character literal")
		}
		if lx.bump() == '\\' {
			if lx.eof() {
				return token{}, lx.errorf("unterminated escape sequence")
			}
			lx.bump()
		}
		if lx.eof() || lx.bump() != '\'' {
			return token{}, lx.errorf("unterminated character literal")
		}
		tok.kind = tokChar
	default:
		lx.bump()
		switch b {
		case '&', '|':
			if lx.peek() != b {
				return token{}, lx.errorf("unexpected character %q", string(b))
			}
			lx.bump()
		case '<', '>', '!', '=':
			if lx.peek() == '=' {
				lx.bump()
			}
		case '+', '-', '*', '/', '^', '{', '}', '(', ')', '[', ']', ';', ',', '.', ':':
			// single-character token
		default:
			return token{}, lx.errorf("unexpected character %q", string(b))
		}
		tok.kind = tokPunct
	}
	tok.text = string(lx.src[start:lx.off])
	return tok, nil
}

// Java identifiers admit any Unicode letter, matching the render names
// the snapshot decoder passes through.
func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
