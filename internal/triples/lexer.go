package triples

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrSyntax = errors.New("syntax error")

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName
	tokBlank
	tokString
	tokLangTag
	tokCaret
	tokInteger
	tokDecimal
	tokDouble
	tokBoolean
	tokA
	tokPrefix
	tokBase
	tokDot
	tokComma
	tokSemicolon
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
)

var tokenNames = map[tokenKind]string{
	tokEOF:       "end of input",
	tokIRI:       "IRI",
	tokPName:     "prefixed name",
	tokBlank:     "blank node",
	tokString:    "string",
	tokLangTag:   "language tag",
	tokCaret:     "'^^'",
	tokInteger:   "integer",
	tokDecimal:   "decimal",
	tokDouble:    "double",
	tokBoolean:   "boolean",
	tokA:         "'a'",
	tokPrefix:    "prefix directive",
	tokBase:      "base directive",
	tokDot:       "'.'",
	tokComma:     "','",
	tokSemicolon: "';'",
	tokLParen:    "'('",
	tokRParen:    "')'",
	tokLBracket:  "'['",
	tokRBracket:  "']'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

// token is one lexeme. For a prefixed name val is the prefix and local the
// part after the colon; string and IRI values are already unescaped.
type token struct {
	kind   tokenKind
	val    string
	local  string
	sparql bool // PREFIX or BASE written without the '@'
}

// lexer splits Turtle (and N-Triples, which is a subset) into tokens
type lexer struct {
	src  []rune
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

func (l *lexer) peekRune(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '\n':
			l.line++
			l.pos++
		case r == ' ' || r == '\t' || r == '\r':
			l.pos++
		case r == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}
	single := func(k tokenKind) (token, error) {
		l.pos++
		return token{kind: k}, nil
	}

	r := l.src[l.pos]
	switch {
	case r == '<':
		iri, err := l.readIRI()
		return token{kind: tokIRI, val: iri}, err
	case r == '"' || r == '\'':
		s, err := l.readString(r)
		return token{kind: tokString, val: s}, err
	case r == '@':
		l.pos++
		word := l.readWhile(func(r rune) bool {
			return r == '-' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
		})
		switch word {
		case "":
			return token{}, l.errorf("empty language tag")
		case "prefix":
			return token{kind: tokPrefix}, nil
		case "base":
			return token{kind: tokBase}, nil
		}
		return token{kind: tokLangTag, val: word}, nil
	case r == '^':
		if l.peekRune(1) != '^' {
			return token{}, l.errorf("expected '^^'")
		}
		l.pos += 2
		return token{kind: tokCaret}, nil
	case r == '_' && l.peekRune(1) == ':':
		l.pos += 2
		label := l.readName(false)
		if label == "" {
			return token{}, l.errorf("empty blank node label")
		}
		return token{kind: tokBlank, val: label}, nil
	case unicode.IsDigit(r) || (r == '+' || r == '-') || (r == '.' && unicode.IsDigit(l.peekRune(1))):
		return l.readNumber()
	case r == '.':
		return single(tokDot)
	case r == ',':
		return single(tokComma)
	case r == ';':
		return single(tokSemicolon)
	case r == '(':
		return single(tokLParen)
	case r == ')':
		return single(tokRParen)
	case r == '[':
		return single(tokLBracket)
	case r == ']':
		return single(tokRBracket)
	case r == ':' || unicode.IsLetter(r):
		return l.readWord()
	}
	return token{}, l.errorf("unexpected character %q", r)
}

func (l *lexer) readWhile(ok func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.src) && ok(l.src[l.pos]) {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

func (l *lexer) readIRI() (string, error) {
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '>':
			l.pos++
			return b.String(), nil
		case r == '\\':
			l.pos++
			if c := l.peekRune(0); c != 'u' && c != 'U' {
				return "", l.errorf("only \\u and \\U escapes are allowed in IRIs")
			}
			d, err := l.readUChar()
			if err != nil {
				return "", err
			}
			if d <= 0x20 || strings.ContainsRune(`<>"{}|^`+"`\\", d) {
				return "", l.errorf("%U is not allowed in an IRI", d)
			}
			b.WriteRune(d)
		case r <= 0x20 || strings.ContainsRune(`<"{}|^`+"`", r):
			return "", l.errorf("%q is not allowed in an IRI", r)
		default:
			b.WriteRune(r)
			l.pos++
		}
	}
	return "", l.errorf("unterminated IRI")
}

// readUChar decodes \uXXXX or \UXXXXXXXX with l.pos on the u
func (l *lexer) readUChar() (rune, error) {
	size := 4
	if l.src[l.pos] == 'U' {
		size = 8
	}
	if l.pos+1+size > len(l.src) {
		return 0, l.errorf("short \\%c escape", l.src[l.pos])
	}
	r, err := decodeHex(string(l.src[l.pos+1 : l.pos+1+size]))
	if err != nil {
		return 0, l.errorf("%v", err)
	}
	l.pos += 1 + size
	return r, nil
}

var stringEscapes = map[rune]rune{
	't': '\t', 'b': '\b', 'n': '\n', 'r': '\r', 'f': '\f',
	'"': '"', '\'': '\'', '\\': '\\',
}

func (l *lexer) readString(quote rune) (string, error) {
	long := l.peekRune(1) == quote && l.peekRune(2) == quote
	if long {
		l.pos += 3
	} else {
		l.pos++
	}

	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == quote && !long:
			l.pos++
			return b.String(), nil
		case r == quote && l.peekRune(1) == quote && l.peekRune(2) == quote:
			l.pos += 3
			return b.String(), nil
		case r == '\\':
			l.pos++
			c := l.peekRune(0)
			if c == 'u' || c == 'U' {
				d, err := l.readUChar()
				if err != nil {
					return "", err
				}
				b.WriteRune(d)
				continue
			}
			d, ok := stringEscapes[c]
			if !ok {
				return "", l.errorf("unknown escape \\%c", c)
			}
			b.WriteRune(d)
			l.pos++
		case (r == '\n' || r == '\r') && !long:
			return "", l.errorf("newline in string")
		default:
			if r == '\n' {
				l.line++
			}
			b.WriteRune(r)
			l.pos++
		}
	}
	return "", l.errorf("unterminated string")
}

func (l *lexer) readNumber() (token, error) {
	start := l.pos
	if r := l.src[l.pos]; r == '+' || r == '-' {
		l.pos++
	}
	digits := func() int {
		return len(l.readWhile(func(r rune) bool { return r >= '0' && r <= '9' }))
	}
	kind := tokInteger
	n := digits()
	if l.peekRune(0) == '.' && unicode.IsDigit(l.peekRune(1)) {
		l.pos++
		n += digits()
		kind = tokDecimal
	}
	if n == 0 {
		return token{}, l.errorf("malformed number")
	}
	if r := l.peekRune(0); r == 'e' || r == 'E' {
		l.pos++
		if r := l.peekRune(0); r == '+' || r == '-' {
			l.pos++
		}
		if digits() == 0 {
			return token{}, l.errorf("malformed exponent")
		}
		kind = tokDouble
	}
	return token{kind: kind, val: string(l.src[start:l.pos])}, nil
}

func isNameRune(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == 0xB7 || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// readName reads a name made of name runes, and for local names also colons,
// percent escapes and backslash escapes. A trailing '.' ends the statement
// instead.
func (l *lexer) readName(local bool) string {
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case isNameRune(r):
		case local && (r == ':' || r == '%'):
		case local && r == '\\' && strings.ContainsRune("_~.-!$&'()*+,;=/?#@%", l.peekRune(1)):
			l.pos++
			r = l.src[l.pos]
		default:
			return trimDots(l, b.String())
		}
		b.WriteRune(r)
		l.pos++
	}
	return trimDots(l, b.String())
}

func trimDots(l *lexer, name string) string {
	for strings.HasSuffix(name, ".") && l.pos > 1 && l.src[l.pos-1] == '.' && l.src[l.pos-2] != '\\' {
		name = name[:len(name)-1]
		l.pos--
	}
	return name
}

func (l *lexer) readWord() (token, error) {
	prefix := l.readWhile(isNameRune)
	if l.peekRune(0) != ':' {
		prefix = trimDots(l, prefix)
		switch {
		case prefix == "a":
			return token{kind: tokA}, nil
		case prefix == "true" || prefix == "false":
			return token{kind: tokBoolean, val: prefix}, nil
		case strings.EqualFold(prefix, "prefix"):
			return token{kind: tokPrefix, sparql: true}, nil
		case strings.EqualFold(prefix, "base"):
			return token{kind: tokBase, sparql: true}, nil
		}
		return token{}, l.errorf("unexpected word %q", prefix)
	}
	l.pos++
	return token{kind: tokPName, val: prefix, local: l.readName(true)}, nil
}
