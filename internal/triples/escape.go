package triples

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/piprate/json-gold/ld"
)

var ErrBadEscape = errors.New("bad escape sequence")

// stripComment cuts a '#' comment that follows the statement. A '#' inside an
// IRI or a quoted literal is data.
func stripComment(line string) string {
	inIRI, inLiteral := false, false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && (inIRI || inLiteral):
			i++
		case inLiteral:
			inLiteral = c != '"'
		case inIRI:
			inIRI = c != '>'
		case c == '"':
			inLiteral = true
		case c == '<':
			inIRI = true
		case c == '#':
			return strings.TrimSpace(line[:i])
		}
	}
	return line
}

func decodeHex(digits string) (rune, error) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadEscape, digits)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: %q is not a code point", ErrBadEscape, digits)
	}
	return r, nil
}

// parseEscapedStatement parses one N-Quads statement with the Turtle lexer.
// ld.ParseNQuads only undoes \\ \" \n \r \t, one replacement after the
// other, so lines carrying escapes are decoded here instead. The graph name
// is empty for the default graph.
func parseEscapedStatement(line string) (*ld.Quad, string, error) {
	lex := newLexer(line)
	var toks []token
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, "", err
		}
		if tok.kind == tokEOF {
			break
		}
		toks = append(toks, tok)
	}
	if len(toks) < 4 || toks[len(toks)-1].kind != tokDot {
		return nil, "", fmt.Errorf("%w: invalid statement", ErrSyntax)
	}
	toks = toks[:len(toks)-1]

	resource := func(tok token, blankOK bool) (ld.Node, error) {
		switch {
		case tok.kind == tokIRI && strings.Contains(tok.val, ":"):
			return ld.NewIRI(tok.val), nil
		case tok.kind == tokBlank && blankOK:
			return ld.NewBlankNode("_:" + tok.val), nil
		}
		return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, tok.kind)
	}

	subject, err := resource(toks[0], true)
	if err != nil {
		return nil, "", err
	}
	predicate, err := resource(toks[1], false)
	if err != nil {
		return nil, "", err
	}

	var object ld.Node
	rest := toks[3:]
	if toks[2].kind == tokString {
		lit := ld.NewLiteral(toks[2].val, "", "")
		switch {
		case len(rest) > 0 && rest[0].kind == tokLangTag:
			lit.Language = rest[0].val
			lit.Datatype = ld.RDFLangString
			rest = rest[1:]
		case len(rest) > 1 && rest[0].kind == tokCaret && rest[1].kind == tokIRI:
			lit.Datatype = rest[1].val
			rest = rest[2:]
		}
		object = lit
	} else if object, err = resource(toks[2], true); err != nil {
		return nil, "", err
	}

	quad := &ld.Quad{Subject: subject, Predicate: predicate, Object: object}
	switch len(rest) {
	case 0:
		return quad, "", nil
	case 1:
		g, err := resource(rest[0], true)
		if err != nil {
			return nil, "", err
		}
		quad.Graph = g
		return quad, g.GetValue(), nil
	}
	return nil, "", fmt.Errorf("%w: trailing %s", ErrSyntax, rest[1].kind)
}
