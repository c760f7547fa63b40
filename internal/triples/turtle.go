package triples

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
)

// TurtleReader parses a Turtle document and hands out its statements in
// document order. The whole input is read on the first call to Next and
// parsed one statement at a time after that.
//
// Anonymous nodes ([] and collections) get fresh labels of the form _:genidN.
type TurtleReader struct {
	r        io.Reader
	lex      *lexer
	peeked   *token
	base     *url.URL
	prefixes map[string]string
	pending  []*ld.Quad
	fresh    int
	// every IRI is built once and shared by the statements using it
	iris map[string]*ld.IRI
	err  error
}

// NewTurtleReader wraps r. base resolves relative IRIs until an @base
// directive replaces it; it may be empty.
func NewTurtleReader(r io.Reader, base string) *TurtleReader {
	t := &TurtleReader{r: r, prefixes: map[string]string{}, iris: map[string]*ld.IRI{}}
	if base != "" {
		if u, err := url.Parse(base); err == nil && u.IsAbs() {
			t.base = u
		}
	}
	return t
}

// Next returns the following statement. Errors are sticky.
func (t *TurtleReader) Next() (*ld.Quad, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.lex == nil {
		body, err := io.ReadAll(t.r)
		if err != nil {
			t.err = err
			return nil, err
		}
		t.lex = newLexer(string(body))
	}

	for len(t.pending) == 0 {
		tok, err := t.peek()
		if err != nil {
			return nil, t.fail(err)
		}
		if tok.kind == tokEOF {
			t.err = io.EOF
			return nil, io.EOF
		}
		if err := t.statement(); err != nil {
			return nil, t.fail(err)
		}
	}
	q := t.pending[0]
	t.pending = t.pending[1:]
	return q, nil
}

// Prefixes are the namespace declarations seen so far
func (t *TurtleReader) Prefixes() map[string]string {
	return t.prefixes
}

func (t *TurtleReader) fail(err error) error {
	t.pending = nil
	t.err = fmt.Errorf("line %d: %w", t.lex.line, err)
	return t.err
}

func (t *TurtleReader) peek() (token, error) {
	if t.peeked == nil {
		tok, err := t.lex.next()
		if err != nil {
			return token{}, err
		}
		t.peeked = &tok
	}
	return *t.peeked, nil
}

func (t *TurtleReader) take() (token, error) {
	tok, err := t.peek()
	t.peeked = nil
	return tok, err
}

func (t *TurtleReader) accept(kind tokenKind) (bool, error) {
	tok, err := t.peek()
	if err != nil || tok.kind != kind {
		return false, err
	}
	t.peeked = nil
	return true, nil
}

func (t *TurtleReader) expect(kind tokenKind) (token, error) {
	tok, err := t.take()
	if err != nil {
		return tok, err
	}
	if tok.kind != kind {
		return tok, fmt.Errorf("%w: expected %s, got %s", ErrSyntax, kind, tok.kind)
	}
	return tok, nil
}

func (t *TurtleReader) statement() error {
	tok, err := t.peek()
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokPrefix:
		return t.prefixDirective()
	case tokBase:
		return t.baseDirective()
	}
	if err := t.triples(); err != nil {
		return err
	}
	_, err = t.expect(tokDot)
	return err
}

func (t *TurtleReader) prefixDirective() error {
	directive, _ := t.take()
	name, err := t.expect(tokPName)
	if err != nil {
		return err
	}
	if name.local != "" {
		return fmt.Errorf("%w: bad prefix %s:%s", ErrSyntax, name.val, name.local)
	}
	ns, err := t.expect(tokIRI)
	if err != nil {
		return err
	}
	t.prefixes[name.val] = t.resolve(ns.val)
	log.Tracef("prefix %s: <%s>", name.val, t.prefixes[name.val])
	if !directive.sparql {
		_, err = t.expect(tokDot)
	}
	return err
}

func (t *TurtleReader) baseDirective() error {
	directive, _ := t.take()
	iri, err := t.expect(tokIRI)
	if err != nil {
		return err
	}
	u, err := url.Parse(t.resolve(iri.val))
	if err != nil {
		return fmt.Errorf("%w: bad base %q: %v", ErrSyntax, iri.val, err)
	}
	t.base = u
	if !directive.sparql {
		_, err = t.expect(tokDot)
	}
	return err
}

func (t *TurtleReader) triples() error {
	tok, err := t.peek()
	if err != nil {
		return err
	}

	var subject ld.Node
	switch tok.kind {
	case tokLBracket:
		t.peeked = nil
		subject = t.newBlank()
		empty, err := t.accept(tokRBracket)
		if err != nil {
			return err
		}
		if !empty {
			if err := t.predicateObjectList(subject); err != nil {
				return err
			}
			if _, err := t.expect(tokRBracket); err != nil {
				return err
			}
			// [ ... ] . is a complete statement on its own
			if tok, err := t.peek(); err != nil || tok.kind == tokDot {
				return err
			}
		}
	case tokLParen:
		t.peeked = nil
		if err := t.collection(func(head ld.Node) { subject = head }); err != nil {
			return err
		}
	default:
		t.peeked = nil
		if subject, err = t.resource(tok); err != nil {
			return err
		}
	}
	return t.predicateObjectList(subject)
}

func (t *TurtleReader) predicateObjectList(subject ld.Node) error {
	for {
		tok, err := t.take()
		if err != nil {
			return err
		}
		var predicate ld.Node
		if tok.kind == tokA {
			predicate = t.iri(ld.RDFType)
		} else if predicate, err = t.resource(tok); err != nil {
			return err
		}
		if _, ok := predicate.(*ld.IRI); !ok {
			return fmt.Errorf("%w: predicate must be an IRI", ErrSyntax)
		}

		if err := t.objectList(subject, predicate); err != nil {
			return err
		}

		more := false
		for {
			ok, err := t.accept(tokSemicolon)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			more = true
		}
		if !more {
			return nil
		}
		if next, err := t.peek(); err != nil {
			return err
		} else if next.kind == tokDot || next.kind == tokRBracket || next.kind == tokEOF {
			return nil
		}
	}
}

func (t *TurtleReader) objectList(subject, predicate ld.Node) error {
	for {
		if err := t.object(subject, predicate); err != nil {
			return err
		}
		ok, err := t.accept(tokComma)
		if err != nil || !ok {
			return err
		}
	}
}

// object parses one object and emits subject predicate object. Nested blank
// node property lists and collections follow the statement linking them.
func (t *TurtleReader) object(subject, predicate ld.Node) error {
	tok, err := t.take()
	if err != nil {
		return err
	}
	emit := func(o ld.Node) {
		t.pending = append(t.pending, &ld.Quad{Subject: subject, Predicate: predicate, Object: o})
	}

	switch tok.kind {
	case tokLBracket:
		b := t.newBlank()
		emit(b)
		empty, err := t.accept(tokRBracket)
		if err != nil || empty {
			return err
		}
		if err := t.predicateObjectList(b); err != nil {
			return err
		}
		_, err = t.expect(tokRBracket)
		return err
	case tokLParen:
		return t.collection(emit)
	case tokString:
		lit, err := t.literal(tok)
		if err != nil {
			return err
		}
		emit(lit)
	case tokInteger:
		emit(ld.NewLiteral(tok.val, ld.XSDInteger, ""))
	case tokDecimal:
		emit(ld.NewLiteral(tok.val, ld.XSDDecimal, ""))
	case tokDouble:
		emit(ld.NewLiteral(tok.val, ld.XSDDouble, ""))
	case tokBoolean:
		emit(ld.NewLiteral(tok.val, ld.XSDBoolean, ""))
	default:
		node, err := t.resource(tok)
		if err != nil {
			return err
		}
		emit(node)
	}
	return nil
}

// collection expands ( ... ) into an rdf:first / rdf:rest chain. link
// receives the head before any list statement is emitted.
func (t *TurtleReader) collection(link func(ld.Node)) error {
	closed, err := t.accept(tokRParen)
	if err != nil {
		return err
	}
	if closed {
		link(t.iri(ld.RDFNil))
		return nil
	}

	var cell ld.Node = t.newBlank()
	link(cell)
	first, rest := t.iri(ld.RDFFirst), t.iri(ld.RDFRest)
	for {
		if err := t.object(cell, first); err != nil {
			return err
		}
		closed, err := t.accept(tokRParen)
		if err != nil {
			return err
		}
		next := ld.Node(t.iri(ld.RDFNil))
		if !closed {
			next = t.newBlank()
		}
		t.pending = append(t.pending, &ld.Quad{Subject: cell, Predicate: rest, Object: next})
		if closed {
			return nil
		}
		cell = next
	}
}

func (t *TurtleReader) literal(tok token) (ld.Node, error) {
	next, err := t.peek()
	if err != nil {
		return nil, err
	}
	switch next.kind {
	case tokLangTag:
		t.peeked = nil
		return ld.NewLiteral(tok.val, ld.RDFLangString, next.val), nil
	case tokCaret:
		t.peeked = nil
		dt, err := t.take()
		if err != nil {
			return nil, err
		}
		if dt.kind != tokIRI && dt.kind != tokPName {
			return nil, fmt.Errorf("%w: expected datatype IRI, got %s", ErrSyntax, dt.kind)
		}
		node, err := t.resource(dt)
		if err != nil {
			return nil, err
		}
		return ld.NewLiteral(tok.val, node.GetValue(), ""), nil
	}
	return ld.NewLiteral(tok.val, ld.XSDString, ""), nil
}

// resource turns an IRI, prefixed name or blank node label into a node
func (t *TurtleReader) resource(tok token) (ld.Node, error) {
	switch tok.kind {
	case tokIRI:
		return t.iri(t.resolve(tok.val)), nil
	case tokPName:
		ns, ok := t.prefixes[tok.val]
		if !ok {
			return nil, fmt.Errorf("%w: undeclared prefix %q", ErrSyntax, tok.val)
		}
		return t.iri(ns + tok.local), nil
	case tokBlank:
		return ld.NewBlankNode("_:" + tok.val), nil
	}
	return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, tok.kind)
}

func (t *TurtleReader) resolve(iri string) string {
	if t.base == nil {
		return iri
	}
	ref, err := url.Parse(iri)
	if err != nil || ref.IsAbs() {
		return iri
	}
	return t.base.ResolveReference(ref).String()
}

func (t *TurtleReader) iri(value string) *ld.IRI {
	if n, ok := t.iris[value]; ok {
		return n
	}
	n := ld.NewIRI(value)
	t.iris[value] = n
	return n
}

func (t *TurtleReader) newBlank() *ld.BlankNode {
	b := ld.NewBlankNode("_:genid" + strconv.Itoa(t.fresh))
	t.fresh++
	return b
}
