package triples

import (
	"errors"
	"io"
	"strings"
	"testing"

	"nq2jld/internal/jsonld"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alice = `@prefix ex: <http://example.org/> .
@base <http://example.org/base/> .
PREFIX foaf: <http://xmlns.com/foaf/0.1/>

# people
ex:Alice a foaf:Person, ex:Employee ;
    foaf:name "Alice"@en, 'Alicia'@es ;
    ex:age 42 ;
    ex:height 1.68 ;
    ex:score -1.5e3 ;
    ex:active true ;
    ex:bio """two
lines""" ;
    ex:knows [ foaf:name "Bob" ] ;
    ex:tags ( "a" ex:b ) ;
    ex:homepage <alice> ;
    ex:born "1990-01-01"^^<http://www.w3.org/2001/XMLSchema#date> ;
    .
_:c ex:knows ex:Alice. # trailing comment
`

func readAll(t *testing.T, src jsonld.TripleSource) []*ld.Quad {
	t.Helper()
	var quads []*ld.Quad
	for {
		q, err := src.Next()
		if errors.Is(err, io.EOF) {
			return quads
		}
		require.NoError(t, err)
		quads = append(quads, q)
	}
}

func literal(t *testing.T, n ld.Node) *ld.Literal {
	t.Helper()
	lit, ok := n.(*ld.Literal)
	require.True(t, ok, "%v is not a literal", n)
	return lit
}

func TestTurtleReader(t *testing.T) {
	quads := readAll(t, NewTurtleReader(strings.NewReader(alice), ""))
	require.Len(t, quads, 19)

	for _, q := range quads[:18] {
		if !strings.HasPrefix(q.Subject.GetValue(), "_:genid") {
			assert.Equal(t, "http://example.org/Alice", q.Subject.GetValue())
		}
	}

	assert.Equal(t, ld.RDFType, quads[0].Predicate.GetValue())
	assert.Equal(t, "http://xmlns.com/foaf/0.1/Person", quads[0].Object.GetValue())
	assert.Equal(t, "http://example.org/Employee", quads[1].Object.GetValue())

	assert.Equal(t, "en", literal(t, quads[2].Object).Language)
	es := literal(t, quads[3].Object)
	assert.Equal(t, "Alicia", es.Value)
	assert.Equal(t, ld.RDFLangString, es.Datatype)

	assert.Equal(t, ld.XSDInteger, literal(t, quads[4].Object).Datatype)
	assert.Equal(t, ld.XSDDecimal, literal(t, quads[5].Object).Datatype)
	score := literal(t, quads[6].Object)
	assert.Equal(t, "-1.5e3", score.Value)
	assert.Equal(t, ld.XSDDouble, score.Datatype)
	assert.Equal(t, ld.XSDBoolean, literal(t, quads[7].Object).Datatype)
	assert.Equal(t, "two\nlines", quads[8].Object.GetValue())

	// the link to the anonymous node comes before its own statements
	assert.Equal(t, "_:genid0", quads[9].Object.GetValue())
	assert.Equal(t, "_:genid0", quads[10].Subject.GetValue())
	assert.Equal(t, "Bob", quads[10].Object.GetValue())

	// ( "a" ex:b )
	assert.Equal(t, "_:genid1", quads[11].Object.GetValue())
	assert.Equal(t, ld.RDFFirst, quads[12].Predicate.GetValue())
	assert.Equal(t, "a", quads[12].Object.GetValue())
	assert.Equal(t, ld.RDFRest, quads[13].Predicate.GetValue())
	assert.Equal(t, "_:genid2", quads[13].Object.GetValue())
	assert.Equal(t, "http://example.org/b", quads[14].Object.GetValue())
	assert.Equal(t, ld.RDFNil, quads[15].Object.GetValue())

	assert.Equal(t, "http://example.org/base/alice", quads[16].Object.GetValue())
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#date", literal(t, quads[17].Object).Datatype)

	assert.Equal(t, "_:c", quads[18].Subject.GetValue())
	assert.Equal(t, "http://example.org/Alice", quads[18].Object.GetValue())
}

func TestTurtleSharesIRIs(t *testing.T) {
	r := NewTurtleReader(strings.NewReader(`@prefix ex: <http://example.org/> .
ex:a ex:p ex:b .
ex:b ex:p ex:a .
`), "")
	quads := readAll(t, r)
	require.Len(t, quads, 2)
	assert.Same(t, quads[0].Subject, quads[1].Object)
	assert.Same(t, quads[0].Predicate, quads[1].Predicate)
	assert.Equal(t, map[string]string{"ex": "http://example.org/"}, r.Prefixes())
}

func TestTurtleSubjectForms(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
[ ex:p "v" ] .
[] ex:q "w" .
( 1 ) ex:r ex:o .
`
	quads := readAll(t, NewTurtleReader(strings.NewReader(input), ""))
	require.Len(t, quads, 5)
	assert.Equal(t, "_:genid0", quads[0].Subject.GetValue())
	assert.Equal(t, "_:genid1", quads[1].Subject.GetValue())
	// list statements first, then the statement about the list
	assert.Equal(t, ld.RDFFirst, quads[2].Predicate.GetValue())
	assert.Equal(t, ld.RDFNil, quads[3].Object.GetValue())
	assert.Equal(t, "_:genid2", quads[4].Subject.GetValue())
}

func TestTurtleEscapesAndBase(t *testing.T) {
	input := `<http://example.org/caf\u00E9> <p> "caf\u00E9\t\"ok\"", "a\\nb" .
<x> <p> () .
`
	quads := readAll(t, NewTurtleReader(strings.NewReader(input), "http://example.org/"))
	require.Len(t, quads, 3)
	assert.Equal(t, "http://example.org/café", quads[0].Subject.GetValue())
	assert.Equal(t, "http://example.org/p", quads[0].Predicate.GetValue())
	assert.Equal(t, "café\t\"ok\"", quads[0].Object.GetValue())
	assert.Equal(t, `a\nb`, quads[1].Object.GetValue())
	assert.Equal(t, ld.RDFNil, quads[2].Object.GetValue())
}

func TestTurtleErrors(t *testing.T) {
	cases := map[string]string{
		"undeclared prefix": "<http://e/a> <http://e/p> <http://e/b> .\nex:a <http://e/p> 1 .",
		"missing dot":       "<http://e/a> <http://e/p> <http://e/b> .\n<http://e/a> <http://e/p> 1",
		"open string":       "<http://e/a> <http://e/p> <http://e/b> .\n<http://e/a> <http://e/p> \"x .",
		"literal predicate": "<http://e/a> <http://e/p> <http://e/b> .\n<http://e/a> \"p\" 1 .",
		"bad escape":        "<http://e/a> <http://e/p> <http://e/b> .\n<http://e/a> <http://e/p> \"\\q\" .",
	}
	for name, input := range cases {
		r := NewTurtleReader(strings.NewReader(input), "")
		_, err := r.Next()
		require.NoError(t, err, name)

		_, err = r.Next()
		assert.ErrorIs(t, err, ErrSyntax, name)
		assert.Contains(t, err.Error(), "line 2", name)

		// errors are sticky
		_, again := r.Next()
		assert.Equal(t, err, again, name)
	}
}

func TestTurtleConvert(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:Alice a ex:Person ;
    ex:name "Alice"@en ;
    ex:knows [ ex:name "Bob" ] .
`
	out, err := jsonld.ConvertJSON(NewTurtleReader(strings.NewReader(input), ""))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"@id": "http://example.org/Alice",
		 "@type": "http://example.org/Person",
		 "http://example.org/name": [{"@value": "Alice", "@language": "en"}],
		 "http://example.org/knows": [{"@id": "_:genid0"}]},
		{"@id": "_:genid0",
		 "http://example.org/name": [{"@value": "Bob", "@type": "http://www.w3.org/2001/XMLSchema#string"}]}
	]`, string(out))
}
