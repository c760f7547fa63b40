package triples

import (
	"io"
	"strings"
	"testing"

	"nq2jld/internal/jsonld"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const people = `# people
<http://example.org/Alice> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Person> .
<http://example.org/Alice> <http://example.org/name> "Alice"@en .

_:b0 <http://example.org/knows> <http://example.org/Carol> .
<http://example.org/Alice> <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.org/graphs/private> .
`

func TestNQuadsReader(t *testing.T) {
	r := NewNQuadsReader(strings.NewReader(people))

	q, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/Alice", q.Subject.GetValue())
	assert.Equal(t, jsonld.RDFType, q.Predicate.GetValue())
	assert.Equal(t, 2, r.Line())

	q, err = r.Next()
	require.NoError(t, err)
	lit, ok := q.Object.(*ld.Literal)
	require.True(t, ok)
	assert.Equal(t, "Alice", lit.Value)
	assert.Equal(t, "en", lit.Language)

	q, err = r.Next()
	require.NoError(t, err)
	_, ok = q.Subject.(*ld.BlankNode)
	assert.True(t, ok)

	// the named graph statement is skipped
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNQuadsConvert(t *testing.T) {
	out, err := jsonld.ConvertJSON(NewNQuadsReader(strings.NewReader(people)))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"@id": "http://example.org/Alice",
		 "@type": "http://example.org/Person",
		 "http://example.org/name": [{"@value": "Alice", "@language": "en"}]},
		{"@id": "_:b0",
		 "http://example.org/knows": [{"@id": "http://example.org/Carol"}]}
	]`, string(out))
}

func TestNQuadsErrorOnThirdStatementFailsConversion(t *testing.T) {
	input := `<http://example.org/a> <http://example.org/p> <http://example.org/b> .
<http://example.org/a> <http://example.org/p> "x" .
this is not a statement
<http://example.org/a> <http://example.org/p> "y" .
`
	doc, err := jsonld.Convert(NewNQuadsReader(strings.NewReader(input)))
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, jsonld.IsSourceError(err))
	assert.Contains(t, err.Error(), "line 3")
}

func TestNQuadsDecodesEscapes(t *testing.T) {
	input := `<http://example.org/a> <http://example.org/label> "caf\u00E9"@fr .
<http://example.org/caf\u00E9> <http://example.org/p> "\U0001F600" .
<http://example.org/a> <http://example.org/p> "say \u0022hi\u0022\ttoo" .
<http://example.org/a> <http://example.org/p> "a\\u0041 and a\\nb" .
<http://example.org/a> <http://example.org/p> "caf\u00E9" <http://example.org/graphs/g> .
<http://example.org/a> <http://example.org/p> "x"^^<http://example.org/dt\u0031> .
`
	r := NewNQuadsReader(strings.NewReader(input))

	q, err := r.Next()
	require.NoError(t, err)
	lit := q.Object.(*ld.Literal)
	assert.Equal(t, "café", lit.Value)
	assert.Equal(t, "fr", lit.Language)
	assert.Equal(t, ld.RDFLangString, lit.Datatype)

	q, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/café", q.Subject.GetValue())
	assert.Equal(t, "\U0001F600", q.Object.GetValue())
	assert.Equal(t, ld.XSDString, q.Object.(*ld.Literal).Datatype)

	q, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "say \"hi\"\ttoo", q.Object.GetValue())

	// escaped backslashes stay backslashes
	q, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, `a\u0041 and a\nb`, q.Object.GetValue())

	// named graph skipped, typed literal with an escaped datatype follows
	q, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/dt1", q.Object.(*ld.Literal).Datatype)
	assert.Equal(t, 6, r.Line())

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNQuadsBadEscapeIsLineError(t *testing.T) {
	input := `<http://example.org/a> <http://example.org/p> "ok" .
<http://example.org/a> <http://example.org/p> "caf\u00ZZ" .
`
	doc, err := jsonld.Convert(NewNQuadsReader(strings.NewReader(input)))
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")
}

func TestNQuadsTrailingComment(t *testing.T) {
	input := `<http://example.org/a> <http://example.org/p> <http://example.org/b> . # note
<http://example.org/a#x> <http://example.org/p> "x # not a comment" .#note
<http://example.org/a> <http://example.org/p> "caf\u00E9" . # escaped # note
   # indented comment
`
	r := NewNQuadsReader(strings.NewReader(input))

	q, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/b", q.Object.GetValue())

	q, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/a#x", q.Subject.GetValue())
	assert.Equal(t, "x # not a comment", q.Object.GetValue())

	q, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "café", q.Object.GetValue())

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStripComment(t *testing.T) {
	cases := map[string]string{
		`<http://e/a> <http://e/p> <http://e/b> . # note`: `<http://e/a> <http://e/p> <http://e/b> .`,
		`<http://e/a#f> <http://e/p> "#" .`:               `<http://e/a#f> <http://e/p> "#" .`,
		`<http://e/a> <http://e/p> "\"#" . #x`:            `<http://e/a> <http://e/p> "\"#" .`,
		`# whole line`: ``,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripComment(in), in)
	}
}

func TestFromJSONLD(t *testing.T) {
	doc := `[{
		"@id": "http://example.org/Bob",
		"@type": ["http://example.org/Person", "http://example.org/Employee"],
		"http://example.org/name": [{"@value": "Bob"}]
	}]`

	src, err := FromJSONLD(strings.NewReader(doc), ld.NewJsonLdProcessor(), ld.NewJsonLdOptions(""))
	require.NoError(t, err)
	assert.Equal(t, 3, src.Len())

	converted, err := jsonld.Convert(src)
	require.NoError(t, err)
	require.Len(t, converted, 1)
	assert.Equal(t, "http://example.org/Bob", converted[0].ID)
	assert.Len(t, converted[0].Types, 2)
	require.Len(t, converted[0].Properties, 1)
	assert.Equal(t, jsonld.Value{Kind: jsonld.TypedLiteral, Lexical: "Bob", Datatype: jsonld.XSDString},
		converted[0].Properties[0].Values[0])
}

func TestFromJSONLDRejectsInvalidJSON(t *testing.T) {
	_, err := FromJSONLD(strings.NewReader(`{"@id": `), ld.NewJsonLdProcessor(), ld.NewJsonLdOptions(""))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestRecorderKeepsSupportedStatements(t *testing.T) {
	src := NewSlice(
		&ld.Quad{Subject: ld.NewIRI("http://example.org/a"), Predicate: ld.NewIRI("http://example.org/p"), Object: ld.NewIRI("http://example.org/b")},
		&ld.Quad{Subject: ld.NewIRI("http://example.org/a"), Predicate: ld.NewIRI("http://example.org/p"), Object: nil},
	)
	rec := NewRecorder(src)

	doc, err := jsonld.Convert(rec)
	require.NoError(t, err)
	assert.Len(t, doc, 1)
	assert.Len(t, rec.Dataset().Graphs["@default"], 1)
}
