package jsonld

import (
	"encoding/json"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectValueShapes(t *testing.T) {
	tests := []struct {
		name string
		term ld.Node
		want string
	}{
		{"named node", ld.NewIRI("http://example.org/Carol"), `{"@id":"http://example.org/Carol"}`},
		{"blank node from parser", ld.NewBlankNode("_:b7"), `{"@id":"_:b7"}`},
		{"blank node without prefix", ld.NewBlankNode("b7"), `{"@id":"_:b7"}`},
		{"language literal", &ld.Literal{Value: "chat", Language: "fr", Datatype: "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"}, `{"@value":"chat","@language":"fr"}`},
		{"typed literal", &ld.Literal{Value: "1", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}, `{"@value":"1","@type":"http://www.w3.org/2001/XMLSchema#integer"}`},
		{"literal without datatype", &ld.Literal{Value: ""}, `{"@value":"","@type":"http://www.w3.org/2001/XMLSchema#string"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ObjectValue(tt.term)
			require.True(t, ok)
			out, err := json.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestObjectValueRejectsUnknownKinds(t *testing.T) {
	_, ok := ObjectValue(quotedTriple{})
	assert.False(t, ok)
	_, ok = ObjectValue(nil)
	assert.False(t, ok)
}

func TestLiteralShapesAreExclusive(t *testing.T) {
	lang, _ := ObjectValue(&ld.Literal{Value: "a", Language: "en", Datatype: XSDString})
	typed, _ := ObjectValue(&ld.Literal{Value: "a", Datatype: XSDString})

	var l, ty map[string]interface{}
	out, _ := json.Marshal(lang)
	require.NoError(t, json.Unmarshal(out, &l))
	out, _ = json.Marshal(typed)
	require.NoError(t, json.Unmarshal(out, &ty))

	assert.Contains(t, l, "@language")
	assert.NotContains(t, l, "@type")
	assert.Contains(t, ty, "@type")
	assert.NotContains(t, ty, "@language")
}

func TestSubjectAndPredicateKeys(t *testing.T) {
	key, ok := SubjectKey(ld.NewIRI("http://example.org/Alice"))
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/Alice", key)

	key, ok = SubjectKey(ld.NewBlankNode("_:b0"))
	assert.True(t, ok)
	assert.Equal(t, "_:b0", key)

	_, ok = SubjectKey(&ld.Literal{Value: "not a subject"})
	assert.False(t, ok)

	key, ok = PredicateKey(ld.NewIRI(RDFType))
	assert.True(t, ok)
	assert.Equal(t, RDFType, key)

	_, ok = PredicateKey(ld.NewBlankNode("_:p"))
	assert.False(t, ok)
}

func TestValueRef(t *testing.T) {
	id, ok := Value{Kind: NodeRef, ID: "_:x"}.Ref()
	assert.True(t, ok)
	assert.Equal(t, "_:x", id)

	_, ok = Value{Kind: TypedLiteral, Lexical: "x"}.Ref()
	assert.False(t, ok)
}
