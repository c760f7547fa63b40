package jsonld

import (
	"encoding/json"
	"strings"

	"github.com/piprate/json-gold/ld"
)

const (
	// RDFType is the predicate mapped onto the JSON-LD @type keyword
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	// XSDString is the datatype of a literal that carries neither a datatype nor a language
	XSDString = "http://www.w3.org/2001/XMLSchema#string"

	IDKey       = "@id"
	TypeKey     = "@type"
	ValueKey    = "@value"
	LanguageKey = "@language"

	blankPrefix = "_:"
)

// ValueKind identifies which JSON-LD fragment a Value renders as
type ValueKind uint8

const (
	// NodeRef is a named or blank node object: {"@id": ...}
	NodeRef ValueKind = iota
	// LangString is a literal with a language tag: {"@value": ..., "@language": ...}
	LangString
	// TypedLiteral is a literal without a language tag: {"@value": ..., "@type": ...}
	TypedLiteral
)

// Value is the JSON-LD fragment produced for one object term
type Value struct {
	Kind     ValueKind
	ID       string
	Lexical  string
	Language string
	Datatype string
}

// MarshalJSON renders the fragment with its keys in a fixed order
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case NodeRef:
		return marshalFields([]Field{{Key: IDKey, Value: v.ID}})
	case LangString:
		return marshalFields([]Field{{Key: ValueKey, Value: v.Lexical}, {Key: LanguageKey, Value: v.Language}})
	default:
		return marshalFields([]Field{{Key: ValueKey, Value: v.Lexical}, {Key: TypeKey, Value: v.Datatype}})
	}
}

// Ref returns the @id of a node reference. Literals have no @id.
func (v Value) Ref() (string, bool) {
	if v.Kind != NodeRef {
		return "", false
	}
	return v.ID, true
}

// SubjectKey returns the grouping key for a subject term: the IRI of a named
// node or "_:" plus the local id of a blank node.
func SubjectKey(n ld.Node) (string, bool) {
	switch t := n.(type) {
	case *ld.IRI:
		return t.Value, true
	case *ld.BlankNode:
		return blankKey(t), true
	}
	return "", false
}

// PredicateKey returns the predicate IRI unchanged
func PredicateKey(n ld.Node) (string, bool) {
	if iri, ok := n.(*ld.IRI); ok {
		return iri.Value, true
	}
	return "", false
}

// ObjectValue classifies an object term. Terms other than named nodes,
// blank nodes and literals report false.
func ObjectValue(n ld.Node) (Value, bool) {
	switch t := n.(type) {
	case *ld.IRI:
		return Value{Kind: NodeRef, ID: t.Value}, true
	case *ld.BlankNode:
		return Value{Kind: NodeRef, ID: blankKey(t)}, true
	case *ld.Literal:
		if t.Language != "" {
			return Value{Kind: LangString, Lexical: t.Value, Language: t.Language}, true
		}
		dt := t.Datatype
		if dt == "" {
			dt = XSDString
		}
		return Value{Kind: TypedLiteral, Lexical: t.Value, Datatype: dt}, true
	}
	return Value{}, false
}

// json-gold keeps the "_:" on blank node labels, hand-built nodes may not
func blankKey(b *ld.BlankNode) string {
	return blankPrefix + strings.TrimPrefix(b.Attribute, blankPrefix)
}

func marshalFields(fields []Field) ([]byte, error) {
	buf := []byte{'{'}
	for i, f := range fields {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}
