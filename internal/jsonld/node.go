package jsonld

import "encoding/json"

// Field is one key of a rendered node object
type Field struct {
	Key   string
	Value interface{}
}

// TypeRef is one entry of a node's @type list. Null is set when the rdf:type
// object was a literal and so had no @id to carry.
type TypeRef struct {
	ID   string
	Null bool
}

func (t TypeRef) MarshalJSON() ([]byte, error) {
	if t.Null {
		return []byte("null"), nil
	}
	return json.Marshal(t.ID)
}

// Property holds the values collected for one predicate, in input order
type Property struct {
	Predicate string
	Values    []Value
}

// Node is the JSON-LD node object built for a single subject
type Node struct {
	ID         string
	Types      []TypeRef
	Properties []Property
}

// Fields returns the node's keys in output order: @id, @type, then every
// predicate in the order it was first seen. A single @type is left bare,
// everything else is an array.
func (n *Node) Fields() []Field {
	fields := make([]Field, 0, len(n.Properties)+2)
	fields = append(fields, Field{Key: IDKey, Value: n.ID})

	switch len(n.Types) {
	case 0:
	case 1:
		fields = append(fields, Field{Key: TypeKey, Value: n.Types[0]})
	default:
		fields = append(fields, Field{Key: TypeKey, Value: n.Types})
	}

	for _, p := range n.Properties {
		values := p.Values
		if values == nil {
			values = []Value{}
		}
		fields = append(fields, Field{Key: p.Predicate, Value: values})
	}
	return fields
}

// Get returns the rendered value stored under key, if present
func (n *Node) Get(key string) (interface{}, bool) {
	for _, f := range n.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return marshalFields(n.Fields())
}

// Document is the converted JSON-LD output: one node object per subject
type Document []*Node

// MarshalJSON always renders an array, never null
func (d Document) MarshalJSON() ([]byte, error) {
	nodes := []*Node(d)
	if nodes == nil {
		nodes = []*Node{}
	}
	return json.Marshal(nodes)
}

// Node returns the node for a subject key
func (d Document) Node(id string) (*Node, bool) {
	for _, n := range d {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}
