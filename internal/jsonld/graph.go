package jsonld

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
)

// TypeLiteralPolicy decides what happens to an rdf:type triple whose object is a literal
type TypeLiteralPolicy int

const (
	// TypeLiteralsKeep carries a null @type entry for the literal
	TypeLiteralsKeep TypeLiteralPolicy = iota
	// TypeLiteralsSkip drops the triple like any unsupported object
	TypeLiteralsSkip
)

var ErrUnknownTypeLiteralPolicy = errors.New("unknown type literal policy")

func (p TypeLiteralPolicy) String() string {
	switch p {
	case TypeLiteralsKeep:
		return "keep"
	case TypeLiteralsSkip:
		return "skip"
	}
	return "unknown"
}

// ParseTypeLiteralPolicy maps a config value onto a policy; empty means keep
func ParseTypeLiteralPolicy(s string) (TypeLiteralPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep", "null":
		return TypeLiteralsKeep, nil
	case "skip", "drop":
		return TypeLiteralsSkip, nil
	}
	return TypeLiteralsKeep, fmt.Errorf("%w: %q", ErrUnknownTypeLiteralPolicy, s)
}

// Graph accumulates triples into node objects keyed by subject. Subjects and
// predicates keep the order in which they were first added.
type Graph struct {
	typeLiterals TypeLiteralPolicy

	nodes []*Node
	index map[string]*entry
}

type entry struct {
	node  *Node
	props map[string]int
}

// NewGraph returns an empty accumulator
func NewGraph(opts ...Option) *Graph {
	o := newOptions(opts)
	return &Graph{
		typeLiterals: o.typeLiterals,
		index:        make(map[string]*entry),
	}
}

// Supported reports whether a triple has term kinds the converter handles
func Supported(q *ld.Quad) bool {
	if q == nil {
		return false
	}
	if _, ok := SubjectKey(q.Subject); !ok {
		return false
	}
	if _, ok := PredicateKey(q.Predicate); !ok {
		return false
	}
	_, ok := ObjectValue(q.Object)
	return ok
}

// Add folds one triple into the graph. It reports false when the triple was
// dropped because one of its terms is of an unsupported kind.
func (g *Graph) Add(q *ld.Quad) bool {
	if q == nil {
		return false
	}
	subject, ok := SubjectKey(q.Subject)
	if !ok {
		log.Debugf("dropping triple with unsupported subject %T", q.Subject)
		return false
	}
	predicate, ok := PredicateKey(q.Predicate)
	if !ok {
		log.Debugf("dropping triple with unsupported predicate %T", q.Predicate)
		return false
	}
	object, ok := ObjectValue(q.Object)
	if !ok {
		log.Debugf("dropping triple on %s with unsupported object %T", subject, q.Object)
		return false
	}

	if predicate == RDFType {
		id, isRef := object.Ref()
		if !isRef && g.typeLiterals == TypeLiteralsSkip {
			log.Debugf("dropping literal rdf:type on %s", subject)
			return false
		}
		e := g.entry(subject)
		e.node.Types = append(e.node.Types, TypeRef{ID: id, Null: !isRef})
		return true
	}

	e := g.entry(subject)
	i, seen := e.props[predicate]
	if !seen {
		i = len(e.node.Properties)
		e.props[predicate] = i
		e.node.Properties = append(e.node.Properties, Property{Predicate: predicate})
	}
	e.node.Properties[i].Values = append(e.node.Properties[i].Values, object)
	return true
}

func (g *Graph) entry(subject string) *entry {
	if e, ok := g.index[subject]; ok {
		return e
	}
	e := &entry{node: &Node{ID: subject}, props: make(map[string]int)}
	g.index[subject] = e
	g.nodes = append(g.nodes, e.node)
	return e
}

// Len is the number of distinct subjects seen so far
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Document returns the node objects in subject insertion order
func (g *Graph) Document() Document {
	doc := make(Document, len(g.nodes))
	copy(doc, g.nodes)
	return doc
}
