// Package jsonld turns a sequence of RDF triples into a JSON-LD document made
// of one node object per subject.
//
// Values of rdf:type are gathered under @type, left bare when a subject has a
// single type and rendered as an array otherwise. Every other predicate is an
// array, even with one value.
package jsonld

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
)

// TripleSource yields triples one at a time, in order, exactly once.
// Next returns io.EOF when the source is exhausted.
type TripleSource interface {
	Next() (*ld.Quad, error)
}

// SourceError is returned when the triple source fails. The conversion is
// abandoned and no document is produced.
type SourceError struct {
	Index int // position of the triple that could not be read
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading triple %d: %v", e.Index, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Option configures a conversion
type Option func(*options)

type options struct {
	typeLiterals TypeLiteralPolicy
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTypeLiterals sets the policy for literal objects of rdf:type
func WithTypeLiterals(p TypeLiteralPolicy) Option {
	return func(o *options) {
		o.typeLiterals = p
	}
}

// Convert drains src and returns the resulting document
func Convert(src TripleSource, opts ...Option) (Document, error) {
	g := NewGraph(opts...)

	var read, dropped int
	for {
		q, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &SourceError{Index: read, Err: err}
		}
		read++
		if !g.Add(q) {
			dropped++
		}
	}

	log.Debugf("converted %d triples into %d nodes, %d dropped", read, g.Len(), dropped)
	return g.Document(), nil
}

// ConvertJSON converts src and marshals the document
func ConvertJSON(src TripleSource, opts ...Option) ([]byte, error) {
	doc, err := Convert(src, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// IsSourceError reports whether err came from the triple source
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}
