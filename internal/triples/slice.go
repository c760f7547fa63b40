// Package triples provides the triple sources fed to the JSON-LD converter.
package triples

import (
	"io"

	"github.com/piprate/json-gold/ld"
)

// Slice replays an in-memory list of statements
type Slice struct {
	quads []*ld.Quad
	pos   int
}

func NewSlice(quads ...*ld.Quad) *Slice {
	return &Slice{quads: quads}
}

func (s *Slice) Next() (*ld.Quad, error) {
	if s.pos >= len(s.quads) {
		return nil, io.EOF
	}
	q := s.quads[s.pos]
	s.pos++
	return q, nil
}

// Len is the total number of statements held
func (s *Slice) Len() int {
	return len(s.quads)
}
