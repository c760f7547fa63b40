package triples

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
)

const (
	defaultGraph = "@default"
	maxLineBytes = 4 * 1024 * 1024
)

// NQuadsReader reads N-Quads (or N-Triples) one statement per line. Blank
// lines and comments are skipped, statements in named graphs are dropped.
// Lines without escapes go to ld.ParseNQuads; the rest are decoded by the
// Turtle lexer.
type NQuadsReader struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

// NewNQuadsReader wraps r; nothing is read until Next is called
func NewNQuadsReader(r io.Reader) *NQuadsReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &NQuadsReader{scanner: s}
}

// Next parses the following statement. Errors are sticky.
func (n *NQuadsReader) Next() (*ld.Quad, error) {
	if n.err != nil {
		return nil, n.err
	}
	for n.scanner.Scan() {
		n.line++
		text := stripComment(strings.TrimSpace(n.scanner.Text()))
		if text == "" {
			continue
		}

		if strings.Contains(text, "\\") {
			q, graph, err := parseEscapedStatement(text)
			if err != nil {
				n.err = fmt.Errorf("line %d: %w", n.line, err)
				return nil, n.err
			}
			if graph != "" {
				log.Debugf("line %d: skipping statement in named graph %s", n.line, graph)
				continue
			}
			return q, nil
		}

		dataset, err := ld.ParseNQuads(text + "\n")
		if err != nil {
			n.err = fmt.Errorf("line %d: %w", n.line, err)
			return nil, n.err
		}

		for name, quads := range dataset.Graphs {
			if len(quads) == 0 {
				continue
			}
			if name != defaultGraph {
				log.Debugf("line %d: skipping statement in named graph %s", n.line, name)
				break
			}
			return quads[0], nil
		}
	}
	if err := n.scanner.Err(); err != nil {
		n.err = fmt.Errorf("line %d: %w", n.line+1, err)
		return nil, n.err
	}
	n.err = io.EOF
	return nil, io.EOF
}

// Line is the number of the last line read
func (n *NQuadsReader) Line() int {
	return n.line
}
