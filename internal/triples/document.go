package triples

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/piprate/json-gold/ld"
	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("input is not valid JSON")

// FromJSONLD expands a JSON-LD document into RDF with json-gold and returns
// the statements of its default graph. options may carry a caching document
// loader for remote contexts; its Format is ignored.
func FromJSONLD(r io.Reader, proc *ld.JsonLdProcessor, options *ld.JsonLdOptions) (*Slice, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}

	// this needs to be an interface, otherwise json-gold treats a string as a URL to load
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	opts := ld.NewJsonLdOptions(options.Base)
	opts.DocumentLoader = options.DocumentLoader
	opts.ProcessingMode = options.ProcessingMode

	out, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("expanding JSON-LD: %w", err)
	}

	switch dataset := out.(type) {
	case *ld.RDFDataset:
		return NewSlice(dataset.Graphs[defaultGraph]...), nil
	default:
		return nil, fmt.Errorf("expected an RDF dataset, got %T", out)
	}
}
