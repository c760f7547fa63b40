package triples

import (
	"nq2jld/internal/jsonld"

	"github.com/piprate/json-gold/ld"
)

// Recorder passes statements through from an inner source and keeps the ones
// the converter will use, so the result can be checked afterwards.
type Recorder struct {
	src     jsonld.TripleSource
	dataset *ld.RDFDataset
}

func NewRecorder(src jsonld.TripleSource) *Recorder {
	return &Recorder{src: src, dataset: ld.NewRDFDataset()}
}

func (r *Recorder) Next() (*ld.Quad, error) {
	q, err := r.src.Next()
	if err != nil {
		return q, err
	}
	if jsonld.Supported(q) {
		r.dataset.Graphs[defaultGraph] = append(r.dataset.Graphs[defaultGraph], q)
	}
	return q, nil
}

// Dataset holds every supported statement seen so far, in the default graph
func (r *Recorder) Dataset() *ld.RDFDataset {
	return r.dataset
}
