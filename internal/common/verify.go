package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"
	log "github.com/sirupsen/logrus"
)

const defaultGraph = "@default"

var ErrRoundTripMismatch = errors.New("converted document does not normalize to the input graph")

// VerifyRoundTrip checks that a converted document describes the same graph as
// the statements it was built from, comparing URDNA2015 hashes of both.
func VerifyRoundTrip(input *ld.RDFDataset, output []byte, proc *ld.JsonLdProcessor, options *ld.JsonLdOptions) error {
	want, err := GetDatasetNormMD5(input, proc, options)
	if err != nil {
		return fmt.Errorf("normalizing input: %w", err)
	}
	got, err := GetNormMD5(output, proc, options)
	if err != nil {
		return fmt.Errorf("normalizing output: %w", err)
	}
	if want != got {
		out := -1
		if nq, err := JLD2nq(output, proc, options); err == nil {
			out = strings.Count(nq, "\n")
		}
		return fmt.Errorf("%w: %d statements in, %d out", ErrRoundTripMismatch, len(input.Graphs[defaultGraph]), out)
	}
	log.Debug("round trip verified: ", got)
	return nil
}
