package common

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piprate/json-gold/ld"
)

const (
	nquadsFormat = "application/n-quads"
	urdna2015    = "URDNA2015"
)

// GetNormMD5 normalizes a JSON-LD document with URDNA2015 and returns the MD5 hash
func GetNormMD5(jsonld []byte, proc *ld.JsonLdProcessor, base *ld.JsonLdOptions) (string, error) {
	// this needs to be an interface, otherwise it thinks it is a URL to get
	var myInterface interface{}
	if err := json.Unmarshal(jsonld, &myInterface); err != nil {
		return "", err
	}

	options := normalizeOptions(base)
	normalizedTriples, err := proc.Normalize(myInterface, options)
	if err != nil {
		return "", err
	}
	return md5Of(normalizedTriples)
}

// GetDatasetNormMD5 normalizes an RDF dataset with URDNA2015 and returns the MD5 hash
func GetDatasetNormMD5(dataset *ld.RDFDataset, proc *ld.JsonLdProcessor, base *ld.JsonLdOptions) (string, error) {
	serialized, err := (&ld.NQuadRDFSerializer{}).Serialize(dataset)
	if err != nil {
		return "", err
	}
	nquads, ok := serialized.(string)
	if !ok {
		return "", fmt.Errorf("nq is not a string, instead it is a %T", serialized)
	}

	options := normalizeOptions(base)
	options.InputFormat = nquadsFormat
	normalizedTriples, err := proc.Normalize(nquads, options)
	if err != nil {
		return "", err
	}
	return md5Of(normalizedTriples)
}

func normalizeOptions(base *ld.JsonLdOptions) *ld.JsonLdOptions {
	options := ld.NewJsonLdOptions("")
	if base != nil {
		options.DocumentLoader = base.DocumentLoader
	}
	options.ProcessingMode = ld.JsonLd_1_1
	options.Format = nquadsFormat
	options.Algorithm = urdna2015
	return options
}

func md5Of(normalized interface{}) (string, error) {
	s, ok := normalized.(string)
	if !ok {
		return "", fmt.Errorf("normalized output is not a string, instead it is a %T", normalized)
	}

	h := md5.New()
	if _, err := io.Copy(h, strings.NewReader(s)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
