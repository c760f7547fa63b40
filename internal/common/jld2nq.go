package common

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/piprate/json-gold/ld"
)

// JLD2nq converts a JSON-LD document to N-Quads
func JLD2nq(jsonld []byte, proc *ld.JsonLdProcessor, base *ld.JsonLdOptions) (string, error) {
	var arbitraryJSONLD interface{}
	err := json.Unmarshal(jsonld, &arbitraryJSONLD)
	if err != nil {
		log.Error(err)
		return "", err
	}

	options := ld.NewJsonLdOptions("")
	if base != nil {
		options.DocumentLoader = base.DocumentLoader
	}
	options.Format = nquadsFormat

	nQuads, err := proc.ToRDF(arbitraryJSONLD, options)
	if err != nil {
		log.Error(err)
		return "", err
	}

	switch nQuads := nQuads.(type) {
	case string:
		return nQuads, nil
	default:
		return "", fmt.Errorf("nq is not a string, instead it is a %T with value %v", nQuads, nQuads)
	}
}
