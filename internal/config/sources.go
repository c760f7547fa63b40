package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Valid values for Source.SourceType
const (
	FileSource = "file"
	S3Source   = "s3"
	URLSource  = "url"
)

// Valid values for Source.Format; empty means detect from the extension
const (
	NQuads   = "nquads"
	NTriples = "ntriples"
	Turtle   = "turtle"
	JSONLD   = "jsonld"
)

const AcceptContentType string = "application/n-quads, application/n-triples;q=0.9, text/turtle;q=0.8, application/ld+json;q=0.7"

var ErrNoSources = errors.New("no matching sources")

// Source is one input to convert
type Source struct {
	// Valid values for SourceType: file, s3, url
	SourceType string `default:"file"`
	Name       string
	URL        string // file path ("-" for stdin), object key, or http(s) url
	Format     string // nquads, ntriples, turtle, jsonld
	Select     string // JSONPath applied to the converted document
	Active     bool   `default:"true"`
	Rude       bool   // ignore robots.txt for url sources

	Other map[string]interface{} `mapstructure:",remain"`
}

var SourcesTemplate = map[string]interface{}{
	"sources": map[string]string{
		"sourcetype": FileSource,
		"name":       "",
		"url":        "",
		"format":     "",
		"select":     "",
		"active":     "true",
		"rude":       "false",
	},
}

// use full viper. v1.Sub("sources") fails because it is an array.
func GetSources(g1 *viper.Viper) ([]Source, error) {
	var subtreeKey = "sources"
	var cfg []Source

	err := g1.UnmarshalKey(subtreeKey, &cfg)
	if err != nil {
		return nil, fmt.Errorf("error when parsing %s config: %w", subtreeKey, err)
	}
	// default tags are not applied by viper, so fill them in from the raw entries
	raw, _ := g1.Get(subtreeKey).([]interface{})
	for i := range cfg {
		if cfg[i].SourceType == "" {
			cfg[i].SourceType = FileSource
		}
		if i < len(raw) {
			if m, ok := raw[i].(map[string]interface{}); ok {
				if _, set := m["active"]; !set {
					cfg[i].Active = true
				}
			}
		}
	}
	return cfg, nil
}

func GetActiveSources(g1 *viper.Viper) ([]Source, error) {
	var activeSources []Source

	sources, err := GetSources(g1)
	if err != nil {
		return nil, err
	}
	for _, s := range sources {
		if s.Active {
			activeSources = append(activeSources, s)
		}
	}
	return activeSources, nil
}

func FilterSourcesByType(sources []Source, requestedType string) []Source {
	var sourcesSlice []Source
	for _, s := range sources {
		if s.SourceType == requestedType && s.Active {
			sourcesSlice = append(sourcesSlice, s)
		}
	}
	return sourcesSlice
}

func GetSourceByName(sources []Source, name string) (*Source, error) {
	for i := 0; i < len(sources); i++ {
		if sources[i].Name == name {
			return &sources[i], nil
		}
	}
	return nil, fmt.Errorf("unable to find a source with name %s", name)
}

// PruneSources keeps only the named sources in the config and marks them active
func PruneSources(v1 *viper.Viper, useSources []string) (*viper.Viper, error) {
	var finalSources []Source
	allSources, err := GetSources(v1)
	if err != nil {
		return v1, err
	}
	for _, s := range allSources {
		if contains(useSources, s.Name) {
			s.Active = true // we assume you want to run this, even if disabled, normally
			finalSources = append(finalSources, s)
		}
	}
	if len(finalSources) == 0 {
		return v1, fmt.Errorf("%w: %v", ErrNoSources, useSources)
	}
	v1.Set("sources", finalSources)
	return v1, nil
}

// checks if a string is present in a slice
func contains(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}
