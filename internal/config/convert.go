package config

import (
	"fmt"

	"nq2jld/internal/jsonld"

	"github.com/spf13/viper"
)

const DefaultOutputKey = "jsonld/{{name}}.jsonld"

// Convert holds the options applied to every source
type Convert struct {
	TypeLiterals string // keep | skip
	Pretty       bool
	Graph        bool // wrap the node array in {"@graph": [...]}
	Verify       bool // compare the output to the input after URDNA2015 normalization
	OutputKey    string
	OutputDir    string // write documents here instead of minio
}

var ConvertTemplate = map[string]interface{}{
	"convert": map[string]string{
		"typeliterals": "keep",
		"pretty":       "false",
		"graph":        "false",
		"verify":       "false",
		"outputkey":    DefaultOutputKey,
		"outputdir":    "",
	},
}

// ReadConvertConfig reads the convert section, falling back to defaults when absent
func ReadConvertConfig(v1 *viper.Viper) (Convert, error) {
	var convertCfg Convert
	sub := v1.Sub("convert")
	if sub == nil {
		sub = viper.New()
	}
	for key, value := range ConvertTemplate["convert"].(map[string]string) {
		sub.SetDefault(key, value)
	}

	if err := sub.Unmarshal(&convertCfg); err != nil {
		return convertCfg, fmt.Errorf("error when parsing convert config: %w", err)
	}
	if convertCfg.OutputKey == "" {
		convertCfg.OutputKey = DefaultOutputKey
	}
	if _, err := convertCfg.Policy(); err != nil {
		return convertCfg, err
	}
	return convertCfg, nil
}

// Policy is the parsed TypeLiterals value
func (c Convert) Policy() (jsonld.TypeLiteralPolicy, error) {
	return jsonld.ParseTypeLiteralPolicy(c.TypeLiterals)
}

// Options turns the config into converter options
func (c Convert) Options() ([]jsonld.Option, error) {
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}
	return []jsonld.Option{jsonld.WithTypeLiterals(policy)}, nil
}
