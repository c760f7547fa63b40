package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// auth fails if a region is set in minioclient...
var configTemplate = map[string]interface{}{
	"minio": map[string]string{
		"address":   "localhost",
		"port":      "9000",
		"region":    "",
		"accesskey": "",
		"secretkey": "",
	},
	"convert":     ConvertTemplate["convert"],
	"context":     map[string]string{},
	"contextmaps": map[string]string{},
	"sources": map[string]string{
		"sourcetype": "file",
		"name":       "",
		"url":        "",
		"format":     "",
		"select":     "",
	},
}

// ReadConfig reads a yaml config file from cfgDir after installing defaults
func ReadConfig(filename string, cfgDir string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range configTemplate {
		log.Debug("setting default value for ", key, " to ", value)
		v.SetDefault(key, value)
	}

	v.SetConfigName(fileNameWithoutExtTrimSuffix(filename))
	v.AddConfigPath(cfgDir)
	v.SetConfigType("yaml")
	err := v.ReadInConfig()
	if err != nil {
		return v, fmt.Errorf("error when parsing nq2jld config: %w", err)
	}
	return v, err
}
