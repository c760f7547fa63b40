package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Construct a viper config from a map; useful for testing
func SetupHelper(conf map[string]interface{}) *viper.Viper {
	var v = viper.New()
	for key, value := range conf {
		v.Set(key, value)
	}
	return v
}

// ReadConfigPath reads a config given as a single path, the way the CLI receives it
func ReadConfigPath(path string) (*viper.Viper, error) {
	return ReadConfig(filepath.Base(path), filepath.Dir(path))
}

func fileNameWithoutExtTrimSuffix(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
