package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// auth fails if a region is set in minioclient...
type Minio struct {
	Address   string // `mapstructure:"MINIO_ADDRESS"`
	Port      int    //`mapstructure:"MINIO_PORT"`
	Ssl       bool   //`mapstructure:"MINIO_USE_SSL"`
	Bucket    string
	Region    string
	Accesskey string //`mapstructure:"MINIO_ACCESS_KEY"`
	Secretkey string // `mapstructure:"MINIO_SECRET_KEY"`
}

var MinioTemplate = map[string]interface{}{
	"address":   "localhost",
	"port":      "9000",
	"bucket":    "",
	"ssl":       "false",
	"region":    "", // auth fails if a region is set in minioclient
	"accesskey": "",
	"secretkey": "",
}

var ErrNoMinioConfig = errors.New("no minio section in config")

// Read the minio section from the viper config
func ReadMinioConfig(minioSubtree *viper.Viper) (Minio, error) {
	var minioCfg Minio
	if minioSubtree == nil {
		return minioCfg, ErrNoMinioConfig
	}
	for key, value := range MinioTemplate {
		minioSubtree.SetDefault(key, value)
	}

	err := minioSubtree.Unmarshal(&minioCfg)
	if err != nil {
		return minioCfg, fmt.Errorf("error when parsing minio endpoint config: %w", err)
	}
	return minioCfg, err
}

// Gets the name of the minio bucket specified in the config
func GetBucketName(v1 *viper.Viper) (string, error) {
	miniocfg, err := ReadMinioConfig(v1.Sub("minio"))
	if err != nil {
		return "", fmt.Errorf("cannot read bucket name from configuration/minio: %w", err)
	}
	if miniocfg.Bucket == "" {
		return "", errors.New("minio.bucket is empty")
	}
	return miniocfg.Bucket, nil
}
