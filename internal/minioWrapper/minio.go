package minioWrapper

import (
	"context"
	"errors"
	"fmt"
	"io"

	"nq2jld/internal/config"

	log "github.com/sirupsen/logrus"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClientWrapper struct {
	DefaultBucket string
	Client        *minio.Client
}

// NewMinioConnection Set up minio and initialize client
func NewMinioConnection(cfg config.Minio) (MinioClientWrapper, error) {

	var endpoint string
	if cfg.Port == 0 {
		endpoint = cfg.Address
	} else {
		endpoint = fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	}

	var minioClient *minio.Client
	var err error

	if cfg.Region == "" {
		log.Debug("no region set")
		minioClient, err = minio.New(endpoint,
			&minio.Options{Creds: credentials.NewStaticV4(cfg.Accesskey, cfg.Secretkey, ""),
				Secure: cfg.Ssl,
			})
	} else {
		minioClient, err = minio.New(endpoint,
			&minio.Options{Creds: credentials.NewStaticV4(cfg.Accesskey, cfg.Secretkey, ""),
				Secure: cfg.Ssl,
				Region: cfg.Region,
			})
	}
	return MinioClientWrapper{Client: minioClient, DefaultBucket: cfg.Bucket}, err

}

// SetupBucket creates the default bucket if it is missing
func (m *MinioClientWrapper) SetupBucket(ctx context.Context) error {
	if m.DefaultBucket == "" {
		return errors.New("no default bucket set")
	}
	if exists, err := m.Client.BucketExists(ctx, m.DefaultBucket); err != nil {
		return err
	} else if !exists {
		log.Debug("Bucket ", m.DefaultBucket, " not found, generating")
		if err := m.Client.MakeBucket(ctx, m.DefaultBucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	return m.PreflightCheck(ctx)
}

// PreflightCheck verifies we can reach the server and that the default bucket exists
func (m *MinioClientWrapper) PreflightCheck(ctx context.Context) error {
	if exists, err := m.Client.BucketExists(ctx, m.DefaultBucket); err != nil {
		return fmt.Errorf("minio access check failed, make sure the server is running: %w", err)
	} else if !exists {
		return fmt.Errorf("bucket %s does not exist, did you run with --setup to create it?", m.DefaultBucket)
	}
	log.Debug("Validated access to object store: ", m.DefaultBucket)
	return nil
}

// Open streams an object from the default bucket
func (m *MinioClientWrapper) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.Client.GetObject(ctx, m.DefaultBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy, so surface a missing key here instead of on first read
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("%s/%s: %w", m.DefaultBucket, key, err)
	}
	return obj, nil
}
