package graph

import (
	"context"

	minio "github.com/minio/minio-go/v7"
)

// Sink stores one rendered document and reports where it went
type Sink interface {
	Store(ctx context.Context, objectName string, jsonld []byte, usermeta map[string]string) (string, error)
}

// MinioSink writes to a bucket
type MinioSink struct {
	Bucket string
	Client *minio.Client
}

func (s MinioSink) Store(ctx context.Context, objectName string, jsonld []byte, usermeta map[string]string) (string, error) {
	if _, err := LoadToMinio(ctx, jsonld, s.Bucket, objectName, usermeta, s.Client); err != nil {
		return "", err
	}
	return s.Bucket + "/" + objectName, nil
}

// DirSink writes to a local directory; user metadata is not kept
type DirSink struct {
	Dir string
}

func (s DirSink) Store(_ context.Context, objectName string, jsonld []byte, _ map[string]string) (string, error) {
	return LoadToDir(jsonld, s.Dir, objectName)
}
