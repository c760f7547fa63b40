package graph

import (
	"bytes"
	"context"

	log "github.com/sirupsen/logrus"

	minio "github.com/minio/minio-go/v7"
)

const ContentType = "application/ld+json"

// LoadToMinio loads jsonld into the specified bucket
func LoadToMinio(ctx context.Context, jsonld []byte, bucketName, objectName string, usermeta map[string]string, mc *minio.Client) (int64, error) {

	b := bytes.NewReader(jsonld)
	if usermeta == nil {
		usermeta = make(map[string]string)
	}

	n, err := mc.PutObject(ctx, bucketName, objectName, b, int64(b.Len()), minio.PutObjectOptions{ContentType: ContentType, UserMetadata: usermeta})
	if err != nil {
		log.Error(bucketName, "/", objectName, " error ", err)
		return 0, err
	}

	log.Trace("Uploaded Bucket:", bucketName, " File:", objectName, " Size ", n.Size)

	return n.Size, nil
}
