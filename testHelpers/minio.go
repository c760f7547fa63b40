package testHelpers

import (
	"context"
	"fmt"
	"strings"

	minioClient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	"github.com/testcontainers/testcontainers-go/wait"
)

const Bucket = "nq2jldbucket"

// MinioHandle is a running minio container and a client connected to it
type MinioHandle struct {
	Container *minio.MinioContainer
	Client    *minioClient.Client
}

func NewMinioHandle(img string) (MinioHandle, error) {
	ctx := context.Background()
	container, err := MinioRun(ctx, img)
	if err != nil {
		return MinioHandle{}, err
	}
	url, _, err := ConnectionStrings(ctx, container)
	if err != nil {
		return MinioHandle{}, err
	}
	client, err := minioClient.New(url, &minioClient.Options{
		Creds:  credentials.NewStaticV4(container.Username, container.Password, ""),
		Secure: false,
	})
	if err != nil {
		return MinioHandle{}, err
	}
	return MinioHandle{Container: container, Client: client}, nil
}

// HostAndPort splits the api connection string for use as cli flags
func (h MinioHandle) HostAndPort() (string, string, error) {
	url, _, err := ConnectionStrings(context.Background(), h.Container)
	if err != nil {
		return "", "", err
	}
	host, port, _ := strings.Cut(url, ":")
	return host, port, nil
}

func (h MinioHandle) Terminate() error {
	return testcontainers.TerminateContainer(h.Container)
}

// GetBucketObjects lists and opens every object under prefix
func GetBucketObjects(mc *minioClient.Client, bucket, prefix string) ([]minioClient.ObjectInfo, []*minioClient.Object, error) {
	var metadata []minioClient.ObjectInfo
	var objects []*minioClient.Object
	objectCh := mc.ListObjects(context.Background(), bucket, minioClient.ListObjectsOptions{Recursive: true, Prefix: prefix})

	for object := range objectCh {
		if object.Err != nil {
			return nil, nil, object.Err
		}
		metadata = append(metadata, object)
		obj, err := mc.GetObject(context.Background(), bucket, object.Key, minioClient.GetObjectOptions{})
		if err != nil {
			return nil, nil, err
		}
		objects = append(objects, obj)
	}

	return metadata, objects, nil
}

// ConnectionStrings returns the api and console addresses of the container
func ConnectionStrings(ctx context.Context, c *minio.MinioContainer) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", err
	}
	port, err := c.MappedPort(ctx, "9000/tcp")
	if err != nil {
		return "", "", err
	}
	ui, err := c.MappedPort(ctx, "9001/tcp")
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), fmt.Sprintf("%s:%s", host, ui.Port()), nil
}

// MinioRun creates an instance of the Minio container type with the console exposed
func MinioRun(ctx context.Context, img string, opts ...testcontainers.ContainerCustomizer) (*minio.MinioContainer, error) {
	const (
		defaultUser     = "minioadmin"
		defaultPassword = "minioadmin"
	)
	req := testcontainers.ContainerRequest{
		Image: img,
		// expose the UI with 9001
		ExposedPorts: []string{"9000/tcp", "9001/tcp"},
		WaitingFor:   wait.ForHTTP("/minio/health/live").WithPort("9000"),
		Env: map[string]string{
			"MINIO_ROOT_USER":     defaultUser,
			"MINIO_ROOT_PASSWORD": defaultPassword,
		},
		Cmd: []string{"server", "/data", "--console-address", ":9001"},
	}

	genericContainerReq := testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	}

	for _, opt := range opts {
		if err := opt.Customize(&genericContainerReq); err != nil {
			return nil, err
		}
	}

	container, err := testcontainers.GenericContainer(ctx, genericContainerReq)
	var c *minio.MinioContainer
	if container != nil {
		c = &minio.MinioContainer{Container: container, Username: defaultUser, Password: defaultPassword}
	}

	if err != nil {
		return c, fmt.Errorf("generic container: %w", err)
	}

	return c, nil
}
