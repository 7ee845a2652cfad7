package artifact

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestObjectKey(t *testing.T) {
	require.Equal(t, "run-1/index.html", ObjectKey("run-1", "index.html"))
	require.Equal(t, "run-1/output-day-0/processed_classroom_data.json", ObjectKey(" run-1 ", "/output-day-0/processed_classroom_data.json"))
}

func TestContentType(t *testing.T) {
	require.Equal(t, "text/html; charset=utf-8", contentType("index.html"))
	require.Equal(t, "application/json", contentType("a/b.json"))
	require.Equal(t, "application/octet-stream", contentType("CNAME"))
}

func TestNewPublisherValidation(t *testing.T) {
	_, err := NewPublisher(Config{})
	require.Error(t, err)
	_, err = NewPublisher(Config{Endpoint: "localhost:9000", Bucket: "reports"})
	require.Error(t, err)
	_, err = NewPublisher(Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.Error(t, err)

	publisher, err := NewPublisher(Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "reports"})
	require.NoError(t, err)
	require.Equal(t, "us-east-1", publisher.region)
}

func TestPublish(t *testing.T) {
	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio",
			Cmd:          []string{"server", "/data"},
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "freeroom",
				"MINIO_ROOT_PASSWORD": "freeroom-secret",
			},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		err := container.Terminate(ctx)
		if err != nil {
			t.Fatal(err)
		}
	}()

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	require.NoError(t, err)

	publisher, err := NewPublisher(Config{
		Endpoint:  endpoint,
		AccessKey: "freeroom",
		SecretKey: "freeroom-secret",
		Bucket:    "reports",
	})
	require.NoError(t, err)

	err = publisher.Publish(ctx, "run-1", Files{
		"index.html": []byte("<html></html>"),
		"output-day-0/processed_classroom_data.json": []byte("[]"),
	})
	require.NoError(t, err)

	for _, prefix := range []string{"run-1", "latest"} {
		content, err := publisher.Get(ctx, prefix, "index.html")
		require.NoError(t, err)
		require.Equal(t, "<html></html>", string(content))
	}
}
