package artifact

import (
	"bytes"
	"context"
	"fmt"
	"freeroom/lib/telemetry"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("freeroom.lib.artifact")

type Config struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	UseSSL    bool   `json:"use_ssl"`
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// Publisher uploads generated reports to an s3 compatible bucket.
type Publisher struct {
	client *minio.Client
	bucket string
	region string

	initOnce sync.Once
	initErr  error
}

func NewPublisher(cfg Config) (*Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("artifact endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("artifact access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("artifact bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Publisher{
		client: client,
		bucket: bucket,
		region: region,
	}, nil
}

func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.initOnce.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.bucket)
		if err != nil {
			p.initErr = err
			return
		}
		if exists {
			return
		}
		p.initErr = p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
	})
	return p.initErr
}

// ObjectKey places path under a run, "latest" is overwritten by every run.
func ObjectKey(runId, path string) string {
	return strings.TrimSpace(runId) + "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
}

func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"):
		return "text/html; charset=utf-8"
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	}
	return "application/octet-stream"
}

// Put uploads a single object.
func (p *Publisher) Put(ctx context.Context, runId, path string, content []byte) error {
	ctx, span := tracer.Start(ctx, "Put")
	defer span.End()

	if strings.TrimSpace(runId) == "" || strings.TrimSpace(path) == "" {
		return fmt.Errorf("run id and path are required")
	}
	err := p.ensureBucket(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to ensure bucket")
		return fmt.Errorf("ensure bucket: %w", err)
	}

	key := ObjectKey(runId, path)
	span.SetAttributes(attribute.String("key", key))
	_, err = p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType(path),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to put object")
		return err
	}
	return nil
}

// Get downloads a single object.
func (p *Publisher) Get(ctx context.Context, runId, path string) ([]byte, error) {
	obj, err := p.client.GetObject(ctx, p.bucket, ObjectKey(runId, path), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(obj)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Files is a set of path -> contents published together.
type Files map[string][]byte

// Publish uploads files under the run id and again under "latest".
func (p *Publisher) Publish(ctx context.Context, runId string, files Files) error {
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runId), attribute.Int("files", len(files)))

	for _, prefix := range []string{runId, "latest"} {
		for path, content := range files {
			err := p.Put(ctx, prefix, path, content)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return fmt.Errorf("publish %s: %w", ObjectKey(prefix, path), err)
			}
		}
	}
	return nil
}
