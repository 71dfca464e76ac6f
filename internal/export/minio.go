package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/innovatelu/docstore/internal/document"
)

// Config holds MinIO connection settings for the snapshot exporter.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinIOExporter writes JSON snapshots of the document store to a bucket.
// The store itself is transient; snapshots are the operator's escape hatch.
type MinIOExporter struct {
	client *minio.Client
	bucket string
}

// NewMinIOExporter creates the exporter and ensures the bucket exists.
func NewMinIOExporter(cfg Config) (*MinIOExporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	e := &MinIOExporter{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
		// tolerate "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, e.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return e, nil
}

// Snapshot uploads the documents as one JSON object under snapshots/ and
// returns the object key.
func (e *MinIOExporter) Snapshot(ctx context.Context, docs []*document.Document) (string, error) {
	b, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("snapshot marshal: %w", err)
	}
	key := "snapshots/" + time.Now().UTC().Format("20060102T150405Z") + ".json"
	_, err = e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("snapshot upload: %w", err)
	}
	return key, nil
}
