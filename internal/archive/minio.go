package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ukfreewill/will-service/internal/config"
	"github.com/ukfreewill/will-service/internal/will"
)

// Archive stores completed wills in object storage. It is optional at
// runtime: sessions work fine without it, the completion step simply skips
// archiving.
type Archive struct {
	client *minio.Client
	bucket string
}

// New creates the archive client and ensures the bucket exists.
func New(cfg *config.MinIOConfig) (*Archive, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	a := &Archive{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, a.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return a, nil
}

// Store uploads the serialized will under wills/<sessionID>.json and returns
// the object key.
func (a *Archive) Store(ctx context.Context, sessionID string, data *will.WillData) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("wills/%s.json", sessionID)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("archive put: %w", err)
	}
	return key, nil
}
