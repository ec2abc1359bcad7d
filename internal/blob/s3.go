package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"stash/internal/config"
	"stash/internal/domain/services"
)

// S3Store implements services.BlobStore on S3 or any S3-compatible store.
// Put returns the object's public URL, which the file record stores as its
// physicalRef and never reinterprets.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
	publicURL string
	logger    *slog.Logger
}

// NewS3Store builds the AWS client from app config and verifies bucket
// access. The bucket must already exist.
func NewS3Store(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*S3Store, error) {
	if cfg.BlobBucket == "" {
		return nil, fmt.Errorf("blob bucket name is required")
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.BlobRegion),
	}
	if cfg.BlobAccessKey != "" && cfg.BlobSecretKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.BlobAccessKey, cfg.BlobSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BlobEndpoint != "" {
			// MinIO and friends want path-style addressing
			o.BaseEndpoint = aws.String(cfg.BlobEndpoint)
			o.UsePathStyle = true
		}
	})

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.BlobBucket),
	}); err != nil {
		return nil, fmt.Errorf("failed to access bucket %q: %w", cfg.BlobBucket, err)
	}

	publicURL := cfg.BlobPublicURL
	if publicURL == "" {
		if cfg.BlobEndpoint != "" {
			publicURL = strings.TrimSuffix(cfg.BlobEndpoint, "/") + "/" + cfg.BlobBucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BlobBucket, cfg.BlobRegion)
		}
	}

	logger.Info("blob store initialized",
		"bucket", cfg.BlobBucket,
		"region", cfg.BlobRegion,
		"key_prefix", cfg.BlobKeyPrefix,
	)

	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    cfg.BlobBucket,
		keyPrefix: cfg.BlobKeyPrefix,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}, nil
}

// Put streams r into the bucket under the given key and returns the
// object's public URL. The uploader switches to multipart automatically
// for large bodies.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	objectKey := s.keyPrefix + key

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %q: %w", objectKey, err)
	}

	return s.publicURL + "/" + objectKey, nil
}

// Delete removes the object a previous Put returned ref for. Idempotent:
// deleting an absent object succeeds.
func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.publicURL+"/")
	if !ok {
		// Refs recorded manually may point anywhere; nothing to delete here
		s.logger.Debug("skipping delete of external ref", "ref", ref)
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}

	return nil
}

var _ services.BlobStore = (*S3Store)(nil)
