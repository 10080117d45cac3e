package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Presigner signs requests against a single bucket.
type S3Presigner struct {
	client *s3.PresignClient
	bucket string
}

func NewS3Presigner(ctx context.Context, cfg *config.Config) (*S3Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	slog.Info("s3 presigner initialized", "bucket", cfg.S3BucketName, "region", cfg.AWSRegion)
	return newS3Presigner(client, cfg.S3BucketName), nil
}

func newS3Presigner(client *s3.Client, bucket string) *S3Presigner {
	return &S3Presigner{
		client: s3.NewPresignClient(client),
		bucket: bucket,
	}
}

func (p *S3Presigner) Presign(ctx context.Context, req PresignRequest) (string, error) {
	expires := s3.WithPresignExpires(req.TTL)

	switch req.Op {
	case OpGetObject:
		signed, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(req.Key),
		}, expires)
		if err != nil {
			return "", err
		}
		return signed.URL, nil
	case OpPutObject:
		input := &s3.PutObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(req.Key),
		}
		// Signed as a header, so S3 rejects uploads with any other type.
		if req.ContentType != "" {
			input.ContentType = aws.String(req.ContentType)
		}
		signed, err := p.client.PresignPutObject(ctx, input, expires)
		if err != nil {
			return "", err
		}
		return signed.URL, nil
	default:
		return "", fmt.Errorf("unsupported operation %q", req.Op)
	}
}
