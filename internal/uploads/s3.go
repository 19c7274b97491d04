package uploads

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader writes images to an S3-compatible bucket.
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Uploader creates an S3 uploader. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Uploader(ctx context.Context, bucket, region, endpoint, publicURL string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Uploader{
		client:    s3.NewFromConfig(cfg, s3opts...),
		bucket:    bucket,
		publicURL: objectBaseURL(bucket, region, endpoint, publicURL),
	}, nil
}

// Put uploads data as the object name.
func (u *S3Uploader) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return u.publicURL + "/" + name, nil
}

// objectBaseURL picks the URL objects are reachable under: the configured
// public URL, the path-style endpoint URL, or the virtual-hosted AWS URL.
func objectBaseURL(bucket, region, endpoint, publicURL string) string {
	switch {
	case publicURL != "":
		return strings.TrimRight(publicURL, "/")
	case endpoint != "":
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
}
