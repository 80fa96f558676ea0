package s3infra

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ec5/ec5-api/internal/config"
)

// maxDeleteBatch is the S3 DeleteObjects per-request limit.
const maxDeleteBatch = 1000

// NewClient creates an S3 client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint and enables path-style addressing.
func NewClient(awsCfg aws.Config, cfg *config.Config) *s3.Client {
	clientOpts := []func(*s3.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, clientOpts...)
}

// MediaStore manages entry media (photos, audio, video) stored under
// "<project_ref>/<entry_uuid>/..." in a single bucket.
type MediaStore struct {
	client *s3.Client
	bucket string
}

func NewMediaStore(client *s3.Client, bucket string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket}
}

// PurgeEntries removes every media object of the given entries.
func (s *MediaStore) PurgeEntries(ctx context.Context, projectRef string, uuids []string) (int, error) {
	var keys []string
	for _, u := range uuids {
		found, err := s.list(ctx, entryPrefix(projectRef, u))
		if err != nil {
			return 0, err
		}
		keys = append(keys, found...)
	}
	for _, batch := range batches(keys, maxDeleteBatch) {
		if err := s.deleteBatch(ctx, batch); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

func (s *MediaStore) list(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (s *MediaStore) deleteBatch(ctx context.Context, keys []string) error {
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, k := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(k)}
	}
	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("s3 delete objects: %w", err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("s3 delete objects: %d keys failed, first %s: %s",
			len(out.Errors), aws.ToString(out.Errors[0].Key), aws.ToString(out.Errors[0].Message))
	}
	return nil
}

func entryPrefix(projectRef, uuid string) string {
	return projectRef + "/" + uuid + "/"
}

func batches(keys []string, size int) [][]string {
	var out [][]string
	for len(keys) > size {
		out = append(out, keys[:size])
		keys = keys[size:]
	}
	if len(keys) > 0 {
		out = append(out, keys)
	}
	return out
}
