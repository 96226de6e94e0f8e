package s3

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

const (
	separator         = "/"
	maxKeysPerRequest = 1000
)

var ErrContainerNotEmpty = errors.New("container not empty")

// API is the subset of the S3 client used by the store
type API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type AssetStore struct {
	client   API
	bucket   string
	basePath string
}

// ListByPrefix implements port.AssetStore.
func (s *AssetStore) ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error) {
	if limit <= 0 || limit > maxKeysPerRequest {
		limit = maxKeysPerRequest
	}

	ids := make([]model.AssetID, 0, limit)

	var continuationToken *string

	for len(ids) < limit {
		res, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.containerKey(prefix)),
			MaxKeys:           aws.Int32(int32(limit - len(ids))),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "could not list objects of bucket '%s'", s.bucket)
		}

		for _, obj := range res.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, separator) {
				continue
			}

			ids = append(ids, s.assetID(key))
		}

		if !aws.ToBool(res.IsTruncated) || res.NextContinuationToken == nil {
			break
		}

		continuationToken = res.NextContinuationToken
	}

	return ids, nil
}

// DeleteBatch implements port.AssetStore.
func (s *AssetStore) DeleteBatch(ctx context.Context, ids []model.AssetID) error {
	if len(ids) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(ids))
	for _, id := range ids {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(s.objectKey(id))})
	}

	res, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return errors.Wrapf(err, "could not delete objects of bucket '%s'", s.bucket)
	}

	if len(res.Errors) > 0 {
		first := res.Errors[0]
		return errors.Errorf("could not delete %d object(s), first failure on '%s': %s", len(res.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
	}

	return nil
}

// DeleteContainer implements port.AssetStore.
func (s *AssetStore) DeleteContainer(ctx context.Context, prefix string) error {
	remaining, err := s.ListByPrefix(ctx, prefix, 1)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(remaining) > 0 {
		return errors.Wrapf(ErrContainerNotEmpty, "container '%s'", prefix)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.containerKey(prefix)),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// MaxPageSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxPageSize() int {
	return maxKeysPerRequest
}

// MaxBatchSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxBatchSize() int {
	return maxKeysPerRequest
}

func (s *AssetStore) containerKey(prefix string) string {
	prefix = strings.Trim(prefix, separator)
	if prefix == "" {
		if s.basePath == "" {
			return ""
		}
		return s.basePath + separator
	}

	return path.Join(s.basePath, prefix) + separator
}

func (s *AssetStore) objectKey(id model.AssetID) string {
	return path.Join(s.basePath, string(id))
}

func (s *AssetStore) assetID(key string) model.AssetID {
	if s.basePath == "" {
		return model.AssetID(key)
	}

	return model.AssetID(strings.TrimPrefix(key, s.basePath+separator))
}

func NewAssetStore(client API, bucket string, basePath string) *AssetStore {
	return &AssetStore{
		client:   client,
		bucket:   bucket,
		basePath: strings.Trim(basePath, separator),
	}
}

var (
	_ port.AssetStore       = &AssetStore{}
	_ port.AssetStoreLimits = &AssetStore{}
)
