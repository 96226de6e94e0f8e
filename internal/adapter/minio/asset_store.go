package minio

import (
	"context"
	"path"
	"strings"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const (
	separator = "/"

	// S3 compatible stores accept at most 1000 keys per listing or multi-delete request
	maxKeysPerRequest = 1000
)

var ErrContainerNotEmpty = errors.New("container not empty")

type AssetStore struct {
	basePath string
	bucket   string
	client   *minio.Client
}

// ListByPrefix implements port.AssetStore.
func (s *AssetStore) ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.containerKey(prefix),
		Recursive: true,
		MaxKeys:   min(limit, maxKeysPerRequest),
	})

	ids := make([]model.AssetID, 0)

	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.WithStack(obj.Err)
		}

		// Folder markers
		if strings.HasSuffix(obj.Key, separator) {
			continue
		}

		ids = append(ids, s.assetID(obj.Key))

		if limit > 0 && len(ids) >= limit {
			break
		}
	}

	return ids, nil
}

// DeleteBatch implements port.AssetStore.
func (s *AssetStore) DeleteBatch(ctx context.Context, ids []model.AssetID) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := make(chan minio.ObjectInfo, len(ids))
	for _, id := range ids {
		objects <- minio.ObjectInfo{Key: s.objectKey(id)}
	}
	close(objects)

	var err error

	for removeErr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{GovernanceBypass: true}) {
		if removeErr.Err == nil || err != nil {
			continue
		}

		err = errors.Wrapf(removeErr.Err, "could not remove object '%s'", removeErr.ObjectName)
	}

	return err
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

	err = s.client.RemoveObject(ctx, s.bucket, s.containerKey(prefix), minio.RemoveObjectOptions{
		GovernanceBypass: true,
		ForceDelete:      true,
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

func NewAssetStore(client *minio.Client, bucket string, basePath string) *AssetStore {
	return &AssetStore{
		bucket:   bucket,
		client:   client,
		basePath: strings.Trim(basePath, separator),
	}
}

var (
	_ port.AssetStore       = &AssetStore{}
	_ port.AssetStoreLimits = &AssetStore{}
)
