package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/core/port/testsuite"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	testminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestAssetStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minio container test in short mode")
	}

	ctx := context.Background()

	const (
		minioUsername = "miniousername"
		minioPassword = "miniopassword"
	)

	minioContainer, err := testminio.Run(
		ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		testminio.WithUsername(minioUsername),
		testminio.WithPassword(minioPassword),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(minioContainer); err != nil {
			t.Fatalf("failed to terminate container: %+v", errors.WithStack(err))
		}
	}()
	if err != nil {
		t.Fatalf("failed to start container: %+v", errors.WithStack(err))
	}

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("could not retrieve connection string: %+v", errors.WithStack(err))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioUsername, minioPassword, ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %+v", errors.WithStack(err))
	}

	const (
		bucketName = "darkroom"
	)

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		t.Fatalf("failed to create minio bucket: %+v", errors.WithStack(err))
	}

	keys := []string{"media/galleries/42/", "media/galleries/420/cover.jpg"}
	for i := 0; i < 25; i++ {
		keys = append(keys, fmt.Sprintf("media/galleries/42/photo-%02d.jpg", i))
	}

	for _, key := range keys {
		if _, err := client.PutObject(ctx, bucketName, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
			t.Fatalf("failed to put object: %+v", errors.WithStack(err))
		}
	}

	dsn, err := url.Parse(fmt.Sprintf("minio://%s:%s@%s/media?bucket=%s&secure=false", minioUsername, minioPassword, endpoint, bucketName))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store, err := FromDSN(dsn)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ids, err := store.ListByPrefix(ctx, "galleries/42", 10)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 10, len(ids); e != g {
		t.Fatalf("len(ids): expected %d, got %d", e, g)
	}

	if e, g := model.AssetID("galleries/42/photo-00.jpg"), ids[0]; e != g {
		t.Errorf("ids[0]: expected %s, got %s", e, g)
	}

	if err := store.DeleteContainer(ctx, "galleries/42"); !errors.Is(err, ErrContainerNotEmpty) {
		t.Errorf("DeleteContainer(): expected %v, got %v", ErrContainerNotEmpty, err)
	}

	for {
		ids, err := store.ListByPrefix(ctx, "galleries/42", 10)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if len(ids) == 0 {
			break
		}

		if err := store.DeleteBatch(ctx, ids); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if err := store.DeleteContainer(ctx, "galleries/42"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ids, err = store.ListByPrefix(ctx, "galleries/420", 10)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(ids); e != g {
		t.Errorf("len(ids): expected %d, got %d", e, g)
	}

	buckets := 0

	testsuite.TestAssetStore(t, func(t *testing.T, ids ...model.AssetID) (port.AssetStore, error) {
		buckets++
		bucket := fmt.Sprintf("suite-%d", buckets)

		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.WithStack(err)
		}

		store := NewAssetStore(client, bucket, "media")

		for _, id := range ids {
			if _, err := client.PutObject(ctx, bucket, store.objectKey(id), bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
				return nil, errors.WithStack(err)
			}
		}

		return store, nil
	})
}
