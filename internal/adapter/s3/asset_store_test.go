package s3

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/pkg/errors"
)

type mockAPI struct {
	keys        map[string]struct{}
	listCalls   int
	deleteCalls int
	rejected    map[string]bool
}

func (m *mockAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.listCalls++

	prefix := aws.ToString(params.Prefix)
	maxKeys := int(aws.ToInt32(params.MaxKeys))

	keys := make([]string, 0)
	for k := range m.keys {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)

	start := 0
	if params.ContinuationToken != nil {
		start = slices.Index(keys, aws.ToString(params.ContinuationToken))
	}

	end := min(start+maxKeys, len(keys))

	out := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(end < len(keys)),
	}

	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}

	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}

	return out, nil
}

func (m *mockAPI) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	m.deleteCalls++

	out := &s3.DeleteObjectsOutput{}

	for _, obj := range params.Delete.Objects {
		key := aws.ToString(obj.Key)
		if m.rejected[key] {
			out.Errors = append(out.Errors, types.Error{Key: obj.Key, Message: aws.String("access denied")})
			continue
		}
		delete(m.keys, key)
	}

	return out, nil
}

func (m *mockAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(m.keys, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func newMockAPI(keys ...string) *mockAPI {
	m := &mockAPI{
		keys:     make(map[string]struct{}),
		rejected: make(map[string]bool),
	}
	for _, k := range keys {
		m.keys[k] = struct{}{}
	}
	return m
}

func TestAssetStore(t *testing.T) {
	ctx := context.Background()

	keys := []string{"studio/galleries/42/", "studio/galleries/420/cover.jpg"}
	for i := 0; i < 30; i++ {
		keys = append(keys, fmt.Sprintf("studio/galleries/42/photo-%02d.jpg", i))
	}

	api := newMockAPI(keys...)
	store := NewAssetStore(api, "media", "/studio/")

	ids, err := store.ListByPrefix(ctx, "galleries/42", 20)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The folder marker is skipped, a second request completes the page
	if e, g := 20, len(ids); e != g {
		t.Fatalf("len(ids): expected %d, got %d", e, g)
	}

	if e, g := model.AssetID("galleries/42/photo-00.jpg"), ids[0]; e != g {
		t.Errorf("ids[0]: expected %s, got %s", e, g)
	}

	if err := store.DeleteBatch(ctx, ids); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.DeleteContainer(ctx, "galleries/42"); !errors.Is(err, ErrContainerNotEmpty) {
		t.Errorf("DeleteContainer(): expected %v, got %v", ErrContainerNotEmpty, err)
	}

	ids, err = store.ListByPrefix(ctx, "galleries/42", 20)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 10, len(ids); e != g {
		t.Fatalf("len(ids): expected %d, got %d", e, g)
	}

	if err := store.DeleteBatch(ctx, ids); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.DeleteContainer(ctx, "galleries/42"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(api.keys); e != g {
		t.Errorf("len(api.keys): expected %d, got %d", e, g)
	}
}

func TestAssetStoreDeleteErrors(t *testing.T) {
	api := newMockAPI("galleries/1/a.jpg", "galleries/1/b.jpg")
	api.rejected["galleries/1/b.jpg"] = true

	store := NewAssetStore(api, "media", "")

	err := store.DeleteBatch(context.Background(), []model.AssetID{"galleries/1/a.jpg", "galleries/1/b.jpg"})
	if err == nil {
		t.Fatal("expected an error")
	}

	if e, g := 1, len(api.keys); e != g {
		t.Errorf("len(api.keys): expected %d, got %d", e, g)
	}
}

func TestParseDSN(t *testing.T) {
	dsn, err := url.Parse("s3://key:secret@localhost:9000/studio?bucket=media&secure=false")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf, err := ParseDSN(dsn)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "http://localhost:9000", conf.Endpoint; e != g {
		t.Errorf("conf.Endpoint: expected %s, got %s", e, g)
	}

	if e, g := "media", conf.Bucket; e != g {
		t.Errorf("conf.Bucket: expected %s, got %s", e, g)
	}

	if e, g := "key", conf.AccessKeyID; e != g {
		t.Errorf("conf.AccessKeyID: expected %s, got %s", e, g)
	}

	if !conf.PathStyle {
		t.Errorf("conf.PathStyle: expected true, got false")
	}

	dsn, err = url.Parse("s3:///studio?region=eu-west-3")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := ParseDSN(dsn); !errors.Is(err, ErrMissingBucket) {
		t.Errorf("ParseDSN(): expected %v, got %v", ErrMissingBucket, err)
	}
}
