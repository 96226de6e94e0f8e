package cloudinary

import (
	"context"
	"strings"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/pkg/errors"
)

const (
	separator = "/"

	maxResultsPerRequest   = 500
	maxPublicIDsPerRequest = 100
)

// AdminAPI is the subset of the Cloudinary admin API used by the store
type AdminAPI interface {
	Assets(ctx context.Context, params admin.AssetsParams) (*admin.AssetsResult, error)
	DeleteAssets(ctx context.Context, params admin.DeleteAssetsParams) (*admin.DeleteAssetsResult, error)
	DeleteFolder(ctx context.Context, params admin.DeleteFolderParams) (*admin.DeleteFolderResult, error)
}

type AssetStore struct {
	admin        AdminAPI
	assetType    api.AssetType
	deliveryType api.DeliveryType
}

// ListByPrefix implements port.AssetStore.
func (s *AssetStore) ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error) {
	if limit <= 0 || limit > maxResultsPerRequest {
		limit = maxResultsPerRequest
	}

	res, err := s.admin.Assets(ctx, admin.AssetsParams{
		AssetType:    s.assetType,
		DeliveryType: string(s.deliveryType),
		Prefix:       folderPrefix(prefix),
		MaxResults:   limit,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if res.Error.Message != "" {
		return nil, errors.Wrapf(ErrAPI, "could not list assets: %s", res.Error.Message)
	}

	ids := make([]model.AssetID, 0, len(res.Assets))
	for _, a := range res.Assets {
		ids = append(ids, model.AssetID(a.PublicID))
	}

	return ids, nil
}

// DeleteBatch implements port.AssetStore.
func (s *AssetStore) DeleteBatch(ctx context.Context, ids []model.AssetID) error {
	if len(ids) == 0 {
		return nil
	}

	publicIDs := make(api.CldAPIArray, 0, len(ids))
	for _, id := range ids {
		publicIDs = append(publicIDs, string(id))
	}

	res, err := s.admin.DeleteAssets(ctx, admin.DeleteAssetsParams{
		AssetType:    s.assetType,
		DeliveryType: s.deliveryType,
		PublicIDs:    publicIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if res.Error.Message != "" {
		return errors.Wrapf(ErrAPI, "could not delete assets: %s", res.Error.Message)
	}

	return nil
}

// DeleteContainer implements port.AssetStore.
func (s *AssetStore) DeleteContainer(ctx context.Context, prefix string) error {
	res, err := s.admin.DeleteFolder(ctx, admin.DeleteFolderParams{
		Folder: strings.Trim(prefix, separator),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if res.Error.Message != "" {
		return errors.Wrapf(ErrAPI, "could not delete folder: %s", res.Error.Message)
	}

	return nil
}

// MaxPageSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxPageSize() int {
	return maxResultsPerRequest
}

// MaxBatchSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxBatchSize() int {
	return maxPublicIDsPerRequest
}

func folderPrefix(prefix string) string {
	prefix = strings.Trim(prefix, separator)
	if prefix == "" {
		return ""
	}

	return prefix + separator
}

func NewAssetStore(admin AdminAPI, assetType api.AssetType, deliveryType api.DeliveryType) *AssetStore {
	return &AssetStore{
		admin:        admin,
		assetType:    assetType,
		deliveryType: deliveryType,
	}
}

var (
	_ port.AssetStore       = &AssetStore{}
	_ port.AssetStoreLimits = &AssetStore{}
)
