package cloudinary

import (
	"net/url"

	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/storage"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/pkg/errors"
)

func init() {
	storage.RegisterAssetStoreFactory("cloudinary", FromDSN)
}

const (
	paramAssetType    = "assetType"
	paramDeliveryType = "deliveryType"
)

// FromDSN creates a store from a Cloudinary URL:
// cloudinary://<api_key>:<api_secret>@<cloud_name>?assetType=image&deliveryType=upload
func FromDSN(dsn *url.URL) (port.AssetStore, error) {
	u := *dsn
	query := u.Query()

	assetType := api.Image
	if raw := query.Get(paramAssetType); raw != "" {
		assetType = api.AssetType(raw)
	}

	deliveryType := api.Upload
	if raw := query.Get(paramDeliveryType); raw != "" {
		deliveryType = api.DeliveryType(raw)
	}

	query.Del(paramAssetType)
	query.Del(paramDeliveryType)
	u.RawQuery = query.Encode()

	cld, err := cloudinary.NewFromURL(u.String())
	if err != nil {
		return nil, errors.Wrap(err, "could not create cloudinary client")
	}

	return NewAssetStore(&cld.Admin, assetType, deliveryType), nil
}
