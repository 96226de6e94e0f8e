package memory

import (
	"net/url"
	"strconv"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/storage"
	"github.com/pkg/errors"
)

func init() {
	storage.RegisterAssetStoreFactory("memory", func(u *url.URL) (port.AssetStore, error) {
		funcs := make([]AssetStoreOptionFunc, 0)

		if rawValue := u.Query().Get("maxPageSize"); rawValue != "" {
			v, err := strconv.ParseInt(rawValue, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'maxPageSize' parameter")
			}
			funcs = append(funcs, WithMaxPageSize(int(v)))
		}

		if rawValue := u.Query().Get("maxBatchSize"); rawValue != "" {
			v, err := strconv.ParseInt(rawValue, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'maxBatchSize' parameter")
			}
			funcs = append(funcs, WithMaxBatchSize(int(v)))
		}

		store := NewAssetStore(funcs...)

		// Assets can be seeded for local runs: memory://?asset=galleries/1/a.jpg&asset=...
		for _, id := range u.Query()["asset"] {
			store.Put(model.AssetID(id))
		}

		return store, nil
	})
}
