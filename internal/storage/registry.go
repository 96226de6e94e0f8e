package storage

import (
	"net/url"

	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

var ErrSchemeNotRegistered = errors.New("scheme not registered")

var assetStoreFactories = make(map[string]AssetStoreFactory, 0)

type AssetStoreFactory func(dsn *url.URL) (port.AssetStore, error)

func RegisterAssetStoreFactory(scheme string, factory AssetStoreFactory) {
	assetStoreFactories[scheme] = factory
}

func NewAssetStore(dsn string) (port.AssetStore, error) {
	url, err := url.Parse(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	factory, exists := assetStoreFactories[url.Scheme]
	if !exists {
		return nil, errors.Wrapf(ErrSchemeNotRegistered, "no asset store associated with scheme '%s'", url.Scheme)
	}

	store, err := factory(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
}
