package model

import (
	"path"
	"strings"
)

// AssetID is the key naming one stored object within a remote media store.
type AssetID string

// RemoteAsset is a media object stored under a hierarchical prefix.
// The remote store is the source of truth, assets are never cached locally.
type RemoteAsset struct {
	ID     AssetID
	Prefix string
}

func NewRemoteAsset(id AssetID) RemoteAsset {
	prefix := path.Dir(string(id))
	if prefix == "." {
		prefix = ""
	}

	return RemoteAsset{
		ID:     id,
		Prefix: prefix,
	}
}

// HasPrefix returns true if the asset is stored under the given prefix,
// matching on path segments ("galleries/4" does not contain "galleries/42/a.jpg").
func (a RemoteAsset) HasPrefix(prefix string) bool {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return true
	}

	return a.Prefix == prefix || strings.HasPrefix(string(a.ID), prefix+"/")
}
