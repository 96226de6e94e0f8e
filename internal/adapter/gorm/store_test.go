package gorm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/core/port/testsuite"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "data.sqlite")

	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return NewStore(db)
}

func TestShareLinkStore(t *testing.T) {
	testsuite.TestShareLinkStore(t, func(t *testing.T) (port.ShareLinkStore, error) {
		return newTestStore(t), nil
	})
}

func TestShareLinkStoreMissingID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveShareLink(context.Background(), model.NewShareLink("gallery-1", model.WithShareLinkID("")))
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("err: expected %v, got %v", ErrMissingID, err)
	}
}
