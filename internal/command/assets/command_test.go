package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bornholm/darkroom/internal/adapter/memory"
	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/service/reconcile"
	"github.com/pkg/errors"
)

func TestDeleteFolder(t *testing.T) {
	store := memory.NewAssetStore()

	ids := make([]model.AssetID, 0, 1200)
	for i := range 1200 {
		ids = append(ids, model.AssetID(fmt.Sprintf("events/2024/photo-%05d.jpg", i)))
	}
	store.Put(ids...)
	store.Put("events/2025/other.jpg")

	var out bytes.Buffer

	if err := deleteFolder(context.Background(), &out, reconcile.NewFolderReconciler(store), "events/2024"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, store.Len(); e != g {
		t.Errorf("store.Len(): expected %d, got %d", e, g)
	}

	output := out.String()

	for _, s := range []string{"deletedCount:     1,200", "iterations:       3", "failedChunks:     0", "containerRemoved: true"} {
		if !strings.Contains(output, s) {
			t.Errorf("output: expected to contain %q, got %q", s, output)
		}
	}
}

func TestDeleteFolderEmptyPrefix(t *testing.T) {
	var out bytes.Buffer

	err := deleteFolder(context.Background(), &out, reconcile.NewFolderReconciler(memory.NewAssetStore()), " ")
	if !errors.Is(err, reconcile.ErrEmptyPrefix) {
		t.Errorf("err: expected %v, got %v", reconcile.ErrEmptyPrefix, err)
	}

	if e, g := "", out.String(); e != g {
		t.Errorf("output: expected %q, got %q", e, g)
	}
}
