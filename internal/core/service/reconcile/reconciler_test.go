package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/bornholm/darkroom/internal/adapter/memory"
	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/pkg/errors"
)

func TestFolderReconcilerLargeFolder(t *testing.T) {
	ctx := context.Background()

	store := newSpyStore()
	seed(store, "galleries/42", 1200)
	seed(store, "galleries/420", 10)

	reconciler := NewFolderReconciler(store, WithPageSize(500), WithChunkSize(100))

	result, err := reconciler.Reconcile(ctx, "galleries/42")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, result.Iterations; e != g {
		t.Errorf("result.Iterations: expected %d, got %d", e, g)
	}

	if e, g := 12, len(store.deleteCalls); e != g {
		t.Errorf("len(store.deleteCalls): expected %d, got %d", e, g)
	}

	if e, g := 1200, result.TotalDeleted; e != g {
		t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
	}

	if e, g := 0, result.FailedChunks; e != g {
		t.Errorf("result.FailedChunks: expected %d, got %d", e, g)
	}

	if !result.ContainerRemoved {
		t.Errorf("result.ContainerRemoved: expected true, got false")
	}

	if e, g := 10, store.Len(); e != g {
		t.Errorf("store.Len(): expected %d, got %d", e, g)
	}
}

func TestFolderReconcilerRerun(t *testing.T) {
	ctx := context.Background()

	store := newSpyStore()
	seed(store, "galleries/7", 42)

	reconciler := NewFolderReconciler(store)

	if _, err := reconciler.Reconcile(ctx, "galleries/7"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	result, err := reconciler.Reconcile(ctx, "galleries/7")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, result.TotalDeleted; e != g {
		t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
	}

	if e, g := 1, result.Iterations; e != g {
		t.Errorf("result.Iterations: expected %d, got %d", e, g)
	}
}

func TestFolderReconcilerTermination(t *testing.T) {
	type testCase struct {
		Total        int
		PageSize     int
		ConfirmEmpty bool
	}

	testCases := make([]testCase, 0)
	for _, total := range []int{0, 1, 49, 50, 51, 100, 149, 333} {
		for _, confirmEmpty := range []bool{false, true} {
			testCases = append(testCases, testCase{Total: total, PageSize: 50, ConfirmEmpty: confirmEmpty})
		}
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d/%d/%v", tc.Total, tc.PageSize, tc.ConfirmEmpty), func(t *testing.T) {
			ctx := context.Background()

			store := newSpyStore()
			seed(store, "galleries/1", tc.Total)

			reconciler := NewFolderReconciler(store,
				WithPageSize(tc.PageSize),
				WithChunkSize(20),
				WithConfirmEmpty(tc.ConfirmEmpty),
			)

			result, err := reconciler.Reconcile(ctx, "galleries/1")
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			maxIterations := (tc.Total+tc.PageSize-1)/tc.PageSize + 1
			if result.Iterations > maxIterations {
				t.Errorf("result.Iterations: expected at most %d, got %d", maxIterations, result.Iterations)
			}

			if e, g := tc.Total, result.TotalDeleted; e != g {
				t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
			}

			if e, g := result.Iterations, store.listCalls; e != g {
				t.Errorf("store.listCalls: expected %d, got %d", e, g)
			}
		})
	}
}

func TestFolderReconcilerPartialFailure(t *testing.T) {
	ctx := context.Background()

	baseline := newSpyStore()
	seed(baseline, "galleries/3", 250)

	expected, err := NewFolderReconciler(baseline).Reconcile(ctx, "galleries/3")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store := newSpyStore()
	seed(store, "galleries/3", 250)
	store.failDeletes[1] = true

	result, err := NewFolderReconciler(store).Reconcile(ctx, "galleries/3")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := expected.Iterations, result.Iterations; e != g {
		t.Errorf("result.Iterations: expected %d, got %d", e, g)
	}

	if e, g := 3, len(store.deleteCalls); e != g {
		t.Errorf("len(store.deleteCalls): expected %d, got %d", e, g)
	}

	if e, g := 150, result.TotalDeleted; e != g {
		t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
	}

	if e, g := 1, result.FailedChunks; e != g {
		t.Errorf("result.FailedChunks: expected %d, got %d", e, g)
	}

	if result.ContainerRemoved {
		t.Errorf("result.ContainerRemoved: expected false, got true")
	}
}

func TestFolderReconcilerNoProgress(t *testing.T) {
	ctx := context.Background()

	store := newSpyStore()
	seed(store, "galleries/5", 120)
	store.failAllDeletes = true

	reconciler := NewFolderReconciler(store, WithPageSize(50), WithConfirmEmpty(true))

	result, err := reconciler.Reconcile(ctx, "galleries/5")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, result.Iterations; e != g {
		t.Errorf("result.Iterations: expected %d, got %d", e, g)
	}

	if e, g := 0, result.TotalDeleted; e != g {
		t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
	}

	if e, g := 1, result.FailedChunks; e != g {
		t.Errorf("result.FailedChunks: expected %d, got %d", e, g)
	}
}

func TestFolderReconcilerStuckChunk(t *testing.T) {
	type testCase struct {
		ConfirmEmpty       bool
		ExpectedIterations int
	}

	// The first chunk of every page holds the 100 locked assets: each pass
	// deletes the rest of the page until only the locked assets are listed.
	testCases := []testCase{
		{ConfirmEmpty: false, ExpectedIterations: 3},
		{ConfirmEmpty: true, ExpectedIterations: 4},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v", tc.ConfirmEmpty), func(t *testing.T) {
			ctx := context.Background()

			store := newSpyStore()
			seed(store, "galleries/6", 1000)

			for i := 0; i < 100; i++ {
				store.stuckIDs[model.AssetID(fmt.Sprintf("galleries/6/photo-%05d.jpg", i))] = true
			}

			reconciler := NewFolderReconciler(store,
				WithPageSize(500),
				WithChunkSize(100),
				WithConfirmEmpty(tc.ConfirmEmpty),
			)

			result, err := reconciler.Reconcile(ctx, "galleries/6")
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedIterations, result.Iterations; e != g {
				t.Errorf("result.Iterations: expected %d, got %d", e, g)
			}

			if e, g := 900, result.TotalDeleted; e != g {
				t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
			}

			// One failed chunk per page holding assets
			if e, g := tc.ExpectedIterations, result.FailedChunks; e != g {
				t.Errorf("result.FailedChunks: expected %d, got %d", e, g)
			}

			if e, g := 100, store.Len(); e != g {
				t.Errorf("store.Len(): expected %d, got %d", e, g)
			}

			if result.ContainerRemoved {
				t.Errorf("result.ContainerRemoved: expected false, got true")
			}
		})
	}
}

func TestFolderReconcilerListingFailure(t *testing.T) {
	ctx := context.Background()

	store := newSpyStore()
	seed(store, "galleries/9", 1200)
	store.failListAt = 2

	result, err := NewFolderReconciler(store).Reconcile(ctx, "galleries/9")
	if !errors.Is(err, errInjected) {
		t.Fatalf("err: expected %v, got %v", errInjected, err)
	}

	if result == nil {
		t.Fatal("result: expected partial result, got nil")
	}

	if e, g := 500, result.TotalDeleted; e != g {
		t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
	}

	if e, g := 2, result.Iterations; e != g {
		t.Errorf("result.Iterations: expected %d, got %d", e, g)
	}

	if result.ContainerRemoved {
		t.Errorf("result.ContainerRemoved: expected false, got true")
	}
}

func TestFolderReconcilerEmptyPrefix(t *testing.T) {
	store := newSpyStore()

	for _, prefix := range []string{"", "   ", "/"} {
		_, err := NewFolderReconciler(store).Reconcile(context.Background(), prefix)
		if !errors.Is(err, ErrEmptyPrefix) {
			t.Errorf("Reconcile(%q): expected %v, got %v", prefix, ErrEmptyPrefix, err)
		}
	}

	if e, g := 0, store.listCalls; e != g {
		t.Errorf("store.listCalls: expected %d, got %d", e, g)
	}
}

func TestFolderReconcilerStoreLimits(t *testing.T) {
	ctx := context.Background()

	store := newSpyStore(memory.WithMaxPageSize(100), memory.WithMaxBatchSize(30))
	seed(store, "galleries/8", 250)

	result, err := NewFolderReconciler(store).Reconcile(ctx, "galleries/8")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Pages of 100, 100 then 50
	if e, g := 3, result.Iterations; e != g {
		t.Errorf("result.Iterations: expected %d, got %d", e, g)
	}

	for i, ids := range store.deleteCalls {
		if len(ids) > 30 {
			t.Errorf("store.deleteCalls[%d]: expected at most %d ids, got %d", i, 30, len(ids))
		}
	}

	if e, g := 250, result.TotalDeleted; e != g {
		t.Errorf("result.TotalDeleted: expected %d, got %d", e, g)
	}
}

func TestStateString(t *testing.T) {
	for state, expected := range map[State]string{
		StateListing:  "listing",
		StateDeleting: "deleting",
		StateDone:     "done",
		State(42):     "unknown",
	} {
		if e, g := expected, state.String(); e != g {
			t.Errorf("State(%d).String(): expected %s, got %s", state, e, g)
		}
	}
}
