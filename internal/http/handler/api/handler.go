package api

import (
	"context"
	"net/http"

	"github.com/bornholm/darkroom/internal/core/service/reconcile"
	"github.com/bornholm/darkroom/internal/core/service/shares"
)

type FolderReconciler interface {
	Reconcile(ctx context.Context, prefix string) (*reconcile.Result, error)
}

type ShareDeduplicator interface {
	Preview(ctx context.Context) (*shares.Resolution, error)
}

type Handler struct {
	reconciler   FolderReconciler
	deduplicator ShareDeduplicator
	mux          *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(reconciler FolderReconciler, deduplicator ShareDeduplicator) *Handler {
	h := &Handler{
		reconciler:   reconciler,
		deduplicator: deduplicator,
		mux:          &http.ServeMux{},
	}

	h.mux.HandleFunc("POST /cloudinary/delete-folder", h.handleDeleteFolder)
	h.mux.HandleFunc("GET /shares/duplicates", h.handleListShareDuplicates)

	return h
}

var _ http.Handler = &Handler{}
