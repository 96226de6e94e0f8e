package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/darkroom/internal/core/service/reconcile"
	"github.com/bornholm/darkroom/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

const (
	maxBodySize = 1 << 16

	errMessageFolderRequired = "Folder path is required"
)

type DeleteFolderRequest struct {
	Folder string `json:"folder"`
}

type DeleteFolderResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	DeletedCount     int    `json:"deletedCount"`
	Iterations       int    `json:"iterations"`
	FailedChunks     int    `json:"failedChunks"`
	ContainerRemoved bool   `json:"containerRemoved"`
}

type ErrorResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	DeletedCount *int   `json:"deletedCount,omitempty"`
}

func (h *Handler) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metrics.TotalDeleteFolderRequests.Inc()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req DeleteFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.DebugContext(ctx, "could not decode request", slogx.Error(errors.WithStack(err)))
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: errMessageFolderRequired})
		return
	}

	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: errMessageFolderRequired})
		return
	}

	ctx = slogx.WithAttrs(ctx, slog.String("folder", folder))

	// A reconciliation runs to completion even if the client goes away,
	// remote calls are bounded by the store's own timeout.
	result, err := h.reconciler.Reconcile(context.WithoutCancel(ctx), folder)
	if err != nil {
		if errors.Is(err, reconcile.ErrEmptyPrefix) {
			writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: errMessageFolderRequired})
			return
		}

		slog.ErrorContext(ctx, "could not delete folder", slogx.Error(errors.WithStack(err)))

		deleted := 0
		if result != nil {
			deleted = result.TotalDeleted
		}

		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{
			Error:        err.Error(),
			DeletedCount: &deleted,
		})
		return
	}

	writeJSON(w, r, http.StatusOK, DeleteFolderResponse{
		Success:          true,
		Message:          fmt.Sprintf("Deleted %d asset(s) from folder '%s' in %d iteration(s)", result.TotalDeleted, folder, result.Iterations),
		DeletedCount:     result.TotalDeleted,
		Iterations:       result.Iterations,
		FailedChunks:     result.FailedChunks,
		ContainerRemoved: result.ContainerRemoved,
	})
}
