package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameDeletedAssets         = "deleted_assets"
	NameFailedDeleteChunks    = "failed_delete_chunks"
	NameListingIterations     = "listing_iterations"
	NameFolderReconciliations = "folder_reconciliations"
	LabelStatus               = "status"
)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

var DeletedAssets = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameDeletedAssets,
		Help:      "Remote assets deleted by folder reconciliations",
		Namespace: Namespace,
	},
)

var FailedDeleteChunks = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameFailedDeleteChunks,
		Help:      "Delete chunks rejected by the remote store",
		Namespace: Namespace,
	},
)

var ListingIterations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameListingIterations,
		Help:      "Listing calls issued by folder reconciliations",
		Namespace: Namespace,
	},
)

var FolderReconciliations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameFolderReconciliations,
		Help:      "Folder reconciliations by status",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)
