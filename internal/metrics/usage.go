package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTotalDeleteFolderRequests    = "total_delete_folder_requests"
	NameTotalShareDuplicatesRequests = "total_share_duplicates_requests"
)

var TotalDeleteFolderRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalDeleteFolderRequests,
		Help:      "Total delete folder requests",
		Namespace: Namespace,
	},
)

var TotalShareDuplicatesRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalShareDuplicatesRequests,
		Help:      "Total share duplicates preview requests",
		Namespace: Namespace,
	},
)

var RateLimitedRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "rate_limited_requests",
		Help:      "Requests rejected by the rate limiter",
		Namespace: Namespace,
	},
)
