package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameDuplicateShareLinks = "duplicate_share_links"
	NameRemovedShareLinks   = "removed_share_links"
)

var DuplicateShareLinks = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameDuplicateShareLinks,
		Help:      "Superseded share links found by the last resolution",
		Namespace: Namespace,
	},
)

var RemovedShareLinks = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameRemovedShareLinks,
		Help:      "Superseded share links deleted",
		Namespace: Namespace,
	},
)
