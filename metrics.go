package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupUsersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fanfou_client",
			Name:      "lookup_users_total",
			Help:      "Profiles requested through LookupUsers, by outcome.",
		},
		[]string{"outcome"},
	)

	walkPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fanfou_client",
			Name:      "walk_pages_total",
			Help:      "Pages fetched by WalkFollowers and WalkFriends.",
		},
		[]string{"listing"},
	)
)
