// Package metrics defines and registers all custom Prometheus metrics for the
// forum API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics via the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user", or "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered users.",
	},
)

// RoomsCreatedTotal counts newly created rooms.
// Label:
//   - topic: the room's topic name
var RoomsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rooms_created_total",
		Help:      "Total number of rooms created, by topic.",
	},
	[]string{"topic"},
)

// RoomsDeletedTotal counts deleted rooms.
var RoomsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rooms_deleted_total",
		Help:      "Total number of rooms deleted by their host.",
	},
)

// MessagesPostedTotal counts posted messages.
var MessagesPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_posted_total",
		Help:      "Total number of messages posted.",
	},
)

// MessagesDeletedTotal counts deleted messages.
var MessagesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_deleted_total",
		Help:      "Total number of messages deleted by their author.",
	},
)

// ForbiddenTotal counts ownership-check refusals.
// Label:
//   - entity: "room" or "message"
var ForbiddenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of mutations refused because the requester is not the owner.",
	},
	[]string{"entity"},
)
