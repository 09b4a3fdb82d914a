// Package metrics defines and registers all custom Prometheus metrics for the
// credential service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init via promauto; services record through the Recorder interface so tests
// can swap in NewNoop().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credential"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "invalid", "duplicate" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "rejected" or "error"
//
// "rejected" covers both unknown email and wrong password; they are not
// distinguished here either.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokenVerificationsTotal counts Credential Gate decisions.
// Label:
//   - result: "authenticated", "no_token" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token checks on protected routes, by result.",
	},
	[]string{"result"},
)

// ── Profile cache metrics ─────────────────────────────────────────────────────

// ProfileCacheTotal counts profile cache lookups.
// Label:
//   - result: "hit", "miss" or "stale" (cached but no longer stored)
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of profile cache lookups, labelled by result (hit/miss/stale).",
	},
	[]string{"result"},
)

// Recorder captures metric events for the application.
type Recorder interface {
	IncRegistration(result string)
	IncLogin(result string)
	IncTokenVerification(result string)
	IncProfileCache(result string)
}

// Prometheus records into the package-level collectors.
type Prometheus struct{}

// NewPrometheus returns a Recorder backed by the default registry.
func NewPrometheus() Recorder {
	return Prometheus{}
}

func (Prometheus) IncRegistration(result string) { RegistrationsTotal.WithLabelValues(result).Inc() }
func (Prometheus) IncLogin(result string)        { LoginsTotal.WithLabelValues(result).Inc() }
func (Prometheus) IncTokenVerification(result string) {
	TokenVerificationsTotal.WithLabelValues(result).Inc()
}
func (Prometheus) IncProfileCache(result string) { ProfileCacheTotal.WithLabelValues(result).Inc() }
