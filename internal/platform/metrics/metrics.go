// Package metrics holds the Prometheus collectors of the accounts service.
package metrics

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var metricsOnce sync.Once

var (
	authAttemptsTotal   *prometheus.CounterVec
	identityResolutions *prometheus.CounterVec
	consentChangesTotal *prometheus.CounterVec
	verificationMails   *prometheus.CounterVec
)

func registerCounterVec(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		slog.Warn("Failed to register prometheus counter", slog.Any("error", err))
	}
	return c
}

func newAuthAttemptsVec() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Authentication attempts by method and outcome.",
	}, []string{"method", "outcome"})
}

func initMetrics() {
	metricsOnce.Do(func() {
		authAttemptsTotal = registerCounterVec(newAuthAttemptsVec())

		identityResolutions = registerCounterVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "identity",
			Name:      "resolutions_total",
			Help:      "Social identity resolutions by provider and branch.",
		}, []string{"provider", "kind"}))

		consentChangesTotal = registerCounterVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "consent",
			Name:      "changes_total",
			Help:      "Consent ledger operations by action and result.",
		}, []string{"action", "result"}))

		verificationMails = registerCounterVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "mail",
			Name:      "verification_requests_total",
			Help:      "Verification mail requests by result.",
		}, []string{"result"}))
	})
}

// AuthAttempt counts a login attempt; method is "local", "google" or "facebook".
func AuthAttempt(method, outcome string) {
	initMetrics()
	authAttemptsTotal.WithLabelValues(method, outcome).Inc()
}

// IdentityResolved counts a successful identity resolution.
func IdentityResolved(provider, kind string) {
	initMetrics()
	identityResolutions.WithLabelValues(provider, kind).Inc()
}

// ConsentChanged counts a consent ledger operation.
func ConsentChanged(action, result string) {
	initMetrics()
	consentChangesTotal.WithLabelValues(action, result).Inc()
}

// VerificationMailRequested counts a verification mail request.
func VerificationMailRequested(err error) {
	initMetrics()
	result := "ok"
	if err != nil {
		result = "error"
	}
	verificationMails.WithLabelValues(result).Inc()
}
