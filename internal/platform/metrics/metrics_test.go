package metrics

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	AuthAttempt("local", "success")
	AuthAttempt("local", "success")
	ConsentChanged("grant", "granted")
	VerificationMailRequested(errors.New("nats down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(authAttemptsTotal.WithLabelValues("local", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(consentChangesTotal.WithLabelValues("grant", "granted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(verificationMails.WithLabelValues("error")))
}

func TestRegisterCounterVec_ReusesExisting(t *testing.T) {
	initMetrics()
	again := registerCounterVec(newAuthAttemptsVec())
	assert.Same(t, authAttemptsTotal, again)
}

func TestRegisterCounterVec_LogsLabelClash(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	initMetrics()
	clash := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Authentication attempts by method and outcome.",
	}, []string{"method"})

	assert.Same(t, clash, registerCounterVec(clash))
	assert.Contains(t, buf.String(), "Failed to register prometheus counter")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
