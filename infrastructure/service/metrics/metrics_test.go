package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.EventPublished("employee.created", nil)
	m.EventPublished("employee.created", errors.New("closed"))
	m.EventPublished("employee.created", nil)
	m.EventConsumed("user.login", OutcomeNack)
	m.Login(LoginInvalid)
	m.ObserveHTTP("GET", "/api/employee/{id}", 404, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("employee.created", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("employee.created", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsConsumed.WithLabelValues("user.login", OutcomeNack)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues(LoginInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/employee/{id}", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Login(LoginSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `staff_auth_logins_total{outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
