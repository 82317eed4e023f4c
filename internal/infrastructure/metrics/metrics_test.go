package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStore(t *testing.T) {
	m := New()

	m.ObserveStore("routes.csv", "load", 3, time.Millisecond, nil)
	m.ObserveStore("routes.csv", "load", 0, time.Millisecond, errors.New("denied"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("routes.csv", "load", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("routes.csv", "load", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StoreRecords.WithLabelValues("routes.csv")))
}

func TestObserveRequestAndNotification(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/api/v1/routes", 200, 2*time.Millisecond)
	m.ObserveNotification(nil)
	m.ObserveNotification(errors.New("disk full"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/routes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("error")))
}
