package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestIncTransition(t *testing.T) {
	before := testutil.ToFloat64(bookingTransitions.WithLabelValues("checkin", OutcomeSuccess))
	failedBefore := testutil.ToFloat64(bookingTransitions.WithLabelValues("checkin", OutcomeFailure))

	IncTransition("checkin", nil)
	IncTransition("checkin", errors.New("conflict"))

	assert.InDelta(t, before+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("checkin", OutcomeSuccess)), 0)
	assert.InDelta(t, failedBefore+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("checkin", OutcomeFailure)), 0)
}

func TestIncRejection(t *testing.T) {
	before := testutil.ToFloat64(availabilityRejections.WithLabelValues("overlap"))

	IncRejection("overlap")

	assert.InDelta(t, before+1, testutil.ToFloat64(availabilityRejections.WithLabelValues("overlap")), 0)
}

func TestIncHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/v1/rooms", "2xx"))

	IncHTTP("/v1/rooms", "2xx")

	assert.InDelta(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/v1/rooms", "2xx")), 0)
}
