package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInit_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestPointOperationsTotal_Counts(t *testing.T) {
	before := testutil.ToFloat64(PointOperationsTotal.WithLabelValues("CHARGE", ResultSuccess))

	PointOperationsTotal.WithLabelValues("CHARGE", ResultSuccess).Inc()

	after := testutil.ToFloat64(PointOperationsTotal.WithLabelValues("CHARGE", ResultSuccess))
	assert.Equal(t, before+1, after)
}
