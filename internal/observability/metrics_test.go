package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordSignupAndRemoval(t *testing.T) {
	before := testutil.ToFloat64(signupCounter.WithLabelValues("Metrics Club"))

	RecordSignup("Metrics Club", 3)
	require.Equal(t, before+1, testutil.ToFloat64(signupCounter.WithLabelValues("Metrics Club")))
	require.Equal(t, float64(3), testutil.ToFloat64(rosterGauge.WithLabelValues("Metrics Club")))

	RecordRemoval("Metrics Club", 2)
	require.Equal(t, float64(2), testutil.ToFloat64(rosterGauge.WithLabelValues("Metrics Club")))
}

func TestRecordRejected(t *testing.T) {
	before := testutil.ToFloat64(rejectedCounter.WithLabelValues(OperationRemove, "participant_not_found"))

	RecordRejected(OperationRemove, "participant_not_found")

	require.Equal(t, before+1, testutil.ToFloat64(rejectedCounter.WithLabelValues(OperationRemove, "participant_not_found")))
}
