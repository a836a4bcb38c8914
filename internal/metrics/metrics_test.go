package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCommit(t *testing.T) {
	okBefore := testutil.ToFloat64(Commits.WithLabelValues("document", ResultOK))
	errBefore := testutil.ToFloat64(Commits.WithLabelValues("document", ResultError))

	ObserveCommit("document", nil)
	ObserveCommit("document", errors.New("conflict"))
	ObserveCommit("document", nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(Commits.WithLabelValues("document", ResultOK)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(Commits.WithLabelValues("document", ResultError)))
}
