package reports

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/api/reports/sales?start=2025-03-01T00:00:00Z&end=2025-03-31T23:59:59Z", nil)
	w := httptest.NewRecorder()

	start, end, ok := dateRange(w, r)
	require.True(t, ok)
	assert.Equal(t, 2025, start.Year())
	assert.True(t, end.After(start))
}

func TestDateRangeMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/reports/sales?start=2025-03-01T00:00:00Z", nil)
	w := httptest.NewRecorder()

	_, _, ok := dateRange(w, r)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
