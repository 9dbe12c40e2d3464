package calculator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	rec := httptest.NewRecorder()
	Estimate().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/estimate?bill=150&zip=85001", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body estimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, 1800.0, body.Estimate.AnnualSavings)
	require.Equal(t, 5.8, body.Estimate.PeakSunHours)
}

func TestEstimate_BadInput(t *testing.T) {
	for _, q := range []string{"", "?bill=abc", "?bill=0", "?bill=-3", "?bill=100&zip=12", "?bill=100&zip=12345x6789"} {
		rec := httptest.NewRecorder()
		Estimate().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/estimate"+q, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}
