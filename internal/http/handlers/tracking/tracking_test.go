package tracking

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/experiment"
	"github.com/sunvista/solar-site/internal/validation"
)

func bucketer() *experiment.Bucketer {
	return experiment.NewBucketer([]config.Experiment{
		{Name: "hero-cta", Variants: []string{"control", "free-design"}},
	}, false)
}

func TestExperiment(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /api/experiments/{name}", Experiment(bucketer()))

	req := httptest.NewRequest(http.MethodGet, "/api/experiments/hero-cta", nil)
	req.AddCookie(&http.Cookie{Name: "exp_hero-cta", Value: "free-design"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"experiment":"hero-cta","variant":"free-design","new":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/experiments/hero-cta", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/experiments/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsConfig(t *testing.T) {
	rec := httptest.NewRecorder()
	AnalyticsConfig(config.Analytics{GA4MeasurementID: "G-1"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.JSONEq(t, `{"ga4MeasurementId":"G-1"}`, rec.Body.String())
}

func postEvent(body string) (*httptest.ResponseRecorder, string) {
	var buf bytes.Buffer
	h := Events(validation.New(), bucketer(), slog.New(slog.NewJSONHandler(&buf, nil)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body)))
	return rec, buf.String()
}

func TestEvents_ScrollDepthSnapsToMilestone(t *testing.T) {
	rec, logged := postEvent(`{"event":"scroll_depth","page":"/pricing","value":82}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, logged, `"value":75`)
}

func TestEvents_Rejections(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"bad json":       `{`,
		"unknown event":  `{"event":"hover","page":"/"}`,
		"relative page":  `{"event":"page_view","page":"pricing"}`,
		"shallow scroll": `{"event":"scroll_depth","page":"/","value":10}`,
		"no experiment":  `{"event":"experiment_exposure","page":"/"}`,
		"bad variant":    `{"event":"experiment_exposure","page":"/","experiment":"hero-cta","variant":"nope"}`,
		"html label":     `{"event":"cta_click","page":"/","label":"<script>x</script>"}`,
	}
	for name, body := range cases {
		rec, _ := postEvent(body)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)

		var env struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), name)
		require.False(t, env.Success, name)
	}
}

func TestEvents_ExposureAccepted(t *testing.T) {
	rec, logged := postEvent(`{"event":"experiment_exposure","page":"/","experiment":"hero-cta","variant":"control"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, logged, `"variant":"control"`)
}

func TestEvents_RejectionNamesField(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"missing experiment": {`{"event":"experiment_exposure","page":"/","variant":"control"}`, "experiment"},
		"missing variant":    {`{"event":"experiment_exposure","page":"/","experiment":"hero-cta"}`, "variant"},
		"shallow scroll":     {`{"event":"scroll_depth","page":"/","value":10}`, "value"},
	}
	for name, tc := range cases {
		rec, _ := postEvent(tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)

		var env struct {
			Errors []validation.FieldError `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), name)
		require.Len(t, env.Errors, 1, name)
		require.Equal(t, tc.field, env.Errors[0].Field, name)
	}
}
