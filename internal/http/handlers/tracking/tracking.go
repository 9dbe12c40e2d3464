// Package tracking serves the analytics side of the site: tag
// configuration, beacon intake and A/B experiment assignment.
package tracking

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sunvista/solar-site/internal/analytics"
	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/experiment"
	"github.com/sunvista/solar-site/internal/http/middleware"
	"github.com/sunvista/solar-site/internal/utils/response"
	"github.com/sunvista/solar-site/internal/validation"
)

type assignmentResponse struct {
	Success bool `json:"success"`
	experiment.Assignment
}

// ─────────────────────────────────────────────────────────────────────────────
// Experiment handles GET /api/experiments/{name}
//
// Success response (200 OK):
//
//	{ "success": true, "experiment": "hero-cta", "variant": "control", "new": false }
//
// Responses: 404 unknown experiment.
// ─────────────────────────────────────────────────────────────────────────────
func Experiment(b *experiment.Bucketer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")

		a, err := b.GetExperimentVariant(w, r, name)
		if errors.Is(err, experiment.ErrUnknownExperiment) {
			response.WriteJSON(w, http.StatusNotFound, response.Error("Unknown experiment"))
			return
		}
		if err != nil {
			response.InternalError(w)
			return
		}

		response.WriteJSON(w, http.StatusOK, assignmentResponse{Success: true, Assignment: a})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// AnalyticsConfig handles GET /api/analytics/config
//
//	{ "ga4MeasurementId": "G-...", "gtmContainerId": "GTM-...", "clarityProjectId": "..." }
// ─────────────────────────────────────────────────────────────────────────────
func AnalyticsConfig(cfg config.Analytics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, cfg)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Events handles POST /api/events
// The page script's beacons. Accepted events are written to the log;
// there is no analytics store.
//
// Request body (JSON):
//
//	{ "event": "scroll_depth", "page": "/pricing", "value": 50 }
//
// Responses: 204 accepted, 400 malformed or invalid event.
// ─────────────────────────────────────────────────────────────────────────────
func Events(v *validation.Validator, b *experiment.Bucketer, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev analytics.Event
		err := json.NewDecoder(r.Body).Decode(&ev)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.RequestError("request body is empty"))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.RequestError("request body must be a valid JSON object"))
			return
		}

		ev.Label = validation.Line(ev.Label)

		errs, err := v.Struct(ev)
		if err != nil {
			response.InternalError(w)
			return
		}
		if len(errs) > 0 {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		ev, err = analytics.Normalize(ev)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(
				[]validation.FieldError{{Field: "value", Message: err.Error()}}))
			return
		}

		if ev.Event == analytics.EventExperimentExposure && !b.Has(ev.Experiment, ev.Variant) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(
				[]validation.FieldError{{Field: "variant", Message: "unknown experiment variant"}}))
			return
		}

		log.Info("analytics event",
			slog.String("event", ev.Event),
			slog.String("page", ev.Page),
			slog.Float64("value", ev.Value),
			slog.String("label", ev.Label),
			slog.String("experiment", ev.Experiment),
			slog.String("variant", ev.Variant),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)

		w.WriteHeader(http.StatusNoContent)
	}
}
