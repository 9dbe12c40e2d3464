package main

import (
	"log/slog"
	"net/http"

	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/experiment"
	"github.com/sunvista/solar-site/internal/http/handlers/calculator"
	"github.com/sunvista/solar-site/internal/http/handlers/forms"
	"github.com/sunvista/solar-site/internal/http/handlers/leads"
	"github.com/sunvista/solar-site/internal/http/handlers/tracking"
	"github.com/sunvista/solar-site/internal/http/middleware"
	"github.com/sunvista/solar-site/internal/site"
	"github.com/sunvista/solar-site/internal/utils/response"
)

const maxBodyBytes = 64 << 10

// newRouter registers every route.
//
// Route table:
//
//	POST /api/contact             → contact form
//	POST /api/design-request      → custom design request
//	POST /api/send-roi-report     → email the calculator result
//	POST /api/subscribe           → newsletter / lead magnet
//	POST /api/unsubscribe         → newsletter opt-out
//	POST /api/events              → analytics beacons
//	GET  /api/estimate            → ROI calculator
//	GET  /api/experiments/{name}  → A/B variant for this visitor
//	GET  /api/analytics/config    → tag IDs for the page script
//	GET  /api/leads[/{id}]        → lead read-back (admin token)
//	GET  /health                  → liveness
//	GET  /static/…                → embedded assets
//	GET  /…                       → rendered pages
//
// API routes are registered without a method so AllowMethods answers
// every other method with the JSON 405 body. A method pattern such as
// "POST /api/contact" next to the "/" page catch-all would also conflict
// with it on ServeMux.
func newRouter(cfg *config.Config, deps forms.Deps, bucketer *experiment.Bucketer, pages http.Handler, log *slog.Logger) *http.ServeMux {
	router := http.NewServeMux()

	post := func(h http.Handler) http.Handler {
		return middleware.Chain(h, middleware.AllowMethods(http.MethodPost), middleware.LimitBody(maxBodyBytes))
	}
	get := func(h http.Handler) http.Handler {
		return middleware.Chain(h, middleware.AllowMethods(http.MethodGet, http.MethodHead))
	}

	router.Handle("/api/contact", post(forms.Contact(deps)))
	router.Handle("/api/design-request", post(forms.DesignRequest(deps)))
	router.Handle("/api/send-roi-report", post(forms.SendROIReport(deps)))
	router.Handle("/api/subscribe", post(forms.Subscribe(deps)))
	router.Handle("/api/unsubscribe", post(forms.Unsubscribe(deps)))
	router.Handle("/api/events", post(tracking.Events(deps.Validator, bucketer, log)))

	router.Handle("/api/estimate", get(calculator.Estimate()))
	router.Handle("/api/experiments/{name}", get(tracking.Experiment(bucketer)))
	router.Handle("/api/analytics/config", get(tracking.AnalyticsConfig(cfg.Analytics)))
	router.Handle("/api/leads", leads.RequireToken(cfg.AdminToken, get(leads.GetList(deps.Storage))))
	router.Handle("/api/leads/{id}", leads.RequireToken(cfg.AdminToken, get(leads.GetByID(deps.Storage))))

	router.Handle("/health", get(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})))
	router.Handle("/static/", get(site.Static()))
	router.Handle("/", get(pages))

	return router
}

// withMiddleware wraps h in the global chain. Logger sits outside Recover
// so a request that panics still gets its access-log line with status 500.
func withMiddleware(h http.Handler, corsOrigins []string, log *slog.Logger) http.Handler {
	return middleware.Chain(h,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recover(log),
		middleware.CORS(corsOrigins),
	)
}
