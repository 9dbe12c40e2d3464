// Package leads serves the admin read-back of recorded form submissions.
// Both routes require the X-Admin-Token header to match the configured
// admin token; with no token configured they always answer 401.
package leads

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sunvista/solar-site/internal/storage"
	"github.com/sunvista/solar-site/internal/types"
	"github.com/sunvista/solar-site/internal/utils/response"
)

// TokenHeader carries the admin token.
const TokenHeader = "X-Admin-Token"

const maxLimit = 500

// RequireToken rejects requests without the admin token.
func RequireToken(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(TokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.WriteJSON(w, http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/leads?kind=contact&limit=50
// Returns a JSON array, newest first; [] (not null) when empty.
//
// Responses: 200 success, 400 bad kind or limit, 401 missing token,
// 500 storage failure.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := 50
		if s := q.Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				response.WriteJSON(w, http.StatusBadRequest,
					response.RequestError("limit must be a positive integer"))
				return
			}
			limit = min(n, maxLimit)
		}

		kind := types.LeadKind(q.Get("kind"))
		switch kind {
		case "", types.KindContact, types.KindDesignRequest, types.KindROIReport:
		default:
			response.WriteJSON(w, http.StatusBadRequest,
				response.RequestError("unknown lead kind"))
			return
		}

		leads, err := st.GetLeads(r.Context(), kind, limit)
		if err != nil {
			slog.Error("error listing leads", slog.String("error", err.Error()))
			response.InternalError(w)
			return
		}

		response.WriteJSON(w, http.StatusOK, leads)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/leads/{id}
//
// Responses: 200 the lead, 400 id is not an integer, 401 missing token,
// 404 no such lead, 500 storage failure.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.RequestError("invalid id: must be an integer"))
			return
		}

		lead, err := st.GetLeadByID(r.Context(), intID)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Error("Lead not found"))
			return
		}
		if err != nil {
			slog.Error("error getting lead",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.InternalError(w)
			return
		}

		response.WriteJSON(w, http.StatusOK, lead)
	}
}
