// Package calculator exposes the ROI formula to the page script.
package calculator

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sunvista/solar-site/internal/roi"
	"github.com/sunvista/solar-site/internal/utils/response"
	"github.com/sunvista/solar-site/internal/validation"
)

type estimateResponse struct {
	Success  bool         `json:"success"`
	Estimate roi.Estimate `json:"estimate"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Estimate handles GET /api/estimate?bill=150&zip=85001
// No lead is captured; POST /api/send-roi-report does that.
//
// Success response (200 OK):
//
//	{ "success": true, "estimate": { "annualSavings": 1800, ... } }
//
// Responses: 400 bad bill or ZIP.
// ─────────────────────────────────────────────────────────────────────────────
func Estimate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var errs []validation.FieldError

		bill, err := strconv.ParseFloat(strings.TrimSpace(q.Get("bill")), 64)
		if err != nil || bill <= 0 || bill > 100000 {
			errs = append(errs, validation.FieldError{Field: "bill", Message: roi.ErrInvalidBill.Error()})
		}

		zip := strings.TrimSpace(q.Get("zip"))
		if zip != "" && !validation.ValidZip(zip) {
			errs = append(errs, validation.FieldError{Field: "zip", Message: "Please enter a valid 5-digit ZIP code"})
		}

		if len(errs) > 0 {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		est, err := roi.EstimateSavings(bill, zip)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(
				[]validation.FieldError{{Field: "bill", Message: err.Error()}}))
			return
		}

		response.WriteJSON(w, http.StatusOK, estimateResponse{Success: true, Estimate: est})
	}
}
