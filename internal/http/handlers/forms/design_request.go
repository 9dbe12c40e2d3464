package forms

import (
	"log/slog"
	"net/http"

	"github.com/sunvista/solar-site/internal/notify"
	"github.com/sunvista/solar-site/internal/types"
	"github.com/sunvista/solar-site/internal/utils/response"
	"github.com/sunvista/solar-site/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// DesignRequest handles POST /api/design-request
// The free custom design form. Phone, address and ZIP are required here
// since a designer calls back and pulls satellite imagery for the roof.
//
// Request body (JSON):
//
//	{ "name": "Ada", "email": "ada@example.com", "phone": "555-123-4567",
//	  "address": "1 Sunny Way", "zipCode": "85001", "projectType": "residential",
//	  "roofType": "tile", "monthlyBill": 180, "timeline": "asap", "message": "..." }
//
// Responses: 200 success, 400 validation, 500 storage/notify failure.
// ─────────────────────────────────────────────────────────────────────────────
func DesignRequest(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DesignRequest
		ok := d.decodeAndValidate(w, r, &req, func() {
			req.Name = validation.Line(req.Name)
			req.Email = validation.Email(req.Email)
			req.Phone = validation.Line(req.Phone)
			req.Address = validation.Line(req.Address)
			req.ZipCode = validation.Line(req.ZipCode)
			req.ProjectType = lower(req.ProjectType)
			req.RoofType = lower(req.RoofType)
			req.Timeline = lower(req.Timeline)
			req.Message = validation.Text(req.Message)
		})
		if !ok {
			return
		}

		id, err := d.saveLead(r.Context(), types.Lead{
			Kind:    types.KindDesignRequest,
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			ZipCode: req.ZipCode,
		}, req)
		if err != nil {
			d.fail(w, r, "store", err)
			return
		}

		if err := d.send(r.Context(), notify.DesignRequestNotification(d.Site, req)); err != nil {
			d.fail(w, r, "notify", err)
			return
		}

		d.log().Info("design request received",
			slog.Int64("lead_id", id),
			slog.String("project_type", req.ProjectType))
		response.WriteJSON(w, http.StatusOK,
			response.OK("Your design request is in! A solar designer will contact you within two business days."))
	}
}
