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
// Contact handles POST /api/contact
//
// Request body (JSON):
//
//	{ "name": "Ada", "email": "ada@example.com", "phone": "555-123-4567",
//	  "projectType": "residential", "message": "..." }
//
// Responses: 200 success, 400 validation, 500 storage/notify failure.
// ─────────────────────────────────────────────────────────────────────────────
func Contact(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ContactRequest
		ok := d.decodeAndValidate(w, r, &req, func() {
			req.Name = validation.Line(req.Name)
			req.Email = validation.Email(req.Email)
			req.Phone = validation.Line(req.Phone)
			req.ProjectType = lower(req.ProjectType)
			req.Message = validation.Text(req.Message)
		})
		if !ok {
			return
		}

		id, err := d.saveLead(r.Context(), types.Lead{
			Kind:  types.KindContact,
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		}, req)
		if err != nil {
			d.fail(w, r, "store", err)
			return
		}

		if err := d.send(r.Context(), notify.ContactNotification(d.Site, req)); err != nil {
			d.fail(w, r, "notify", err)
			return
		}

		d.log().Info("contact form received", slog.Int64("lead_id", id))
		response.WriteJSON(w, http.StatusOK,
			response.OK("Thanks for reaching out! We'll get back to you within one business day."))
	}
}
