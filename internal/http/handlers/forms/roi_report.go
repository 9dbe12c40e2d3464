package forms

import (
	"log/slog"
	"net/http"

	"github.com/sunvista/solar-site/internal/notify"
	"github.com/sunvista/solar-site/internal/roi"
	"github.com/sunvista/solar-site/internal/types"
	"github.com/sunvista/solar-site/internal/utils/response"
	"github.com/sunvista/solar-site/internal/validation"
)

type reportResponse struct {
	response.Response
	Estimate roi.Estimate `json:"estimate"`
}

// ─────────────────────────────────────────────────────────────────────────────
// SendROIReport handles POST /api/send-roi-report
// The calculator's lead capture. The estimate is always recomputed here;
// whatever the browser sent in "estimate" is only compared for logging.
//
// Request body (JSON):
//
//	{ "name": "Ada", "email": "ada@example.com", "monthlyBill": 150,
//	  "zipCode": "85001", "estimate": { ... } }
//
// Responses: 200 success with "estimate", 400 validation, 500 storage/notify
// failure.
// ─────────────────────────────────────────────────────────────────────────────
func SendROIReport(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ROIReportRequest
		ok := d.decodeAndValidate(w, r, &req, func() {
			req.Name = validation.Line(req.Name)
			req.Email = validation.Email(req.Email)
			req.ZipCode = validation.Line(req.ZipCode)
		})
		if !ok {
			return
		}

		est, err := roi.EstimateSavings(req.MonthlyBill, req.ZipCode)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(
				[]validation.FieldError{{Field: "monthlyBill", Message: err.Error()}}))
			return
		}

		if req.Estimate != nil && req.Estimate.AnnualSavings != est.AnnualSavings {
			d.log().Debug("client estimate differs",
				slog.Float64("client_annual_savings", req.Estimate.AnnualSavings),
				slog.Float64("server_annual_savings", est.AnnualSavings))
		}
		req.Estimate = &est

		id, err := d.saveLead(r.Context(), types.Lead{
			Kind:    types.KindROIReport,
			Name:    req.Name,
			Email:   req.Email,
			ZipCode: req.ZipCode,
		}, req)
		if err != nil {
			d.fail(w, r, "store", err)
			return
		}

		err = d.send(r.Context(),
			notify.ROIReport(d.Site, req, est),
			notify.ROILeadNotification(d.Site, req, est),
		)
		if err != nil {
			d.fail(w, r, "notify", err)
			return
		}

		d.log().Info("roi report sent", slog.Int64("lead_id", id))
		response.WriteJSON(w, http.StatusOK, reportResponse{
			Response: response.OK("Your savings report is on its way. Check your inbox!"),
			Estimate: est,
		})
	}
}
