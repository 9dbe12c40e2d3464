package forms

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sunvista/solar-site/internal/notify"
	"github.com/sunvista/solar-site/internal/storage"
	"github.com/sunvista/solar-site/internal/types"
	"github.com/sunvista/solar-site/internal/utils/response"
	"github.com/sunvista/solar-site/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// Subscribe handles POST /api/subscribe
// Signing up twice is not an error: the second call answers 200 without
// sending another email.
//
// Request body (JSON):
//
//	{ "email": "ada@example.com", "source": "footer", "leadMagnet": "buyers-guide" }
//
// Responses: 200 success, 400 validation, 500 storage/notify failure.
// ─────────────────────────────────────────────────────────────────────────────
func Subscribe(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SubscribeRequest
		ok := d.decodeAndValidate(w, r, &req, func() {
			req.Email = validation.Email(req.Email)
			req.Source = lower(req.Source)
			req.LeadMagnet = lower(req.LeadMagnet)
		})
		if !ok {
			return
		}

		err := d.Storage.CreateSubscriber(r.Context(), types.Subscriber{
			Email:      req.Email,
			Source:     req.Source,
			LeadMagnet: req.LeadMagnet,
		})
		if errors.Is(err, storage.ErrAlreadySubscribed) {
			response.WriteJSON(w, http.StatusOK, response.OK("You're already subscribed. Thanks for being with us!"))
			return
		}
		if err != nil {
			d.fail(w, r, "store", err)
			return
		}

		if err := d.send(r.Context(), notify.Welcome(d.Site, req)); err != nil {
			d.fail(w, r, "notify", err)
			return
		}

		d.log().Info("newsletter subscription", slog.String("source", req.Source))

		msg := "Thanks for subscribing!"
		if req.LeadMagnet != "" {
			msg = "Thanks for subscribing! Your download link is on its way."
		}
		response.WriteJSON(w, http.StatusOK, response.OK(msg))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Unsubscribe handles POST /api/unsubscribe
// Unknown addresses get the same answer as known ones.
//
// Request body (JSON):
//
//	{ "email": "ada@example.com" }
//
// Responses: 200 success, 400 validation, 500 storage failure.
// ─────────────────────────────────────────────────────────────────────────────
func Unsubscribe(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UnsubscribeRequest
		ok := d.decodeAndValidate(w, r, &req, func() {
			req.Email = validation.Email(req.Email)
		})
		if !ok {
			return
		}

		err := d.Storage.DeleteSubscriber(r.Context(), req.Email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			d.fail(w, r, "store", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.OK("You have been unsubscribed."))
	}
}
