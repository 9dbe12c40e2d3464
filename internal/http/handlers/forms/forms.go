// Package forms contains the HTTP handlers behind the site's forms.
//
// Every handler follows the same steps:
//
//  1. decode the JSON body (400 when empty or malformed)
//  2. sanitize free-text fields
//  3. validate (400 with a field/message array)
//  4. record the lead (500 on failure)
//  5. send the notification emails (500 on failure)
//  6. answer { "success": true, "message": ... }
//
// Handlers are built by factory functions that close over their
// dependencies:
//
//	router.Handle("/api/contact", forms.Contact(deps))
package forms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/http/middleware"
	"github.com/sunvista/solar-site/internal/notify"
	"github.com/sunvista/solar-site/internal/storage"
	"github.com/sunvista/solar-site/internal/types"
	"github.com/sunvista/solar-site/internal/utils/response"
	"github.com/sunvista/solar-site/internal/validation"
)

// Deps are the collaborators shared by all form handlers.
type Deps struct {
	Storage   storage.Storage
	Notifier  notify.Notifier
	Validator *validation.Validator
	Site      config.Site
	Logger    *slog.Logger
}

func (d Deps) log() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// decodeAndValidate fills dst from the body, runs clean on it and
// validates it. It writes the 400/500 itself and returns false when the
// handler should stop.
func (d Deps) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, clean func()) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			response.WriteJSON(w, http.StatusBadRequest, response.RequestError("request body is empty"))
		case errors.As(err, &maxErr):
			response.WriteJSON(w, http.StatusBadRequest, response.RequestError("request body is too large"))
		default:
			response.WriteJSON(w, http.StatusBadRequest, response.RequestError("request body must be a valid JSON object"))
		}
		return false
	}

	clean()

	errs, err := d.Validator.Struct(dst)
	if err != nil {
		d.fail(w, r, "validate", err)
		return false
	}
	if len(errs) > 0 {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
		return false
	}
	return true
}

// fail logs an unexpected error and writes the generic 500.
func (d Deps) fail(w http.ResponseWriter, r *http.Request, step string, err error) {
	d.log().Error("form submission failed",
		slog.String("path", r.URL.Path),
		slog.String("step", step),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)
	response.InternalError(w)
}

// saveLead records a submission with its full sanitized body as payload.
func (d Deps) saveLead(ctx context.Context, lead types.Lead, body any) (int64, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	lead.Payload = payload
	lead.RequestID = middleware.GetRequestID(ctx)
	return d.Storage.CreateLead(ctx, lead)
}

func (d Deps) send(ctx context.Context, msgs ...notify.Message) error {
	for _, m := range msgs {
		if err := d.Notifier.Send(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
