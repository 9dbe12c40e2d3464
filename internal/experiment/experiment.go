// Package experiment buckets visitors into A/B variants.
//
// A visitor is assigned a random variant the first time an experiment is
// evaluated for them; the choice is persisted in a cookie so later
// requests see the same variant.
package experiment

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"slices"
	"time"

	"github.com/sunvista/solar-site/internal/config"
)

// ErrUnknownExperiment is returned for an experiment name that is not
// configured.
var ErrUnknownExperiment = errors.New("unknown experiment")

// CookiePrefix precedes the experiment name in the cookie key.
const CookiePrefix = "exp_"

const cookieMaxAge = 365 * 24 * time.Hour

// Assignment is the variant a visitor sees for one experiment.
type Assignment struct {
	Experiment string `json:"experiment"`
	Variant    string `json:"variant"`
	// New is true when the variant was assigned on this request.
	New bool `json:"new"`
}

// Bucketer holds the configured experiments. It is read-only after
// construction and safe for concurrent use.
type Bucketer struct {
	experiments map[string][]string
	pick        func(n int) int
	secure      bool
}

// NewBucketer indexes the configured experiments by name.
func NewBucketer(exps []config.Experiment, secureCookies bool) *Bucketer {
	m := make(map[string][]string, len(exps))
	for _, e := range exps {
		m[e.Name] = slices.Clone(e.Variants)
	}
	return &Bucketer{experiments: m, pick: rand.IntN, secure: secureCookies}
}

// GetExperimentVariant returns the visitor's variant for name, assigning
// and persisting one when the request carries none (or an invalid one).
func (b *Bucketer) GetExperimentVariant(w http.ResponseWriter, r *http.Request, name string) (Assignment, error) {
	variants, ok := b.experiments[name]
	if !ok {
		return Assignment{}, ErrUnknownExperiment
	}

	if c, err := r.Cookie(CookiePrefix + name); err == nil && slices.Contains(variants, c.Value) {
		return Assignment{Experiment: name, Variant: c.Value}, nil
	}

	variant := variants[b.pick(len(variants))]
	http.SetCookie(w, &http.Cookie{
		Name:     CookiePrefix + name,
		Value:    variant,
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		HttpOnly: false, // page script reads it for analytics exposure events
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return Assignment{Experiment: name, Variant: variant, New: true}, nil
}

// Has reports whether the (experiment, variant) pair is configured.
func (b *Bucketer) Has(name, variant string) bool {
	variants, ok := b.experiments[name]
	return ok && slices.Contains(variants, variant)
}
