// Package site renders the marketing pages from html/template layouts and
// a small component library (banner, CTA, testimonials, pricing table,
// sticky CTA, analytics tags).
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sunvista/solar-site/internal/analytics"
	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/experiment"
	"github.com/sunvista/solar-site/internal/roi"
	"github.com/sunvista/solar-site/internal/utils/format"
	"github.com/sunvista/solar-site/internal/validation"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Experiments the pages read.
const (
	HeroExperiment    = "hero-cta"
	PricingExperiment = "pricing-layout"
)

type page struct {
	name  string
	title string
}

var pages = map[string]page{
	"/":               {"home", "Independent Solar Design"},
	"/pricing":        {"pricing", "Pricing"},
	"/contact":        {"contact", "Contact Us"},
	"/design-request": {"design-request", "Request a Custom Design"},
	"/calculator":     {"calculator", "Solar Savings Calculator"},
	"/thank-you":      {"thank-you", "Thank You"},
	"/unsubscribe":    {"unsubscribe", "Unsubscribe"},
}

// PageData is passed to every template.
type PageData struct {
	Title     string
	Path      string
	Site      config.Site
	Analytics config.Analytics
	Client    analytics.Client
	Year      int

	Banner       *Banner
	Hero         CTA
	HeroVariant  string
	ClosingCTA   CTA
	Testimonials []Testimonial
	Plans        []Plan
	PlanLayout   string

	Calculator CalculatorData

	// Exposures lists experiment=variant pairs for exposure beacons.
	Exposures []experiment.Assignment
}

// CalculatorData drives the server-rendered calculator.
type CalculatorData struct {
	Bill     string
	Zip      string
	Estimate *roi.Estimate
	Errors   []validation.FieldError
}

// Site holds the parsed templates.
type Site struct {
	cfg       config.Site
	analytics config.Analytics
	bucketer  *experiment.Bucketer
	log       *slog.Logger
	templates map[string]*template.Template
	now       func() time.Time
}

var funcs = template.FuncMap{
	"money": func(v float64) string {
		return format.Money(v, 0)
	},
	"num": func(v float64, places int) string {
		return format.Number(v, places)
	},
	"active": func(current, path string) bool {
		return current == path
	},
}

// New parses every page against the shared layout and components.
func New(cfg config.Site, tags config.Analytics, b *experiment.Bucketer, log *slog.Logger) (*Site, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html", "templates/components/*.html")
	if err != nil {
		return nil, fmt.Errorf("site: parse layout: %w", err)
	}

	s := &Site{
		cfg:       cfg,
		analytics: tags,
		bucketer:  b,
		log:       log,
		templates: make(map[string]*template.Template, len(pages)+1),
		now:       time.Now,
	}

	names := []string{"not-found"}
	for _, p := range pages {
		names = append(names, p.name)
	}
	for _, name := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("site: clone layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/pages/"+name+".html"); err != nil {
			return nil, fmt.Errorf("site: parse page %s: %w", name, err)
		}
		s.templates[name] = t
	}

	return s, nil
}

// Static serves the embedded assets under /static/.
func Static() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// ServeHTTP renders the page for r.URL.Path, or the 404 page.
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	p, ok := pages[path]
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", s.data(r, "Page Not Found"))
		return
	}

	data := s.data(r, p.title)

	switch p.name {
	case "home":
		data.Banner = &defaultBanner
		data.HeroVariant = s.variant(w, r, &data, HeroExperiment, "control")
		hero, ok := heroCTAs[data.HeroVariant]
		if !ok {
			hero = heroCTAs["control"]
		}
		data.Hero = hero
	case "pricing":
		data.PlanLayout = s.variant(w, r, &data, PricingExperiment, "table")
	case "calculator":
		data.Calculator = s.calculator(r)
	}

	s.render(w, http.StatusOK, p.name, data)
}

func (s *Site) data(r *http.Request, title string) PageData {
	return PageData{
		Title:        title,
		Path:         r.URL.Path,
		Site:         s.cfg,
		Analytics:    s.analytics,
		Client:       analytics.ClientConfig(),
		Year:         s.now().Year(),
		ClosingCTA:   closingCTA,
		Testimonials: testimonials,
		Plans:        plans,
	}
}

// variant buckets the visitor, falling back to def when the experiment is
// not configured.
func (s *Site) variant(w http.ResponseWriter, r *http.Request, data *PageData, name, def string) string {
	if s.bucketer == nil {
		return def
	}
	a, err := s.bucketer.GetExperimentVariant(w, r, name)
	if err != nil {
		return def
	}
	data.Exposures = append(data.Exposures, a)
	return a.Variant
}

func (s *Site) calculator(r *http.Request) CalculatorData {
	q := r.URL.Query()
	c := CalculatorData{
		Bill: strings.TrimSpace(q.Get("bill")),
		Zip:  strings.TrimSpace(q.Get("zip")),
	}
	if c.Bill == "" {
		return c
	}

	bill, err := strconv.ParseFloat(c.Bill, 64)
	if err != nil || bill <= 0 || bill > 100000 {
		c.Errors = append(c.Errors, validation.FieldError{Field: "bill", Message: "Enter your average monthly bill in dollars"})
	}
	if c.Zip != "" && !validation.ValidZip(c.Zip) {
		c.Errors = append(c.Errors, validation.FieldError{Field: "zip", Message: "Please enter a valid 5-digit ZIP code"})
	}
	if len(c.Errors) > 0 {
		return c
	}

	est, err := roi.EstimateSavings(bill, c.Zip)
	if err != nil {
		c.Errors = append(c.Errors, validation.FieldError{Field: "bill", Message: err.Error()})
		return c
	}
	c.Estimate = &est
	return c
}

func (s *Site) render(w http.ResponseWriter, status int, name string, data PageData) {
	var buf bytes.Buffer
	if err := s.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.Error("render page failed",
			slog.String("page", name),
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
