// Package analytics holds the beacon events the page script posts back
// and the scroll-depth and exit-intent thresholds both sides agree on.
package analytics

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Event names accepted by POST /api/events.
const (
	EventPageView           = "page_view"
	EventScrollDepth        = "scroll_depth"
	EventExitIntent         = "exit_intent"
	EventCTAClick           = "cta_click"
	EventExperimentExposure = "experiment_exposure"
	EventFormSubmit         = "form_submit"
)

// Event is one beacon from the page script.
type Event struct {
	Event      string  `json:"event"      validate:"required,oneof=page_view scroll_depth exit_intent cta_click experiment_exposure form_submit"`
	Page       string  `json:"page"       validate:"required,startswith=/,max=256"`
	Value      float64 `json:"value"      validate:"gte=0,lte=100"`
	Label      string  `json:"label"      validate:"max=128,nohtml"`
	Experiment string  `json:"experiment" validate:"required_if=Event experiment_exposure,max=64"`
	Variant    string  `json:"variant"    validate:"required_if=Event experiment_exposure,max=64"`
}

// ErrBelowFirstMilestone rejects scroll-depth beacons that have not
// reached the first milestone.
var ErrBelowFirstMilestone = errors.New("scroll depth below first milestone")

// ScrollMilestones are the depths, in percent, reported once per page view.
var ScrollMilestones = []int{25, 50, 75, 90, 100}

// Milestone returns the highest milestone reached at percent.
func Milestone(percent float64) (int, error) {
	reached := 0
	for _, m := range ScrollMilestones {
		if percent >= float64(m) {
			reached = m
		}
	}
	if reached == 0 {
		return 0, ErrBelowFirstMilestone
	}
	return reached, nil
}

// Exit intent fires when the pointer leaves through the top edge of the
// viewport after the visitor has been on the page a while, at most once
// per session.
const (
	ExitIntentTopPx    = 10
	ExitIntentMinDwell = 5 * time.Second
)

// Client carries the thresholds the page script needs. The layout renders
// it as data attributes on <body>, so the script never hard-codes them.
type Client struct {
	ScrollMilestones string // comma separated, ascending
	ExitIntentTopPx  int
	ExitIntentDwell  int64 // milliseconds
}

// ClientConfig returns the thresholds for the page script.
func ClientConfig() Client {
	ms := make([]string, len(ScrollMilestones))
	for i, m := range ScrollMilestones {
		ms[i] = strconv.Itoa(m)
	}
	return Client{
		ScrollMilestones: strings.Join(ms, ","),
		ExitIntentTopPx:  ExitIntentTopPx,
		ExitIntentDwell:  ExitIntentMinDwell.Milliseconds(),
	}
}

// Normalize snaps a scroll-depth value to the highest milestone crossed.
// Other events pass through unchanged.
func Normalize(ev Event) (Event, error) {
	if ev.Event == EventScrollDepth {
		m, err := Milestone(ev.Value)
		if err != nil {
			return Event{}, err
		}
		ev.Value = float64(m)
	}
	return ev, nil
}
