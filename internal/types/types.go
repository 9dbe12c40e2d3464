// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles:
// handlers, storage and notify can all import types without depending
// on each other.
//
// Struct tags serve two purposes:
//
//  1. json:"..."     controls the field name on the wire.
//  2. validate:"..." rules checked by the go-playground/validator package.
//     The custom tags (phone, zipcode, nohtml) are registered in
//     internal/validation.
package types

import (
	"encoding/json"
	"time"

	"github.com/sunvista/solar-site/internal/roi"
)

// LeadKind names the form a lead came from.
type LeadKind string

const (
	KindContact       LeadKind = "contact"
	KindDesignRequest LeadKind = "design-request"
	KindROIReport     LeadKind = "roi-report"
)

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name        string `json:"name"        validate:"required,max=100,nohtml"`
	Email       string `json:"email"       validate:"required,email,max=254"`
	Phone       string `json:"phone"       validate:"omitempty,phone"`
	ProjectType string `json:"projectType" validate:"omitempty,oneof=residential commercial battery ev-charging other"`
	Message     string `json:"message"     validate:"required,min=10,max=5000"`
}

// DesignRequest is the body of POST /api/design-request.
type DesignRequest struct {
	Name        string  `json:"name"        validate:"required,max=100,nohtml"`
	Email       string  `json:"email"       validate:"required,email,max=254"`
	Phone       string  `json:"phone"       validate:"required,phone"`
	Address     string  `json:"address"     validate:"required,max=200,nohtml"`
	ZipCode     string  `json:"zipCode"     validate:"required,zipcode"`
	ProjectType string  `json:"projectType" validate:"required,oneof=residential commercial battery ev-charging other"`
	RoofType    string  `json:"roofType"    validate:"omitempty,oneof=asphalt-shingle metal tile flat other"`
	MonthlyBill float64 `json:"monthlyBill" validate:"omitempty,gt=0,lte=100000"`
	Timeline    string  `json:"timeline"    validate:"omitempty,oneof=asap 1-3-months 3-6-months exploring"`
	Message     string  `json:"message"     validate:"max=5000"`
}

// ROIReportRequest is the body of POST /api/send-roi-report, the
// calculator's lead capture. Estimate is whatever the browser computed;
// the server recomputes it and never trusts this value.
type ROIReportRequest struct {
	Name        string        `json:"name"        validate:"max=100,nohtml"`
	MonthlyBill float64       `json:"monthlyBill" validate:"required,gt=0,lte=100000"`
	ZipCode     string        `json:"zipCode"     validate:"required,zipcode"`
	Email       string        `json:"email"       validate:"required,email,max=254"`
	Estimate    *roi.Estimate `json:"estimate,omitempty" validate:"-"`
}

// SubscribeRequest is the body of POST /api/subscribe.
type SubscribeRequest struct {
	Email      string `json:"email"      validate:"required,email,max=254"`
	Source     string `json:"source"     validate:"max=64,nohtml"`
	LeadMagnet string `json:"leadMagnet" validate:"max=64,nohtml"`
}

// UnsubscribeRequest is the body of POST /api/unsubscribe.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// Lead is a recorded form submission.
type Lead struct {
	ID        int64           `json:"id"`
	Kind      LeadKind        `json:"kind"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	ZipCode   string          `json:"zipCode,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"requestId"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Subscriber is a newsletter sign-up.
type Subscriber struct {
	Email      string    `json:"email"`
	Source     string    `json:"source,omitempty"`
	LeadMagnet string    `json:"leadMagnet,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
