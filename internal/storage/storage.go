// Package storage defines the Storage interface: the contract the lead
// log must satisfy to work with the HTTP handlers.
//
// Handlers depend only on this interface, so tests can pass a fake and
// the SQLite backend can be swapped by changing one line in main.go.
package storage

import (
	"context"
	"errors"

	"github.com/sunvista/solar-site/internal/types"
)

var (
	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySubscribed is returned by CreateSubscriber for an address
	// that is already on the list.
	ErrAlreadySubscribed = errors.New("already subscribed")
)

// Storage is the lead log contract.
type Storage interface {
	// CreateLead records a form submission and returns its generated ID.
	CreateLead(ctx context.Context, lead types.Lead) (int64, error)

	// GetLeadByID fetches a single lead. Returns ErrNotFound if missing.
	GetLeadByID(ctx context.Context, id int64) (types.Lead, error)

	// GetLeads returns leads newest first, at most limit of them.
	// Returns an empty slice (not nil) when there are none.
	GetLeads(ctx context.Context, kind types.LeadKind, limit int) ([]types.Lead, error)

	// CreateSubscriber adds an address to the newsletter list.
	CreateSubscriber(ctx context.Context, sub types.Subscriber) error

	// DeleteSubscriber removes an address. Returns ErrNotFound if it was
	// not on the list.
	DeleteSubscriber(ctx context.Context, email string) error
}
