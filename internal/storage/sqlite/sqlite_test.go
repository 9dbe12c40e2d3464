package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sunvista/solar-site/internal/storage"
	"github.com/sunvista/solar-site/internal/types"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "nested", "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAndGetLead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := db.CreateLead(ctx, types.Lead{
		Kind:      types.KindContact,
		Name:      "Ada",
		Email:     "ada@example.com",
		Phone:     "5551234567",
		Payload:   json.RawMessage(`{"message":"hi"}`),
		RequestID: "req-1",
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	lead, err := db.GetLeadByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, lead.ID)
	require.Equal(t, types.KindContact, lead.Kind)
	require.Equal(t, "Ada", lead.Name)
	require.Equal(t, "5551234567", lead.Phone)
	require.JSONEq(t, `{"message":"hi"}`, string(lead.Payload))
	require.Equal(t, "req-1", lead.RequestID)
	require.True(t, created.Equal(lead.CreatedAt))
}

func TestGetLeadByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetLeadByID(context.Background(), 42)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetLeads_FilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []types.LeadKind{types.KindContact, types.KindROIReport, types.KindContact} {
		_, err := db.CreateLead(ctx, types.Lead{
			Kind:      kind,
			Name:      "n",
			Email:     "e@example.com",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := db.GetLeads(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
	require.JSONEq(t, `{}`, string(all[0].Payload))

	contacts, err := db.GetLeads(ctx, types.KindContact, 10)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	limited, err := db.GetLeads(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	none, err := db.GetLeads(ctx, types.KindDesignRequest, 10)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestSubscribers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	sub := types.Subscriber{Email: "ada@example.com", Source: "footer"}
	require.NoError(t, db.CreateSubscriber(ctx, sub))
	require.ErrorIs(t, db.CreateSubscriber(ctx, sub), storage.ErrAlreadySubscribed)

	require.NoError(t, db.DeleteSubscriber(ctx, "ada@example.com"))
	require.ErrorIs(t, db.DeleteSubscriber(ctx, "ada@example.com"), storage.ErrNotFound)

	require.NoError(t, db.CreateSubscriber(ctx, sub))
}
