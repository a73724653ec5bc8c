package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railbooking/internal/identity"
	"railbooking/internal/storage"
)

func newTestStore(t *testing.T) (*identity.Store, *storage.MemoryStore) {
	t.Helper()
	docs := storage.NewMemoryStore()
	store, err := identity.NewStore(docs, "users.json")
	require.NoError(t, err)
	return store, docs
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Register("A@B.com", "secret1"))

	assert.True(t, store.Exists("a@b.com"), "email is case-normalized")
	assert.True(t, store.Exists("A@B.COM"))

	assert.NoError(t, store.Authenticate("a@b.com", "secret1"))
	assert.ErrorIs(t, store.Authenticate("a@b.com", "wrong"), identity.ErrBadCredentials)
	assert.ErrorIs(t, store.Authenticate("other@b.com", "secret1"), identity.ErrBadCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Register("a@b.com", "secret1"))
	err := store.Register("A@B.com", "secret2")
	assert.ErrorIs(t, err, identity.ErrAlreadyExists)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.Register("not-an-email", "secret1"), identity.ErrInvalidEmail)
	assert.ErrorIs(t, store.Register("missing@domain", "secret1"), identity.ErrInvalidEmail)
}

func TestPasswordIsNotStoredInPlaintext(t *testing.T) {
	store, docs := newTestStore(t)
	require.NoError(t, store.Register("a@b.com", "secret1"))

	var raw map[string]struct {
		Password string `json:"password"`
	}
	require.NoError(t, docs.Load("users.json", &raw))
	assert.NotEqual(t, "secret1", raw["a@b.com"].Password)
	assert.NotEmpty(t, raw["a@b.com"].Password)
	assert.NoError(t, store.Authenticate("a@b.com", "secret1"))
}

func TestTicketListMaintenance(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Register("a@b.com", "secret1"))

	require.NoError(t, store.AppendTicket("a@b.com", "1111111111111"))
	require.NoError(t, store.AppendTicket("a@b.com", "2222222222222"))

	pnrs, err := store.Tickets("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"1111111111111", "2222222222222"}, pnrs, "booking order is preserved")

	require.NoError(t, store.RemoveTicket("a@b.com", "1111111111111"))
	// Removing an absent PNR is a no-op, not an error.
	require.NoError(t, store.RemoveTicket("a@b.com", "9999999999999"))

	pnrs, _ = store.Tickets("a@b.com")
	assert.Equal(t, []string{"2222222222222"}, pnrs)

	require.NoError(t, store.ClearTickets("a@b.com"))
	pnrs, _ = store.Tickets("a@b.com")
	assert.Empty(t, pnrs)
}

func TestTicketOpsOnUnknownAccount(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.AppendTicket("nobody@b.com", "1"), identity.ErrNotFound)
	assert.ErrorIs(t, store.ClearTickets("nobody@b.com"), identity.ErrNotFound)
	_, err := store.Tickets("nobody@b.com")
	assert.ErrorIs(t, err, identity.ErrNotFound)
}

func TestStateSurvivesReload(t *testing.T) {
	docs := storage.NewMemoryStore()
	store, err := identity.NewStore(docs, "users.json")
	require.NoError(t, err)

	require.NoError(t, store.Register("a@b.com", "secret1"))
	require.NoError(t, store.AppendTicket("a@b.com", "1234567890123"))

	reloaded, err := identity.NewStore(docs, "users.json")
	require.NoError(t, err)
	assert.True(t, reloaded.Exists("a@b.com"))
	assert.NoError(t, reloaded.Authenticate("a@b.com", "secret1"))

	pnrs, err := reloaded.Tickets("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890123"}, pnrs)
}
