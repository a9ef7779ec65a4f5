package posdev_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/auth"
	"github.com/dapurlink/backoffice/internal/category"
	"github.com/dapurlink/backoffice/internal/menu"
	"github.com/dapurlink/backoffice/internal/payment"
	"github.com/dapurlink/backoffice/internal/posdev"
)

// newEnv spins up a posdev server and a logged-in client against it. The
// whole stack is real: JWT login, bearer header, envelope decoding.
func newEnv(t *testing.T) *api.Client {
	t.Helper()

	server := posdev.NewServer(posdev.NewStore(), "test-secret")
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	client := api.New(srv.URL + "/api/v1")

	m := auth.NewManager(client, filepath.Join(t.TempDir(), "session.json"))
	_, err := m.Login(context.Background(), "dev@posdev.local", "dev")
	require.NoError(t, err)

	return client
}

func TestServer_RejectsMissingToken(t *testing.T) {
	server := posdev.NewServer(posdev.NewStore(), "test-secret")
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	client := api.New(srv.URL + "/api/v1")

	_, _, err := category.NewService(client).List(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestServer_CategoryRoundTrip(t *testing.T) {
	client := newEnv(t)
	svc := category.NewService(client)
	ctx := context.Background()

	items, total, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(items), total)
	require.NotEmpty(t, items)

	created, err := svc.Create(ctx, category.SaveParams{
		Name:        "Desserts",
		Description: "Cake and ice cream",
		Active:      true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, category.TypeFood, created.Type, "type inferred from description when the server sends none")

	// Whole-record PUT: a field left out of the update is gone, not kept.
	updated, err := svc.Update(ctx, created.ID, category.SaveParams{
		Name:   "Desserts",
		Active: false,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Description)
	assert.False(t, updated.Active)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Update(ctx, created.ID, category.SaveParams{Name: "ghost"})
	require.Error(t, err, "deleted category is gone for real")
}

func TestServer_MenuItemLifecycle(t *testing.T) {
	client := newEnv(t)
	svc := menu.NewService(client)
	ctx := context.Background()

	all, _, err := svc.List(ctx)
	require.NoError(t, err)

	seeded := len(all)
	require.GreaterOrEqual(t, seeded, 3, "fixtures include an inactive item")

	created, err := svc.Create(ctx, menu.SaveParams{
		Name:        "Es Jeruk",
		Description: "Fresh orange juice",
		Price:       12000,
		Stock:       15,
		CategoryID:  1,
		Active:      true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byCategory, _, err := svc.ByCategory(ctx, 1)
	require.NoError(t, err)

	found := false
	for _, p := range byCategory {
		found = found || p.ID == created.ID
	}
	assert.True(t, found)

	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestServer_VariantNeedsExistingParent(t *testing.T) {
	client := newEnv(t)
	svc := menu.NewVariantService(client)
	ctx := context.Background()

	variants, err := svc.ByProduct(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, variants, 2)

	_, err = svc.Create(ctx, menu.VariantParams{
		ProductID: 9999, Name: "Orphan", Price: 1000, Active: true,
	})
	require.Error(t, err)
}

func TestServer_PaymentReport(t *testing.T) {
	client := newEnv(t)

	txs, err := payment.NewService(client).Report(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, txs[0].CashierSessionID, txs[1].CashierSessionID)
	assert.Equal(t, "QRIS", txs[0].ModeLabel)
	require.Len(t, txs[0].Items, 2)
	assert.Equal(t, int64(22000), txs[0].Items[0].LineTotal)
}
