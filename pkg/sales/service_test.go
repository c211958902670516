package sales

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk/internal/storage"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/client"
	"github.com/opsdesk/opsdesk/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var snapshotsStub = storage.NewStubSnapshots()

var (
	clientService *client.Service
	service       *Service
)

func setup(t *testing.T) func() {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)}
	clientService = client.NewService(client.NewRepository(snapshotsStub), clock)
	service = NewService(NewRepository(snapshotsStub), clientService, clock)
	return func() {
		t.Log("Teardown after test")
		snapshotsStub.Cleanup()
	}
}

func addClient(t *testing.T, name string) *client.Client {
	created, err := clientService.AddClient(ctx, client.Client{CompanyName: name, TaxID: "12.345.678/0001-90"})
	require.NoError(t, err)
	return created
}

func TestService_GetServices(t *testing.T) {
	t.Run("should seed the catalog for a fresh account", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		services, err := service.GetServices(ctx)

		require.NoError(t, err)
		assert.Len(t, services, 4)
		assert.Equal(t, "Water tank cleaning", services[0].Name)
	})
}

func TestService_AddService(t *testing.T) {
	t.Run("should append a custom service to the catalog", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.AddService(ctx, CatalogService{Name: "Window cleaning", Price: 120})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		services, err := service.GetServices(ctx)
		require.NoError(t, err)
		assert.Len(t, services, 5)
	})

	t.Run("should reject a service without a positive price", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddService(ctx, CatalogService{Name: "Free visit", Price: 0})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestService_Draft(t *testing.T) {
	t.Run("should bump quantity when the same service is added twice", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)

		// when
		draft, err := service.AddServiceToDraft(ctx, "1")

		// then
		require.NoError(t, err)
		require.Len(t, draft.Items, 1)
		assert.Equal(t, 2, draft.Items[0].Quantity)
		assert.Equal(t, 500.0, draft.Items[0].Total)
		assert.Equal(t, 500.0, draft.Subtotal)

		draft, err = service.SetDraftDiscount(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 50.0, draft.DiscountAmount)
		assert.Equal(t, 450.0, draft.Total)
	})

	t.Run("should reject adding an unknown catalog service", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddServiceToDraft(ctx, "missing")

		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("should remove an item by position", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "2")
		require.NoError(t, err)

		draft, err := service.RemoveDraftItem(ctx, 0)

		require.NoError(t, err)
		require.Len(t, draft.Items, 1)
		assert.Equal(t, "Upholstery cleaning", draft.Items[0].ServiceName)
	})

	t.Run("should reject an out-of-range item index", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.RemoveDraftItem(ctx, 3)

		assert.ErrorIs(t, err, ErrItemOutOfRange)
	})

	t.Run("should clamp the discount into 0..100", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		draft, err := service.SetDraftDiscount(ctx, 150)
		require.NoError(t, err)
		assert.Equal(t, 100.0, draft.DiscountPercentage)

		draft, err = service.SetDraftDiscount(ctx, -5)
		require.NoError(t, err)
		assert.Equal(t, 0.0, draft.DiscountPercentage)
	})

	t.Run("should derive totals from items and discount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddServiceToDraft(ctx, "1") // 250
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "2") // 180
		require.NoError(t, err)

		draft, err := service.SetDraftDiscount(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 430.0, draft.Subtotal)
		assert.Equal(t, 43.0, draft.DiscountAmount)
		assert.Equal(t, 387.0, draft.Total)
	})

	t.Run("should reject selecting an unknown client", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.SetDraftClient(ctx, "missing")

		assert.ErrorIs(t, err, client.ErrClientNotFound)
	})
}

func TestService_SaveQuote(t *testing.T) {
	t.Run("should prepend the quote and reset the draft", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		quoteClient := addClient(t, "Padaria Central")
		_, err := service.SetDraftClient(ctx, quoteClient.ID)
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)
		_, err = service.SetDraftDiscount(ctx, 10)
		require.NoError(t, err)

		// when
		quote, err := service.SaveQuote(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Padaria Central", quote.ClientName)
		assert.Equal(t, StatusDraft, quote.Status)
		assert.Equal(t, 225.0, quote.Total)

		draft, err := service.GetDraft(ctx)
		require.NoError(t, err)
		assert.Empty(t, draft.Items)
		assert.Empty(t, draft.ClientID)
		assert.Equal(t, 0.0, draft.DiscountPercentage)
	})

	t.Run("should order quotes newest first", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		first := addClient(t, "Padaria Central")
		second := addClient(t, "Condominio Sol")

		_, err := service.SetDraftClient(ctx, first.ID)
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)
		_, err = service.SaveQuote(ctx)
		require.NoError(t, err)

		_, err = service.SetDraftClient(ctx, second.ID)
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "2")
		require.NoError(t, err)
		_, err = service.SaveQuote(ctx)
		require.NoError(t, err)

		quotes, err := service.GetQuotes(ctx, "")

		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, "Condominio Sol", quotes[0].ClientName)
		assert.Equal(t, "Padaria Central", quotes[1].ClientName)
	})

	t.Run("should reject a draft without a client", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)

		_, err = service.SaveQuote(ctx)

		assert.ErrorIs(t, err, ErrIncompleteDraft)
		draft, derr := service.GetDraft(ctx)
		require.NoError(t, derr)
		assert.Len(t, draft.Items, 1)

		quotes, qerr := service.GetQuotes(ctx, "")
		require.NoError(t, qerr)
		assert.Empty(t, quotes)
	})

	t.Run("should reject a draft without items", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		quoteClient := addClient(t, "Padaria Central")
		_, err := service.SetDraftClient(ctx, quoteClient.ID)
		require.NoError(t, err)

		_, err = service.SaveQuote(ctx)

		assert.ErrorIs(t, err, ErrIncompleteDraft)
	})

	t.Run("should keep quote prices when the catalog changes later", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		quoteClient := addClient(t, "Padaria Central")
		_, err := service.SetDraftClient(ctx, quoteClient.ID)
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)
		saved, err := service.SaveQuote(ctx)
		require.NoError(t, err)

		// when the catalog entry is repriced after the fact
		userId := 1
		services, err := service.repo.GetServices(ctx, userId)
		require.NoError(t, err)
		services[0].Price = 9999
		require.NoError(t, service.repo.ReplaceServices(ctx, userId, services))

		// then the stored quote is unchanged
		quotes, err := service.GetQuotes(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, saved.Total, quotes[0].Total)
		assert.Equal(t, 250.0, quotes[0].Items[0].UnitPrice)
	})
}

func TestService_SetQuoteStatus(t *testing.T) {
	saveQuote := func(t *testing.T) *Quote {
		quoteClient := addClient(t, "Padaria Central")
		_, err := service.SetDraftClient(ctx, quoteClient.ID)
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)
		saved, err := service.SaveQuote(ctx)
		require.NoError(t, err)
		return saved
	}

	t.Run("should walk a quote from draft through sent to rejected", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		saved := saveQuote(t)
		assert.Equal(t, StatusDraft, saved.Status)

		// when
		updated, err := service.SetQuoteStatus(ctx, saved.ID, StatusSent)
		require.NoError(t, err)
		assert.Equal(t, StatusSent, updated.Status)

		updated, err = service.SetQuoteStatus(ctx, saved.ID, StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, updated.Status)

		// then the stored list reflects the transition
		quotes, err := service.GetQuotes(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, quotes[0].Status)
	})

	t.Run("should reject a status outside the lifecycle", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		saved := saveQuote(t)

		_, err := service.SetQuoteStatus(ctx, saved.ID, "pending")

		assert.ErrorIs(t, err, ErrValidation)
		quotes, qerr := service.GetQuotes(ctx, "")
		require.NoError(t, qerr)
		assert.Equal(t, StatusDraft, quotes[0].Status)
	})

	t.Run("should report a missing quote", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.SetQuoteStatus(ctx, "missing", StatusApproved)

		assert.ErrorIs(t, err, ErrQuoteNotFound)
	})
}

func TestService_GetQuotes(t *testing.T) {
	t.Run("should filter by client name case-insensitively", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		quoteClient := addClient(t, "Padaria Central")
		_, err := service.SetDraftClient(ctx, quoteClient.ID)
		require.NoError(t, err)
		_, err = service.AddServiceToDraft(ctx, "1")
		require.NoError(t, err)
		_, err = service.SaveQuote(ctx)
		require.NoError(t, err)

		matches, err := service.GetQuotes(ctx, "padaria")
		require.NoError(t, err)
		assert.Len(t, matches, 1)

		none, err := service.GetQuotes(ctx, "bakery")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
