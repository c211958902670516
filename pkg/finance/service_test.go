package finance

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk/internal/storage"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var snapshotsStub = storage.NewStubSnapshots()

var (
	clockStub = &utils.MockClock{FixedNow: time.Date(2023, 10, 20, 12, 0, 0, 0, time.UTC)}
	service   *Service
)

func setup(t *testing.T) func() {
	service = NewService(NewRepository(snapshotsStub), clockStub)
	return func() {
		t.Log("Teardown after test")
		snapshotsStub.Cleanup()
	}
}

func TestService_GetTransactions(t *testing.T) {
	t.Run("should seed the ledger for a fresh account", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		transactions, err := service.GetTransactions(ctx)

		require.NoError(t, err)
		assert.Len(t, transactions, 5)
		assert.Equal(t, "WhatsApp API subscription", transactions[0].Description)
	})

	t.Run("should fail without a user in context", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.GetTransactions(context.Background())

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestService_AddTransaction(t *testing.T) {
	t.Run("should append to the ledger and assign id and month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.AddTransaction(ctx, Transaction{
			Description: "New sale",
			Amount:      900,
			Kind:        KindIncome,
			Date:        "2023-11-02",
		})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Nov", created.Month)

		transactions, err := service.GetTransactions(ctx)
		require.NoError(t, err)
		assert.Len(t, transactions, 6)
		assert.Equal(t, "New sale", transactions[5].Description)
	})

	t.Run("should reject a transaction without a description", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddTransaction(ctx, Transaction{Amount: 10, Kind: KindIncome})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddTransaction(ctx, Transaction{Description: "Refund", Amount: 0, Kind: KindExpense})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject an unknown kind", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddTransaction(ctx, Transaction{Description: "Odd", Amount: 10, Kind: "transfer"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestService_DeleteTransaction(t *testing.T) {
	t.Run("should remove a transaction by id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given the seeded ledger
		err := service.DeleteTransaction(ctx, "1")

		// then
		require.NoError(t, err)
		transactions, err := service.GetTransactions(ctx)
		require.NoError(t, err)
		assert.Len(t, transactions, 4)
		for _, transaction := range transactions {
			assert.NotEqual(t, "1", transaction.ID)
		}
	})

	t.Run("should report a missing transaction", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.DeleteTransaction(ctx, "does-not-exist")

		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestService_GetSummary(t *testing.T) {
	t.Run("should summarize the whole seeded ledger", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		summary, err := service.GetSummary(ctx, "", "")

		require.NoError(t, err)
		assert.Equal(t, 4500.0, summary.Income)
		assert.Equal(t, 2250.0, summary.Expense)
		assert.Equal(t, 2250.0, summary.Balance)
	})

	t.Run("should filter by month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		summary, err := service.GetSummary(ctx, "Set", "")

		require.NoError(t, err)
		assert.Equal(t, 3000.0, summary.Income)
		assert.Equal(t, 1200.0, summary.Expense)
	})

	t.Run("should filter by client", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddTransaction(ctx, Transaction{
			Description: "Retainer", Amount: 400, Kind: KindIncome, Date: "2023-10-21", ClientID: "c1",
		})
		require.NoError(t, err)

		summary, err := service.GetSummary(ctx, "", "c1")

		require.NoError(t, err)
		assert.Equal(t, 400.0, summary.Income)
		assert.Equal(t, 0.0, summary.Expense)
	})
}

func TestService_GetDashboard(t *testing.T) {
	t.Run("should report the clock month and growth against the month before", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		dashboard, err := service.GetDashboard(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Out", dashboard.CurrentMonth)
		assert.Equal(t, 1500.0, dashboard.Month.Income)
		// Oct income 1500 against Sep income 3000
		assert.Equal(t, -50.0, dashboard.Growth)
		assert.Equal(t, 50.0, dashboard.ProfitMargin)
		assert.Equal(t, []MonthlyPoint{
			{Month: "Set", Income: 3000, Expense: 1200},
			{Month: "Out", Income: 1500, Expense: 1050},
		}, dashboard.Series)
	})

	t.Run("should count a first active month as full growth", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		clockStub.SetNow(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
		defer clockStub.SetNow(time.Date(2023, 10, 20, 12, 0, 0, 0, time.UTC))

		_, err := service.AddTransaction(ctx, Transaction{
			Description: "January sale", Amount: 700, Kind: KindIncome, Date: "2024-01-05",
		})
		require.NoError(t, err)

		dashboard, err := service.GetDashboard(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Jan", dashboard.CurrentMonth)
		assert.Equal(t, 100.0, dashboard.Growth)
	})
}
