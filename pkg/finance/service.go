package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/user"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrValidation          = errors.New("transaction description, positive amount and type are required")
)

type Dashboard struct {
	Totals       Summary        `json:"totals"`
	CurrentMonth string         `json:"currentMonth"`
	Month        Summary        `json:"month"`
	Growth       float64        `json:"growth"`
	ProfitMargin float64        `json:"profitMargin"`
	Series       []MonthlyPoint `json:"series"`
}

type Service struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) GetTransactions(ctx context.Context) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *Service) AddTransaction(ctx context.Context, transaction Transaction) (*Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !transaction.Valid() {
		return nil, ErrValidation
	}
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Month == "" {
		transaction.Month = MonthLabelOf(transaction.Date)
	}

	transactions, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	transactions = append(transactions, transaction)
	if err := s.repo.ReplaceAll(ctx, userId, transactions); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, transactionId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	transactions, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return err
	}
	remaining := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.ID != transactionId {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(transactions) {
		return ErrTransactionNotFound
	}
	return s.repo.ReplaceAll(ctx, userId, remaining)
}

// GetSummary reduces the ledger, optionally restricted to one month label
// or one client.
func (s *Service) GetSummary(ctx context.Context, month, clientId string) (*Summary, error) {
	transactions, err := s.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var summary Summary
	switch {
	case month != "":
		summary = SummarizeMonth(transactions, month)
	case clientId != "":
		summary = SummarizeClient(transactions, clientId)
	default:
		summary = Summarize(transactions)
	}
	return &summary, nil
}

// GetDashboard assembles the headline numbers for the dashboard screen.
// The current month comes from the clock, growth compares it against the
// month before.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	transactions, err := s.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	currentMonth := MonthLabel(now)
	previousMonth := monthLabels[(int(now.Month())+10)%12]

	totals := Summarize(transactions)
	month := SummarizeMonth(transactions, currentMonth)
	previous := SummarizeMonth(transactions, previousMonth)

	margin := 0.0
	if totals.Income > 0 {
		margin = totals.Balance / totals.Income * 100
	}

	return &Dashboard{
		Totals:       totals,
		CurrentMonth: currentMonth,
		Month:        month,
		Growth:       Growth(month.Income, previous.Income),
		ProfitMargin: margin,
		Series:       MonthlySeries(transactions),
	}, nil
}
