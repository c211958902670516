package finance

import "time"

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Kind        TransactionKind `json:"type"`
	Date        string          `json:"date"`
	Month       string          `json:"month"`
	Category    string          `json:"category,omitempty"`
	ClientID    string          `json:"clientId,omitempty"`
}

func (t Transaction) Valid() bool {
	if t.Description == "" || t.Amount <= 0 {
		return false
	}
	return t.Kind == KindIncome || t.Kind == KindExpense
}

// monthLabels keeps the pt-BR abbreviations the dashboard charts are
// keyed on.
var monthLabels = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

func MonthLabel(t time.Time) string {
	return monthLabels[t.Month()-1]
}

// MonthLabelOf derives the month label from a transaction date. It falls
// back to an empty label when the date does not parse.
func MonthLabelOf(date string) string {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return MonthLabel(parsed)
}

type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Summarize reduces a transaction list to its income, expense and balance
// totals. The result does not depend on transaction order.
func Summarize(transactions []Transaction) Summary {
	var summary Summary
	for _, t := range transactions {
		switch t.Kind {
		case KindIncome:
			summary.Income += t.Amount
		case KindExpense:
			summary.Expense += t.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return summary
}

func SummarizeMonth(transactions []Transaction, month string) Summary {
	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Month == month {
			filtered = append(filtered, t)
		}
	}
	return Summarize(filtered)
}

func SummarizeClient(transactions []Transaction, clientId string) Summary {
	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.ClientID == clientId {
			filtered = append(filtered, t)
		}
	}
	return Summarize(filtered)
}

// Growth returns the percentage change from previous to current. A jump
// from zero to a positive value counts as 100% growth.
func Growth(current, previous float64) float64 {
	if previous != 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

type MonthlyPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthlySeries folds transactions into one income/expense row per month
// label, in calendar order, skipping months with no activity.
func MonthlySeries(transactions []Transaction) []MonthlyPoint {
	byMonth := make(map[string]*MonthlyPoint)
	for _, t := range transactions {
		point, ok := byMonth[t.Month]
		if !ok {
			point = &MonthlyPoint{Month: t.Month}
			byMonth[t.Month] = point
		}
		switch t.Kind {
		case KindIncome:
			point.Income += t.Amount
		case KindExpense:
			point.Expense += t.Amount
		}
	}

	series := make([]MonthlyPoint, 0, len(byMonth))
	for _, label := range monthLabels {
		if point, ok := byMonth[label]; ok {
			series = append(series, *point)
		}
	}
	return series
}
