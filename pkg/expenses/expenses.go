package expenses

type ItemKind string

const (
	KindIncome  ItemKind = "income"
	KindExpense ItemKind = "expense"
)

// Item is one row of the recurring expense structure. Values are monthly
// amounts, zero until the user fills them in.
type Item struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Kind        ItemKind `json:"type"`
	Value       float64  `json:"value"`
}

func (i Item) Valid() bool {
	if i.Description == "" || i.Value < 0 {
		return false
	}
	return i.Kind == KindIncome || i.Kind == KindExpense
}

type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// TotalsOf sums the structure by kind. No assumed split between the sides,
// just the arithmetic over whatever the user entered.
func TotalsOf(items []Item) Totals {
	var totals Totals
	for _, item := range items {
		switch item.Kind {
		case KindIncome:
			totals.Income += item.Value
		case KindExpense:
			totals.Expense += item.Value
		}
	}
	totals.Balance = totals.Income - totals.Expense
	return totals
}
