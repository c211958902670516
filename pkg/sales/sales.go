package sales

type CatalogService struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// QuoteItem carries a denormalized service name and price so quotes stay
// readable after the catalog entry changes or disappears.
type QuoteItem struct {
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusApproved QuoteStatus = "approved"
	StatusRejected QuoteStatus = "rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Quote struct {
	ID                 string      `json:"id"`
	ClientID           string      `json:"clientId"`
	ClientName         string      `json:"clientName"`
	Date               string      `json:"date"`
	Items              []QuoteItem `json:"items"`
	Subtotal           float64     `json:"subtotal"`
	DiscountPercentage float64     `json:"discountPercentage"`
	DiscountAmount     float64     `json:"discountAmount"`
	Total              float64     `json:"total"`
	Status             QuoteStatus `json:"status"`
}

// Draft is the quote under construction. One per user, persisted between
// sessions.
type Draft struct {
	ClientID           string      `json:"clientId"`
	Items              []QuoteItem `json:"items"`
	DiscountPercentage float64     `json:"discountPercentage"`
}

type DraftTotals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

// Totals recomputes the money columns from the lines. Never stored, always
// derived.
func (d Draft) Totals() DraftTotals {
	var subtotal float64
	for _, item := range d.Items {
		subtotal += item.Total
	}
	discount := subtotal * d.DiscountPercentage / 100
	return DraftTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
}
