package client

type Client struct {
	ID           string `json:"id"`
	TaxID        string `json:"taxId"`
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Valid requires the two fields every invoice needs. Contact details are
// optional.
func (c Client) Valid() bool {
	return c.CompanyName != "" && c.TaxID != ""
}
