package model

// Address is a saved billing/shipping address owned by the backend and
// mirrored locally only while the customer is editing or selecting one.
type Address struct {
	ID           string `json:"_id,omitempty"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
}
