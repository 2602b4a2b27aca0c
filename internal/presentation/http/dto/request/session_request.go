package request

// CreateSessionRequest opens an editing session for one order kind
type CreateSessionRequest struct {
	Kind string `json:"kind" binding:"required,oneof=sales purchase"`
}

// SelectProductRequest sets or clears a line's product. An empty product ID
// clears the selection.
type SelectProductRequest struct {
	ProductID string `json:"product_id"`
}

// SetFieldRequest commits one raw field input on a line
type SetFieldRequest struct {
	Value string `json:"value"`
}

// SetTaxRateRequest commits a tax rate selection on a purchase line
type SetTaxRateRequest struct {
	TaxRate int `json:"tax_rate"`
}

// ApplyCategoryFilterRequest narrows a line's selectable products. An empty
// category ID restores the full catalogue.
type ApplyCategoryFilterRequest struct {
	CategoryID string `json:"category_id"`
}
