package pricing

// DefaultCurrency is the currency all catalog prices are expressed in
const DefaultCurrency = "USD"

// LineItem is the price of one module in a quote
type LineItem struct {
	ModuleID   string `json:"module_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

// Quote is the priced breakdown of a selection
type Quote struct {
	Lines []LineItem `json:"lines"`
	// ListPriceCents is the sum of the module prices
	ListPriceCents int64 `json:"list_price_cents"`
	// BundleID is set when the selection is priced at a bundle rate
	BundleID string `json:"bundle_id,omitempty"`
	// TotalCents is what the customer pays per month
	TotalCents   int64  `json:"total_cents"`
	SavingsCents int64  `json:"savings_cents"`
	Currency     string `json:"currency"`
}

// BundlePrice is a bundle with its computed pricing
type BundlePrice struct {
	BundleID              string `json:"bundle_id"`
	MonthlyPriceCents     int64  `json:"monthly_price_cents"`
	CustomEquivalentCents int64  `json:"custom_equivalent_cents"`
	SavingsCents          int64  `json:"savings_cents"`
}
