// Package pricing computes monthly prices for module selections and bundles.
//
// # Overview
//
// All amounts are integer minor currency units (cents). A custom selection
// costs the sum of its modules' prices. A bundle costs its flat negotiated rate,
// and its savings are the difference between the custom price of its modules
// and that rate. Negative savings mean the catalog was authored wrong and are
// reported as a configuration error, never clamped.
//
// # Pricing Example
//
// Modules baseline ($0), leads ($10) and pipeline ($15):
//   - custom {baseline, leads, pipeline}: $25
//   - bundle starter {baseline, leads} at $8: custom equivalent $10, savings $2
//
// # Usage Example
//
//	calc := pricing.NewCalculator(cat)
//	total, err := calc.Price([]string{"contacts", "leads"})
//
//	savings, err := calc.Savings(bundle)
//	if catalog.IsConfigurationError(err) {
//		log.Fatal(err)
//	}
//
//	quote, err := calc.Quote(ids, "")
//	fmt.Println(pricing.FormatCents(quote.TotalCents, pricing.DefaultCurrency))
//
// # Related Packages
//
//   - pkg/catalog: Module and bundle prices
//   - pkg/selection: Prices every transition
package pricing
