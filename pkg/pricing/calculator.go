package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keystonecrm/planner/pkg/catalog"
)

// Source is the catalog view the calculator needs. *catalog.Catalog satisfies it.
type Source interface {
	GetModule(id string) (catalog.Module, error)
	GetBundle(id string) (catalog.Bundle, error)
	AllBundles() []catalog.Bundle
	Order(ids []string) []string
}

// Calculator prices selections against a catalog
type Calculator struct {
	src Source
}

// NewCalculator creates a calculator for a catalog
func NewCalculator(src Source) *Calculator {
	return &Calculator{src: src}
}

// Price returns the sum of the monthly prices of ids. Duplicates are counted once.
func (c *Calculator) Price(ids []string) (int64, error) {
	seen := make(map[string]bool, len(ids))
	var total int64
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		m, err := c.src.GetModule(id)
		if err != nil {
			return 0, err
		}
		total += m.MonthlyPriceCents
	}
	return total, nil
}

// CustomEquivalentPrice returns what the bundle's modules cost when picked one by one
func (c *Calculator) CustomEquivalentPrice(b catalog.Bundle) (int64, error) {
	return c.Price(b.Modules)
}

// Savings returns CustomEquivalentPrice(b) minus the bundle rate. A bundle
// priced above its modules is a *catalog.ConfigurationError.
func (c *Calculator) Savings(b catalog.Bundle) (int64, error) {
	custom, err := c.CustomEquivalentPrice(b)
	if err != nil {
		return 0, err
	}
	savings := custom - b.MonthlyPriceCents
	if savings < 0 {
		return 0, catalog.NewConfigurationError(
			"bundle %q costs %d, more than its modules bought separately (%d)",
			b.ID, b.MonthlyPriceCents, custom)
	}
	return savings, nil
}

// BundlePrices prices every bundle in the catalog. All bundles with negative
// savings are reported together in one *catalog.ConfigurationError.
func (c *Calculator) BundlePrices() ([]BundlePrice, error) {
	bundles := c.src.AllBundles()
	out := make([]BundlePrice, 0, len(bundles))
	problems := &catalog.ConfigurationError{}

	for _, b := range bundles {
		custom, err := c.CustomEquivalentPrice(b)
		if err != nil {
			return nil, fmt.Errorf("failed to price bundle %s: %w", b.ID, err)
		}
		savings, err := c.Savings(b)
		if err != nil {
			var cfgErr *catalog.ConfigurationError
			if !errors.As(err, &cfgErr) {
				return nil, err
			}
			problems.Problems = append(problems.Problems, cfgErr.Problems...)
			continue
		}
		out = append(out, BundlePrice{
			BundleID:              b.ID,
			MonthlyPriceCents:     b.MonthlyPriceCents,
			CustomEquivalentCents: custom,
			SavingsCents:          savings,
		})
	}

	if len(problems.Problems) > 0 {
		return nil, problems
	}
	return out, nil
}

// Quote prices a selection line by line. When bundleID is set the total is
// the bundle rate, otherwise the list price. Unknown module ids are skipped;
// the validator reports them.
func (c *Calculator) Quote(ids []string, bundleID string) (*Quote, error) {
	q := &Quote{
		Lines:    make([]LineItem, 0, len(ids)),
		Currency: DefaultCurrency,
	}
	for _, id := range c.src.Order(ids) {
		m, err := c.src.GetModule(id)
		if err != nil {
			return nil, err
		}
		q.Lines = append(q.Lines, LineItem{
			ModuleID:   m.ID,
			Name:       m.Name,
			PriceCents: m.MonthlyPriceCents,
		})
		q.ListPriceCents += m.MonthlyPriceCents
	}
	q.TotalCents = q.ListPriceCents

	if bundleID != "" {
		b, err := c.src.GetBundle(bundleID)
		if err != nil {
			return nil, err
		}
		q.BundleID = b.ID
		q.TotalCents = b.MonthlyPriceCents
		q.SavingsCents = q.ListPriceCents - b.MonthlyPriceCents
	}
	return q, nil
}

// FormatCents renders an amount for display, e.g. "$25.00" or "25.00 EUR"
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	amount := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	switch strings.ToUpper(currency) {
	case "", "USD":
		return sign + "$" + amount
	default:
		return sign + amount + " " + strings.ToUpper(currency)
	}
}
