package dependencies

import (
	"testing"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/stretchr/testify/require"
)

// newChainCatalog builds baseline <- leads <- pipeline plus two side modules:
// qr requires leads, reports requires pipeline and qr.
func newChainCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.ModuleConfig{Modules: []catalog.Module{
		{ID: "baseline", Baseline: true},
		{ID: "leads", MonthlyPriceCents: 1000, Requires: []string{"baseline"}},
		{ID: "pipeline", MonthlyPriceCents: 1500, Requires: []string{"leads"}},
		{ID: "qr", MonthlyPriceCents: 500, Requires: []string{"leads"}},
		{ID: "reports", MonthlyPriceCents: 700, Requires: []string{"pipeline", "qr"}},
		{ID: "market", MonthlyPriceCents: 1200},
	}}, catalog.BundleConfig{})
	require.NoError(t, err)
	return c
}
