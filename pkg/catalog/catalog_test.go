package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModules() ModuleConfig {
	return ModuleConfig{Modules: []Module{
		{ID: "baseline", Name: "Baseline", Baseline: true},
		{ID: "leads", Name: "Leads", MonthlyPriceCents: 1000, Requires: []string{"baseline"}},
		{ID: "pipeline", Name: "Pipeline", MonthlyPriceCents: 1500, Requires: []string{"leads"}},
	}}
}

func testBundles() BundleConfig {
	return BundleConfig{Bundles: []Bundle{
		{ID: "starter", Name: "Starter", Modules: []string{"leads", "baseline"}, MonthlyPriceCents: 800},
	}}
}

func TestNew_Valid(t *testing.T) {
	c, err := New(testModules(), testBundles())
	require.NoError(t, err)

	assert.Equal(t, "baseline", c.Baseline())
	assert.True(t, c.Has("pipeline"))
	assert.False(t, c.Has("missing"))

	ids := make([]string, 0)
	for _, m := range c.AllModules() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"baseline", "leads", "pipeline"}, ids)

	b, err := c.GetBundle("starter")
	require.NoError(t, err)
	assert.Equal(t, []string{"baseline", "leads"}, b.Modules, "bundle modules are stored in catalog order")
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := New(testModules(), testBundles())
	require.NoError(t, err)

	m, err := c.GetModule("leads")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), m.MonthlyPriceCents)

	_, err = c.GetModule("nope")
	assert.True(t, errors.Is(err, ErrUnknownModule))

	reqs, err := c.RequirementsOf("pipeline")
	require.NoError(t, err)
	assert.Equal(t, []string{"leads"}, reqs)

	_, err = c.RequirementsOf("nope")
	assert.True(t, errors.Is(err, ErrUnknownModule))

	_, err = c.GetBundle("nope")
	assert.True(t, errors.Is(err, ErrUnknownBundle))

	price, err := c.PriceOf("pipeline")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), price)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c, err := New(testModules(), testBundles())
	require.NoError(t, err)

	reqs, _ := c.RequirementsOf("pipeline")
	reqs[0] = "mutated"

	again, _ := c.RequirementsOf("pipeline")
	assert.Equal(t, []string{"leads"}, again)

	b, _ := c.GetBundle("starter")
	b.Modules[0] = "mutated"
	b2, _ := c.GetBundle("starter")
	assert.Equal(t, "baseline", b2.Modules[0])
}

func TestCatalog_OrderAndUnknown(t *testing.T) {
	c, err := New(testModules(), testBundles())
	require.NoError(t, err)

	assert.Equal(t, []string{"baseline", "pipeline"}, c.Order([]string{"pipeline", "ghost", "baseline", "pipeline"}))
	assert.Equal(t, []string{"ghost", "spectre"}, c.Unknown([]string{"ghost", "leads", "spectre", "ghost"}))
	assert.Empty(t, c.Unknown([]string{"leads"}))
}

func TestNew_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		modules []Module
		bundles []Bundle
		wantMsg string
	}{
		{
			name:    "no baseline",
			modules: []Module{{ID: "a"}},
			wantMsg: "no baseline module",
		},
		{
			name:    "two baselines",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b", Baseline: true}},
			wantMsg: "exactly one baseline module",
		},
		{
			name:    "priced baseline",
			modules: []Module{{ID: "a", Baseline: true, MonthlyPriceCents: 100}},
			wantMsg: "must be free",
		},
		{
			name:    "baseline with requirements",
			modules: []Module{{ID: "a", Baseline: true, Requires: []string{"b"}}, {ID: "b"}},
			wantMsg: "must not require",
		},
		{
			name:    "empty id",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "  "}},
			wantMsg: "empty id",
		},
		{
			name:    "duplicate id",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b"}, {ID: "b"}},
			wantMsg: `duplicate module id "b"`,
		},
		{
			name:    "negative price",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b", MonthlyPriceCents: -1}},
			wantMsg: "negative price",
		},
		{
			name:    "self dependency",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b", Requires: []string{"b"}}},
			wantMsg: `"b" requires itself`,
		},
		{
			name:    "dangling requirement",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b", Requires: []string{"zzz"}}},
			wantMsg: `requires unknown module "zzz"`,
		},
		{
			name: "cycle",
			modules: []Module{
				{ID: "a", Baseline: true},
				{ID: "b", Requires: []string{"c"}},
				{ID: "c", Requires: []string{"d"}},
				{ID: "d", Requires: []string{"b"}},
			},
			wantMsg: "dependency cycle: b -> c -> d -> b",
		},
		{
			name:    "bundle with unknown module",
			modules: []Module{{ID: "a", Baseline: true}},
			bundles: []Bundle{{ID: "x", Modules: []string{"a", "zzz"}}},
			wantMsg: `bundle "x" references unknown module "zzz"`,
		},
		{
			name:    "bundle without baseline",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b"}},
			bundles: []Bundle{{ID: "x", Modules: []string{"b"}}},
			wantMsg: "does not include the baseline",
		},
		{
			name:    "bundle not closed",
			modules: []Module{{ID: "a", Baseline: true}, {ID: "b"}, {ID: "c", Requires: []string{"b"}}},
			bundles: []Bundle{{ID: "x", Modules: []string{"a", "c"}}},
			wantMsg: `bundle "x" is not closed: "c" requires "b"`,
		},
		{
			name:    "duplicate bundle",
			modules: []Module{{ID: "a", Baseline: true}},
			bundles: []Bundle{{ID: "x", Modules: []string{"a"}}, {ID: "x", Modules: []string{"a"}}},
			wantMsg: `duplicate bundle id "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(ModuleConfig{Modules: tt.modules}, BundleConfig{Bundles: tt.bundles})
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNew_CollectsAllProblems(t *testing.T) {
	_, err := New(ModuleConfig{Modules: []Module{
		{ID: "b", Requires: []string{"b"}},
		{ID: "c", MonthlyPriceCents: -5},
	}}, BundleConfig{})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Problems, 3)
	assert.Contains(t, err.Error(), "3 problems")
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, ModuleContacts, c.Baseline())
	assert.Len(t, c.AllModules(), 8)
	assert.Len(t, c.AllBundles(), 3)
}
