package catalog

import (
	"sort"
	"strings"
)

// Catalog is the immutable registry of modules and bundles.
// It is built once by New and is safe for concurrent readers.
type Catalog struct {
	modules     map[string]Module
	moduleOrder []string
	bundles     map[string]Bundle
	bundleOrder []string
	index       map[string]int
	baseline    string
}

// New builds a catalog from its configuration documents and checks its internal
// consistency. Any inconsistency is returned as a *ConfigurationError that lists
// every problem found.
func New(modules ModuleConfig, bundles BundleConfig) (*Catalog, error) {
	c := &Catalog{
		modules:     make(map[string]Module, len(modules.Modules)),
		moduleOrder: make([]string, 0, len(modules.Modules)),
		bundles:     make(map[string]Bundle, len(bundles.Bundles)),
		bundleOrder: make([]string, 0, len(bundles.Bundles)),
		index:       make(map[string]int, len(modules.Modules)),
	}
	problems := &ConfigurationError{}

	c.addModules(modules.Modules, problems)
	c.checkRequirements(problems)
	c.addBundles(bundles.Bundles, problems)

	if err := problems.orNil(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addModules(modules []Module, problems *ConfigurationError) {
	var baselines []string
	for i, m := range modules {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			problems.add("module #%d has an empty id", i+1)
			continue
		}
		if _, dup := c.modules[id]; dup {
			problems.add("duplicate module id %q", id)
			continue
		}
		if m.MonthlyPriceCents < 0 {
			problems.add("module %q has a negative price (%d)", id, m.MonthlyPriceCents)
		}
		m.ID = id
		c.index[id] = len(c.moduleOrder)
		c.moduleOrder = append(c.moduleOrder, id)
		c.modules[id] = m.clone()

		if m.Baseline {
			baselines = append(baselines, id)
		}
	}

	switch len(baselines) {
	case 0:
		problems.add("no baseline module declared")
	case 1:
		c.baseline = baselines[0]
		base := c.modules[c.baseline]
		if base.MonthlyPriceCents != 0 {
			problems.add("baseline module %q must be free, has price %d", base.ID, base.MonthlyPriceCents)
		}
		if len(base.Requires) > 0 {
			problems.add("baseline module %q must not require other modules", base.ID)
		}
	default:
		problems.add("exactly one baseline module is allowed, found %d (%s)",
			len(baselines), strings.Join(baselines, ", "))
	}
}

func (c *Catalog) checkRequirements(problems *ConfigurationError) {
	edges := make(map[string][]string, len(c.modules))
	for _, id := range c.moduleOrder {
		m := c.modules[id]
		seen := make(map[string]bool, len(m.Requires))
		for _, req := range m.Requires {
			switch {
			case req == id:
				problems.add("module %q requires itself", id)
			case seen[req]:
				problems.add("module %q lists requirement %q more than once", id, req)
			case !c.Has(req):
				problems.add("module %q requires unknown module %q", id, req)
			default:
				edges[id] = append(edges[id], req)
			}
			seen[req] = true
		}
	}

	if cycle := findCycle(c.moduleOrder, edges); cycle != nil {
		problems.add("dependency cycle: %s", strings.Join(cycle, " -> "))
	}
}

func (c *Catalog) addBundles(bundles []Bundle, problems *ConfigurationError) {
	for i, b := range bundles {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			problems.add("bundle #%d has an empty id", i+1)
			continue
		}
		if _, dup := c.bundles[id]; dup {
			problems.add("duplicate bundle id %q", id)
			continue
		}
		if b.MonthlyPriceCents < 0 {
			problems.add("bundle %q has a negative price (%d)", id, b.MonthlyPriceCents)
		}

		members := make(map[string]bool, len(b.Modules))
		for _, mid := range b.Modules {
			if !c.Has(mid) {
				problems.add("bundle %q references unknown module %q", id, mid)
				continue
			}
			members[mid] = true
		}
		if c.baseline != "" && !members[c.baseline] {
			problems.add("bundle %q does not include the baseline module %q", id, c.baseline)
		}
		for _, mid := range c.Order(b.Modules) {
			for _, req := range c.modules[mid].Requires {
				if c.Has(req) && !members[req] {
					problems.add("bundle %q is not closed: %q requires %q", id, mid, req)
				}
			}
		}

		b.ID = id
		b.Modules = c.Order(b.Modules)
		c.bundleOrder = append(c.bundleOrder, id)
		c.bundles[id] = b.clone()
	}
}

// Baseline returns the id of the always-included module
func (c *Catalog) Baseline() string {
	return c.baseline
}

// Has reports whether id names a module in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.modules[id]
	return ok
}

// GetModule returns the module with the given id
func (c *Catalog) GetModule(id string) (Module, error) {
	m, ok := c.modules[id]
	if !ok {
		return Module{}, unknownModule(id)
	}
	return m.clone(), nil
}

// AllModules returns every module in declaration order
func (c *Catalog) AllModules() []Module {
	out := make([]Module, 0, len(c.moduleOrder))
	for _, id := range c.moduleOrder {
		out = append(out, c.modules[id].clone())
	}
	return out
}

// RequirementsOf returns the direct requirements of a module
func (c *Catalog) RequirementsOf(id string) ([]string, error) {
	m, ok := c.modules[id]
	if !ok {
		return nil, unknownModule(id)
	}
	return append([]string(nil), m.Requires...), nil
}

// PriceOf returns the monthly price of a module in minor currency units
func (c *Catalog) PriceOf(id string) (int64, error) {
	m, ok := c.modules[id]
	if !ok {
		return 0, unknownModule(id)
	}
	return m.MonthlyPriceCents, nil
}

// GetBundle returns the bundle with the given id
func (c *Catalog) GetBundle(id string) (Bundle, error) {
	b, ok := c.bundles[id]
	if !ok {
		return Bundle{}, unknownBundle(id)
	}
	return b.clone(), nil
}

// AllBundles returns every bundle in declaration order
func (c *Catalog) AllBundles() []Bundle {
	out := make([]Bundle, 0, len(c.bundleOrder))
	for _, id := range c.bundleOrder {
		out = append(out, c.bundles[id].clone())
	}
	return out
}

// Order returns the known ids in catalog declaration order with duplicates removed.
// Unknown ids are dropped.
func (c *Catalog) Order(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] || !c.Has(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return c.index[out[i]] < c.index[out[j]]
	})
	return out
}

// Unknown returns the ids that the catalog does not know, in input order
func (c *Catalog) Unknown(ids []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range ids {
		if !c.Has(id) && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
