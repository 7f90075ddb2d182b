// Package catalog provides the immutable module and bundle registries that the
// subscription planner prices and resolves against.
//
// # Overview
//
// A catalog is built once from two documents: the module catalog (individually
// priced feature units with requirements on other modules) and the bundle
// catalog (flat-priced presets). Building a catalog checks its consistency and
// refuses to produce one that is malformed.
//
// # Consistency Rules
//
//   - Exactly one baseline module; it is free and requires nothing
//   - Module and bundle ids are unique and non-empty
//   - Requirements reference existing modules, never the module itself
//   - The requirement graph has no cycles
//   - Every bundle contains the baseline and is closed under requirements
//
// All problems are collected into a single *ConfigurationError.
//
// # Usage Example
//
// Load from YAML documents:
//
//	cat, err := catalog.LoadDir("/etc/planner/catalog")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, m := range cat.AllModules() {
//		fmt.Printf("%-12s %5d cents\n", m.ID, m.MonthlyPriceCents)
//	}
//
// modules.yaml:
//
//	modules:
//	  - id: contacts
//	    name: Contact Management
//	    baseline: true
//	  - id: leads
//	    name: Lead Management
//	    monthly_price_cents: 1000
//	    requires: [contacts]
//
// # Reloading
//
// A Catalog never changes. Watcher (file events) and Schedule (cron
// expression) call a ReloadFunc that builds a new one; a failed reload
// leaves the previous catalog in service.
//
//	w := catalog.NewWatcher(dir, 0, reload, logger)
//	go w.Run(ctx)
//
//	s, err := catalog.NewSchedule("@every 15m", reload, logger)
//	s.Start()
//	defer s.Stop(ctx)
//
// # Related Packages
//
//   - pkg/dependencies: Closure over catalog requirements
//   - pkg/pricing: Prices selections and bundle savings
package catalog
