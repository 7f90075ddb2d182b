// Package planner is the entry point to the subscription configuration engine.
//
// # Overview
//
// An Engine bundles an immutable catalog with the resolver, validator, price
// calculator and selection machine built on it. LoadCatalogs is called once at
// startup; a catalog that fails any consistency check, including a bundle
// priced above its modules, is refused with a *catalog.ConfigurationError.
//
// Engines are read-only after construction and safe for concurrent use. To
// pick up catalog changes, build a new Engine and swap it in.
//
// # Usage Example
//
//	engine, err := planner.LoadFromDir("/etc/planner/catalog")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, b := range engine.ListBundles() {
//		fmt.Printf("%s saves %d\n", b.Name, b.SavingsCents)
//	}
//
//	ctrl := engine.NewController()
//	out, err := ctrl.Toggle("pipeline")
//
// # Related Packages
//
//   - pkg/catalog: Catalog documents and consistency checks
//   - pkg/selection: State machine and controller
//   - pkg/session: Stores selections between HTTP requests
package planner
