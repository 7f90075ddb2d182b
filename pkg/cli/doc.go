// Package cli provides the planner command-line interface.
//
// # Overview
//
// The `planner-cli` tool inspects a catalog and prices selections from the
// terminal without running the server. Every command accepts -catalog to
// point at a directory holding modules.yaml and bundles.yaml; without it the
// built-in catalog is used.
//
// # Commands
//
// modules, bundles: List the catalog with prices
//
//	planner-cli modules -catalog ./catalog
//	planner-cli bundles
//
// check: Load a catalog and report every configuration problem
//
//	planner-cli check -catalog ./catalog
//
// closure: Add everything the given modules require
//
//	planner-cli closure pipeline,newsletter
//
// quote: Price a selection or a bundle
//
//	planner-cli quote leads qr-capture
//	planner-cli quote -bundle agent
//	planner-cli quote -resolve=false -json team
//
// validate: Report missing requirements without fixing them
//
//	planner-cli validate team
//
// graph: Print the requirement graph as Cytoscape.js JSON
//
//	planner-cli graph leads > graph.json
//
// init: Write the built-in catalog as YAML to start editing from
//
//	planner-cli init -dir ./catalog
//
// # Related Packages
//
//   - pkg/planner: Engine the commands run against
//   - pkg/catalog: YAML documents read by -catalog and written by init
package cli
