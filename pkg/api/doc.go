// Package api provides the HTTP REST API for the subscription planner.
//
// # Overview
//
// The API exposes the module catalog, stateless quotes and configuration
// sessions. A session holds one selection and moves through it with toggle,
// select-bundle and reset events; every response carries the selection, its
// price, the priced quote and its validation result.
//
// # Endpoints
//
// Catalog:
//
//	GET    /api/v1/modules               ?popular=true&feature=lead
//	GET    /api/v1/modules/{id}
//	GET    /api/v1/bundles
//	GET    /api/v1/bundles/{id}
//	POST   /api/v1/quote                 {"module_ids": [...], "bundle_id": "", "resolve": true}
//
// Sessions:
//
//	POST   /api/v1/sessions              {"module_ids": [...]} or {"bundle_id": "..."} or empty
//	GET    /api/v1/sessions/{id}
//	DELETE /api/v1/sessions/{id}
//	POST   /api/v1/sessions/{id}/toggle  {"module_id": "..."}
//	POST   /api/v1/sessions/{id}/bundle  {"bundle_id": "..."}
//	POST   /api/v1/sessions/{id}/reset
//	POST   /api/v1/sessions/{id}/events  {"kind": "toggle", "id": "..."}
//
// Requirement graph routes are registered from pkg/dependencies.
//
// # Errors
//
// Errors are JSON objects with "error" and "code". Unknown modules, bundles
// and sessions are 404, malformed requests and unknown events are 400.
//
// # Usage Example
//
//	holder := planner.NewHolder(engine)
//	sessions := session.NewManager(store, holder.Load, logger)
//	server := api.NewServer(holder, sessions, api.WithLogger(logger), api.WithMetrics(metrics))
//	http.ListenAndServe(":8080", server)
//
// # Related Packages
//
//   - pkg/planner: Engine behind every handler
//   - pkg/session: Session storage
//   - pkg/dependencies: Requirement graph handlers
package api
