// Package session keeps configuration sessions alive between HTTP requests.
//
// # Overview
//
// The selection engine holds no state of its own. A session Record stores the
// current Selection under a random id so a browser can drive the state machine
// one event per request. Records live in a Store:
//
//   - MemoryStore: expirable LRU, for single-instance deployments and tests
//   - RedisStore: JSON values with a TTL, shared by every instance
//
// Manager serialises transitions on the same session within a process and
// always evaluates against the engine currently in service, so a catalog
// reload is picked up by the next request.
//
// # Usage Example
//
//	store := session.NewMemoryStore(10000, 24*time.Hour)
//	mgr := session.NewManager(store, func() *planner.Engine { return engine }, logger)
//
//	rec, out, err := mgr.Create(ctx, nil, "")
//	rec, out, err = mgr.Apply(ctx, rec.ID, selection.Toggle("pipeline"))
//
// # Related Packages
//
//   - pkg/selection: The state machine sessions drive
//   - pkg/api: HTTP endpoints over Manager
package session
