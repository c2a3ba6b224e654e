// Package recipe provides the recipe library: the brew parameters a
// session is sequenced from, their mash-profile derivation, JSON loading,
// SQLite persistence and a cached registry.
//
// Architecture:
//
//	┌──────────────────────────────────────────────────────┐
//	│                 Registry (registry.go)               │
//	│  Thread-safe cache over Repository, deep copies out  │
//	│  ┌──────────────┐    ┌────────────────┐             │
//	│  │  Repository  │◀───│  JSON loaders  │ (seed)      │
//	│  │  (SQLite)    │    │  (loader.go)   │             │
//	│  └──────────────┘    └────────────────┘             │
//	└──────────────────────────────────────────────────────┘
//
// A Recipe is immutable once a session starts; the control loop works on
// its own deep copy and the derived Profile, never on cached state.
//
// # Key Types
//
//   - Recipe: strike/mashout/boil/cool parameters plus ordered mash steps
//   - Profile: mash steps flattened into time/temperature points with
//     interpolation over [0, Length)
//   - Repository: persistence interface with a SQLite implementation
//   - Registry: thread-safe in-memory cache wrapping Repository
//
// # Thread Safety
//
// Registry is safe for concurrent use. Recipe and Profile are immutable
// after construction and therefore safe to share.
//
// # Usage
//
//	repo := recipe.NewSQLiteRepository(db)
//	registry := recipe.NewRegistry(repo)
//	if err := registry.RefreshCache(ctx); err != nil {
//	    return err
//	}
//
//	r, err := registry.Get(ctx, id)
//	profile, err := recipe.NewProfile(r.MashSteps)
package recipe
