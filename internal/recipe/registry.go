package recipe

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry provides recipe management with caching and thread safety.
// It wraps a Repository and adds an in-memory cache for fast lookups.
//
// The cache is populated on startup via RefreshCache() and kept in sync
// by cache-invalidating CRUD operations.
//
// All public methods are thread-safe.
type Registry struct {
	repo    Repository
	cache   map[string]*Recipe // Cached recipes by ID
	cacheMu sync.RWMutex       // Protects cache
	logger  Logger
}

// NewRegistry creates a new recipe registry.
// The repository is used for persistence; the registry adds caching.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[string]*Recipe),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// RefreshCache reloads all recipes from the repository into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	recipes, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[string]*Recipe, len(recipes))
	for i := range recipes {
		rec := recipes[i]
		r.cache[rec.ID] = rec.DeepCopy()
	}

	r.logger.Info("recipe cache refreshed", "count", len(recipes))
	return nil
}

// Get retrieves a recipe by ID.
// The returned recipe is a deep copy; callers can safely modify it.
func (r *Registry) Get(_ context.Context, id string) (*Recipe, error) {
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()

	if ok {
		return cached.DeepCopy(), nil
	}
	return nil, ErrNotFound
}

// GetByName retrieves a recipe by its name.
// The returned recipe is a deep copy.
func (r *Registry) GetByName(_ context.Context, name string) (*Recipe, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	for _, rec := range r.cache {
		if rec.Name == name {
			return rec.DeepCopy(), nil
		}
	}
	return nil, ErrNotFound
}

// List retrieves all recipes from the cache.
// Returns deep copies sorted by name for deterministic ordering.
func (r *Registry) List(_ context.Context) ([]Recipe, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	recipes := make([]Recipe, 0, len(r.cache))
	for _, rec := range r.cache {
		recipes = append(recipes, *rec.DeepCopy())
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes, nil
}

// Count returns the number of cached recipes.
func (r *Registry) Count() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}

// Create validates and persists a new recipe, then caches it.
// A missing ID is filled with a fresh UUID.
func (r *Registry) Create(ctx context.Context, rec *Recipe) error {
	if rec != nil && rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := Validate(rec); err != nil {
		return err
	}

	if err := r.repo.Create(ctx, rec); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[rec.ID] = rec.DeepCopy()
	r.cacheMu.Unlock()

	r.logger.Info("recipe created", "recipe_id", rec.ID, "name", rec.Name)
	return nil
}

// Update validates and persists changes to an existing recipe.
func (r *Registry) Update(ctx context.Context, rec *Recipe) error {
	if err := Validate(rec); err != nil {
		return err
	}

	if err := r.repo.Update(ctx, rec); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[rec.ID] = rec.DeepCopy()
	r.cacheMu.Unlock()

	r.logger.Info("recipe updated", "recipe_id", rec.ID, "name", rec.Name)
	return nil
}

// Delete removes a recipe from persistence and cache.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, id)
	r.cacheMu.Unlock()

	r.logger.Info("recipe deleted", "recipe_id", id)
	return nil
}
