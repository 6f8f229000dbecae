// Package store holds the recipe collection and its transient filter and
// search criteria. Every mutation is applied under one mutex and written
// through to a domain.SnapshotStore before the call returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/snapshot"
)

// Option configures the store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for new recipes.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithFilter sets the initial category filter.
func WithFilter(value string) Option {
	return func(s *Store) {
		s.filter = value
	}
}

// WithSearchTerm sets the initial search text.
func WithSearchTerm(text string) Option {
	return func(s *Store) {
		s.search = text
	}
}

// Store is the single source of truth for the collection. Safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	recipes   []domain.Recipe
	filter    string
	search    string
	revision  uint64
	snapshots domain.SnapshotStore
	newID     func() string
	log       *logger.Logger
}

// New creates a store and loads the persisted collection once. A missing,
// unreadable or corrupt snapshot yields an empty collection.
func New(ctx context.Context, snapshots domain.SnapshotStore, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		recipes:   []domain.Recipe{},
		filter:    domain.FilterAll,
		snapshots: snapshots,
		newID:     generateID,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recipes = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []domain.Recipe {
	data, err := s.snapshots.Load(ctx)
	if errors.Is(err, domain.ErrNoSnapshot) {
		s.log.Debug("no snapshot yet, starting with an empty collection")
		return []domain.Recipe{}
	}
	if err != nil {
		s.log.Warn("loading snapshot failed, starting empty: %v", err)
		return []domain.Recipe{}
	}

	decoded, err := snapshot.Decode(data)
	if err != nil {
		s.log.Warn("snapshot is corrupt, starting empty: %v", err)
		return []domain.Recipe{}
	}

	out := make([]domain.Recipe, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for i, r := range decoded {
		if r.ID == "" {
			s.log.Warn("dropping snapshot record %d: missing id", i)
			continue
		}
		if seen[r.ID] {
			s.log.Warn("dropping snapshot record %d: duplicate id %s", i, r.ID)
			continue
		}
		r = s.repairLoaded(r)
		if err := validateDraft(DraftOf(r)); err != nil {
			if lacksRequired(err) {
				s.log.Warn("dropping snapshot record %s: %v", r.ID, err)
				continue
			}
			s.log.Warn("keeping snapshot record %s: %v", r.ID, err)
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	s.log.Info("loaded %d recipes", len(out))
	return out
}

// repairLoaded clears optional numeric fields that are not positive. Older
// snapshots may hold a zero prep time.
func (s *Store) repairLoaded(r domain.Recipe) domain.Recipe {
	if r.PrepTime != nil && *r.PrepTime <= 0 {
		s.log.Warn("snapshot record %s: clearing prepTime %d", r.ID, *r.PrepTime)
		r.PrepTime = nil
	}
	if r.Servings != nil && *r.Servings <= 0 {
		s.log.Warn("snapshot record %s: clearing servings %d", r.ID, *r.Servings)
		r.Servings = nil
	}
	return r
}

// Create validates the request, assigns a fresh id, appends the recipe and
// persists. On a save failure the recipe is kept and a
// *domain.PersistenceError is returned with it.
func (s *Store) Create(ctx context.Context, req CreateRequest) (domain.Recipe, error) {
	draft := req.Draft.normalize()
	if err := validateDraft(draft); err != nil {
		return domain.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return domain.Recipe{}, err
	}

	r := draft.toRecipe(id)
	s.recipes = append(s.recipes, r)
	s.revision++
	s.log.Info("recipe created: %s (%s)", r.Name, r.ID)

	return r.Clone(), s.persist(ctx, "create")
}

// Update replaces the recipe named by req.ID in place, keeping its id and
// position. An unknown id yields *domain.NotFoundError before the draft is
// validated.
func (s *Store) Update(ctx context.Context, req UpdateRequest) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(req.ID)
	if i < 0 {
		return domain.Recipe{}, &domain.NotFoundError{ID: req.ID}
	}

	draft := req.Draft.normalize()
	if err := validateDraft(draft); err != nil {
		return domain.Recipe{}, err
	}

	r := draft.toRecipe(req.ID)
	s.recipes[i] = r
	s.revision++
	s.log.Info("recipe updated: %s (%s)", r.Name, r.ID)

	return r.Clone(), s.persist(ctx, "update")
}

// Delete removes the recipe with id. Deleting an unknown id is not an
// error; the collection is persisted either way.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.recipes = append(s.recipes[:i:i], s.recipes[i+1:]...)
		s.revision++
		s.log.Info("recipe deleted: %s", id)
	} else {
		s.log.Debug("delete of unknown recipe %s", id)
	}
	return s.persist(ctx, "delete")
}

// ToggleFavorite flips the favorite flag of the recipe with id. The bool
// reports whether the recipe existed; nothing happens when it does not.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (domain.Recipe, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("toggle favorite of unknown recipe %s", id)
		return domain.Recipe{}, false, nil
	}

	s.recipes[i].IsFavorite = !s.recipes[i].IsFavorite
	s.revision++
	s.log.Debug("recipe %s favorite=%v", id, s.recipes[i].IsFavorite)

	return s.recipes[i].Clone(), true, s.persist(ctx, "toggle favorite")
}

// SetFilter stores the category filter verbatim. It is never persisted.
func (s *Store) SetFilter(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != value {
		s.filter = value
		s.revision++
	}
}

// SetSearchTerm stores the search text verbatim. It is never persisted.
func (s *Store) SetSearchTerm(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.search != text {
		s.search = text
		s.revision++
	}
}

// Recipes returns a copy of the collection in insertion order.
func (s *Store) Recipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.recipes)
}

// Get returns the recipe with id.
func (s *Store) Get(id string) (domain.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.recipes[i].Clone(), true
	}
	return domain.Recipe{}, false
}

// Filter returns the current category filter.
func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SearchTerm returns the current search text.
func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// Revision returns a counter bumped by every mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// State returns a consistent copy of the whole state.
func (s *Store) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.State{
		Recipes:    cloneAll(s.recipes),
		Filter:     s.filter,
		SearchTerm: s.search,
		Revision:   s.revision,
	}
}

// persist writes the whole collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, op string) error {
	data, err := snapshot.Encode(s.recipes)
	if err == nil {
		err = s.snapshots.Save(ctx, data)
	}
	if err != nil {
		s.log.Error("persisting after %s failed: %v", op, err)
		return &domain.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) uniqueID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
		s.log.Debug("generated id %q collides, retrying", id)
	}
	return "", fmt.Errorf("no unique id after %d attempts", maxIDAttempts)
}

func (s *Store) indexOf(id string) int {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(in []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
