package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/platform/logger"
	"github.com/shoresh/familytree-api/internal/store"
)

// state is the mutable content of the store. Records are stored by value so
// a shallow copy of the map is a full snapshot.
type state struct {
	order []uuid.UUID
	byID  map[uuid.UUID]domain.Person
}

func newState() *state {
	return &state{byID: make(map[uuid.UUID]domain.Person)}
}

func (s *state) clone() *state {
	c := &state{
		order: append([]uuid.UUID(nil), s.order...),
		byID:  make(map[uuid.UUID]domain.Person, len(s.byID)),
	}
	for id, p := range s.byID {
		c.byID[id] = p
	}
	return c
}

// PersonStore implements store.PersonStore on a map guarded by a single
// RWMutex. Transactions run on a private copy that replaces the live state
// on success.
type PersonStore struct {
	mu     *sync.RWMutex
	data   *state
	inTx   bool
	logger *slog.Logger
}

// NewPersonStore creates an empty store. A nil logger falls back to
// slog.Default().
func NewPersonStore(logger *slog.Logger) *PersonStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonStore{
		mu:     &sync.RWMutex{},
		data:   newState(),
		logger: logger.With(slog.String("component", "memory_person_store")),
	}
}

var _ store.PersonStore = (*PersonStore)(nil)

// lock takes the write lock unless the caller is a transaction view, which
// already holds it.
func (s *PersonStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *PersonStore) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// List returns every person in creation order.
func (s *PersonStore) List(ctx context.Context) ([]domain.Person, error) {
	defer s.rlock()()

	people := make([]domain.Person, 0, len(s.data.order))
	for _, id := range s.data.order {
		people = append(people, s.data.byID[id])
	}
	return people, nil
}

// GetByID retrieves a person by ID.
func (s *PersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	defer s.rlock()()

	p, ok := s.data.byID[id]
	if !ok {
		return nil, store.ErrPersonNotFound
	}
	return &p, nil
}

// Create saves a new person.
func (s *PersonStore) Create(ctx context.Context, person *domain.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	defer s.lock()()

	if _, exists := s.data.byID[person.ID]; exists {
		return store.ErrPersonExists
	}
	s.data.byID[person.ID] = *person
	s.data.order = append(s.data.order, person.ID)

	logger.FromContextOrDefault(ctx, s.logger).Debug("person created",
		slog.String("person_id", person.ID.String()))
	return nil
}

// Update replaces an existing person.
func (s *PersonStore) Update(ctx context.Context, person *domain.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	defer s.lock()()

	existing, ok := s.data.byID[person.ID]
	if !ok {
		return store.ErrPersonNotFound
	}
	updated := *person
	updated.CreatedAt = existing.CreatedAt
	s.data.byID[person.ID] = updated
	return nil
}

// SetSpouse sets or clears one side of a spouse link.
func (s *PersonStore) SetSpouse(ctx context.Context, id, spouseID uuid.UUID) error {
	if id == spouseID {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrSelfReference)
	}

	defer s.lock()()

	p, ok := s.data.byID[id]
	if !ok {
		return store.ErrPersonNotFound
	}
	p.SpouseID = spouseID
	s.data.byID[id] = p
	return nil
}

// ClearReferences unsets every slot pointing at id.
func (s *PersonStore) ClearReferences(ctx context.Context, id uuid.UUID) (int, error) {
	defer s.lock()()

	cleared := 0
	for _, other := range s.data.order {
		p := s.data.byID[other]
		if p.ClearReferencesTo(id) {
			s.data.byID[other] = p
			cleared++
		}
	}
	return cleared, nil
}

// Delete removes a person by ID.
func (s *PersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	defer s.lock()()

	if _, ok := s.data.byID[id]; !ok {
		return store.ErrPersonNotFound
	}
	delete(s.data.byID, id)
	for i, other := range s.data.order {
		if other == id {
			s.data.order = append(s.data.order[:i:i], s.data.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll removes every person.
func (s *PersonStore) DeleteAll(ctx context.Context) (int, error) {
	defer s.lock()()

	n := len(s.data.order)
	s.data = newState()
	return n, nil
}

// WithinTx runs fn against a private copy of the store while holding the
// write lock, and installs the copy only if fn succeeds. Other callers see
// either the state before or the state after, never a partial result.
func (s *PersonStore) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx store.PersonStore) error,
) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := &PersonStore{
		mu:     s.mu,
		data:   s.data.clone(),
		inTx:   true,
		logger: s.logger,
	}
	if err := fn(ctx, view); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("transaction discarded",
			slog.String("error", err.Error()))
		return err
	}
	s.data = view.data
	return nil
}
