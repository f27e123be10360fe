package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
)

// PersonStore defines the interface for person record persistence.
//
// Relationship slots are weak references. The store never enforces that a
// referenced ID exists; keeping references consistent is the service's job,
// using WithinTx for mutations that touch more than one record.
type PersonStore interface {
	// List returns every person in creation order.
	List(ctx context.Context) ([]domain.Person, error)

	// GetByID retrieves a person by ID.
	// Returns ErrPersonNotFound if the person does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	// Create saves a new person.
	// Returns ErrPersonExists if the ID is already taken, or a wrapped
	// ErrInvalidEntity if the person fails domain validation.
	Create(ctx context.Context, person *domain.Person) error

	// Update replaces every field of an existing person.
	// Returns ErrPersonNotFound if the person does not exist.
	Update(ctx context.Context, person *domain.Person) error

	// SetSpouse sets one side of a spouse link; uuid.Nil clears it.
	// Returns ErrPersonNotFound if id does not exist.
	SetSpouse(ctx context.Context, id, spouseID uuid.UUID) error

	// ClearReferences unsets every father, mother and spouse slot that points
	// at id and returns the number of records changed.
	ClearReferences(ctx context.Context, id uuid.UUID) (int, error)

	// Delete removes a person by ID. It does not touch references to it.
	// Returns ErrPersonNotFound if the person does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every person and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)

	// WithinTx runs fn against a transactional view of the store. Every write
	// made through that view becomes visible together when fn returns nil;
	// none does when it returns an error. Nested calls join the outer
	// transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx PersonStore) error) error
}
