package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/domain/calendar"
	"github.com/shoresh/familytree-api/internal/platform/logger"
	"github.com/shoresh/familytree-api/internal/store"
)

const personColumns = `id, first_name, last_name, email, phone,
	birth_gregorian, birth_hebrew, death_gregorian, death_hebrew,
	primary_format, notes, father_id, mother_id, spouse_id, created_at, updated_at`

// PostgresPersonStore implements the store.PersonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPersonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPersonStore creates a new PostgreSQL implementation of the PersonStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPersonStore(db store.DBTX, logger *slog.Logger) *PostgresPersonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPersonStore{
		db:     db,
		logger: logger.With(slog.String("component", "person_store")),
	}
}

// Ensure PostgresPersonStore implements store.PersonStore interface
var _ store.PersonStore = (*PostgresPersonStore)(nil)

// WithTx returns a store that runs every query on tx.
func (s *PostgresPersonStore) WithTx(tx *sql.Tx) *PostgresPersonStore {
	return &PostgresPersonStore{
		db:     tx,
		logger: s.logger,
	}
}

// WithinTx implements store.PersonStore.WithinTx. A store already bound to a
// transaction runs fn inside it.
func (s *PostgresPersonStore) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx store.PersonStore) error,
) error {
	switch db := s.db.(type) {
	case *sql.Tx:
		return fn(ctx, s)
	case *sql.DB:
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return fn(ctx, s.WithTx(tx))
		})
	default:
		return fmt.Errorf("%w: store is not backed by *sql.DB", store.ErrTransactionFailed)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*domain.Person, error) {
	var (
		p                         domain.Person
		format                    string
		father, mother, spouseRef uuid.NullUUID
	)
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.Birth.Gregorian,
		&p.Birth.Hebrew,
		&p.Death.Gregorian,
		&p.Death.Hebrew,
		&format,
		&p.Notes,
		&father,
		&mother,
		&spouseRef,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PrimaryFormat = calendar.System(format)
	p.FatherID = father.UUID
	p.MotherID = mother.UUID
	p.SpouseID = spouseRef.UUID
	return &p, nil
}

// nullable stores uuid.Nil as SQL NULL.
func nullable(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

// List implements store.PersonStore.List.
func (s *PostgresPersonStore) List(ctx context.Context) ([]domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+personColumns+` FROM people ORDER BY seq`)
	if err != nil {
		log.Error("failed to list people", slog.String("error", err.Error()))
		return nil, store.NewStoreError("person", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	people := make([]domain.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			log.Error("failed to scan person row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("person", "list", "scan failed", err)
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("person", "list", "row iteration failed", err)
	}

	log.Debug("people listed", slog.Int("count", len(people)))
	return people, nil
}

// GetByID implements store.PersonStore.GetByID.
func (s *PostgresPersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1`, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("person not found", slog.String("person_id", id.String()))
			return nil, store.ErrPersonNotFound
		}
		log.Error("failed to get person by ID",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return nil, store.NewStoreError("person", "get", "query failed", MapError(err))
	}
	return p, nil
}

// Create implements store.PersonStore.Create.
func (s *PostgresPersonStore) Create(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		log.Warn("person validation failed during create",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO people (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		person.ID,
		person.FirstName,
		person.LastName,
		person.Email,
		person.Phone,
		person.Birth.Gregorian,
		person.Birth.Hebrew,
		person.Death.Gregorian,
		person.Death.Hebrew,
		string(person.PrimaryFormat),
		person.Notes,
		nullable(person.FatherID),
		nullable(person.MotherID),
		nullable(person.SpouseID),
		person.CreatedAt,
		person.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate person ID", slog.String("person_id", person.ID.String()))
			return store.ErrPersonExists
		}
		log.Error("failed to create person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return store.NewStoreError("person", "create", "insert failed", MapError(err))
	}

	log.Info("person created", slog.String("person_id", person.ID.String()))
	return nil
}

// Update implements store.PersonStore.Update.
func (s *PostgresPersonStore) Update(ctx context.Context, person *domain.Person) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE people SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			birth_gregorian = $6, birth_hebrew = $7, death_gregorian = $8, death_hebrew = $9,
			primary_format = $10, notes = $11,
			father_id = $12, mother_id = $13, spouse_id = $14, updated_at = $15
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		person.ID,
		person.FirstName,
		person.LastName,
		person.Email,
		person.Phone,
		person.Birth.Gregorian,
		person.Birth.Hebrew,
		person.Death.Gregorian,
		person.Death.Hebrew,
		string(person.PrimaryFormat),
		person.Notes,
		nullable(person.FatherID),
		nullable(person.MotherID),
		nullable(person.SpouseID),
		person.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update person",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return store.NewStoreError("person", "update", "update failed", updateFailed(err))
	}
	if err := checkRowsAffected(result); err != nil {
		return err
	}

	log.Debug("person updated", slog.String("person_id", person.ID.String()))
	return nil
}

// SetSpouse implements store.PersonStore.SetSpouse.
func (s *PostgresPersonStore) SetSpouse(ctx context.Context, id, spouseID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == spouseID {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrSelfReference)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE people SET spouse_id = $2, updated_at = $3 WHERE id = $1`,
		id, nullable(spouseID), time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to set spouse",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return store.NewStoreError("person", "set_spouse", "update failed", updateFailed(err))
	}
	return checkRowsAffected(result)
}

// ClearReferences implements store.PersonStore.ClearReferences.
func (s *PostgresPersonStore) ClearReferences(ctx context.Context, id uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE people SET
			father_id = CASE WHEN father_id = $1 THEN NULL ELSE father_id END,
			mother_id = CASE WHEN mother_id = $1 THEN NULL ELSE mother_id END,
			spouse_id = CASE WHEN spouse_id = $1 THEN NULL ELSE spouse_id END,
			updated_at = $2
		WHERE father_id = $1 OR mother_id = $1 OR spouse_id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		log.Error("failed to clear references",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return 0, store.NewStoreError("person", "clear_references", "update failed", updateFailed(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	log.Debug("references cleared",
		slog.String("person_id", id.String()),
		slog.Int64("records", n))
	return int(n), nil
}

// Delete implements store.PersonStore.Delete.
func (s *PostgresPersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete person",
			slog.String("error", err.Error()),
			slog.String("person_id", id.String()))
		return store.NewStoreError("person", "delete", "delete failed", deleteFailed(err))
	}
	if err := checkRowsAffected(result); err != nil {
		return err
	}

	log.Info("person deleted", slog.String("person_id", id.String()))
	return nil
}

// DeleteAll implements store.PersonStore.DeleteAll.
func (s *PostgresPersonStore) DeleteAll(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM people`)
	if err != nil {
		log.Error("failed to delete all people", slog.String("error", err.Error()))
		return 0, store.NewStoreError("person", "delete_all", "delete failed", deleteFailed(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Warn("all people deleted", slog.Int64("count", n))
	return int(n), nil
}
