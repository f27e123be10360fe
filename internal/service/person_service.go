package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/domain/calendar"
	"github.com/shoresh/familytree-api/internal/domain/family"
	"github.com/shoresh/familytree-api/internal/platform/logger"
	"github.com/shoresh/familytree-api/internal/platform/metrics"
	"github.com/shoresh/familytree-api/internal/store"
)

// PersonInput carries the fields of a new person. Relationship IDs are
// optional; uuid.Nil leaves the slot unset.
type PersonInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Notes         string
	Birth         domain.DatePair
	Death         domain.DatePair
	PrimaryFormat calendar.System
	FatherID      uuid.UUID
	MotherID      uuid.UUID
	SpouseID      uuid.UUID
}

// PersonPatch is a partial update. Nil fields are left unchanged; a pointer to
// uuid.Nil clears a relationship.
type PersonPatch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	Notes         *string
	Birth         *domain.DatePair
	Death         *domain.DatePair
	PrimaryFormat *calendar.System
	FatherID      *uuid.UUID
	MotherID      *uuid.UUID
	SpouseID      *uuid.UUID
}

// ConversionRequest asks for a date in the other calendar. Exactly one of
// Gregorian or Hebrew is expected; HebrewYear defaults to the current Hebrew
// year.
type ConversionRequest struct {
	Gregorian  string
	Hebrew     string
	HebrewYear int
}

// Conversion is a date expressed in both calendars.
type Conversion struct {
	Gregorian   string `json:"gregorian"`
	Hebrew      string `json:"hebrew"`
	HebrewLatin string `json:"hebrewLatin"`
	HebrewYear  int    `json:"hebrewYear"`
}

// PersonService provides the family tree use cases.
type PersonService interface {
	// CreatePerson stores a new person. A requested spouse is back-linked in
	// the same transaction.
	CreatePerson(ctx context.Context, in PersonInput) (*PersonView, error)

	// GetPerson returns one enriched person.
	GetPerson(ctx context.Context, id uuid.UUID) (*PersonView, error)

	// ListPeople returns every person matching query, in records order.
	// An empty query matches everyone.
	ListPeople(ctx context.Context, query string) ([]PersonView, error)

	// UpcomingBirthdays returns at most limit people with a known birthday,
	// soonest first.
	UpcomingBirthdays(ctx context.Context, limit int) ([]PersonView, error)

	// UpdatePerson applies a partial update.
	UpdatePerson(ctx context.Context, id uuid.UUID, patch PersonPatch) (*PersonView, error)

	// LinkSpouses sets id and spouseID as each other's spouse, or unlinks id
	// when spouseID is uuid.Nil.
	LinkSpouses(ctx context.Context, id, spouseID uuid.UUID) error

	// DeletePerson removes a person and clears every reference to them. It
	// returns the deleted person's full name.
	DeletePerson(ctx context.Context, id uuid.UUID) (string, error)

	// DeleteAllPeople removes every record and returns how many were removed.
	DeleteAllPeople(ctx context.Context) (int, error)

	// SuggestRelationships proposes links for a draft.
	SuggestRelationships(ctx context.Context, draft family.Draft) ([]family.Suggestion, error)

	// ConvertDate converts between the Gregorian and Hebrew calendars.
	ConvertDate(ctx context.Context, req ConversionRequest) (*Conversion, error)
}

// Option configures a PersonService.
type Option func(*personServiceImpl)

// WithClock replaces time.Now as the source of "today".
func WithClock(clock func() time.Time) Option {
	return func(s *personServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetrics records unresolved dates and suggestions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *personServiceImpl) {
		s.metrics = m
	}
}

// WithSuggester replaces the default suggestion rule table.
func WithSuggester(suggester *family.Suggester) Option {
	return func(s *personServiceImpl) {
		if suggester != nil {
			s.suggester = suggester
		}
	}
}

type personServiceImpl struct {
	people    store.PersonStore
	suggester *family.Suggester
	metrics   *metrics.Metrics
	clock     func() time.Time
	logger    *slog.Logger
}

// NewPersonService creates a PersonService backed by people.
// It returns an error if the store is nil.
func NewPersonService(people store.PersonStore, logger *slog.Logger, opts ...Option) (PersonService, error) {
	if people == nil {
		return nil, &PersonServiceError{
			Operation: "create_service",
			Message:   "person store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &personServiceImpl{
		people:    people,
		suggester: family.NewSuggester(),
		clock:     time.Now,
		logger:    logger.With("component", "person_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// snapshot takes the single List read an enrichment works from.
func (s *personServiceImpl) snapshot(ctx context.Context, op string) (*family.Graph, []domain.Person, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list people",
			"error", err,
			"operation", op)
		return nil, nil, NewPersonServiceError(op, "failed to list people", err)
	}
	return family.NewGraph(people), people, nil
}

// CreatePerson implements PersonService.
func (s *personServiceImpl) CreatePerson(ctx context.Context, in PersonInput) (*PersonView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := domain.NewPerson(in.FirstName, in.LastName, in.Birth, in.PrimaryFormat)
	if err != nil {
		log.Debug("invalid person", "error", err)
		return nil, err
	}
	now := s.clock().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Email = strings.TrimSpace(in.Email)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Notes = strings.TrimSpace(in.Notes)
	p.Death = in.Death.Normalize()

	err = s.people.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		var err error
		if p.FatherID, err = s.resolveReference(ctx, tx, "father", in.FatherID); err != nil {
			return err
		}
		if p.MotherID, err = s.resolveReference(ctx, tx, "mother", in.MotherID); err != nil {
			return err
		}
		spouseID, err := s.resolveReference(ctx, tx, "spouse", in.SpouseID)
		if err != nil {
			return err
		}

		if err := tx.Create(ctx, p); err != nil {
			return err
		}
		if spouseID == uuid.Nil {
			return nil
		}
		return s.link(ctx, tx, p.ID, spouseID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to create person", "error", err, "person_id", p.ID)
		return nil, NewPersonServiceError("create_person", "failed to save person", err)
	}

	log.Info("person created", "person_id", p.ID)
	return s.GetPerson(ctx, p.ID)
}

// resolveReference returns id when it names an existing person and uuid.Nil
// when it dangles.
func (s *personServiceImpl) resolveReference(
	ctx context.Context,
	tx store.PersonStore,
	slot string,
	id uuid.UUID,
) (uuid.UUID, error) {
	if id == uuid.Nil {
		return uuid.Nil, nil
	}
	if _, err := tx.GetByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Warn("dropping dangling reference",
				"slot", slot,
				"reference_id", id)
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return id, nil
}

// link makes id and spouseID each other's spouse inside tx. The previous
// spouse of id, if any, loses the back-reference. A spouseID of uuid.Nil
// only unlinks.
func (s *personServiceImpl) link(ctx context.Context, tx store.PersonStore, id, spouseID uuid.UUID) error {
	if id == spouseID {
		return domain.ErrSelfReference
	}

	p, err := tx.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.SpouseID == spouseID {
		return nil
	}

	if spouseID != uuid.Nil {
		spouse, err := tx.GetByID(ctx, spouseID)
		if err != nil {
			return err
		}
		if spouse.SpouseID != uuid.Nil && spouse.SpouseID != id {
			return ErrSpouseTaken
		}
	}

	if p.SpouseID != uuid.Nil {
		previous, err := tx.GetByID(ctx, p.SpouseID)
		switch {
		case err == nil && previous.SpouseID == id:
			if err := tx.SetSpouse(ctx, previous.ID, uuid.Nil); err != nil {
				return err
			}
		case err != nil && !store.IsNotFoundError(err):
			return err
		}
	}

	if err := tx.SetSpouse(ctx, id, spouseID); err != nil {
		return err
	}
	if spouseID != uuid.Nil {
		return tx.SetSpouse(ctx, spouseID, id)
	}
	return nil
}

// GetPerson implements PersonService.
func (s *personServiceImpl) GetPerson(ctx context.Context, id uuid.UUID) (*PersonView, error) {
	g, _, err := s.snapshot(ctx, "get_person")
	if err != nil {
		return nil, err
	}
	p, ok := g.Person(id)
	if !ok {
		return nil, ErrPersonNotFound
	}
	view := s.viewOf(ctx, g, &p, calendar.DateOf(s.clock()))
	return &view, nil
}

// ListPeople implements PersonService.
func (s *personServiceImpl) ListPeople(ctx context.Context, query string) ([]PersonView, error) {
	g, people, err := s.snapshot(ctx, "list_people")
	if err != nil {
		return nil, err
	}
	views := s.enrich(ctx, g, people)

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return views, nil
	}
	filtered := make([]PersonView, 0, len(views))
	for i := range views {
		if matches(&views[i], term) {
			filtered = append(filtered, views[i])
		}
	}
	return filtered, nil
}

// UpcomingBirthdays implements PersonService. Ties are broken by ID.
func (s *personServiceImpl) UpcomingBirthdays(ctx context.Context, limit int) ([]PersonView, error) {
	g, people, err := s.snapshot(ctx, "upcoming_birthdays")
	if err != nil {
		return nil, err
	}
	views := s.enrich(ctx, g, people)
	SortByBirthday(views)

	known := make([]PersonView, 0, len(views))
	for _, v := range views {
		if !v.BirthdayKnown() {
			break
		}
		known = append(known, v)
	}
	if limit > 0 && len(known) > limit {
		known = known[:limit]
	}
	return known, nil
}

// SortByBirthday orders views by days until the next birthday with unknown
// birthdays last and ties broken by ID.
func SortByBirthday(views []PersonView) {
	slices.SortStableFunc(views, func(a, b PersonView) int {
		if c := calendar.CompareOccurrences(a.occurrence(), b.occurrence()); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

// UpdatePerson implements PersonService.
func (s *personServiceImpl) UpdatePerson(ctx context.Context, id uuid.UUID, patch PersonPatch) (*PersonView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.people.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		p, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		applyPatch(p, patch)
		if patch.FatherID != nil {
			if p.FatherID, err = s.resolveReference(ctx, tx, "father", *patch.FatherID); err != nil {
				return err
			}
		}
		if patch.MotherID != nil {
			if p.MotherID, err = s.resolveReference(ctx, tx, "mother", *patch.MotherID); err != nil {
				return err
			}
		}
		if patch.SpouseID != nil && *patch.SpouseID == p.ID {
			return domain.ErrSelfReference
		}
		p.Touch(s.clock())

		if err := p.Validate(); err != nil {
			return err
		}
		if err := tx.Update(ctx, p); err != nil {
			return err
		}
		if patch.SpouseID != nil {
			return s.link(ctx, tx, p.ID, *patch.SpouseID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to update person", "error", err, "person_id", id)
		return nil, NewPersonServiceError("update_person", "failed to update person", err)
	}

	log.Info("person updated", "person_id", id)
	return s.GetPerson(ctx, id)
}

func applyPatch(p *domain.Person, patch PersonPatch) {
	if patch.FirstName != nil {
		p.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		p.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		p.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		p.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Notes != nil {
		p.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Birth != nil {
		p.Birth = patch.Birth.Normalize()
	}
	if patch.Death != nil {
		p.Death = patch.Death.Normalize()
	}
	if patch.PrimaryFormat != nil {
		p.PrimaryFormat = *patch.PrimaryFormat
	}
}

// LinkSpouses implements PersonService.
func (s *personServiceImpl) LinkSpouses(ctx context.Context, id, spouseID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.people.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		return s.link(ctx, tx, id, spouseID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		log.Warn("failed to link spouses", "error", err, "person_id", id, "spouse_id", spouseID)
		return NewPersonServiceError("link_spouses", "failed to link spouses", err)
	}

	log.Info("spouses linked", "person_id", id, "spouse_id", spouseID)
	return nil
}

// DeletePerson implements PersonService.
func (s *personServiceImpl) DeletePerson(ctx context.Context, id uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		name    string
		cleared int
	)
	err := s.people.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		p, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = p.FullName()

		if cleared, err = tx.ClearReferences(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		log.Error("failed to delete person", "error", err, "person_id", id)
		return "", NewPersonServiceError("delete_person", "failed to delete person", err)
	}

	log.Info("person deleted", "person_id", id, "references_cleared", cleared)
	return name, nil
}

// DeleteAllPeople implements PersonService.
func (s *personServiceImpl) DeleteAllPeople(ctx context.Context) (int, error) {
	n, err := s.people.DeleteAll(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete all people", "error", err)
		return 0, NewPersonServiceError("delete_all_people", "failed to delete people", err)
	}
	return n, nil
}

// SuggestRelationships implements PersonService.
func (s *personServiceImpl) SuggestRelationships(
	ctx context.Context,
	draft family.Draft,
) ([]family.Suggestion, error) {
	g, _, err := s.snapshot(ctx, "suggest_relationships")
	if err != nil {
		return nil, err
	}

	suggestions := s.suggester.SuggestFrom(g, draft)
	for _, sg := range suggestions {
		s.metrics.Suggestion(sg.Rule)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("relationships suggested",
		"count", len(suggestions))
	return suggestions, nil
}

// ConvertDate implements PersonService. Parse failures are returned as
// calendar errors.
func (s *personServiceImpl) ConvertDate(ctx context.Context, req ConversionRequest) (*Conversion, error) {
	gregorianInput := strings.TrimSpace(req.Gregorian)
	hebrewInput := strings.TrimSpace(req.Hebrew)

	switch {
	case gregorianInput != "" && hebrewInput != "":
		return nil, domain.NewValidationError("date", "give either a gregorian or a hebrew date, not both")
	case gregorianInput != "":
		date, err := calendar.ParseGregorianDate(gregorianInput)
		if err != nil {
			return nil, err
		}
		hebrew, err := calendar.GregorianToHebrew(date)
		if err != nil {
			return nil, err
		}
		return &Conversion{
			Gregorian:   date.String(),
			Hebrew:      hebrew.Anniversary().HebrewString(),
			HebrewLatin: hebrew.Anniversary().String(),
			HebrewYear:  hebrew.Year,
		}, nil
	case hebrewInput != "":
		anniversary, err := calendar.ParseHebrewAnniversary(hebrewInput)
		if err != nil {
			return nil, err
		}
		year := req.HebrewYear
		if year == 0 {
			year = calendar.HebrewYearOf(calendar.DateOf(s.clock()))
		}
		date, err := calendar.HebrewToGregorian(anniversary, year)
		if err != nil {
			return nil, err
		}
		return &Conversion{
			Gregorian:   date.String(),
			Hebrew:      anniversary.HebrewString(),
			HebrewLatin: anniversary.String(),
			HebrewYear:  year,
		}, nil
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("empty conversion request")
	return nil, domain.NewValidationError("date", "a gregorian or hebrew date is required")
}
