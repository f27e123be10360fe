package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain/calendar"
)

// Validation errors for Person fields.
var (
	ErrEmptyPersonID       = NewValidationError("id", "cannot be empty")
	ErrEmptyFirstName      = NewValidationError("firstName", "cannot be empty")
	ErrEmptyLastName       = NewValidationError("lastName", "cannot be empty")
	ErrEmptyBirthGregorian = NewValidationError("birth.gregorian", "cannot be empty")
	ErrEmptyBirthHebrew    = NewValidationError("birth.hebrew", "cannot be empty")
	ErrInvalidFormat       = NewValidationError("primaryFormat", "must be hebrew or gregorian")
)

// DatePair holds the same day written in both calendars. The Gregorian value
// is a full date; the Hebrew value is an anniversary without a year.
type DatePair struct {
	Gregorian string `json:"gregorian"`
	Hebrew    string `json:"hebrew"`
}

// IsZero reports whether neither side is set.
func (p DatePair) IsZero() bool {
	return strings.TrimSpace(p.Gregorian) == "" && strings.TrimSpace(p.Hebrew) == ""
}

// Normalize rewrites both sides into their stored forms: DD/MM/YYYY for the
// Gregorian date and the "ב" prefix for Hebrew script. Unparsable values are
// kept as given.
func (p DatePair) Normalize() DatePair {
	return DatePair{
		Gregorian: calendar.NormalizeGregorian(strings.TrimSpace(p.Gregorian)),
		Hebrew:    calendar.NormalizeHebrew(p.Hebrew),
	}
}

// Person is a single record in the family tree. Relatives are weak
// references by ID; uuid.Nil means the slot is unset.
type Person struct {
	ID            uuid.UUID       `json:"id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Birth         DatePair        `json:"birth"`
	Death         DatePair        `json:"death"`
	PrimaryFormat calendar.System `json:"primaryFormat"`
	Notes         string          `json:"notes,omitempty"`
	FatherID      uuid.UUID       `json:"fatherId"`
	MotherID      uuid.UUID       `json:"motherId"`
	SpouseID      uuid.UUID       `json:"spouseId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewPerson creates a Person with a fresh ID and normalized birth dates.
// An empty format defaults to the Hebrew calendar.
func NewPerson(firstName, lastName string, birth DatePair, format calendar.System) (*Person, error) {
	if format == "" {
		format = calendar.SystemHebrew
	}
	now := time.Now().UTC()
	p := &Person{
		ID:            uuid.New(),
		FirstName:     strings.TrimSpace(firstName),
		LastName:      strings.TrimSpace(lastName),
		Birth:         birth.Normalize(),
		PrimaryFormat: format,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks required fields and rejects self references.
func (p *Person) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPersonID
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(p.LastName) == "" {
		return ErrEmptyLastName
	}
	if strings.TrimSpace(p.Birth.Gregorian) == "" {
		return ErrEmptyBirthGregorian
	}
	if strings.TrimSpace(p.Birth.Hebrew) == "" {
		return ErrEmptyBirthHebrew
	}
	if !p.PrimaryFormat.Valid() {
		return ErrInvalidFormat
	}
	if p.FatherID == p.ID || p.MotherID == p.ID || p.SpouseID == p.ID {
		return ErrSelfReference
	}
	return nil
}

// FullName joins first and last name.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsDeceased reports whether either side of the death date is recorded.
func (p *Person) IsDeceased() bool {
	return !p.Death.IsZero()
}

// BirthAnniversary returns the birth date in the person's primary calendar.
func (p *Person) BirthAnniversary() string {
	if p.PrimaryFormat == calendar.SystemGregorian {
		return p.Birth.Gregorian
	}
	return p.Birth.Hebrew
}

// References reports whether any relationship slot points at id.
func (p *Person) References(id uuid.UUID) bool {
	return id != uuid.Nil && (p.FatherID == id || p.MotherID == id || p.SpouseID == id)
}

// ClearReferencesTo unsets every slot pointing at id and reports whether
// anything changed.
func (p *Person) ClearReferencesTo(id uuid.UUID) bool {
	if !p.References(id) {
		return false
	}
	if p.FatherID == id {
		p.FatherID = uuid.Nil
	}
	if p.MotherID == id {
		p.MotherID = uuid.Nil
	}
	if p.SpouseID == id {
		p.SpouseID = uuid.Nil
	}
	return true
}

// Touch updates the modification timestamp.
func (p *Person) Touch(now time.Time) {
	p.UpdatedAt = now.UTC()
}
