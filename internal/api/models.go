package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/domain/calendar"
	"github.com/shoresh/familytree-api/internal/domain/family"
	"github.com/shoresh/familytree-api/internal/service"
)

// DateRequest is a date written in both calendars.
type DateRequest struct {
	Gregorian string `json:"gregorian"`
	Hebrew    string `json:"hebrew"`
}

func (d DateRequest) pair() domain.DatePair {
	return domain.DatePair{Gregorian: d.Gregorian, Hebrew: d.Hebrew}
}

// BirthDateRequest is a birth date. Both sides are required.
type BirthDateRequest struct {
	Gregorian string `json:"gregorian" validate:"required"`
	Hebrew    string `json:"hebrew"    validate:"required"`
}

// CreatePersonRequest defines the payload for POST /api/people.
// Relationship IDs are optional; an empty string leaves the slot unset.
type CreatePersonRequest struct {
	FirstName     string           `json:"firstName"     validate:"required,max=100"`
	LastName      string           `json:"lastName"      validate:"required,max=100"`
	Email         string           `json:"email"         validate:"omitempty,email"`
	Phone         string           `json:"phone"         validate:"omitempty,max=32"`
	Notes         string           `json:"notes"         validate:"omitempty,max=2000"`
	Birth         BirthDateRequest `json:"birth"         validate:"required"`
	Death         DateRequest      `json:"death"`
	PrimaryFormat string           `json:"primaryFormat" validate:"omitempty,oneof=hebrew gregorian"`
	FatherID      string           `json:"fatherId"      validate:"omitempty,uuid"`
	MotherID      string           `json:"motherId"      validate:"omitempty,uuid"`
	SpouseID      string           `json:"spouseId"      validate:"omitempty,uuid"`
}

func (req CreatePersonRequest) toInput() (service.PersonInput, error) {
	in := service.PersonInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
		Birth:         domain.DatePair{Gregorian: req.Birth.Gregorian, Hebrew: req.Birth.Hebrew},
		Death:         req.Death.pair(),
		PrimaryFormat: calendar.System(req.PrimaryFormat),
	}

	var err error
	if in.FatherID, err = parseOptionalUUID("fatherId", req.FatherID); err != nil {
		return service.PersonInput{}, err
	}
	if in.MotherID, err = parseOptionalUUID("motherId", req.MotherID); err != nil {
		return service.PersonInput{}, err
	}
	if in.SpouseID, err = parseOptionalUUID("spouseId", req.SpouseID); err != nil {
		return service.PersonInput{}, err
	}
	return in, nil
}

// UpdatePersonRequest defines the payload for PATCH /api/people/{id}.
// Absent fields are left unchanged; an empty relationship ID clears the slot.
type UpdatePersonRequest struct {
	FirstName     *string      `json:"firstName"     validate:"omitempty,min=1,max=100"`
	LastName      *string      `json:"lastName"      validate:"omitempty,min=1,max=100"`
	Email         *string      `json:"email"`
	Phone         *string      `json:"phone"         validate:"omitempty,max=32"`
	Notes         *string      `json:"notes"         validate:"omitempty,max=2000"`
	Birth         *DateRequest `json:"birth"`
	Death         *DateRequest `json:"death"`
	PrimaryFormat *string      `json:"primaryFormat" validate:"omitempty,oneof=hebrew gregorian"`
	FatherID      *string      `json:"fatherId"`
	MotherID      *string      `json:"motherId"`
	SpouseID      *string      `json:"spouseId"`
}

func (req UpdatePersonRequest) toPatch() (service.PersonPatch, error) {
	patch := service.PersonPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	if req.Birth != nil {
		birth := req.Birth.pair()
		patch.Birth = &birth
	}
	if req.Death != nil {
		death := req.Death.pair()
		patch.Death = &death
	}
	if req.PrimaryFormat != nil {
		format := calendar.System(*req.PrimaryFormat)
		patch.PrimaryFormat = &format
	}

	refs := []struct {
		field string
		value *string
		dst   **uuid.UUID
	}{
		{"fatherId", req.FatherID, &patch.FatherID},
		{"motherId", req.MotherID, &patch.MotherID},
		{"spouseId", req.SpouseID, &patch.SpouseID},
	}
	for _, ref := range refs {
		if ref.value == nil {
			continue
		}
		id, err := parseOptionalUUID(ref.field, *ref.value)
		if err != nil {
			return service.PersonPatch{}, err
		}
		*ref.dst = &id
	}
	return patch, nil
}

// LinkSpouseRequest defines the payload for PUT /api/people/{id}/spouse.
// An empty spouseId unlinks the person.
type LinkSpouseRequest struct {
	SpouseID string `json:"spouseId" validate:"omitempty,uuid"`
}

// SuggestionRequest defines the draft for POST /api/people/suggestions.
type SuggestionRequest struct {
	PersonID  string   `json:"personId"  validate:"omitempty,uuid"`
	FatherID  string   `json:"fatherId"  validate:"omitempty,uuid"`
	MotherID  string   `json:"motherId"  validate:"omitempty,uuid"`
	SpouseID  string   `json:"spouseId"  validate:"omitempty,uuid"`
	SiblingID string   `json:"siblingId" validate:"omitempty,uuid"`
	ChildIDs  []string `json:"childIds"  validate:"omitempty,dive,uuid"`
}

func (req SuggestionRequest) toDraft() (family.Draft, error) {
	var (
		d   family.Draft
		err error
	)
	if d.PersonID, err = parseOptionalUUID("personId", req.PersonID); err != nil {
		return family.Draft{}, err
	}
	if d.FatherID, err = parseOptionalUUID("fatherId", req.FatherID); err != nil {
		return family.Draft{}, err
	}
	if d.MotherID, err = parseOptionalUUID("motherId", req.MotherID); err != nil {
		return family.Draft{}, err
	}
	if d.SpouseID, err = parseOptionalUUID("spouseId", req.SpouseID); err != nil {
		return family.Draft{}, err
	}
	if d.SiblingID, err = parseOptionalUUID("siblingId", req.SiblingID); err != nil {
		return family.Draft{}, err
	}
	for _, raw := range req.ChildIDs {
		id, err := parseOptionalUUID("childIds", raw)
		if err != nil {
			return family.Draft{}, err
		}
		if id != uuid.Nil {
			d.ChildIDs = append(d.ChildIDs, id)
		}
	}
	return d, nil
}

// SuggestionResponse wraps the proposed links and the draft as it reads
// once every suggestion is accepted.
type SuggestionResponse struct {
	Suggestions []family.Suggestion `json:"suggestions"`
	Applied     AppliedDraft        `json:"applied"`
}

// AppliedDraft lists the relationship references of a draft; unset slots are omitted.
type AppliedDraft struct {
	FatherID string   `json:"fatherId,omitempty"`
	MotherID string   `json:"motherId,omitempty"`
	SpouseID string   `json:"spouseId,omitempty"`
	ChildIDs []string `json:"childIds,omitempty"`
}

func newSuggestionResponse(draft family.Draft, suggestions []family.Suggestion) SuggestionResponse {
	if suggestions == nil {
		suggestions = []family.Suggestion{}
	}
	d := family.Apply(draft, suggestions)
	applied := AppliedDraft{
		FatherID: idString(d.FatherID),
		MotherID: idString(d.MotherID),
		SpouseID: idString(d.SpouseID),
	}
	for _, id := range d.ChildIDs {
		applied.ChildIDs = append(applied.ChildIDs, id.String())
	}
	return SuggestionResponse{Suggestions: suggestions, Applied: applied}
}

func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

// DeletePersonResponse reports who was removed.
type DeletePersonResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Message string    `json:"message"`
}

// DeleteAllResponse reports how many records were removed.
type DeleteAllResponse struct {
	Deleted int `json:"deleted"`
}

// TokenRequest defines the payload for POST /api/auth/token.
type TokenRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse carries an editor token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func newTokenResponse(token string, expiresAt time.Time) TokenResponse {
	return TokenResponse{Token: token, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)}
}
