package api

import (
	"log/slog"
	"net/http"

	"github.com/shoresh/familytree-api/internal/api/shared"
	"github.com/shoresh/familytree-api/internal/platform/logger"
	"github.com/shoresh/familytree-api/internal/service"
)

const (
	// defaultUpcomingLimit is used when no limit is configured.
	defaultUpcomingLimit = 5
	maxUpcomingLimit     = 100
)

// PersonHandler serves the /api/people routes.
type PersonHandler struct {
	personService service.PersonService
	upcomingLimit int
	logger        *slog.Logger
}

// NewPersonHandler creates a PersonHandler. upcomingLimit is the default size
// of the upcoming birthdays list.
func NewPersonHandler(personService service.PersonService, upcomingLimit int, log *slog.Logger) *PersonHandler {
	if personService == nil {
		panic("personService cannot be nil")
	}
	if upcomingLimit < 1 {
		upcomingLimit = defaultUpcomingLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &PersonHandler{
		personService: personService,
		upcomingLimit: upcomingLimit,
		logger:        log.With(slog.String("component", "person_handler")),
	}
}

// ListPeople handles GET /api/people. The optional q parameter filters by
// name, contact details and relatives' names.
func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.personService.ListPeople(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list people")
		return
	}
	if people == nil {
		people = []service.PersonView{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, people)
}

// GetPerson handles GET /api/people/{id}.
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	person, err := h.personService.GetPerson(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get person")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, person)
}

// CreatePerson handles POST /api/people.
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreatePersonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	person, err := h.personService.CreatePerson(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create person")
		return
	}

	log.Info("person created", slog.String("person_id", person.ID.String()))
	w.Header().Set("Location", "/api/people/"+person.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, person)
}

// UpdatePerson handles PATCH /api/people/{id}.
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePersonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	person, err := h.personService.UpdatePerson(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update person")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, person)
}

// LinkSpouse handles PUT /api/people/{id}/spouse. Both records are updated
// together; an empty spouseId unlinks the person.
func (h *PersonHandler) LinkSpouse(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req LinkSpouseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	spouseID, err := parseOptionalUUID("spouseId", req.SpouseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.personService.LinkSpouses(r.Context(), id, spouseID); err != nil {
		HandleAPIError(w, r, err, "Failed to link spouses")
		return
	}

	person, err := h.personService.GetPerson(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get person")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, person)
}

// DeletePerson handles DELETE /api/people/{id}.
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	name, err := h.personService.DeletePerson(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete person")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("person deleted", slog.String("person_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, DeletePersonResponse{
		ID:      id,
		Name:    name,
		Message: name + " was deleted",
	})
}

// DeleteAllPeople handles DELETE /api/people.
func (h *PersonHandler) DeleteAllPeople(w http.ResponseWriter, r *http.Request) {
	n, err := h.personService.DeleteAllPeople(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete people")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Warn("all people deleted", slog.Int("count", n))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteAllResponse{Deleted: n})
}

// SuggestRelationships handles POST /api/people/suggestions.
func (h *PersonHandler) SuggestRelationships(w http.ResponseWriter, r *http.Request) {
	var req SuggestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	suggestions, err := h.personService.SuggestRelationships(r.Context(), draft)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to suggest relationships")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newSuggestionResponse(draft, suggestions))
}

// UpcomingBirthdays handles GET /api/birthdays/upcoming?limit=N.
func (h *PersonHandler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", h.upcomingLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}

	people, err := h.personService.UpcomingBirthdays(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list upcoming birthdays")
		return
	}
	if people == nil {
		people = []service.PersonView{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, people)
}
