package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shoresh/familytree-api/internal/api/shared"
	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/service"
)

// CalendarHandler serves date conversion between the two calendars.
type CalendarHandler struct {
	personService service.PersonService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(personService service.PersonService) *CalendarHandler {
	return &CalendarHandler{personService: personService}
}

// Convert handles GET /api/calendar/convert. It accepts either
// ?gregorian=DD/MM/YYYY or ?hebrew=15 Adar with an optional &year=5784.
func (h *CalendarHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.ConversionRequest{
		Gregorian: strings.TrimSpace(q.Get("gregorian")),
		Hebrew:    strings.TrimSpace(q.Get("hebrew")),
	}
	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			HandleAPIError(w, r, domain.NewValidationError("year", "must be a positive Hebrew year"), "")
			return
		}
		req.HebrewYear = year
	}

	conv, err := h.personService.ConvertDate(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to convert date")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, conv)
}
