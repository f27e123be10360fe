package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/domain/calendar"
	"github.com/shoresh/familytree-api/internal/domain/family"
	"github.com/shoresh/familytree-api/internal/platform/logger"
)

// PersonView is a person enriched with derived relatives and birthday data.
// DaysUntilBirthday and NextBirthday are nil when the birth date in the
// person's primary calendar cannot be resolved.
type PersonView struct {
	domain.Person
	family.View

	DaysUntilBirthday *int                    `json:"daysUntilBirthday"`
	NextBirthday      *calendar.GregorianDate `json:"nextBirthday"`
	BirthDisplay      string                  `json:"birthDisplay"`
	Deceased          bool                    `json:"deceased"`
}

// BirthdayKnown reports whether the next birthday could be resolved.
func (v *PersonView) BirthdayKnown() bool {
	return v.DaysUntilBirthday != nil
}

// occurrence returns the next birthday, or nil when unknown.
func (v *PersonView) occurrence() *calendar.Occurrence {
	if v.DaysUntilBirthday == nil || v.NextBirthday == nil {
		return nil
	}
	return &calendar.Occurrence{Date: *v.NextBirthday, DaysUntil: *v.DaysUntilBirthday}
}

// enrich derives a view for every person in the snapshot, in snapshot order.
func (s *personServiceImpl) enrich(ctx context.Context, g *family.Graph, people []domain.Person) []PersonView {
	today := calendar.DateOf(s.clock())
	views := make([]PersonView, 0, len(people))
	for i := range people {
		views = append(views, s.viewOf(ctx, g, &people[i], today))
	}
	return views
}

func (s *personServiceImpl) viewOf(
	ctx context.Context,
	g *family.Graph,
	p *domain.Person,
	today calendar.GregorianDate,
) PersonView {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view := PersonView{
		Person:       *p,
		BirthDisplay: calendar.Display(p.Birth.Gregorian, p.Birth.Hebrew, p.PrimaryFormat),
		Deceased:     p.IsDeceased(),
	}
	if rel, ok := g.View(p.ID); ok {
		view.View = rel
	} else {
		view.View = family.View{Children: []family.Summary{}, Siblings: []family.Summary{}}
	}

	occ, err := calendar.NextOccurrence(p.BirthAnniversary(), p.PrimaryFormat, today)
	if err != nil {
		log.Debug("birthday unknown",
			slog.String("person_id", p.ID.String()),
			slog.String("system", string(p.PrimaryFormat)),
			slog.String("error", err.Error()))
		s.metrics.UnresolvedDate(string(p.PrimaryFormat))
	} else {
		days, date := occ.DaysUntil, occ.Date
		view.DaysUntilBirthday = &days
		view.NextBirthday = &date
	}

	s.checkBirthDivergence(ctx, p)
	return view
}

// checkBirthDivergence logs when both birth dates parse but denote different
// days. The stored data is never rewritten.
func (s *personServiceImpl) checkBirthDivergence(ctx context.Context, p *domain.Person) {
	gregorian, err := calendar.ParseGregorianDate(p.Birth.Gregorian)
	if err != nil {
		return
	}
	anniversary, err := calendar.ParseHebrewAnniversary(p.Birth.Hebrew)
	if err != nil {
		return
	}
	hebrewYear := calendar.HebrewYearOf(gregorian)
	resolved, err := calendar.HebrewToGregorian(anniversary, hebrewYear)
	if err == nil && resolved == gregorian {
		return
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("birth_dates_diverge",
		slog.String("person_id", p.ID.String()),
		slog.String("gregorian", p.Birth.Gregorian),
		slog.String("hebrew", p.Birth.Hebrew))
}

// matches reports whether the view matches a lower-cased search term by name,
// email, phone, or the full name of a parent or spouse.
func matches(v *PersonView, term string) bool {
	contains := func(s string) bool {
		return s != "" && strings.Contains(strings.ToLower(s), term)
	}
	if contains(v.FirstName) || contains(v.LastName) || contains(v.Person.FullName()) {
		return true
	}
	if contains(v.Email) || contains(v.Phone) {
		return true
	}
	for _, rel := range []*family.Summary{v.Father, v.Mother, v.Spouse} {
		if rel != nil && contains(rel.FullName()) {
			return true
		}
	}
	return false
}
