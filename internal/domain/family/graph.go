package family

import (
	"strings"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
)

// Summary is the minimal description of a relative.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// SummaryOf reduces a person to a Summary.
func SummaryOf(p *domain.Person) Summary {
	return Summary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
}

// FullName joins first and last name.
func (s Summary) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// View is the set of relatives derived for one person. Unset or dangling
// references are nil; Children and Siblings are never nil.
type View struct {
	Father   *Summary  `json:"father"`
	Mother   *Summary  `json:"mother"`
	Spouse   *Summary  `json:"spouse"`
	Children []Summary `json:"children"`
	Siblings []Summary `json:"siblings"`
}

// Build derives a View for every person in the snapshot.
func Build(people []domain.Person) map[uuid.UUID]View {
	return NewGraph(people).Views()
}

// Views derives a View for every indexed person.
func (g *Graph) Views() map[uuid.UUID]View {
	views := make(map[uuid.UUID]View, len(g.order))
	for _, p := range g.order {
		views[p.ID] = g.viewOf(p)
	}
	return views
}

// View derives the relatives of a single person.
func (g *Graph) View(id uuid.UUID) (View, bool) {
	p, ok := g.byID[id]
	if !ok {
		return View{}, false
	}
	return g.viewOf(p), true
}

// Summary returns the summary of the person with the given ID.
func (g *Graph) Summary(id uuid.UUID) (Summary, bool) {
	p := g.resolve(id)
	if p == nil {
		return Summary{}, false
	}
	return SummaryOf(p), true
}

func (g *Graph) viewOf(p *domain.Person) View {
	return View{
		Father:   g.summaryPtr(p.FatherID),
		Mother:   g.summaryPtr(p.MotherID),
		Spouse:   g.summaryPtr(p.SpouseID),
		Children: summaries(g.childrenOf(p.ID)),
		Siblings: summaries(g.siblingsOf(p)),
	}
}

func (g *Graph) summaryPtr(id uuid.UUID) *Summary {
	p := g.resolve(id)
	if p == nil {
		return nil
	}
	s := SummaryOf(p)
	return &s
}

func summaries(people []*domain.Person) []Summary {
	out := make([]Summary, 0, len(people))
	for _, p := range people {
		out = append(out, SummaryOf(p))
	}
	return out
}
