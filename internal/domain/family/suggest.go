package family

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
)

// Slot is the relationship field a suggestion would fill.
type Slot string

const (
	SlotFather   Slot = "father"
	SlotMother   Slot = "mother"
	SlotSpouse   Slot = "spouse"
	SlotChildren Slot = "children"
)

// Draft is the relationship selection of a person being created or edited.
// PersonID is set when editing an existing record so that the person is never
// suggested as their own relative. SiblingID is an optional hint used only to
// suggest parents.
type Draft struct {
	PersonID  uuid.UUID   `json:"personId"`
	FatherID  uuid.UUID   `json:"fatherId"`
	MotherID  uuid.UUID   `json:"motherId"`
	SpouseID  uuid.UUID   `json:"spouseId"`
	SiblingID uuid.UUID   `json:"siblingId"`
	ChildIDs  []uuid.UUID `json:"childIds"`
}

// Suggestion proposes candidates for one slot of a Draft.
type Suggestion struct {
	Slot       Slot      `json:"slot"`
	Candidates []Summary `json:"candidates"`
	Rule       string    `json:"rule"`
	Rationale  string    `json:"rationale"`
}

// Rule is one row of the suggestion table. Applies checks the draft's
// selection; Candidates looks the answer up in the graph. Rationale is a
// format string receiving the candidate names and the name of the relative
// the rule started from.
type Rule struct {
	Name       string
	Slot       Slot
	Applies    func(d Draft) bool
	Candidates func(g *Graph, d Draft) (anchor *domain.Person, candidates []*domain.Person)
	Rationale  string
}

// DefaultRules returns the standard rule table, in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "mother-from-father-spouse",
			Slot: SlotMother,
			Applies: func(d Draft) bool {
				return d.FatherID != uuid.Nil && d.MotherID == uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				return spouseOf(g, d.FatherID)
			},
			Rationale: "%s is married to the selected father %s",
		},
		{
			Name: "father-from-mother-spouse",
			Slot: SlotFather,
			Applies: func(d Draft) bool {
				return d.MotherID != uuid.Nil && d.FatherID == uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				return spouseOf(g, d.MotherID)
			},
			Rationale: "%s is married to the selected mother %s",
		},
		{
			Name: "spouse-from-father-children",
			Slot: SlotSpouse,
			Applies: func(d Draft) bool {
				return d.FatherID != uuid.Nil && d.SpouseID == uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				return coParentOf(g, d.FatherID, func(c *domain.Person) uuid.UUID { return c.MotherID })
			},
			Rationale: "%s is the mother of children of %s",
		},
		{
			Name: "spouse-from-mother-children",
			Slot: SlotSpouse,
			Applies: func(d Draft) bool {
				return d.MotherID != uuid.Nil && d.SpouseID == uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				return coParentOf(g, d.MotherID, func(c *domain.Person) uuid.UUID { return c.FatherID })
			},
			Rationale: "%s is the father of children of %s",
		},
		{
			Name: "children-from-spouse",
			Slot: SlotChildren,
			Applies: func(d Draft) bool {
				return d.SpouseID != uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				spouse := g.resolve(d.SpouseID)
				if spouse == nil {
					return nil, nil
				}
				var single []*domain.Person
				for _, c := range g.childrenOf(spouse.ID) {
					if g.resolvedParents(c) == 1 {
						single = append(single, c)
					}
				}
				return spouse, single
			},
			Rationale: "%s have only one parent recorded, %s",
		},
		{
			Name: "father-from-sibling",
			Slot: SlotFather,
			Applies: func(d Draft) bool {
				return d.SiblingID != uuid.Nil && d.FatherID == uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				return parentOf(g, d.SiblingID, func(s *domain.Person) uuid.UUID { return s.FatherID })
			},
			Rationale: "%s is the father of the selected sibling %s",
		},
		{
			Name: "mother-from-sibling",
			Slot: SlotMother,
			Applies: func(d Draft) bool {
				return d.SiblingID != uuid.Nil && d.MotherID == uuid.Nil
			},
			Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
				return parentOf(g, d.SiblingID, func(s *domain.Person) uuid.UUID { return s.MotherID })
			},
			Rationale: "%s is the mother of the selected sibling %s",
		},
	}
}

func spouseOf(g *Graph, id uuid.UUID) (*domain.Person, []*domain.Person) {
	anchor := g.resolve(id)
	if anchor == nil {
		return nil, nil
	}
	if spouse := g.resolve(anchor.SpouseID); spouse != nil {
		return anchor, []*domain.Person{spouse}
	}
	return anchor, nil
}

// coParentOf returns the first resolved co-parent, in records order, among
// the children of id.
func coParentOf(g *Graph, id uuid.UUID, other func(*domain.Person) uuid.UUID) (*domain.Person, []*domain.Person) {
	anchor := g.resolve(id)
	if anchor == nil {
		return nil, nil
	}
	for _, c := range g.childrenOf(anchor.ID) {
		if co := g.resolve(other(c)); co != nil && co.ID != anchor.ID {
			return anchor, []*domain.Person{co}
		}
	}
	return anchor, nil
}

func parentOf(g *Graph, siblingID uuid.UUID, parent func(*domain.Person) uuid.UUID) (*domain.Person, []*domain.Person) {
	sibling := g.resolve(siblingID)
	if sibling == nil {
		return nil, nil
	}
	if p := g.resolve(parent(sibling)); p != nil {
		return sibling, []*domain.Person{p}
	}
	return sibling, nil
}

// Suggester evaluates a rule table against a graph. Every rule is evaluated;
// none suppresses another.
type Suggester struct {
	rules []Rule
}

// NewSuggester creates a Suggester over rules, or over DefaultRules when none
// are given.
func NewSuggester(rules ...Rule) *Suggester {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Suggester{rules: rules}
}

// Suggest indexes people and evaluates the rules against the draft.
func (s *Suggester) Suggest(people []domain.Person, d Draft) []Suggestion {
	return s.SuggestFrom(NewGraph(people), d)
}

// SuggestFrom evaluates the rules against an existing graph. The result is in
// rule order and never nil.
func (s *Suggester) SuggestFrom(g *Graph, d Draft) []Suggestion {
	suggestions := make([]Suggestion, 0)
	for _, rule := range s.rules {
		if !rule.Applies(d) {
			continue
		}
		anchor, found := rule.Candidates(g, d)
		candidates := make([]Summary, 0, len(found))
		for _, c := range found {
			if c.ID == d.PersonID {
				continue
			}
			candidates = append(candidates, SummaryOf(c))
		}
		if len(candidates) == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Slot:       rule.Slot,
			Candidates: candidates,
			Rule:       rule.Name,
			Rationale:  fmt.Sprintf(rule.Rationale, joinNames(candidates), SummaryOf(anchor).FullName()),
		})
	}
	return suggestions
}

func joinNames(candidates []Summary) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.FullName())
	}
	return strings.Join(names, ", ")
}

// Apply fills the draft's empty slots from suggestions, in order. A slot that
// is already set, by the caller or by an earlier suggestion, is left alone.
func Apply(d Draft, suggestions []Suggestion) Draft {
	for _, s := range suggestions {
		if len(s.Candidates) == 0 {
			continue
		}
		first := s.Candidates[0].ID
		switch s.Slot {
		case SlotFather:
			if d.FatherID == uuid.Nil {
				d.FatherID = first
			}
		case SlotMother:
			if d.MotherID == uuid.Nil {
				d.MotherID = first
			}
		case SlotSpouse:
			if d.SpouseID == uuid.Nil {
				d.SpouseID = first
			}
		case SlotChildren:
			if len(d.ChildIDs) == 0 {
				d.ChildIDs = make([]uuid.UUID, 0, len(s.Candidates))
				for _, c := range s.Candidates {
					d.ChildIDs = append(d.ChildIDs, c.ID)
				}
			}
		}
	}
	return d
}
