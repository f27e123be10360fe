package family

import (
	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain"
)

// Graph is an indexed, read-only snapshot of the family tree.
type Graph struct {
	order    []*domain.Person
	byID     map[uuid.UUID]*domain.Person
	byFather map[uuid.UUID][]*domain.Person
	byMother map[uuid.UUID][]*domain.Person
}

// NewGraph indexes people in a single pass. The slice is copied, so later
// changes by the caller are not observed. Records with a nil or repeated ID
// are ignored after the first occurrence.
func NewGraph(people []domain.Person) *Graph {
	g := &Graph{
		order:    make([]*domain.Person, 0, len(people)),
		byID:     make(map[uuid.UUID]*domain.Person, len(people)),
		byFather: make(map[uuid.UUID][]*domain.Person),
		byMother: make(map[uuid.UUID][]*domain.Person),
	}

	for i := range people {
		p := people[i]
		if p.ID == uuid.Nil {
			continue
		}
		if _, seen := g.byID[p.ID]; seen {
			continue
		}
		g.byID[p.ID] = &p
		g.order = append(g.order, &p)
		if p.FatherID != uuid.Nil {
			g.byFather[p.FatherID] = append(g.byFather[p.FatherID], &p)
		}
		if p.MotherID != uuid.Nil {
			g.byMother[p.MotherID] = append(g.byMother[p.MotherID], &p)
		}
	}
	return g
}

// Person returns a copy of the record with the given ID.
func (g *Graph) Person(id uuid.UUID) (domain.Person, bool) {
	p, ok := g.byID[id]
	if !ok {
		return domain.Person{}, false
	}
	return *p, true
}

func (g *Graph) resolve(id uuid.UUID) *domain.Person {
	if id == uuid.Nil {
		return nil
	}
	return g.byID[id]
}

// childrenOf returns everyone naming id as father or mother, in records
// order of the father group followed by the mother group, without duplicates.
func (g *Graph) childrenOf(id uuid.UUID) []*domain.Person {
	if id == uuid.Nil {
		return nil
	}
	fathered, mothered := g.byFather[id], g.byMother[id]
	children := make([]*domain.Person, 0, len(fathered)+len(mothered))
	seen := make(map[uuid.UUID]struct{}, len(fathered)+len(mothered))
	for _, group := range [][]*domain.Person{fathered, mothered} {
		for _, c := range group {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			children = append(children, c)
		}
	}
	return children
}

// siblingsOf returns everyone other than p who shares a resolved father or a
// resolved mother with p.
func (g *Graph) siblingsOf(p *domain.Person) []*domain.Person {
	var groups [][]*domain.Person
	if g.resolve(p.FatherID) != nil {
		groups = append(groups, g.byFather[p.FatherID])
	}
	if g.resolve(p.MotherID) != nil {
		groups = append(groups, g.byMother[p.MotherID])
	}

	siblings := make([]*domain.Person, 0)
	seen := map[uuid.UUID]struct{}{p.ID: {}}
	for _, group := range groups {
		for _, s := range group {
			if _, dup := seen[s.ID]; dup {
				continue
			}
			seen[s.ID] = struct{}{}
			siblings = append(siblings, s)
		}
	}
	return siblings
}

// resolvedParents counts how many of p's parent slots resolve.
func (g *Graph) resolvedParents(p *domain.Person) int {
	n := 0
	if g.resolve(p.FatherID) != nil {
		n++
	}
	if g.resolve(p.MotherID) != nil {
		n++
	}
	return n
}
