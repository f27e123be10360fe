package family

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoresh/familytree-api/internal/domain"
)

func findSuggestion(suggestions []Suggestion, rule string) (Suggestion, bool) {
	for _, s := range suggestions {
		if s.Rule == rule {
			return s, true
		}
	}
	return Suggestion{}, false
}

func TestSuggest_MotherFromFatherSpouse(t *testing.T) {
	t.Parallel()

	a := person("Avraham")
	b := person("Batya")
	a.SpouseID, b.SpouseID = b.ID, a.ID

	suggestions := NewSuggester().Suggest([]domain.Person{a, b}, Draft{FatherID: a.ID})

	s, ok := findSuggestion(suggestions, "mother-from-father-spouse")
	require.True(t, ok)
	assert.Equal(t, SlotMother, s.Slot)
	assert.Equal(t, []uuid.UUID{b.ID}, ids(s.Candidates))
	assert.Contains(t, s.Rationale, "Batya Cohen")
	assert.Contains(t, s.Rationale, "Avraham Cohen")

	applied := Apply(Draft{FatherID: a.ID}, suggestions)
	assert.Equal(t, b.ID, applied.MotherID)
}

func TestSuggest_FatherFromMotherSpouse(t *testing.T) {
	t.Parallel()

	a := person("Avraham")
	b := person("Batya")
	a.SpouseID, b.SpouseID = b.ID, a.ID

	suggestions := NewSuggester().Suggest([]domain.Person{a, b}, Draft{MotherID: b.ID})

	s, ok := findSuggestion(suggestions, "father-from-mother-spouse")
	require.True(t, ok)
	assert.Equal(t, SlotFather, s.Slot)
	assert.Equal(t, []uuid.UUID{a.ID}, ids(s.Candidates))
}

func TestSuggest_SpouseFromChildren(t *testing.T) {
	t.Parallel()

	father := person("Father")
	mother := person("Mother")
	otherMother := person("OtherMother")
	orphan := person("Orphan")
	orphan.FatherID = father.ID
	first := person("First")
	first.FatherID, first.MotherID = father.ID, mother.ID
	second := person("Second")
	second.FatherID, second.MotherID = father.ID, otherMother.ID

	people := []domain.Person{father, mother, otherMother, orphan, first, second}

	suggestions := NewSuggester().Suggest(people, Draft{FatherID: father.ID})
	s, ok := findSuggestion(suggestions, "spouse-from-father-children")
	require.True(t, ok)
	assert.Equal(t, SlotSpouse, s.Slot)
	assert.Equal(t, []uuid.UUID{mother.ID}, ids(s.Candidates), "first mother in records order")

	suggestions = NewSuggester().Suggest(people, Draft{MotherID: otherMother.ID})
	s, ok = findSuggestion(suggestions, "spouse-from-mother-children")
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{father.ID}, ids(s.Candidates))
}

func TestSuggest_ChildrenFromSpouse(t *testing.T) {
	t.Parallel()

	spouse := person("Spouse")
	partner := person("Partner")
	single := person("Single")
	single.MotherID = spouse.ID
	both := person("Both")
	both.MotherID, both.FatherID = spouse.ID, partner.ID
	dangling := person("Dangling")
	dangling.MotherID, dangling.FatherID = spouse.ID, uuid.New()

	people := []domain.Person{spouse, partner, single, both, dangling}
	suggestions := NewSuggester().Suggest(people, Draft{SpouseID: spouse.ID})

	s, ok := findSuggestion(suggestions, "children-from-spouse")
	require.True(t, ok)
	assert.Equal(t, SlotChildren, s.Slot)
	assert.Equal(t, []uuid.UUID{single.ID, dangling.ID}, ids(s.Candidates))

	applied := Apply(Draft{SpouseID: spouse.ID}, suggestions)
	assert.Equal(t, []uuid.UUID{single.ID, dangling.ID}, applied.ChildIDs)
}

func TestSuggest_ParentsFromSibling(t *testing.T) {
	t.Parallel()

	father := person("Father")
	mother := person("Mother")
	sibling := person("Sibling")
	sibling.FatherID, sibling.MotherID = father.ID, mother.ID

	people := []domain.Person{father, mother, sibling}

	suggestions := NewSuggester().Suggest(people, Draft{SiblingID: sibling.ID})
	fs, ok := findSuggestion(suggestions, "father-from-sibling")
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{father.ID}, ids(fs.Candidates))
	ms, ok := findSuggestion(suggestions, "mother-from-sibling")
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{mother.ID}, ids(ms.Candidates))

	suggestions = NewSuggester().Suggest(people, Draft{SiblingID: sibling.ID, FatherID: father.ID})
	_, ok = findSuggestion(suggestions, "father-from-sibling")
	assert.False(t, ok, "father already selected")
}

func TestSuggest_NoSuggestions(t *testing.T) {
	t.Parallel()

	a := person("Avraham")
	suggester := NewSuggester()

	assert.Empty(t, suggester.Suggest([]domain.Person{a}, Draft{}))
	assert.NotNil(t, suggester.Suggest(nil, Draft{}))
	assert.Empty(t, suggester.Suggest([]domain.Person{a}, Draft{FatherID: a.ID}), "father has no spouse or children")
	assert.Empty(t, suggester.Suggest([]domain.Person{a}, Draft{FatherID: uuid.New()}), "dangling father")
}

func TestSuggest_ExcludesDraftPerson(t *testing.T) {
	t.Parallel()

	a := person("Avraham")
	b := person("Batya")
	a.SpouseID, b.SpouseID = b.ID, a.ID

	suggestions := NewSuggester().Suggest([]domain.Person{a, b}, Draft{PersonID: b.ID, FatherID: a.ID})
	_, ok := findSuggestion(suggestions, "mother-from-father-spouse")
	assert.False(t, ok)
}

func TestSuggest_AllRulesEvaluated(t *testing.T) {
	t.Parallel()

	a := person("Avraham")
	b := person("Batya")
	a.SpouseID, b.SpouseID = b.ID, a.ID
	c := person("Chaim")
	c.FatherID, c.MotherID = a.ID, b.ID

	suggestions := NewSuggester().Suggest([]domain.Person{a, b, c}, Draft{FatherID: a.ID})

	rules := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		rules = append(rules, s.Rule)
	}
	assert.Equal(t, []string{"mother-from-father-spouse", "spouse-from-father-children"}, rules)
}

func TestApply_NeverOverwrites(t *testing.T) {
	t.Parallel()

	chosenMother := uuid.New()
	chosenChild := uuid.New()
	draft := Draft{MotherID: chosenMother, ChildIDs: []uuid.UUID{chosenChild}}

	suggestions := []Suggestion{
		{Slot: SlotMother, Candidates: []Summary{{ID: uuid.New()}}},
		{Slot: SlotChildren, Candidates: []Summary{{ID: uuid.New()}}},
		{Slot: SlotSpouse, Candidates: []Summary{{ID: uuid.New()}}},
		{Slot: SlotFather},
	}
	firstSpouse := suggestions[2].Candidates[0].ID
	suggestions = append(suggestions, Suggestion{Slot: SlotSpouse, Candidates: []Summary{{ID: uuid.New()}}})

	applied := Apply(draft, suggestions)

	assert.Equal(t, chosenMother, applied.MotherID)
	assert.Equal(t, []uuid.UUID{chosenChild}, applied.ChildIDs)
	assert.Equal(t, firstSpouse, applied.SpouseID, "earlier suggestion wins")
	assert.Equal(t, uuid.Nil, applied.FatherID)
}

func TestNewSuggester_CustomRules(t *testing.T) {
	t.Parallel()

	a := person("Avraham")
	only := Rule{
		Name:    "always-self",
		Slot:    SlotSpouse,
		Applies: func(Draft) bool { return true },
		Candidates: func(g *Graph, d Draft) (*domain.Person, []*domain.Person) {
			p := g.resolve(a.ID)
			return p, []*domain.Person{p}
		},
		Rationale: "%s picked by %s",
	}

	suggestions := NewSuggester(only).Suggest([]domain.Person{a}, Draft{})
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Avraham Cohen picked by Avraham Cohen", suggestions[0].Rationale)
}
