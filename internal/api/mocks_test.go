package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shoresh/familytree-api/internal/domain/family"
	"github.com/shoresh/familytree-api/internal/service"
)

var errNotMocked = errors.New("not mocked")

// mockPersonService implements service.PersonService with overridable functions.
type mockPersonService struct {
	CreatePersonFn         func(ctx context.Context, in service.PersonInput) (*service.PersonView, error)
	GetPersonFn            func(ctx context.Context, id uuid.UUID) (*service.PersonView, error)
	ListPeopleFn           func(ctx context.Context, query string) ([]service.PersonView, error)
	UpcomingBirthdaysFn    func(ctx context.Context, limit int) ([]service.PersonView, error)
	UpdatePersonFn         func(ctx context.Context, id uuid.UUID, patch service.PersonPatch) (*service.PersonView, error)
	LinkSpousesFn          func(ctx context.Context, id, spouseID uuid.UUID) error
	DeletePersonFn         func(ctx context.Context, id uuid.UUID) (string, error)
	DeleteAllPeopleFn      func(ctx context.Context) (int, error)
	SuggestRelationshipsFn func(ctx context.Context, draft family.Draft) ([]family.Suggestion, error)
	ConvertDateFn          func(ctx context.Context, req service.ConversionRequest) (*service.Conversion, error)
}

var _ service.PersonService = (*mockPersonService)(nil)

func (m *mockPersonService) CreatePerson(ctx context.Context, in service.PersonInput) (*service.PersonView, error) {
	if m.CreatePersonFn == nil {
		return nil, errNotMocked
	}
	return m.CreatePersonFn(ctx, in)
}

func (m *mockPersonService) GetPerson(ctx context.Context, id uuid.UUID) (*service.PersonView, error) {
	if m.GetPersonFn == nil {
		return nil, errNotMocked
	}
	return m.GetPersonFn(ctx, id)
}

func (m *mockPersonService) ListPeople(ctx context.Context, query string) ([]service.PersonView, error) {
	if m.ListPeopleFn == nil {
		return nil, errNotMocked
	}
	return m.ListPeopleFn(ctx, query)
}

func (m *mockPersonService) UpcomingBirthdays(ctx context.Context, limit int) ([]service.PersonView, error) {
	if m.UpcomingBirthdaysFn == nil {
		return nil, errNotMocked
	}
	return m.UpcomingBirthdaysFn(ctx, limit)
}

func (m *mockPersonService) UpdatePerson(
	ctx context.Context,
	id uuid.UUID,
	patch service.PersonPatch,
) (*service.PersonView, error) {
	if m.UpdatePersonFn == nil {
		return nil, errNotMocked
	}
	return m.UpdatePersonFn(ctx, id, patch)
}

func (m *mockPersonService) LinkSpouses(ctx context.Context, id, spouseID uuid.UUID) error {
	if m.LinkSpousesFn == nil {
		return errNotMocked
	}
	return m.LinkSpousesFn(ctx, id, spouseID)
}

func (m *mockPersonService) DeletePerson(ctx context.Context, id uuid.UUID) (string, error) {
	if m.DeletePersonFn == nil {
		return "", errNotMocked
	}
	return m.DeletePersonFn(ctx, id)
}

func (m *mockPersonService) DeleteAllPeople(ctx context.Context) (int, error) {
	if m.DeleteAllPeopleFn == nil {
		return 0, errNotMocked
	}
	return m.DeleteAllPeopleFn(ctx)
}

func (m *mockPersonService) SuggestRelationships(
	ctx context.Context,
	draft family.Draft,
) ([]family.Suggestion, error) {
	if m.SuggestRelationshipsFn == nil {
		return nil, errNotMocked
	}
	return m.SuggestRelationshipsFn(ctx, draft)
}

func (m *mockPersonService) ConvertDate(
	ctx context.Context,
	req service.ConversionRequest,
) (*service.Conversion, error) {
	if m.ConvertDateFn == nil {
		return nil, errNotMocked
	}
	return m.ConvertDateFn(ctx, req)
}

// mockEditorLogin implements EditorLogin.
type mockEditorLogin struct {
	LoginFn func(ctx context.Context, password string) (string, time.Time, error)
}

func (m *mockEditorLogin) Login(ctx context.Context, password string) (string, time.Time, error) {
	return m.LoginFn(ctx, password)
}

// newRequest builds a request with chi URL parameters set, as the router would.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var r *http.Request
	if body == "" {
		r, _ = http.NewRequest(method, target, nil)
	} else {
		r, _ = http.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	return r
}
