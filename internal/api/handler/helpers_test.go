package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teamnote/teamnote/internal/api/middleware"
	"github.com/teamnote/teamnote/internal/auth"
	"github.com/teamnote/teamnote/internal/note"
	"github.com/teamnote/teamnote/internal/team"
)

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func makeAuthRequest(method, path string, body []byte, params map[string]string, identity *auth.Identity) (*http.Request, *httptest.ResponseRecorder) {
	req, w := makeChiRequest(method, path, body, params)
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func identityFor(u *auth.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Username: u.Username}
}

func sampleUser(username string) *auth.User {
	return &auth.User{
		ID:        uuid.New(),
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

// --- Mock user repository ---

type mockUserRepo struct {
	createFn        func(ctx context.Context, u *auth.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*auth.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *auth.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, auth.ErrUserNotFound
}

// userLookup builds a mock repo that resolves the given users by ID.
func userLookup(users ...*auth.User) *mockUserRepo {
	return &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, auth.ErrUserNotFound
		},
	}
}

// --- Mock team repository ---

type mockTeamRepo struct {
	createFn       func(ctx context.Context, t *team.Team) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	getByCodeFn    func(ctx context.Context, code string) (*team.Team, error)
	listFn         func(ctx context.Context) ([]team.Team, error)
	updateFn       func(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	listMembersFn  func(ctx context.Context, teamID uuid.UUID) ([]team.Member, error)
	isMemberFn     func(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	addMemberFn    func(ctx context.Context, teamID, userID uuid.UUID) error
	removeMemberFn func(ctx context.Context, teamID, userID uuid.UUID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) GetByCode(ctx context.Context, code string) (*team.Team, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) List(ctx context.Context) ([]team.Team, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTeamRepo) ListMembers(ctx context.Context, teamID uuid.UUID) ([]team.Member, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx, teamID)
	}
	return []team.Member{}, nil
}

func (m *mockTeamRepo) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	if m.isMemberFn != nil {
		return m.isMemberFn(ctx, teamID, userID)
	}
	return false, nil
}

func (m *mockTeamRepo) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if m.addMemberFn != nil {
		return m.addMemberFn(ctx, teamID, userID)
	}
	return nil
}

func (m *mockTeamRepo) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, teamID, userID)
	}
	return nil
}

// --- Mock note repository ---

type mockNoteRepo struct {
	createFn  func(ctx context.Context, n *note.Note) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*note.Note, error)
	listFn    func(ctx context.Context, filter note.ListFilter) ([]note.Note, error)
	updateFn  func(ctx context.Context, id uuid.UUID, fields note.UpdateFields) (*note.Note, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockNoteRepo) Create(ctx context.Context, n *note.Note) error {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*note.Note, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, note.ErrNoteNotFound
}

func (m *mockNoteRepo) List(ctx context.Context, filter note.ListFilter) ([]note.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []note.Note{}, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, id uuid.UUID, fields note.UpdateFields) (*note.Note, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, note.ErrNoteNotFound
}

func (m *mockNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
