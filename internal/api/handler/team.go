package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamnote/teamnote/internal/api/middleware"
	"github.com/teamnote/teamnote/internal/api/response"
	"github.com/teamnote/teamnote/internal/api/validation"
	"github.com/teamnote/teamnote/internal/auth"
	"github.com/teamnote/teamnote/internal/policy"
	"github.com/teamnote/teamnote/internal/team"
)

type createTeamRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Profile     *string `json:"profile"`
}

type updateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Profile     *string `json:"profile"`
}

type joinTeamRequest struct {
	Code string `json:"code"`
}

type ownerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type memberSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}

type teamResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Profile     *string         `json:"profile"`
	Owner       *ownerSummary   `json:"owner"`
	Members     []memberSummary `json:"members"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// toTeamResponse serializes a team. The join code is included only when the
// access policy allows it for the operation that produced the response.
func toTeamResponse(t *team.Team, owner *auth.User, members []team.Member, op policy.Operation) teamResponse {
	resp := teamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Profile:     t.Profile,
		Members:     make([]memberSummary, 0, len(members)),
		CreatedAt:   t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	if policy.CanViewTeamCode(op) {
		resp.Code = t.Code
	}

	if owner != nil {
		resp.Owner = &ownerSummary{
			ID:       owner.ID.String(),
			Username: owner.Username,
			Email:    owner.Email,
		}
	}

	for _, m := range members {
		resp.Members = append(resp.Members, memberSummary{
			ID:         m.UserID.String(),
			Username:   m.Username,
			FirstName:  m.FirstName,
			MiddleName: m.MiddleName,
			LastName:   m.LastName,
			Email:      m.Email,
		})
	}

	return resp
}

// TeamHandler handles team CRUD and membership endpoints.
type TeamHandler struct {
	teams    *team.Service
	userRepo auth.UserRepository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teams *team.Service, userRepo auth.UserRepository) *TeamHandler {
	return &TeamHandler{teams: teams, userRepo: userRepo}
}

// Create handles POST /teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
		Profile:     req.Profile,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	name := validation.Sanitize(strings.TrimSpace(req.Name))
	description := validation.Sanitize(req.Description)
	profile := req.Profile
	if profile != nil {
		clean := validation.Sanitize(*profile)
		profile = &clean
	}

	t, err := h.teams.Create(r.Context(), identity.UserID, name, description, profile)
	if err != nil {
		if errors.Is(err, team.ErrDuplicateTeamName) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", "A team with that name already exists", requestID)
			return
		}
		slog.Error("failed to create team", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team", requestID)
		return
	}

	owner, err := h.userRepo.GetByID(r.Context(), t.OwnerID)
	if err != nil {
		slog.Error("failed to load team owner", "error", err, "teamId", t.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTeamResponse(t, owner, nil, policy.OpCreate), requestID)
}

// List handles GET /teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teams", requestID)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		item, err := h.serializeTeam(r, &teams[i], policy.OpList)
		if err != nil {
			slog.Error("failed to serialize team", "error", err, "teamId", teams[i].ID)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teams", requestID)
			return
		}
		items = append(items, item)
	}

	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// GetByID handles GET /teams/{id}. The join code is never present here, even
// for the owner.
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	t, err := h.teams.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to get team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get team", requestID)
		return
	}

	item, err := h.serializeTeam(r, t, policy.OpRead)
	if err != nil {
		slog.Error("failed to serialize team", "error", err, "teamId", t.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get team", requestID)
		return
	}

	response.Success(w, http.StatusOK, item, requestID)
}

// Update handles PUT and PATCH /teams/{id}. Both verbs apply the same
// allow-list: name, description and profile. The join code has no update path.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateTeamRequest(validation.UpdateTeamRequest{
		Name:        req.Name,
		Description: req.Description,
		Profile:     req.Profile,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	fields := team.UpdateFields{}
	if req.Name != nil {
		clean := validation.Sanitize(strings.TrimSpace(*req.Name))
		fields.Name = &clean
	}
	if req.Description != nil {
		clean := validation.Sanitize(*req.Description)
		fields.Description = &clean
	}
	if req.Profile != nil {
		clean := validation.Sanitize(*req.Profile)
		fields.Profile = &clean
	}

	t, err := h.teams.Update(r.Context(), id, identity.UserID, fields)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		if errors.Is(err, team.ErrNotOwner) {
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "Only the team owner may modify the team", requestID)
			return
		}
		if errors.Is(err, team.ErrDuplicateTeamName) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", "A team with that name already exists", requestID)
			return
		}
		slog.Error("failed to update team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update team", requestID)
		return
	}

	item, err := h.serializeTeam(r, t, policy.OpUpdate)
	if err != nil {
		slog.Error("failed to serialize team", "error", err, "teamId", t.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update team", requestID)
		return
	}

	response.Success(w, http.StatusOK, item, requestID)
}

// Delete handles DELETE /teams/{id}. Deleting a team removes all of its notes.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	if err := h.teams.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		if errors.Is(err, team.ErrNotOwner) {
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "Only the team owner may delete the team", requestID)
			return
		}
		slog.Error("failed to delete team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete team", requestID)
		return
	}

	response.NoContent(w)
}

// Join handles POST /teams/join. The team is looked up by its join code.
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req joinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{Code: req.Code})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t, err := h.teams.Join(r.Context(), strings.TrimSpace(req.Code), identity.UserID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "No team matches that code", requestID)
			return
		}
		if errors.Is(err, team.ErrAlreadyMember) {
			response.Err(w, http.StatusConflict, "ALREADY_MEMBER", "User is already a member of the team", requestID)
			return
		}
		slog.Error("failed to join team", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to join team", requestID)
		return
	}

	item, err := h.serializeTeam(r, t, policy.OpJoin)
	if err != nil {
		slog.Error("failed to serialize team", "error", err, "teamId", t.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to join team", requestID)
		return
	}

	response.Success(w, http.StatusCreated, item, requestID)
}

// Leave handles POST /teams/{id}/leave.
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	if err := h.teams.Leave(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		if errors.Is(err, team.ErrOwnerCannotLeave) {
			response.Err(w, http.StatusConflict, "OWNER_CANNOT_LEAVE", "The owner cannot leave their own team", requestID)
			return
		}
		if errors.Is(err, team.ErrNotAMember) {
			response.Err(w, http.StatusConflict, "NOT_A_MEMBER", "User is not a member of the team", requestID)
			return
		}
		slog.Error("failed to leave team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to leave team", requestID)
		return
	}

	response.NoContent(w)
}

func (h *TeamHandler) serializeTeam(r *http.Request, t *team.Team, op policy.Operation) (teamResponse, error) {
	owner, err := h.userRepo.GetByID(r.Context(), t.OwnerID)
	if err != nil {
		return teamResponse{}, err
	}

	members, err := h.teams.Members(r.Context(), t.ID)
	if err != nil {
		return teamResponse{}, err
	}

	return toTeamResponse(t, owner, members, op), nil
}

func parseIDParam(w http.ResponseWriter, r *http.Request, requestID string) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return uuid.Nil, false
	}
	return id, true
}
