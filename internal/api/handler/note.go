package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/teamnote/teamnote/internal/api/middleware"
	"github.com/teamnote/teamnote/internal/api/response"
	"github.com/teamnote/teamnote/internal/api/validation"
	"github.com/teamnote/teamnote/internal/auth"
	"github.com/teamnote/teamnote/internal/note"
	"github.com/teamnote/teamnote/internal/team"
)

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Team  string `json:"team"`
}

// updateNoteRequest is the allow-list for PUT and PATCH: a `team` key in the
// payload is simply not decoded, so the binding cannot change.
type updateNoteRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type teamSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Profile     *string `json:"profile"`
}

type noteResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Owner     *ownerSummary `json:"owner"`
	Team      *teamSummary  `json:"team"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

func toNoteResponse(n *note.Note, owner *auth.User, t *team.Team) noteResponse {
	resp := noteResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: n.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	if owner != nil {
		resp.Owner = &ownerSummary{
			ID:       owner.ID.String(),
			Username: owner.Username,
			Email:    owner.Email,
		}
	}

	if t != nil {
		resp.Team = &teamSummary{
			ID:          t.ID.String(),
			Name:        t.Name,
			Description: t.Description,
			Profile:     t.Profile,
		}
	}

	return resp
}

// NoteHandler handles note CRUD endpoints.
type NoteHandler struct {
	notes    *note.Service
	teams    note.TeamDirectory
	userRepo auth.UserRepository
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *note.Service, teams note.TeamDirectory, userRepo auth.UserRepository) *NoteHandler {
	return &NoteHandler{notes: notes, teams: teams, userRepo: userRepo}
}

// Create handles POST /notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateNoteRequest(validation.CreateNoteRequest{
		Title:  req.Title,
		Body:   req.Body,
		TeamID: req.Team,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	teamID, _ := uuid.Parse(req.Team) // already validated

	n, err := h.notes.Create(r.Context(), identity.UserID,
		validation.Sanitize(strings.TrimSpace(req.Title)),
		validation.Sanitize(req.Body),
		teamID,
	)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to create note", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create note", requestID)
		return
	}

	item, err := h.serializeNote(r, n)
	if err != nil {
		slog.Error("failed to serialize note", "error", err, "noteId", n.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create note", requestID)
		return
	}

	response.Success(w, http.StatusCreated, item, requestID)
}

// List handles GET /notes with an optional team filter.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter := note.ListFilter{}
	if teamParam := r.URL.Query().Get("team"); teamParam != "" {
		teamID, err := uuid.Parse(teamParam)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "team must be a valid UUID", requestID)
			return
		}
		filter.TeamID = &teamID
	}

	notes, err := h.notes.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list notes", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notes", requestID)
		return
	}

	items := make([]noteResponse, 0, len(notes))
	for i := range notes {
		item, err := h.serializeNote(r, &notes[i])
		if err != nil {
			slog.Error("failed to serialize note", "error", err, "noteId", notes[i].ID)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notes", requestID)
			return
		}
		items = append(items, item)
	}

	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// GetByID handles GET /notes/{id}.
func (h *NoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	n, err := h.notes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Note not found", requestID)
			return
		}
		slog.Error("failed to get note", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get note", requestID)
		return
	}

	item, err := h.serializeNote(r, n)
	if err != nil {
		slog.Error("failed to serialize note", "error", err, "noteId", n.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get note", requestID)
		return
	}

	response.Success(w, http.StatusOK, item, requestID)
}

// Update handles PUT and PATCH /notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateNoteRequest(validation.UpdateNoteRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	fields := note.UpdateFields{}
	if req.Title != nil {
		clean := validation.Sanitize(strings.TrimSpace(*req.Title))
		fields.Title = &clean
	}
	if req.Body != nil {
		clean := validation.Sanitize(*req.Body)
		fields.Body = &clean
	}

	n, err := h.notes.Update(r.Context(), id, identity.UserID, fields)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Note not found", requestID)
			return
		}
		if errors.Is(err, note.ErrNotOwner) {
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "Only the note owner may modify the note", requestID)
			return
		}
		slog.Error("failed to update note", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update note", requestID)
		return
	}

	item, err := h.serializeNote(r, n)
	if err != nil {
		slog.Error("failed to serialize note", "error", err, "noteId", n.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update note", requestID)
		return
	}

	response.Success(w, http.StatusOK, item, requestID)
}

// Delete handles DELETE /notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	if err := h.notes.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Note not found", requestID)
			return
		}
		if errors.Is(err, note.ErrNotOwner) {
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "Only the note owner may delete the note", requestID)
			return
		}
		slog.Error("failed to delete note", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete note", requestID)
		return
	}

	response.NoContent(w)
}

func (h *NoteHandler) serializeNote(r *http.Request, n *note.Note) (noteResponse, error) {
	owner, err := h.userRepo.GetByID(r.Context(), n.OwnerID)
	if err != nil {
		return noteResponse{}, err
	}

	t, err := h.teams.GetByID(r.Context(), n.TeamID)
	if err != nil {
		return noteResponse{}, err
	}

	return toNoteResponse(n, owner, t), nil
}
