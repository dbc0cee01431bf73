// Package http maps the JSON API onto the application services.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/S-h-i-v-a-y/assignment/internal/application"
	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type Handler struct {
	presence  *application.PresenceService
	social    *application.SocialService
	relations *application.RelationshipService
	directory *application.DirectoryService
}

func NewRouter(
	presence *application.PresenceService,
	social *application.SocialService,
	relations *application.RelationshipService,
	directory *application.DirectoryService,
) http.Handler {
	h := &Handler{presence: presence, social: social, relations: relations, directory: directory}
	r := chi.NewRouter()
	r.Use(requestLog)

	r.Post("/persons", h.handleCreatePerson)
	r.Post("/organizations", h.handleCreateOrganization)

	r.Post("/checkin", h.handleCheckInBatch)
	r.Get("/checkin/active-users", h.handleActiveUsers)
	r.Post("/checkout", h.handleCheckout)
	r.Post("/checkout/admin", h.handleCheckoutAdminLegacy)

	r.Route("/organization", func(org chi.Router) {
		org.Post("/set-times", h.handleSetTimes)
		org.Post("/checkin", h.handleGatedCheckIn)
		org.Get("/active-users", h.handleActiveUsersAt)
		org.Post("/auto-checkout", h.handleAutoCheckout)
		org.Post("/admin-checkout", h.handleAdminCheckout)
	})

	r.Route("/users", func(users chi.Router) {
		users.Post("/", h.handleCreateUser)
		users.Get("/", h.handleListUsers)
		users.Get("/{id}", h.handleGetUser)
		users.Put("/{id}", h.handleUpdateUser)
		users.Delete("/{id}", h.handleDeleteUser)
		users.Post("/{followerID}/follow/{followeeID}", h.handleFollow)
		users.Post("/{userID}/like/{postID}", h.handleLike)
		users.Get("/{id}/followers", h.handleFollowers)
		users.Get("/{id}/following", h.handleFollowing)
	})

	r.Post("/posts", h.handleCreatePost)
	r.Get("/posts/{id}/likes", h.handleLikes)

	r.Post("/relationships/", h.handleCreateRelationship)
	r.Delete("/relationships/", h.handleDeleteRelationship)

	r.Route("/directory/users", func(dir chi.Router) {
		dir.Post("/", h.handleDirectoryCreate)
		dir.Get("/", h.handleDirectoryList)
		dir.Get("/{id}", h.handleDirectoryGet)
		dir.Put("/{id}", h.handleDirectoryUpdate)
		dir.Delete("/{id}", h.handleDirectoryDelete)
	})

	return r
}

type createPersonRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *Handler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.presence.CreatePerson(r.Context(), domain.Person{ID: req.ID, Name: req.Name, Role: req.Role})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type createOrganizationRequest struct {
	ID int64 `json:"id"`
}

func (h *Handler) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.presence.CreateOrganization(r.Context(), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type checkInItem struct {
	UserID int64 `json:"user_id"`
	OrgID  int64 `json:"org_id"`
}

func (h *Handler) handleCheckInBatch(w http.ResponseWriter, r *http.Request) {
	var items []checkInItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	requests := make([]application.CheckInRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, application.CheckInRequest{UserID: item.UserID, OrganizationID: item.OrgID})
	}
	results, err := h.presence.CheckInBatch(r.Context(), requests)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleActiveUsers(w http.ResponseWriter, r *http.Request) {
	groups, err := h.presence.ActiveUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active_users": groups})
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDQuery(w, r)
	if !ok {
		return
	}
	if err := h.presence.CheckoutNonAdmin(r.Context(), orgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "All non-admin users have been checked out"})
}

func (h *Handler) handleCheckoutAdminLegacy(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDQuery(w, r)
	if !ok {
		return
	}
	if err := h.presence.CheckoutAdminLegacy(r.Context(), orgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Admin has been checked out"})
}

type setTimesRequest struct {
	OrgID       int64  `json:"org_id"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

func (h *Handler) handleSetTimes(w http.ResponseWriter, r *http.Request) {
	var req setTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	if err := h.presence.SetHours(r.Context(), req.OrgID, req.OpeningTime, req.ClosingTime); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Operating hours updated"})
}

type gatedCheckInRequest struct {
	UserID int64 `json:"user_id"`
	OrgID  int64 `json:"org_id"`
}

func (h *Handler) handleGatedCheckIn(w http.ResponseWriter, r *http.Request) {
	var req gatedCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	if err := h.presence.GatedCheckIn(r.Context(), req.UserID, req.OrgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Checked in successfully"})
}

func (h *Handler) handleActiveUsersAt(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDQuery(w, r)
	if !ok {
		return
	}
	groups, err := h.presence.ActiveUsersAt(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active_users": groups})
}

func (h *Handler) handleAutoCheckout(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDQuery(w, r)
	if !ok {
		return
	}
	ran, err := h.presence.AutoCheckout(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	message := "Organization is still open; nobody was checked out"
	if ran {
		message = "All non-admin users have been checked out"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message})
}

func (h *Handler) handleAdminCheckout(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDQuery(w, r)
	if !ok {
		return
	}
	if err := h.presence.AdminCheckout(r.Context(), orgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Admin has been checked out"})
}

type createUserRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int64  `json:"age"`
	Gender string `json:"gender"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.social.CreateUser(r.Context(), domain.SocialUser{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.social.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	v, err := h.social.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Age    *int64  `json:"age"`
	Gender *string `json:"gender"`
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.social.UpdateUser(r.Context(), chi.URLParam(r, "id"), domain.SocialUserUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.social.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User " + id + " has been successfully deleted"})
}

type createPostRequest struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.social.CreatePost(r.Context(), domain.Post{ID: req.ID, Content: req.Content, Timestamp: req.Timestamp})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleFollow(w http.ResponseWriter, r *http.Request) {
	err := h.social.Follow(r.Context(), chi.URLParam(r, "followerID"), chi.URLParam(r, "followeeID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Follow relationship created"})
}

func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	err := h.social.Like(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Like relationship created"})
}

func (h *Handler) handleFollowers(w http.ResponseWriter, r *http.Request) {
	users, err := h.social.Followers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleFollowing(w http.ResponseWriter, r *http.Request) {
	users, err := h.social.Following(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleLikes(w http.ResponseWriter, r *http.Request) {
	users, err := h.social.Likes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type relationshipRequest struct {
	SourceID         any    `json:"source_id"`
	TargetID         any    `json:"target_id"`
	RelationshipType string `json:"relationship_type"`
}

func (h *Handler) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req relationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	id, err := h.relations.Create(r.Context(), domain.Relationship{
		SourceID: req.SourceID,
		TargetID: req.TargetID,
		Type:     req.RelationshipType,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"relationship_id": id})
}

func (h *Handler) handleDeleteRelationship(w http.ResponseWriter, r *http.Request) {
	var req relationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	err := h.relations.Delete(r.Context(), domain.Relationship{
		SourceID: req.SourceID,
		TargetID: req.TargetID,
		Type:     req.RelationshipType,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Relationship of type '" + req.RelationshipType + "' has been successfully deleted"})
}

type directoryUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

func (h *Handler) handleDirectoryCreate(w http.ResponseWriter, r *http.Request) {
	var req directoryUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.directory.CreateUser(r.Context(), domain.DirectoryUser{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDirectoryList(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	users, err := h.directory.ListUsers(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleDirectoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	v, err := h.directory.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type directoryUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

func (h *Handler) handleDirectoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	var req directoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.directory.UpdateUser(r.Context(), id, domain.DirectoryUserUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDirectoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.directory.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User has been successfully deleted"})
}

func orgIDQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("org_id")
	orgID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "org_id must be an integer"})
		return 0, false
	}
	return orgID, true
}

func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	parsed, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": name + " must be an integer"})
		return 0, false
	}
	return uint(parsed), true
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError translates the error taxonomy into response statuses. Store
// errors surface as an opaque 500 message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
	case errors.Is(err, domain.ErrOutsideHours):
		writeJSON(w, http.StatusForbidden, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrTimesNotSet):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	case domain.IsValidation(err), domain.IsInjectionRisk(err):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}
