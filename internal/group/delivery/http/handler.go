package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plataforma/labstock/internal/group/domain"
)

// GroupHandler handles HTTP requests for groups. Plain CRUD, so it talks
// to the repository directly.
type GroupHandler struct {
	repo domain.GroupRepository
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(repo domain.GroupRepository) *GroupHandler {
	return &GroupHandler{repo: repo}
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	group := &domain.Group{Name: req.Name, Year: req.Year}
	if err := h.repo.Create(group); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, group)
}

// GetGroup handles GET /groups/{id}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	group, err := h.repo.FindByID(id)
	if err != nil {
		h.respondError(w, h.statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, group)
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.FindAll()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, groups)
}

// UpdateGroup handles PUT /groups/{id}
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	group := &domain.Group{ID: id, Name: req.Name, Year: req.Year}
	if err := h.repo.Update(group); err != nil {
		h.respondError(w, h.statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE /groups/{id}
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.respondError(w, h.statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

func (h *GroupHandler) statusFor(err error) int {
	if errors.Is(err, domain.ErrGroupNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (h *GroupHandler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid group ID")
		return 0, false
	}
	return uint(id), true
}

func (h *GroupHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *GroupHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all group routes
func (h *GroupHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/groups", h.CreateGroup).Methods("POST")
	router.HandleFunc("/groups", h.ListGroups).Methods("GET")
	router.HandleFunc("/groups/{id}", h.GetGroup).Methods("GET")
	router.HandleFunc("/groups/{id}", h.UpdateGroup).Methods("PUT")
	router.HandleFunc("/groups/{id}", h.DeleteGroup).Methods("DELETE")
}
