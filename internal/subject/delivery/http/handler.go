package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plataforma/labstock/internal/subject/domain"
)

// SubjectHandler handles HTTP requests for subjects. The aggregate is
// simple CRUD, so it talks to the repository directly.
type SubjectHandler struct {
	repo domain.SubjectRepository
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(repo domain.SubjectRepository) *SubjectHandler {
	return &SubjectHandler{repo: repo}
}

// CreateSubject handles POST /subjects
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	subject := &domain.Subject{Name: req.Name, Code: req.Code}
	if err := h.repo.Create(subject); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, subject)
}

// GetSubject handles GET /subjects/{id}
func (h *SubjectHandler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	subject, err := h.repo.FindByID(id)
	if err != nil {
		h.respondError(w, h.statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, subject)
}

// ListSubjects handles GET /subjects
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.repo.FindAll()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, subjects)
}

// UpdateSubject handles PUT /subjects/{id}
func (h *SubjectHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	subject := &domain.Subject{ID: id, Name: req.Name, Code: req.Code}
	if err := h.repo.Update(subject); err != nil {
		h.respondError(w, h.statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, subject)
}

// DeleteSubject handles DELETE /subjects/{id}
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.respondError(w, h.statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Subject deleted successfully"})
}

func (h *SubjectHandler) statusFor(err error) int {
	if errors.Is(err, domain.ErrSubjectNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (h *SubjectHandler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid subject ID")
		return 0, false
	}
	return uint(id), true
}

func (h *SubjectHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *SubjectHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all subject routes
func (h *SubjectHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/subjects", h.CreateSubject).Methods("POST")
	router.HandleFunc("/subjects", h.ListSubjects).Methods("GET")
	router.HandleFunc("/subjects/{id}", h.GetSubject).Methods("GET")
	router.HandleFunc("/subjects/{id}", h.UpdateSubject).Methods("PUT")
	router.HandleFunc("/subjects/{id}", h.DeleteSubject).Methods("DELETE")
}
