package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	materialdomain "github.com/plataforma/labstock/internal/material/domain"
	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
	"github.com/plataforma/labstock/internal/reservation/usecase/query"
)

// ReservationHandler handles HTTP requests for reservations, their
// material line-items and team members
type ReservationHandler struct {
	// Command handlers
	createHandler       *command.CreateReservationHandler
	updateHandler       *command.UpdateReservationHandler
	deleteHandler       *command.DeleteReservationHandler
	addMaterialHandler  *command.AddMaterialHandler
	updateLineHandler   *command.UpdateMaterialLineHandler
	removeLineHandler   *command.RemoveMaterialLineHandler
	addMemberHandler    *command.AddTeamMemberHandler
	removeMemberHandler *command.RemoveTeamMemberHandler

	// Query handlers
	getHandler         *query.GetReservationHandler
	listHandler        *query.ListReservationsHandler
	getLineHandler     *query.GetMaterialLineHandler
	listLinesHandler   *query.ListMaterialLinesHandler
	listMembersHandler *query.ListTeamMembersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// Deps collects the collaborators the reservation handler wires into its
// command and query handlers
type Deps struct {
	Reservations domain.ReservationRepository
	Lines        domain.MaterialLineRepository
	Members      domain.TeamMemberRepository
	Users        domain.UserDirectory
	Subjects     domain.SubjectDirectory
	Groups       domain.GroupDirectory
	Publisher    command.MovementPublisher
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(deps Deps) *ReservationHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_service_requests_total",
			Help: "Total number of requests to reservation service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reservation_service_request_duration_seconds",
			Help:    "Duration of reservation service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ReservationHandler{
		createHandler:       command.NewCreateReservationHandler(deps.Reservations, deps.Users, deps.Subjects, deps.Groups),
		updateHandler:       command.NewUpdateReservationHandler(deps.Reservations, deps.Subjects, deps.Groups),
		deleteHandler:       command.NewDeleteReservationHandler(deps.Reservations, deps.Lines, deps.Members, deps.Publisher),
		addMaterialHandler:  command.NewAddMaterialHandler(deps.Reservations, deps.Lines, deps.Publisher),
		updateLineHandler:   command.NewUpdateMaterialLineHandler(deps.Lines, deps.Publisher),
		removeLineHandler:   command.NewRemoveMaterialLineHandler(deps.Lines, deps.Publisher),
		addMemberHandler:    command.NewAddTeamMemberHandler(deps.Reservations, deps.Members, deps.Users),
		removeMemberHandler: command.NewRemoveTeamMemberHandler(deps.Members),
		getHandler:          query.NewGetReservationHandler(deps.Reservations),
		listHandler:         query.NewListReservationsHandler(deps.Reservations),
		getLineHandler:      query.NewGetMaterialLineHandler(deps.Lines),
		listLinesHandler:    query.NewListMaterialLinesHandler(deps.Lines),
		listMembersHandler:  query.NewListTeamMembersHandler(deps.Members),
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ReservationHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// statusFor maps domain errors onto HTTP status codes. Insufficient stock
// is a client error: the request asked for more than the pool holds.
// Anything unrecognized is a storage fault and surfaces as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSubjectNotFound),
		errors.Is(err, domain.ErrGroupNotFound),
		errors.Is(err, materialdomain.ErrMaterialNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrDuplicateMember):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidTimeWindow),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, materialdomain.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateReservation handles POST /reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    uint      `json:"user_id"`
		SubjectID *uint     `json:"subject_id"`
		GroupID   *uint     `json:"group_id"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
		Purpose   string    `json:"purpose"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateReservationCommand{
		UserID:    req.UserID,
		SubjectID: req.SubjectID,
		GroupID:   req.GroupID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.Purpose,
	}

	reservation, err := h.createHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, reservation)
}

// GetReservation handles GET /reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	reservation, err := h.getHandler.Handle(query.GetReservationQuery{ID: id})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, reservation)
}

// ListReservations handles GET /reservations
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListReservationsQuery{Limit: limit, Offset: offset}
	if userStr := r.URL.Query().Get("user_id"); userStr != "" {
		userID, err := strconv.ParseUint(userStr, 10, 32)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}
		uid := uint(userID)
		q.UserID = &uid
	}

	reservations, err := h.listHandler.Handle(q)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, reservations)
}

// UpdateReservation handles PUT /reservations/{id}
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		SubjectID *uint      `json:"subject_id"`
		GroupID   *uint      `json:"group_id"`
		StartTime *time.Time `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
		Purpose   *string    `json:"purpose"`
		Status    *string    `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateReservationCommand{
		ID:        id,
		SubjectID: req.SubjectID,
		GroupID:   req.GroupID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.Purpose,
		Status:    req.Status,
	}

	reservation, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, reservation)
}

// DeleteReservation handles DELETE /reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteReservationCommand{ID: id}); err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted successfully"})
}

// AddMaterial handles POST /reservations/{id}/materials
func (h *ReservationHandler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		MaterialID uint `json:"material_id"`
		Quantity   int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.AddMaterialCommand{
		ReservationID: id,
		MaterialID:    req.MaterialID,
		Quantity:      req.Quantity,
	}

	line, err := h.addMaterialHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, line)
}

// ListMaterialLines handles GET /reservations/{id}/materials
func (h *ReservationHandler) ListMaterialLines(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	lines, err := h.listLinesHandler.Handle(query.ListMaterialLinesQuery{ReservationID: &id})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, lines)
}

// GetMaterialLine handles GET /reservation-materials/{id}
func (h *ReservationHandler) GetMaterialLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	line, err := h.getLineHandler.Handle(query.GetMaterialLineQuery{ID: id})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, line)
}

// UpdateMaterialLine handles PUT /reservation-materials/{id}
func (h *ReservationHandler) UpdateMaterialLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		ReturnedQuantity *int    `json:"returned_quantity"`
		Status           *string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateMaterialLineCommand{
		LineID:           id,
		ReturnedQuantity: req.ReturnedQuantity,
		Status:           req.Status,
	}

	line, err := h.updateLineHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, line)
}

// RemoveMaterialLine handles DELETE /reservation-materials/{id}
func (h *ReservationHandler) RemoveMaterialLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.removeLineHandler.Handle(r.Context(), command.RemoveMaterialLineCommand{LineID: id}); err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Material line deleted successfully"})
}

// AddTeamMember handles POST /reservations/{id}/team
func (h *ReservationHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		UserID uint `json:"user_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.addMemberHandler.Handle(command.AddTeamMemberCommand{
		ReservationID: id,
		UserID:        req.UserID,
	})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, member)
}

// ListTeamMembers handles GET /reservations/{id}/team
func (h *ReservationHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.listMembersHandler.Handle(query.ListTeamMembersQuery{ReservationID: &id})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, members)
}

// ListUserMemberships handles GET /users/{id}/teams
func (h *ReservationHandler) ListUserMemberships(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.listMembersHandler.Handle(query.ListTeamMembersQuery{UserID: &id})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, members)
}

// RemoveTeamMember handles DELETE /team-members/{id}
func (h *ReservationHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.removeMemberHandler.Handle(command.RemoveTeamMemberCommand{ID: id}); err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Team member removed successfully"})
}

// pathID parses the named numeric path variable
func (h *ReservationHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func (h *ReservationHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ReservationHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all reservation routes
func (h *ReservationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reservations", h.metricsMiddleware("/reservations", h.CreateReservation)).Methods("POST")
	router.HandleFunc("/reservations", h.metricsMiddleware("/reservations", h.ListReservations)).Methods("GET")
	router.HandleFunc("/reservations/{id}", h.metricsMiddleware("/reservations/{id}", h.GetReservation)).Methods("GET")
	router.HandleFunc("/reservations/{id}", h.metricsMiddleware("/reservations/{id}", h.UpdateReservation)).Methods("PUT")
	router.HandleFunc("/reservations/{id}", h.metricsMiddleware("/reservations/{id}", h.DeleteReservation)).Methods("DELETE")

	router.HandleFunc("/reservations/{id}/materials", h.metricsMiddleware("/reservations/{id}/materials", h.AddMaterial)).Methods("POST")
	router.HandleFunc("/reservations/{id}/materials", h.metricsMiddleware("/reservations/{id}/materials", h.ListMaterialLines)).Methods("GET")
	router.HandleFunc("/reservation-materials/{id}", h.metricsMiddleware("/reservation-materials/{id}", h.GetMaterialLine)).Methods("GET")
	router.HandleFunc("/reservation-materials/{id}", h.metricsMiddleware("/reservation-materials/{id}", h.UpdateMaterialLine)).Methods("PUT")
	router.HandleFunc("/reservation-materials/{id}", h.metricsMiddleware("/reservation-materials/{id}", h.RemoveMaterialLine)).Methods("DELETE")

	router.HandleFunc("/reservations/{id}/team", h.metricsMiddleware("/reservations/{id}/team", h.AddTeamMember)).Methods("POST")
	router.HandleFunc("/reservations/{id}/team", h.metricsMiddleware("/reservations/{id}/team", h.ListTeamMembers)).Methods("GET")
	router.HandleFunc("/users/{id}/teams", h.metricsMiddleware("/users/{id}/teams", h.ListUserMemberships)).Methods("GET")
	router.HandleFunc("/team-members/{id}", h.metricsMiddleware("/team-members/{id}", h.RemoveTeamMember)).Methods("DELETE")
}
