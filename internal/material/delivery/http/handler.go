package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/plataforma/labstock/internal/material/domain"
	"github.com/plataforma/labstock/internal/material/usecase/command"
	"github.com/plataforma/labstock/internal/material/usecase/query"
)

// MaterialHandler handles HTTP requests for materials
type MaterialHandler struct {
	// Command handlers
	createHandler *command.CreateMaterialHandler
	updateHandler *command.UpdateMaterialHandler
	deleteHandler *command.DeleteMaterialHandler

	// Query handlers
	getHandler  *query.GetMaterialHandler
	listHandler *query.ListMaterialsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(repo domain.MaterialRepository, ledger domain.StockLedger) *MaterialHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "material_service_requests_total",
			Help: "Total number of requests to material service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "material_service_request_duration_seconds",
			Help:    "Duration of material service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &MaterialHandler{
		createHandler:  command.NewCreateMaterialHandler(repo),
		updateHandler:  command.NewUpdateMaterialHandler(repo, ledger),
		deleteHandler:  command.NewDeleteMaterialHandler(repo),
		getHandler:     query.NewGetMaterialHandler(repo),
		listHandler:    query.NewListMaterialsHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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
func (h *MaterialHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMaterialNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// CreateMaterial handles POST /materials
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Stock       int    `json:"stock"`
		Category    string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateMaterialCommand{
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Category:    req.Category,
	}

	material, err := h.createHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, material)
}

// GetMaterial handles GET /materials/{id}
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	q := query.GetMaterialQuery{ID: uint(id)}
	material, err := h.getHandler.Handle(q)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, material)
}

// ListMaterials handles GET /materials
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListMaterialsQuery{
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	}

	materials, err := h.listHandler.Handle(q)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, materials)
}

// UpdateMaterial handles PUT /materials/{id}
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Stock       *int   `json:"stock"`
		Category    string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateMaterialCommand{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Category:    req.Category,
	}

	material, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, material)
}

// DeleteMaterial handles DELETE /materials/{id}
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	cmd := command.DeleteMaterialCommand{ID: uint(id)}
	if err := h.deleteHandler.Handle(cmd); err != nil {
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Material deleted successfully"})
}

// respondJSON sends a JSON response
func (h *MaterialHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *MaterialHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all material routes
func (h *MaterialHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/materials", h.metricsMiddleware("/materials", h.CreateMaterial)).Methods("POST")
	router.HandleFunc("/materials", h.metricsMiddleware("/materials", h.ListMaterials)).Methods("GET")
	router.HandleFunc("/materials/{id}", h.metricsMiddleware("/materials/{id}", h.GetMaterial)).Methods("GET")
	router.HandleFunc("/materials/{id}", h.metricsMiddleware("/materials/{id}", h.UpdateMaterial)).Methods("PUT")
	router.HandleFunc("/materials/{id}", h.metricsMiddleware("/materials/{id}", h.DeleteMaterial)).Methods("DELETE")
}
