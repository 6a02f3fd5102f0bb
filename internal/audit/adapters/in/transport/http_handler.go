package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"guideadmin/internal/audit/application/ports/in"
	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"
)

// HTTPHandler — API журнала админских действий
type HTTPHandler struct {
	listActionsUC in.ListActionsUseCase
	log           *logger.Logger
}

func NewHTTPHandler(listActionsUC in.ListActionsUseCase, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{listActionsUC: listActionsUC, log: log}
}

// RegisterRoutes регистрирует маршруты audit API
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, adminAuthMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /actions", adminAuthMiddleware(h.handleListActions))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "audit"})
}

type listActionsResponse struct {
	Actions []domain.Action `json:"actions"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// handleListActions обрабатывает GET /actions?limit=&offset=
func (h *HTTPHandler) handleListActions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := domain.Page{}
	for name, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, name+" must be a number")
			return
		}
		*dst = n
	}

	actions, err := h.listActionsUC.Execute(r.Context(), page)
	if err != nil {
		h.handleUseCaseError(w, r, err)
		return
	}

	page, _ = page.Normalize()
	respondJSON(w, http.StatusOK, listActionsResponse{Actions: actions, Limit: page.Limit, Offset: page.Offset})
}

func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPage):
		respondError(w, http.StatusBadRequest, "limit and offset must not be negative")
	default:
		h.log.WithContext(r.Context()).Error(logger.Entry{
			Action:  "audit_usecase_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
