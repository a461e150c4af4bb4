package employees

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/httpx"
)

type Handler struct {
	Repo   *Repo
	Logger *zap.Logger

	// HelpDeskID is the employee row used as the manager-help mailbox.
	HelpDeskID int
}

func (h *Handler) Register(r *chi.Mux) {
	r.Route("/api/employees", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Post("/help", h.requestHelp)
		r.Delete("/help", h.clearHelp)
		r.Get("/help", h.helpStatus)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.terminate)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	emps, err := h.Repo.List(r.Context())
	if err != nil {
		h.Logger.Error("list employees", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if emps == nil {
		emps = []Employee{}
	}
	httpx.WriteJSON(w, http.StatusOK, emps)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	emp, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		h.Logger.Error("get employee", zap.Int("employee_id", id), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, emp)
}

type employeeRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	ActiveStatus *bool  `json:"active_status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	emp, err := h.Repo.Create(r.Context(), body.Name, body.Role, body.ActiveStatus)
	if err != nil {
		h.Logger.Error("create employee", zap.String("name", body.Name), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	var body employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	emp, err := h.Repo.Update(r.Context(), id, body.Name, body.Role, body.ActiveStatus)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		h.Logger.Error("update employee", zap.Int("employee_id", id), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) terminate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	emp, err := h.Repo.Terminate(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		h.Logger.Error("terminate employee", zap.Int("employee_id", id), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) requestHelp(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.RequestHelp(r.Context(), h.HelpDeskID); err != nil {
		h.Logger.Error("request help", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Help requested"})
}

func (h *Handler) clearHelp(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.ClearHelp(r.Context(), h.HelpDeskID); err != nil {
		h.Logger.Error("clear help", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Help cleared"})
}

func (h *Handler) helpStatus(w http.ResponseWriter, r *http.Request) {
	active, requestedAt, err := h.Repo.HelpStatus(r.Context(), h.HelpDeskID)
	if err != nil {
		h.Logger.Error("help status", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, struct {
		Active      *bool      `json:"active"`
		RequestedAt *time.Time `json:"requested_at"`
	}{active, requestedAt})
}
