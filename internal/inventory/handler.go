package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/httpx"
)

type Handler struct {
	Repo   *Repo
	Logger *zap.Logger
}

func (h *Handler) Register(r *chi.Mux) {
	r.Route("/api/inventory", func(r chi.Router) {
		r.Post("/", h.add)
		r.Get("/types", h.types)
		r.Get("/items", h.items)
		r.Get("/usage", h.usage)
		r.Get("/{name}", h.get)
		r.Put("/{name}", h.update)
		r.Post("/{name}/restock", h.restock)
		r.Delete("/{name}", h.delete)
	})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var it Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.Repo.Add(r.Context(), it)
	if err != nil {
		h.Logger.Error("add inventory item", zap.String("name", it.InventoryName), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Repo.Delete(r.Context(), name); err != nil {
		h.Logger.Error("delete inventory item", zap.String("name", name), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) types(w http.ResponseWriter, r *http.Request) {
	types, err := h.Repo.Types(r.Context())
	if err != nil {
		h.Logger.Error("list inventory types", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if types == nil {
		types = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, types)
}

func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.Items(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		h.Logger.Error("list inventory items", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) usage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invType := q.Get("type")
	start, err1 := time.Parse(time.RFC3339, q.Get("start"))
	end, err2 := time.Parse(time.RFC3339, q.Get("end"))
	if invType == "" || err1 != nil || err2 != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing or invalid query parameters: type, start, end")
		return
	}
	rows, err := h.Repo.Usage(r.Context(), invType, start, end)
	if err != nil {
		h.Logger.Error("inventory usage report", zap.String("type", invType), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []UsageRow{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	it, err := h.Repo.Get(r.Context(), name)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Inventory item not found")
		return
	}
	if err != nil {
		h.Logger.Error("get inventory item", zap.String("name", name), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var it Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.Repo.Update(r.Context(), name, it)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		h.Logger.Error("update inventory item", zap.String("name", name), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body struct {
		Quantity float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.Repo.Restock(r.Context(), name, body.Quantity)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		h.Logger.Error("restock inventory item", zap.String("name", name), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
