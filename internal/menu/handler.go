package menu

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/httpx"
)

type Handler struct {
	Repo   *Repo
	Logger *zap.Logger
}

func (h *Handler) Register(r *chi.Mux) {
	r.Route("/api/menu", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Get("/board", h.board)
		r.Put("/{product_name}", h.update)
		r.Delete("/{product_name}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Logger.Error("list menu", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []MenuItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var it MenuItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.Repo.Add(r.Context(), it)
	if err != nil {
		h.Logger.Error("add menu item", zap.String("product", it.ProductName), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	productName := chi.URLParam(r, "product_name")
	var body struct {
		Price    float64 `json:"price"`
		Calories int     `json:"calories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.Repo.Update(r.Context(), productName, body.Price, body.Calories)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	if err != nil {
		h.Logger.Error("update menu item", zap.String("product", productName), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	productName := chi.URLParam(r, "product_name")
	if err := h.Repo.Delete(r.Context(), productName); err != nil {
		h.Logger.Error("delete menu item", zap.String("product", productName), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) board(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Repo.BoardSections(r.Context())
	if err != nil {
		h.Logger.Error("menu board sections", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sections)
}
