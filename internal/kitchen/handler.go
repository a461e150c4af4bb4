package kitchen

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/httpx"
)

type Handler struct {
	Board  *Board
	Logger *zap.Logger
}

func (h *Handler) Register(r *chi.Mux) {
	r.Get("/api/kitchen/board", h.listBoard)
	r.Delete("/api/kitchen/board/{id}", h.clearTicket)
}

func (h *Handler) listBoard(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Board.List(r.Context())
	if err != nil {
		h.Logger.Error("list kitchen board", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tickets)
}

func (h *Handler) clearTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := h.Board.Remove(r.Context(), id); err != nil {
		h.Logger.Error("clear ticket", zap.Int64("order_id", id), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
