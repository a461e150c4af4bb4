package reports

import (
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
}

func (h *Handler) Register(r *chi.Mux) {
	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/last-z-report", h.lastZReport)
		r.Get("/x-report", h.xReport)
		r.Post("/z-report", h.zReport)
		r.Post("/update-last-z-report", h.updateLastZReport)
		r.Get("/sales", h.sales)
		r.Get("/excess", h.excess)
		r.Get("/restock", h.restock)
		r.Get("/together", h.together)
		r.Get("/menu-items-popularity", h.popularity)
	})
}

func (h *Handler) lastZReport(w http.ResponseWriter, r *http.Request) {
	ts, err := h.Repo.LastZReport(r.Context())
	if err != nil {
		h.Logger.Error("last z-report time", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"lastZReportTime": ts})
}

func (h *Handler) xReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.XReport(r.Context())
	if err != nil {
		h.Logger.Error("x-report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []HourlySales{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) zReport(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Repo.ZReport(r.Context())
	if err != nil {
		h.Logger.Error("z-report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Z-Report created successfully",
		"summary": summary,
	})
}

func (h *Handler) updateLastZReport(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.CloseRegister(r.Context()); err != nil {
		h.Logger.Error("close register", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Last run time updated successfully"})
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}
	rows, err := h.Repo.SalesByProduct(r.Context(), start, end)
	if err != nil {
		h.Logger.Error("sales report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []ProductSales{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) excess(w http.ResponseWriter, r *http.Request) {
	since, err := time.Parse(time.RFC3339, r.URL.Query().Get("timestamp"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing or invalid query parameter: timestamp")
		return
	}
	rows, err := h.Repo.Excess(r.Context(), since)
	if err != nil {
		h.Logger.Error("excess report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []ExcessItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.Restock(r.Context())
	if err != nil {
		h.Logger.Error("restock report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []RestockItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) together(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}
	ascending := r.URL.Query().Get("order") == "asc"
	rows, err := h.Repo.SoldTogether(r.Context(), start, end, ascending)
	if err != nil {
		h.Logger.Error("sold-together report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []PairCount{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) popularity(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid limit parameter, must be a positive integer")
			return
		}
		limit = n
	}
	rows, err := h.Repo.Popularity(r.Context(), start, end, limit)
	if err != nil {
		h.Logger.Error("popularity report", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if rows == nil {
		rows = []PopularItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

func dateRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	q := r.URL.Query()
	start, err1 := time.Parse(time.RFC3339, q.Get("start"))
	end, err2 := time.Parse(time.RFC3339, q.Get("end"))
	if err1 != nil || err2 != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing or invalid query parameters: start, end")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
