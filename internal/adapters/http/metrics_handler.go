package http

import (
	"errors"
	"net/http"
	"slices"

	"pulse-server/internal/adapters/http/response"
	"pulse-server/internal/core"
	"pulse-server/internal/domain"
)

type MetricsHandler struct {
	svc domain.MetricsService
	res response.ResponseWriter
}

func NewMetricsHandler(svc domain.MetricsService, res response.ResponseWriter) *MetricsHandler {
	return &MetricsHandler{
		svc: svc,
		res: res,
	}
}

func (h *MetricsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.svc.Latest()
	if err != nil {
		if errors.Is(err, domain.ErrNotSampled) {
			w.Header().Set("Retry-After", "1")
			h.res.WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		h.res.WriteError(w, http.StatusInternalServerError, "failed to get latest metrics")
		return
	}

	h.res.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    metrics,
		Meta:    core.DefaultMetadata(),
	})
}

func (h *MetricsHandler) History(w http.ResponseWriter, r *http.Request) {
	h.res.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    h.svc.History(),
		Meta:    historyMeta{Capacity: h.svc.Status().Capacity},
	})
}

func (h *MetricsHandler) Series(w http.ResponseWriter, r *http.Request) {
	id := domain.SeriesID(r.PathValue("series"))
	if !slices.Contains(domain.AllSeries, id) {
		h.notFoundSeries(w)
		return
	}

	points, err := h.svc.Series(id)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSeries) {
			h.notFoundSeries(w)
			return
		}

		h.res.WriteError(w, http.StatusInternalServerError, "failed to get history")
		return
	}

	h.res.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    points,
		Meta:    historyMeta{Series: id, Capacity: h.svc.Status().Capacity},
	})
}

func (h *MetricsHandler) notFoundSeries(w http.ResponseWriter) {
	h.res.Write(w, http.StatusNotFound, &response.Response{
		Message: "series not found",
		Errors:  map[string]any{"series": domain.AllSeries},
	})
}

func (h *MetricsHandler) Status(w http.ResponseWriter, r *http.Request) {
	h.res.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    h.svc.Status(),
	})
}

type historyMeta struct {
	Series   domain.SeriesID `json:"series,omitempty"`
	Capacity int             `json:"capacity"`
}
