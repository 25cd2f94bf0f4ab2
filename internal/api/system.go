package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type metricSample struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

func (h *Handler) Health(c *gin.Context) {
	respondJSON(c, http.StatusOK, "OK", nil)
}

// MetricsSnapshot lists every counter sorted by name.
func (h *Handler) MetricsSnapshot(c *gin.Context) {
	samples := []metricSample{}
	if h.Metrics != nil {
		values := h.Metrics.Snapshot()
		for _, name := range h.Metrics.Names() {
			samples = append(samples, metricSample{Name: name, Value: values[name]})
		}
	}
	respondJSON(c, http.StatusOK, "metrics", samples)
}
