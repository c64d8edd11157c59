package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/stats"
)

// StatsHandler serves the aggregated dashboard payload.
type StatsHandler struct {
	engine *stats.Engine
	logger logger.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(engine *stats.Engine, log logger.Logger) *StatsHandler {
	return &StatsHandler{engine: engine, logger: log}
}

// Aggregate returns every chart breakdown plus the headline totals.
// Duplicates are included unless includeDuplicates is the literal "false".
func (h *StatsHandler) Aggregate(c *gin.Context) {
	includeDuplicates := c.Query("includeDuplicates") != "false"

	payload, err := h.engine.BuildDashboardPayload(c.Request.Context(), includeDuplicates)
	if err != nil {
		if errors.Is(err, stats.ErrStoreUnavailable) {
			h.logger.Error("Aggregate request failed, store unreachable", logger.Error(err))
		} else {
			h.logger.Error("Aggregate request failed", logger.Error(err))
		}
		respondError(c, http.StatusInternalServerError, "Server error while fetching aggregated stats")
		return
	}

	respondOK(c, http.StatusOK, payload)
}
