package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/metrics"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/storage"
)

// SubmissionStore is the slice of the store the submission handlers need.
type SubmissionStore interface {
	ListSummaries(ctx context.Context, f domain.Filter, limit int) ([]domain.SubmissionSummary, error)
	GetSubmission(ctx context.Context, id string) (*domain.Submission, error)
	InsertSubmission(ctx context.Context, sub *domain.Submission) (string, error)
}

// SubmissionHandler serves the submission list, detail, and intake routes.
type SubmissionHandler struct {
	store        SubmissionStore
	logger       logger.Logger
	met          *metrics.Metrics
	summaryLimit int
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(
	store SubmissionStore,
	log logger.Logger,
	met *metrics.Metrics,
	summaryLimit int,
) *SubmissionHandler {
	return &SubmissionHandler{
		store:        store,
		logger:       log,
		met:          met,
		summaryLimit: summaryLimit,
	}
}

// summaryItem is the list-view serialization: hex id, ISO-8601 timestamp.
type summaryItem struct {
	ID          string `json:"_id"`
	Name        string `json:"name,omitempty"`
	CreatedAt   string `json:"createdAt"`
	IsDuplicate bool   `json:"isDuplicate"`
}

// Summary lists submissions newest-first, capped at the configured limit.
// Duplicates are included unless includeDuplicates is the literal "false".
func (h *SubmissionHandler) Summary(c *gin.Context) {
	includeDuplicates := c.Query("includeDuplicates") != "false"
	f := domain.NewFilter(includeDuplicates)

	summaries, err := h.store.ListSummaries(c.Request.Context(), f, h.summaryLimit)
	if err != nil {
		h.logger.Error("Summary list failed", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch summaries")
		return
	}

	items := make([]summaryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, summaryItem{
			ID:          s.ID.Hex(),
			Name:        s.Name,
			CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
			IsDuplicate: s.IsDuplicate,
		})
	}

	respondOK(c, http.StatusOK, items)
}

// Detail returns one full submission by id. The id must be a 24-character hex
// ObjectID; format is checked before the store is touched.
func (h *SubmissionHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid submission ID format")
		return
	}

	sub, err := h.store.GetSubmission(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		h.logger.Error("Submission detail failed",
			logger.String("submission_id", id),
			logger.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "Server error while fetching submission")
		return
	}

	respondOK(c, http.StatusOK, sub)
}

// submitRequest is the intake payload. Field names mirror the stored schema;
// id and creation timestamp are server-assigned and not accepted from the
// client.
type submitRequest struct {
	Name                 string   `json:"name"`
	AgeGroup             string   `json:"ageGroup"`
	Occupation           string   `json:"occupation"`
	NoiseExposureFreq    string   `json:"noiseExposureFreq"`
	FocusDisturbance     string   `json:"focusDisturbance"`
	CommunitySeriousness string   `json:"communitySeriousness"`
	MapInterest          string   `json:"mapInterest"`
	CitizenScientist     string   `json:"citizenScientist"`
	NoiseSourceLocations []string `json:"noiseSourceLocations"`
	CommonNoiseSources   []string `json:"commonNoiseSources"`
	HeadphoneFreq        int      `json:"headphoneFreq"`
	BotherLevel          int      `json:"botherLevel"`
	BotherLabel          string   `json:"botherLabel"`
	FeaturePriorities    []string `json:"featurePriorities"`
	IsDuplicate          bool     `json:"isDuplicate"`
}

// toSubmission converts the request to the domain model. Multi-select fields
// default to empty selections rather than null.
func (r *submitRequest) toSubmission() *domain.Submission {
	locations := r.NoiseSourceLocations
	if locations == nil {
		locations = []string{}
	}
	sources := r.CommonNoiseSources
	if sources == nil {
		sources = []string{}
	}

	return &domain.Submission{
		Name:                 r.Name,
		AgeGroup:             r.AgeGroup,
		Occupation:           r.Occupation,
		NoiseExposureFreq:    r.NoiseExposureFreq,
		FocusDisturbance:     r.FocusDisturbance,
		CommunitySeriousness: r.CommunitySeriousness,
		MapInterest:          r.MapInterest,
		CitizenScientist:     r.CitizenScientist,
		NoiseSourceLocations: locations,
		CommonNoiseSources:   sources,
		HeadphoneFreq:        r.HeadphoneFreq,
		BotherLevel:          r.BotherLevel,
		BotherLabel:          r.BotherLabel,
		FeaturePriorities:    r.FeaturePriorities,
		IsDuplicate:          r.IsDuplicate,
	}
}

// Submit validates and stores a new submission. The client's isDuplicate flag
// is stored as-is; it is advisory and never verified server-side.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Error parsing request body.")
		return
	}

	sub := req.toSubmission()
	if fieldErrs := sub.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid submission data.",
			"errors":  fieldErrs,
		})
		return
	}

	id, err := h.store.InsertSubmission(c.Request.Context(), sub)
	if err != nil {
		h.logger.Error("Submission insert failed", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Database error while saving submission")
		return
	}

	h.met.SubmissionsStored.Inc()
	h.logger.Info("Submission stored",
		logger.String("submission_id", id),
		logger.Bool("is_duplicate", sub.IsDuplicate),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Submission received!",
		"data":    gin.H{"id": id},
	})
}
