package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/handler"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/metrics"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore implements handler.SubmissionStore in memory.
type fakeStore struct {
	summaries []domain.SubmissionSummary
	byID      map[string]*domain.Submission

	listErr   error
	getErr    error
	insertErr error

	inserted *domain.Submission
}

func (f *fakeStore) ListSummaries(_ context.Context, filter domain.Filter, limit int) ([]domain.SubmissionSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.SubmissionSummary, 0, limit)
	for _, s := range f.summaries {
		if filter.ExcludeDuplicates && s.IsDuplicate {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) GetSubmission(_ context.Context, id string) (*domain.Submission, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	sub, ok := f.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return sub, nil
}

func (f *fakeStore) InsertSubmission(_ context.Context, sub *domain.Submission) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = sub
	return primitive.NewObjectID().Hex(), nil
}

func newSubmissionRouter(store *fakeStore) *gin.Engine {
	h := handler.NewSubmissionHandler(store, logger.NewNop(), metrics.New(prometheus.NewRegistry()), 200)

	router := gin.New()
	router.GET("/api/submissions/summary", h.Summary)
	router.GET("/api/submissions/:id", h.Detail)
	router.POST("/api/submit", h.Submit)
	return router
}

func validSubmitBody() map[string]any {
	return map[string]any{
		"name":                 "Asha",
		"ageGroup":             "18-22",
		"occupation":           "Student",
		"noiseExposureFreq":    "Often",
		"focusDisturbance":     "Sometimes",
		"communitySeriousness": "Yes, definitely",
		"mapInterest":          "Maybe",
		"citizenScientist":     "Maybe, occasionally",
		"noiseSourceLocations": []string{"Home", "Commute"},
		"commonNoiseSources":   []string{"Traffic"},
		"headphoneFreq":        7,
		"botherLevel":          70,
		"botherLabel":          "Street traffic (70dB)",
		"featurePriorities": []string{
			"Noise Heatmaps", "Quieter Routes", "Noise Forecasts", "Report & Learn Tool",
		},
		"isDuplicate": false,
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSummary(t *testing.T) {
	created := time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC)
	store := &fakeStore{summaries: []domain.SubmissionSummary{
		{ID: primitive.NewObjectID(), Name: "Asha", CreatedAt: created},
		{ID: primitive.NewObjectID(), CreatedAt: created, IsDuplicate: true},
	}}
	router := newSubmissionRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/submissions/summary", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			ID          string `json:"_id"`
			Name        string `json:"name"`
			CreatedAt   string `json:"createdAt"`
			IsDuplicate bool   `json:"isDuplicate"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, store.summaries[0].ID.Hex(), resp.Data[0].ID)
	assert.Equal(t, "2025-11-03T14:30:00Z", resp.Data[0].CreatedAt)
	assert.True(t, resp.Data[1].IsDuplicate)
}

func TestSummary_ExcludesDuplicates(t *testing.T) {
	store := &fakeStore{summaries: []domain.SubmissionSummary{
		{ID: primitive.NewObjectID(), CreatedAt: time.Now()},
		{ID: primitive.NewObjectID(), CreatedAt: time.Now(), IsDuplicate: true},
	}}
	router := newSubmissionRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/submissions/summary?includeDuplicates=false", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestSummary_StoreError(t *testing.T) {
	router := newSubmissionRouter(&fakeStore{listErr: errors.New("cursor failed")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/submissions/summary", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch summaries")
}

func TestDetail(t *testing.T) {
	id := primitive.NewObjectID()
	store := &fakeStore{byID: map[string]*domain.Submission{
		id.Hex(): {ID: id, AgeGroup: "23-30", Occupation: "Student"},
	}}
	router := newSubmissionRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/submissions/"+id.Hex(), http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ageGroup":"23-30"`)
}

func TestDetail_MalformedID(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store must not be reached")}
	router := newSubmissionRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/submissions/not-a-hex-id", http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid submission ID format")
}

func TestDetail_NotFound(t *testing.T) {
	router := newSubmissionRouter(&fakeStore{byID: map[string]*domain.Submission{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/submissions/"+primitive.NewObjectID().Hex(), http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Submission not found")
}

func TestSubmit(t *testing.T) {
	store := &fakeStore{}
	router := newSubmissionRouter(store)

	w := postJSON(t, router, "/api/submit", validSubmitBody())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Submission received!")

	require.NotNil(t, store.inserted)
	assert.Equal(t, "Student", store.inserted.Occupation)
	assert.False(t, store.inserted.IsDuplicate)
}

func TestSubmit_MalformedBody(t *testing.T) {
	router := newSubmissionRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error parsing request body.")
}

func TestSubmit_ValidationErrors(t *testing.T) {
	store := &fakeStore{}
	router := newSubmissionRouter(store)

	body := validSubmitBody()
	body["ageGroup"] = "17"
	body["headphoneFreq"] = 0

	w := postJSON(t, router, "/api/submit", body)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Message string
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Len(t, resp.Errors, 2)
	assert.Nil(t, store.inserted)
}

func TestSubmit_StoreError(t *testing.T) {
	router := newSubmissionRouter(&fakeStore{insertErr: errors.New("write concern failed")})

	w := postJSON(t, router, "/api/submit", validSubmitBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Database error while saving submission")
}

func TestSubmit_DuplicateFlagStoredAsIs(t *testing.T) {
	store := &fakeStore{}
	router := newSubmissionRouter(store)

	body := validSubmitBody()
	body["isDuplicate"] = true

	w := postJSON(t, router, "/api/submit", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.inserted)
	assert.True(t, store.inserted.IsDuplicate)
}
