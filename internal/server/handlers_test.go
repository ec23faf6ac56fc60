package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/models"
	"github.com/xaenox/spam-detector/internal/service"
	"github.com/xaenox/spam-detector/internal/storage"
	"go.uber.org/zap"
)

func testPipeline() classifier.Pipeline {
	vectorizer := &classifier.TfidfVectorizer{
		Vocabulary: map[string]int{
			"click":           0,
			"congratulations": 1,
			"free":            2,
			"meeting":         3,
			"money":           4,
			"room":            5,
			"scheduled":       6,
			"tomorrow":        7,
			"winner":          8,
			"won":             9,
		},
		Idf:      []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		NgramMin: 1,
		NgramMax: 2,
	}
	model := &classifier.LinearModel{
		Coef:      []float64{2.0, 2.5, 2.0, -2.0, 2.0, -1.5, -2.0, -1.5, 2.5, 2.5},
		Intercept: -0.2,
	}
	return classifier.NewTrainedPipeline("linear_svc", vectorizer, model)
}

func testServer(store storage.ArtifactStore) *httptest.Server {
	cache := storage.NewCache(store, zap.NewNop())
	svc := service.New(cache, service.NewUsage(), Version, zap.NewNop())
	return httptest.NewServer(BuildServer(svc, zap.NewNop()))
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRootEndpoint(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info InfoResponse
	decode(t, resp, &info)
	assert.Equal(t, "Spam Detector API", info.Name)
	assert.Equal(t, Version, info.Version)
}

func TestHealthBeforeAnyPrediction(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h models.Health
	decode(t, resp, &h)
	assert.Equal(t, "healthy", h.Status)
	assert.False(t, h.ModelLoaded)
	assert.Equal(t, Version, h.Version)
}

func TestHealthStaysUpWithBrokenModel(t *testing.T) {
	store := storage.NewFileStore("/nonexistent/model.json", "/nonexistent/metrics.json", zap.NewNop())
	ts := testServer(store)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPredictSpam(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	body := `{"message": "CONGRATULATIONS!!! You won $1,000,000! Click here NOW!"}`
	resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.PredictionResult
	decode(t, resp, &result)
	assert.Equal(t, models.LabelSpam, result.Prediction)
	assert.True(t, result.IsSpam)
	require.NotNil(t, result.Confidence)
	assert.Greater(t, *result.Confidence, 0.5)
	assert.Equal(t, "CONGRATULATIONS!!! You won $1,000,000! Click here NOW!", result.Message)
}

func TestPredictHam(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	body := `{"message": "Meeting scheduled for tomorrow at 3pm in conference room B."}`
	resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.PredictionResult
	decode(t, resp, &result)
	assert.Equal(t, models.LabelHam, result.Prediction)
	assert.False(t, result.IsSpam)
}

func TestPredictEmptyMessageRejected(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader(`{"message": "  "}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Error)
	assert.NotEmpty(t, body.Detail)
}

func TestPredictModelUnavailable(t *testing.T) {
	store := storage.NewFileStore("/nonexistent/model.json", "/nonexistent/metrics.json", zap.NewNop())
	ts := testServer(store)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader(`{"message": "hello"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Error)
	assert.Contains(t, body.Detail, "model not loaded")
}

func TestPredictBatch(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	body := `{"messages": ["free money winner", "meeting tomorrow"]}`
	resp, err := http.Post(ts.URL+"/predict/batch", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var batch models.BatchResult
	decode(t, resp, &batch)
	assert.Equal(t, 2, batch.Total)
	assert.Equal(t, 1, batch.SpamCount)
	assert.Equal(t, 1, batch.HamCount)
	require.Len(t, batch.Predictions, 2)
	assert.True(t, batch.Predictions[0].IsSpam)
	assert.False(t, batch.Predictions[1].IsSpam)
}

func TestPredictBatchValidation(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/predict/batch", "application/json", strings.NewReader(`{"messages": []}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	msgs := make([]string, 0, 101)
	for i := 0; i < 101; i++ {
		msgs = append(msgs, fmt.Sprintf(`"m%d"`, i))
	}
	over := `{"messages": [` + strings.Join(msgs, ",") + `]}`
	resp, err = http.Post(ts.URL+"/predict/batch", "application/json", strings.NewReader(over))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredictInvalidJSON(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	store := storage.NewStaticStore(testPipeline())
	store.Metrics = models.EvaluationMetrics{Model: "linear_svc", Accuracy: 0.99}
	ts := testServer(store)
	defer ts.Close()

	// Serve one prediction so the counters move.
	resp, err := http.Post(ts.URL+"/predict", "application/json",
		strings.NewReader(`{"message": "free money"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap models.MetricsSnapshot
	decode(t, resp, &snap)
	assert.Equal(t, "linear_svc", snap.ModelMetrics.Model)
	assert.Equal(t, uint64(1), snap.SystemMetrics.TotalPredictions)
	assert.Equal(t, snap.SystemMetrics.TotalPredictions,
		snap.SystemMetrics.SpamDetected+snap.SystemMetrics.HamDetected)
	assert.True(t, snap.SystemMetrics.ModelLoaded)
}

func TestReloadEndpoint(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/model/reload", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body ReloadResponse
	decode(t, resp, &body)
	assert.Equal(t, "reloaded", body.Status)
	assert.Equal(t, "linear_svc", body.ModelName)
}

func TestReloadEndpointFailure(t *testing.T) {
	store := storage.NewFileStore("/nonexistent/model.json", "/nonexistent/metrics.json", zap.NewNop())
	ts := testServer(store)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/model/reload", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Detail)
}

func TestRequestIDHeaderSet(t *testing.T) {
	ts := testServer(storage.NewStaticStore(testPipeline()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
