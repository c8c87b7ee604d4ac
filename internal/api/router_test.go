package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/advisory"
	"github.com/agrivision/agrivision/internal/alert"
	"github.com/agrivision/agrivision/internal/api"
	"github.com/agrivision/agrivision/internal/api/models"
	"github.com/agrivision/agrivision/internal/auth"
	"github.com/agrivision/agrivision/internal/dashboard"
	"github.com/agrivision/agrivision/internal/farm"
	"github.com/agrivision/agrivision/internal/feedback"
	"github.com/agrivision/agrivision/internal/season"
	"github.com/agrivision/agrivision/internal/user"
	"github.com/agrivision/agrivision/internal/weather"
	"github.com/agrivision/agrivision/internal/yield"
)

const testUserID = "usr_testuser123"

// downProvider always fails, so the gateway serves the fallback snapshot.
type downProvider struct{}

func (downProvider) FetchForecast(context.Context, string) (*weather.Series, error) {
	return nil, weather.ErrProviderUnavailable
}

func (downProvider) Name() string { return "down" }

// testJWTService creates a JWT service for generating test tokens.
func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.agrivision.app",
		Audience:   "agrivision-api",
	})
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.New(io.Discard)

	userRepo := user.NewInMemoryRepository()
	now := time.Now()
	require.NoError(t, userRepo.Create(context.Background(), &user.User{
		ID:        testUserID,
		Name:      "Ramesh Patil",
		Phone:     "+919876543210",
		Language:  "mr",
		Location:  "Nashik, Maharashtra",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	gateway := weather.NewGateway(weather.GatewayConfig{
		Provider: downProvider{},
		Logger:   logger,
	})

	farmService := farm.NewService(farm.NewInMemoryRepository())
	alertService := alert.NewService(alert.NewInMemoryRepository())
	feedbackService := feedback.NewService(feedback.NewInMemoryRepository())
	predictor := yield.NewPredictor(feedbackService, logger)

	return api.NewRouter(api.RouterConfig{
		Version:         "test",
		BuildTime:       "2026-01-01T00:00:00Z",
		Logger:          logger,
		JWTService:      testJWTService(),
		UserService:     user.NewService(userRepo),
		FarmService:     farmService,
		AlertService:    alertService,
		AdvisoryService: advisory.NewService(advisory.NewRuleBasedEngine(gateway, logger)),
		FeedbackService: feedbackService,
		Predictor:       predictor,
		Planner:         season.NewPlanner(season.PlannerConfig{Logger: logger}),
		Aggregator:      dashboard.NewAggregator(gateway, alertService, predictor, logger),
		WeatherGateway:  gateway,
	})
}

// addAuthHeader adds a valid Bearer token to the request.
func addAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()
	token, _, err := testJWTService().GenerateAccessToken(testUserID)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

// createTestFarm creates a farm through the API and returns its ID.
func createTestFarm(t *testing.T, router http.Handler) string {
	t.Helper()

	input := models.FarmCreateRequest{
		Name:             "River Plot",
		Location:         "Nashik, Maharashtra",
		SizeAcres:        2.5,
		CropType:         "tomato",
		SowingDate:       "2026-06-15",
		IrrigationMethod: "drip",
		SoilHealth:       models.SoilHealth{Nitrogen: 70, Phosphorus: 60, Potassium: 65, PH: 6.8},
	}
	body, _ := json.Marshal(input)

	req := httptest.NewRequest(http.MethodPost, "/v1/me/farms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Farm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_GetMe(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var me models.Me
	err := json.Unmarshal(w.Body.Bytes(), &me)
	require.NoError(t, err)

	assert.Equal(t, testUserID, me.ID)
	assert.Equal(t, "Ramesh Patil", me.Name)
}

func TestRouter_Me_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_FarmCRUD(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	// Get
	req := httptest.NewRequest(http.MethodGet, "/v1/me/farms/"+farmID, http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Farm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "River Plot", fetched.Name)
	assert.Equal(t, "drip", fetched.IrrigationMethod)

	// Update
	newName := "Hill Plot"
	body, _ := json.Marshal(models.FarmUpdateRequest{Name: &newName})
	req = httptest.NewRequest(http.MethodPut, "/v1/me/farms/"+farmID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Farm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Hill Plot", updated.Name)
	assert.Equal(t, "tomato", updated.CropType)

	// List
	req = httptest.NewRequest(http.MethodGet, "/v1/me/farms", http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var farms models.PagedFarms
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &farms))
	assert.Len(t, farms.Items, 1)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/v1/me/farms/"+farmID, http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Gone
	req = httptest.NewRequest(http.MethodGet, "/v1/me/farms/"+farmID, http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CreateFarm_ValidationError(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(models.FarmCreateRequest{Name: "No Fields Farm"})
	req := httptest.NewRequest(http.MethodPost, "/v1/me/farms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.Errors)
}

func TestRouter_Dashboard(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/farms/"+farmID+"/dashboard", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view models.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	// The provider is down, so the dashboard renders on the fallback snapshot.
	assert.Equal(t, "fallback", view.Weather.Source)
	assert.Len(t, view.Weather.Forecast, 5)
	assert.NotNil(t, view.Alerts)
	assert.False(t, view.AlertsUnavailable)
	require.NotNil(t, view.Yield)
	assert.Greater(t, view.Yield.PredictedYield, 0.0)
}

func TestRouter_ListAlerts(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/farms/"+farmID+"/alerts", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list models.AlertList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.NotNil(t, list.Items)
	assert.Equal(t, 0, list.Total)
}

func TestRouter_ListAlerts_UnknownCategory(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/farms/"+farmID+"/alerts?category=locusts", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_PredictYield(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/farms/"+farmID+"/yield", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var prediction models.YieldPrediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prediction))
	assert.Equal(t, "tomato", prediction.CropType)
	assert.Greater(t, prediction.PredictedYield, 0.0)
	assert.Equal(t, "tonnes/acre", prediction.Unit)
	// No feedback yet, so there is no last-season baseline to compare against.
	assert.Nil(t, prediction.Comparison.RelativeChangePct)
}

func TestRouter_IrrigationAdvice(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	body, _ := json.Marshal(models.IrrigationAdviceRequest{LastIrrigationDate: "2026-08-25"})
	req := httptest.NewRequest(http.MethodPost, "/v1/farms/"+farmID+"/advisory/irrigation", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var advice models.IrrigationAdvice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &advice))
	assert.Equal(t, 2, advice.IntervalDays) // drip
	assert.Equal(t, "2026-08-27", advice.NextIrrigation)
	assert.Equal(t, 25.0, advice.WaterAmountLiters)
}

func TestRouter_FertilizerAdvice(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	body, _ := json.Marshal(models.FertilizerAdviceRequest{CropStage: "flowering"})
	req := httptest.NewRequest(http.MethodPost, "/v1/farms/"+farmID+"/advisory/fertilizer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var advice models.FertilizerAdvice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &advice))
	assert.Equal(t, "NPK 19:19:19", advice.Fertilizer)
	assert.Equal(t, "fertigation", advice.Method) // drip farm
}

func TestRouter_DetectPest(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(models.PestDetectionRequest{Image: "aGVsbG8gY3JvcA=="})
	req := httptest.NewRequest(http.MethodPost, "/v1/advisory/pest", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var detection models.PestDetection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detection))
	assert.True(t, detection.Detected)
	assert.Equal(t, "Aphids", detection.PestName)
	assert.Equal(t, "yellow", detection.Badge)
}

func TestRouter_PlanningAdvice(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/planning?location=Nashik", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var advice models.SeasonAdvice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &advice))
	assert.NotEmpty(t, advice.Season)
	assert.NotEmpty(t, advice.RecommendedCrop)
	assert.Len(t, advice.Alternatives, 3)
}

func TestRouter_PlanningAdvice_MissingLocation(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/planning", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_FeedbackRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	body, _ := json.Marshal(models.FeedbackSubmitRequest{
		ActualYield: 18.5,
		Issues:      []string{"late blight"},
		Rating:      4,
		Comments:    "Forecast helped plan the final irrigation.",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/farms/"+farmID+"/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/v1/farms/"+farmID+"/feedback", http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list models.FeedbackList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, 18.5, list.Items[0].ActualYield)
	assert.Equal(t, []string{"late blight"}, list.Items[0].Issues)
}

func TestRouter_FarmRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/farms/frm_test/dashboard", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_OtherUsersFarm_NotFound(t *testing.T) {
	router := newTestRouter(t)
	farmID := createTestFarm(t, router)

	// A different authenticated user must not see the farm.
	token, _, err := testJWTService().GenerateAccessToken("usr_someoneelse")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/farms/"+farmID+"/dashboard", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
