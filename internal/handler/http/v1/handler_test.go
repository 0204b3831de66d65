package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/config"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/push"
	"github.com/shenikar/accident_alert_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAPIKey        = "test-api-key"
	testJWTSecret     = "test-jwt-secret"
	testWebhookSecret = "test-webhook-secret"
)

var (
	testNow    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	apiKeyAuth = map[string]string{"X-API-Key": testAPIKey}
)

type testMocks struct {
	incidents   *mocks.MockIncidentService
	localAlerts *mocks.MockLocalAlertService
	cloudAlerts *mocks.MockCloudAlertService
	stats       *mocks.MockStatsService
}

// envelope - конверт ответа с сырыми данными для последующего разбора
type envelope struct {
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		incidents:   mocks.NewMockIncidentService(ctrl),
		localAlerts: mocks.NewMockLocalAlertService(ctrl),
		cloudAlerts: mocks.NewMockCloudAlertService(ctrl),
		stats:       mocks.NewMockStatsService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:       []string{testAPIKey},
		JWTSecret:     testJWTSecret,
		WebhookSecret: testWebhookSecret,
	}

	handler := NewHandler(m.incidents, m.localAlerts, m.cloudAlerts, m.stats, logger, cfg)
	handler.now = func() time.Time { return testNow }

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func bearer(t *testing.T, claims jwt.MapClaims, secret string) map[string]string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func f(v float64) *float64 { return &v }

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w, nil)
	assert.True(t, env.Status)
	assert.Equal(t, "ok", env.Message)
}

func TestReportSensor_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()
	expectedSample := models.SensorSample{AccX: 20, AccY: 21, AccZ: 19, GyroX: 180, GyroY: 190, GyroZ: 170}

	m.incidents.EXPECT().
		ReportFromSensor(gomock.Any(), expectedSample, models.Coordinate{Latitude: 17.385, Longitude: 78.4867}, (*string)(nil)).
		Return(&models.Incident{
			ID:        incidentID,
			Latitude:  17.385,
			Longitude: 78.4867,
			Severity:  models.SeverityHigh,
			Origin:    models.OriginSensor,
		}, nil).
		Times(1)

	body := SensorEventRequest{
		AccX: f(20), AccY: f(21), AccZ: f(19),
		GyroX: f(180), GyroY: f(190), GyroZ: f(170),
		Latitude: f(17.385), Longitude: f(78.4867),
	}
	w := makeRequest(router, "POST", "/api/v1/accidents/sensor", jsonBody(t, body))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	env := decode(t, w, &resp)
	assert.True(t, env.Status)
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "high", resp.Severity)
	assert.Equal(t, "sensor", resp.ReportedVia)
}

func TestReportSensor_MissingFeature(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportFromSensor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/accidents/sensor", bytes.NewBufferString(`{"acc_x": 1, "acc_y": 2, "acc_z": 3, "gyro_x": 4, "gyro_y": 5}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Status)
	assert.Contains(t, env.Error, "GyroZ")
}

func TestReportSensor_NonNumericFeature(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportFromSensor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/accidents/sensor", bytes.NewBufferString(`{"acc_x": "fast"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestReportSensor_ReporterFromJWT(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ReportFromSensor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.SensorSample, _ models.Coordinate, reporterID *string) (*models.Incident, error) {
			require.NotNil(t, reporterID)
			assert.Equal(t, "user-42", *reporterID)
			return &models.Incident{ID: uuid.New(), ReporterID: reporterID}, nil
		}).
		Times(1)

	body := `{"acc_x": 0, "acc_y": 0, "acc_z": 0, "gyro_x": 0, "gyro_y": 0, "gyro_z": 0}`
	w := makeRequest(router, "POST", "/api/v1/accidents/sensor", bytes.NewBufferString(body),
		bearer(t, jwt.MapClaims{"sub": "user-42", "exp": time.Now().Add(time.Hour).Unix()}, testJWTSecret))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReportSensor_InvalidJWTIsAnonymous(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ReportFromSensor(gomock.Any(), gomock.Any(), gomock.Any(), (*string)(nil)).
		Return(&models.Incident{ID: uuid.New()}, nil).
		Times(1)

	body := `{"acc_x": 0, "acc_y": 0, "acc_z": 0, "gyro_x": 0, "gyro_y": 0, "gyro_z": 0}`
	w := makeRequest(router, "POST", "/api/v1/accidents/sensor", bytes.NewBufferString(body),
		bearer(t, jwt.MapClaims{"sub": "user-42"}, "wrong-secret"))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReportVoice_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	transcript := "please send ambulance, accident on highway"

	m.incidents.EXPECT().
		ReportFromVoice(gomock.Any(), transcript, models.Coordinate{Latitude: 1.5, Longitude: 2.5}, gomock.Any()).
		Return(&models.Incident{
			ID:          uuid.New(),
			Severity:    models.SeverityHigh,
			Origin:      models.OriginVoice,
			Description: "Voice detected: " + transcript,
		}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/accidents/voice", jsonBody(t, VoiceEventRequest{
		VoiceText: transcript,
		Latitude:  f(1.5),
		Longitude: f(2.5),
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	decode(t, w, &resp)
	assert.Equal(t, "voice", resp.ReportedVia)
}

func TestReportVoice_NoEmergency(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ReportFromVoice(gomock.Any(), "nice weather today", gomock.Any(), gomock.Any()).
		Return(nil, models.ErrNoEmergencyDetected).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/accidents/voice", bytes.NewBufferString(`{"voice_text": "nice weather today"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Status)
	assert.Equal(t, "No emergency detected in voice", env.Message)
}

func TestReportManual_MissingCoordinate(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportManual(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/accidents/manual", bytes.NewBufferString(`{"latitude": 17.385, "severity": "high"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Longitude")
}

func TestReportManual_WithDispatch(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()
	localID := uuid.New()

	m.incidents.EXPECT().
		ReportManual(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report models.ManualReport) (*models.ManualReportResult, error) {
			assert.Equal(t, 0.0, *report.Latitude) // нулевая координата допустима
			assert.Equal(t, models.SeverityHigh, report.Severity)
			assert.True(t, report.Dispatch.BroadcastLocal)
			assert.Equal(t, []string{"token-a"}, report.Dispatch.DeviceTokens)
			return &models.ManualReportResult{
				Incident:   &models.Incident{ID: incidentID, Severity: models.SeverityHigh, Origin: models.OriginManual},
				LocalAlert: &models.LocalAlert{ID: localID, IncidentID: &incidentID, Status: models.LocalAlertBroadcast},
				CloudAlerts: []*models.CloudAlert{
					{ID: uuid.New(), IncidentID: &incidentID, DeviceToken: "token-a", Status: models.CloudAlertSent},
				},
			}, nil
		}).
		Times(1)

	body := `{"latitude": 0, "longitude": 78.4867, "severity": "high", "description": "Severe crash detected",
		"broadcast_local": true, "device_tokens": ["token-a"]}`
	w := makeRequest(router, "POST", "/api/v1/accidents/manual", bytes.NewBufferString(body))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ManualIncidentResponse
	decode(t, w, &resp)
	assert.Equal(t, incidentID, resp.Incident.ID)
	require.NotNil(t, resp.LocalAlert)
	assert.Equal(t, localID, resp.LocalAlert.ID)
	assert.Len(t, resp.CloudAlerts, 1)
}

func TestReportManual_InvalidSeverity(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportManual(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/accidents/manual", bytes.NewBufferString(`{"latitude": 1, "longitude": 1, "severity": "apocalyptic"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncidents_RequiresAPIKey(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/accidents", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")

	w = makeRequest(router, "GET", "/api/v1/accidents", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListIncidents_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	since := testNow.Add(-6 * time.Hour)

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{
			Origin:   models.OriginVoice,
			Severity: models.SeverityHigh,
			Since:    &since,
			Limit:    20,
		}).
		Return([]*models.Incident{{ID: uuid.New()}, {ID: uuid.New()}}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/accidents?reported_via=voice&severity=high&hours=6&limit=20", nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	decode(t, w, &resp)
	assert.Len(t, resp, 2)
}

func TestListIncidents_InvalidHours(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/accidents?hours=-1", nil, apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// иначе time.Duration переполняется и окно уезжает в будущее
	w = makeRequest(router, "GET", "/api/v1/accidents?hours=9999999999", nil, apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "hours must not exceed 876000")
}

func TestListIncidents_MaxHours(t *testing.T) {
	_, m, router := newTestHandler(t)
	since := testNow.Add(-876000 * time.Hour)

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{Since: &since, Limit: 100}).
		Return([]*models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/accidents?hours=876000", nil, apiKeyAuth)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListLocalAlerts_HoursOverflow(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.localAlerts.EXPECT().ListAlerts(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/local-alerts?hours=9999999999", nil, apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncidents_InvalidLimit(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/accidents?limit=abc", nil, apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "limit must be an integer", env.Error)
}

func TestListIncidents_InvalidFilterFromService(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: unknown origin \"radio\"", models.ErrInvalidInput)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/accidents?reported_via=radio", nil, apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "radio")
}

func TestGetIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()

	m.incidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(&models.Incident{ID: incidentID, Severity: models.SeverityLow}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/accidents/"+incidentID.String(), nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	decode(t, w, &resp)
	assert.Equal(t, incidentID, resp.ID)
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/accidents/not-a-uuid", nil, apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestGetIncident_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()

	m.incidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("service: could not get incident: %w", models.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/accidents/"+incidentID.String(), nil, apiKeyAuth)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestGetIncident_PersistenceErrorIsHidden(t *testing.T) {
	_, m, router := newTestHandler(t)
	incidentID := uuid.New()

	m.incidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("%w: connection refused to 10.0.0.5", models.ErrPersistence)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/accidents/"+incidentID.String(), nil, apiKeyAuth)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestBroadcastLocalAlert_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()

	m.localAlerts.EXPECT().
		Broadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.LocalAlert) error {
			assert.Equal(t, "Crash detected", alert.Message)
			assert.Equal(t, 30, alert.DurationSeconds)
			alert.ID = alertID
			alert.Severity = models.SeverityUnknown
			alert.Status = models.LocalAlertBroadcast
			return nil
		}).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/local-alerts", bytes.NewBufferString(`{"message": "Crash detected", "duration_seconds": 30}`), apiKeyAuth)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp LocalAlertResponse
	decode(t, w, &resp)
	assert.Equal(t, alertID, resp.ID)
	assert.Equal(t, "broadcast", resp.Status)
}

func TestBroadcastLocalAlert_InvalidDuration(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.localAlerts.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/local-alerts", bytes.NewBufferString(`{"duration_seconds": -1}`), apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// больше int4 в бд, должно отсекаться до сохранения
	w = makeRequest(router, "POST", "/api/v1/local-alerts", bytes.NewBufferString(`{"duration_seconds": 3000000000}`), apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DurationSeconds")
}

func TestReportManual_DurationTooLong(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().ReportManual(gomock.Any(), gomock.Any()).Times(0)

	body := `{"latitude": 17.385, "longitude": 78.4867, "broadcast_local": true, "duration_seconds": 86401}`
	w := makeRequest(router, "POST", "/api/v1/accidents/manual", bytes.NewBufferString(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DurationSeconds")
}

func TestListLocalAlerts_DefaultWindow(t *testing.T) {
	_, m, router := newTestHandler(t)
	since := testNow.Add(-24 * time.Hour)
	alerts := []*models.LocalAlert{
		{ID: uuid.New(), Severity: models.SeverityHigh, Status: models.LocalAlertExpired},
	}

	m.localAlerts.EXPECT().
		ListAlerts(gomock.Any(), models.LocalAlertFilter{Severity: models.SeverityHigh, Since: &since}).
		Return(&models.LocalAlertList{Alerts: alerts, Counts: models.CountLocalAlerts(alerts)}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/local-alerts?severity=high", nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LocalAlertListResponse
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 1, resp.Statistics.ByStatus[models.LocalAlertExpired])
	assert.Equal(t, "expired", resp.Alerts[0].Status)
}

func TestListLocalAlerts_NoWindow(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.localAlerts.EXPECT().
		ListAlerts(gomock.Any(), models.LocalAlertFilter{Status: models.LocalAlertReceived}).
		Return(&models.LocalAlertList{Counts: models.CountLocalAlerts(nil)}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/local-alerts?status=received&hours=0", nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetLocalAlert_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()

	m.localAlerts.EXPECT().GetAlert(gomock.Any(), alertID).Return(nil, models.ErrNotFound).Times(1)

	w := makeRequest(router, "GET", "/api/v1/local-alerts/"+alertID.String(), nil, apiKeyAuth)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "local alert not found")
}

func TestUpdateLocalAlertStatus_Received(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()

	m.localAlerts.EXPECT().
		UpdateStatus(gomock.Any(), alertID, models.LocalAlertReceived).
		Return(&models.LocalAlert{ID: alertID, Status: models.LocalAlertReceived}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/local-alerts/"+alertID.String()+"/status", bytes.NewBufferString(`{"status": "received"}`), apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LocalAlertResponse
	decode(t, w, &resp)
	assert.Equal(t, "received", resp.Status)
}

func TestUpdateLocalAlertStatus_Conflict(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()

	m.localAlerts.EXPECT().
		UpdateStatus(gomock.Any(), alertID, models.LocalAlertExpired).
		Return(nil, fmt.Errorf("service: could not update local alert status: %w", models.ErrInvalidTransition)).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/local-alerts/"+alertID.String()+"/status", bytes.NewBufferString(`{"status": "expired"}`), apiKeyAuth)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateLocalAlertStatus_BackToBroadcastIsInvalid(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.localAlerts.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/local-alerts/"+uuid.NewString()+"/status", bytes.NewBufferString(`{"status": "broadcast"}`), apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendCloudAlert_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()

	m.cloudAlerts.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.CloudAlert) error {
			assert.Equal(t, "device-1", alert.DeviceToken)
			assert.Equal(t, "Crash nearby", alert.Body) // message - синоним body
			assert.Equal(t, "abc", alert.Payload["incident_ref"])
			alert.ID = alertID
			alert.Status = models.CloudAlertSent
			return nil
		}).
		Times(1)

	body := `{"device_token": "device-1", "message": "Crash nearby", "is_emergency": true, "data": {"incident_ref": "abc"}}`
	w := makeRequest(router, "POST", "/api/v1/cloud-alerts", bytes.NewBufferString(body), apiKeyAuth)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp CloudAlertResponse
	decode(t, w, &resp)
	assert.Equal(t, alertID, resp.ID)
	assert.Equal(t, "sent", resp.Status)
	assert.Nil(t, resp.FailureReason)
}

func TestSendCloudAlert_MissingDeviceToken(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.cloudAlerts.EXPECT().Send(gomock.Any(), gomock.Any()).Return(models.ErrMissingDeviceToken).Times(1)

	w := makeRequest(router, "POST", "/api/v1/cloud-alerts", bytes.NewBufferString(`{"title": "Hi"}`), apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "device_token")
}

func TestListCloudAlerts_EmergencyFilter(t *testing.T) {
	_, m, router := newTestHandler(t)
	isEmergency := true

	m.cloudAlerts.EXPECT().
		ListAlerts(gomock.Any(), models.CloudAlertFilter{Status: models.CloudAlertFailed, IsEmergency: &isEmergency}).
		Return(&models.CloudAlertList{Counts: models.CountCloudAlerts(nil)}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/cloud-alerts?status=failed&is_emergency=true&hours=0", nil, apiKeyAuth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, "GET", "/api/v1/cloud-alerts?is_emergency=maybe", nil, apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCloudAlert_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()
	reason := "EndpointDisabled"

	m.cloudAlerts.EXPECT().
		GetAlert(gomock.Any(), alertID).
		Return(&models.CloudAlert{ID: alertID, Status: models.CloudAlertFailed, FailureReason: &reason}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/cloud-alerts/"+alertID.String(), nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp CloudAlertResponse
	decode(t, w, &resp)
	require.NotNil(t, resp.FailureReason)
	assert.Equal(t, reason, *resp.FailureReason)
}

func signed(body string, secret string) map[string]string {
	return map[string]string{push.SignatureHeader: push.Sign([]byte(body), secret)}
}

func TestUpdateCloudAlertStatus_SignedCallback(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()
	body := `{"status": "delivered"}`

	m.cloudAlerts.EXPECT().
		UpdateStatus(gomock.Any(), alertID, models.CloudAlertDelivered, (*string)(nil)).
		Return(&models.CloudAlert{ID: alertID, Status: models.CloudAlertDelivered}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/cloud-alerts/"+alertID.String()+"/status", bytes.NewBufferString(body), signed(body, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCloudAlertStatus_BadSignature(t *testing.T) {
	_, m, router := newTestHandler(t)
	body := `{"status": "delivered"}`

	m.cloudAlerts.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	url := "/api/v1/cloud-alerts/" + uuid.NewString() + "/status"
	w := makeRequest(router, "POST", url, bytes.NewBufferString(body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "POST", url, bytes.NewBufferString(body), signed(body, "other-secret"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// API-ключ не заменяет подпись
	w = makeRequest(router, "POST", url, bytes.NewBufferString(body), apiKeyAuth)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateCloudAlertStatus_FailedWithoutReason(t *testing.T) {
	_, m, router := newTestHandler(t)
	alertID := uuid.New()
	body := `{"status": "failed"}`

	m.cloudAlerts.EXPECT().
		UpdateStatus(gomock.Any(), alertID, models.CloudAlertFailed, (*string)(nil)).
		Return(nil, fmt.Errorf("%w: failure_reason is required for status failed", models.ErrInvalidInput)).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/cloud-alerts/"+alertID.String()+"/status", bytes.NewBufferString(body), signed(body, testWebhookSecret))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failure_reason")
}

func TestGetStatistics(t *testing.T) {
	_, m, router := newTestHandler(t)
	summary := &models.AlertSummary{
		Local: models.LocalAlertStats{
			WindowCounts: models.WindowCounts{Total: 3, Today: 1, Last24h: 2, Last7d: 3},
			BySeverity:   map[models.Severity]int{models.SeverityHigh: 3},
		},
		Cloud: models.CloudAlertStats{
			WindowCounts:   models.WindowCounts{Total: 2},
			EmergencyCount: 1,
			ByStatus:       map[models.CloudAlertStatus]int{models.CloudAlertSent: 2},
		},
		GrandTotal:  5,
		GeneratedAt: testNow,
	}

	m.stats.EXPECT().Summary(gomock.Any()).Return(summary, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/alerts/statistics", nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	decode(t, w, &resp)
	assert.EqualValues(t, 5, resp["grand_total"])
	local := resp["local"].(map[string]any)
	assert.EqualValues(t, 2, local["last_24h"])
	cloud := resp["cloud"].(map[string]any)
	assert.EqualValues(t, 1, cloud["emergency_count"])
}
