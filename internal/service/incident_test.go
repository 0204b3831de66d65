package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/classifier"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/service/mocks"
	"github.com/shenikar/accident_alert_system/internal/voice"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type incidentDeps struct {
	repo  *mocks.MockIncidentRepository
	local *mocks.MockLocalAlertService
	cloud *mocks.MockCloudAlertService
}

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, incidentDeps) {
	ctrl := gomock.NewController(t)
	deps := incidentDeps{
		repo:  mocks.NewMockIncidentRepository(ctrl),
		local: mocks.NewMockLocalAlertService(ctrl),
		cloud: mocks.NewMockCloudAlertService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	model, err := classifier.Default()
	require.NoError(t, err)

	service := NewIncidentService(deps.repo, model, voice.NewDetector(voice.DefaultVocabulary), deps.local, deps.cloud, logger)
	return service.(*incidentService), deps
}

// persisted имитирует бд: присваивает ID и время создания
func persisted(_ context.Context, inc *models.Incident) error {
	inc.ID = uuid.New()
	inc.CreatedAt = time.Now()
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestReportFromSensor_CollisionIsHigh(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	sample := models.SensorSample{AccX: 20, AccY: 21, AccZ: 19, GyroX: 180, GyroY: 190, GyroZ: 170}

	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(persisted).Times(1)

	incident, err := service.ReportFromSensor(ctx, sample, models.Coordinate{Latitude: 17.385, Longitude: 78.4867}, nil)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, incident.ID)
	assert.Equal(t, models.SeverityHigh, incident.Severity)
	assert.Equal(t, models.OriginSensor, incident.Origin)
	assert.Equal(t, 17.385, incident.Latitude)
	assert.Nil(t, incident.ReporterID)
	assert.Equal(t, "Sensor data detected accident: acc_x=20, acc_y=21, acc_z=19, gyro_x=180, gyro_y=190, gyro_z=170", incident.Description)
}

func TestReportFromSensor_NormalDrivingIsLow(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(persisted).Times(1)

	incident, err := service.ReportFromSensor(ctx, models.SensorSample{AccX: 0.3, AccZ: -1.1, GyroY: 4}, models.Coordinate{}, ptr("user-7"))

	require.NoError(t, err)
	assert.Equal(t, models.SeverityLow, incident.Severity)
	assert.Equal(t, "user-7", *incident.ReporterID)
}

func TestReportFromSensor_PersistenceError(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	dbErr := fmt.Errorf("%w: connection refused", models.ErrPersistence)

	deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(dbErr).Times(1)

	incident, err := service.ReportFromSensor(ctx, models.SensorSample{}, models.Coordinate{}, nil)

	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.ErrorContains(t, err, "could not create incident")
}

func TestReportFromVoice_EmergencyDetected(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	transcript := "please send ambulance, accident on highway"

	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(persisted).Times(1)

	incident, err := service.ReportFromVoice(ctx, transcript, models.Coordinate{Latitude: 1, Longitude: 2}, nil)

	require.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, incident.Severity)
	assert.Equal(t, models.OriginVoice, incident.Origin)
	assert.Equal(t, "Voice detected: "+transcript, incident.Description)
}

func TestReportFromVoice_NoEmergency(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0) // Инцидент не должен создаваться

	incident, err := service.ReportFromVoice(ctx, "nice weather today", models.Coordinate{}, nil)

	assert.Nil(t, incident)
	assert.ErrorIs(t, err, models.ErrNoEmergencyDetected)
}

func TestReportManual_MissingCoordinate(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	for _, report := range []models.ManualReport{
		{},
		{Latitude: ptr(10.0)},
		{Longitude: ptr(10.0)},
	} {
		result, err := service.ReportManual(ctx, report)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}
}

func TestReportManual_Defaults(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(persisted).Times(1)

	result, err := service.ReportManual(ctx, models.ManualReport{Latitude: ptr(0.0), Longitude: ptr(0.0)})

	require.NoError(t, err)
	assert.Equal(t, models.SeverityMedium, result.Incident.Severity)
	assert.Equal(t, models.OriginManual, result.Incident.Origin)
	assert.Equal(t, "Emergency Alert Triggered", result.Incident.Description)
	assert.Nil(t, result.LocalAlert)
	assert.Empty(t, result.CloudAlerts)
}

func TestReportManual_InvalidSeverity(t *testing.T) {
	service, deps := newTestIncidentService(t)

	deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.ReportManual(context.Background(), models.ManualReport{
		Latitude:  ptr(1.0),
		Longitude: ptr(1.0),
		Severity:  "catastrophic",
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestReportManual_DispatchesBothChannels(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	var incidentID uuid.UUID
	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
		err := persisted(ctx, inc)
		incidentID = inc.ID
		return err
	}).Times(1)

	deps.local.EXPECT().Broadcast(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, alert *models.LocalAlert) error {
		require.NotNil(t, alert.IncidentID)
		assert.Equal(t, incidentID, *alert.IncidentID)
		assert.Equal(t, models.SeverityHigh, alert.Severity)
		assert.Equal(t, "Severe crash detected", alert.Message)
		assert.Equal(t, 60, alert.DurationSeconds)
		assert.Equal(t, 17.385, *alert.Latitude)
		alert.ID = uuid.New()
		alert.Status = models.LocalAlertBroadcast
		return nil
	}).Times(1)

	deps.cloud.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, alert *models.CloudAlert) error {
		assert.True(t, alert.IsEmergency)
		assert.Equal(t, incidentID.String(), alert.Payload["incident_id"])
		alert.ID = uuid.New()
		alert.Status = models.CloudAlertSent
		return nil
	}).Times(2)

	result, err := service.ReportManual(ctx, models.ManualReport{
		Latitude:    ptr(17.385),
		Longitude:   ptr(78.4867),
		Severity:    models.SeverityHigh,
		Description: "Severe crash detected",
		Dispatch: models.DispatchOptions{
			BroadcastLocal:  true,
			DurationSeconds: 60,
			DeviceTokens:    []string{"token-a", "token-b"},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.LocalAlert)
	assert.Equal(t, models.LocalAlertBroadcast, result.LocalAlert.Status)
	assert.Len(t, result.CloudAlerts, 2)
}

func TestReportManual_DispatchFailureKeepsIncident(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(persisted).Times(1)
	deps.local.EXPECT().Broadcast(ctx, gomock.Any()).Return(errors.New("db down")).Times(1)
	deps.cloud.EXPECT().Send(ctx, gomock.Any()).Return(models.ErrMissingDeviceToken).Times(1)

	result, err := service.ReportManual(ctx, models.ManualReport{
		Latitude:  ptr(1.0),
		Longitude: ptr(2.0),
		Origin:    models.OriginVoice,
		Dispatch:  models.DispatchOptions{BroadcastLocal: true, DeviceTokens: []string{" "}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.OriginVoice, result.Incident.Origin)
	assert.Nil(t, result.LocalAlert)
	assert.Empty(t, result.CloudAlerts)
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Severity: models.SeverityHigh}

	// Ожидания
	deps.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(expectedIncident, nil).Times(1)
	deps.repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := service.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Severity: models.SeverityLow}

	// 1. Промах кеша
	deps.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil).Times(1)
	// 2. Попадание в БД
	deps.repo.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil).Times(1)
	// 3. Запись в кеш
	deps.repo.EXPECT().SetIncidentCache(ctx, expectedIncident).Return(nil).Times(1)

	incident, err := service.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_CacheErrorFallsBackToDB(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID}

	deps.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, errors.New("redis: connection refused")).Times(1)
	deps.repo.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil).Times(1)
	deps.repo.EXPECT().SetIncidentCache(ctx, expectedIncident).Return(errors.New("redis: connection refused")).Times(1)

	incident, err := service.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	deps.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil).Times(1)
	deps.repo.EXPECT().GetByID(ctx, incidentID).Return(nil, fmt.Errorf("incident %s: %w", incidentID, models.ErrNotFound)).Times(1)

	incident, err := service.GetIncident(ctx, incidentID)

	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, "could not get incident")
}

func TestListIncidents_DefaultLimit(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	expected := []*models.Incident{{ID: uuid.New()}, {ID: uuid.New()}}

	deps.repo.EXPECT().
		List(ctx, models.IncidentFilter{Origin: models.OriginVoice, Limit: 100}).
		Return(expected, nil).
		Times(1)

	incidents, err := service.ListIncidents(ctx, models.IncidentFilter{Origin: models.OriginVoice})

	require.NoError(t, err)
	assert.Equal(t, expected, incidents)
}

func TestListIncidents_InvalidFilter(t *testing.T) {
	service, deps := newTestIncidentService(t)

	deps.repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.ListIncidents(context.Background(), models.IncidentFilter{Origin: "radio"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
