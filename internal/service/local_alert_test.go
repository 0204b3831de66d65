package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	broadcastmocks "github.com/shenikar/accident_alert_system/internal/broadcast/mocks"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestLocalAlertService(t *testing.T) (*localAlertService, *mocks.MockLocalAlertRepository, *broadcastmocks.MockEmitter) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLocalAlertRepository(ctrl)
	emitter := broadcastmocks.NewMockEmitter(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	service := NewLocalAlertService(repo, emitter, logger).(*localAlertService)
	service.now = func() time.Time { return fixedNow }
	return service, repo, emitter
}

func TestBroadcast_Defaults(t *testing.T) {
	service, repo, emitter := newTestLocalAlertService(t)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, alert *models.LocalAlert) error {
			alert.ID = uuid.New()
			alert.CreatedAt = fixedNow
			return nil
		}),
		repo.EXPECT().InvalidateSummaryCache(ctx).Return(nil),
		emitter.EXPECT().Emit(ctx, gomock.Any()).Return(nil),
	)

	alert := &models.LocalAlert{}
	err := service.Broadcast(ctx, alert)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultLocalAlertMessage, alert.Message)
	assert.Equal(t, models.SeverityUnknown, alert.Severity)
	assert.Equal(t, models.DefaultBroadcastDuration, alert.DurationSeconds)
	assert.Equal(t, models.LocalAlertBroadcast, alert.Status)
}

func TestBroadcast_EmitFailureKeepsRecord(t *testing.T) {
	service, repo, emitter := newTestLocalAlertService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	repo.EXPECT().InvalidateSummaryCache(ctx).Return(errors.New("redis down")).Times(1)
	emitter.EXPECT().Emit(ctx, gomock.Any()).Return(fmt.Errorf("%w: broker unreachable", models.ErrTransport)).Times(1)

	alert := &models.LocalAlert{Message: "Crash at junction", Severity: models.SeverityHigh, DurationSeconds: 120}
	err := service.Broadcast(ctx, alert)

	require.NoError(t, err)
	assert.Equal(t, models.LocalAlertBroadcast, alert.Status)
	assert.Equal(t, 120, alert.DurationSeconds)
}

func TestBroadcast_InvalidInput(t *testing.T) {
	service, repo, emitter := newTestLocalAlertService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Times(0)

	err := service.Broadcast(context.Background(), &models.LocalAlert{DurationSeconds: -5})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = service.Broadcast(context.Background(), &models.LocalAlert{Severity: "extreme"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = service.Broadcast(context.Background(), &models.LocalAlert{DurationSeconds: 3000000000})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.ErrorContains(t, err, "must not exceed 86400")
}

func TestBroadcast_MaxDuration(t *testing.T) {
	service, repo, emitter := newTestLocalAlertService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repo.EXPECT().InvalidateSummaryCache(gomock.Any()).Return(nil).Times(1)
	emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	alert := &models.LocalAlert{DurationSeconds: models.MaxBroadcastDuration}
	require.NoError(t, service.Broadcast(context.Background(), alert))
	assert.Equal(t, models.MaxBroadcastDuration, alert.DurationSeconds)
}

func TestBroadcast_RepositoryError(t *testing.T) {
	service, repo, emitter := newTestLocalAlertService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).Return(fmt.Errorf("%w: timeout", models.ErrPersistence)).Times(1)
	emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Times(0)

	err := service.Broadcast(ctx, &models.LocalAlert{})
	assert.ErrorIs(t, err, models.ErrPersistence)
}

func TestGetLocalAlert_LazyExpiry(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().GetByID(ctx, id).Return(&models.LocalAlert{
		ID:              id,
		DurationSeconds: 30,
		Status:          models.LocalAlertBroadcast,
		CreatedAt:       fixedNow.Add(-31 * time.Second),
	}, nil).Times(1)

	alert, err := service.GetAlert(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, models.LocalAlertExpired, alert.Status)
}

func TestGetLocalAlert_StillActive(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().GetByID(ctx, id).Return(&models.LocalAlert{
		ID:              id,
		DurationSeconds: 30,
		Status:          models.LocalAlertBroadcast,
		CreatedAt:       fixedNow.Add(-10 * time.Second),
	}, nil).Times(1)

	alert, err := service.GetAlert(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, models.LocalAlertBroadcast, alert.Status)
}

func TestGetLocalAlert_NotFound(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)
	id := uuid.New()

	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, models.ErrNotFound).Times(1)

	_, err := service.GetAlert(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListLocalAlerts_Counts(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)
	ctx := context.Background()
	filter := models.LocalAlertFilter{Severity: models.SeverityHigh}

	repo.EXPECT().List(ctx, filter, fixedNow).Return([]*models.LocalAlert{
		{Severity: models.SeverityHigh, Status: models.LocalAlertBroadcast},
		{Severity: models.SeverityHigh, Status: models.LocalAlertReceived},
	}, nil).Times(1)

	list, err := service.ListAlerts(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, list.Alerts, 2)
	assert.Equal(t, 2, list.Counts.Total)
	assert.Equal(t, 2, list.Counts.BySeverity[models.SeverityHigh])
	assert.Equal(t, 0, list.Counts.BySeverity[models.SeverityLow])
	assert.Equal(t, 1, list.Counts.ByStatus[models.LocalAlertReceived])
}

func TestListLocalAlerts_InvalidFilter(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)

	repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.ListAlerts(context.Background(), models.LocalAlertFilter{Status: "pending"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateLocalAlertStatus_Received(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)
	ctx := context.Background()
	id := uuid.New()
	updated := &models.LocalAlert{ID: id, Status: models.LocalAlertReceived}

	repo.EXPECT().
		UpdateStatus(ctx, id, models.LocalAlertReceived, []models.LocalAlertStatus{models.LocalAlertBroadcast}, fixedNow).
		Return(updated, nil).
		Times(1)
	repo.EXPECT().InvalidateSummaryCache(ctx).Return(nil).Times(1)

	alert, err := service.UpdateStatus(ctx, id, models.LocalAlertReceived)

	require.NoError(t, err)
	assert.Equal(t, models.LocalAlertReceived, alert.Status)
}

func TestUpdateLocalAlertStatus_ExpiredAfterReceivedRejected(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.EXPECT().
		UpdateStatus(ctx, id, models.LocalAlertExpired, []models.LocalAlertStatus{models.LocalAlertBroadcast}, fixedNow).
		Return(nil, fmt.Errorf("local alert %s is received: %w", id, models.ErrInvalidTransition)).
		Times(1)
	repo.EXPECT().InvalidateSummaryCache(gomock.Any()).Times(0)

	alert, err := service.UpdateStatus(ctx, id, models.LocalAlertExpired)

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestUpdateLocalAlertStatus_BackToBroadcastRejected(t *testing.T) {
	service, repo, _ := newTestLocalAlertService(t)

	repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.UpdateStatus(context.Background(), uuid.New(), models.LocalAlertBroadcast)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = service.UpdateStatus(context.Background(), uuid.New(), "acknowledged")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
