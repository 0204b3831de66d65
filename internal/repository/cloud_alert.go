package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/service"
)

const cloudAlertColumns = `id, incident_id, device_token, title, body, payload, is_emergency, status, failure_reason, created_at`

type CloudAlertRepository struct {
	db          DB
	redisClient *redis.Client
}

func NewCloudAlertRepository(db DB, redisClient *redis.Client) service.CloudAlertRepository {
	return &CloudAlertRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create сохраняет уведомление, payload хранится как JSONB
func (r *CloudAlertRepository) Create(ctx context.Context, alert *models.CloudAlert) error {
	query := `
		INSERT INTO cloud_alerts (incident_id, device_token, title, body, payload, is_emergency, status, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		alert.IncidentID,
		alert.DeviceToken,
		alert.Title,
		alert.Body,
		alert.Payload,
		alert.IsEmergency,
		alert.Status,
		alert.FailureReason,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to create cloud alert: %w", models.ErrPersistence, err)
	}
	return nil
}

func (r *CloudAlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CloudAlert, error) {
	query := `SELECT ` + cloudAlertColumns + ` FROM cloud_alerts WHERE id = $1;`

	alert, err := scanCloudAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cloud alert with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get cloud alert by id: %w", models.ErrPersistence, err)
	}
	return alert, nil
}

func (r *CloudAlertRepository) List(ctx context.Context, filter models.CloudAlertFilter) ([]*models.CloudAlert, error) {
	query, args := buildCloudAlertListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list cloud alerts: %w", models.ErrPersistence, err)
	}
	defer rows.Close()

	alerts := make([]*models.CloudAlert, 0)
	for rows.Next() {
		alert, err := scanCloudAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan cloud alert row: %w", models.ErrPersistence, err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error list iteration: %w", models.ErrPersistence, err)
	}
	return alerts, nil
}

func buildCloudAlertListQuery(filter models.CloudAlertFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.IsEmergency != nil {
		args = append(args, *filter.IsEmergency)
		conditions = append(conditions, fmt.Sprintf("is_emergency = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + cloudAlertColumns + ` FROM cloud_alerts`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC;")
	return sb.String(), args
}

// UpdateStatus атомарно меняет статус и причину отказа, только если текущий статус входит в from
func (r *CloudAlertRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CloudAlertStatus, reason *string, from []models.CloudAlertStatus) (*models.CloudAlert, error) {
	query := `
		UPDATE cloud_alerts SET status = $2, failure_reason = $3
		WHERE id = $1 AND status = ANY($4)
		RETURNING ` + cloudAlertColumns + `;
	`
	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}

	alert, err := scanCloudAlert(r.db.QueryRow(ctx, query, id, status, reason, sources))
	if err == nil {
		return alert, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: failed to update cloud alert status: %w", models.ErrPersistence, err)
	}

	var current models.CloudAlertStatus
	err = r.db.QueryRow(ctx, `SELECT status FROM cloud_alerts WHERE id = $1;`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cloud alert with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to read cloud alert status: %w", models.ErrPersistence, err)
	}
	return nil, fmt.Errorf("cloud alert %s is %s, cannot become %s: %w", id, current, status, models.ErrInvalidTransition)
}

func (r *CloudAlertRepository) InvalidateSummaryCache(ctx context.Context) error {
	return invalidateSummary(ctx, r.redisClient)
}

func scanCloudAlert(row pgx.Row) (*models.CloudAlert, error) {
	alert := &models.CloudAlert{}
	err := row.Scan(
		&alert.ID,
		&alert.IncidentID,
		&alert.DeviceToken,
		&alert.Title,
		&alert.Body,
		&alert.Payload,
		&alert.IsEmergency,
		&alert.Status,
		&alert.FailureReason,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return alert, nil
}
