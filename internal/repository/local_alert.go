package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/service"
)

const localAlertColumns = `id, incident_id, message, latitude, longitude, severity, location_name, duration_seconds, status, created_at`

// effectiveStatusSQL - статус с учетом ленивого истечения, %s - номер параметра с текущим временем
const effectiveStatusSQL = `(CASE WHEN status = 'broadcast' AND created_at + duration_seconds * INTERVAL '1 second' <= %s THEN 'expired' ELSE status END)`

func effectiveStatusAt(param int) string {
	return fmt.Sprintf(effectiveStatusSQL, fmt.Sprintf("$%d", param))
}

type LocalAlertRepository struct {
	db          DB
	redisClient *redis.Client
}

func NewLocalAlertRepository(db DB, redisClient *redis.Client) service.LocalAlertRepository {
	return &LocalAlertRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create сохраняет оповещение, ID и время создания назначает бд
func (r *LocalAlertRepository) Create(ctx context.Context, alert *models.LocalAlert) error {
	query := `
		INSERT INTO local_alerts (incident_id, message, latitude, longitude, severity, location_name, duration_seconds, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		alert.IncidentID,
		alert.Message,
		alert.Latitude,
		alert.Longitude,
		alert.Severity,
		alert.LocationName,
		alert.DurationSeconds,
		alert.Status,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to create local alert: %w", models.ErrPersistence, err)
	}
	return nil
}

// GetByID возвращает сохраненную запись. Ленивое истечение применяет сервис.
func (r *LocalAlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LocalAlert, error) {
	query := `SELECT ` + localAlertColumns + ` FROM local_alerts WHERE id = $1;`

	alert, err := scanLocalAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("local alert with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get local alert by id: %w", models.ErrPersistence, err)
	}
	return alert, nil
}

// List возвращает оповещения с уже вычисленным статусом, новые первыми
func (r *LocalAlertRepository) List(ctx context.Context, filter models.LocalAlertFilter, now time.Time) ([]*models.LocalAlert, error) {
	query, args := buildLocalAlertListQuery(filter, now)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list local alerts: %w", models.ErrPersistence, err)
	}
	defer rows.Close()

	alerts := make([]*models.LocalAlert, 0)
	for rows.Next() {
		alert, err := scanLocalAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan local alert row: %w", models.ErrPersistence, err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error list iteration: %w", models.ErrPersistence, err)
	}
	return alerts, nil
}

func buildLocalAlertListQuery(filter models.LocalAlertFilter, now time.Time) (string, []any) {
	args := []any{now}
	effective := effectiveStatusAt(1)

	var conditions []string
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", effective, len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	columns := strings.Replace(localAlertColumns, "status", effective+" AS status", 1)
	var sb strings.Builder
	sb.WriteString("SELECT " + columns + " FROM local_alerts")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC;")
	return sb.String(), args
}

// UpdateStatus атомарно меняет статус, только если текущий (с учетом истечения) входит в from.
// Если строка не обновилась, различает отсутствие записи и недопустимый переход.
func (r *LocalAlertRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.LocalAlertStatus, from []models.LocalAlertStatus, now time.Time) (*models.LocalAlert, error) {
	query := `
		UPDATE local_alerts SET status = $2
		WHERE id = $1 AND ` + effectiveStatusAt(4) + ` = ANY($3)
		RETURNING ` + localAlertColumns + `;
	`
	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}

	alert, err := scanLocalAlert(r.db.QueryRow(ctx, query, id, status, sources, now))
	if err == nil {
		return alert, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: failed to update local alert status: %w", models.ErrPersistence, err)
	}

	var current models.LocalAlertStatus
	err = r.db.QueryRow(ctx, `SELECT `+effectiveStatusAt(2)+` FROM local_alerts WHERE id = $1;`, id, now).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("local alert with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to read local alert status: %w", models.ErrPersistence, err)
	}
	return nil, fmt.Errorf("local alert %s is %s, cannot become %s: %w", id, current, status, models.ErrInvalidTransition)
}

func (r *LocalAlertRepository) InvalidateSummaryCache(ctx context.Context) error {
	return invalidateSummary(ctx, r.redisClient)
}

func scanLocalAlert(row pgx.Row) (*models.LocalAlert, error) {
	alert := &models.LocalAlert{}
	err := row.Scan(
		&alert.ID,
		&alert.IncidentID,
		&alert.Message,
		&alert.Latitude,
		&alert.Longitude,
		&alert.Severity,
		&alert.LocationName,
		&alert.DurationSeconds,
		&alert.Status,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return alert, nil
}
