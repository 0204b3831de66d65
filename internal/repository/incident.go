package repository

import (
	"context"
	"encoding/json"
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

const incidentColumns = `id, reporter_id, latitude, longitude, severity, description, origin, created_at`

type IncidentRepository struct {
	db          DB
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db DB, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (reporter_id, latitude, longitude, severity, description, origin)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.ReporterID,
		incident.Latitude,
		incident.Longitude,
		incident.Severity,
		incident.Description,
		incident.Origin,
	).Scan(&incident.ID, &incident.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to create incident: %w", models.ErrPersistence, err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to get incident by id: %w", models.ErrPersistence, err)
	}
	return incident, nil
}

// List возвращает инциденты по фильтру, новые первыми
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	query, args := buildIncidentListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list incidents: %w", models.ErrPersistence, err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan incident row: %w", models.ErrPersistence, err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error list iteration: %w", models.ErrPersistence, err)
	}
	return incidents, nil
}

func buildIncidentListQuery(filter models.IncidentFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		conditions = append(conditions, fmt.Sprintf("origin = $%d", len(args)))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + incidentColumns + ` FROM incidents`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d;", len(args))
	return sb.String(), args
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.ReporterID,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Severity,
		&incident.Description,
		&incident.Origin,
		&incident.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

func incidentCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

// GetIncidentFromCache пытается получить инцидент из Redis.
// Промах кеша - это (nil, nil).
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}
