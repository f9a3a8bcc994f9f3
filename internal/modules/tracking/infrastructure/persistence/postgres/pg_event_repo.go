package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/domain"
)

type PgEventRepository struct {
	db *sqlx.DB
}

func NewPgEventRepository(db *sqlx.DB) *PgEventRepository {
	return &PgEventRepository{db: db}
}

func (r *PgEventRepository) Insert(ctx context.Context, event *domain.SiteEvent) error {
	query := `
		INSERT INTO site_events (id, event, label, client_id, created_at)
		VALUES (:id, :event, :label, :client_id, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, event)
	return err
}

func (r *PgEventRepository) CountsByEvent(ctx context.Context, days int) ([]domain.EventCount, error) {
	query := `
		SELECT event, COUNT(*) as count FROM site_events
		WHERE created_at >= NOW() - ($1 || ' days')::interval
		GROUP BY event
		ORDER BY count DESC
	`
	var counts []domain.EventCount
	err := r.db.SelectContext(ctx, &counts, query, days)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *PgEventRepository) CountsByDay(ctx context.Context, days int) ([]domain.DailyEventCount, error) {
	query := `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') as date, event, COUNT(*) as count
		FROM site_events
		WHERE created_at >= NOW() - ($1 || ' days')::interval
		GROUP BY created_at::date, event
		ORDER BY created_at::date DESC
	`
	var counts []domain.DailyEventCount
	err := r.db.SelectContext(ctx, &counts, query, days)
	if err != nil {
		return nil, err
	}
	return counts, nil
}
