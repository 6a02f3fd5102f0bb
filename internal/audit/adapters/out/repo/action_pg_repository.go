package repo

import (
	"context"
	"fmt"

	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActionPgRepository — Postgres реализация ActionRepository
type ActionPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewActionPgRepository создает репозиторий журнала действий
func NewActionPgRepository(pool *pgxpool.Pool, log *logger.Logger) *ActionPgRepository {
	return &ActionPgRepository{pool: pool, log: log}
}

// Insert — повторная доставка того же события ничего не меняет
func (r *ActionPgRepository) Insert(ctx context.Context, a *domain.Action) (bool, error) {
	query := `
		INSERT INTO admin_actions
			(id, actor_id, actor_email, action, resource, resource_id, value, request_id, occurred_at, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.ActorID,
		a.ActorEmail,
		a.Action,
		a.Resource,
		a.ResourceID,
		a.Value,
		a.RequestID,
		a.OccurredAt,
		a.RecordedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert admin action: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List — окно журнала по occurred_at, новые сверху
func (r *ActionPgRepository) List(ctx context.Context, page domain.Page) ([]domain.Action, error) {
	query := `
		SELECT id, actor_id, actor_email, action, resource, resource_id, value, request_id, occurred_at, recorded_at
		FROM admin_actions
		ORDER BY occurred_at DESC, recorded_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("query admin actions: %w", err)
	}

	actions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Action, error) {
		var a domain.Action
		err := row.Scan(
			&a.ID,
			&a.ActorID,
			&a.ActorEmail,
			&a.Action,
			&a.Resource,
			&a.ResourceID,
			&a.Value,
			&a.RequestID,
			&a.OccurredAt,
			&a.RecordedAt,
		)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan admin actions: %w", err)
	}

	r.log.WithContext(ctx).Debug(logger.Entry{
		Action:  "admin_actions_listed",
		Message: fmt.Sprintf("%d rows", len(actions)),
		Additional: map[string]any{
			"limit":  page.Limit,
			"offset": page.Offset,
		},
	})
	return actions, nil
}
