package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	"github.com/crateworks/debt_ledger_app/internal/models"
	"github.com/crateworks/debt_ledger_app/internal/utils/mapping"
)

type PgxSettingRepository struct {
	db *pgxpool.Pool
}

func newPgxSettingRepository(db *pgxpool.Pool) portsrepo.SettingRepositoryFacade {
	return &PgxSettingRepository{db: db}
}

// Ensure PgxSettingRepository implements portsrepo.SettingRepositoryFacade
var _ portsrepo.SettingRepositoryFacade = (*PgxSettingRepository)(nil)

// FindSettingByKey retrieves a setting row, or ErrNotFound.
func (r *PgxSettingRepository) FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error) {
	query := `
		SELECT key, value, created_at, created_by, last_updated_at, last_updated_by
		FROM settings
		WHERE key = $1;
	`
	var m models.Setting
	err := r.db.QueryRow(ctx, query, key).Scan(
		&m.Key,
		&m.Value,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find setting "+key, err)
	}

	setting := mapping.ToDomainSetting(m)
	return &setting, nil
}

// UpsertSetting creates or replaces a setting value.
func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m := mapping.ToModelSetting(setting)
	query := `
		INSERT INTO settings (key, value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.Key,
		m.Value,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert setting "+m.Key, err)
	}
	return nil
}
