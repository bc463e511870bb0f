package pgsql

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	"github.com/crateworks/debt_ledger_app/internal/models"
	"github.com/crateworks/debt_ledger_app/internal/utils/mapping"
	"github.com/crateworks/debt_ledger_app/internal/utils/pagination"
)

type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{db: db}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditLog persists one audit record. Details is serialized to JSONB.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m := mapping.ToModelAuditLog(entry)

	var details []byte
	if m.Details != nil {
		var err error
		details, err = json.Marshal(m.Details)
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal audit details for "+m.AuditID, err)
		}
	}

	query := `
		INSERT INTO audit_logs (audit_id, action, entity_type, entity_id, details, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		m.AuditID,
		m.Action,
		m.EntityType,
		m.EntityID,
		details,
		m.PerformedBy,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record "+m.AuditID, err)
	}
	return nil
}

// ListAuditLogs retrieves a token-paginated list of audit records, newest first.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT audit_id, action, entity_type, entity_id, details, performed_by, created_at
		FROM audit_logs
	`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` WHERE created_at < $1`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit records", err)
	}
	defer rows.Close()

	entries := make([]models.AuditLog, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditLog
		var details []byte
		err := rows.Scan(
			&m.AuditID,
			&m.Action,
			&m.EntityType,
			&m.EntityID,
			&details,
			&m.PerformedBy,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &m.Details); err != nil {
				return nil, nil, apperrors.NewAppError(500, "failed to unmarshal audit details for "+m.AuditID, err)
			}
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		token := pagination.EncodeDateBasedToken(entries[limit-1].CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainAuditLogSlice(entries), nextTokenVal, nil
}
