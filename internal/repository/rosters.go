package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

// 班次代码都是单字符，每一行的逐日序列直接拼成一个字符串存储
func encodeCodes(codes []domain.ShiftCode) string {
	var sb strings.Builder
	for _, code := range codes {
		sb.WriteString(string(code))
	}
	return sb.String()
}

func decodeCodes(s string) []domain.ShiftCode {
	codes := make([]domain.ShiftCode, 0, len(s))
	for _, c := range s {
		codes = append(codes, domain.ShiftCode(c))
	}
	return codes
}

func (r *Repository) InsertRoster(roster *domain.Roster) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先将该计划之前的班表删除
	query := `DELETE FROM rosters WHERE rota_plan_id = $1`
	if _, err := tx.ExecContext(ctx, query, roster.RotaPlanID); err != nil {
		return err
	}

	query = `
		INSERT INTO rosters (rota_plan_id, feasible, deviation_score, origin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{roster.RotaPlanID, roster.Feasible, roster.DeviationScore, roster.Origin}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&roster.ID, &roster.CreatedAt, &roster.Version); err != nil {
		return err
	}

	for _, row := range roster.Rows {
		query := `
			INSERT INTO roster_rows (roster_id, employee_id, codes)
			VALUES ($1, $2, $3)
		`

		if _, err := tx.ExecContext(ctx, query, roster.ID, row.EmployeeID, encodeCodes(row.Codes)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRosterByRotaPlanID(rotaPlanID int64) (*domain.Roster, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			ro.id,
			ro.feasible,
			ro.deviation_score,
			ro.origin,
			rr.employee_id,
			e.number,
			rr.codes,
			ro.created_at,
			ro.version
		FROM rosters ro
		LEFT JOIN roster_rows rr ON ro.id = rr.roster_id
		LEFT JOIN employees e ON rr.employee_id = e.id
		WHERE ro.rota_plan_id = $1
		ORDER BY e.number
	`

	rows, err := r.dbpool.QueryContext(ctx, query, rotaPlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := &domain.Roster{
		RotaPlanID: rotaPlanID,
		Rows:       make([]domain.RosterRow, 0),
	}

	for rows.Next() {
		var row struct {
			rosterID       int64
			feasible       bool
			deviationScore int
			origin         domain.RosterOrigin
			employeeID     sql.NullInt64
			employeeNumber sql.NullString
			codes          sql.NullString
			createdAt      time.Time
			version        int32
		}

		dst := []any{
			&row.rosterID,
			&row.feasible,
			&row.deviationScore,
			&row.origin,
			&row.employeeID,
			&row.employeeNumber,
			&row.codes,
			&row.createdAt,
			&row.version,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		roster.ID = row.rosterID
		roster.Feasible = row.feasible
		roster.DeviationScore = row.deviationScore
		roster.Origin = row.origin
		roster.CreatedAt = row.createdAt
		roster.Version = row.version

		if !row.employeeID.Valid {
			// 说明这个班表没有任何行，业务上不可能出现，但还是要处理
			continue
		}

		roster.Rows = append(roster.Rows, domain.RosterRow{
			EmployeeID:     row.employeeID.Int64,
			EmployeeNumber: row.employeeNumber.String,
			Codes:          decodeCodes(row.codes.String),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 还需要处理没有班表的情况
	if roster.ID == 0 {
		return nil, sql.ErrNoRows
	}

	return roster, nil
}

func (r *Repository) DeleteRosterByRotaPlanID(rotaPlanID int64) error {
	query := `
		DELETE FROM rosters WHERE rota_plan_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, rotaPlanID); err != nil {
		return err
	}

	return nil
}
