package repository

import (
	"context"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func (r *Repository) GetAllRotaPlans() ([]*domain.RotaPlan, error) {
	query := `
		SELECT
			id,
			name,
			description,
			start_date,
			stop_date,
			created_at,
			version
		FROM rota_plans
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []*domain.RotaPlan{}
	for rows.Next() {
		var plan domain.RotaPlan
		dst := []any{
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.StartDate,
			&plan.StopDate,
			&plan.CreatedAt,
			&plan.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) CreateRotaPlan(plan *domain.RotaPlan) error {
	query := `
		INSERT INTO rota_plans (name, description, start_date, stop_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{plan.Name, plan.Description, plan.StartDate, plan.StopDate}
	dst := []any{&plan.ID, &plan.CreatedAt, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateRotaPlan(plan *domain.RotaPlan) error {
	// 不允许更新起止日期，不然已经生成的班表会和计划对不上
	query := `
		UPDATE rota_plans
		SET
			name = $1,
			description = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING start_date, stop_date, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{plan.Name, plan.Description, plan.ID, plan.Version}
	dst := []any{&plan.StartDate, &plan.StopDate, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRotaPlanByID(id int64) (*domain.RotaPlan, error) {
	query := `
		SELECT
			name,
			description,
			start_date,
			stop_date,
			created_at,
			version
		FROM rota_plans
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	plan := &domain.RotaPlan{
		ID: id,
	}

	dst := []any{
		&plan.Name,
		&plan.Description,
		&plan.StartDate,
		&plan.StopDate,
		&plan.CreatedAt,
		&plan.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *Repository) DeleteRotaPlan(id int64) error {
	query := `
		DELETE FROM rota_plans WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
