package repository

import (
	"context"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	query := `
		INSERT INTO employees (number, full_name, starting_shift, gender)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{emp.Number, emp.FullName, emp.StartingShift, emp.Gender}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&emp.ID, &emp.IsActive, &emp.CreatedAt, &emp.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT number, full_name, starting_shift, gender, is_active, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	emp := &domain.Employee{
		ID: id,
	}

	dst := []any{&emp.Number, &emp.FullName, &emp.StartingShift, &emp.Gender, &emp.IsActive, &emp.CreatedAt, &emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return emp, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, number, full_name, starting_shift, gender, is_active, created_at, version
		FROM employees
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp := &domain.Employee{}
		dst := []any{&emp.ID, &emp.Number, &emp.FullName, &emp.StartingShift, &emp.Gender, &emp.IsActive, &emp.CreatedAt, &emp.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetActiveEmployees 返回参与排班的在岗员工，排班引擎只使用这部分数据。
func (r *Repository) GetActiveEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, number, full_name, starting_shift, gender, is_active, created_at, version
		FROM employees WHERE is_active = TRUE
		ORDER BY number
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp := &domain.Employee{}
		dst := []any{&emp.ID, &emp.Number, &emp.FullName, &emp.StartingShift, &emp.Gender, &emp.IsActive, &emp.CreatedAt, &emp.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) UpdateEmployee(emp *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			full_name = $1,
			starting_shift = $2,
			gender = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING number, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{emp.FullName, emp.StartingShift, emp.Gender, emp.IsActive, emp.ID, emp.Version}
	dst := []any{&emp.Number, &emp.CreatedAt, &emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
