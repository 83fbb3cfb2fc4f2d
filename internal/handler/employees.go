package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number        string `json:"number" validate:"required"`
		FullName      string `json:"fullName" validate:"required"`
		StartingShift string `json:"startingShift"` // 允许缺失或非法，排班时会轮转补齐
		Gender        string `json:"gender"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	emp := &domain.Employee{
		Number:        req.Number,
		FullName:      req.FullName,
		StartingShift: req.StartingShift,
		Gender:        req.Gender,
	}

	if err := h.repository.CreateEmployee(emp); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_number_key":
				h.badRequest(w, r, errors.New("工号已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "员工创建成功", emp)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "获取员工信息成功", emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName      *string `json:"fullName"`
		StartingShift *string `json:"startingShift"`
		Gender        *string `json:"gender"`
		IsActive      *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.StartingShift != nil {
		emp.StartingShift = *req.StartingShift
	}
	if req.Gender != nil {
		emp.Gender = *req.Gender
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateEmployee(emp); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新员工信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(emp.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}
