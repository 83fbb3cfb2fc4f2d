package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nocops-dev/rota-manager/backend/internal/domain"
	"github.com/nocops-dev/rota-manager/backend/internal/roster"
	"github.com/nocops-dev/rota-manager/backend/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

func (h *Handler) CreateRotaPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string    `json:"name" validate:"required"`
		Description string    `json:"description"`
		StartDate   time.Time `json:"startDate" validate:"required"`
		StopDate    time.Time `json:"stopDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan := &domain.RotaPlan{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		StopDate:    req.StopDate,
	}

	// 检查 plan 的日期是否合法
	if err := utils.ValidateRotaPlanDates(plan); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 插入数据到数据库中
	if err := h.repository.CreateRotaPlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "rota_plans_name_key":
				h.errorResponse(w, r, "排班计划名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建排班计划成功", plan)
}

func (h *Handler) GetRotaPlanByID(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	h.successResponse(w, r, "获取排班计划成功", plan)
}

func (h *Handler) GetAllRotaPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repository.GetAllRotaPlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有排班计划成功", plans)
}

func (h *Handler) UpdateRotaPlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}

	if err := h.repository.UpdateRotaPlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "rota_plans_name_key":
				h.errorResponse(w, r, "排班计划名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新排班计划失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新排班计划成功", plan)
}

func (h *Handler) DeleteRotaPlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	if err := h.repository.DeleteRotaPlan(plan.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除排班计划成功", nil)
}

// 排班规则统一从配置读取，保证每次生成用的都是同一套生产规则
func (h *Handler) rosterParameters() *roster.Parameters {
	params := roster.DefaultParameters()
	params.MinHeadcount = h.config.Rota.MinHeadcount
	params.WorkBlockLength = h.config.Rota.WorkBlockLength
	params.OffBlockLength = h.config.Rota.OffBlockLength
	params.MinDwellDays = h.config.Rota.MinDwellDays
	params.AbsenceCapFraction = h.config.Rota.AbsenceCapPercent / 100
	params.MinPerShift = h.config.Rota.MinPerShift
	params.MaxIterations = h.config.Rota.MaxIterations
	params.TimeBudget = time.Duration(h.config.Rota.SolveTimeout) * time.Second

	return params
}

func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	// 只有在岗员工参与排班
	employees, err := h.repository.GetActiveEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	params := h.rosterParameters()

	res, err := roster.BuildRoster(r.Context(), params, employees, plan.StartDate, plan.StopDate)
	if err != nil {
		var headcountErr *roster.InsufficientHeadcountError
		var inputErr *roster.InputValidationError
		switch {
		case errors.As(err, &headcountErr):
			h.errorResponse(w, r, headcountErr.Error())
		case errors.As(err, &inputErr):
			h.errorResponse(w, r, inputErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	rosterRecord := &domain.Roster{
		RotaPlanID:     plan.ID,
		Rows:           res.Assignment,
		Feasible:       res.Report.Feasible,
		DeviationScore: res.Report.DeviationScore,
		Origin:         domain.RosterOriginGenerated,
	}

	if err := h.repository.InsertRoster(rosterRecord); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通知所有在职用户班表已更新，邮件发送失败不影响排班结果
	if err := h.notifyRosterPublished(plan, res.Report.Feasible); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "生成班表成功", struct {
		Roster *domain.Roster            `json:"roster"`
		Report *domain.FeasibilityReport `json:"report"`
	}{
		Roster: rosterRecord,
		Report: res.Report,
	})
}

type rosterRowRequest struct {
	EmployeeNumber string             `json:"employeeNumber" validate:"required"`
	Codes          []domain.ShiftCode `json:"codes" validate:"required"`
}

func rowsFromRequest(req []rosterRowRequest) []domain.RosterRow {
	rows := make([]domain.RosterRow, len(req))
	for i, row := range req {
		rows[i] = domain.RosterRow{
			EmployeeNumber: row.EmployeeNumber,
			Codes:          row.Codes,
		}
	}
	return rows
}

func (h *Handler) SubmitRoster(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	var req []rosterRowRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Var(req, "required,dive"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rosterRecord := &domain.Roster{
		RotaPlanID: plan.ID,
		Rows:       rowsFromRequest(req),
		Origin:     domain.RosterOriginSubmitted,
	}

	// 必须检查提交的班表是否和计划、员工名单对的上
	employees, err := h.repository.GetActiveEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := utils.ValidateRosterWithPlan(rosterRecord, plan, employees); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 还要检查提交的班表是否满足排班规则，不满足的班表不允许落库
	report := roster.Explain(h.rosterParameters(), rosterRecord.Rows)
	if !report.Feasible {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "提交的班表违反排班规则",
			Data:    report,
		})
		return
	}

	rosterRecord.Feasible = true
	rosterRecord.DeviationScore = report.DeviationScore

	if err := h.repository.InsertRoster(rosterRecord); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyRosterPublished(plan, true); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "提交班表成功", rosterRecord)
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	rosterRecord, err := h.repository.GetRosterByRotaPlanID(plan.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "该排班计划还没有班表", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取班表成功", rosterRecord)
}

// ExplainRoster 只做规则诊断，不落库，供值班长在提交前检查手工调整的班表
func (h *Handler) ExplainRoster(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(RotaPlanCtx).(*domain.RotaPlan)

	var req []rosterRowRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Var(req, "required,dive"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rosterRecord := &domain.Roster{
		RotaPlanID: plan.ID,
		Rows:       rowsFromRequest(req),
	}

	employees, err := h.repository.GetActiveEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := utils.ValidateRosterWithPlan(rosterRecord, plan, employees); err != nil {
		h.badRequest(w, r, err)
		return
	}

	report := roster.Explain(h.rosterParameters(), rosterRecord.Rows)

	h.successResponse(w, r, "班表诊断完成", report)
}

func (h *Handler) notifyRosterPublished(plan *domain.RotaPlan, feasible bool) error {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		return err
	}

	for _, user := range users {
		if !user.IsActive {
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "roster_published",
			To:   user.Email,
			Data: domain.RosterPublishedMailData{
				FullName:  user.FullName,
				PlanName:  plan.Name,
				StartDate: plan.StartDate.Format("2006-01-02"),
				StopDate:  plan.StopDate.Format("2006-01-02"),
				Feasible:  feasible,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)

		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}
