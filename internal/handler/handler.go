package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/nocops-dev/rota-manager/backend/internal/config"
	"github.com/nocops-dev/rota-manager/backend/internal/domain"
	"github.com/nocops-dev/rota-manager/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 所有值班人员应该都有权限获取其他人的个人信息
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleShiftLead, domain.RoleAdmin})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleShiftLead, domain.RoleAdmin})).Patch("/", h.UpdateEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/rota-plans", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleShiftLead, domain.RoleAdmin})).Post("/", h.CreateRotaPlan)
			r.Get("/", h.GetAllRotaPlans)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.rotaPlan)
				r.Get("/", h.GetRotaPlanByID)
				r.With(h.RequiredRole([]domain.Role{domain.RoleShiftLead, domain.RoleAdmin})).Patch("/", h.UpdateRotaPlan)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteRotaPlan)
				r.Route("/roster", func(r chi.Router) {
					r.Get("/", h.GetRoster)
					r.Group(func(r chi.Router) {
						r.Use(h.RequiredRole([]domain.Role{domain.RoleShiftLead, domain.RoleAdmin}))
						r.Post("/", h.SubmitRoster)
						r.Post("/generate", h.GenerateRoster)
						r.Post("/explain", h.ExplainRoster)
					})
				})
			})
		})
	})
}
