package domain

import (
	"time"
)

type Role string

const (
	RoleOperator  Role = "值班员"
	RoleShiftLead Role = "值班长"
	RoleAdmin     Role = "管理员"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
