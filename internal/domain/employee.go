package domain

import "time"

// Employee 是排班池中的值班人员，和 User（系统账号）是两类实体。
// StartingShift 保存录入时的原始值，缺失或非法时由排班引擎轮转补齐。
type Employee struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"` // 工号，唯一
	FullName      string    `json:"fullName"`
	StartingShift string    `json:"startingShift"` // "1"、"2"、"3" 或任意原始输入
	Gender        string    `json:"gender"`        // 仅用于报表展示，不参与排班
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
