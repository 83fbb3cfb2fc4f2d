package domain

import "time"

// ShiftCode 是班表中一个 (员工, 日期) 格子的取值。
type ShiftCode string

const (
	Shift1   ShiftCode = "1"
	Shift2   ShiftCode = "2"
	Shift3   ShiftCode = "3"
	ShiftOff ShiftCode = "W" // 周休
)

// RosterRow 是一个员工在整个排班周期内的逐日班次序列。
type RosterRow struct {
	EmployeeID     int64       `json:"employeeID"`
	EmployeeNumber string      `json:"employeeNumber"`
	Codes          []ShiftCode `json:"codes"`
}

type RosterOrigin string

const (
	RosterOriginGenerated RosterOrigin = "generated"
	RosterOriginSubmitted RosterOrigin = "submitted"
)

type Roster struct {
	ID             int64        `json:"id"`
	RotaPlanID     int64        `json:"rotaPlanID"`
	Rows           []RosterRow  `json:"rows"`
	Feasible       bool         `json:"feasible"`
	DeviationScore int          `json:"deviationScore"`
	Origin         RosterOrigin `json:"origin"`
	CreatedAt      time.Time    `json:"createdAt"`
	Version        int32        `json:"-"`
}

// ViolationClass 是可行性报告中约束冲突的分类。
type ViolationClass string

const (
	ViolationInsufficientHeadcount ViolationClass = "InsufficientHeadcount"
	ViolationStaffingImbalance     ViolationClass = "StaffingImbalance"
	ViolationRotationTiming        ViolationClass = "RotationTimingViolation"
	ViolationAbsenceCapExceeded    ViolationClass = "AbsenceCapExceeded"
)

type Violation struct {
	Class          ViolationClass `json:"class"`
	Day            int            `json:"day"` // 相对排班周期起点的 0 起始天数，-1 表示与具体日期无关
	EmployeeNumber string         `json:"employeeNumber,omitempty"`
	Shift          ShiftCode      `json:"shift,omitempty"`
	Detail         string         `json:"detail"`
}

type FeasibilityReport struct {
	Feasible       bool        `json:"feasible"`
	DeviationScore int         `json:"deviationScore"`
	Violations     []Violation `json:"violations"`
}
