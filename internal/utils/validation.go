package utils

import (
	"errors"
	"fmt"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func ValidateRotaPlanDates(plan *domain.RotaPlan) error {
	if plan.StopDate.Before(plan.StartDate) {
		return errors.New("排班结束日期不能早于开始日期")
	}

	return nil
}

// PlanDays 返回排班计划覆盖的天数（闭区间）。
func PlanDays(plan *domain.RotaPlan) int {
	days := 0
	for d := plan.StartDate; !d.After(plan.StopDate); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

var validCodes = map[domain.ShiftCode]bool{
	domain.Shift1:   true,
	domain.Shift2:   true,
	domain.Shift3:   true,
	domain.ShiftOff: true,
}

// ValidateRosterWithPlan 检查人工录入的班表和排班计划、员工名单是否对得上：
// 工号必须存在且不重复，每一行的天数必须等于计划覆盖的天数，代码必须合法。
// 通过校验后把每一行的 EmployeeID 填充为员工表中的 ID。
func ValidateRosterWithPlan(roster *domain.Roster, plan *domain.RotaPlan, employees []*domain.Employee) error {
	numDays := PlanDays(plan)

	byNumber := make(map[string]*domain.Employee, len(employees))
	for _, emp := range employees {
		byNumber[emp.Number] = emp
	}

	seen := make(map[string]bool, len(roster.Rows))
	for i := range roster.Rows {
		row := &roster.Rows[i]

		emp, exists := byNumber[row.EmployeeNumber]
		if !exists {
			return fmt.Errorf("工号 %s 不在员工名单中", row.EmployeeNumber)
		}
		if seen[row.EmployeeNumber] {
			return fmt.Errorf("班表中工号 %s 重复", row.EmployeeNumber)
		}
		seen[row.EmployeeNumber] = true

		if len(row.Codes) != numDays {
			return fmt.Errorf("工号 %s 的班表为 %d 天，排班计划覆盖 %d 天", row.EmployeeNumber, len(row.Codes), numDays)
		}

		for day, code := range row.Codes {
			if !validCodes[code] {
				return fmt.Errorf("工号 %s 第 %d 天的班次代码 %q 非法", row.EmployeeNumber, day+1, code)
			}
		}

		row.EmployeeID = emp.ID
	}

	return nil
}
