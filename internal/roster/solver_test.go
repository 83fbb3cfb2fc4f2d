package roster

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func makeEmployees(startingShifts ...string) []*domain.Employee {
	employees := make([]*domain.Employee, len(startingShifts))
	for i, shift := range startingShifts {
		employees[i] = &domain.Employee{
			ID:            int64(i + 1),
			Number:        fmt.Sprintf("NOC-%03d", i+1),
			FullName:      fmt.Sprintf("员工%d", i+1),
			StartingShift: shift,
			IsActive:      true,
		}
	}
	return employees
}

func horizon(days int) (time.Time, time.Time) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, days-1)
}

func TestNormalizeStartShiftsRoundRobin(t *testing.T) {
	employees := makeEmployees("", "5", "2", "", "abc")

	got := normalizeStartShifts(employees, testCycle)

	// 合法声明不占用轮转名额："2" 保持不变，其余按 1、2、3 轮流补齐
	expected := []int{0, 1, 1, 2, 0}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("期望 %v，实际 %v", expected, got)
	}
}

func TestInsufficientHeadcount(t *testing.T) {
	start, stop := horizon(35)

	_, err := New(DefaultParameters(), makeEmployees("", "", "", "", "", ""), start, stop)

	var headcountErr *InsufficientHeadcountError
	if !errors.As(err, &headcountErr) {
		t.Fatalf("6 人应返回 InsufficientHeadcountError，实际 %v", err)
	}
	if headcountErr.Headcount != 6 || headcountErr.Required != 7 {
		t.Fatalf("错误中的人数不正确: %+v", headcountErr)
	}
}

func TestDuplicateEmployeeNumbers(t *testing.T) {
	start, stop := horizon(35)

	employees := makeEmployees("", "", "", "", "", "", "")
	employees[6].Number = employees[0].Number

	_, err := New(DefaultParameters(), employees, start, stop)

	var inputErr *InputValidationError
	if !errors.As(err, &inputErr) {
		t.Fatalf("工号重复应返回 InputValidationError，实际 %v", err)
	}
}

func TestStopDateBeforeStartDate(t *testing.T) {
	start, _ := horizon(35)

	_, err := New(DefaultParameters(), makeEmployees("", "", "", "", "", "", ""), start, start.AddDate(0, 0, -1))

	var inputErr *InputValidationError
	if !errors.As(err, &inputErr) {
		t.Fatalf("日期区间颠倒应返回 InputValidationError，实际 %v", err)
	}
}

func TestConfigurationError(t *testing.T) {
	start, stop := horizon(35)

	params := DefaultParameters()
	params.MinDwellDays = 0

	_, err := New(params, makeEmployees("", "", "", "", "", "", ""), start, stop)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("非法的停留门槛应返回 ConfigurationError，实际 %v", err)
	}
}

func TestSevenEmployeesThirtyFiveDays(t *testing.T) {
	start, stop := horizon(35)

	// 7 人都未声明起始班次：轮转补齐为 1、2、3、1、2、3、1
	result, err := BuildRoster(context.Background(), DefaultParameters(), makeEmployees("", "", "", "", "", "", ""), start, stop)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	expectedStart := []domain.ShiftCode{"1", "2", "3", "1", "2", "3", "1"}
	for i, row := range result.Assignment {
		if len(row.Codes) != 35 {
			t.Fatalf("员工 %s 的班表为 %d 天，期望 35 天", row.EmployeeNumber, len(row.Codes))
		}

		// 35 天内停留时间不可能满 28 天，任何员工的班次都不应变化
		var worked domain.ShiftCode
		for day, code := range row.Codes {
			if code == domain.ShiftOff {
				continue
			}
			if worked == "" {
				worked = code
			}
			if code != worked {
				t.Fatalf("员工 %s 第 %d 天班次从 %s 变为 %s", row.EmployeeNumber, day, worked, code)
			}
		}
		if worked != expectedStart[i] {
			t.Fatalf("员工 %s 期望班次 %s，实际 %s", row.EmployeeNumber, expectedStart[i], worked)
		}
	}
}

func TestInvalidStartingShiftIsReassignedNotRejected(t *testing.T) {
	start, stop := horizon(35)

	// "5" 是非法班次，应轮转补齐而不是报错
	employees := makeEmployees("5", "1", "2", "3", "1", "2", "3")
	result, err := BuildRoster(context.Background(), DefaultParameters(), employees, start, stop)
	if err != nil {
		t.Fatalf("非法起始班次不应导致求解失败: %v", err)
	}

	for day, code := range result.Assignment[0].Codes {
		if code == domain.ShiftOff {
			continue
		}
		if code != domain.Shift1 {
			t.Fatalf("员工 NOC-001 第 %d 天期望补齐为班次 1，实际 %s", day, code)
		}
	}
}

func TestRosterSatisfiesHardConstraints(t *testing.T) {
	start, stop := horizon(28)

	result, err := BuildRoster(context.Background(), DefaultParameters(), makeEmployees("", "", "", "", "", "", ""), start, stop)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if !result.Report.Feasible {
		t.Fatalf("7 人 28 天应存在可行班表，违规: %+v", result.Report.Violations)
	}
}

func TestExplainAcceptsGeneratedRoster(t *testing.T) {
	start, stop := horizon(42)

	params := DefaultParameters()
	result, err := BuildRoster(context.Background(), params, makeEmployees("", "", "", "", "", "", ""), start, stop)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	// 42 天周期内会发生轮换，报告不应出现轮换时机违规
	report := Explain(params, result.Assignment)
	for _, v := range report.Violations {
		if v.Class == domain.ViolationRotationTiming {
			t.Fatalf("引擎生成的班表不应有轮换违规: %+v", v)
		}
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	start, stop := horizon(35)

	first, err := BuildRoster(context.Background(), DefaultParameters(), makeEmployees("", "3", "", "1", "", "", "2", ""), start, stop)
	if err != nil {
		t.Fatalf("第一次求解失败: %v", err)
	}

	second, err := BuildRoster(context.Background(), DefaultParameters(), makeEmployees("", "3", "", "1", "", "", "2", ""), start, stop)
	if err != nil {
		t.Fatalf("第二次求解失败: %v", err)
	}

	if !reflect.DeepEqual(first.Assignment, second.Assignment) {
		t.Fatal("相同输入两次求解得到了不同的班表")
	}
	if !reflect.DeepEqual(first.Offsets, second.Offsets) {
		t.Fatal("相同输入两次求解得到了不同的偏移分配")
	}
}

func TestSolveHonorsDeadline(t *testing.T) {
	start, stop := horizon(35)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // 截止时间已过，求解仍应返回当前最优候选

	result, err := BuildRoster(ctx, DefaultParameters(), makeEmployees("", "", "", "", "", "", ""), start, stop)
	if err != nil {
		t.Fatalf("截止时间到期不应报错: %v", err)
	}
	if len(result.Assignment) != 7 {
		t.Fatalf("期望 7 行班表，实际 %d 行", len(result.Assignment))
	}
}
