package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func testPlan(days int) *domain.RotaPlan {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return &domain.RotaPlan{
		ID:        1,
		Name:      "测试排班计划",
		StartDate: start,
		StopDate:  start.AddDate(0, 0, days-1),
	}
}

func codesOf(s string) []domain.ShiftCode {
	codes := make([]domain.ShiftCode, 0, len(s))
	for _, c := range s {
		codes = append(codes, domain.ShiftCode(c))
	}
	return codes
}

func TestValidateRotaPlanDates(t *testing.T) {
	plan := testPlan(7)
	if err := ValidateRotaPlanDates(plan); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	plan.StopDate = plan.StartDate.AddDate(0, 0, -1)
	if err := ValidateRotaPlanDates(plan); err == nil {
		t.Fatalf("expected error for stop date before start date")
	}
}

func TestPlanDays(t *testing.T) {
	if got := PlanDays(testPlan(1)); got != 1 {
		t.Fatalf("PlanDays = %d, want 1", got)
	}
	if got := PlanDays(testPlan(28)); got != 28 {
		t.Fatalf("PlanDays = %d, want 28", got)
	}
}

func TestValidateRosterWithPlan(t *testing.T) {
	plan := testPlan(7)
	employees := []*domain.Employee{
		{ID: 11, Number: "NOC-001"},
		{ID: 12, Number: "NOC-002"},
	}

	roster := &domain.Roster{
		RotaPlanID: plan.ID,
		Rows: []domain.RosterRow{
			{EmployeeNumber: "NOC-001", Codes: codesOf("11111WW")},
			{EmployeeNumber: "NOC-002", Codes: codesOf("22222WW")},
		},
	}

	if err := ValidateRosterWithPlan(roster, plan, employees); err != nil {
		t.Fatalf("valid roster rejected: %v", err)
	}
	if roster.Rows[0].EmployeeID != 11 || roster.Rows[1].EmployeeID != 12 {
		t.Fatalf("employee IDs not filled in: %+v", roster.Rows)
	}
}

func TestValidateRosterWithPlanUnknownEmployee(t *testing.T) {
	plan := testPlan(7)
	employees := []*domain.Employee{{ID: 11, Number: "NOC-001"}}

	roster := &domain.Roster{
		Rows: []domain.RosterRow{
			{EmployeeNumber: "NOC-999", Codes: codesOf("11111WW")},
		},
	}

	err := ValidateRosterWithPlan(roster, plan, employees)
	if err == nil {
		t.Fatalf("expected error for unknown employee number")
	}
	if !strings.Contains(err.Error(), "NOC-999") {
		t.Fatalf("error should mention the offending number, got %q", err.Error())
	}
}

func TestValidateRosterWithPlanDuplicateRow(t *testing.T) {
	plan := testPlan(7)
	employees := []*domain.Employee{{ID: 11, Number: "NOC-001"}}

	roster := &domain.Roster{
		Rows: []domain.RosterRow{
			{EmployeeNumber: "NOC-001", Codes: codesOf("11111WW")},
			{EmployeeNumber: "NOC-001", Codes: codesOf("22222WW")},
		},
	}

	if err := ValidateRosterWithPlan(roster, plan, employees); err == nil {
		t.Fatalf("expected error for duplicate employee row")
	}
}

func TestValidateRosterWithPlanWrongLength(t *testing.T) {
	plan := testPlan(7)
	employees := []*domain.Employee{{ID: 11, Number: "NOC-001"}}

	roster := &domain.Roster{
		Rows: []domain.RosterRow{
			{EmployeeNumber: "NOC-001", Codes: codesOf("11111W")},
		},
	}

	if err := ValidateRosterWithPlan(roster, plan, employees); err == nil {
		t.Fatalf("expected error for row length mismatch")
	}
}

func TestValidateRosterWithPlanInvalidCode(t *testing.T) {
	plan := testPlan(7)
	employees := []*domain.Employee{{ID: 11, Number: "NOC-001"}}

	roster := &domain.Roster{
		Rows: []domain.RosterRow{
			{EmployeeNumber: "NOC-001", Codes: codesOf("11111WX")},
		},
	}

	if err := ValidateRosterWithPlan(roster, plan, employees); err == nil {
		t.Fatalf("expected error for invalid shift code")
	}
}
