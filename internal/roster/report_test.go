package roster

import (
	"testing"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func hasViolation(report *domain.FeasibilityReport, class domain.ViolationClass) bool {
	for _, v := range report.Violations {
		if v.Class == class {
			return true
		}
	}
	return false
}

// sevenRows 生成 7 行合法班表，再把第 0 行替换为人工构造的序列。
func sevenRows(p *Parameters, numDays int, firstRow []domain.ShiftCode) []domain.RosterRow {
	rows := make([]domain.RosterRow, 7)
	for i := range rows {
		rows[i] = domain.RosterRow{
			EmployeeID:     int64(i + 1),
			EmployeeNumber: "NOC-00" + string(rune('1'+i)),
			Codes:          p.buildRow(i, i%3, numDays),
		}
	}
	if firstRow != nil {
		rows[0].Codes = firstRow
	}
	return rows
}

func TestExplainFlagsInsufficientHeadcount(t *testing.T) {
	p := DefaultParameters()

	rows := sevenRows(p, 14, nil)[:2]
	report := Explain(p, rows)

	if report.Feasible {
		t.Fatal("2 人的班表不应可行")
	}
	if !hasViolation(report, domain.ViolationInsufficientHeadcount) {
		t.Fatalf("期望人数不足违规，实际 %+v", report.Violations)
	}
}

func TestExplainFlagsBackwardRotation(t *testing.T) {
	p := DefaultParameters()

	// 班次 2 直接回退到班次 1
	first := []domain.ShiftCode{
		"2", "2", "2", "2", "2", "W", "W",
		"1", "1", "1", "1", "1", "W", "W",
	}
	report := Explain(p, sevenRows(p, 14, first))

	if !hasViolation(report, domain.ViolationRotationTiming) {
		t.Fatalf("期望轮换时机违规，实际 %+v", report.Violations)
	}
}

func TestExplainFlagsDwellTooShort(t *testing.T) {
	p := DefaultParameters()

	// 仅停留 5 天就轮换到下一个班次
	first := []domain.ShiftCode{
		"1", "1", "1", "1", "1", "W", "W",
		"2", "2", "2", "2", "2", "W", "W",
	}
	report := Explain(p, sevenRows(p, 14, first))

	if !hasViolation(report, domain.ViolationRotationTiming) {
		t.Fatalf("期望轮换时机违规，实际 %+v", report.Violations)
	}
}

func TestExplainFlagsShiftChangeInsideBlock(t *testing.T) {
	p := DefaultParameters()

	first := []domain.ShiftCode{
		"1", "1", "2", "1", "1", "W", "W",
		"1", "1", "1", "1", "1", "W", "W",
	}
	report := Explain(p, sevenRows(p, 14, first))

	if !hasViolation(report, domain.ViolationRotationTiming) {
		t.Fatalf("期望工作块内班次变化被标记，实际 %+v", report.Violations)
	}
}

func TestExplainFlagsMalformedBlocks(t *testing.T) {
	p := DefaultParameters()

	// 中间出现 3 天的轮休块
	first := []domain.ShiftCode{
		"1", "1", "1", "1", "W", "W", "W",
		"1", "1", "1", "1", "1", "W", "W",
	}
	report := Explain(p, sevenRows(p, 14, first))

	if !hasViolation(report, domain.ViolationRotationTiming) {
		t.Fatalf("期望块长度违规被标记，实际 %+v", report.Violations)
	}
}

func TestExplainFlagsAbsenceCap(t *testing.T) {
	p := DefaultParameters()

	// 7 人同一天有 4 人轮休，超过 ceil(0.30*7)=3
	rows := make([]domain.RosterRow, 7)
	codes := [][]domain.ShiftCode{
		{"1"}, {"2"}, {"3"}, {"W"}, {"W"}, {"W"}, {"W"},
	}
	for i := range rows {
		rows[i] = domain.RosterRow{
			EmployeeID:     int64(i + 1),
			EmployeeNumber: "NOC-10" + string(rune('1'+i)),
			Codes:          codes[i],
		}
	}

	report := Explain(p, rows)

	if !hasViolation(report, domain.ViolationAbsenceCapExceeded) {
		t.Fatalf("期望轮休超限违规，实际 %+v", report.Violations)
	}
	if report.Feasible {
		t.Fatal("超过轮休上限的班表不应可行")
	}
}
