package roster

import (
	"testing"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func TestScoreBalancedDayIsZero(t *testing.T) {
	b := &balancer{params: DefaultParameters()}

	rows := [][]domain.ShiftCode{
		{"1"}, {"2"}, {"3"},
	}

	if score := b.score(rows); score != 0 {
		t.Fatalf("三班各 1 人应为 0 分，实际 %d", score)
	}
}

func TestScoreCountsDeviationPerShift(t *testing.T) {
	b := &balancer{params: DefaultParameters()}

	// 在岗 3 人，理想每班 1 人：班次 1 多 1 人，班次 3 少 1 人
	rows := [][]domain.ShiftCode{
		{"1"}, {"1"}, {"2"},
	}

	if score := b.score(rows); score != 2 {
		t.Fatalf("期望失衡度 2，实际 %d", score)
	}
}

func TestScoreIgnoresOffEmployees(t *testing.T) {
	b := &balancer{params: DefaultParameters()}

	// 轮休的人不计入当天的均分基数
	rows := [][]domain.ShiftCode{
		{"1"}, {"2"}, {"3"}, {"W"}, {"W"}, {"W"},
	}

	if score := b.score(rows); score != 0 {
		t.Fatalf("在岗三班各 1 人应为 0 分，实际 %d", score)
	}
}

func TestAbsenceCapCeiling(t *testing.T) {
	b := &balancer{params: DefaultParameters()}

	// ceil(0.30 * 7) = 3
	if got := b.maxOff(7); got != 3 {
		t.Fatalf("7 人的轮休上限期望 3，实际 %d", got)
	}
	// ceil(0.30 * 10) = 3
	if got := b.maxOff(10); got != 3 {
		t.Fatalf("10 人的轮休上限期望 3，实际 %d", got)
	}
}

func TestViolatesAbsenceCap(t *testing.T) {
	b := &balancer{params: DefaultParameters()}

	rows := [][]domain.ShiftCode{
		{"1"}, {"2"}, {"3"}, {"1"}, {"W"}, {"W"}, {"W"},
	}
	if b.violatesAbsenceCap(rows, 0) {
		t.Fatal("7 人中轮休 3 人不应超过上限")
	}

	rows = [][]domain.ShiftCode{
		{"1"}, {"2"}, {"3"}, {"W"}, {"W"}, {"W"}, {"W"},
	}
	if !b.violatesAbsenceCap(rows, 0) {
		t.Fatal("7 人中轮休 4 人应超过上限")
	}
}

func TestCoverageShortfalls(t *testing.T) {
	b := &balancer{params: DefaultParameters()}

	rows := [][]domain.ShiftCode{
		{"1"}, {"1"}, {"2"}, {"W"},
	}

	short := b.coverageShortfalls(rows, 0)
	if len(short) != 1 || short[0] != domain.Shift3 {
		t.Fatalf("期望仅班次 3 缺人，实际 %v", short)
	}
}
