package roster

import (
	"testing"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

var testCycle = []domain.ShiftCode{domain.Shift1, domain.Shift2, domain.Shift3}

func TestTrackerKeepsShiftUntilDwellMet(t *testing.T) {
	tracker := newRotationTracker(testCycle, 28, 0)

	// 每个工作块 5 天，块间轮休 2 天：停留天数依次为 5、12、19、26、33
	var got []domain.ShiftCode
	got = append(got, tracker.nextBlock(5, 0))
	for i := 0; i < 5; i++ {
		got = append(got, tracker.nextBlock(5, 2))
	}

	expected := []domain.ShiftCode{"1", "1", "1", "1", "1", "2"}
	for i, want := range expected {
		if got[i] != want {
			t.Fatalf("第 %d 个工作块期望班次 %s，实际 %s", i, want, got[i])
		}
	}
}

func TestTrackerResetsDwellOnRotation(t *testing.T) {
	tracker := newRotationTracker(testCycle, 28, 0)

	tracker.nextBlock(5, 0)
	for i := 0; i < 4; i++ {
		tracker.nextBlock(5, 2)
	}
	if shift := tracker.nextBlock(5, 2); shift != domain.Shift2 {
		t.Fatalf("停留时间满后应轮换到班次 2，实际 %s", shift)
	}

	// 轮换后计数重置，紧接着的边界不允许再次轮换
	if shift := tracker.nextBlock(5, 2); shift != domain.Shift2 {
		t.Fatalf("轮换后停留时间未满，不应再次轮换，实际 %s", shift)
	}
}

func TestTrackerCycleWrapsForward(t *testing.T) {
	// 从班次 3 出发，轮换只能回到班次 1
	tracker := newRotationTracker(testCycle, 28, 2)

	tracker.nextBlock(5, 0)
	for i := 0; i < 4; i++ {
		tracker.nextBlock(5, 2)
	}
	if shift := tracker.nextBlock(5, 2); shift != domain.Shift1 {
		t.Fatalf("班次 3 之后应轮换到班次 1，实际 %s", shift)
	}
}

func TestTrackerFirstBlockSkipsCheck(t *testing.T) {
	tracker := newRotationTracker(testCycle, 1, 1)

	// 停留门槛为 1 天时，第一个工作块也不做轮换检查
	if shift := tracker.nextBlock(5, 0); shift != domain.Shift2 {
		t.Fatalf("第一个工作块应使用起始班次 2，实际 %s", shift)
	}
	if shift := tracker.nextBlock(5, 2); shift != domain.Shift3 {
		t.Fatalf("第二个工作块应轮换到班次 3，实际 %s", shift)
	}
}
