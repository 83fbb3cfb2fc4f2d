package roster

import (
	"testing"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

func TestBuildRowTilesFiveOnTwoOff(t *testing.T) {
	p := DefaultParameters()

	codes := p.buildRow(0, 0, 14)

	expected := []domain.ShiftCode{
		"1", "1", "1", "1", "1", "W", "W",
		"1", "1", "1", "1", "1", "W", "W",
	}

	for i, want := range expected {
		if codes[i] != want {
			t.Fatalf("第 %d 天期望 %s，实际 %s", i, want, codes[i])
		}
	}
}

func TestBuildRowLeadingFragment(t *testing.T) {
	p := DefaultParameters()

	// 偏移 3：第 0 天是上一个周期工作块的残块，第 1~2 天轮休，第 3 天起为完整块
	codes := p.buildRow(3, 1, 12)

	expected := []domain.ShiftCode{
		"2", "W", "W",
		"2", "2", "2", "2", "2", "W", "W",
		"2", "2",
	}

	for i, want := range expected {
		if codes[i] != want {
			t.Fatalf("第 %d 天期望 %s，实际 %s", i, want, codes[i])
		}
	}
}

func TestBuildRowTotality(t *testing.T) {
	p := DefaultParameters()

	valid := map[domain.ShiftCode]bool{
		domain.Shift1: true, domain.Shift2: true, domain.Shift3: true, domain.ShiftOff: true,
	}

	for offset := 0; offset < p.period(); offset++ {
		codes := p.buildRow(offset, 0, 30)
		if len(codes) != 30 {
			t.Fatalf("偏移 %d 生成了 %d 天，期望 30 天", offset, len(codes))
		}
		for day, code := range codes {
			if !valid[code] {
				t.Fatalf("偏移 %d 第 %d 天出现非法代码 %q", offset, day, code)
			}
		}
	}
}

func TestIsOffDayPeriodic(t *testing.T) {
	p := DefaultParameters()

	for offset := 0; offset < p.period(); offset++ {
		offCount := 0
		for day := offset; day < offset+p.period(); day++ {
			if p.isOffDay(day, offset) {
				offCount++
			}
		}
		if offCount != p.OffBlockLength {
			t.Fatalf("偏移 %d 在一个周期内轮休 %d 天，期望 %d 天", offset, offCount, p.OffBlockLength)
		}

		// 锚点当天必须是工作块首日
		if p.phase(offset, offset) != 0 {
			t.Fatalf("偏移 %d 的锚点相位不为 0", offset)
		}
	}
}

func TestBuildRowRotatesAfterDwellMet(t *testing.T) {
	p := DefaultParameters()

	// 偏移 0：第 35 天是停留时间满 28 天后的第一个轮换边界
	codes := p.buildRow(0, 0, 42)

	// 第 28 天开始的工作块仍是班次 1（此时停留 26 天，未满 28 天）
	if codes[28] != domain.Shift1 {
		t.Fatalf("第 28 天不应轮换，实际为 %s", codes[28])
	}
	if codes[35] != domain.Shift2 {
		t.Fatalf("第 35 天应轮换到班次 2，实际为 %s", codes[35])
	}
}
