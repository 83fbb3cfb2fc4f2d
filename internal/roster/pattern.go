package roster

import "github.com/nocops-dev/rota-manager/backend/internal/domain"

// 轮休铺排是一个封闭形式的周期计算：以偏移 k 为锚点，
// 第 k 天是一个工作块的首日，此后每隔一个周期（工作块+轮休块）重复。
// k 之前的天数视为上一个周期延续进来的残块。

// phase 是第 day 天在偏移 offset 的周期里的相位，0 表示工作块首日。
func (p *Parameters) phase(day, offset int) int {
	period := p.period()
	return ((day-offset)%period + period) % period
}

// isOffDay 判断第 day 天（0 起始）对偏移 offset 的员工是否轮休。
func (p *Parameters) isOffDay(day, offset int) bool {
	return p.phase(day, offset) >= p.WorkBlockLength
}

// buildRow 为单个员工生成整个排班周期的逐日班次序列。
// 偏移和起始班次确定后整行是确定性的：工作块边界由铺排给出，
// 班次标签由轮换状态机沿时间顺序逐块分配。
func (p *Parameters) buildRow(offset, startShift, numDays int) []domain.ShiftCode {
	codes := make([]domain.ShiftCode, numDays)
	tracker := newRotationTracker(p.RotationCycle, p.MinDwellDays, startShift)

	day := 0
	for day < numDays {
		if p.isOffDay(day, offset) {
			codes[day] = domain.ShiftOff
			day++
			continue
		}

		// 找到这个工作块在排班周期内的结束位置
		end := day
		for end < numDays && !p.isOffDay(end, offset) {
			end++
		}

		var shift domain.ShiftCode
		if day == 0 && p.phase(0, offset) != 0 {
			// 周期起点的残块属于上一个周期的工作块，沿用起始班次；
			// 它的停留历史不可见，轮换计数从第一个完整工作块开始
			shift = p.RotationCycle[startShift%len(p.RotationCycle)]
		} else {
			// 统计紧邻本块之前的轮休天数，保持班次时要计入停留时间
			offBefore := 0
			for back := day - 1; back >= 0 && codes[back] == domain.ShiftOff; back-- {
				offBefore++
			}
			shift = tracker.nextBlock(end-day, offBefore)
		}

		for ; day < end; day++ {
			codes[day] = shift
		}
	}

	return codes
}
