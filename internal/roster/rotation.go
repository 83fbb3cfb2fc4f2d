package roster

import "github.com/nocops-dev/rota-manager/backend/internal/domain"

// rotationTracker 是单个员工的轮换状态机，按时间顺序消费工作块并分配班次标签。
// 状态只有两项：当前班次在轮换顺序中的下标，以及当前班次的累计停留天数。
// 停留天数按块累加：保持班次时加上新工作块和它之前的轮休天数，
// 轮换时重置为新工作块的长度。
type rotationTracker struct {
	cycle    []domain.ShiftCode
	minDwell int

	current int  // cycle 的下标
	dwell   int  // 当前班次累计停留天数
	started bool // 排班周期内的第一个工作块不做轮换检查
}

func newRotationTracker(cycle []domain.ShiftCode, minDwell int, startShift int) *rotationTracker {
	return &rotationTracker{
		cycle:    cycle,
		minDwell: minDwell,
		current:  startShift % len(cycle),
	}
}

// nextBlock 在一个工作块开始时调用，返回该块应使用的班次。
// workDays 是本块的天数，offBefore 是紧邻本块之前的轮休天数。
func (t *rotationTracker) nextBlock(workDays, offBefore int) domain.ShiftCode {
	if !t.started {
		t.started = true
		t.dwell = workDays
		return t.cycle[t.current]
	}

	if t.dwell >= t.minDwell {
		// 停留时间已满，向前轮换一个班次
		t.current = (t.current + 1) % len(t.cycle)
		t.dwell = workDays
	} else {
		t.dwell += offBefore + workDays
	}

	return t.cycle[t.current]
}
