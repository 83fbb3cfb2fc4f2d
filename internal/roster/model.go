package roster

import (
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

// 排班规则参数
type Parameters struct {
	MinHeadcount       int                // 最小在岗人数，低于此值无法保证三班全覆盖
	WorkBlockLength    int                // 连续工作天数（一个工作块的长度）
	OffBlockLength     int                // 连续轮休天数（一个轮休块的长度）
	RotationCycle      []domain.ShiftCode // 班次轮换顺序，只能向前推进
	MinDwellDays       int                // 同一班次最少停留天数，未满不得轮换
	AbsenceCapFraction float64            // 每天轮休人数占比上限
	MinPerShift        int                // 每天每个班次的最少在岗人数
	MaxIterations      int                // 搜索迭代上限
	TimeBudget         time.Duration      // 搜索时间预算，0 表示只受迭代上限约束
}

// DefaultParameters 返回和生产配置一致的默认规则。
func DefaultParameters() *Parameters {
	return &Parameters{
		MinHeadcount:       7,
		WorkBlockLength:    5,
		OffBlockLength:     2,
		RotationCycle:      []domain.ShiftCode{domain.Shift1, domain.Shift2, domain.Shift3},
		MinDwellDays:       28,
		AbsenceCapFraction: 0.30,
		MinPerShift:        1,
		MaxIterations:      10000,
	}
}

func (p *Parameters) validate() error {
	if p.WorkBlockLength <= 0 || p.OffBlockLength <= 0 {
		return &ConfigurationError{msg: "工作块长度和轮休块长度必须为正数"}
	}
	if p.MinDwellDays <= 0 {
		return &ConfigurationError{msg: "班次最少停留天数必须为正数"}
	}
	if len(p.RotationCycle) == 0 {
		return &ConfigurationError{msg: "班次轮换顺序不能为空"}
	}
	if p.MinHeadcount <= 0 {
		return &ConfigurationError{msg: "最小在岗人数必须为正数"}
	}
	if p.AbsenceCapFraction <= 0 || p.AbsenceCapFraction > 1 {
		return &ConfigurationError{msg: "轮休占比上限必须在 (0, 1] 之间"}
	}
	return nil
}

// period 是排班的基本周期：一个工作块加一个轮休块。
func (p *Parameters) period() int {
	return p.WorkBlockLength + p.OffBlockLength
}

// Result 是一次求解的输出：班表、可行性报告以及每个员工最终使用的轮休偏移。
type Result struct {
	Assignment []domain.RosterRow
	Report     *domain.FeasibilityReport
	Offsets    []int
}
