package roster

import (
	"fmt"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

// Explain 对一份班表做可行性诊断，把约束冲突归类到
// {人数不足, 班次覆盖失衡, 轮换时机违规, 轮休超限} 并给出触发冲突的
// 日期/员工/班次。纯函数，没有任何副作用，也可以用于外部人工录入的班表。
func Explain(params *Parameters, assignment []domain.RosterRow) *domain.FeasibilityReport {
	report := &domain.FeasibilityReport{
		Violations: []domain.Violation{},
	}

	if len(assignment) < params.MinHeadcount {
		report.Violations = append(report.Violations, domain.Violation{
			Class:  domain.ViolationInsufficientHeadcount,
			Day:    -1,
			Detail: fmt.Sprintf("在岗人数 %d 少于排班所需的最小人数 %d", len(assignment), params.MinHeadcount),
		})
	}

	if len(assignment) == 0 {
		report.Feasible = false
		return report
	}

	// 各行天数必须一致，否则无法做按天统计
	numDays := len(assignment[0].Codes)
	sameLength := true
	for _, row := range assignment {
		if len(row.Codes) != numDays {
			sameLength = false
			report.Violations = append(report.Violations, domain.Violation{
				Class:          domain.ViolationRotationTiming,
				Day:            -1,
				EmployeeNumber: row.EmployeeNumber,
				Detail:         fmt.Sprintf("员工 %s 的班表天数 %d 与排班周期 %d 不一致", row.EmployeeNumber, len(row.Codes), numDays),
			})
		}
	}

	// 逐个员工检查块结构和轮换合法性
	for _, row := range assignment {
		scanRow(params, row, report)
	}

	// 按天检查轮休上限和班次覆盖
	if sameLength {
		b := &balancer{params: params}
		rows := make([][]domain.ShiftCode, len(assignment))
		for i, row := range assignment {
			rows[i] = row.Codes
		}

		for day := 0; day < numDays; day++ {
			if b.violatesAbsenceCap(rows, day) {
				_, off := b.snapshot(rows, day)
				report.Violations = append(report.Violations, domain.Violation{
					Class:  domain.ViolationAbsenceCapExceeded,
					Day:    day,
					Detail: fmt.Sprintf("第 %d 天轮休 %d 人，超过上限 %d 人", day+1, off, b.maxOff(len(rows))),
				})
			}

			for _, shift := range b.coverageShortfalls(rows, day) {
				report.Violations = append(report.Violations, domain.Violation{
					Class:  domain.ViolationStaffingImbalance,
					Day:    day,
					Shift:  shift,
					Detail: fmt.Sprintf("第 %d 天班次 %s 的在岗人数少于 %d 人", day+1, shift, params.MinPerShift),
				})
			}
		}

		report.DeviationScore = b.score(rows)
	}

	report.Feasible = len(report.Violations) == 0
	return report
}

// scanRow 沿时间顺序把一个员工的班表切分成工作块和轮休块，
// 校验块长度、块内班次恒定以及轮换的方向和停留时间。
func scanRow(params *Parameters, row domain.RosterRow, report *domain.FeasibilityReport) {
	codes := row.Codes
	numDays := len(codes)

	cycleIndex := make(map[domain.ShiftCode]int, len(params.RotationCycle))
	for i, shift := range params.RotationCycle {
		cycleIndex[shift] = i
	}

	var current domain.ShiftCode
	dwell := 0
	started := false
	prevOff := 0

	day := 0
	for day < numDays {
		start := day
		isOff := codes[day] == domain.ShiftOff
		for day < numDays && (codes[day] == domain.ShiftOff) == isOff {
			day++
		}
		length := day - start
		interior := start > 0 && day < numDays

		if isOff {
			if interior && length != params.OffBlockLength {
				report.Violations = append(report.Violations, domain.Violation{
					Class:          domain.ViolationRotationTiming,
					Day:            start,
					EmployeeNumber: row.EmployeeNumber,
					Detail:         fmt.Sprintf("员工 %s 从第 %d 天起连续轮休 %d 天，轮休块应为 %d 天", row.EmployeeNumber, start+1, length, params.OffBlockLength),
				})
			}
			prevOff = length
			continue
		}

		if interior && length != params.WorkBlockLength {
			report.Violations = append(report.Violations, domain.Violation{
				Class:          domain.ViolationRotationTiming,
				Day:            start,
				EmployeeNumber: row.EmployeeNumber,
				Detail:         fmt.Sprintf("员工 %s 从第 %d 天起连续工作 %d 天，工作块应为 %d 天", row.EmployeeNumber, start+1, length, params.WorkBlockLength),
			})
		}

		shift := codes[start]
		if _, known := cycleIndex[shift]; !known {
			report.Violations = append(report.Violations, domain.Violation{
				Class:          domain.ViolationRotationTiming,
				Day:            start,
				EmployeeNumber: row.EmployeeNumber,
				Shift:          shift,
				Detail:         fmt.Sprintf("员工 %s 第 %d 天出现未知班次代码 %s", row.EmployeeNumber, start+1, shift),
			})
			return
		}

		// 工作块内班次必须恒定
		for d := start; d < start+length; d++ {
			if codes[d] != shift {
				report.Violations = append(report.Violations, domain.Violation{
					Class:          domain.ViolationRotationTiming,
					Day:            d,
					EmployeeNumber: row.EmployeeNumber,
					Shift:          codes[d],
					Detail:         fmt.Sprintf("员工 %s 第 %d 天在工作块内变更了班次", row.EmployeeNumber, d+1),
				})
				return
			}
		}

		if !started {
			started = true
			current = shift
			dwell = length
			prevOff = 0
			continue
		}

		if shift == current {
			dwell += prevOff + length
			prevOff = 0
			continue
		}

		// 发生了轮换：只能向前推进一个班次
		expected := params.RotationCycle[(cycleIndex[current]+1)%len(params.RotationCycle)]
		if shift != expected {
			report.Violations = append(report.Violations, domain.Violation{
				Class:          domain.ViolationRotationTiming,
				Day:            start,
				EmployeeNumber: row.EmployeeNumber,
				Shift:          shift,
				Detail:         fmt.Sprintf("员工 %s 第 %d 天从班次 %s 轮换到 %s，轮换只能向前推进到 %s", row.EmployeeNumber, start+1, current, shift, expected),
			})
		}

		// 停留时间必须已满
		if dwell < params.MinDwellDays {
			report.Violations = append(report.Violations, domain.Violation{
				Class:          domain.ViolationRotationTiming,
				Day:            start,
				EmployeeNumber: row.EmployeeNumber,
				Shift:          shift,
				Detail:         fmt.Sprintf("员工 %s 第 %d 天轮换班次时在原班次仅停留 %d 天，少于 %d 天", row.EmployeeNumber, start+1, dwell, params.MinDwellDays),
			})
		}

		current = shift
		dwell = length
		prevOff = 0
	}
}
