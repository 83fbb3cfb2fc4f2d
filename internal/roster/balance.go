package roster

import (
	"math"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

// balancer 按天统计各班次的在岗人数，并对偏离理想均分的程度打分。
type balancer struct {
	params *Parameters
}

// snapshot 返回第 day 天各班次的在岗人数以及轮休人数。
func (b *balancer) snapshot(rows [][]domain.ShiftCode, day int) (counts map[domain.ShiftCode]int, off int) {
	counts = make(map[domain.ShiftCode]int, len(b.params.RotationCycle))
	for _, row := range rows {
		if row[day] == domain.ShiftOff {
			off++
			continue
		}
		counts[row[day]]++
	}
	return counts, off
}

// score 是整个排班周期的失衡度：每天每个班次的实际人数与理想人数
// （当天在岗人数对班次数量取整均分）之差的绝对值之和。
func (b *balancer) score(rows [][]domain.ShiftCode) int {
	if len(rows) == 0 {
		return 0
	}

	total := 0
	numDays := len(rows[0])
	numShifts := len(b.params.RotationCycle)

	for day := 0; day < numDays; day++ {
		counts, off := b.snapshot(rows, day)
		onDuty := len(rows) - off
		ideal := int(math.Round(float64(onDuty) / float64(numShifts)))

		for _, shift := range b.params.RotationCycle {
			diff := counts[shift] - ideal
			if diff < 0 {
				diff = -diff
			}
			total += diff
		}
	}

	return total
}

// maxOff 是每天允许轮休的人数上限，向上取整。
func (b *balancer) maxOff(headcount int) int {
	return int(math.Ceil(b.params.AbsenceCapFraction * float64(headcount)))
}

// violatesAbsenceCap 判断第 day 天的轮休人数是否超过上限。
func (b *balancer) violatesAbsenceCap(rows [][]domain.ShiftCode, day int) bool {
	_, off := b.snapshot(rows, day)
	return off > b.maxOff(len(rows))
}

// coverageShortfalls 返回第 day 天在岗人数不足 MinPerShift 的班次。
func (b *balancer) coverageShortfalls(rows [][]domain.ShiftCode, day int) []domain.ShiftCode {
	counts, _ := b.snapshot(rows, day)

	var short []domain.ShiftCode
	for _, shift := range b.params.RotationCycle {
		if counts[shift] < b.params.MinPerShift {
			short = append(short, shift)
		}
	}
	return short
}

// hardViolationCount 统计整个排班周期内违反硬约束（轮休上限、班次覆盖）的次数，
// 搜索时用于在不可行的候选之间排序。
func (b *balancer) hardViolationCount(rows [][]domain.ShiftCode) int {
	if len(rows) == 0 {
		return 0
	}

	count := 0
	for day := 0; day < len(rows[0]); day++ {
		if b.violatesAbsenceCap(rows, day) {
			count++
		}
		count += len(b.coverageShortfalls(rows, day))
	}
	return count
}
