package roster

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
)

// Solver 负责为一个排班周期内的所有员工选择轮休偏移并生成班表。
// 偏移确定之后，每个员工的块结构和班次轮换都是确定性的，
// 因此搜索空间只有 (员工 → 偏移) 这一层。
type Solver struct {
	params      *Parameters
	employees   []*domain.Employee
	startDate   time.Time
	stopDate    time.Time
	numDays     int
	startShifts []int // 归一化后的起始班次下标，与 employees 一一对应
	balancer    *balancer
}

func New(params *Parameters, employees []*domain.Employee, startDate, stopDate time.Time) (*Solver, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if stopDate.Before(startDate) {
		return nil, &InputValidationError{msg: "排班结束日期不能早于开始日期"}
	}

	// 工号必须唯一
	seen := make(map[string]bool, len(employees))
	for _, emp := range employees {
		if seen[emp.Number] {
			return nil, &InputValidationError{msg: fmt.Sprintf("工号 %s 重复", emp.Number)}
		}
		seen[emp.Number] = true
	}

	if len(employees) < params.MinHeadcount {
		return nil, &InsufficientHeadcountError{Headcount: len(employees), Required: params.MinHeadcount}
	}

	numDays := 0
	for d := startDate; !d.After(stopDate); d = d.AddDate(0, 0, 1) {
		numDays++
	}

	return &Solver{
		params:      params,
		employees:   employees,
		startDate:   startDate,
		stopDate:    stopDate,
		numDays:     numDays,
		startShifts: normalizeStartShifts(employees, params.RotationCycle),
		balancer:    &balancer{params: params},
	}, nil
}

// normalizeStartShifts 把员工声明的起始班次解析为轮换顺序的下标。
// 缺失或非法的值按 1、2、3、1…… 轮流补齐，计数器只在需要补齐的员工之间推进，
// 声明了合法班次的员工不占用轮转名额。
func normalizeStartShifts(employees []*domain.Employee, cycle []domain.ShiftCode) []int {
	shifts := make([]int, len(employees))
	next := 0

	for i, emp := range employees {
		idx := -1
		if s, err := strconv.Atoi(strings.TrimSpace(emp.StartingShift)); err == nil && s >= 1 && s <= len(cycle) {
			idx = s - 1
		}

		if idx < 0 {
			idx = next
			next = (next + 1) % len(cycle)
		}

		shifts[i] = idx
	}

	return shifts
}

func (s *Solver) buildRows(offsets []int) [][]domain.ShiftCode {
	rows := make([][]domain.ShiftCode, len(s.employees))
	for i := range s.employees {
		rows[i] = s.params.buildRow(offsets[i], s.startShifts[i], s.numDays)
	}
	return rows
}

func (s *Solver) evaluate(offsets []int) (hard, score int) {
	rows := s.buildRows(offsets)
	return s.balancer.hardViolationCount(rows), s.balancer.score(rows)
}

// better 比较两个候选：先比硬约束违反次数，再比失衡度，都相等时保留当前候选，
// 保证相同输入始终得到相同的班表。
func better(hard, score, bestHard, bestScore int) bool {
	return hard < bestHard || (hard == bestHard && score < bestScore)
}

// Solve 先按轮转顺序分配偏移，把轮休日均匀铺开，再用爬山法局部扰动：
// 交换两个员工的偏移、或把单个员工换到其它偏移，只接受严格更优的候选。
// 搜索受迭代上限和 ctx 截止时间约束，超限时返回当前最优候选和可行性报告，
// 而不是一直阻塞。
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if s.params.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.params.TimeBudget)
		defer cancel()
	}

	period := s.params.period()

	offsets := make([]int, len(s.employees))
	for i := range offsets {
		offsets[i] = i % period
	}

	bestHard, bestScore := s.evaluate(offsets)

	iter := 0
	improved := true
	for improved && iter < s.params.MaxIterations && ctx.Err() == nil {
		improved = false

		// 交换两个员工的偏移
		for i := 0; i < len(offsets) && iter < s.params.MaxIterations && ctx.Err() == nil; i++ {
			for j := i + 1; j < len(offsets); j++ {
				if offsets[i] == offsets[j] && s.startShifts[i] == s.startShifts[j] {
					// 交换不会改变班表
					continue
				}

				iter++
				offsets[i], offsets[j] = offsets[j], offsets[i]
				if hard, score := s.evaluate(offsets); better(hard, score, bestHard, bestScore) {
					bestHard, bestScore = hard, score
					improved = true
				} else {
					offsets[i], offsets[j] = offsets[j], offsets[i]
				}
			}
		}

		// 把单个员工换到其它偏移
		for i := 0; i < len(offsets) && iter < s.params.MaxIterations && ctx.Err() == nil; i++ {
			for k := 0; k < period; k++ {
				if k == offsets[i] {
					continue
				}

				iter++
				prev := offsets[i]
				offsets[i] = k
				if hard, score := s.evaluate(offsets); better(hard, score, bestHard, bestScore) {
					bestHard, bestScore = hard, score
					improved = true
				} else {
					offsets[i] = prev
				}
			}
		}
	}

	rows := s.buildRows(offsets)
	assignment := make([]domain.RosterRow, len(s.employees))
	for i, emp := range s.employees {
		assignment[i] = domain.RosterRow{
			EmployeeID:     emp.ID,
			EmployeeNumber: emp.Number,
			Codes:          rows[i],
		}
	}

	report := Explain(s.params, assignment)

	return &Result{
		Assignment: assignment,
		Report:     report,
		Offsets:    offsets,
	}, nil
}

// BuildRoster 是引擎的入口：校验输入并求解一个排班周期。
// 搜索完成但仍有硬约束无法满足时不算错误，报告中会给出违反明细，
// 由调用方决定接受还是调整输入后重排。
func BuildRoster(ctx context.Context, params *Parameters, employees []*domain.Employee, startDate, stopDate time.Time) (*Result, error) {
	solver, err := New(params, employees, startDate, stopDate)
	if err != nil {
		return nil, err
	}
	return solver.Solve(ctx)
}
