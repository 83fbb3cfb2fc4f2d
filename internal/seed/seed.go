package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nocops-dev/rota-manager/backend/internal/domain"
	"github.com/nocops-dev/rota-manager/backend/internal/repository"
)

// SeedRealData 从值班室导出的员工表中导入真实数据，并插入一个覆盖下个月的排班计划。
// CSV 的表头为：工号,姓名,初始班次,性别。初始班次缺失或非法时照原样入库，排班时由引擎补齐。
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/employees.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	headerIndex := make(map[string]int, len(headers))
	for i, header := range headers {
		headerIndex[header] = i
	}

	for _, required := range []string{"工号", "姓名"} {
		if _, exists := headerIndex[required]; !exists {
			slog.Error("没有找到必需的列", "header", required)
			return
		}
	}

	field := func(row []string, header string) string {
		idx, exists := headerIndex[header]
		if !exists || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	// 读取数据并插入员工
	cnt := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		number := field(row, "工号")
		if number == "" {
			slog.Error("没有找到工号", "row", row)
			continue
		}

		emp := &domain.Employee{
			Number:        number,
			FullName:      field(row, "姓名"),
			StartingShift: field(row, "初始班次"),
			Gender:        field(row, "性别"),
		}

		if err := r.CreateEmployee(emp); err != nil {
			slog.Error("插入员工失败", "number", number, "error", err)
			continue
		}

		cnt++
	}

	slog.Info("插入员工完成", slog.Int("count", cnt))

	// 插入一个覆盖下个月的排班计划，方便导入后直接生成班表
	start := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	plan := &domain.RotaPlan{
		Name:        "值班室新一期排班",
		Description: "导入真实员工数据后自动创建的排班计划，覆盖从明天起的四周",
		StartDate:   start,
		StopDate:    start.AddDate(0, 0, 27),
	}

	if err := r.CreateRotaPlan(plan); err != nil {
		slog.Error("插入排班计划失败", "error", err)
		return
	}

	slog.Info("插入数据完成")
}
