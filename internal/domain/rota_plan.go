package domain

import "time"

type RotaPlan struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"` // 闭区间起点
	StopDate    time.Time `json:"stopDate"`  // 闭区间终点
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
