package domain

import "time"

// Status-bucketed aggregate counts, computed from live repository state.

type RoomStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

type BoarderStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type PaymentStats struct {
	Total          int   `json:"total"`
	Pending        int   `json:"pending"`
	Paid           int   `json:"paid"`
	Overdue        int   `json:"overdue"`
	Cancelled      int   `json:"cancelled"`
	CollectedCents int64 `json:"collected_cents"`
}

type UtilityStats struct {
	Total  int                 `json:"total"`
	ByType map[UtilityType]int `json:"by_type"`
}

// MonthlyRevenue buckets PAID payments by paid-date month for one year.
type MonthlyRevenue struct {
	Year   int       `json:"year"`
	Months [12]int64 `json:"months"`
}

// ConsumptionSummaryItem is a trend-report projection of one reading.
type ConsumptionSummaryItem struct {
	RoomID      string      `json:"room_id"`
	RoomNumber  string      `json:"room_number"`
	Type        UtilityType `json:"type"`
	Consumption float64     `json:"consumption"`
	CostCents   int64       `json:"cost_cents"`
	Date        time.Time   `json:"date"`
}

// OccupancySummary is derived from live room and boarder state.
type OccupancySummary struct {
	TotalRooms    int `json:"total_rooms"`
	TotalCapacity int `json:"total_capacity"`
	OccupiedBeds  int `json:"occupied_beds"`
	RatePercent   int `json:"rate_percent"`
}

// UtilitySplit is the per-head share of a period's utility cost across the
// active boarders at the moment of the query.
type UtilitySplit struct {
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	TotalCents     int64     `json:"total_cents"`
	ActiveBoarders int       `json:"active_boarders"`
	PerHeadCents   int64     `json:"per_head_cents"`
}
