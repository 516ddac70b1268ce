package domain

import "time"

// MonthCount is the number of inquiries created in a calendar month (YYYY-MM).
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// FollowUpCounts splits follow-ups by state; Overdue is a subset of Pending.
type FollowUpCounts struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}

// AnalyticsSummary backs the dashboard's metrics page.
type AnalyticsSummary struct {
	Inquiries         int64                   `json:"inquiries"`
	InquiriesByStatus map[InquiryStatus]int64 `json:"inquiries_by_status"`
	InquiriesByMonth  []MonthCount            `json:"inquiries_by_month"`
	Products          int64                   `json:"products"`
	Brands            int64                   `json:"brands"`
	Consumers         int64                   `json:"consumers"`
	Consultants       int64                   `json:"consultants"`
	ActiveUsers       int64                   `json:"active_users"`
	FollowUps         FollowUpCounts          `json:"follow_ups"`
	GeneratedAt       time.Time               `json:"generated_at"`
}
