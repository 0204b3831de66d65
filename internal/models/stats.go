package models

import "time"

// StatsWindows - границы временных окон для статистики
type StatsWindows struct {
	Now        time.Time
	StartOfDay time.Time
	Last24h    time.Time
	Last7d     time.Time
}

// NewStatsWindows строит окна относительно now; "сегодня" отсчитывается от полуночи в loc
func NewStatsWindows(now time.Time, loc *time.Location) StatsWindows {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	y, m, d := local.Date()
	return StatsWindows{
		Now:        now,
		StartOfDay: time.Date(y, m, d, 0, 0, 0, 0, loc),
		Last24h:    now.Add(-24 * time.Hour),
		Last7d:     now.Add(-7 * 24 * time.Hour),
	}
}

type WindowCounts struct {
	Total   int `json:"total"`
	Today   int `json:"today"`
	Last24h int `json:"last_24h"`
	Last7d  int `json:"last_7d"`
}

type LocalAlertStats struct {
	WindowCounts
	BySeverity map[Severity]int `json:"by_severity"`
}

type CloudAlertStats struct {
	WindowCounts
	EmergencyCount int                      `json:"emergency_count"`
	ByStatus       map[CloudAlertStatus]int `json:"by_status"`
}

// AlertSummary - сводная статистика по обоим каналам оповещения
type AlertSummary struct {
	Local       LocalAlertStats `json:"local"`
	Cloud       CloudAlertStats `json:"cloud"`
	GrandTotal  int             `json:"grand_total"`
	GeneratedAt time.Time       `json:"generated_at"`
}
