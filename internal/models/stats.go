// Package models: агрегированная статистика для графиков.
package models

import "encoding/json"

// StatsSummary — ответ GET /stats. Бэкенд отдаёт его в camelCase,
// адаптер принимает оба написания.
type StatsSummary struct {
	TotalDetections   int            `json:"total_detections"`
	MostCommonObjects map[string]int `json:"most_common_objects"`
	DetectionsByDate  map[string]int `json:"detections_by_date"`
	RecentDetections  int            `json:"recent_detections"`
}

type statsWire struct {
	TotalDetections      int            `json:"total_detections"`
	TotalDetectionsAlt   int            `json:"totalDetections"`
	MostCommonObjects    map[string]int `json:"most_common_objects"`
	MostCommonObjectsAlt map[string]int `json:"mostCommonObjects"`
	DetectionsByDate     map[string]int `json:"detections_by_date"`
	DetectionsByDateAlt  map[string]int `json:"detectionsByDate"`
	RecentDetections     int            `json:"recent_detections"`
	RecentDetectionsAlt  int            `json:"recentDetections"`
}

// UnmarshalJSON принимает оба варианта написания полей.
func (s *StatsSummary) UnmarshalJSON(data []byte) error {
	var w statsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.TotalDetections = maxInt(w.TotalDetections, w.TotalDetectionsAlt)
	s.RecentDetections = maxInt(w.RecentDetections, w.RecentDetectionsAlt)
	s.MostCommonObjects = w.MostCommonObjects
	if s.MostCommonObjects == nil {
		s.MostCommonObjects = w.MostCommonObjectsAlt
	}
	s.DetectionsByDate = w.DetectionsByDate
	if s.DetectionsByDate == nil {
		s.DetectionsByDate = w.DetectionsByDateAlt
	}
	return nil
}

// AdminStats — счётчики для админской панели (GET /admin/stats).
type AdminStats struct {
	TotalUsers          int `json:"total_users"`
	TotalDetections     int `json:"total_detections"`
	TotalRevenueBDT     int `json:"total_revenue_bdt"`
	PendingOrders       int `json:"pending_orders"`
	ActiveSubscriptions int `json:"active_subscriptions"`
}

// AdminUser — пользователь в админском списке (GET /admin/users).
type AdminUser struct {
	ID                    int    `json:"id"`
	Email                 string `json:"email"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Role                  string `json:"role"`
	CreatedAt             string `json:"created_at,omitempty"`
	TotalDetections       int    `json:"total_detections"`
	HasActiveSubscription bool   `json:"has_active_subscription"`
	SubscriptionPlan      string `json:"subscription_plan,omitempty"`
	DailyLimit            int    `json:"daily_limit,omitempty"`
	DailyUsed             int    `json:"daily_used,omitempty"`
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
