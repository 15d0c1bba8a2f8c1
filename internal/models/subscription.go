// Package models: подписка и тарифные планы.
package models

// SubscriptionStatus — ответ GET /subscription/status. Для клиентского слоя
// данные только на чтение; обновляются повторным запросом после одобрения заявки.
type SubscriptionStatus struct {
	HasActiveSubscription bool   `json:"has_active_subscription"`
	Status                string `json:"status,omitempty"`
	PlanName              string `json:"plan_name,omitempty"`
	DailyLimit            int    `json:"daily_limit,omitempty"`
	DailyUsed             int    `json:"daily_used,omitempty"`
	StartAt               string `json:"start_at,omitempty"`
	EndAt                 string `json:"end_at,omitempty"`
	APIKey                string `json:"api_key,omitempty"`
}

// PlanInfo описывает один тарифный план.
type PlanInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	DailyLimit  int    `json:"daily_limit"`
	PriceBDT    int    `json:"price_bdt"`
	Description string `json:"description"`
}

// PlansResponse — ответ GET /subscription/plans.
type PlansResponse struct {
	Plans []PlanInfo `json:"plans"`
}

// APIKey — ответ GET /subscription/api-key.
type APIKey struct {
	Key       string `json:"key"`
	ExpiresAt string `json:"expires_at"`
}
