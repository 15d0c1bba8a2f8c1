// Package stubapi: подписки и платёжные заявки.
package stubapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(planConfig))
	for name := range planConfig {
		names = append(names, name)
	}
	sort.Strings(names)

	plans := make([]map[string]any, 0, len(names))
	for _, name := range names {
		p := planConfig[name]
		plans = append(plans, map[string]any{
			"name":        name,
			"label":       p.Label,
			"daily_limit": p.DailyLimit,
			"price_bdt":   p.PriceBDT,
			"description": p.Description,
		})
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"plans": plans})
}

func (s *Server) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sub := s.store.subscriptions[currentUser(r).ID]
	if sub == nil || sub.Status != "ACTIVE" || sub.EndAt.Before(s.store.now()) {
		respondJSON(w, r, http.StatusOK, map[string]any{"has_active_subscription": false})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"has_active_subscription": true,
		"status":                  sub.Status,
		"plan_name":               sub.PlanName,
		"daily_limit":             sub.DailyLimit,
		"daily_used":              sub.DailyUsed,
		"start_at":                sub.StartAt.Format(time.RFC3339),
		"end_at":                  sub.EndAt.Format(time.RFC3339),
		"api_key":                 sub.APIKey,
	})
}

func (s *Server) handleAPIKey(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sub := s.store.subscriptions[currentUser(r).ID]
	if sub == nil || sub.Status != "ACTIVE" || sub.APIKey == "" {
		respondError(w, r, http.StatusNotFound, "No active API key. Complete payment and wait for admin approval.")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"key":        sub.APIKey,
		"expires_at": sub.EndAt.Format(time.RFC3339),
	})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan := strings.ToLower(req.PlanName)
	if _, ok := planConfig[plan]; !ok {
		respondError(w, r, http.StatusBadRequest, "Invalid plan. Choose from: basic, pro, ultimate")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.orderByTransactionID(req.TransactionID) != nil {
		respondError(w, r, http.StatusBadRequest, "Transaction ID already submitted")
		return
	}

	o := &stubOrder{
		ID:            s.store.id(),
		UserID:        currentUser(r).ID,
		PlanName:      plan,
		AmountBDT:     req.AmountBDT,
		Currency:      "BDT",
		BkashNumber:   req.BkashNumber,
		TransactionID: req.TransactionID,
		Status:        models.OrderPending,
		UserNote:      req.UserNote,
		CreatedAt:     s.store.now(),
		UpdatedAt:     s.store.now(),
	}
	s.store.orders[o.ID] = o
	respondMessage(w, r, http.StatusCreated, "Payment order submitted. Waiting for admin review.")
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	items := make([]map[string]any, 0)
	for _, o := range s.store.ordersByStatus("") {
		if o.UserID != currentUser(r).ID {
			continue
		}
		items = append(items, s.orderJSON(o, false))
	}
	respondJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.OrderPending, models.OrderApproved, models.OrderRejected:
	default:
		respondError(w, r, http.StatusBadRequest, "Invalid status filter")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	items := make([]map[string]any, 0)
	for _, o := range s.store.ordersByStatus(status) {
		items = append(items, s.orderJSON(o, true))
	}
	respondJSON(w, r, http.StatusOK, items)
}

// handleReviewOrder переводит PENDING-заявку в APPROVED или REJECTED ровно
// один раз; одобрение активирует подписку и API-ключ на 30 дней.
func (s *Server) handleReviewOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid order id")
		return
	}
	var req models.OrderReviewRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Action != models.ReviewApprove && req.Action != models.ReviewReject {
		respondError(w, r, http.StatusBadRequest, "Action must be approve or reject")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o := s.store.orders[id]
	if o == nil {
		respondError(w, r, http.StatusNotFound, "Order not found")
		return
	}
	if o.Status != models.OrderPending {
		respondError(w, r, http.StatusBadRequest, "Order already reviewed")
		return
	}

	o.AdminNote = req.AdminNote
	o.ReviewedAt = s.store.now()
	o.UpdatedAt = s.store.now()

	if req.Action == models.ReviewReject {
		o.Status = models.OrderRejected
		respondMessage(w, r, http.StatusOK, "Order rejected.")
		return
	}

	o.Status = models.OrderApproved
	plan := planConfig[o.PlanName]
	s.store.subscriptions[o.UserID] = &stubSubscription{
		UserID:     o.UserID,
		PlanName:   o.PlanName,
		DailyLimit: plan.DailyLimit,
		Status:     "ACTIVE",
		APIKey:     "vf_" + uuid.NewString(),
		StartAt:    s.store.now(),
		EndAt:      s.store.now().AddDate(0, 0, 30),
	}
	respondMessage(w, r, http.StatusOK, "Order approved. Subscription and API key activated for 30 days.")
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	revenue, pending, active := 0, 0, 0
	for _, o := range s.store.orders {
		switch o.Status {
		case models.OrderApproved:
			revenue += o.AmountBDT
		case models.OrderPending:
			pending++
		}
	}
	for _, sub := range s.store.subscriptions {
		if sub.Status == "ACTIVE" && sub.EndAt.After(s.store.now()) {
			active++
		}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"total_users":          len(s.store.users),
		"total_detections":     len(s.store.detections),
		"total_revenue_bdt":    revenue,
		"pending_orders":       pending,
		"active_subscriptions": active,
	})
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	ids := make([]int, 0, len(s.store.users))
	for id := range s.store.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		u := s.store.users[id]
		item := map[string]any{
			"id":                      u.ID,
			"email":                   u.Email,
			"first_name":              u.FirstName,
			"last_name":               u.LastName,
			"role":                    u.Role,
			"created_at":              u.CreatedAt.Format(time.RFC3339),
			"total_detections":        len(s.store.userDetections(u.ID)),
			"has_active_subscription": false,
		}
		if sub := s.store.subscriptions[u.ID]; sub != nil && sub.Status == "ACTIVE" {
			item["has_active_subscription"] = true
			item["subscription_plan"] = sub.PlanName
			item["daily_limit"] = sub.DailyLimit
			item["daily_used"] = sub.DailyUsed
		}
		items = append(items, item)
	}
	respondJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		respondError(w, r, http.StatusBadRequest, "Invalid role")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.users[id]
	if u == nil {
		respondError(w, r, http.StatusNotFound, "User not found")
		return
	}
	if u.ID == currentUser(r).ID && req.Role == models.RoleUser {
		respondError(w, r, http.StatusBadRequest, "You cannot demote your own admin account.")
		return
	}
	u.Role = req.Role
	respondMessage(w, r, http.StatusOK, fmt.Sprintf("User role updated to %s.", req.Role))
}

// orderJSON сериализует заявку; в админском виде добавляются данные владельца.
func (s *Server) orderJSON(o *stubOrder, admin bool) map[string]any {
	item := map[string]any{
		"id":             o.ID,
		"plan_name":      o.PlanName,
		"amount_bdt":     o.AmountBDT,
		"currency":       o.Currency,
		"bkash_number":   maskBkash(o.BkashNumber),
		"transaction_id": o.TransactionID,
		"status":         o.Status,
		"user_note":      o.UserNote,
		"admin_note":     o.AdminNote,
		"created_at":     o.CreatedAt.Format(time.RFC3339),
		"updated_at":     o.UpdatedAt.Format(time.RFC3339),
	}
	if !o.ReviewedAt.IsZero() {
		item["reviewed_at"] = o.ReviewedAt.Format(time.RFC3339)
	}
	if admin {
		u := s.store.users[o.UserID]
		if u != nil {
			item["user_id"] = u.ID
			item["user_email"] = u.Email
			item["user_name"] = strings.TrimSpace(u.FirstName + " " + u.LastName)
		}
	}
	return item
}
