// Package models: платёжные заявки, проверяемые администратором вручную.
package models

// Статусы платёжной заявки. Заявка создаётся в PENDING и ровно один раз
// переводится администратором в APPROVED или REJECTED; обратного пути нет.
const (
	OrderPending  = "PENDING"
	OrderApproved = "APPROVED"
	OrderRejected = "REJECTED"
)

// Действия администратора над заявкой.
const (
	ReviewApprove = "approve"
	ReviewReject  = "reject"
)

// PaymentOrder — заявка пользователя на оплату подписки через bKash.
// Номер bKash бэкенд отдаёт замаскированным (видны последние 4 цифры).
// Поля UserID/UserEmail/UserName заполняются только в админских ответах.
type PaymentOrder struct {
	ID            int    `json:"id"`
	PlanName      string `json:"plan_name"`
	AmountBDT     int    `json:"amount_bdt"`
	Currency      string `json:"currency"`
	BkashNumber   string `json:"bkash_number"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	UserNote      string `json:"user_note,omitempty"`
	AdminNote     string `json:"admin_note,omitempty"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`

	UserID    int    `json:"user_id,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// CanReview сообщает, доступны ли для заявки действия проверки.
// Только PENDING-заявка может быть одобрена или отклонена.
func (o PaymentOrder) CanReview() bool {
	return o.Status == OrderPending
}

// OrderCreateRequest — тело POST /orders.
type OrderCreateRequest struct {
	PlanName      string `json:"plan_name" validate:"required"`
	AmountBDT     int    `json:"amount_bdt" validate:"required,gt=0"`
	BkashNumber   string `json:"bkash_number" validate:"required,min=11,max=14"`
	TransactionID string `json:"transaction_id" validate:"required,min=6"`
	UserNote      string `json:"user_note,omitempty"`
}

// OrderReviewRequest — тело PATCH /admin/orders/{id}/review.
type OrderReviewRequest struct {
	Action    string `json:"action" validate:"required,oneof=approve reject"`
	AdminNote string `json:"admin_note,omitempty"`
}
