// Package services: админские операции — заявки, пользователи, счётчики.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/go-playground/validator"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Admin — сервис админских операций. Доступность раздела гарантирует
// охрана маршрутов, но настоящая проверка роли выполняется бэкендом.
type Admin struct {
	state
	log      *slog.Logger
	client   *api.Client
	notify   Notifier
	validate *validator.Validate
}

// NewAdmin создаёт админский сервис.
func NewAdmin(log *slog.Logger, client *api.Client, notify Notifier) *Admin {
	return &Admin{
		log:      log,
		client:   client,
		notify:   notify,
		validate: validator.New(),
	}
}

// Orders возвращает заявки с фильтром по одному статусу.
// Пустой статус означает фильтр по умолчанию — PENDING.
func (a *Admin) Orders(ctx context.Context, status string) ([]models.PaymentOrder, error) {
	const op = "services.Admin.Orders"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	if status == "" {
		status = models.OrderPending
	}

	var orders []models.PaymentOrder
	if err := a.client.Get(ctx, "/admin/orders", url.Values{"status": {status}}, &orders); err != nil {
		msg := normalize(err, "Failed to fetch orders")
		log.Error("admin orders fetch failed", sl.Err(err))
		a.fail(msg)
		a.notify.Error(msg)
		return nil, err
	}
	return orders, nil
}

// Review одобряет или отклоняет заявку. После успешного вызова список
// перезапрашивается вызывающей стороной — клиент не правит его локально.
func (a *Admin) Review(ctx context.Context, orderID int, action, adminNote string) error {
	const op = "services.Admin.Review"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	req := models.OrderReviewRequest{Action: action, AdminNote: adminNote}
	if err := a.validate.Struct(req); err != nil {
		msg := validationMessage(err)
		a.fail(msg)
		a.notify.Error(msg)
		return fmt.Errorf("%s: %w", op, err)
	}

	var resp models.MessageResponse
	path := "/admin/orders/" + strconv.Itoa(orderID) + "/review"
	if err := a.client.Patch(ctx, path, req, &resp); err != nil {
		msg := normalize(err, "Failed to review order")
		log.Error("order review failed", sl.Err(err), slog.Int("order_id", orderID))
		a.fail(msg)
		a.notify.Error(msg)
		return err
	}

	log.Info("order reviewed", slog.Int("order_id", orderID), slog.String("action", action))
	a.notify.Success(resp.Message)
	return nil
}

// Stats возвращает счётчики для админской панели.
func (a *Admin) Stats(ctx context.Context) (*models.AdminStats, error) {
	const op = "services.Admin.Stats"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	var stats models.AdminStats
	if err := a.client.Get(ctx, "/admin/stats", nil, &stats); err != nil {
		msg := normalize(err, "Failed to fetch admin stats")
		log.Error("admin stats fetch failed", sl.Err(err))
		a.fail(msg)
		a.notify.Error(msg)
		return nil, err
	}
	return &stats, nil
}

// Users возвращает всех пользователей со сводкой по подпискам.
func (a *Admin) Users(ctx context.Context) ([]models.AdminUser, error) {
	const op = "services.Admin.Users"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	var users []models.AdminUser
	if err := a.client.Get(ctx, "/admin/users", nil, &users); err != nil {
		msg := normalize(err, "Failed to fetch users")
		log.Error("admin users fetch failed", sl.Err(err))
		a.fail(msg)
		a.notify.Error(msg)
		return nil, err
	}
	return users, nil
}

// UpdateRole меняет роль пользователя.
func (a *Admin) UpdateRole(ctx context.Context, userID int, role string) error {
	const op = "services.Admin.UpdateRole"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	if role != models.RoleUser && role != models.RoleAdmin {
		msg := "role must be one of: USER ADMIN"
		a.fail(msg)
		a.notify.Error(msg)
		return fmt.Errorf("%s: invalid role %q", op, role)
	}

	var resp models.MessageResponse
	path := "/admin/users/" + strconv.Itoa(userID) + "/role"
	if err := a.client.Patch(ctx, path, map[string]string{"role": role}, &resp); err != nil {
		msg := normalize(err, "Failed to update role")
		log.Error("role update failed", sl.Err(err), slog.Int("user_id", userID))
		a.fail(msg)
		a.notify.Error(msg)
		return err
	}

	log.Info("role updated", slog.Int("user_id", userID), slog.String("role", role))
	a.notify.Success(resp.Message)
	return nil
}
