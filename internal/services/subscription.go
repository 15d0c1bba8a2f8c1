// Package services: подписка, тарифы и платёжные заявки пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Subscription — сервис подписки текущего пользователя.
type Subscription struct {
	state
	log      *slog.Logger
	client   *api.Client
	notify   Notifier
	validate *validator.Validate
}

// NewSubscription создаёт сервис подписки.
func NewSubscription(log *slog.Logger, client *api.Client, notify Notifier) *Subscription {
	return &Subscription{
		log:      log,
		client:   client,
		notify:   notify,
		validate: validator.New(),
	}
}

// Status возвращает состояние подписки. Обновляется повторным вызовом
// после одобрения заявки администратором.
func (s *Subscription) Status(ctx context.Context) (*models.SubscriptionStatus, error) {
	const op = "services.Subscription.Status"

	s.begin()
	defer s.done()
	log := s.log.With(sl.Op(op))

	var status models.SubscriptionStatus
	if err := s.client.Get(ctx, "/subscription/status", nil, &status); err != nil {
		msg := normalize(err, "Failed to fetch subscription status")
		log.Error("subscription status fetch failed", sl.Err(err))
		s.fail(msg)
		s.notify.Error(msg)
		return nil, err
	}
	return &status, nil
}

// Plans возвращает список доступных тарифов.
func (s *Subscription) Plans(ctx context.Context) ([]models.PlanInfo, error) {
	const op = "services.Subscription.Plans"

	s.begin()
	defer s.done()
	log := s.log.With(sl.Op(op))

	var resp models.PlansResponse
	if err := s.client.Get(ctx, "/subscription/plans", nil, &resp); err != nil {
		msg := normalize(err, "Failed to fetch plans")
		log.Error("plans fetch failed", sl.Err(err))
		s.fail(msg)
		s.notify.Error(msg)
		return nil, err
	}
	return resp.Plans, nil
}

// APIKey возвращает активный API-ключ пользователя.
func (s *Subscription) APIKey(ctx context.Context) (*models.APIKey, error) {
	const op = "services.Subscription.APIKey"

	s.begin()
	defer s.done()
	log := s.log.With(sl.Op(op))

	var key models.APIKey
	if err := s.client.Get(ctx, "/subscription/api-key", nil, &key); err != nil {
		msg := normalize(err, "Failed to fetch API key")
		log.Error("api key fetch failed", sl.Err(err))
		s.fail(msg)
		s.notify.Error(msg)
		return nil, err
	}
	return &key, nil
}

// SubmitOrder отправляет заявку на оплату. Поля проверяются до отправки:
// заявка с нулевой суммой или без номера транзакции в сеть не уходит.
func (s *Subscription) SubmitOrder(ctx context.Context, req models.OrderCreateRequest) (*models.MessageResponse, error) {
	const op = "services.Subscription.SubmitOrder"

	s.begin()
	defer s.done()
	log := s.log.With(sl.Op(op))

	if err := s.validate.Struct(req); err != nil {
		msg := validationMessage(err)
		s.fail(msg)
		s.notify.Error(msg)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp models.MessageResponse
	if err := s.client.Post(ctx, "/orders", req, &resp); err != nil {
		msg := normalize(err, "Failed to submit order")
		log.Error("order submit failed", sl.Err(err))
		s.fail(msg)
		s.notify.Error(msg)
		return nil, err
	}

	log.Info("order submitted", slog.String("plan", req.PlanName))
	s.notify.Success(resp.Message)
	return &resp, nil
}

// MyOrders возвращает заявки текущего пользователя.
func (s *Subscription) MyOrders(ctx context.Context) ([]models.PaymentOrder, error) {
	const op = "services.Subscription.MyOrders"

	s.begin()
	defer s.done()
	log := s.log.With(sl.Op(op))

	var orders []models.PaymentOrder
	if err := s.client.Get(ctx, "/orders/me", nil, &orders); err != nil {
		msg := normalize(err, "Failed to fetch orders")
		log.Error("orders fetch failed", sl.Err(err))
		s.fail(msg)
		s.notify.Error(msg)
		return nil, err
	}
	return orders, nil
}
