// Package services: история детекций — список, удаление, массовое удаление.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// History — сервис истории детекций.
type History struct {
	state
	log    *slog.Logger
	client *api.Client
	notify Notifier
}

// NewHistory создаёт сервис истории.
func NewHistory(log *slog.Logger, client *api.Client, notify Notifier) *History {
	return &History{log: log, client: client, notify: notify}
}

// List возвращает детекции пользователя. search и границы дат необязательны
// и добавляются в запрос только если заданы.
func (h *History) List(ctx context.Context, email, search, dateFrom, dateTo string) ([]models.DetectionRecord, error) {
	const op = "services.History.List"

	h.begin()
	defer h.done()
	log := h.log.With(sl.Op(op))

	if email == "" {
		h.fail(ErrMissingEmail.Error())
		return nil, fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}

	query := url.Values{"email": {email}}
	if search != "" {
		query.Set("search", search)
	}
	if dateFrom != "" {
		query.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		query.Set("date_to", dateTo)
	}

	var items []models.DetectionRecord
	if err := h.client.Get(ctx, "/history", query, &items); err != nil {
		msg := normalize(err, "Failed to fetch history")
		log.Error("history fetch failed", sl.Err(err))
		h.fail(msg)
		h.notify.Error(msg)
		return nil, err
	}
	return items, nil
}

// Delete удаляет одну запись истории.
func (h *History) Delete(ctx context.Context, id int) error {
	const op = "services.History.Delete"

	h.begin()
	defer h.done()
	log := h.log.With(sl.Op(op))

	var resp models.MessageResponse
	if err := h.client.Delete(ctx, "/history/"+strconv.Itoa(id), nil, nil, &resp); err != nil {
		msg := normalize(err, "Failed to delete item")
		log.Error("history delete failed", sl.Err(err), slog.Int("id", id))
		h.fail(msg)
		h.notify.Error(msg)
		return err
	}

	h.notify.Success(resp.Message)
	return nil
}

// BulkDelete удаляет выбранные записи. Пустой список выбранных или
// отсутствующий email прерывают операцию до сети.
func (h *History) BulkDelete(ctx context.Context, email string, ids []int) error {
	const op = "services.History.BulkDelete"

	h.begin()
	defer h.done()
	log := h.log.With(sl.Op(op))

	if email == "" {
		h.fail(ErrMissingEmail.Error())
		return fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}
	if len(ids) == 0 {
		h.fail(ErrEmptySelection.Error())
		h.notify.Error("Please select at least one item to delete")
		return fmt.Errorf("%s: %w", op, ErrEmptySelection)
	}

	query := url.Values{"email": {email}}
	var resp models.MessageResponse
	if err := h.client.Delete(ctx, "/history/bulk", query, ids, &resp); err != nil {
		msg := normalize(err, "Failed to delete detections")
		log.Error("bulk delete failed", sl.Err(err))
		h.fail(msg)
		h.notify.Error(msg)
		return err
	}

	h.notify.Success(resp.Message)
	return nil
}
