// Package services: статистика детекций пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Stats — сервис агрегированной статистики для графиков.
type Stats struct {
	state
	log    *slog.Logger
	client *api.Client
	notify Notifier
}

// NewStats создаёт сервис статистики.
func NewStats(log *slog.Logger, client *api.Client, notify Notifier) *Stats {
	return &Stats{log: log, client: client, notify: notify}
}

// Get возвращает сводку статистики пользователя.
func (s *Stats) Get(ctx context.Context, email string) (*models.StatsSummary, error) {
	const op = "services.Stats.Get"

	s.begin()
	defer s.done()
	log := s.log.With(sl.Op(op))

	if email == "" {
		s.fail(ErrMissingEmail.Error())
		return nil, fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}

	var summary models.StatsSummary
	if err := s.client.Get(ctx, "/stats", url.Values{"email": {email}}, &summary); err != nil {
		msg := normalize(err, "Failed to fetch stats")
		log.Error("stats fetch failed", sl.Err(err))
		s.fail(msg)
		s.notify.Error(msg)
		return nil, err
	}
	return &summary, nil
}
